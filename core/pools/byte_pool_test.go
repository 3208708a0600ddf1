package pools

import "testing"

func TestBytePoolGetSizes(t *testing.T) {
	bp := NewBytePool()

	tests := []struct {
		size    int
		wantCap int
	}{
		{100, 512},
		{512, 512},
		{513, 2048},
		{4096, 8192},
		{32768, 32768},
		{40000, 40000},
	}

	for _, tt := range tests {
		buf := bp.Get(tt.size)
		if len(buf) != tt.size {
			t.Errorf("Get(%d): expected len %d, got %d", tt.size, tt.size, len(buf))
		}
		if cap(buf) != tt.wantCap {
			t.Errorf("Get(%d): expected cap %d, got %d", tt.size, tt.wantCap, cap(buf))
		}
		bp.Put(buf)
	}
}

func TestBytePoolPutForeignSlice(t *testing.T) {
	bp := NewBytePoolWithSizes([]int{64})

	// Capacity matches no tier, so Put must ignore it
	bp.Put(make([]byte, 10, 100))

	buf := bp.Get(64)
	if cap(buf) != 64 {
		t.Errorf("Expected cap 64, got %d", cap(buf))
	}
}

func TestGrowthTiers(t *testing.T) {
	tests := []struct {
		initial, limit int
		want           []int
	}{
		{2048, 8192, []int{2048, 4096, 8192}},
		{2048, 5000, []int{2048, 4096, 5000}},
		{2048, 2048, []int{2048}},
		{2048, 64, []int{64}},
		{0, 100, []int{100}},
	}

	for _, tt := range tests {
		got := GrowthTiers(tt.initial, tt.limit)
		if len(got) != len(tt.want) {
			t.Errorf("GrowthTiers(%d, %d): expected %v, got %v", tt.initial, tt.limit, tt.want, got)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("GrowthTiers(%d, %d): expected %v, got %v", tt.initial, tt.limit, tt.want, got)
				break
			}
		}
	}
}

func TestBytePoolGrowthTiersRecycle(t *testing.T) {
	bp := NewBytePoolWithSizes(GrowthTiers(2048, 5000))

	for _, size := range []int{2048, 4096, 5000} {
		buf := bp.Get(size)
		if cap(buf) != size {
			t.Errorf("Get(%d): expected exact tier capacity, got %d", size, cap(buf))
		}
		bp.Put(buf)
	}
	if buf := bp.Get(6000); cap(buf) != 6000 {
		t.Errorf("Expected direct allocation above the top tier, got cap %d", cap(buf))
	}
}

func BenchmarkBytePoolGetPut(b *testing.B) {
	bp := NewBytePool()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		buf := bp.Get(2048)
		bp.Put(buf)
	}
}
