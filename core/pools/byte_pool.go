package pools

import (
	"sort"
	"sync"
)

// BytePool hands out byte slices from a ladder of fixed capacities. Requests
// above the top rung are allocated directly.
type BytePool struct {
	tiers []int
	pools []sync.Pool
}

// Ladder for general use; most request heads fit the second rung
var defaultSizes = []int{
	512,
	2048,
	8192,
	32768,
}

// NewBytePool creates a byte pool with the default ladder
func NewBytePool() *BytePool {
	return NewBytePoolWithSizes(defaultSizes)
}

// NewBytePoolWithSizes creates a byte pool with ascending tier capacities
func NewBytePoolWithSizes(sizes []int) *BytePool {
	bp := &BytePool{
		tiers: sizes,
		pools: make([]sync.Pool, len(sizes)),
	}
	for i, capacity := range sizes {
		capacity := capacity
		bp.pools[i].New = func() any {
			buf := make([]byte, capacity)
			return &buf
		}
	}
	return bp
}

// GrowthTiers returns the capacities a buffer passes through when it starts at
// initial and doubles until it reaches limit. The last tier is limit itself.
func GrowthTiers(initial, limit int) []int {
	if initial <= 0 || initial >= limit {
		return []int{limit}
	}

	var tiers []int
	for size := initial; size < limit; size *= 2 {
		tiers = append(tiers, size)
	}
	return append(tiers, limit)
}

// Tiers returns the pool capacities in ascending order
func (bp *BytePool) Tiers() []int {
	return bp.tiers
}

// Get returns a slice of length size from the smallest tier that holds it
func (bp *BytePool) Get(size int) []byte {
	i := sort.SearchInts(bp.tiers, size)
	if i == len(bp.tiers) {
		return make([]byte, size)
	}
	buf := *bp.pools[i].Get().(*[]byte)
	return buf[:size]
}

// Put recycles buf when its capacity is exactly one of the tiers
func (bp *BytePool) Put(buf []byte) {
	c := cap(buf)
	i := sort.SearchInts(bp.tiers, c)
	if i == len(bp.tiers) || bp.tiers[i] != c {
		return
	}
	buf = buf[:c]
	bp.pools[i].Put(&buf)
}

var globalBytePool = NewBytePool()

// GetBytes takes a slice from the global pool
func GetBytes(size int) []byte {
	return globalBytePool.Get(size)
}

// PutBytes returns a slice to the global pool
func PutBytes(buf []byte) {
	globalBytePool.Put(buf)
}
