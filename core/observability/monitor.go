// Package observability keeps in-process request statistics.
package observability

import (
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

// latencyBounds are the upper bounds of the latency buckets. The last bucket
// is unbounded.
var latencyBounds = [...]time.Duration{
	time.Millisecond,
	5 * time.Millisecond,
	10 * time.Millisecond,
	50 * time.Millisecond,
	100 * time.Millisecond,
	500 * time.Millisecond,
	time.Second,
	5 * time.Second,
	10 * time.Second,
}

// BucketCount is the number of latency buckets
const BucketCount = len(latencyBounds) + 1

// Monitor aggregates request counts and latencies per key
type Monitor struct {
	enabled atomic.Bool
	entries sync.Map

	total struct {
		requests atomic.Uint64
		errors   atomic.Uint64
		duration atomic.Uint64
	}
}

type entry struct {
	count    atomic.Uint64
	errors   atomic.Uint64
	duration atomic.Uint64
	min      atomic.Uint64
	max      atomic.Uint64
	buckets  [BucketCount]atomic.Uint64
}

// Stats is a point-in-time copy of one key's counters
type Stats struct {
	Key     string
	Count   uint64
	Errors  uint64
	Total   time.Duration
	Min     time.Duration
	Max     time.Duration
	Buckets [BucketCount]uint64
}

// Avg returns the mean latency, or zero when nothing was recorded
func (s Stats) Avg() time.Duration {
	if s.Count == 0 {
		return 0
	}
	return s.Total / time.Duration(s.Count)
}

// NewMonitor creates an enabled monitor
func NewMonitor() *Monitor {
	m := &Monitor{}
	m.enabled.Store(true)
	return m
}

// SetEnabled turns recording on or off
func (m *Monitor) SetEnabled(on bool) {
	m.enabled.Store(on)
}

// Record adds one observation under key
func (m *Monitor) Record(key string, d time.Duration, isError bool) {
	if !m.enabled.Load() {
		return
	}

	val, _ := m.entries.LoadOrStore(key, &entry{})
	e := val.(*entry)

	ns := uint64(d.Nanoseconds())
	e.count.Add(1)
	e.duration.Add(ns)
	if isError {
		e.errors.Add(1)
		m.total.errors.Add(1)
	}
	updateMinMax(e, ns)
	e.buckets[bucketFor(d)].Add(1)

	m.total.requests.Add(1)
	m.total.duration.Add(ns)
}

func updateMinMax(e *entry, d uint64) {
	for {
		cur := e.min.Load()
		if cur != 0 && d >= cur {
			break
		}
		if e.min.CompareAndSwap(cur, d) {
			break
		}
	}
	for {
		cur := e.max.Load()
		if d <= cur {
			break
		}
		if e.max.CompareAndSwap(cur, d) {
			break
		}
	}
}

func bucketFor(d time.Duration) int {
	for i, bound := range latencyBounds {
		if d < bound {
			return i
		}
	}
	return len(latencyBounds)
}

// Snapshot returns the per-key stats sorted by key
func (m *Monitor) Snapshot() []Stats {
	var out []Stats
	m.entries.Range(func(key, value any) bool {
		e := value.(*entry)
		s := Stats{
			Key:    key.(string),
			Count:  e.count.Load(),
			Errors: e.errors.Load(),
			Total:  time.Duration(e.duration.Load()),
			Min:    time.Duration(e.min.Load()),
			Max:    time.Duration(e.max.Load()),
		}
		for i := range e.buckets {
			s.Buckets[i] = e.buckets[i].Load()
		}
		out = append(out, s)
		return true
	})

	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// Totals returns the request count, error count and summed latency over all keys
func (m *Monitor) Totals() (requests, errors uint64, duration time.Duration) {
	return m.total.requests.Load(), m.total.errors.Load(), time.Duration(m.total.duration.Load())
}
