package store

import "sync/atomic"

// Stats counts how real-path reads resolved. Fallbacks to mock are counted
// per cause so an operator can tell an empty table from a broken store.
type Stats struct {
	realHits         int64
	emptyFallbacks   int64
	failedFallbacks  int64
	mutationFailures int64
}

// StatsSnapshot is a point-in-time copy of Stats.
type StatsSnapshot struct {
	RealHits         int64 `json:"realHits"`
	EmptyFallbacks   int64 `json:"emptyFallbacks"`
	FailedFallbacks  int64 `json:"failedFallbacks"`
	MutationFailures int64 `json:"mutationFailures"`
}

// RecordRead counts one real read by its outcome.
func (s *Stats) RecordRead(k Kind) {
	switch k {
	case KindOK:
		atomic.AddInt64(&s.realHits, 1)
	case KindEmpty:
		atomic.AddInt64(&s.emptyFallbacks, 1)
	case KindFailed:
		atomic.AddInt64(&s.failedFallbacks, 1)
	}
}

func (s *Stats) RecordMutationFailure() {
	atomic.AddInt64(&s.mutationFailures, 1)
}

func (s *Stats) Snapshot() StatsSnapshot {
	return StatsSnapshot{
		RealHits:         atomic.LoadInt64(&s.realHits),
		EmptyFallbacks:   atomic.LoadInt64(&s.emptyFallbacks),
		FailedFallbacks:  atomic.LoadInt64(&s.failedFallbacks),
		MutationFailures: atomic.LoadInt64(&s.mutationFailures),
	}
}

// Reset zeroes every counter.
func (s *Stats) Reset() {
	atomic.StoreInt64(&s.realHits, 0)
	atomic.StoreInt64(&s.emptyFallbacks, 0)
	atomic.StoreInt64(&s.failedFallbacks, 0)
	atomic.StoreInt64(&s.mutationFailures, 0)
}

// Reads is the total number of real reads recorded.
func (s StatsSnapshot) Reads() int64 {
	return s.RealHits + s.EmptyFallbacks + s.FailedFallbacks
}

// FallbackRate returns the share of real reads answered from mock, as a percentage.
func (s StatsSnapshot) FallbackRate() float64 {
	total := s.Reads()
	if total == 0 {
		return 0
	}
	return float64(s.EmptyFallbacks+s.FailedFallbacks) / float64(total) * 100
}
