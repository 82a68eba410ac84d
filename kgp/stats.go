package kgp

import "github.com/puzpuzpuz/xsync/v3"

// Stats counts session-lifetime events (commands dispatched, workers
// spawned, outbound messages sent, ...). It wraps an xsync.MapOf the
// same way caps.Caps wraps an xsync.Map in the reference BGP stack:
// a thin, always-safe-for-concurrent-use counter store, since the
// dispatcher, the sender and every worker goroutine touch it at once.
type Stats struct {
	db *xsync.MapOf[string, uint64]
}

// NewStats returns a ready-to-use, empty Stats.
func NewStats() *Stats {
	return &Stats{db: xsync.NewMapOf[string, uint64]()}
}

// Inc increments the named counter by one and returns its new value.
func (s *Stats) Inc(name string) uint64 {
	v, _ := s.db.Compute(name, func(old uint64, loaded bool) (uint64, bool) {
		return old + 1, false
	})
	return v
}

// Get returns the current value of the named counter.
func (s *Stats) Get(name string) uint64 {
	v, _ := s.db.Load(name)
	return v
}

// Snapshot returns a point-in-time copy of all counters.
func (s *Stats) Snapshot() map[string]uint64 {
	out := make(map[string]uint64)
	s.db.Range(func(k string, v uint64) bool {
		out[k] = v
		return true
	})
	return out
}
