package kgp

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatsIncAndGet(t *testing.T) {
	s := NewStats()
	assert.EqualValues(t, 0, s.Get("moves"))
	assert.EqualValues(t, 1, s.Inc("moves"))
	assert.EqualValues(t, 2, s.Inc("moves"))
	assert.EqualValues(t, 2, s.Get("moves"))
}

func TestStatsConcurrentInc(t *testing.T) {
	s := NewStats()
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Inc("hits")
		}()
	}
	wg.Wait()
	assert.EqualValues(t, 100, s.Get("hits"))
}

func TestStatsSnapshot(t *testing.T) {
	s := NewStats()
	s.Inc("a")
	s.Inc("b")
	s.Inc("b")
	snap := s.Snapshot()
	assert.EqualValues(t, 1, snap["a"])
	assert.EqualValues(t, 2, snap["b"])
}
