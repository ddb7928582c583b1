package threshold

import (
	"github.com/stretchr/testify/require"
	"sync"
	"testing"
)

// TestCounters_Snapshot verifies that counters correctly track and snapshot metrics.
func TestCounters_Snapshot(t *testing.T) {
	c := newCounters()

	hits, rebuilds, dropped := c.snapshot()
	require.Equal(t, int64(0), hits)
	require.Equal(t, int64(0), rebuilds)
	require.Equal(t, int64(0), dropped)

	c.hits.Add(10)
	c.rebuilds.Add(2)
	c.dropped.Add(5)

	hits, rebuilds, dropped = c.snapshot()
	require.Equal(t, int64(10), hits)
	require.Equal(t, int64(2), rebuilds)
	require.Equal(t, int64(5), dropped)
}

// TestCounters_Concurrent verifies that counters are thread-safe.
func TestCounters_Concurrent(t *testing.T) {
	c := newCounters()

	const numGoroutines = 10
	const opsPerGoroutine = 100

	var wg sync.WaitGroup
	wg.Add(numGoroutines)
	for i := 0; i < numGoroutines; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < opsPerGoroutine; j++ {
				c.hits.Add(1)
				c.rebuilds.Add(1)
				c.dropped.Add(1)
			}
		}()
	}
	wg.Wait()

	hits, rebuilds, dropped := c.snapshot()
	require.Equal(t, int64(numGoroutines*opsPerGoroutine), hits)
	require.Equal(t, int64(numGoroutines*opsPerGoroutine), rebuilds)
	require.Equal(t, int64(numGoroutines*opsPerGoroutine), dropped)
}
