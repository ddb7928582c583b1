package threshold

import "sync/atomic"

type counters struct {
	hits     atomic.Int64 // Get served from the stored table
	rebuilds atomic.Int64 // tables built after a fingerprint change
	dropped  atomic.Int64 // entries rejected by the builder, summed over rebuilds
}

func newCounters() *counters {
	return &counters{
		hits:     atomic.Int64{},
		rebuilds: atomic.Int64{},
		dropped:  atomic.Int64{},
	}
}

func (c *counters) snapshot() (hits, rebuilds, dropped int64) {
	return c.hits.Load(), c.rebuilds.Load(), c.dropped.Load()
}
