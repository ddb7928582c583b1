package threshold

import (
	"strconv"
	"sync/atomic"

	"github.com/Borislavv/go-reserved-slots/config"
	"golang.org/x/sync/singleflight"
)

// Source is the read side of a configuration section.
type Source interface {
	Snapshot() *config.Snapshot
}

type Cacher interface {
	Get() *Table
	CacheMetrics() (hits, rebuilds, dropped int64)
}

// state pairs a table with the fingerprint it was built from.
// It is published as a whole, never updated field by field.
type state struct {
	fingerprint uint64
	table       *Table
}

// Cache memoizes the Table built from a Source until the source fingerprint changes.
type Cache struct {
	source   Source
	build    Builder
	current  atomic.Pointer[state]
	group    singleflight.Group
	counters *counters
}

func NewCache(source Source, build Builder) *Cache {
	return &Cache{
		source:   source,
		build:    build,
		counters: newCounters(),
	}
}

// Get returns the table for the current source contents, rebuilding it only
// when the fingerprint differs from the one the stored table was built from.
func (c *Cache) Get() *Table {
	snap := c.source.Snapshot()
	if cur := c.current.Load(); cur != nil && cur.fingerprint == snap.Fingerprint {
		c.counters.hits.Add(1)
		return cur.table
	}

	// concurrent readers of the same stale fingerprint share one build
	v, _, _ := c.group.Do(strconv.FormatUint(snap.Fingerprint, 16), func() (any, error) {
		if cur := c.current.Load(); cur != nil && cur.fingerprint == snap.Fingerprint {
			return cur, nil
		}
		table, dropped := c.build(snap.Entries)
		next := &state{fingerprint: snap.Fingerprint, table: table}
		c.current.Store(next)
		c.counters.rebuilds.Add(1)
		c.counters.dropped.Add(int64(dropped))
		return next, nil
	})
	return v.(*state).table
}

func (c *Cache) CacheMetrics() (hits, rebuilds, dropped int64) {
	return c.counters.snapshot()
}
