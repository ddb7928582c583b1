package telemetry

import (
	"github.com/Borislavv/go-reserved-slots/internal/reload"
	"github.com/Borislavv/go-reserved-slots/internal/threshold"
)

type sampler struct {
	capabilities threshold.Cacher
	messages     threshold.Cacher
	reloader     reload.Reloader
}

func newSampler(capabilities, messages threshold.Cacher, reloader reload.Reloader) sampler {
	return sampler{capabilities: capabilities, messages: messages, reloader: reloader}
}

// tableSnapshot holds cumulative counters of one threshold cache (monotonic).
type tableSnapshot struct {
	hits     uint64
	rebuilds uint64
	dropped  uint64
}

// snapshot holds cumulative counters (monotonic).
type snapshot struct {
	capabilities tableSnapshot
	messages     tableSnapshot

	reloadPolls   uint64
	reloadApplied uint64
	reloadErrors  uint64
}

func (s sampler) snapshot() snapshot {
	polls, applied, errs := s.reloader.ReloaderMetrics()

	return snapshot{
		capabilities: sampleTable(s.capabilities),
		messages:     sampleTable(s.messages),

		reloadPolls:   uint64(max(polls, 0)),
		reloadApplied: uint64(max(applied, 0)),
		reloadErrors:  uint64(max(errs, 0)),
	}
}

func sampleTable(c threshold.Cacher) tableSnapshot {
	hits, rebuilds, dropped := c.CacheMetrics()
	return tableSnapshot{
		hits:     uint64(max(hits, 0)),
		rebuilds: uint64(max(rebuilds, 0)),
		dropped:  uint64(max(dropped, 0)),
	}
}

// deltaSnapshot converts cumulative snapshots to per-interval deltas.
// If counters reset (cur < prev), it treats cur as the delta.
func deltaSnapshot(prev, cur snapshot) snapshot {
	return snapshot{
		capabilities: deltaTable(prev.capabilities, cur.capabilities),
		messages:     deltaTable(prev.messages, cur.messages),

		reloadPolls:   delta(prev.reloadPolls, cur.reloadPolls),
		reloadApplied: delta(prev.reloadApplied, cur.reloadApplied),
		reloadErrors:  delta(prev.reloadErrors, cur.reloadErrors),
	}
}

func deltaTable(prev, cur tableSnapshot) tableSnapshot {
	return tableSnapshot{
		hits:     delta(prev.hits, cur.hits),
		rebuilds: delta(prev.rebuilds, cur.rebuilds),
		dropped:  delta(prev.dropped, cur.dropped),
	}
}

func delta(prev, cur uint64) uint64 {
	if cur >= prev {
		return cur - prev
	}
	return cur
}
