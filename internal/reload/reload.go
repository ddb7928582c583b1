// Package reload polls the configuration file and hands every changed
// version to the host so live sections can be swapped.
package reload

import (
	"context"
	"fmt"
	"os"
	"sync"
	"sync/atomic"

	"github.com/Borislavv/go-reserved-slots/config"
	"github.com/Borislavv/go-reserved-slots/internal/shared/rate"
	"github.com/rs/zerolog/log"
	"github.com/zeebo/xxh3"
)

type Reloader interface {
	ReloaderMetrics() (polls, applied, errors int64)
	Close() error
}

// ApplyFunc receives every successfully parsed new version of the file.
type ApplyFunc func(cfg *config.Config)

type Watcher struct {
	ctx      context.Context
	cancel   context.CancelFunc
	cfg      *config.ReloadCfg
	apply    ApplyFunc
	mu       sync.Mutex
	lastHash uint64
	seen     bool
	counters *reloaderCounters
}

func New(ctx context.Context, cfg *config.ReloadCfg, apply ApplyFunc) Reloader {
	if !cfg.Enabled() || cfg.Path == "" {
		return &NoOpReloader{}
	}
	ctx, cancel := context.WithCancel(ctx)
	return newWatcher(ctx, cancel, cfg, apply).run()
}

func newWatcher(ctx context.Context, cancel context.CancelFunc, cfg *config.ReloadCfg, apply ApplyFunc) *Watcher {
	return &Watcher{
		ctx:      ctx,
		cancel:   cancel,
		cfg:      cfg,
		apply:    apply,
		counters: newReloaderCounters(),
	}
}

func (w *Watcher) ReloaderMetrics() (polls, applied, errors int64) {
	return w.counters.snapshot()
}

func (w *Watcher) Close() error {
	w.cancel()
	return nil
}

func (w *Watcher) run() *Watcher {
	jitter := rate.NewJitter(w.ctx, 1, w.cfg.Interval)
	log.Info().Msgf("[reload] watching %s every %s", w.cfg.Path, w.cfg.Interval)

	go func() {
		defer log.Info().Msgf("[reload] stopped watching %s", w.cfg.Path)
		for {
			select {
			case <-w.ctx.Done():
				return
			case _, ok := <-jitter.Chan():
				if !ok {
					return
				}
				if _, err := w.check(); err != nil {
					log.Error().Err(err).Str("path", w.cfg.Path).Msg("[reload] keeping previous configuration")
				}
			}
		}
	}()

	return w
}

// check reads the file once and applies it when its content changed since
// the last successful apply.
func (w *Watcher) check() (applied bool, err error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.counters.polls.Add(1)

	data, err := os.ReadFile(w.cfg.Path)
	if err != nil {
		w.counters.errors.Add(1)
		return false, fmt.Errorf("read config yaml file %s: %w", w.cfg.Path, err)
	}

	hash := xxh3.Hash(data)
	if w.seen && hash == w.lastHash {
		return false, nil
	}

	cfg, err := config.ParseConfig(data)
	if err != nil {
		w.counters.errors.Add(1)
		return false, fmt.Errorf("unmarshal yaml from %s: %w", w.cfg.Path, err)
	}

	w.apply(cfg)
	w.lastHash, w.seen = hash, true
	w.counters.applied.Add(1)

	log.Info().
		Str("path", w.cfg.Path).
		Int("reserved_slots", cfg.ReservedSlots.Len()).
		Int("custom_messages", cfg.CustomMessages.Len()).
		Msg("[reload] configuration applied")

	return true, nil
}

type reloaderCounters struct {
	polls   atomic.Int64
	applied atomic.Int64
	errors  atomic.Int64
}

func newReloaderCounters() *reloaderCounters {
	return &reloaderCounters{}
}

func (c *reloaderCounters) snapshot() (polls, applied, errors int64) {
	return c.polls.Load(), c.applied.Load(), c.errors.Load()
}

// NoOpReloader is used when reloading is disabled.
type NoOpReloader struct{}

func (NoOpReloader) ReloaderMetrics() (polls, applied, errors int64) {
	return 0, 0, 0
}

func (NoOpReloader) Close() error {
	return nil
}
