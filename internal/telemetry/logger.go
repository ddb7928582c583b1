package telemetry

import (
	"context"
	"log/slog"
	"time"

	"github.com/Borislavv/go-reserved-slots/config"
	"github.com/Borislavv/go-reserved-slots/internal/reload"
	"github.com/Borislavv/go-reserved-slots/internal/threshold"
)

type Logger interface {
	Interval() time.Duration
	Close() error
}

type Logs struct {
	ctx      context.Context
	cancel   context.CancelFunc
	cfg      *config.TelemetryCfg
	logger   *slog.Logger
	sampler  sampler
	interval time.Duration
}

func New(
	ctx context.Context,
	cfg *config.TelemetryCfg,
	logger *slog.Logger,
	capabilities threshold.Cacher,
	messages threshold.Cacher,
	reloader reload.Reloader,
) *Logs {
	ctx, cancel := context.WithCancel(ctx)
	l := &Logs{
		ctx:     ctx,
		cancel:  cancel,
		cfg:     cfg,
		logger:  logger,
		sampler: newSampler(capabilities, messages, reloader),
	}
	if cfg.Enabled() {
		l.interval = cfg.Interval
	}
	return l.run()
}

func (l *Logs) Interval() time.Duration {
	return l.interval
}

func (l *Logs) Close() error {
	l.cancel()
	return nil
}

func (l *Logs) run() *Logs {
	if l.cfg.Enabled() && l.interval > 0 {
		go l.loop()
	}
	return l
}

func (l *Logs) loop() {
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	prev := l.sampler.snapshot()
	for {
		select {
		case <-l.ctx.Done():
			return
		case <-ticker.C:
			prev = l.flush(prev)
		}
	}
}

// flush logs and exports the deltas accumulated since prev and returns the
// new cumulative snapshot.
func (l *Logs) flush(prev snapshot) snapshot {
	cur := l.sampler.snapshot()
	d := deltaSnapshot(prev, cur)

	common := []any{"interval", l.interval.String()}

	l.logger.Info("reserved_slots_table",
		append(common,
			"hits", int64(d.capabilities.hits),
			"rebuilds", int64(d.capabilities.rebuilds),
			"dropped", int64(d.capabilities.dropped),
		)...,
	)

	l.logger.Info("custom_messages_table",
		append(common,
			"hits", int64(d.messages.hits),
			"rebuilds", int64(d.messages.rebuilds),
			"dropped", int64(d.messages.dropped),
		)...,
	)

	if d.reloadPolls > 0 {
		l.logger.Info("config_reloader",
			append(common,
				"polls", int64(d.reloadPolls),
				"applied", int64(d.reloadApplied),
				"errors", int64(d.reloadErrors),
			)...,
		)
	}

	export(d)
	return cur
}
