package reservedslots

import (
	"context"
	"io"
	"log/slog"

	"github.com/Borislavv/go-reserved-slots/config"
	"github.com/Borislavv/go-reserved-slots/internal/admission"
	"github.com/Borislavv/go-reserved-slots/internal/messages"
	"github.com/Borislavv/go-reserved-slots/internal/reload"
	"github.com/Borislavv/go-reserved-slots/internal/resolver"
	"github.com/Borislavv/go-reserved-slots/internal/telemetry"
)

type ReservedSlots interface {
	resolver.Resolver
	admission.Gatekeeper
	io.Closer
}

type Slots struct {
	*resolver.Reservations
	*admission.Gate
	reloader  reload.Reloader
	telemeter telemetry.Logger
	cfg       *config.Config
	cls       context.CancelFunc
}

// New builds the engine over the live sections of cfg. The sections stay
// owned by the caller: mutating them (or letting the reloader replace them)
// is picked up on the next query.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) *Slots {
	ctx, cancel := context.WithCancel(ctx)
	cfg.AdjustConfig()

	reservations := resolver.New(cfg.ReservedSlots, cfg.CustomMessages)
	gate := admission.New(cfg, reservations, messages.Default(), logger)

	s := &Slots{Reservations: reservations, Gate: gate, cfg: cfg, cls: cancel}
	s.reloader = reload.New(ctx, cfg.Reload, s.apply)

	capabilities, msgs := reservations.Caches()
	s.telemeter = telemetry.New(ctx, cfg.Telemetry, logger, capabilities, msgs, s.reloader)

	return s
}

// apply copies a freshly loaded configuration into the live one.
func (s *Slots) apply(next *config.Config) {
	s.cfg.ReservedSlots.Replace(next.ReservedSlots.Snapshot().Entries)
	s.cfg.CustomMessages.Replace(next.CustomMessages.Snapshot().Entries)
	s.Gate.Apply(next)
}

func (s *Slots) Close() error {
	s.cls()
	return nil
}
