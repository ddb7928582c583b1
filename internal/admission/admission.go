// Package admission turns resolver answers into connection decisions: it is
// the thin layer a host calls on connection attempts, on server-full
// disconnects and when advertising its capacity.
package admission

import (
	"log/slog"
	"sync/atomic"

	"github.com/Borislavv/go-reserved-slots/config"
	"github.com/Borislavv/go-reserved-slots/internal/messages"
	"github.com/Borislavv/go-reserved-slots/internal/resolver"
	"github.com/Borislavv/go-reserved-slots/internal/shared/scalar"
)

const (
	// CapabilityNotAffected exempts a principal from every reservation.
	CapabilityNotAffected = "reservedslots.notaffected"

	// CapabilityJoinFull lets a principal connect even when no slot remains.
	CapabilityJoinFull = "reservedslots.joinfull"
)

// Principal is whoever attempts to connect. The entitlement check itself
// belongs to the host.
type Principal interface {
	HasCapability(name string) bool
}

type Reason uint8

const (
	ReasonNotAffected Reason = iota
	ReasonJoinFull
	ReasonUnreserved
	ReasonHoldsReservation
	ReasonServerFull
	ReasonReserved
)

func (r Reason) String() string {
	switch r {
	case ReasonNotAffected:
		return "not_affected"
	case ReasonJoinFull:
		return "join_full"
	case ReasonUnreserved:
		return "unreserved"
	case ReasonHoldsReservation:
		return "holds_reservation"
	case ReasonServerFull:
		return "server_full"
	case ReasonReserved:
		return "reserved"
	default:
		return "unknown"
	}
}

type Decision struct {
	Allowed    bool
	Reason     Reason
	Remaining  int
	Capability string // capability guarding the current tier, if any
	Message    string // shown to the principal when not allowed
}

type Gatekeeper interface {
	OnConnect(p Principal, maxSlots, online int) Decision
	OnFullKick(p Principal) (cancel bool)
	AdvertisedMax(online, maxSlots int) int
}

type Gate struct {
	resolver       resolver.Resolver
	bundle         messages.Bundle
	logger         *slog.Logger
	pingPacket     atomic.Bool
	defaultMessage atomic.Pointer[string]
}

func New(cfg *config.Config, r resolver.Resolver, bundle messages.Bundle, logger *slog.Logger) *Gate {
	g := &Gate{resolver: r, bundle: bundle, logger: logger}
	g.Apply(cfg)
	return g
}

// Apply takes the non-table settings of a (re)loaded configuration.
func (g *Gate) Apply(cfg *config.Config) {
	g.pingPacket.Store(scalar.Bool(cfg.ChangePingPacket, true))
	msg := g.bundle.Text(cfg.Locale, messages.KeyReserved)
	g.defaultMessage.Store(&msg)
}

// Remaining is max minus online, never below zero.
func Remaining(maxSlots, online int) int {
	return max(0, maxSlots-online)
}

// OnConnect decides whether p may take one of the remaining slots.
func (g *Gate) OnConnect(p Principal, maxSlots, online int) Decision {
	remaining := Remaining(maxSlots, online)

	if !isAffected(p) {
		return Decision{Allowed: true, Reason: ReasonNotAffected, Remaining: remaining}
	}
	if canJoinFull(p) {
		return Decision{Allowed: true, Reason: ReasonJoinFull, Remaining: remaining}
	}
	if remaining == 0 {
		return g.reject(ReasonServerFull, remaining, "")
	}

	capability, reserved := g.resolver.ResolveCapability(remaining)
	if !reserved {
		return Decision{Allowed: true, Reason: ReasonUnreserved, Remaining: remaining}
	}
	if p.HasCapability(capability) {
		return Decision{Allowed: true, Reason: ReasonHoldsReservation, Remaining: remaining, Capability: capability}
	}
	return g.reject(ReasonReserved, remaining, capability)
}

// OnFullKick reports whether a server-full disconnect of p should be cancelled.
func (g *Gate) OnFullKick(p Principal) bool {
	return isAffected(p) && canJoinFull(p)
}

// AdvertisedMax keeps a full server looking joinable (online+1) when
// change-ping-packet is enabled, so principals holding joinfull still try.
func (g *Gate) AdvertisedMax(online, maxSlots int) int {
	if maxSlots > online {
		return maxSlots
	}
	if g.pingPacket.Load() {
		return online + 1
	}
	return maxSlots
}

func (g *Gate) DefaultMessage() string {
	return *g.defaultMessage.Load()
}

func (g *Gate) reject(reason Reason, remaining int, capability string) Decision {
	msg := g.resolver.ResolveMessage(remaining, g.DefaultMessage())
	g.logger.Debug("connection rejected",
		"reason", reason.String(),
		"remaining", remaining,
		"capability", capability,
	)
	return Decision{Reason: reason, Remaining: remaining, Capability: capability, Message: msg}
}

func isAffected(p Principal) bool  { return !p.HasCapability(CapabilityNotAffected) }
func canJoinFull(p Principal) bool { return p.HasCapability(CapabilityJoinFull) }
