// Package resolver answers the two per-connection questions: which capability
// guards the current remaining-slots level and which message a rejected
// connection is shown.
package resolver

import (
	"github.com/Borislavv/go-reserved-slots/internal/threshold"
)

type Resolver interface {
	ResolveCapability(remaining int) (capability string, ok bool)
	ResolveMessage(remaining int, defaultMessage string) string
}

// Reservations owns one cache per configuration section. Nothing is shared
// between instances.
type Reservations struct {
	capabilities *threshold.Cache
	messages     *threshold.Cache
}

// New wires the reserved-slots section (capability -> boundary) and the
// custom-messages section (boundary -> message).
func New(reservedSlots, customMessages threshold.Source) *Reservations {
	return &Reservations{
		capabilities: threshold.NewCache(reservedSlots, threshold.Capabilities),
		messages:     threshold.NewCache(customMessages, threshold.Messages),
	}
}

// ResolveCapability returns the capability of the next tier about to be crossed:
// the one with the smallest boundary still >= remaining.
func (r *Reservations) ResolveCapability(remaining int) (string, bool) {
	tier, ok := r.capabilities.Get().Nearest(remaining)
	return tier.Payload, ok
}

// ResolveMessage applies the same rule to the message table and falls back
// to defaultMessage when no boundary is >= remaining.
func (r *Reservations) ResolveMessage(remaining int, defaultMessage string) string {
	if tier, ok := r.messages.Get().Nearest(remaining); ok {
		return tier.Payload
	}
	return defaultMessage
}

// Tables returns the current tables without touching resolution semantics.
func (r *Reservations) Tables() (capabilities, messages *threshold.Table) {
	return r.capabilities.Get(), r.messages.Get()
}

func (r *Reservations) Caches() (capabilities, messages threshold.Cacher) {
	return r.capabilities, r.messages
}
