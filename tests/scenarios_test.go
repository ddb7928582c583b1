package tests

import (
	"context"
	"github.com/Borislavv/go-reserved-slots"
	"github.com/Borislavv/go-reserved-slots/config"
	"github.com/Borislavv/go-reserved-slots/internal/admission"
	"github.com/Borislavv/go-reserved-slots/tests/help"
	"github.com/stretchr/testify/require"
	"testing"
)

func newSlots(t *testing.T, cfg *config.Config) *reservedslots.Slots {
	t.Helper()
	slots := reservedslots.New(context.Background(), cfg, help.Logger())
	t.Cleanup(func() { _ = slots.Close() })
	return slots
}

// TestScenario_MessageTiers resolves the tightest message boundary or the default.
func TestScenario_MessageTiers(t *testing.T) {
	slots := newSlots(t, help.Cfg())

	require.Equal(t, "Five", slots.ResolveMessage(4, "Default"))
	require.Equal(t, "Three", slots.ResolveMessage(3, "Default"))
	require.Equal(t, "Default", slots.ResolveMessage(9, "Default"))
}

// TestScenario_MessageAdded follows an operator edit of the same section.
func TestScenario_MessageAdded(t *testing.T) {
	cfg := help.Cfg()
	cfg.CustomMessages = config.NewSection(config.Entry{Key: "5", Value: "Five"})
	slots := newSlots(t, cfg)

	require.Equal(t, "Five", slots.ResolveMessage(4, "Default"))
	cfg.CustomMessages.Set("3", "Three")
	require.Equal(t, "Three", slots.ResolveMessage(4, "Default"))
}

// TestScenario_CapabilityTiers picks the next tier about to be crossed.
func TestScenario_CapabilityTiers(t *testing.T) {
	slots := newSlots(t, help.Cfg())

	capability, ok := slots.ResolveCapability(2)
	require.True(t, ok)
	require.Equal(t, "guild-leader", capability)

	capability, ok = slots.ResolveCapability(0)
	require.True(t, ok)
	require.Equal(t, "vip2", capability)
}

// TestScenario_NegativeBoundaryExcluded drops a negative reservation entirely.
func TestScenario_NegativeBoundaryExcluded(t *testing.T) {
	cfg := help.Cfg()
	cfg.ReservedSlots = config.NewSection(config.Entry{Key: "admin", Value: "-5"})
	slots := newSlots(t, cfg)

	_, ok := slots.ResolveCapability(-5)
	require.False(t, ok)

	capabilities, _ := slots.Tables()
	require.Equal(t, 0, capabilities.Len())
}

// TestScenario_UnparsableBoundaryExcluded keeps the table size unaffected.
func TestScenario_UnparsableBoundaryExcluded(t *testing.T) {
	cfg := help.Cfg()
	slots := newSlots(t, cfg)

	before, _ := slots.Tables()
	cfg.ReservedSlots.Set("5", "bad")
	after, _ := slots.Tables()

	require.NotSame(t, before, after)
	require.Equal(t, before.Len(), after.Len())
	require.True(t, before.Equal(after))
}

// TestScenario_MessagesOnly lets everyone in until no slot remains.
func TestScenario_MessagesOnly(t *testing.T) {
	slots := newSlots(t, help.MessagesOnlyCfg())
	p := admission.NewGrants()

	require.True(t, slots.OnConnect(p, 10, 9).Allowed)

	d := slots.OnConnect(p, 10, 10)
	require.False(t, d.Allowed)
	require.Equal(t, "Three", d.Message)
}

// TestScenario_Telemetry runs alongside queries and stops on Close.
func TestScenario_Telemetry(t *testing.T) {
	slots := newSlots(t, help.TelemetryCfg())
	for i := 0; i < 100; i++ {
		slots.ResolveCapability(i % 10)
	}
	require.NoError(t, slots.Close())
}
