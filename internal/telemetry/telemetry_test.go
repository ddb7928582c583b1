package telemetry

import (
	"bytes"
	"context"
	"github.com/Borislavv/go-reserved-slots/config"
	"github.com/Borislavv/go-reserved-slots/internal/reload"
	"github.com/Borislavv/go-reserved-slots/internal/threshold"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	"log/slog"
	"strings"
	"testing"
	"time"
)

// TestDelta_HandlesReset treats a counter reset as a fresh delta.
func TestDelta_HandlesReset(t *testing.T) {
	require.Equal(t, uint64(5), delta(10, 15))
	require.Equal(t, uint64(3), delta(10, 3))
	require.Equal(t, uint64(0), delta(7, 7))
}

// TestLogs_Flush logs per-interval deltas and exports them to Prometheus.
func TestLogs_Flush(t *testing.T) {
	reserved := config.NewSection(config.Entry{Key: "vip", Value: "2"}, config.Entry{Key: "bad", Value: "x"})
	capabilities := threshold.NewCache(reserved, threshold.Capabilities)
	messages := threshold.NewCache(config.NewSection(), threshold.Messages)

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// nil config: no background loop, flush is driven by hand
	l := New(ctx, nil, logger, capabilities, messages, reload.NoOpReloader{})
	require.Equal(t, time.Duration(0), l.Interval())

	hitsBefore := testutil.ToFloat64(TableLookups.WithLabelValues(tableCapabilities, outcomeHit))
	rebuildsBefore := testutil.ToFloat64(TableLookups.WithLabelValues(tableCapabilities, outcomeRebuild))
	droppedBefore := testutil.ToFloat64(TableDroppedEntries.WithLabelValues(tableCapabilities))

	prev := l.sampler.snapshot()
	capabilities.Get()
	capabilities.Get()
	capabilities.Get()
	prev = l.flush(prev)

	require.Equal(t, uint64(2), prev.capabilities.hits)
	require.Equal(t, uint64(1), prev.capabilities.rebuilds)
	require.Equal(t, hitsBefore+2, testutil.ToFloat64(TableLookups.WithLabelValues(tableCapabilities, outcomeHit)))
	require.Equal(t, rebuildsBefore+1, testutil.ToFloat64(TableLookups.WithLabelValues(tableCapabilities, outcomeRebuild)))
	require.Equal(t, droppedBefore+1, testutil.ToFloat64(TableDroppedEntries.WithLabelValues(tableCapabilities)))

	out := buf.String()
	require.True(t, strings.Contains(out, `"msg":"reserved_slots_table"`))
	require.True(t, strings.Contains(out, `"hits":2`))
	require.False(t, strings.Contains(out, "config_reloader"), "no polls, no reloader line")

	// nothing happened since: zero deltas
	buf.Reset()
	l.flush(prev)
	require.True(t, strings.Contains(buf.String(), `"hits":0`))
	require.NoError(t, l.Close())
}

// TestLogs_Loop runs on the configured interval until closed.
func TestLogs_Loop(t *testing.T) {
	capabilities := threshold.NewCache(config.NewSection(), threshold.Capabilities)
	messages := threshold.NewCache(config.NewSection(), threshold.Messages)

	var buf syncBuffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	l := New(context.Background(), &config.TelemetryCfg{Interval: 10 * time.Millisecond}, logger, capabilities, messages, reload.NoOpReloader{})
	defer func() { _ = l.Close() }()

	require.Equal(t, 10*time.Millisecond, l.Interval())
	require.Eventually(t, func() bool {
		return strings.Contains(buf.String(), "custom_messages_table")
	}, time.Second, 5*time.Millisecond)
}
