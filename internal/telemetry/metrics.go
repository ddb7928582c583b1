package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	tableCapabilities = "reserved_slots"
	tableMessages     = "custom_messages"

	outcomeHit     = "hit"
	outcomeRebuild = "rebuild"
)

var (
	TableLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "reservedslots_table_lookups_total",
		Help: "Threshold table lookups by table and outcome (hit or rebuild)",
	}, []string{"table", "outcome"})

	TableDroppedEntries = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "reservedslots_table_dropped_entries_total",
		Help: "Configuration entries rejected while building threshold tables",
	}, []string{"table"})

	ConfigReloads = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "reservedslots_config_reloads_total",
		Help: "Configuration file reloads by result (applied or error)",
	}, []string{"result"})
)

func export(d snapshot) {
	exportTable(tableCapabilities, d.capabilities)
	exportTable(tableMessages, d.messages)

	ConfigReloads.WithLabelValues("applied").Add(float64(d.reloadApplied))
	ConfigReloads.WithLabelValues("error").Add(float64(d.reloadErrors))
}

func exportTable(table string, d tableSnapshot) {
	TableLookups.WithLabelValues(table, outcomeHit).Add(float64(d.hits))
	TableLookups.WithLabelValues(table, outcomeRebuild).Add(float64(d.rebuilds))
	TableDroppedEntries.WithLabelValues(table).Add(float64(d.dropped))
}
