// Package metrics defines the observability contract of the simulation core.
// Infrastructure sinks (Prometheus, InfluxDB) live under infra/metrics.
package metrics

import (
	"time"

	"github.com/packlab/packsim/core/model"
)

// BuildEvent captures the construction of one pack topology.
type BuildEvent struct {
	Chemistry  model.Chemistry
	Series     int
	Parallel   int
	CellsBuilt int
	Time       time.Time
}

// SimulationEvent captures the outcome of one pack simulation run.
type SimulationEvent struct {
	RunID         string
	Chemistry     model.Chemistry
	Cells         int
	DurationHours float64
	WallTime      time.Duration
	Err           error
	Time          time.Time
}

// MetricsSink records builder and runner events for observability purposes.
type MetricsSink interface {
	RecordBuild(ev BuildEvent) error
	RecordSimulation(ev SimulationEvent) error
}

// SampleRecorder is an optional extension for sinks that persist individual
// time-series samples (e.g. InfluxDB).
type SampleRecorder interface {
	RecordCellSeries(runID string, chem model.Chemistry, res model.CellResult) error
}

// NopSink discards all events.
type NopSink struct{}

func (NopSink) RecordBuild(BuildEvent) error           { return nil }
func (NopSink) RecordSimulation(SimulationEvent) error { return nil }

// Config defines settings for metrics sinks.
type Config struct {
	PrometheusEnabled bool   `json:"prometheus_enabled"`
	PrometheusPort    string `json:"prometheus_port"`
	InfluxEnabled     bool   `json:"influx_enabled"`
	InfluxURL         string `json:"influx_url"`
	InfluxToken       string `json:"influx_token"`
	InfluxOrg         string `json:"influx_org"`
	InfluxBucket      string `json:"influx_bucket"`
}
