package metrics

import (
	coremetrics "github.com/packlab/packsim/core/metrics"
	"github.com/packlab/packsim/core/model"
)

// MultiSink fans events out to multiple sinks.
type MultiSink struct {
	Sinks []coremetrics.MetricsSink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...coremetrics.MetricsSink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordBuild forwards the event to all sinks, returning the first error
// encountered.
func (m *MultiSink) RecordBuild(ev coremetrics.BuildEvent) error {
	for _, s := range m.Sinks {
		if err := s.RecordBuild(ev); err != nil {
			return err
		}
	}
	return nil
}

// RecordSimulation forwards the event to all sinks.
func (m *MultiSink) RecordSimulation(ev coremetrics.SimulationEvent) error {
	for _, s := range m.Sinks {
		if err := s.RecordSimulation(ev); err != nil {
			return err
		}
	}
	return nil
}

// RecordCellSeries forwards series samples to sinks that persist them.
func (m *MultiSink) RecordCellSeries(runID string, chem model.Chemistry, res model.CellResult) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(coremetrics.SampleRecorder); ok {
			if err := rec.RecordCellSeries(runID, chem, res); err != nil {
				return err
			}
		}
	}
	return nil
}
