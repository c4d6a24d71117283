package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/packlab/packsim/core/metrics"
)

// PromSink records builder and simulation events in Prometheus metrics.
type PromSink struct {
	cellsBuilt  *prometheus.CounterVec
	simulations *prometheus.CounterVec
	simSeconds  *prometheus.HistogramVec
	packCells   prometheus.Gauge
}

// NewPromSink registers pack metrics on the default Prometheus registerer.
// The Prometheus server should be started separately using cfg.PrometheusPort.
func NewPromSink(cfg coremetrics.Config) (coremetrics.MetricsSink, error) {
	return NewPromSinkWithRegistry(cfg, prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(_ coremetrics.Config, reg prometheus.Registerer) (coremetrics.MetricsSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	cellsBuilt := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pack_cells_built_total",
		Help: "Total number of cell handles created by the topology builder",
	}, []string{"chemistry"})
	simulations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pack_simulations_total",
		Help: "Total number of pack simulation runs",
	}, []string{"chemistry", "success"})
	simSeconds := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "pack_simulation_duration_seconds",
		Help:    "Wall-clock time spent solving a full pack",
		Buckets: prometheus.DefBuckets,
	}, []string{"chemistry"})
	packCells := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "pack_cells",
		Help: "Cell count of the most recently built pack",
	})

	if err := reg.Register(cellsBuilt); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			cellsBuilt = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(simulations); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			simulations = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(simSeconds); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			simSeconds = are.ExistingCollector.(*prometheus.HistogramVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(packCells); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			packCells = are.ExistingCollector.(prometheus.Gauge)
		} else {
			return nil, err
		}
	}

	return &PromSink{cellsBuilt: cellsBuilt, simulations: simulations, simSeconds: simSeconds, packCells: packCells}, nil
}

// RecordBuild counts the factory invocations of one build.
func (s *PromSink) RecordBuild(ev coremetrics.BuildEvent) error {
	s.cellsBuilt.WithLabelValues(ev.Chemistry.String()).Add(float64(ev.CellsBuilt))
	s.packCells.Set(float64(ev.CellsBuilt))
	return nil
}

// RecordSimulation counts a run and observes its wall time.
func (s *PromSink) RecordSimulation(ev coremetrics.SimulationEvent) error {
	s.simulations.WithLabelValues(ev.Chemistry.String(), strconv.FormatBool(ev.Err == nil)).Inc()
	s.simSeconds.WithLabelValues(ev.Chemistry.String()).Observe(ev.WallTime.Seconds())
	return nil
}
