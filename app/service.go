// Package app wires the configuration into a runnable simulation service.
package app

import (
	"context"
	"fmt"

	"github.com/packlab/packsim/config"
	coremetrics "github.com/packlab/packsim/core/metrics"
	"github.com/packlab/packsim/core/model"
	"github.com/packlab/packsim/core/pack"
	"github.com/packlab/packsim/core/sim"
	"github.com/packlab/packsim/core/telemetry"
	"github.com/packlab/packsim/infra/logger"
	"github.com/packlab/packsim/infra/metrics"
	"github.com/packlab/packsim/infra/mqtt"
)

// Service holds the wired builder, runner and sinks for one configuration.
type Service struct {
	cfg         *config.Config
	builder     *pack.Builder
	runner      *sim.Runner
	pub         telemetry.Publisher
	log         logger.Logger
	promEnabled bool
	promPort    string
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	logg := logger.New("service")

	var sinks []coremetrics.MetricsSink
	if cfg.Metrics.PrometheusEnabled {
		sink, err := metrics.NewPromSink(cfg.Metrics)
		if err != nil {
			return nil, fmt.Errorf("prom sink: %w", err)
		}
		sinks = append(sinks, sink)
	}
	if cfg.Metrics.InfluxEnabled {
		sinks = append(sinks, metrics.NewInfluxSinkWithFallback(cfg.Metrics))
	}
	var sink coremetrics.MetricsSink = coremetrics.NopSink{}
	if len(sinks) == 1 {
		sink = sinks[0]
	} else if len(sinks) > 1 {
		sink = metrics.NewMultiSink(sinks...)
	}

	var pub telemetry.Publisher = telemetry.NopPublisher{}
	if cfg.Telemetry.MQTTEnabled {
		p, err := mqtt.NewPahoPublisher(cfg.Telemetry.MQTT)
		if err != nil {
			return nil, fmt.Errorf("mqtt publisher: %w", err)
		}
		pub = p
	}

	solver := sim.NewRK4Solver(cfg.Simulate.StepSeconds)
	profile := sim.ConstantCurrent(cfg.Simulate.CurrentA)
	return &Service{
		cfg:         cfg,
		builder:     pack.NewBuilder(logger.New("builder"), sink),
		runner:      sim.NewRunner(solver, profile, logger.New("runner"), sink, pub),
		pub:         pub,
		log:         logg,
		promEnabled: cfg.Metrics.PrometheusEnabled,
		promPort:    cfg.Metrics.PrometheusPort,
	}, nil
}

// Run builds the configured pack and simulates it, returning the typed
// result. The Prometheus server, if enabled, runs for the duration of ctx.
func (s *Service) Run(ctx context.Context) (*model.PackResult, error) {
	if s.promEnabled {
		go func() {
			if err := metrics.StartPromServer(ctx, ":"+s.promPort); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}

	chem, err := s.cfg.Pack.Validate()
	if err != nil {
		return nil, err
	}
	topo, err := s.builder.Build(s.cfg.Pack.Series, s.cfg.Pack.Parallel, chem)
	if err != nil {
		return nil, err
	}
	return s.runner.SimulatePack(ctx, topo, s.cfg.Simulate.DurationHours)
}

// Close releases the telemetry publisher.
func (s *Service) Close() error {
	return s.pub.Close()
}
