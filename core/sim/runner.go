package sim

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/packlab/packsim/core/logger"
	"github.com/packlab/packsim/core/metrics"
	"github.com/packlab/packsim/core/model"
	"github.com/packlab/packsim/core/pack"
	"github.com/packlab/packsim/core/telemetry"
)

// secondsPerHour converts the user-facing duration into the solver time base.
const secondsPerHour = 3600

// Runner drives a full pack simulation: it converts the requested duration
// from hours to seconds, solves every cell in the grid sequentially, and
// assembles a typed PackResult. Cells are simulated independently; no
// electrical coupling between grid positions is modelled.
type Runner struct {
	solver  Solver
	profile Profile
	log     logger.Logger
	sink    metrics.MetricsSink
	pub     telemetry.Publisher
}

// NewRunner wires a runner. Nil sink and publisher default to no-ops.
func NewRunner(solver Solver, profile Profile, log logger.Logger, sink metrics.MetricsSink, pub telemetry.Publisher) *Runner {
	if sink == nil {
		sink = metrics.NopSink{}
	}
	if pub == nil {
		pub = telemetry.NopPublisher{}
	}
	return &Runner{solver: solver, profile: profile, log: log, sink: sink, pub: pub}
}

// SimulatePack runs every cell of topo for durationHours. The solver is
// invoked with a span of durationHours*3600 seconds. Row/column order is
// deterministic (row-major). The first cell failure aborts the run.
func (r *Runner) SimulatePack(ctx context.Context, topo *pack.Topology, durationHours float64) (*model.PackResult, error) {
	if durationHours <= 0 {
		return nil, &model.InvalidConfigurationError{Field: "duration_hours", Reason: "must be positive"}
	}
	tEnd := durationHours * secondsPerHour
	res := &model.PackResult{
		RunID:     uuid.NewString(),
		Chemistry: topo.Chemistry(),
		Series:    topo.Series(),
		Parallel:  topo.Parallel(),
		Cells:     make([]model.CellResult, 0, topo.CellCount()),
	}
	start := time.Now()
	if r.log != nil {
		r.log.Infof("run %s: simulating %d cells for %.2f h (%.0f s)", res.RunID, topo.CellCount(), durationHours, tEnd)
	}

	var runErr error
	for row := 0; row < topo.Parallel() && runErr == nil; row++ {
		for col := 0; col < topo.Series(); col++ {
			c := topo.Cell(row, col)
			series, err := r.solver.Solve(ctx, c, r.profile, tEnd)
			if err != nil {
				runErr = err
				if r.log != nil {
					r.log.Errorf("run %s: cell (%d,%d) failed: %v", res.RunID, row, col, err)
				}
				break
			}
			cr := model.CellResult{Row: row, Col: col, CellID: c.ID(), Series: series}
			res.Cells = append(res.Cells, cr)
			if err := r.pub.PublishCellSummary(telemetry.SummaryFor(res.RunID, res.Chemistry, cr)); err != nil && r.log != nil {
				r.log.Warnf("run %s: publish cell (%d,%d): %v", res.RunID, row, col, err)
			}
		}
	}

	ev := metrics.SimulationEvent{
		RunID:         res.RunID,
		Chemistry:     res.Chemistry,
		Cells:         topo.CellCount(),
		DurationHours: durationHours,
		WallTime:      time.Since(start),
		Err:           runErr,
		Time:          time.Now(),
	}
	if err := r.sink.RecordSimulation(ev); err != nil && r.log != nil {
		r.log.Warnf("record simulation event: %v", err)
	}
	if runErr != nil {
		return nil, runErr
	}

	res.Summarize()
	if rec, ok := r.sink.(metrics.SampleRecorder); ok {
		for _, cr := range res.Cells {
			if err := rec.RecordCellSeries(res.RunID, res.Chemistry, cr); err != nil {
				if r.log != nil {
					r.log.Warnf("run %s: record series (%d,%d): %v", res.RunID, cr.Row, cr.Col, err)
				}
				break
			}
		}
	}
	return res, nil
}
