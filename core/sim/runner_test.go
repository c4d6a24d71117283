package sim

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/packlab/packsim/core/cell"
	"github.com/packlab/packsim/core/metrics"
	"github.com/packlab/packsim/core/model"
	"github.com/packlab/packsim/core/pack"
	"github.com/packlab/packsim/core/telemetry"
)

// recordingSolver captures every span it is asked to solve.
type recordingSolver struct {
	spans   []float64
	failAll bool
}

func (r *recordingSolver) Solve(_ context.Context, m cell.Model, _ Profile, tEnd float64) (*model.TimeSeries, error) {
	r.spans = append(r.spans, tEnd)
	if r.failAll {
		return nil, fmt.Errorf("solver failure")
	}
	ts := model.NewTimeSeries(1)
	if err := ts.Append(tEnd, 3.7, 5, 298.15); err != nil {
		return nil, err
	}
	return ts, nil
}

type eventSink struct {
	metrics.NopSink
	sims []metrics.SimulationEvent
}

func (s *eventSink) RecordSimulation(ev metrics.SimulationEvent) error {
	s.sims = append(s.sims, ev)
	return nil
}

type capturingPublisher struct {
	summaries []telemetry.CellSummary
}

func (p *capturingPublisher) PublishCellSummary(s telemetry.CellSummary) error {
	p.summaries = append(p.summaries, s)
	return nil
}

func (p *capturingPublisher) Close() error { return nil }

func buildTopo(t *testing.T, series, parallel int) *pack.Topology {
	t.Helper()
	topo, err := pack.NewBuilder(nil, nil).Build(series, parallel, model.ChemistryNMC)
	require.NoError(t, err)
	return topo
}

func TestSimulatePack_HoursToSeconds(t *testing.T) {
	for _, hours := range []float64{0.25, 1, 2.5, 24} {
		solver := &recordingSolver{}
		runner := NewRunner(solver, ConstantCurrent(5), nil, nil, nil)
		_, err := runner.SimulatePack(context.Background(), buildTopo(t, 2, 1), hours)
		require.NoError(t, err)
		for _, span := range solver.spans {
			assert.Equal(t, hours*3600, span, "duration %v h", hours)
		}
	}
}

func TestSimulatePack_ResultShape(t *testing.T) {
	solver := &recordingSolver{}
	sink := &eventSink{}
	pub := &capturingPublisher{}
	runner := NewRunner(solver, ConstantCurrent(5), nil, sink, pub)

	topo := buildTopo(t, 3, 2)
	res, err := runner.SimulatePack(context.Background(), topo, 1)
	require.NoError(t, err)

	assert.NotEmpty(t, res.RunID)
	assert.Equal(t, model.ChemistryNMC, res.Chemistry)
	assert.Equal(t, 3, res.Series)
	assert.Equal(t, 2, res.Parallel)
	require.Len(t, res.Cells, 6)
	assert.Len(t, solver.spans, 6, "one solver call per cell")

	// row-major ordering with matching handle identities
	idx := 0
	for row := 0; row < 2; row++ {
		for col := 0; col < 3; col++ {
			cr := res.Cells[idx]
			assert.Equal(t, row, cr.Row)
			assert.Equal(t, col, cr.Col)
			assert.Equal(t, topo.Cell(row, col).ID(), cr.CellID)
			idx++
		}
	}

	assert.InDelta(t, 3.7, res.Summary.FinalVoltageMeanV, 1e-12)

	require.Len(t, sink.sims, 1)
	assert.Equal(t, res.RunID, sink.sims[0].RunID)
	assert.Equal(t, 6, sink.sims[0].Cells)
	assert.NoError(t, sink.sims[0].Err)

	require.Len(t, pub.summaries, 6)
	assert.Equal(t, res.RunID, pub.summaries[0].RunID)
	assert.InDelta(t, 3.7, pub.summaries[0].FinalVoltageV, 1e-12)
}

func TestSimulatePack_NonPositiveDuration(t *testing.T) {
	runner := NewRunner(&recordingSolver{}, ConstantCurrent(5), nil, nil, nil)
	for _, hours := range []float64{0, -1} {
		_, err := runner.SimulatePack(context.Background(), buildTopo(t, 1, 1), hours)
		var cfgErr *model.InvalidConfigurationError
		assert.True(t, errors.As(err, &cfgErr), "hours=%v: got %v", hours, err)
	}
}

func TestSimulatePack_SolverFailureAborts(t *testing.T) {
	solver := &recordingSolver{failAll: true}
	sink := &eventSink{}
	runner := NewRunner(solver, ConstantCurrent(5), nil, sink, nil)

	_, err := runner.SimulatePack(context.Background(), buildTopo(t, 4, 4), 1)
	require.Error(t, err)
	assert.Len(t, solver.spans, 1, "first failure must abort the run")
	require.Len(t, sink.sims, 1)
	assert.Error(t, sink.sims[0].Err)
}
