package pack

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/packlab/packsim/core/metrics"
	"github.com/packlab/packsim/core/model"
)

type recordingSink struct {
	mu     sync.Mutex
	builds []metrics.BuildEvent
}

func (r *recordingSink) RecordBuild(ev metrics.BuildEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.builds = append(r.builds, ev)
	return nil
}

func (r *recordingSink) RecordSimulation(metrics.SimulationEvent) error { return nil }

func TestBuild_GridShape(t *testing.T) {
	cases := []struct {
		name      string
		series    int
		parallel  int
		chemistry model.Chemistry
	}{
		{"12S8P NMC", 12, 8, model.ChemistryNMC},
		{"5S10P LFP", 5, 10, model.ChemistryLFP},
		{"1S1P NMC", 1, 1, model.ChemistryNMC},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sink := &recordingSink{}
			topo, err := NewBuilder(nil, sink).Build(tc.series, tc.parallel, tc.chemistry)
			require.NoError(t, err)

			assert.Equal(t, tc.series, topo.Series())
			assert.Equal(t, tc.parallel, topo.Parallel())
			assert.Equal(t, tc.series*tc.parallel, topo.CellCount())

			// every position holds a fresh handle of the requested chemistry
			seen := make(map[string]bool)
			for row := 0; row < tc.parallel; row++ {
				for col := 0; col < tc.series; col++ {
					c := topo.Cell(row, col)
					require.NotNil(t, c)
					assert.Equal(t, tc.chemistry, c.Chemistry())
					assert.False(t, seen[c.ID()], "handle reused at (%d,%d)", row, col)
					seen[c.ID()] = true
				}
			}
			assert.Len(t, seen, tc.series*tc.parallel)

			require.Len(t, sink.builds, 1)
			assert.Equal(t, tc.series*tc.parallel, sink.builds[0].CellsBuilt)
		})
	}
}

func TestBuild_InvalidCounts(t *testing.T) {
	cases := []struct {
		name     string
		series   int
		parallel int
	}{
		{"zero series", 0, 8},
		{"zero parallel", 5, 0},
		{"negative series", -1, 1},
		{"negative parallel", 1, -3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sink := &recordingSink{}
			_, err := NewBuilder(nil, sink).Build(tc.series, tc.parallel, model.ChemistryNMC)
			var cfgErr *model.InvalidConfigurationError
			require.True(t, errors.As(err, &cfgErr), "got %v", err)
			assert.Empty(t, sink.builds, "no factory work may happen on invalid config")
		})
	}
}

func TestBuild_UnsupportedChemistry(t *testing.T) {
	_, err := NewBuilder(nil, nil).Build(2, 2, model.Chemistry(42))
	var ucErr *model.UnsupportedChemistryError
	require.True(t, errors.As(err, &ucErr), "got %v", err)
}

func TestCells_RowMajorCopy(t *testing.T) {
	topo, err := NewBuilder(nil, nil).Build(3, 2, model.ChemistryLFP)
	require.NoError(t, err)

	cells := topo.Cells()
	require.Len(t, cells, 6)
	assert.Equal(t, topo.Cell(0, 0).ID(), cells[0].ID())
	assert.Equal(t, topo.Cell(0, 2).ID(), cells[2].ID())
	assert.Equal(t, topo.Cell(1, 0).ID(), cells[3].ID())

	// mutating the copy must not affect the topology
	cells[0] = nil
	assert.NotNil(t, topo.Cell(0, 0))
}
