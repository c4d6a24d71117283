// Package pack builds deterministic series/parallel cell grids.
package pack

import (
	"time"

	"github.com/packlab/packsim/core/cell"
	"github.com/packlab/packsim/core/logger"
	"github.com/packlab/packsim/core/metrics"
	"github.com/packlab/packsim/core/model"
)

// Topology is an immutable arrangement of cells: `parallel` strings (rows),
// each a voltage-adding chain of `series` cells (columns). Cell handles are
// opaque; the topology never inspects or mutates them.
type Topology struct {
	series    int
	parallel  int
	chemistry model.Chemistry
	grid      [][]cell.Model // parallel rows x series columns
}

func (t *Topology) Series() int                { return t.series }
func (t *Topology) Parallel() int              { return t.parallel }
func (t *Topology) Chemistry() model.Chemistry { return t.chemistry }

// CellCount returns the total number of cells in the pack.
func (t *Topology) CellCount() int { return t.series * t.parallel }

// Cell returns the handle at the given grid position.
func (t *Topology) Cell(row, col int) cell.Model { return t.grid[row][col] }

// Cells returns the handles in row-major order. The returned slice is a copy;
// the topology itself stays immutable.
func (t *Topology) Cells() []cell.Model {
	out := make([]cell.Model, 0, t.CellCount())
	for _, row := range t.grid {
		out = append(out, row...)
	}
	return out
}

// Builder constructs pack topologies from user configuration.
type Builder struct {
	log  logger.Logger
	sink metrics.MetricsSink
}

// NewBuilder returns a Builder. A nil sink disables metrics.
func NewBuilder(log logger.Logger, sink metrics.MetricsSink) *Builder {
	if sink == nil {
		sink = metrics.NopSink{}
	}
	return &Builder{log: log, sink: sink}
}

// Build validates the configuration and creates a series x parallel grid of
// fresh cell handles, invoking the chemistry's factory exactly once per
// position. Validation happens before the first factory call: non-positive
// counts yield an InvalidConfigurationError, an out-of-set chemistry an
// UnsupportedChemistryError. No simulation is performed here.
func (b *Builder) Build(series, parallel int, chem model.Chemistry) (*Topology, error) {
	if series < 1 {
		return nil, &model.InvalidConfigurationError{Field: "series", Reason: "must be >= 1"}
	}
	if parallel < 1 {
		return nil, &model.InvalidConfigurationError{Field: "parallel", Reason: "must be >= 1"}
	}
	factory, err := cell.Factory(chem)
	if err != nil {
		return nil, err
	}

	grid := make([][]cell.Model, parallel)
	for row := range grid {
		grid[row] = make([]cell.Model, series)
		for col := range grid[row] {
			grid[row][col] = factory()
		}
	}

	topo := &Topology{series: series, parallel: parallel, chemistry: chem, grid: grid}
	if b.log != nil {
		b.log.Infof("built %s pack: %dS%dP, %d cells", chem, series, parallel, topo.CellCount())
	}
	if err := b.sink.RecordBuild(metrics.BuildEvent{
		Chemistry:  chem,
		Series:     series,
		Parallel:   parallel,
		CellsBuilt: topo.CellCount(),
		Time:       time.Now(),
	}); err != nil && b.log != nil {
		b.log.Warnf("record build event: %v", err)
	}
	return topo, nil
}
