package metrics

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	coremetrics "github.com/packlab/packsim/core/metrics"
	"github.com/packlab/packsim/core/model"
)

func TestPromSink_RecordBuild(t *testing.T) {
	reg := prometheus.NewRegistry()
	sinkIf, err := NewPromSinkWithRegistry(coremetrics.Config{}, reg)
	if err != nil {
		t.Fatalf("create sink: %v", err)
	}
	sink, ok := sinkIf.(*PromSink)
	if !ok {
		t.Fatalf("expected PromSink")
	}

	ev := coremetrics.BuildEvent{
		Chemistry:  model.ChemistryNMC,
		Series:     12,
		Parallel:   8,
		CellsBuilt: 96,
		Time:       time.Now(),
	}
	if err := sink.RecordBuild(ev); err != nil {
		t.Fatalf("record error: %v", err)
	}

	expected := `
# HELP pack_cells_built_total Total number of cell handles created by the topology builder
# TYPE pack_cells_built_total counter
pack_cells_built_total{chemistry="NMC"} 96
`
	if err := testutil.CollectAndCompare(sink.cellsBuilt, strings.NewReader(expected)); err != nil {
		t.Errorf("unexpected metrics: %v", err)
	}
	if got := testutil.ToFloat64(sink.packCells); got != 96 {
		t.Errorf("pack_cells gauge = %v", got)
	}
}

func TestPromSink_RecordSimulation(t *testing.T) {
	reg := prometheus.NewRegistry()
	sinkIf, err := NewPromSinkWithRegistry(coremetrics.Config{}, reg)
	if err != nil {
		t.Fatalf("create sink: %v", err)
	}
	sink := sinkIf.(*PromSink)

	ok := coremetrics.SimulationEvent{Chemistry: model.ChemistryLFP, Cells: 50, WallTime: 120 * time.Millisecond}
	failed := coremetrics.SimulationEvent{Chemistry: model.ChemistryLFP, Cells: 50, Err: errors.New("boom")}
	if err := sink.RecordSimulation(ok); err != nil {
		t.Fatalf("record error: %v", err)
	}
	if err := sink.RecordSimulation(failed); err != nil {
		t.Fatalf("record error: %v", err)
	}

	expected := `
# HELP pack_simulations_total Total number of pack simulation runs
# TYPE pack_simulations_total counter
pack_simulations_total{chemistry="LFP",success="false"} 1
pack_simulations_total{chemistry="LFP",success="true"} 1
`
	if err := testutil.CollectAndCompare(sink.simulations, strings.NewReader(expected)); err != nil {
		t.Errorf("unexpected metrics: %v", err)
	}
	if c := testutil.CollectAndCount(sink.simSeconds); c == 0 {
		t.Errorf("duration histogram not recorded")
	}
}

func TestPromSink_DoubleRegister(t *testing.T) {
	reg := prometheus.NewRegistry()
	if _, err := NewPromSinkWithRegistry(coremetrics.Config{}, reg); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if _, err := NewPromSinkWithRegistry(coremetrics.Config{}, reg); err != nil {
		t.Fatalf("second register must reuse collectors: %v", err)
	}
}
