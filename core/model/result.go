package model

import "gonum.org/v1/gonum/stat"

// CellResult holds the simulated series of one cell at its grid position.
type CellResult struct {
	Row    int
	Col    int
	CellID string
	Series *TimeSeries
}

// PackSummary aggregates final per-cell values across the independent runs.
// It is a statistical readout, not a coupled electrical solve.
type PackSummary struct {
	FinalVoltageMinV  float64
	FinalVoltageMeanV float64
	FinalVoltageMaxV  float64
	FinalVoltageStdV  float64
	FinalTempMeanK    float64
	FinalTempSpreadK  float64
}

// PackResult is the typed outcome of a pack simulation run.
type PackResult struct {
	RunID     string
	Chemistry Chemistry
	Series    int
	Parallel  int
	Cells     []CellResult
	Summary   PackSummary
}

// Summarize computes the pack summary from the collected cell results.
// Cells with empty series are skipped.
func (r *PackResult) Summarize() {
	var volts, temps []float64
	for _, c := range r.Cells {
		if c.Series == nil || c.Series.Len() == 0 {
			continue
		}
		if ch := c.Series.Channel(ChannelVoltage); ch != nil {
			volts = append(volts, ch.Values[len(ch.Values)-1])
		}
		if ch := c.Series.Channel(ChannelTemperature); ch != nil {
			temps = append(temps, ch.Values[len(ch.Values)-1])
		}
	}
	if len(volts) > 0 {
		mean, std := stat.MeanStdDev(volts, nil)
		if len(volts) == 1 {
			std = 0
		}
		r.Summary.FinalVoltageMeanV = mean
		r.Summary.FinalVoltageStdV = std
		r.Summary.FinalVoltageMinV, r.Summary.FinalVoltageMaxV = minMax(volts)
	}
	if len(temps) > 0 {
		r.Summary.FinalTempMeanK = stat.Mean(temps, nil)
		lo, hi := minMax(temps)
		r.Summary.FinalTempSpreadK = hi - lo
	}
}

func minMax(vs []float64) (lo, hi float64) {
	lo, hi = vs[0], vs[0]
	for _, v := range vs[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}
