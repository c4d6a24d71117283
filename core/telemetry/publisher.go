// Package telemetry defines the outbound telemetry contract of the runner.
package telemetry

import "github.com/packlab/packsim/core/model"

// CellSummary is the end-of-run snapshot published for one cell.
type CellSummary struct {
	RunID         string  `json:"run_id"`
	Row           int     `json:"row"`
	Col           int     `json:"col"`
	CellID        string  `json:"cell_id"`
	Chemistry     string  `json:"chemistry"`
	FinalVoltageV float64 `json:"final_voltage_v"`
	FinalTempK    float64 `json:"final_temp_k"`
	Samples       int     `json:"samples"`
}

// Publisher delivers per-cell summaries to an external sink (e.g. an MQTT
// broker). Implementations live under infra.
type Publisher interface {
	PublishCellSummary(s CellSummary) error
	Close() error
}

// NopPublisher discards all summaries.
type NopPublisher struct{}

func (NopPublisher) PublishCellSummary(CellSummary) error { return nil }
func (NopPublisher) Close() error                         { return nil }

// SummaryFor builds the published snapshot from a cell result.
func SummaryFor(runID string, chem model.Chemistry, res model.CellResult) CellSummary {
	s := CellSummary{
		RunID:     runID,
		Row:       res.Row,
		Col:       res.Col,
		CellID:    res.CellID,
		Chemistry: chem.String(),
		Samples:   res.Series.Len(),
	}
	if ch := res.Series.Channel(model.ChannelVoltage); ch != nil && len(ch.Values) > 0 {
		s.FinalVoltageV = ch.Values[len(ch.Values)-1]
	}
	if ch := res.Series.Channel(model.ChannelTemperature); ch != nil && len(ch.Values) > 0 {
		s.FinalTempK = ch.Values[len(ch.Values)-1]
	}
	return s
}
