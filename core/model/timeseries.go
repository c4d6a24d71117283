package model

import "fmt"

// Channel names produced by the cell solver.
const (
	ChannelVoltage     = "terminal_voltage"
	ChannelCurrent     = "current"
	ChannelTemperature = "temperature"
)

// Channel is one named output series with an explicit unit.
type Channel struct {
	Name   string
	Unit   string
	Values []float64
}

// TimeSeries is a typed simulation result: a time vector in seconds plus
// named numeric channels. All channels stay length-aligned with Time.
type TimeSeries struct {
	Time     []float64 // seconds since start of run
	Channels []Channel
}

// NewTimeSeries allocates a series with the standard cell output channels,
// each with capacity for n samples.
func NewTimeSeries(n int) *TimeSeries {
	return &TimeSeries{
		Time: make([]float64, 0, n),
		Channels: []Channel{
			{Name: ChannelVoltage, Unit: "V", Values: make([]float64, 0, n)},
			{Name: ChannelCurrent, Unit: "A", Values: make([]float64, 0, n)},
			{Name: ChannelTemperature, Unit: "K", Values: make([]float64, 0, n)},
		},
	}
}

// Append records one sample. The number of values must match the number of
// channels; this keeps every channel aligned with the time vector.
func (ts *TimeSeries) Append(t float64, values ...float64) error {
	if len(values) != len(ts.Channels) {
		return fmt.Errorf("append: got %d values for %d channels", len(values), len(ts.Channels))
	}
	ts.Time = append(ts.Time, t)
	for i, v := range values {
		ts.Channels[i].Values = append(ts.Channels[i].Values, v)
	}
	return nil
}

// Channel returns the channel with the given name, or nil.
func (ts *TimeSeries) Channel(name string) *Channel {
	for i := range ts.Channels {
		if ts.Channels[i].Name == name {
			return &ts.Channels[i]
		}
	}
	return nil
}

// Len returns the number of samples.
func (ts *TimeSeries) Len() int { return len(ts.Time) }
