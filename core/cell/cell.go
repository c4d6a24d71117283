// Package cell provides the per-chemistry electrochemical cell models the
// pack builder instantiates. Callers treat a Model as an opaque handle; only
// the solver looks at its state vector.
package cell

import (
	"github.com/packlab/packsim/core/model"
)

// Model is a simulatable cell. State layout is [soc, temperatureK].
type Model interface {
	// ID is the unique handle identity of this cell instance.
	ID() string
	// Chemistry reports the variant this model was built for.
	Chemistry() model.Chemistry
	// InitialState returns a fresh state vector for the start of a run.
	InitialState() []float64
	// Dynamics evaluates the state derivative under the given applied
	// current (positive = discharge, amperes).
	Dynamics(state []float64, currentA float64) []float64
	// Output computes the observable terminal quantities for a state.
	Output(state []float64, currentA float64) (voltageV, temperatureK float64)
}

// Factory returns the constructor for the given chemistry. The switch is the
// single dispatch point: adding a chemistry without extending it is a
// compile-visible gap, not a runtime string comparison.
func Factory(chem model.Chemistry) (func() Model, error) {
	switch chem {
	case model.ChemistryNMC:
		return func() Model { return NewNMCCell() }, nil
	case model.ChemistryLFP:
		return func() Model { return NewLFPCell() }, nil
	default:
		return nil, &model.UnsupportedChemistryError{Tag: chem.String()}
	}
}
