// Package sim runs time-domain simulations over a pack topology. The
// numerical integration itself sits behind the Solver interface; the runner
// only iterates the grid and assembles typed results.
package sim

import (
	"context"

	"github.com/packlab/packsim/core/cell"
	"github.com/packlab/packsim/core/model"
)

// Profile supplies the applied cell current (amperes, positive = discharge)
// as a function of time in seconds.
type Profile func(tSeconds float64) float64

// ConstantCurrent returns a profile that draws a fixed current for the whole
// span.
func ConstantCurrent(amps float64) Profile {
	return func(float64) float64 { return amps }
}

// Solver integrates one cell model over [0, tEndSeconds] and returns the
// sampled output series. tEndSeconds is always in seconds; unit conversion
// from user-facing hours happens in the Runner, before this call.
type Solver interface {
	Solve(ctx context.Context, m cell.Model, profile Profile, tEndSeconds float64) (*model.TimeSeries, error)
}
