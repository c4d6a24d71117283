package sim

import (
	"context"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/packlab/packsim/core/cell"
	"github.com/packlab/packsim/core/model"
)

// RK4Solver integrates cell dynamics with the classic fixed-step fourth-order
// Runge-Kutta scheme. The step is fixed: the cell ODEs here are non-stiff and
// slow-moving, adaptive stepping buys nothing.
type RK4Solver struct {
	StepSeconds float64
}

// NewRK4Solver returns a solver with the given step; non-positive steps fall
// back to 1 s.
func NewRK4Solver(stepSeconds float64) *RK4Solver {
	if stepSeconds <= 0 {
		stepSeconds = 1
	}
	return &RK4Solver{StepSeconds: stepSeconds}
}

// Solve integrates m over [0, tEndSeconds], sampling every step. The final
// sample lands exactly on tEndSeconds. It aborts on context cancellation and
// returns ErrUnstable if the state picks up a NaN or Inf.
func (s *RK4Solver) Solve(ctx context.Context, m cell.Model, profile Profile, tEndSeconds float64) (*model.TimeSeries, error) {
	if tEndSeconds <= 0 {
		return nil, &model.InvalidConfigurationError{Field: "duration", Reason: "must be positive"}
	}
	steps := int(math.Ceil(tEndSeconds / s.StepSeconds))
	times := floats.Span(make([]float64, steps+1), 0, tEndSeconds)
	// pin the endpoint: Span may land a hair off when the step does not
	// divide the span
	times[len(times)-1] = tEndSeconds

	state := m.InitialState()
	ts := model.NewTimeSeries(len(times))
	i := profile(0)
	v, temp := m.Output(state, i)
	if err := ts.Append(0, v, i, temp); err != nil {
		return nil, err
	}

	for k := 1; k < len(times); k++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		t0, t1 := times[k-1], times[k]
		state = rk4Step(m, profile, state, t0, t1-t0)
		if !stateValid(state) {
			return nil, model.ErrUnstable
		}
		i = profile(t1)
		v, temp = m.Output(state, i)
		if err := ts.Append(t1, v, i, temp); err != nil {
			return nil, err
		}
	}
	return ts, nil
}

func rk4Step(m cell.Model, profile Profile, y []float64, t, h float64) []float64 {
	k1 := m.Dynamics(y, profile(t))
	k2 := m.Dynamics(axpy(y, k1, h/2), profile(t+h/2))
	k3 := m.Dynamics(axpy(y, k2, h/2), profile(t+h/2))
	k4 := m.Dynamics(axpy(y, k3, h), profile(t+h))

	out := make([]float64, len(y))
	for i := range y {
		out[i] = y[i] + h/6*(k1[i]+2*k2[i]+2*k3[i]+k4[i])
	}
	return out
}

func axpy(y, dy []float64, h float64) []float64 {
	out := make([]float64, len(y))
	for i := range y {
		out[i] = y[i] + h*dy[i]
	}
	return out
}

func stateValid(state []float64) bool {
	for _, v := range state {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
