package cell

import (
	"math"

	"github.com/google/uuid"

	"github.com/packlab/packsim/core/model"
)

// Params holds the lumped single-particle surrogate parameters of a cell.
// SoC evolves by coulomb counting, terminal voltage is OCV minus the ohmic
// drop, and temperature follows a single thermal node heated by Joule losses.
type Params struct {
	CapacityAh    float64 // nominal capacity
	ResistanceOhm float64 // internal series resistance
	OCV           func(soc float64) float64
	ThermalMassJK float64 // lumped heat capacity, J/K
	HeatLossWK    float64 // convective loss coefficient, W/K
	AmbientK      float64
	InitialSoC    float64
}

type spmCell struct {
	id     string
	chem   model.Chemistry
	params Params
}

// New builds a cell model from explicit parameters. The chemistry-specific
// constructors below are the usual entry points.
func New(chem model.Chemistry, p Params) Model {
	return &spmCell{id: uuid.NewString(), chem: chem, params: p}
}

// NewNMCCell returns a fresh NMC cell handle with nominal 5 Ah parameters.
func NewNMCCell() Model {
	return New(model.ChemistryNMC, Params{
		CapacityAh:    5.0,
		ResistanceOhm: 0.015,
		OCV:           ocvNMC,
		ThermalMassJK: 60,
		HeatLossWK:    0.8,
		AmbientK:      298.15,
		InitialSoC:    1.0,
	})
}

// NewLFPCell returns a fresh LFP cell handle. LFP trades energy density for
// a flatter voltage plateau and lower internal resistance.
func NewLFPCell() Model {
	return New(model.ChemistryLFP, Params{
		CapacityAh:    3.2,
		ResistanceOhm: 0.010,
		OCV:           ocvLFP,
		ThermalMassJK: 55,
		HeatLossWK:    0.8,
		AmbientK:      298.15,
		InitialSoC:    1.0,
	})
}

func (c *spmCell) ID() string                 { return c.id }
func (c *spmCell) Chemistry() model.Chemistry { return c.chem }

func (c *spmCell) InitialState() []float64 {
	return []float64{c.params.InitialSoC, c.params.AmbientK}
}

func (c *spmCell) Dynamics(state []float64, currentA float64) []float64 {
	soc, temp := state[0], state[1]
	dsoc := -currentA / (3600 * c.params.CapacityAh)
	// stop coulomb counting at the SoC rails
	if (soc <= 0 && dsoc < 0) || (soc >= 1 && dsoc > 0) {
		dsoc = 0
	}
	joule := currentA * currentA * c.params.ResistanceOhm
	dtemp := (joule - c.params.HeatLossWK*(temp-c.params.AmbientK)) / c.params.ThermalMassJK
	return []float64{dsoc, dtemp}
}

func (c *spmCell) Output(state []float64, currentA float64) (float64, float64) {
	soc := clamp(state[0], 0, 1)
	v := c.params.OCV(soc) - currentA*c.params.ResistanceOhm
	return v, state[1]
}

// ocvNMC is a polynomial fit of a typical NMC open-circuit curve, ~3.0 V
// empty to ~4.2 V full.
func ocvNMC(soc float64) float64 {
	s := clamp(soc, 0, 1)
	return 3.0 + 1.2*s - 0.8*s*s + 0.8*s*s*s - 0.12*math.Exp(-20*s)
}

// ocvLFP models the characteristic flat LFP plateau around 3.3 V with sharp
// knees at the rails.
func ocvLFP(soc float64) float64 {
	s := clamp(soc, 0, 1)
	return 3.3 + 0.05*math.Tanh(12*(s-0.5)) - 0.25*math.Exp(-25*s) + 0.15*math.Exp(25*(s-1))
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
