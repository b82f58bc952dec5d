package circuits

import (
	"fmt"
	"math"

	"github.com/san-kum/circsim/internal/dynamo"
)

const DefaultLCRResistance = 1.5

// Scheme selects the LCR update rule.
type Scheme string

const (
	// SchemeExplicit is the forward Euler recurrence on (I, Vl).
	SchemeExplicit Scheme = "explicit"
	// SchemeSymplectic advances I first and then Vc from the new current,
	// which keeps the undamped loop bounded.
	SchemeSymplectic Scheme = "symplectic"
)

func ParseScheme(s string) (Scheme, error) {
	switch Scheme(s) {
	case "", SchemeExplicit:
		return SchemeExplicit, nil
	case SchemeSymplectic:
		return SchemeSymplectic, nil
	}
	return "", fmt.Errorf("%w: unknown scheme %q", dynamo.ErrConfig, s)
}

// LCR state layout.
const (
	LCRCurrent         = iota // loop current I
	LCRResistorVoltage        // Vr = I*R
	LCRInductorVoltage        // Vl
	LCRVoltage                // capacitor voltage Vc
	LCRCurrentSlope           // dI/dt
	LCRInductorSlope          // dVl/dt
	lcrDim
)

type LCRParams struct {
	Vs     float32
	R      float32
	L      float32
	C      float32
	Scheme Scheme
}

func DefaultLCR() LCRParams {
	return LCRParams{
		Vs:     DefaultSourceVoltage,
		R:      DefaultLCRResistance,
		L:      DefaultTankInductance,
		C:      DefaultTankCapacitance,
		Scheme: SchemeExplicit,
	}
}

// DampingRatio is ζ = (R/2)·√(C/L).
func (p LCRParams) DampingRatio() float64 {
	return float64(p.R) / 2 * math.Sqrt(float64(p.C)/float64(p.L))
}

// LCROscillator is a series R-L-C loop sharing one current. Kirchhoff's
// voltage law gives Vr + Vl + Vc = 0, so
//
//	dI/dt  = Vl / L
//	dVl/dt = -I/C - R·dI/dt
//
// The state starts consistent with t=0: I=0, Vc=Vs, Vl=-Vs, dI/dt=Vl/L.
type LCROscillator struct {
	LCRParams
}

func NewLCROscillator(p LCRParams) *LCROscillator {
	if p.Scheme == "" {
		p.Scheme = SchemeExplicit
	}
	return &LCROscillator{LCRParams: p}
}

func (c *LCROscillator) Name() string { return "lcr" }

func (c *LCROscillator) Init() dynamo.State {
	x := make(dynamo.State, lcrDim)
	x[LCRVoltage] = c.Vs
	x[LCRInductorVoltage] = -x[LCRVoltage]
	x[LCRCurrentSlope] = x[LCRInductorVoltage] / c.L
	return x
}

func (c *LCROscillator) Step(x dynamo.State, h float32) {
	if c.Scheme == SchemeSymplectic {
		c.stepSymplectic(x, h)
		return
	}

	x[LCRCurrent] += float32(x[LCRCurrentSlope] * h)
	x[LCRResistorVoltage] = x[LCRCurrent] * c.R
	x[LCRInductorVoltage] += float32(x[LCRInductorSlope] * h)
	x[LCRCurrentSlope] = x[LCRInductorVoltage] / c.L
	x[LCRVoltage] = -x[LCRResistorVoltage] - x[LCRInductorVoltage]
	x[LCRInductorSlope] = float32(-x[LCRCurrent]/c.C) - float32(x[LCRCurrentSlope]*c.R)
}

func (c *LCROscillator) stepSymplectic(x dynamo.State, h float32) {
	didt := float32(-x[LCRVoltage]-float32(x[LCRCurrent]*c.R)) / c.L
	x[LCRCurrent] += float32(didt * h)
	x[LCRVoltage] += float32(float32(x[LCRCurrent]/c.C) * h)

	x[LCRResistorVoltage] = x[LCRCurrent] * c.R
	x[LCRInductorVoltage] = -x[LCRVoltage] - x[LCRResistorVoltage]
	x[LCRCurrentSlope] = x[LCRInductorVoltage] / c.L
	x[LCRInductorSlope] = float32(-x[LCRCurrent]/c.C) - float32(x[LCRCurrentSlope]*c.R)
}

func (c *LCROscillator) Output(x dynamo.State) float32 { return x[LCRVoltage] }

func (c *LCROscillator) Energy(x dynamo.State) float64 {
	return storedEnergy(c.C, c.L, x[LCRVoltage], x[LCRCurrent])
}

func (c *LCROscillator) GetParams() map[string]float64 {
	return map[string]float64{
		"vs": float64(c.Vs),
		"r":  float64(c.R),
		"l":  float64(c.L),
		"c":  float64(c.C),
	}
}
