package circuits

import (
	"math"

	"github.com/san-kum/circsim/internal/dynamo"
)

const (
	DefaultTankCapacitance = 2533e-6
	DefaultTankInductance  = 0.1
)

// LC state layout.
const (
	LCVoltage = iota // capacitor voltage Vc
	LCCurrent        // loop current I
	lcDim
)

type LCParams struct {
	Vs float32
	L  float32
	C  float32
}

func DefaultLC() LCParams {
	return LCParams{
		Vs: DefaultSourceVoltage,
		L:  DefaultTankInductance,
		C:  DefaultTankCapacitance,
	}
}

// Period is the analytic resonant period 2π√(LC).
func (p LCParams) Period() float64 {
	return 2 * math.Pi * math.Sqrt(float64(p.L)*float64(p.C))
}

// LCTank is a lossless tank with the capacitor initially charged to Vs.
// Each step derives the inductor voltage from Vc, advances I, then advances
// Vc using the freshly updated current.
type LCTank struct {
	LCParams
}

func NewLCTank(p LCParams) *LCTank {
	return &LCTank{LCParams: p}
}

func (c *LCTank) Name() string { return "lc" }

func (c *LCTank) Init() dynamo.State {
	x := make(dynamo.State, lcDim)
	x[LCVoltage] = c.Vs
	return x
}

func (c *LCTank) Step(x dynamo.State, h float32) {
	vl := -x[LCVoltage]
	didt := vl / c.L
	x[LCCurrent] += float32(didt * h)
	dvdt := x[LCCurrent] / c.C
	x[LCVoltage] += float32(dvdt * h)
}

func (c *LCTank) Output(x dynamo.State) float32 { return x[LCVoltage] }

// Energy is the energy held by the capacitor and inductor.
func (c *LCTank) Energy(x dynamo.State) float64 {
	return storedEnergy(c.C, c.L, x[LCVoltage], x[LCCurrent])
}

func (c *LCTank) GetParams() map[string]float64 {
	return map[string]float64{
		"vs": float64(c.Vs),
		"l":  float64(c.L),
		"c":  float64(c.C),
	}
}

func storedEnergy(capacitance, inductance, vc, i float32) float64 {
	v, cur := float64(vc), float64(i)
	return 0.5*float64(capacitance)*v*v + 0.5*float64(inductance)*cur*cur
}
