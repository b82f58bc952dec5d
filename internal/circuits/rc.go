package circuits

import (
	"fmt"

	"github.com/san-kum/circsim/internal/dynamo"
)

const (
	DefaultSourceVoltage = 5.0
	DefaultRCResistance  = 1.6e3
	DefaultRCCapacitance = 100e-6
)

// RC state layout.
const (
	RCVoltage = iota // capacitor voltage Vc
	RCSlope          // dVc/dt used for the next advance
	rcDim
)

type RCParams struct {
	Vs float32 // source voltage
	R  float32
	C  float32
}

func DefaultRC() RCParams {
	return RCParams{
		Vs: DefaultSourceVoltage,
		R:  DefaultRCResistance,
		C:  DefaultRCCapacitance,
	}
}

// TimeConstant is R*C rounded to float32.
func (p RCParams) TimeConstant() float32 {
	return p.R * p.C
}

func (p RCParams) params() map[string]float64 {
	return map[string]float64{
		"vs": float64(p.Vs),
		"r":  float64(p.R),
		"c":  float64(p.C),
	}
}

// RCCharge charges a capacitor from 0V towards Vs:
//
//	RC * dVc/dt = Vs - Vc
//
// The slope starts at zero, so the first step leaves Vc at 0 and every
// advance uses the slope derived from the previous step's voltage.
type RCCharge struct {
	RCParams
	rc float32
}

func NewRCCharge(p RCParams) *RCCharge {
	return &RCCharge{RCParams: p, rc: p.TimeConstant()}
}

func (c *RCCharge) Name() string { return "rc_charge" }

func (c *RCCharge) Init() dynamo.State {
	return make(dynamo.State, rcDim)
}

func (c *RCCharge) Step(x dynamo.State, h float32) {
	x[RCVoltage] += float32(x[RCSlope] * h)
	x[RCSlope] = (c.Vs - x[RCVoltage]) / c.rc
}

func (c *RCCharge) Output(x dynamo.State) float32 { return x[RCVoltage] }

func (c *RCCharge) GetParams() map[string]float64 { return c.params() }

// RCDischarge drains a capacitor charged to Vs:
//
//	dVc/dt = -Vc / RC
//
// The initial slope is +Vs/RC; the sign only flips after the first advance,
// so the first sample sits above Vs.
type RCDischarge struct {
	RCParams
	rc float32
}

func NewRCDischarge(p RCParams) *RCDischarge {
	return &RCDischarge{RCParams: p, rc: p.TimeConstant()}
}

func (c *RCDischarge) Name() string { return "rc_discharge" }

func (c *RCDischarge) Init() dynamo.State {
	x := make(dynamo.State, rcDim)
	x[RCVoltage] = c.Vs
	x[RCSlope] = x[RCVoltage] / c.rc
	return x
}

func (c *RCDischarge) Step(x dynamo.State, h float32) {
	x[RCVoltage] += float32(x[RCSlope] * h)
	x[RCSlope] = -x[RCVoltage] / c.rc
}

func (c *RCDischarge) Output(x dynamo.State) float32 { return x[RCVoltage] }

func (c *RCDischarge) GetParams() map[string]float64 { return c.params() }

func (p RCParams) String() string {
	return fmt.Sprintf("Vs=%gV R=%gΩ C=%gF", p.Vs, p.R, p.C)
}
