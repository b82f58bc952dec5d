package metrics

import (
	"math"

	"github.com/san-kum/circsim/internal/dynamo"
)

// PeakOutput records the largest |output| seen.
type PeakOutput struct {
	name    string
	circuit dynamo.Circuit
	peak    float64
}

func NewPeakOutput(c dynamo.Circuit) *PeakOutput {
	return &PeakOutput{name: "peak_output", circuit: c}
}

func (p *PeakOutput) Name() string { return p.name }

func (p *PeakOutput) OnStep(x dynamo.State, t float32) {
	p.peak = math.Max(p.peak, math.Abs(float64(p.circuit.Output(x))))
}

func (p *PeakOutput) Value() float64 { return p.peak }

func (p *PeakOutput) Reset() { p.peak = 0 }

// Default returns the metrics attached to every run of c.
func Default(c dynamo.Circuit, stabilityBound float64) []dynamo.Metric {
	return []dynamo.Metric{
		NewEnergyDrift(c),
		NewStability(c, stabilityBound),
		NewPeakOutput(c),
	}
}
