package metrics

import (
	"math"

	"github.com/san-kum/circsim/internal/dynamo"
)

// Stability is the fraction of samples whose output stays finite and within
// threshold.
type Stability struct {
	name       string
	threshold  float64
	circuit    dynamo.Circuit
	violations int
	samples    int
}

func NewStability(c dynamo.Circuit, threshold float64) *Stability {
	return &Stability{
		name:      "stability",
		threshold: threshold,
		circuit:   c,
	}
}

func (s *Stability) Name() string {
	return s.name
}

func (s *Stability) OnStep(x dynamo.State, t float32) {
	s.samples++
	v := float64(s.circuit.Output(x))
	if math.IsNaN(v) || math.Abs(v) > s.threshold {
		s.violations++
	}
}

func (s *Stability) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.violations)/float64(s.samples)
}

func (s *Stability) Reset() {
	s.violations = 0
	s.samples = 0
}
