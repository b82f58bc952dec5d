package analysis

import (
	"fmt"

	"github.com/san-kum/circsim/internal/dynamo"
)

// Runner integrates one circuit. *integrators.Euler satisfies it.
type Runner interface {
	Run(c dynamo.Circuit, cfg dynamo.Config, sinks ...dynamo.Sink) (*dynamo.Result, error)
}

// SweepPoint summarises one run of a parameter sweep.
type SweepPoint struct {
	Param      float64
	MaxAbs     float64
	Final      float64
	DecayRatio float64 // NaN with fewer than two peaks
	Period     float64 // 0 when no oscillation was found
}

// Sweep varies one parameter over [paramMin, paramMax] in paramSteps runs.
// build must return a fresh circuit for each value.
func Sweep(
	runner Runner,
	build func(param float64) dynamo.Circuit,
	cfg dynamo.Config,
	paramMin, paramMax float64,
	paramSteps int,
) ([]SweepPoint, error) {
	if paramSteps <= 1 {
		paramSteps = 2 // Prevent division by zero
	}
	paramStep := (paramMax - paramMin) / float64(paramSteps-1)

	results := make([]SweepPoint, 0, paramSteps)
	for i := 0; i < paramSteps; i++ {
		param := paramMin + float64(i)*paramStep

		res, err := runner.Run(build(param), cfg)
		if err != nil {
			return results, fmt.Errorf("sweep at %g: %w", param, err)
		}

		values := res.Series.Values
		point := SweepPoint{
			Param:      param,
			MaxAbs:     MaxAbs(values),
			DecayRatio: MeanDecayRatio(Peaks(values)),
		}
		if n := len(values); n > 0 {
			point.Final = float64(values[n-1])
		}
		if period, ok := Period(res.Series.Times, values); ok {
			point.Period = period
		}
		results = append(results, point)
	}

	return results, nil
}
