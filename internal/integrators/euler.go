package integrators

import (
	"fmt"
	"math"

	"github.com/san-kum/circsim/internal/dynamo"
)

// Euler drives a circuit recurrence with a fixed step until t exceeds the
// configured duration. Time accumulates in float32, so the last sample may
// sit slightly past the duration.
type Euler struct {
	metrics   []dynamo.Metric
	observers []dynamo.Observer
}

func NewEuler() *Euler {
	return &Euler{
		metrics:   make([]dynamo.Metric, 0),
		observers: make([]dynamo.Observer, 0),
	}
}

func (e *Euler) AddMetric(m dynamo.Metric)     { e.metrics = append(e.metrics, m) }
func (e *Euler) AddObserver(o dynamo.Observer) { e.observers = append(e.observers, o) }

// Run integrates c from its initial state and returns every emitted sample.
// Each sample is (t, output) taken after the state advance and before t
// advances. The first sink error stops the run; the partial result is
// returned alongside the error.
func (e *Euler) Run(c dynamo.Circuit, cfg dynamo.Config, sinks ...dynamo.Sink) (*dynamo.Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	for _, m := range e.metrics {
		m.Reset()
	}

	result := &dynamo.Result{
		Name:    c.Name(),
		Series:  dynamo.NewSeries(cfg),
		Metrics: make(map[string]float64),
	}

	x := c.Init()
	var t float32

	for step := 0; t <= cfg.Duration; step++ {
		c.Step(x, cfg.Dt)
		v := c.Output(x)
		result.Series.Append(t, v)

		for _, m := range e.metrics {
			m.OnStep(x, t)
		}
		for _, obs := range e.observers {
			obs.OnStep(x, t)
		}

		for _, s := range sinks {
			if err := s.Record(t, v); err != nil {
				result.Final = x
				return result, &dynamo.SimulationError{
					Name:    c.Name(),
					Step:    step,
					Time:    t,
					Wrapped: dynamo.OutputError(err),
				}
			}
		}

		next := t + cfg.Dt
		if next == t {
			return result, fmt.Errorf("%w: dt %v vanishes at t=%v", dynamo.ErrConfig, cfg.Dt, t)
		}
		t = next
	}

	result.Final = x
	for _, m := range e.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}

func validateConfig(cfg dynamo.Config) error {
	if !(cfg.Dt > 0) || math.IsInf(float64(cfg.Dt), 0) {
		return fmt.Errorf("%w: dt must be positive, got %v", dynamo.ErrConfig, cfg.Dt)
	}
	if !(cfg.Duration >= 0) || math.IsInf(float64(cfg.Duration), 0) {
		return fmt.Errorf("%w: duration must be non-negative, got %v", dynamo.ErrConfig, cfg.Duration)
	}
	return nil
}
