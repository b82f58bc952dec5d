// Package dynamo provides core simulation primitives for fixed-step circuit
// simulation.
//
// The package defines the fundamental interfaces and types shared by the
// integrator, the circuit models and the output layer:
//
//   - [State]: float32 vector holding one circuit's state
//   - [Circuit]: a hand-derived per-step recurrence with an initial state
//   - [Sink]: consumer of (t, value) samples, e.g. a CSV file
//   - [Observer]: per-step hook used by metrics
//   - [Series]: the time series every run returns
//
// # Example
//
//	c := circuits.NewRCCharge(circuits.DefaultRC())
//	euler := integrators.NewEuler()
//	res, err := euler.Run(c, dynamo.Config{Dt: 1e-2, Duration: 1})
//
// # Thread Safety
//
// A [State] is owned by exactly one run. Circuits hold only immutable
// constants and may be shared between goroutines.
package dynamo
