// Package circuits provides the hand-derived Euler recurrences for the
// supported linear networks.
//
// Each model implements [dynamo.Circuit]: an initial state plus a per-step
// update closed over the component values.
//
//   - [RCCharge]: capacitor charging through a resistor
//   - [RCDischarge]: capacitor discharging through a resistor
//   - [LCTank]: lossless inductor-capacitor oscillator
//   - [LCROscillator]: series resistor-inductor-capacitor loop
//
// All arithmetic is float32. Products are converted back to float32 before
// they are accumulated so no platform fuses them into a multiply-add and the
// output is bit-identical everywhere.
//
// # Stability
//
// The step is fixed. The explicit LCR recurrence gains energy by a factor of
// about 1+(hω)² per step when R is small; [SchemeSymplectic] avoids that.
package circuits
