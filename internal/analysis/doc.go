// Package analysis provides waveform measurements for simulated series.
//
//   - [Period]: oscillation period from interpolated upward zero crossings
//   - [DominantFrequency]: strongest non-DC bin of the power spectrum
//   - [Peaks]: local maxima of |v|, used to check damping
//   - [IsMonotonic]: trend checks for the RC charge/discharge curves
//   - [PhasePortrait2D]: two state variables recorded against each other
//   - [Sweep]: one circuit parameter varied across runs
//
// # Damping
//
// A damped oscillator has strictly decreasing peak magnitudes:
//
//	peaks := analysis.Peaks(series.Values)
//	ok := analysis.StrictlyDecreasing(peaks)
package analysis
