package analysis

import (
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/stat"
)

// PowerSpectrum returns the magnitudes of the n/2+1 non-negative frequency
// bins of data. Bin k is k/(n*dt) Hz.
func PowerSpectrum(data []float64) []float64 {
	if len(data) == 0 {
		return nil
	}
	coeffs := fourier.NewFFT(len(data)).Coefficients(nil, data)
	ps := make([]float64, len(coeffs))
	for i, c := range coeffs {
		ps[i] = cmplx.Abs(c)
	}
	return ps
}

// DominantFrequency returns the frequency in Hz of the strongest non-DC bin.
// Resolution is 1/(N*dt).
func DominantFrequency(data []float64, dt float64) float64 {
	n := len(data)
	if n < 4 || dt <= 0 {
		return 0
	}

	mean := stat.Mean(data, nil)
	centered := make([]float64, n)
	for i, v := range data {
		centered[i] = v - mean
	}

	fft := fourier.NewFFT(n)
	coeffs := fft.Coefficients(nil, centered)
	best := 1
	for k := 2; k < len(coeffs); k++ {
		if cmplx.Abs(coeffs[k]) > cmplx.Abs(coeffs[best]) {
			best = k
		}
	}
	return fft.Freq(best) / dt
}
