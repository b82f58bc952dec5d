package analysis

import (
	"math"

	"golang.org/x/exp/constraints"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

type Direction int

const (
	Rising Direction = iota
	Falling
)

func (d Direction) String() string {
	if d == Falling {
		return "falling"
	}
	return "rising"
}

// Peak is a local maximum of |v|.
type Peak struct {
	Index int
	Value float64
}

func abs[T constraints.Float](v T) float64 {
	return math.Abs(float64(v))
}

// Peaks returns the local maxima of |v| in order. Endpoints are never peaks.
func Peaks[T constraints.Float](values []T) []Peak {
	peaks := make([]Peak, 0)
	for i := 1; i+1 < len(values); i++ {
		prev, cur, next := abs(values[i-1]), abs(values[i]), abs(values[i+1])
		if cur >= prev && cur > next {
			peaks = append(peaks, Peak{Index: i, Value: cur})
		}
	}
	return peaks
}

// StrictlyDecreasing reports whether every peak is smaller than the one
// before it. Fewer than two peaks is vacuously true.
func StrictlyDecreasing(peaks []Peak) bool {
	for i := 1; i < len(peaks); i++ {
		if peaks[i].Value >= peaks[i-1].Value {
			return false
		}
	}
	return true
}

// DecayRatios returns the ratio of each peak to its predecessor.
func DecayRatios(peaks []Peak) []float64 {
	if len(peaks) < 2 {
		return nil
	}
	ratios := make([]float64, len(peaks)-1)
	for i := 1; i < len(peaks); i++ {
		ratios[i-1] = peaks[i].Value / peaks[i-1].Value
	}
	return ratios
}

// MeanDecayRatio averages DecayRatios; 1 means undamped.
func MeanDecayRatio(peaks []Peak) float64 {
	ratios := DecayRatios(peaks)
	if len(ratios) == 0 {
		return math.NaN()
	}
	return stat.Mean(ratios, nil)
}

// ZeroCrossings returns the linearly interpolated times at which values goes
// from negative to non-negative.
func ZeroCrossings[T constraints.Float](times, values []T) []float64 {
	n := min(len(times), len(values))
	crossings := make([]float64, 0)
	for i := 1; i < n; i++ {
		v0, v1 := float64(values[i-1]), float64(values[i])
		if v0 < 0 && v1 >= 0 {
			t0, t1 := float64(times[i-1]), float64(times[i])
			frac := -v0 / (v1 - v0)
			crossings = append(crossings, t0+frac*(t1-t0))
		}
	}
	return crossings
}

// Period is the mean spacing of upward zero crossings. ok is false when
// fewer than two crossings exist.
func Period[T constraints.Float](times, values []T) (period float64, ok bool) {
	crossings := ZeroCrossings(times, values)
	if len(crossings) < 2 {
		return 0, false
	}
	spacing := make([]float64, len(crossings)-1)
	for i := 1; i < len(crossings); i++ {
		spacing[i-1] = crossings[i] - crossings[i-1]
	}
	return stat.Mean(spacing, nil), true
}

// IsMonotonic reports whether values never move against dir.
func IsMonotonic[T constraints.Float](values []T, dir Direction) bool {
	for i := 1; i < len(values); i++ {
		switch dir {
		case Rising:
			if values[i] < values[i-1] {
				return false
			}
		case Falling:
			if values[i] > values[i-1] {
				return false
			}
		}
	}
	return true
}

// Bounds returns the smallest and largest value.
func Bounds[T constraints.Float](values []T) (lo, hi float64) {
	if len(values) == 0 {
		return math.NaN(), math.NaN()
	}
	f := make([]float64, len(values))
	for i, v := range values {
		f[i] = float64(v)
	}
	return floats.Min(f), floats.Max(f)
}

// MaxAbs is the largest |v|.
func MaxAbs[T constraints.Float](values []T) float64 {
	m := 0.0
	for _, v := range values {
		m = math.Max(m, abs(v))
	}
	return m
}

// Finite reports whether no value is NaN or infinite.
func Finite[T constraints.Float](values []T) bool {
	for _, v := range values {
		f := float64(v)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}
