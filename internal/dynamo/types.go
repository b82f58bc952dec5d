package dynamo

import (
	"math"
	"strconv"
)

type State []float32

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		f := float64(v)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}

// Circuit is one hand-derived fixed-step recurrence. Step mutates x in place
// and must apply its updates in the documented order.
type Circuit interface {
	Name() string
	Init() State
	Step(x State, h float32)
	Output(x State) float32
}

// Hamiltonian is implemented by circuits that store energy in reactive
// elements.
type Hamiltonian interface {
	Energy(x State) float64
}

// Sink consumes emitted samples in order.
type Sink interface {
	Record(t, v float32) error
}

type SinkFunc func(t, v float32) error

func (f SinkFunc) Record(t, v float32) error { return f(t, v) }

type Observer interface {
	OnStep(x State, t float32)
}

type Metric interface {
	Observer
	Name() string
	Value() float64
	Reset()
}

type Config struct {
	Dt       float32
	Duration float32
	// Capacity is a preallocation hint for the returned series, not a cap.
	Capacity int
}

func DefaultConfig() Config {
	return Config{
		Dt:       0.01,
		Duration: 1.0,
	}
}

// Steps is floor(Duration/Dt)+1, the nominal number of samples a run emits,
// computed on the decimal values as written (1/0.001 is 1000, not 999.99994).
// Accumulated rounding in t can move the actual count by one.
func (c Config) Steps() int {
	dt, d := decimal(c.Dt), decimal(c.Duration)
	if !(dt > 0) || !(d >= 0) || math.IsInf(dt, 0) || math.IsInf(d, 0) {
		return 0
	}
	n := math.Floor(d/dt) + 1
	if n > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(n)
}

// decimal widens v through its shortest decimal form.
func decimal(v float32) float64 {
	f, _ := strconv.ParseFloat(strconv.FormatFloat(float64(v), 'g', -1, 32), 64)
	return f
}

// maxPrealloc bounds the capacity derived from Steps.
const maxPrealloc = 1 << 20

func (c Config) capacity() int {
	if c.Capacity > 0 {
		return c.Capacity
	}
	return min(c.Steps()+1, maxPrealloc)
}

type Sample struct {
	T float32
	V float32
}

type Series struct {
	Times  []float32
	Values []float32
}

func NewSeries(cfg Config) *Series {
	n := cfg.capacity()
	return &Series{
		Times:  make([]float32, 0, n),
		Values: make([]float32, 0, n),
	}
}

func (s *Series) Append(t, v float32) {
	s.Times = append(s.Times, t)
	s.Values = append(s.Values, v)
}

func (s *Series) Len() int { return len(s.Values) }

func (s *Series) At(i int) Sample {
	return Sample{T: s.Times[i], V: s.Values[i]}
}

func (s *Series) Float64s() []float64 {
	out := make([]float64, len(s.Values))
	for i, v := range s.Values {
		out[i] = float64(v)
	}
	return out
}

// FormatFloat renders v as the shortest non-exponent decimal that round-trips
// a float32.
func FormatFloat(v float32) string {
	f := float64(v)
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	return strconv.FormatFloat(f, 'f', -1, 32)
}

type Result struct {
	Name    string
	Series  *Series
	Final   State
	Metrics map[string]float64
}
