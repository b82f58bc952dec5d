package dynamo

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		in   float32
		want string
	}{
		{0, "0"},
		{5, "5"},
		{0.01, "0.01"},
		{0.099999994, "0.099999994"},
		{31.25, "31.25"},
		{-4.98046875, "-4.9804688"},
		{1e-7, "0.0000001"},
		{float32(math.NaN()), "NaN"},
		{float32(math.Inf(1)), "inf"},
		{float32(math.Inf(-1)), "-inf"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatFloat(tt.in))
	}
}

func TestConfigSteps(t *testing.T) {
	tests := []struct {
		cfg  Config
		want int
	}{
		{Config{Dt: 1e-2, Duration: 1}, 101},
		{Config{Dt: 1e-3, Duration: 1}, 1001},
		{Config{Dt: 1e-3, Duration: 0.1}, 101},
		{Config{Dt: 1e-2, Duration: 10}, 1001},
		{Config{Dt: 1, Duration: 0}, 1},
		{Config{Dt: 0, Duration: 1}, 0},
		{Config{Dt: float32(math.NaN()), Duration: 1}, 0},
		{Config{Dt: 1, Duration: float32(math.Inf(1))}, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.cfg.Steps(), "%+v", tt.cfg)
	}
}

func TestSeries(t *testing.T) {
	s := NewSeries(Config{Dt: 0.5, Duration: 1})
	assert.Equal(t, 0, s.Len())
	assert.GreaterOrEqual(t, cap(s.Values), 3)

	s.Append(0, 1)
	s.Append(0.5, -2)
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, Sample{T: 0.5, V: -2}, s.At(1))
	assert.Equal(t, []float64{1, -2}, s.Float64s())
}

func TestSeriesCapacityHint(t *testing.T) {
	assert.Equal(t, 10000, cap(NewSeries(Config{Dt: 1e-3, Duration: 1, Capacity: 10000}).Values))
	assert.Equal(t, maxPrealloc, cap(NewSeries(Config{Dt: 1e-9, Duration: 1e3}).Values))
}

func TestState(t *testing.T) {
	x := State{1, 2}
	y := x.Clone()
	y[0] = 3
	assert.Equal(t, float32(1), x[0])
	assert.True(t, x.IsValid())
	assert.False(t, State{1, float32(math.NaN())}.IsValid())
	assert.False(t, State{float32(math.Inf(-1))}.IsValid())
}

func TestSimulationError(t *testing.T) {
	cause := errors.New("disk full")
	err := error(&SimulationError{Name: "lc", Step: 7, Time: 0.007, Wrapped: OutputError(cause)})

	assert.ErrorIs(t, err, ErrOutput)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "lc")

	var se *SimulationError
	assert.ErrorAs(t, err, &se)
	assert.Equal(t, 7, se.Step)
}
