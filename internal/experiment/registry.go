package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/circsim/internal/circuits"
	"github.com/san-kum/circsim/internal/config"
	"github.com/san-kum/circsim/internal/dynamo"
	"github.com/san-kum/circsim/internal/metrics"
)

// Builder turns a parameter record into a circuit.
type Builder func(sim config.Simulation) (dynamo.Circuit, error)

type Registry struct {
	circuits map[string]Builder
}

func NewRegistry() *Registry {
	r := &Registry{
		circuits: make(map[string]Builder),
	}

	r.circuits[config.KindRCCharge] = func(s config.Simulation) (dynamo.Circuit, error) {
		return circuits.NewRCCharge(circuits.RCParams{Vs: s.Vs, R: s.R, C: s.C}), nil
	}
	r.circuits[config.KindRCDischarge] = func(s config.Simulation) (dynamo.Circuit, error) {
		return circuits.NewRCDischarge(circuits.RCParams{Vs: s.Vs, R: s.R, C: s.C}), nil
	}
	r.circuits[config.KindLC] = func(s config.Simulation) (dynamo.Circuit, error) {
		return circuits.NewLCTank(circuits.LCParams{Vs: s.Vs, L: s.L, C: s.C}), nil
	}
	r.circuits[config.KindLCR] = func(s config.Simulation) (dynamo.Circuit, error) {
		scheme, err := circuits.ParseScheme(s.Scheme)
		if err != nil {
			return nil, err
		}
		return circuits.NewLCROscillator(circuits.LCRParams{Vs: s.Vs, R: s.R, L: s.L, C: s.C, Scheme: scheme}), nil
	}

	return r
}

func (r *Registry) Register(kind string, b Builder) {
	r.circuits[kind] = b
}

func (r *Registry) Build(sim config.Simulation) (dynamo.Circuit, error) {
	fn, ok := r.circuits[sim.Kind]
	if !ok {
		return nil, fmt.Errorf("%w: %s", dynamo.ErrUnknownCircuit, sim.Kind)
	}
	return fn(sim)
}

func (r *Registry) ListKinds() []string {
	names := make([]string, 0, len(r.circuits))
	for name := range r.circuits {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) DefaultMetrics(c dynamo.Circuit, stabilityBound float64) []dynamo.Metric {
	if stabilityBound <= 0 {
		stabilityBound = config.DefaultStabilityBound
	}
	return metrics.Default(c, stabilityBound)
}

// Params reports a circuit's component values when it exposes them.
func Params(c dynamo.Circuit) map[string]float64 {
	if p, ok := c.(interface{ GetParams() map[string]float64 }); ok {
		return p.GetParams()
	}
	return nil
}

// Axes names two state variables for a phase portrait.
type Axes struct {
	X, Y           int
	XLabel, YLabel string
}

// PhaseAxes picks the natural phase plane of c: capacitor voltage against
// inductor current for tank circuits, voltage against its slope for RC.
func PhaseAxes(c dynamo.Circuit) (Axes, bool) {
	switch c.(type) {
	case *circuits.LCTank:
		return Axes{X: circuits.LCVoltage, Y: circuits.LCCurrent, XLabel: "Vc (V)", YLabel: "I (A)"}, true
	case *circuits.LCROscillator:
		return Axes{X: circuits.LCRVoltage, Y: circuits.LCRCurrent, XLabel: "Vc (V)", YLabel: "I (A)"}, true
	case *circuits.RCCharge, *circuits.RCDischarge:
		return Axes{X: circuits.RCVoltage, Y: circuits.RCSlope, XLabel: "Vc (V)", YLabel: "dVc/dt (V/s)"}, true
	}
	return Axes{}, false
}
