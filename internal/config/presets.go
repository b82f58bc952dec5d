package config

import (
	"sort"

	"github.com/san-kum/circsim/internal/circuits"
)

// 1 kHz resonance with the default 0.1H inductor.
const audioCapacitance = 253.3e-9

// 2√(L/C) for the default tank.
const criticalResistance = 12.566

// Preset overrides keyed by circuit kind. The default simulations are named
// after their kinds.
var Presets = map[string]map[string]func(*Simulation){
	KindRCCharge: {
		"fine":     func(s *Simulation) { s.Dt = 1e-3 },
		"extended": func(s *Simulation) { s.Duration = 10 },
	},
	KindRCDischarge: {
		"fine":     func(s *Simulation) { s.Dt = 1e-3 },
		"extended": func(s *Simulation) { s.Duration = 10 },
	},
	KindLC: {
		"audio":  func(s *Simulation) { s.C = audioCapacitance; s.Dt = 1e-5; s.Duration = 0.01 },
		"coarse": func(s *Simulation) { s.Dt = 1e-2 },
	},
	KindLCR: {
		"undamped":   func(s *Simulation) { s.R = 0 },
		"symplectic": func(s *Simulation) { s.Scheme = string(circuits.SchemeSymplectic) },
		"critical":   func(s *Simulation) { s.R = criticalResistance },
		"audio":      func(s *Simulation) { s.C = audioCapacitance; s.R = 40; s.Dt = 1e-5; s.Duration = 0.01 },
	},
}

// GetPreset returns the default simulation called name with preset applied,
// or nil when either is unknown.
func GetPreset(name, preset string) *Simulation {
	presets, ok := Presets[name]
	if !ok {
		return nil
	}
	apply, ok := presets[preset]
	if !ok {
		return nil
	}
	sim, ok := find(DefaultSimulations(), name)
	if !ok {
		return nil
	}
	apply(&sim)
	return &sim
}

// ListPresets returns the preset names for a simulation, sorted.
func ListPresets(name string) []string {
	presets, ok := Presets[name]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(presets))
	for p := range presets {
		names = append(names, p)
	}
	sort.Strings(names)
	return names
}

// ApplyPreset applies preset to the simulation called name in place, so
// fields the preset does not touch keep their loaded values.
func (c *Config) ApplyPreset(name, preset string) bool {
	for i := range c.Simulations {
		sim := &c.Simulations[i]
		if sim.Name != name {
			continue
		}
		apply, ok := Presets[sim.Kind][preset]
		if !ok {
			return false
		}
		apply(sim)
		return true
	}
	return false
}
