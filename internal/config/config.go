package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/circsim/internal/circuits"
	"github.com/san-kum/circsim/internal/dynamo"
)

// Circuit kinds.
const (
	KindRCCharge    = "rc_charge"
	KindRCDischarge = "rc_discharge"
	KindLC          = "lc"
	KindLCR         = "lcr"
)

const (
	DefaultDuration       = 1.0
	DefaultRCDt           = 1e-2
	DefaultTankDt         = 1e-3
	DefaultTankCapacity   = 10000
	DefaultStabilityBound = 1e3
	DefaultDataDir        = ".circsim"
)

// Kinds lists the circuit kinds in their default run order.
var Kinds = []string{KindRCCharge, KindRCDischarge, KindLC, KindLCR}

// Simulation is the parameter record for one run. Component values that a
// kind does not use are ignored.
type Simulation struct {
	Name     string  `yaml:"name" toml:"name"`
	Kind     string  `yaml:"kind" toml:"kind"`
	Output   string  `yaml:"output" toml:"output"`
	Vs       float32 `yaml:"vs" toml:"vs"`
	R        float32 `yaml:"r,omitempty" toml:"r,omitempty"`
	C        float32 `yaml:"c" toml:"c"`
	L        float32 `yaml:"l,omitempty" toml:"l,omitempty"`
	Dt       float32 `yaml:"dt" toml:"dt"`
	Duration float32 `yaml:"duration" toml:"duration"`
	Capacity int     `yaml:"capacity,omitempty" toml:"capacity,omitempty"`
	Scheme   string  `yaml:"scheme,omitempty" toml:"scheme,omitempty"`
}

type Config struct {
	OutputDir      string       `yaml:"output_dir" toml:"output_dir"`
	DataDir        string       `yaml:"data_dir" toml:"data_dir"`
	Parallel       bool         `yaml:"parallel" toml:"parallel"`
	Archive        bool         `yaml:"archive" toml:"archive"`
	StabilityBound float64      `yaml:"stability_bound" toml:"stability_bound"`
	Simulations    []Simulation `yaml:"simulations" toml:"simulations"`
}

func DefaultSimulations() []Simulation {
	return []Simulation{
		{
			Name: KindRCCharge, Kind: KindRCCharge, Output: "rc_charge.csv",
			Vs: circuits.DefaultSourceVoltage, R: circuits.DefaultRCResistance, C: circuits.DefaultRCCapacitance,
			Dt: DefaultRCDt, Duration: DefaultDuration,
		},
		{
			Name: KindRCDischarge, Kind: KindRCDischarge, Output: "rc_discharge.csv",
			Vs: circuits.DefaultSourceVoltage, R: circuits.DefaultRCResistance, C: circuits.DefaultRCCapacitance,
			Dt: DefaultRCDt, Duration: DefaultDuration,
		},
		{
			Name: KindLC, Kind: KindLC, Output: "lc_sim.csv",
			Vs: circuits.DefaultSourceVoltage, C: circuits.DefaultTankCapacitance, L: circuits.DefaultTankInductance,
			Dt: DefaultTankDt, Duration: DefaultDuration, Capacity: DefaultTankCapacity,
		},
		{
			Name: KindLCR, Kind: KindLCR, Output: "lcr_sim.csv",
			Vs: circuits.DefaultSourceVoltage, R: circuits.DefaultLCRResistance,
			C: circuits.DefaultTankCapacitance, L: circuits.DefaultTankInductance,
			Dt: DefaultTankDt, Duration: DefaultDuration, Capacity: DefaultTankCapacity,
			Scheme: string(circuits.SchemeExplicit),
		},
	}
}

func DefaultConfig() *Config {
	return &Config{
		OutputDir:      ".",
		DataDir:        DefaultDataDir,
		StabilityBound: DefaultStabilityBound,
		Simulations:    DefaultSimulations(),
	}
}

// Format is a config file encoding.
type Format int

const (
	FormatYAML Format = iota
	FormatTOML
)

func (f Format) String() string {
	if f == FormatTOML {
		return "toml"
	}
	return "yaml"
}

// ParseFormatName maps "yaml", "yml" or "toml" to a Format.
func ParseFormatName(name string) (Format, error) {
	switch strings.ToLower(name) {
	case "yaml", "yml":
		return FormatYAML, nil
	case "toml":
		return FormatTOML, nil
	}
	return FormatYAML, fmt.Errorf("%w: unknown config format %q", dynamo.ErrConfig, name)
}

// DetectFormat picks the encoding from the file extension; anything other
// than .toml is read as YAML.
func DetectFormat(path string) Format {
	if strings.ToLower(filepath.Ext(path)) == ".toml" {
		return FormatTOML
	}
	return FormatYAML
}

// Load overlays the file at path on DefaultConfig. A simulations list in the
// file replaces the default list; each entry starts from the default
// simulation of the same name, so only changed fields need to be given.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", dynamo.ErrConfig, err)
	}
	cfg, err := ParseFormat(data, DetectFormat(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse reads a YAML document.
func Parse(data []byte) (*Config, error) {
	return ParseFormat(data, FormatYAML)
}

func ParseFormat(data []byte, format Format) (*Config, error) {
	var (
		cfg *Config
		err error
	)
	switch format {
	case FormatTOML:
		cfg, err = parseTOML(data)
	default:
		cfg, err = parse(data)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", dynamo.ErrConfig, format, err)
	}
	return cfg, nil
}

func parse(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	defaults := cfg.Simulations

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	var raw struct {
		Simulations []yaml.Node `yaml:"simulations" toml:"simulations"`
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	if raw.Simulations != nil {
		sims := make([]Simulation, 0, len(raw.Simulations))
		for i := range raw.Simulations {
			node := &raw.Simulations[i]

			var head struct {
				Name string `yaml:"name" toml:"name"`
			}
			if err := node.Decode(&head); err != nil {
				return nil, err
			}

			sim := Simulation{Name: head.Name}
			if base, ok := find(defaults, head.Name); ok {
				sim = base
			}
			if err := node.Decode(&sim); err != nil {
				return nil, err
			}
			sims = append(sims, sim)
		}
		cfg.Simulations = sims
	}

	return cfg, nil
}

func parseTOML(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	// toml decodes tables into existing slice elements, so the overlay bases
	// must not share cfg's backing array.
	defaults := DefaultSimulations()

	if _, err := toml.Decode(string(data), cfg); err != nil {
		return nil, err
	}

	var raw struct {
		Simulations []toml.Primitive `toml:"simulations"`
	}
	md, err := toml.Decode(string(data), &raw)
	if err != nil {
		return nil, err
	}
	if !md.IsDefined("simulations") {
		cfg.Simulations = defaults
		return cfg, nil
	}

	sims := make([]Simulation, 0, len(raw.Simulations))
	for _, prim := range raw.Simulations {
		var head struct {
			Name string `toml:"name"`
		}
		if err := md.PrimitiveDecode(prim, &head); err != nil {
			return nil, err
		}

		sim := Simulation{Name: head.Name}
		if base, ok := find(defaults, head.Name); ok {
			sim = base
		}
		if err := md.PrimitiveDecode(prim, &sim); err != nil {
			return nil, err
		}
		sims = append(sims, sim)
	}
	cfg.Simulations = sims
	return cfg, nil
}

// Save writes cfg in the format implied by the extension of path.
func Save(path string, cfg *Config) error {
	data, err := MarshalFormat(cfg, DetectFormat(path))
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Marshal renders cfg as YAML that Load reads back unchanged.
func Marshal(cfg *Config) ([]byte, error) {
	return MarshalFormat(cfg, FormatYAML)
}

func MarshalFormat(cfg *Config, format Format) ([]byte, error) {
	if format == FormatTOML {
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
	return yaml.Marshal(cfg)
}

func find(sims []Simulation, name string) (Simulation, bool) {
	for _, s := range sims {
		if s.Name == name {
			return s, true
		}
	}
	return Simulation{}, false
}

// Lookup returns the simulation called name.
func (c *Config) Lookup(name string) (Simulation, bool) {
	return find(c.Simulations, name)
}

// Select keeps only the named simulations, in the order given.
func (c *Config) Select(names ...string) error {
	if len(names) == 0 {
		return nil
	}
	selected := make([]Simulation, 0, len(names))
	for _, name := range names {
		sim, ok := c.Lookup(name)
		if !ok {
			return fmt.Errorf("%w: no simulation named %q", dynamo.ErrConfig, name)
		}
		selected = append(selected, sim)
	}
	c.Simulations = selected
	return nil
}

func (c *Config) Validate() error {
	if len(c.Simulations) == 0 {
		return fmt.Errorf("%w: no simulations configured", dynamo.ErrConfig)
	}

	var errs []error
	seen := make(map[string]bool)
	for _, s := range c.Simulations {
		if seen[s.Name] {
			errs = append(errs, fmt.Errorf("%w: duplicate simulation %q", dynamo.ErrConfig, s.Name))
		}
		seen[s.Name] = true
		if err := s.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (s Simulation) Validate() error {
	fail := func(format string, args ...any) error {
		return fmt.Errorf("%w: %s: %s", dynamo.ErrConfig, s.label(), fmt.Sprintf(format, args...))
	}

	if s.Name == "" {
		return fail("name is required")
	}
	if s.Output == "" {
		return fail("output is required")
	}
	if !(s.Dt > 0) {
		return fail("dt must be positive, got %v", s.Dt)
	}
	if !(s.Duration >= 0) {
		return fail("duration must be non-negative, got %v", s.Duration)
	}
	if s.Capacity < 0 {
		return fail("capacity must not be negative")
	}
	if !(s.C > 0) {
		return fail("capacitance must be positive, got %v", s.C)
	}

	switch s.Kind {
	case KindRCCharge, KindRCDischarge:
		if !(s.R > 0) {
			return fail("resistance must be positive, got %v", s.R)
		}
	case KindLC:
		if !(s.L > 0) {
			return fail("inductance must be positive, got %v", s.L)
		}
	case KindLCR:
		if !(s.L > 0) {
			return fail("inductance must be positive, got %v", s.L)
		}
		if s.R < 0 {
			return fail("resistance must not be negative, got %v", s.R)
		}
		if _, err := circuits.ParseScheme(s.Scheme); err != nil {
			return fail("unknown scheme %q", s.Scheme)
		}
	default:
		return fmt.Errorf("%w: %s: %q", dynamo.ErrUnknownCircuit, s.label(), s.Kind)
	}

	if s.Scheme != "" && s.Kind != KindLCR {
		return fail("scheme only applies to lcr")
	}
	return nil
}

func (s Simulation) label() string {
	if s.Name == "" {
		return "simulation"
	}
	return s.Name
}

// RunConfig is the integrator configuration for s.
func (s Simulation) RunConfig() dynamo.Config {
	return dynamo.Config{
		Dt:       s.Dt,
		Duration: s.Duration,
		Capacity: s.Capacity,
	}
}
