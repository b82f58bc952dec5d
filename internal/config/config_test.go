package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/circsim/internal/dynamo"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	names := make([]string, 0)
	outputs := make([]string, 0)
	for _, s := range cfg.Simulations {
		names = append(names, s.Name)
		outputs = append(outputs, s.Output)
	}
	assert.Equal(t, Kinds, names)
	assert.Equal(t, []string{"rc_charge.csv", "rc_discharge.csv", "lc_sim.csv", "lcr_sim.csv"}, outputs)

	lc, ok := cfg.Lookup(KindLC)
	require.True(t, ok)
	assert.Equal(t, float32(1e-3), lc.Dt)
	assert.Equal(t, 10000, lc.Capacity)

	rc, _ := cfg.Lookup(KindRCCharge)
	assert.Equal(t, dynamo.Config{Dt: 1e-2, Duration: 1}, rc.RunConfig())
}

func TestParseOverlaysDefaults(t *testing.T) {
	data := []byte(`
output_dir: out
parallel: true
simulations:
  - name: lcr
    r: 0
  - name: rc_charge
    dt: 0.001
`)
	cfg, err := Parse(data)
	require.NoError(t, err)

	assert.Equal(t, "out", cfg.OutputDir)
	assert.True(t, cfg.Parallel)
	assert.Equal(t, DefaultDataDir, cfg.DataDir)
	require.Len(t, cfg.Simulations, 2)

	lcr := cfg.Simulations[0]
	assert.Equal(t, "lcr", lcr.Name)
	assert.Equal(t, KindLCR, lcr.Kind)
	assert.Zero(t, lcr.R)
	assert.Equal(t, float32(0.1), lcr.L)
	assert.Equal(t, "lcr_sim.csv", lcr.Output)

	rc := cfg.Simulations[1]
	assert.Equal(t, float32(0.001), rc.Dt)
	assert.Equal(t, float32(1.6e3), rc.R)

	require.NoError(t, cfg.Validate())
}

func TestParseWithoutSimulationsKeepsDefaults(t *testing.T) {
	cfg, err := Parse([]byte("archive: true\n"))
	require.NoError(t, err)
	assert.True(t, cfg.Archive)
	assert.Equal(t, DefaultSimulations(), cfg.Simulations)
}

func TestParseNewSimulation(t *testing.T) {
	cfg, err := Parse([]byte(`
simulations:
  - name: slow_rc
    kind: rc_charge
    output: slow.csv
    vs: 12
    r: 10000
    c: 0.001
    dt: 0.1
    duration: 50
`))
	require.NoError(t, err)
	require.Len(t, cfg.Simulations, 1)
	assert.Equal(t, float32(12), cfg.Simulations[0].Vs)
	require.NoError(t, cfg.Validate())
}

func TestParseInvalidYAML(t *testing.T) {
	_, err := Parse([]byte("simulations: [unterminated"))
	assert.ErrorIs(t, err, dynamo.ErrConfig)
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "circsim.yaml")
	cfg := DefaultConfig()
	cfg.Parallel = true
	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, dynamo.ErrConfig)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		target error
	}{
		{"zero dt", func(c *Config) { c.Simulations[0].Dt = 0 }, dynamo.ErrConfig},
		{"negative duration", func(c *Config) { c.Simulations[1].Duration = -1 }, dynamo.ErrConfig},
		{"zero capacitance", func(c *Config) { c.Simulations[2].C = 0 }, dynamo.ErrConfig},
		{"zero rc resistance", func(c *Config) { c.Simulations[0].R = 0 }, dynamo.ErrConfig},
		{"zero inductance", func(c *Config) { c.Simulations[3].L = 0 }, dynamo.ErrConfig},
		{"bad scheme", func(c *Config) { c.Simulations[3].Scheme = "rk4" }, dynamo.ErrConfig},
		{"scheme on rc", func(c *Config) { c.Simulations[0].Scheme = "symplectic" }, dynamo.ErrConfig},
		{"missing output", func(c *Config) { c.Simulations[2].Output = "" }, dynamo.ErrConfig},
		{"duplicate", func(c *Config) { c.Simulations[1].Name = c.Simulations[0].Name }, dynamo.ErrConfig},
		{"unknown kind", func(c *Config) { c.Simulations[0].Kind = "rlc_bridge" }, dynamo.ErrUnknownCircuit},
		{"empty", func(c *Config) { c.Simulations = nil }, dynamo.ErrConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.target)
		})
	}
}

func TestUndampedLCRIsValid(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Simulations[3].R = 0
	assert.NoError(t, cfg.Validate())
}

func TestSelect(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Select("lcr", "rc_charge"))
	require.Len(t, cfg.Simulations, 2)
	assert.Equal(t, "lcr", cfg.Simulations[0].Name)
	assert.Equal(t, "rc_charge", cfg.Simulations[1].Name)

	err := DefaultConfig().Select("bogus")
	assert.ErrorIs(t, err, dynamo.ErrConfig)
}

func TestParseTOMLOverlaysDefaults(t *testing.T) {
	data := []byte(`
output_dir = "out"
parallel = true

[[simulations]]
name = "lcr"
r = 0.0
scheme = "symplectic"

[[simulations]]
name = "rc_charge"
dt = 0.001
`)
	cfg, err := ParseFormat(data, FormatTOML)
	require.NoError(t, err)

	assert.Equal(t, "out", cfg.OutputDir)
	assert.True(t, cfg.Parallel)
	require.Len(t, cfg.Simulations, 2)

	lcr := cfg.Simulations[0]
	assert.Equal(t, "lcr", lcr.Name)
	assert.Equal(t, KindLCR, lcr.Kind)
	assert.Equal(t, float32(0), lcr.R)
	assert.Equal(t, "symplectic", lcr.Scheme)
	assert.Equal(t, "lcr_sim.csv", lcr.Output)

	rc := cfg.Simulations[1]
	assert.Equal(t, KindRCCharge, rc.Kind)
	assert.Equal(t, "rc_charge.csv", rc.Output)
	assert.Equal(t, float32(0.001), rc.Dt)
	assert.Equal(t, float32(1600), rc.R)
	require.NoError(t, cfg.Validate())
}

func TestParseTOMLWithoutSimulationsKeepsDefaults(t *testing.T) {
	cfg, err := ParseFormat([]byte("archive = true\n"), FormatTOML)
	require.NoError(t, err)
	assert.True(t, cfg.Archive)
	assert.Equal(t, DefaultSimulations(), cfg.Simulations)
}

func TestParseTOMLInvalid(t *testing.T) {
	_, err := ParseFormat([]byte("simulations = [unterminated"), FormatTOML)
	assert.ErrorIs(t, err, dynamo.ErrConfig)
}

func TestSaveLoadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "circsim.toml")
	cfg := DefaultConfig()
	cfg.Simulations[3].Scheme = "symplectic"
	require.NoError(t, Save(path, cfg))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "[[simulations]]")

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestFormats(t *testing.T) {
	assert.Equal(t, FormatTOML, DetectFormat("a/b.TOML"))
	assert.Equal(t, FormatYAML, DetectFormat("a/b.yml"))
	assert.Equal(t, FormatYAML, DetectFormat("noext"))

	f, err := ParseFormatName("toml")
	require.NoError(t, err)
	assert.Equal(t, "toml", f.String())
	_, err = ParseFormatName("json")
	assert.ErrorIs(t, err, dynamo.ErrConfig)
}
