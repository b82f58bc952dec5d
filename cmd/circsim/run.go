package main

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/san-kum/circsim/internal/config"
	"github.com/san-kum/circsim/internal/dynamo"
	"github.com/san-kum/circsim/internal/experiment"
	"github.com/san-kum/circsim/internal/storage"
)

// loadConfig builds the effective configuration: defaults or --config,
// narrowed to names, then preset, then explicit flags.
func loadConfig(cmd *cobra.Command, names []string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if err := cfg.Select(names...); err != nil {
		return nil, err
	}

	if preset != "" {
		applied := 0
		for _, sim := range cfg.Simulations {
			if cfg.ApplyPreset(sim.Name, preset) {
				applied++
			}
		}
		if applied == 0 {
			return nil, fmt.Errorf("%w: unknown preset %q for %v", dynamo.ErrConfig, preset, simNames(cfg))
		}
	}

	flags := cmd.Flags()
	if flags.Changed("out") {
		cfg.OutputDir = outDir
	}
	if flags.Changed("parallel") {
		cfg.Parallel = parallel
	}
	if flags.Changed("archive") {
		cfg.Archive = archive
	}
	if flags.Changed("data") || cfg.DataDir == "" {
		cfg.DataDir = dataDir
	}
	for i := range cfg.Simulations {
		if flags.Changed("dt") {
			cfg.Simulations[i].Dt = float32(dt)
		}
		if flags.Changed("time") {
			cfg.Simulations[i].Duration = float32(duration)
		}
	}

	return cfg, cfg.Validate()
}

func simNames(cfg *config.Config) []string {
	names := make([]string, len(cfg.Simulations))
	for i, s := range cfg.Simulations {
		names[i] = s.Name
	}
	return names
}

func runSimulations(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}

	opts := []experiment.Option{experiment.WithStdout(cmd.OutOrStdout())}
	if cfg.Archive {
		st := storage.New(cfg.DataDir)
		if err := st.Init(); err != nil {
			return err
		}
		opts = append(opts, experiment.WithStore(st))
	}

	start := time.Now()
	results, err := experiment.New(cfg, opts...).Run(cmd.Context())
	if err != nil {
		return err
	}

	for _, res := range results {
		logrus.WithFields(logrus.Fields{
			"samples": res.Series.Len(),
			"metrics": res.Metrics,
		}).Infof("%s done", res.Name)
	}
	logrus.Debugf("%d simulations completed in %v", len(results), time.Since(start))
	return nil
}
