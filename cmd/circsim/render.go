package main

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/san-kum/circsim/internal/analysis"
	"github.com/san-kum/circsim/internal/config"
	"github.com/san-kum/circsim/internal/dynamo"
	"github.com/san-kum/circsim/internal/experiment"
	"github.com/san-kum/circsim/internal/export"
)

func renderCharts(cmd *cobra.Command, args []string) error {
	if bare && phase {
		return fmt.Errorf("--bare and --phase cannot be combined")
	}
	if bare && format != "svg" {
		if cmd.Flags().Changed("format") {
			return fmt.Errorf("--bare writes svg, not %s", format)
		}
		format = "svg"
	}
	if !slices.Contains(export.Formats, format) {
		return fmt.Errorf("unsupported format %q (available: %v)", format, export.Formats)
	}

	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return dynamo.OutputError(err)
	}

	exp := experiment.New(cfg)
	for _, sim := range cfg.Simulations {
		path := filepath.Join(cfg.OutputDir, sim.Name+"."+format)
		if phase {
			path = filepath.Join(cfg.OutputDir, sim.Name+"_phase."+format)
		}
		if err := renderOne(exp, sim, path); err != nil {
			return fmt.Errorf("render %s: %w", sim.Name, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
	}
	return nil
}

func renderOne(exp *experiment.Experiment, sim config.Simulation, path string) error {
	var portrait *analysis.PhasePortrait2D
	var observers []dynamo.Observer
	var axes experiment.Axes

	if phase {
		c, err := experiment.NewRegistry().Build(sim)
		if err != nil {
			return err
		}
		var ok bool
		if axes, ok = experiment.PhaseAxes(c); !ok {
			return fmt.Errorf("no phase plane for %s", sim.Kind)
		}
		portrait = analysis.NewPhasePortrait(axes.X, axes.Y)
		observers = append(observers, portrait)
	}

	res, _, err := exp.Simulate(sim, observers...)
	if err != nil {
		return err
	}
	logrus.Debugf("%s: %d samples to render", sim.Name, res.Series.Len())

	if bare {
		svg := export.SeriesToSVG(res.Series, 800, 300, "#00ff88")
		if svg == "" {
			return fmt.Errorf("nothing finite to draw")
		}
		if err := os.WriteFile(path, []byte(svg), 0644); err != nil {
			return dynamo.OutputError(err)
		}
		return nil
	}

	opts := export.DefaultChartOptions()
	opts.Title = fmt.Sprintf("%s (dt=%ss)", sim.Name, dynamo.FormatFloat(sim.Dt))
	if phase {
		opts.XLabel, opts.YLabel = axes.XLabel, axes.YLabel
		opts.Height = opts.Width
		p, err := export.PhaseChart(portrait, opts)
		if err != nil {
			return err
		}
		return export.SaveChart(path, p, opts)
	}

	p, err := export.SeriesChart([]export.Trace{{Name: "Vc", Series: res.Series}}, opts)
	if err != nil {
		return err
	}
	return export.SaveChart(path, p, opts)
}
