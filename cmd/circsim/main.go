package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/san-kum/circsim/internal/config"
)

var (
	dataDir    string
	configFile string
	logLevel   string

	// run flags
	outDir   string
	parallel bool
	archive  bool
	dt       float64
	duration float64
	preset   string

	// plot and analyze flags
	plotWidth   int
	plotHeight  int
	reportWidth int
	sweepParam  string
	sweepFrom   float64
	sweepTo     float64
	sweepSteps  int

	// render flags
	format string
	bare   bool
	phase  bool

	configFormat string
)

// main wires the circsim commands. With no subcommand every configured
// simulation runs in order; any error exits with status 1.
func main() {
	rootCmd := newRootCmd()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:               "circsim",
		Short:             "fixed-step simulation of RC, LC and LCR circuits",
		Args:              cobra.NoArgs,
		SilenceUsage:      true,
		PersistentPreRunE: setLogLevel,
		RunE:              runSimulations,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", config.DefaultDataDir, "run archive directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (.yaml or .toml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "warn", "log level (debug, info, warn, error)")
	addRunFlags(rootCmd)

	runCmd := &cobra.Command{
		Use:   "run [name...]",
		Short: "run simulations and write their CSV files",
		RunE:  runSimulations,
	}
	addRunFlags(runCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list archived runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [csv-file|name|run-id]",
		Short: "plot a series in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE:  plotSeries,
	}
	plotCmd.Flags().IntVar(&plotWidth, "width", 70, "plot width")
	plotCmd.Flags().IntVar(&plotHeight, "height", 15, "plot height")
	plotCmd.Flags().StringVar(&outDir, "out", "", "directory holding simulation CSV files")

	renderCmd := &cobra.Command{
		Use:   "render [name...]",
		Short: "render simulations as image files",
		RunE:  renderCharts,
	}
	renderCmd.Flags().StringVar(&format, "format", "png", "image format (png, svg, pdf, jpg, tiff, eps)")
	renderCmd.Flags().StringVar(&outDir, "out", "", "output directory")
	renderCmd.Flags().BoolVar(&bare, "bare", false, "write a bare SVG trace without axes")
	renderCmd.Flags().BoolVar(&phase, "phase", false, "render the phase portrait instead of Vc(t)")
	addOverrideFlags(renderCmd)

	analyzeCmd := &cobra.Command{
		Use:   "analyze [name]",
		Short: "waveform and energy report for one simulation",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeSimulation,
	}
	analyzeCmd.Flags().IntVar(&reportWidth, "width", 72, "report width")
	analyzeCmd.Flags().StringVar(&sweepParam, "sweep", "", "sweep a component value (r, l or c)")
	analyzeCmd.Flags().Float64Var(&sweepFrom, "from", 0, "sweep start")
	analyzeCmd.Flags().Float64Var(&sweepTo, "to", 0, "sweep end")
	analyzeCmd.Flags().IntVar(&sweepSteps, "steps", 5, "sweep points")
	addOverrideFlags(analyzeCmd)

	presetsCmd := &cobra.Command{
		Use:   "presets [name]",
		Short: "list available presets",
		Args:  cobra.MaximumNArgs(1),
		RunE:  listPresets,
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "print the effective configuration",
		Args:  cobra.NoArgs,
		RunE:  dumpConfig,
	}
	configCmd.Flags().StringVar(&configFormat, "format", "yaml", "output format (yaml or toml)")

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, renderCmd, analyzeCmd, presetsCmd, configCmd)
	return rootCmd
}

func addOverrideFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&dt, "dt", 0, "override the timestep")
	cmd.Flags().Float64Var(&duration, "time", 0, "override the duration")
	cmd.Flags().StringVar(&preset, "preset", "", "apply a named preset")
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&outDir, "out", "", "output directory for CSV files")
	cmd.Flags().BoolVar(&parallel, "parallel", false, "run simulations concurrently")
	cmd.Flags().BoolVar(&archive, "archive", false, "archive each run under --data")
	addOverrideFlags(cmd)
}

func setLogLevel(cmd *cobra.Command, args []string) error {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		return fmt.Errorf("--log: %w", err)
	}
	logrus.SetLevel(level)
	return nil
}
