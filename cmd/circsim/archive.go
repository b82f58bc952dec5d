package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/circsim/internal/dynamo"
	"github.com/san-kum/circsim/internal/storage"
	"github.com/san-kum/circsim/internal/viz"
)

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(out, "no runs found")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tKIND\tTIME\tDURATION\tDT\tSAMPLES")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%ss\t%ss\t%d\n",
			run.ID,
			run.Kind,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			dynamo.FormatFloat(run.Duration),
			dynamo.FormatFloat(run.Dt),
			run.Samples,
		)
	}
	return w.Flush()
}

// resolveSeries finds the series named by ref: a CSV path, the output of a
// configured simulation, or an archived run ID, in that order.
func resolveSeries(cmd *cobra.Command, ref string) (*dynamo.Series, string, error) {
	if fi, err := os.Stat(ref); err == nil && !fi.IsDir() {
		s, err := storage.ReadSeriesFile(ref)
		return s, ref, err
	}

	cfg, err := loadConfig(cmd, nil)
	if err != nil {
		return nil, "", err
	}
	if sim, ok := cfg.Lookup(ref); ok {
		path := filepath.Join(cfg.OutputDir, sim.Output)
		s, err := storage.ReadSeriesFile(path)
		if err == nil {
			return s, path, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return nil, "", err
		}
	}

	st := storage.New(cfg.DataDir)
	meta, err := st.Load(ref)
	if err != nil {
		return nil, "", fmt.Errorf("%s is not a CSV file, simulation output or run id: %w", ref, err)
	}
	s, err := st.LoadSeries(meta.ID)
	return s, meta.ID, err
}

func plotSeries(cmd *cobra.Command, args []string) error {
	series, source, err := resolveSeries(cmd, args[0])
	if err != nil {
		return err
	}
	if series.Len() == 0 {
		return fmt.Errorf("no data to plot in %s", source)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "source: %s\n", source)
	fmt.Fprintf(out, "samples: %d\n\n", series.Len())
	fmt.Fprintln(out, viz.PlotSeries(series, viz.PlotOptions{
		Width:   plotWidth,
		Height:  plotHeight,
		Caption: "Vc (V) against sample",
	}))
	return nil
}
