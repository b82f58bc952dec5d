package main

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/circsim/internal/analysis"
	"github.com/san-kum/circsim/internal/circuits"
	"github.com/san-kum/circsim/internal/config"
	"github.com/san-kum/circsim/internal/dynamo"
	"github.com/san-kum/circsim/internal/experiment"
	"github.com/san-kum/circsim/internal/integrators"
	"github.com/san-kum/circsim/internal/viz"
)

func analyzeSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	sim := cfg.Simulations[0]

	registry := experiment.NewRegistry()
	c, err := registry.Build(sim)
	if err != nil {
		return err
	}

	var observers []dynamo.Observer
	var portrait *analysis.PhasePortrait2D
	if axes, ok := experiment.PhaseAxes(c); ok {
		portrait = analysis.NewPhasePortrait(axes.X, axes.Y)
		observers = append(observers, portrait)
	}

	res, c, err := experiment.New(cfg).Simulate(sim, observers...)
	if err != nil {
		return err
	}

	report := buildReport(sim, c, res, reportWidth)
	if portrait != nil {
		report.Sections = append(report.Sections,
			viz.Subtle.Render("phase portrait")+"\n"+analysis.PhasePortraitToASCII(portrait, reportWidth-8, 14))
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, viz.RenderReport(report, reportWidth))

	if sweepParam == "" {
		return nil
	}
	points, err := sweep(sim, registry)
	if err != nil {
		return err
	}
	return writeSweep(cmd, points)
}

func buildReport(sim config.Simulation, c dynamo.Circuit, res *dynamo.Result, width int) viz.Report {
	s := res.Series
	values := s.Values

	r := viz.Report{
		Title:    sim.Name,
		Subtitle: describe(c, sim),
		Trace:    s.Float64s(),
	}
	r.Add("samples", fmt.Sprintf("%d", s.Len()))
	if s.Len() > 0 {
		r.Add("final Vc", volts(float64(values[s.Len()-1])))
	}
	lo, hi := analysis.Bounds(values)
	r.Add("range", volts(lo)+" .. "+volts(hi))
	if !analysis.Finite(values) {
		r.Warn("stability", fmt.Sprintf("diverged; dt=%ss is outside the stable range", dynamo.FormatFloat(sim.Dt)))
	}

	switch sim.Kind {
	case config.KindRCCharge:
		r.Add("time constant", fmt.Sprintf("%.4g s", circuits.RCParams{R: sim.R, C: sim.C}.TimeConstant()))
		monotone(&r, values, analysis.Rising)
	case config.KindRCDischarge:
		r.Add("time constant", fmt.Sprintf("%.4g s", circuits.RCParams{R: sim.R, C: sim.C}.TimeConstant()))
		if len(values) > 1 {
			// the first sample still carries the positive initial slope
			monotone(&r, values[1:], analysis.Falling)
		}
	case config.KindLC, config.KindLCR:
		oscillation(&r, sim, s)
	}

	names := make([]string, 0, len(res.Metrics))
	for name := range res.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		v := res.Metrics[name]
		// only the lossless tank is expected to hold its energy
		if name == "energy_drift" && sim.Kind == config.KindLC && v > 0.05 {
			r.Warn(name, fmt.Sprintf("%.4g", v))
			continue
		}
		r.Add(name, fmt.Sprintf("%.4g", v))
	}

	if s.Len() > 1 {
		r.Sections = append(r.Sections, viz.PlotSeries(s, viz.PlotOptions{Width: width - 16, Height: 10}))
	}
	return r
}

func describe(c dynamo.Circuit, sim config.Simulation) string {
	params := experiment.Params(c)
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys)+2)
	for _, k := range keys {
		parts = append(parts, k+"="+dynamo.FormatFloat(float32(params[k])))
	}
	parts = append(parts, "dt="+dynamo.FormatFloat(sim.Dt), "T="+dynamo.FormatFloat(sim.Duration))
	if sim.Scheme != "" {
		parts = append(parts, "scheme="+sim.Scheme)
	}
	return strings.Join(parts, " ")
}

func monotone(r *viz.Report, values []float32, dir analysis.Direction) {
	if analysis.IsMonotonic(values, dir) {
		r.Add("monotone", dir.String())
		return
	}
	r.Warn("monotone", "no")
}

func oscillation(r *viz.Report, sim config.Simulation, s *dynamo.Series) {
	expected := circuits.LCParams{L: sim.L, C: sim.C}.Period()
	r.Add("period (2π√LC)", fmt.Sprintf("%.5g s", expected))

	if period, ok := analysis.Period(s.Times, s.Values); ok {
		r.Add("period (measured)", fmt.Sprintf("%.5g s (%+.2f%%)", period, 100*(period-expected)/expected))
	} else {
		r.Warn("period (measured)", "fewer than two upward zero crossings")
	}
	if f := analysis.DominantFrequency(s.Float64s(), float64(sim.Dt)); f > 0 {
		r.Add("dominant frequency", fmt.Sprintf("%.4g Hz", f))
	}

	peaks := analysis.Peaks(s.Values)
	r.Add("peaks", fmt.Sprintf("%d", len(peaks)))
	if len(peaks) < 2 {
		return
	}
	ratio := analysis.MeanDecayRatio(peaks)
	if sim.Kind == config.KindLCR {
		p := circuits.LCRParams{R: sim.R, L: sim.L, C: sim.C}
		r.Add("damping ratio", fmt.Sprintf("%.4g", p.DampingRatio()))
		if analysis.StrictlyDecreasing(peaks) {
			r.Add("peak decay", fmt.Sprintf("%.4g per peak", ratio))
		} else {
			r.Warn("peak decay", fmt.Sprintf("%.4g per peak, not strictly decreasing", ratio))
		}
		return
	}
	r.Add("peak ratio", fmt.Sprintf("%.4g per peak", ratio))
}

func volts(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Sprint(v)
	}
	return fmt.Sprintf("%.4g V", v)
}

// sweep reruns sim across --from..--to for one component value.
func sweep(sim config.Simulation, registry *experiment.Registry) ([]analysis.SweepPoint, error) {
	set, err := sweepSetter(sweepParam)
	if err != nil {
		return nil, err
	}

	base, err := registry.Build(sim)
	if err != nil {
		return nil, err
	}

	var buildErr error
	build := func(v float64) dynamo.Circuit {
		s := sim
		set(&s, float32(v))
		c, err := registry.Build(s)
		if err != nil {
			buildErr = err
			return base
		}
		return c
	}

	points, err := analysis.Sweep(integrators.NewEuler(), build, sim.RunConfig(), sweepFrom, sweepTo, sweepSteps)
	if err != nil {
		return points, err
	}
	return points, buildErr
}

func sweepSetter(name string) (func(*config.Simulation, float32), error) {
	switch strings.ToLower(name) {
	case "r":
		return func(s *config.Simulation, v float32) { s.R = v }, nil
	case "l":
		return func(s *config.Simulation, v float32) { s.L = v }, nil
	case "c":
		return func(s *config.Simulation, v float32) { s.C = v }, nil
	}
	return nil, fmt.Errorf("%w: cannot sweep %q (use r, l or c)", dynamo.ErrConfig, name)
}

func writeSweep(cmd *cobra.Command, points []analysis.SweepPoint) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tMAX |Vc|\tFINAL\tDECAY\tPERIOD\n", strings.ToUpper(sweepParam))
	for _, p := range points {
		period := "-"
		if p.Period > 0 {
			period = fmt.Sprintf("%.5g", p.Period)
		}
		fmt.Fprintf(w, "%.4g\t%.4g\t%.4g\t%.4g\t%s\n", p.Param, p.MaxAbs, p.Final, p.DecayRatio, period)
	}
	return w.Flush()
}
