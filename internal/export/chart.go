package export

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/san-kum/circsim/internal/analysis"
	"github.com/san-kum/circsim/internal/dynamo"
)

// Trace is one named curve on a chart.
type Trace struct {
	Name   string
	Series *dynamo.Series
}

// ChartOptions sizes and labels a chart.
type ChartOptions struct {
	Title  string
	XLabel string
	YLabel string
	Width  vg.Length
	Height vg.Length
}

func DefaultChartOptions() ChartOptions {
	return ChartOptions{
		XLabel: "t (s)",
		YLabel: "Vc (V)",
		Width:  8 * vg.Inch,
		Height: 4 * vg.Inch,
	}
}

// Formats lists the encoders WriteChart accepts.
var Formats = []string{"png", "svg", "pdf", "jpg", "tiff", "eps"}

// SeriesChart builds a time chart with one line per trace. Non-finite
// samples split a trace into separate segments drawn in the same color.
func SeriesChart(traces []Trace, opts ChartOptions) (*plot.Plot, error) {
	p := newPlot(opts)
	for i, tr := range traces {
		if tr.Series == nil {
			continue
		}
		segs := segments(tr.Series.Len(), func(j int) (float64, float64) {
			s := tr.Series.At(j)
			return float64(s.T), float64(s.V)
		})
		if err := addSegments(p, tr.Name, i, segs); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// PhaseChart plots a recorded phase portrait as a single trajectory.
func PhaseChart(portrait *analysis.PhasePortrait2D, opts ChartOptions) (*plot.Plot, error) {
	p := newPlot(opts)
	if portrait == nil {
		return p, nil
	}
	segs := segments(len(portrait.Points), func(j int) (float64, float64) {
		pt := portrait.Points[j]
		return pt.X, pt.Y
	})
	if err := addSegments(p, "", 0, segs); err != nil {
		return nil, err
	}
	return p, nil
}

// WriteChart encodes p in the given format.
func WriteChart(w io.Writer, p *plot.Plot, format string, opts ChartOptions) error {
	width, height := opts.Width, opts.Height
	if width <= 0 {
		width = 8 * vg.Inch
	}
	if height <= 0 {
		height = width / 2
	}
	wt, err := p.WriterTo(width, height, strings.ToLower(format))
	if err != nil {
		return fmt.Errorf("%w: chart format %q: %w", dynamo.ErrOutput, format, err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return dynamo.OutputError(err)
	}
	return nil
}

// SaveChart writes p to path, choosing the encoder from its extension.
func SaveChart(path string, p *plot.Plot, opts ChartOptions) error {
	format := strings.TrimPrefix(filepath.Ext(path), ".")
	if format == "" {
		return fmt.Errorf("%w: %s has no image extension", dynamo.ErrOutput, path)
	}
	f, err := os.Create(path)
	if err != nil {
		return dynamo.OutputError(err)
	}
	if err := WriteChart(f, p, format, opts); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return dynamo.OutputError(err)
	}
	return nil
}

func newPlot(opts ChartOptions) *plot.Plot {
	p := plot.New()
	p.Title.Text = opts.Title
	p.X.Label.Text = opts.XLabel
	p.Y.Label.Text = opts.YLabel
	p.Add(plotter.NewGrid())
	return p
}

func addSegments(p *plot.Plot, name string, color int, segs []plotter.XYs) error {
	for k, xys := range segs {
		line, err := plotter.NewLine(xys)
		if err != nil {
			return fmt.Errorf("export: %s: %w", name, err)
		}
		line.LineStyle.Color = plotutil.Color(color)
		line.LineStyle.Width = vg.Points(1)
		p.Add(line)
		if k == 0 && name != "" {
			p.Legend.Add(name, line)
		}
	}
	return nil
}

// segments splits n points into runs of finite values.
func segments(n int, at func(int) (float64, float64)) []plotter.XYs {
	var (
		out []plotter.XYs
		cur plotter.XYs
	)
	for j := 0; j < n; j++ {
		x, y := at(j)
		if !finite(x) || !finite(y) {
			if len(cur) > 0 {
				out = append(out, cur)
				cur = nil
			}
			continue
		}
		cur = append(cur, plotter.XY{X: x, Y: y})
	}
	if len(cur) > 0 {
		out = append(out, cur)
	}
	return out
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
