package viz

import (
	"fmt"
	"math"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/circsim/internal/dynamo"
)

// PlotOptions controls the size of a terminal plot.
type PlotOptions struct {
	Width   int
	Height  int
	Caption string
}

// DefaultPlotOptions fits an 80 column terminal.
func DefaultPlotOptions() PlotOptions {
	return PlotOptions{Width: 70, Height: 15}
}

// PlotSeries draws the voltage trajectory of s. Infinite samples become
// gaps; a series with no finite sample yields a one-line notice instead of
// a chart.
func PlotSeries(s *dynamo.Series, opts PlotOptions) string {
	if s == nil || s.Len() == 0 {
		return Subtle.Render("(empty series)")
	}
	values := plottable(s.Float64s())
	if values == nil {
		return Warning.Render(fmt.Sprintf("(no finite samples in %d records)", s.Len()))
	}

	caption := opts.Caption
	if caption == "" {
		caption = fmt.Sprintf("Vc over t = %s..%s s",
			dynamo.FormatFloat(s.Times[0]), dynamo.FormatFloat(s.Times[s.Len()-1]))
	}

	options := []asciigraph.Option{asciigraph.Caption(caption)}
	if opts.Height > 0 {
		options = append(options, asciigraph.Height(opts.Height))
	}
	if opts.Width > 0 {
		options = append(options, asciigraph.Width(opts.Width))
	}
	return asciigraph.Plot(values, options...)
}

// plottable maps ±Inf to NaN, which asciigraph leaves blank. It returns nil
// when nothing finite remains.
func plottable(values []float64) []float64 {
	out := make([]float64, len(values))
	finite := 0
	for i, v := range values {
		if math.IsInf(v, 0) || math.IsNaN(v) {
			out[i] = math.NaN()
			continue
		}
		out[i] = v
		finite++
	}
	if finite == 0 {
		return nil
	}
	return out
}
