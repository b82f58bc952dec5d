package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Row is one labelled line of a report.
type Row struct {
	Label string
	Value string
	Warn  bool
}

// Report is a titled block of metrics with an optional sparkline and
// free-form sections (plots, phase portraits) appended below.
type Report struct {
	Title    string
	Subtitle string
	Rows     []Row
	Trace    []float64
	Sections []string
}

// Add appends a row and returns the report for chaining.
func (r *Report) Add(label, value string) *Report {
	r.Rows = append(r.Rows, Row{Label: label, Value: value})
	return r
}

// Warn appends a row rendered in the warning style.
func (r *Report) Warn(label, value string) *Report {
	r.Rows = append(r.Rows, Row{Label: label, Value: value, Warn: true})
	return r
}

// RenderReport lays the report out inside a rounded panel of the given
// width.
func RenderReport(r Report, width int) string {
	if width < 20 {
		width = 20
	}

	labelWidth := 0
	for _, row := range r.Rows {
		labelWidth = max(labelWidth, lipgloss.Width(row.Label))
	}

	var lines []string
	lines = append(lines, HeaderStyle.Render(Title.Render(r.Title)))
	if r.Subtitle != "" {
		lines = append(lines, Subtle.Render(r.Subtitle))
	}
	lines = append(lines, "")

	for _, row := range r.Rows {
		label := MetricLabel.Render(row.Label + strings.Repeat(" ", labelWidth-lipgloss.Width(row.Label)))
		value := MetricValue.Render(row.Value)
		if row.Warn {
			value = Warning.Render(row.Value)
		}
		lines = append(lines, label+"  "+value)
	}

	if len(r.Trace) > 0 {
		lines = append(lines, "", Sparkline(r.Trace, width-6))
	}
	for _, s := range r.Sections {
		lines = append(lines, "", Separator(width-6), s)
	}

	return GlassPanel.Width(width).Render(strings.Join(lines, "\n"))
}
