// Package viz renders simulation series for the terminal.
//
// Plots are drawn with asciigraph; reports, panels and sparklines are
// styled with lipgloss. Nothing here is interactive: every function takes
// a finished [dynamo.Series] or a report and returns a string.
package viz
