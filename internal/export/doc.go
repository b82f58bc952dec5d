// Package export writes simulation series as image files.
//
// Charts with axes, grid and legend go through gonum.org/v1/plot, which
// picks the encoder (png, svg, pdf, ...) from the file extension. [SeriesToSVG]
// writes a bare trace without axes for embedding in other documents.
package export
