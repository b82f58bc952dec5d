package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/circsim/internal/dynamo"
)

// SeriesToSVG draws s as a single polyline on a dark background, with no
// axes or labels. Non-finite samples break the path.
func SeriesToSVG(s *dynamo.Series, width, height int, strokeColor string) string {
	if s == nil || s.Len() < 2 || width <= 0 || height <= 0 {
		return ""
	}

	first := true
	var minX, maxX, minY, maxY float64
	for i := 0; i < s.Len(); i++ {
		p := s.At(i)
		x, y := float64(p.T), float64(p.V)
		if !finite(x) || !finite(y) {
			continue
		}
		if first {
			minX, maxX, minY, maxY = x, x, y, y
			first = false
			continue
		}
		minX, maxX = min(minX, x), max(maxX, x)
		minY, maxY = min(minY, y), max(maxY, y)
	}
	if first {
		return ""
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	// 5% headroom above and below the trace
	minY -= rangeY * 0.05
	rangeY *= 1.1

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="`,
		width, height, width, height, strokeColor)

	move, started := true, false
	for i := 0; i < s.Len(); i++ {
		p := s.At(i)
		x, y := float64(p.T), float64(p.V)
		if !finite(x) || !finite(y) {
			move = true
			continue
		}
		px := (x - minX) / rangeX * float64(width)
		py := float64(height) - (y-minY)/rangeY*float64(height)
		if move {
			if started {
				sb.WriteByte(' ')
			}
			fmt.Fprintf(&sb, "M%.1f,%.1f", px, py)
			move, started = false, true
		} else {
			fmt.Fprintf(&sb, " L%.1f,%.1f", px, py)
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
