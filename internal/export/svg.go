package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/boxsim/internal/particles"
)

var palette = []string{"#00ffff", "#ff00ff", "#ffd700", "#00ff88", "#ff6b6b", "#0088ff"}

func header(sb *strings.Builder, box particles.Box, scale float64) {
	side := box.SideLength * scale
	fmt.Fprintf(sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<rect x="0" y="0" width="%.1f" height="%.1f" fill="none" stroke="#444466" stroke-width="2"/>
`, side, side, side, side, side, side)
}

// toSVG maps box coordinates to SVG coordinates, y pointing up.
func toSVG(box particles.Box, scale, x, y float64) (float64, float64) {
	return x * scale, (box.SideLength - y) * scale
}

// FrameToSVG draws the box and every particle of f as a disc of the
// particle radius. Scale is SVG units per box unit.
func FrameToSVG(f particles.Frame, box particles.Box, scale float64) string {
	var sb strings.Builder
	header(&sb, box, scale)

	r := box.Radius * scale
	if r < 1 {
		r = 1
	}
	sb.WriteString(`<g fill="#00ff88">` + "\n")
	for i := range f.X {
		cx, cy := toSVG(box, scale, f.X[i], f.Y[i])
		fmt.Fprintf(&sb, `<circle cx="%.1f" cy="%.1f" r="%.1f"/>`+"\n", cx, cy, r)
	}
	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// TrajectoryToSVG draws one path per particle through the recorded frames
// and marks the final positions. It returns "" without frames.
func TrajectoryToSVG(frames []particles.Frame, box particles.Box, scale float64) string {
	if len(frames) == 0 {
		return ""
	}

	var sb strings.Builder
	header(&sb, box, scale)

	n := frames[0].Len()
	for i := 0; i < n; i++ {
		color := palette[i%len(palette)]
		fmt.Fprintf(&sb, `<path fill="none" stroke="%s" stroke-width="1" stroke-opacity="0.7" d="`, color)
		for j, f := range frames {
			if i >= f.Len() {
				break
			}
			x, y := toSVG(box, scale, f.X[i], f.Y[i])
			if j == 0 {
				fmt.Fprintf(&sb, "M%.1f,%.1f", x, y)
			} else {
				fmt.Fprintf(&sb, " L%.1f,%.1f", x, y)
			}
		}
		sb.WriteString(`"/>` + "\n")
	}

	last := frames[len(frames)-1]
	r := box.Radius * scale
	if r < 1 {
		r = 1
	}
	for i := range last.X {
		cx, cy := toSVG(box, scale, last.X[i], last.Y[i])
		fmt.Fprintf(&sb, `<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>`+"\n", cx, cy, r, palette[i%len(palette)])
	}

	sb.WriteString("</svg>")
	return sb.String()
}
