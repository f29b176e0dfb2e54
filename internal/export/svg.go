package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/predprey/internal/analysis"
	"github.com/san-kum/predprey/internal/viz"
)

const (
	PreyColor     = "#1f3fbf"
	PredatorColor = "#d62728"
)

// margins of one panel, in pixels
const (
	marginLeft   = 64.0
	marginRight  = 16.0
	marginTop    = 12.0
	marginBottom = 28.0
)

// TimeSeriesSVG draws prey (blue, top) and predator (red, bottom) against
// time in two stacked panels sharing the time axis. The y axes are labelled
// "Prey" and "Predator" and the bottom x axis "Time".
func TimeSeriesSVG(times, prey, predator []float64, width, height int) string {
	if len(times) < 2 || len(prey) != len(times) || len(predator) != len(times) || width <= 0 || height <= 0 {
		return ""
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d" font-family="sans-serif" font-size="11">
<rect width="100%%" height="100%%" fill="#ffffff"/>
`, width, height, width, height)

	panelH := float64(height) / 2
	writePanel(&sb, times, prey, 0, float64(width), panelH, "Prey", PreyColor, false)
	writePanel(&sb, times, predator, panelH, float64(width), panelH, "Predator", PredatorColor, true)

	sb.WriteString("</svg>\n")
	return sb.String()
}

func writePanel(sb *strings.Builder, xs, ys []float64, top, width, height float64, label, color string, xLabel bool) {
	minX, maxX := bounds(xs)
	minY, maxY := bounds(ys)
	if maxX == minX {
		maxX = minX + 1
	}
	if maxY == minY {
		maxY = minY + 1
	}

	left := marginLeft
	right := width - marginRight
	y0 := top + marginTop
	y1 := top + height - marginBottom
	plotW := right - left
	plotH := y1 - y0

	fmt.Fprintf(sb, `<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="none" stroke="#333333"/>
`, left, y0, plotW, plotH)

	fmt.Fprintf(sb, `<path fill="none" stroke="%s" stroke-width="1.5" d="`, color)
	pen := "M"
	for i := range xs {
		if math.IsNaN(ys[i]) || math.IsInf(ys[i], 0) {
			pen = "M"
			continue
		}
		px := left + (xs[i]-minX)/(maxX-minX)*plotW
		py := y1 - (ys[i]-minY)/(maxY-minY)*plotH
		fmt.Fprintf(sb, "%s%.1f,%.1f ", pen, px, py)
		pen = "L"
	}
	sb.WriteString("\"/>\n")

	// tick values at the panel corners
	fmt.Fprintf(sb, `<text x="%.1f" y="%.1f" text-anchor="end">%s</text>
<text x="%.1f" y="%.1f" text-anchor="end">%s</text>
`, left-4, y0+8, formatTick(maxY), left-4, y1, formatTick(minY))
	fmt.Fprintf(sb, `<text x="%.1f" y="%.1f" text-anchor="start">%s</text>
<text x="%.1f" y="%.1f" text-anchor="end">%s</text>
`, left, y1+14, formatTick(minX), right, y1+14, formatTick(maxX))

	fmt.Fprintf(sb, `<text x="14" y="%.1f" text-anchor="middle" transform="rotate(-90 14 %.1f)">%s</text>
`, y0+plotH/2, y0+plotH/2, label)

	if xLabel {
		fmt.Fprintf(sb, `<text x="%.1f" y="%.1f" text-anchor="middle">Time</text>
`, left+plotW/2, y1+24)
	}
}

func bounds(vals []float64) (lo, hi float64) {
	first := true
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		if first {
			lo, hi = v, v
			first = false
			continue
		}
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return lo, hi
}

func formatTick(v float64) string {
	return fmt.Sprintf("%.4g", v)
}

// CanvasToSVG converts a Braille canvas to SVG format
func CanvasToSVG(canvas *viz.Canvas, scale float64) string {
	if canvas == nil {
		return ""
	}

	width := float64(canvas.Width) * scale * 2   // 2 sub-pixels per char
	height := float64(canvas.Height) * scale * 4 // 4 sub-pixels per char

	var sb strings.Builder

	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<g fill="#00ff00">
`, width, height, width, height)

	// Braille dot-to-bit mapping
	pixelMap := [4][2]int{
		{0x01, 0x08},
		{0x02, 0x10},
		{0x04, 0x20},
		{0x40, 0x80},
	}

	dotRadius := scale * 0.4

	for row := 0; row < canvas.Height; row++ {
		for col := 0; col < canvas.Width; col++ {
			r := canvas.Grid[row][col]
			if r < 0x2800 {
				continue
			}
			pattern := int(r - 0x2800)

			baseX := float64(col) * scale * 2
			baseY := float64(row) * scale * 4

			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if pattern&pixelMap[dy][dx] != 0 {
						cx := baseX + float64(dx)*scale + scale/2
						cy := baseY + float64(dy)*scale + scale/2
						fmt.Fprintf(&sb, `<circle cx="%.1f" cy="%.1f" r="%.1f"/>
`, cx, cy, dotRadius)
					}
				}
			}
		}
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// PhasePortraitSVG draws the orbit as a single path, prey on the horizontal
// axis.
func PhasePortraitSVG(portrait *analysis.PhasePortrait2D, width, height int, strokeColor string) string {
	if portrait == nil || len(portrait.Points) < 2 {
		return ""
	}

	minX, maxX, minY, maxY := portrait.Bounds()

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX = maxX - minX
	rangeY = maxY - minY

	var sb strings.Builder

	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#ffffff"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, strokeColor)

	for i, p := range portrait.Points {
		x := (p.X - minX) / rangeX * float64(width)
		y := float64(height) - (p.Y-minY)/rangeY*float64(height)

		if i == 0 {
			fmt.Fprintf(&sb, "%.1f,%.1f", x, y)
		} else {
			fmt.Fprintf(&sb, " L%.1f,%.1f", x, y)
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
