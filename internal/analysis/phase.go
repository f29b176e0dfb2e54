package analysis

import (
	"math"
	"strings"

	"github.com/san-kum/predprey/internal/dynamo"
)

// Point is one sample in a two-dimensional projection of the state.
type Point struct{ X, Y float64 }

// PhasePortrait2D holds data for a 2D phase space plot
type PhasePortrait2D struct {
	XIndex, YIndex int
	Points         []Point
}

// NewPhasePortrait projects the sampled trajectory onto components xIdx and
// yIdx. Returns nil if either index is out of range.
func NewPhasePortrait(result *dynamo.Result, xIdx, yIdx int) *PhasePortrait2D {
	if result == nil || len(result.States) == 0 {
		return nil
	}
	dim := len(result.States[0])
	if xIdx >= dim || yIdx >= dim || xIdx < 0 || yIdx < 0 {
		return nil
	}

	portrait := &PhasePortrait2D{
		XIndex: xIdx,
		YIndex: yIdx,
		Points: make([]Point, 0, len(result.States)),
	}
	for _, x := range result.States {
		portrait.Points = append(portrait.Points, Point{X: x[xIdx], Y: x[yIdx]})
	}
	return portrait
}

// PreyPredatorPortrait puts prey on the horizontal and predators on the
// vertical axis.
func PreyPredatorPortrait(result *dynamo.Result) *PhasePortrait2D {
	return NewPhasePortrait(result, 0, 1)
}

// Bounds returns the extent of the portrait.
func (p *PhasePortrait2D) Bounds() (minX, maxX, minY, maxY float64) {
	if p == nil || len(p.Points) == 0 {
		return 0, 0, 0, 0
	}
	minX, maxX = p.Points[0].X, p.Points[0].X
	minY, maxY = p.Points[0].Y, p.Points[0].Y

	for _, pt := range p.Points {
		minX = math.Min(minX, pt.X)
		maxX = math.Max(maxX, pt.X)
		minY = math.Min(minY, pt.Y)
		maxY = math.Max(maxY, pt.Y)
	}
	return minX, maxX, minY, maxY
}

// PhasePortraitToASCII converts phase portrait to ASCII art
func PhasePortraitToASCII(portrait *PhasePortrait2D, width, height int) string {
	if portrait == nil || len(portrait.Points) == 0 || width <= 0 || height <= 0 {
		return ""
	}

	minX, maxX, minY, maxY := portrait.Bounds()

	// Add padding
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

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = make([]rune, width)
		for j := range canvas[i] {
			canvas[i][j] = ' '
		}
	}

	for _, p := range portrait.Points {
		col := int((p.X - minX) / rangeX * float64(width-1))
		row := height - 1 - int((p.Y-minY)/rangeY*float64(height-1))

		if row >= 0 && row < height && col >= 0 && col < width {
			canvas[row][col] = '•'
		}
	}

	// Draw axes if they cross the visible area
	if minX <= 0 && maxX >= 0 {
		col := int((0 - minX) / rangeX * float64(width-1))
		for row := 0; row < height; row++ {
			if col >= 0 && col < width && canvas[row][col] == ' ' {
				canvas[row][col] = '│'
			}
		}
	}
	if minY <= 0 && maxY >= 0 {
		row := height - 1 - int((0-minY)/rangeY*float64(height-1))
		for col := 0; col < width; col++ {
			if row >= 0 && row < height && canvas[row][col] == ' ' {
				canvas[row][col] = '─'
			}
		}
	}

	var sb strings.Builder
	for _, row := range canvas {
		sb.WriteString(string(row))
		sb.WriteRune('\n')
	}
	return sb.String()
}

// Crossing is one upward pass of a component through a threshold.
type Crossing struct {
	T     float64
	Value float64
}

// PoincareSection records, for every upward crossing of component crossIdx
// through threshold, the interpolated time and value of component
// recordIdx. For a closed orbit all values coincide.
func PoincareSection(result *dynamo.Result, crossIdx int, threshold float64, recordIdx int) []Crossing {
	if result == nil || len(result.States) < 2 {
		return nil
	}
	dim := len(result.States[0])
	if crossIdx >= dim || recordIdx >= dim {
		return nil
	}

	section := make([]Crossing, 0)
	for i := 1; i < len(result.States); i++ {
		prev, curr := result.States[i-1], result.States[i]
		if !(prev[crossIdx] < threshold && curr[crossIdx] >= threshold) {
			continue
		}

		frac := (threshold - prev[crossIdx]) / (curr[crossIdx] - prev[crossIdx])
		if math.IsNaN(frac) || math.IsInf(frac, 0) {
			frac = 0.5
		}

		t0, t1 := result.Times[i-1], result.Times[i]
		section = append(section, Crossing{
			T:     t0 + frac*(t1-t0),
			Value: prev[recordIdx] + frac*(curr[recordIdx]-prev[recordIdx]),
		})
	}

	return section
}

// CrossingPeriod is the mean time between successive crossings, or 0 with
// fewer than two.
func CrossingPeriod(section []Crossing) float64 {
	if len(section) < 2 {
		return 0
	}
	return (section[len(section)-1].T - section[0].T) / float64(len(section)-1)
}

// PoincareSectionToASCII plots crossing values against crossing index.
func PoincareSectionToASCII(section []Crossing, width, height int) string {
	if len(section) == 0 {
		return "No crossings detected"
	}

	portrait := &PhasePortrait2D{Points: make([]Point, len(section))}
	for i, c := range section {
		portrait.Points[i] = Point{X: float64(i), Y: c.Value}
	}
	return PhasePortraitToASCII(portrait, width, height)
}
