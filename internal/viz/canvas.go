package viz

import (
	"math"
	"strings"

	"github.com/san-kum/predprey/internal/analysis"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		for j := range c.Grid[i] {
			c.Grid[i][j] = 0x2800 // Empty braille char
		}
	}
	return c
}

// SetPixel sets a pixel at (x, y) where x,y are in "sub-pixel" coordinates.
// The canvas size in sub-pixels is (Width*2) x (Height*4).
func (c *Canvas) Set(x, y int) {
	// Early bounds check for negative coordinates
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	subX := x % 2
	subY := y % 4

	c.Grid[row][col] |= rune(pixelMap[subY][subX])
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// PortraitFrame maps phase coordinates onto a canvas.
type PortraitFrame struct {
	canvas             *Canvas
	minX, minY, sx, sy float64
	ok                 bool
}

// PlotPortrait draws the orbit scaled to fill the canvas and returns the
// mapping used, so markers can be placed on top.
func PlotPortrait(c *Canvas, portrait *analysis.PhasePortrait2D) PortraitFrame {
	f := PortraitFrame{canvas: c}
	if c == nil || portrait == nil || len(portrait.Points) == 0 {
		return f
	}

	minX, maxX, minY, maxY := portrait.Bounds()
	if maxX == minX {
		maxX = minX + 1
	}
	if maxY == minY {
		maxY = minY + 1
	}
	f.minX, f.minY = minX, minY
	f.sx = float64(c.Width*2-1) / (maxX - minX)
	f.sy = float64(c.Height*4-1) / (maxY - minY)
	f.ok = true

	px, py := f.project(portrait.Points[0].X, portrait.Points[0].Y)
	for _, p := range portrait.Points[1:] {
		x, y := f.project(p.X, p.Y)
		c.DrawLine(px, py, x, y)
		px, py = x, y
	}
	return f
}

func (f PortraitFrame) project(x, y float64) (int, int) {
	col := int(math.Round((x - f.minX) * f.sx))
	row := f.canvas.Height*4 - 1 - int(math.Round((y-f.minY)*f.sy))
	return col, row
}

// Mark draws a 3x3 block at sample idx of the portrait.
func (f PortraitFrame) Mark(idx int, portrait *analysis.PhasePortrait2D) {
	if !f.ok || portrait == nil || idx < 0 || idx >= len(portrait.Points) {
		return
	}
	px, py := f.project(portrait.Points[idx].X, portrait.Points[idx].Y)
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			f.canvas.Set(px+dx, py+dy)
		}
	}
}
