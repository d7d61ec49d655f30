package viz

import (
	"strings"
)

// Braille cells hold 2x4 dots:
// 1 4
// 2 5
// 3 6
// 7 8
var dotBits = [4][2]rune{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const blank = 0x2800

// Canvas is a Braille dot grid. Dot coordinates run from (0, 0) at the top
// left to (2*Width-1, 4*Height-1).
type Canvas struct {
	Width, Height int
	cells         [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{Width: w, Height: h, cells: make([][]rune, h)}
	for i := range c.cells {
		c.cells[i] = make([]rune, w)
	}
	c.Clear()
	return c
}

func (c *Canvas) DotsWide() int { return 2 * c.Width }
func (c *Canvas) DotsHigh() int { return 4 * c.Height }

// Set turns on one dot; out-of-range dots are ignored.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 || x >= c.DotsWide() || y >= c.DotsHigh() {
		return
	}
	c.cells[y/4][x/2] |= dotBits[y%4][x%2]
}

// IsSet reports whether a dot is on.
func (c *Canvas) IsSet(x, y int) bool {
	if x < 0 || y < 0 || x >= c.DotsWide() || y >= c.DotsHigh() {
		return false
	}
	return c.cells[y/4][x/2]&dotBits[y%4][x%2] != 0
}

func (c *Canvas) Clear() {
	for i := range c.cells {
		for j := range c.cells[i] {
			c.cells[i][j] = blank
		}
	}
}

// Line draws with Bresenham's algorithm.
func (c *Canvas) Line(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx, sy := -1, -1
	if x0 < x1 {
		sx = 1
	}
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
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

// Rect outlines the rectangle with corners (x0, y0) and (x1, y1).
func (c *Canvas) Rect(x0, y0, x1, y1 int) {
	c.Line(x0, y0, x1, y0)
	c.Line(x1, y0, x1, y1)
	c.Line(x1, y1, x0, y1)
	c.Line(x0, y1, x0, y0)
}

// Disc fills the dots within r of (cx, cy). The centre is always set.
func (c *Canvas) Disc(cx, cy, r int) {
	c.Set(cx, cy)
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if dx*dx+dy*dy <= r*r {
				c.Set(cx+dx, cy+dy)
			}
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.cells {
		b.WriteString(string(row))
		b.WriteByte('\n')
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
