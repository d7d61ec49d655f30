package tui

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"time"

	"github.com/san-kum/boxsim/internal/particles"
)

const (
	width       = 60
	height      = 24
	clearScreen = "\033[2J\033[H"
	hideCursor  = "\033[?25l"
	showCursor  = "\033[?25h"
)

// LiveRenderer redraws the box on a terminal at most frameRate times per
// second. It implements sim.Observer.
type LiveRenderer struct {
	box       particles.Box
	frameRate int
	out       io.Writer
	now       func() time.Time
	lastFrame time.Time
	canvas    [][]rune
	drawn     int
}

func NewLiveRenderer(box particles.Box, frameRate int) *LiveRenderer {
	return NewLiveRendererTo(os.Stdout, box, frameRate)
}

func NewLiveRendererTo(out io.Writer, box particles.Box, frameRate int) *LiveRenderer {
	if frameRate <= 0 {
		frameRate = 30
	}
	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = make([]rune, width)
	}
	return &LiveRenderer{
		box:       box,
		frameRate: frameRate,
		out:       out,
		now:       time.Now,
		canvas:    canvas,
	}
}

// Frames returns how many frames have been drawn.
func (r *LiveRenderer) Frames() int { return r.drawn }

func (r *LiveRenderer) OnStep(f particles.Frame) {
	now := r.now()
	if r.drawn > 0 && now.Sub(r.lastFrame) < time.Second/time.Duration(r.frameRate) {
		return
	}
	r.lastFrame = now
	r.drawn++

	r.clear()
	r.drawBorder()
	for i := range f.X {
		r.set(r.cell(f.X[i], f.Y[i]))
	}
	r.render(f)
}

func (r *LiveRenderer) clear() {
	for y := range r.canvas {
		for x := range r.canvas[y] {
			r.canvas[y][x] = ' '
		}
	}
}

func (r *LiveRenderer) drawBorder() {
	for x := 0; x < width; x++ {
		r.canvas[0][x] = '-'
		r.canvas[height-1][x] = '-'
	}
	for y := 0; y < height; y++ {
		r.canvas[y][0] = '|'
		r.canvas[y][width-1] = '|'
	}
	r.canvas[0][0], r.canvas[0][width-1] = '+', '+'
	r.canvas[height-1][0], r.canvas[height-1][width-1] = '+', '+'
}

// cell maps box coordinates to the canvas interior, y pointing up.
func (r *LiveRenderer) cell(px, py float64) (int, int) {
	l := r.box.SideLength
	cx := 1 + int(math.Floor(px/l*float64(width-2)))
	cy := height - 2 - int(math.Floor(py/l*float64(height-2)))
	return cx, cy
}

func (r *LiveRenderer) set(x, y int) {
	if x < 1 || x >= width-1 || y < 1 || y >= height-1 {
		return
	}
	if r.canvas[y][x] == 'o' {
		r.canvas[y][x] = 'O'
		return
	}
	if r.canvas[y][x] != 'O' {
		r.canvas[y][x] = 'o'
	}
}

func (r *LiveRenderer) render(f particles.Frame) {
	var b strings.Builder
	b.WriteString(clearScreen)
	fmt.Fprintf(&b, "  boxsim  n=%d  step=%d  t=%.3f  dt=%.4f\n", f.Len(), f.Step, f.Time, f.Timestep)

	for _, row := range r.canvas {
		b.WriteString("  ")
		b.WriteString(string(row))
		b.WriteString("\n")
	}

	maxSpeed := 0.0
	for i := range f.VX {
		maxSpeed = math.Max(maxSpeed, math.Hypot(f.VX[i], f.VY[i]))
	}
	fmt.Fprintf(&b, "  L=%.1f  r=%.2f  max|v|=%.2f\n", r.box.SideLength, r.box.Radius, maxSpeed)

	fmt.Fprint(r.out, b.String())
}

func (r *LiveRenderer) Start() { fmt.Fprint(r.out, hideCursor) }
func (r *LiveRenderer) Stop()  { fmt.Fprint(r.out, showCursor) }
