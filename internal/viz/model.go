package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/boxsim/internal/geometry"
	"github.com/san-kum/boxsim/internal/metrics"
	"github.com/san-kum/boxsim/internal/particles"
	"github.com/san-kum/boxsim/internal/sim"
)

const (
	canvasWidth     = 40
	canvasHeight    = 20
	historyCapacity = 300
	maxStepsPerTick = 64
	tickRate        = time.Second / 30
)

type TickMsg time.Time

// Model steps a particle set and renders it. Stepping stops for good once
// the set is at rest or, when duration is positive, once the elapsed time
// passes it.
type Model struct {
	box      particles.Box
	initial  *particles.Set
	set      *particles.Set
	duration float64

	t           float64
	steps       int
	reflections int
	perTick     int
	running     bool
	reason      sim.Reason

	canvas     *Canvas
	energy     []float64
	separation []float64
	theme      int
	showHelp   bool
}

// NewModel validates the set against the box and keeps a copy of it for
// reset. A zero duration never expires, unlike sim.Run where it allows a
// single step; the model then runs until the set is at rest or the user
// quits.
func NewModel(box particles.Box, set *particles.Set, duration float64) (Model, error) {
	if err := sim.CheckStepping(set, box); err != nil {
		return Model{}, err
	}
	if math.IsNaN(duration) || duration < 0 {
		return Model{}, fmt.Errorf("duration must be non-negative, got %f", duration)
	}

	m := Model{
		box:      box,
		initial:  set.Clone(),
		set:      set.Clone(),
		duration: duration,
		perTick:  1,
		running:  true,
		canvas:   NewCanvas(canvasWidth, canvasHeight),
	}
	m.sample()
	return m, nil
}

func (m *Model) SetTheme(name string) { m.theme = ThemeIndex(name) }

func (m Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickRate, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.reset()
		case "+", "=":
			if m.perTick < maxStepsPerTick {
				m.perTick *= 2
			}
		case "-", "_":
			if m.perTick > 1 {
				m.perTick /= 2
			}
		case "t":
			m.theme = (m.theme + 1) % len(Themes)
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.running {
			for i := 0; i < m.perTick && m.reason == ""; i++ {
				m.step()
			}
		}
		return m, tick()
	}
	return m, nil
}

// step takes one adaptive step unless the run is over.
func (m *Model) step() {
	if m.duration > 0 && m.t > m.duration {
		m.reason = sim.ReasonExpired
		return
	}

	info, err := sim.Step(m.set, m.box)
	if err != nil {
		// The set was validated in NewModel and stepping keeps its shape.
		m.reason = sim.ReasonCanceled
		return
	}
	if !info.Moving {
		m.reason = sim.ReasonStationary
		return
	}

	m.t += info.Timestep
	m.steps++
	m.reflections += info.Reflections
	m.sample()
}

func (m *Model) sample() {
	f := m.set.Snapshot(m.steps, m.t, 0)
	m.energy = appendCapped(m.energy, metrics.Kinetic(f))
	if sep := geometry.MinSeparation(f.X, f.Y); !math.IsInf(sep, 1) {
		m.separation = appendCapped(m.separation, sep)
	}
}

func appendCapped(h []float64, v float64) []float64 {
	h = append(h, v)
	if len(h) > historyCapacity {
		h = h[1:]
	}
	return h
}

func (m *Model) reset() {
	m.set = m.initial.Clone()
	m.t = 0
	m.steps = 0
	m.reflections = 0
	m.reason = ""
	m.energy = m.energy[:0]
	m.separation = m.separation[:0]
	m.sample()
}

// project maps box coordinates to canvas dots, y pointing up.
func (m *Model) project(x, y float64) (int, int) {
	w, h := m.canvas.DotsWide()-1, m.canvas.DotsHigh()-1
	l := m.box.SideLength
	return int(math.Round(x / l * float64(w))), int(math.Round(float64(h) - y/l*float64(h)))
}

func (m *Model) draw() {
	m.canvas.Clear()
	m.canvas.Rect(0, 0, m.canvas.DotsWide()-1, m.canvas.DotsHigh()-1)

	r := int(math.Round(m.box.Radius / m.box.SideLength * float64(m.canvas.DotsWide()-1)))
	for i := range m.set.PosX {
		cx, cy := m.project(m.set.PosX[i], m.set.PosY[i])
		m.canvas.Disc(cx, cy, r)
	}
}

func (m Model) View() string {
	st := newStyles(Themes[m.theme])
	m.draw()

	var s strings.Builder
	s.WriteString(st.title.Render("BOX  "+Themes[m.theme].Name) + "\n")

	switch {
	case m.reason != "":
		s.WriteString(st.stopped.Render("STOPPED: "+string(m.reason)) + "\n\n")
	case !m.running:
		s.WriteString(st.stopped.Render("PAUSED") + "\n\n")
	default:
		s.WriteString(st.running.Render("RUNNING") + "\n\n")
	}

	row := func(label, value string) {
		s.WriteString(st.label.Render(label) + st.value.Render(value) + "\n")
	}
	row("Time", fmt.Sprintf("%.3f", m.t))
	row("Steps", fmt.Sprintf("%d", m.steps))
	row("Particles", fmt.Sprintf("%d", m.set.Len()))
	row("Reflections", fmt.Sprintf("%d", m.reflections))
	row("Steps/tick", fmt.Sprintf("%d", m.perTick))
	if len(m.energy) > 0 {
		row("Kinetic", fmt.Sprintf("%.3f", m.energy[len(m.energy)-1]))
	}
	if len(m.separation) > 0 {
		row("Min sep", fmt.Sprintf("%.3f", m.separation[len(m.separation)-1]))
	}
	if m.duration > 0 {
		s.WriteString("\n" + st.progress.Render(ProgressBar(math.Min(m.t/m.duration, 1), 30)) + "\n")
	}

	if len(m.energy) > 1 {
		chart := asciigraph.Plot(m.energy, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Kinetic energy"))
		s.WriteString(st.chart.Render(chart) + "\n")
	}
	if len(m.separation) > 1 {
		chart := asciigraph.Plot(m.separation, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Min separation"))
		s.WriteString(st.chart.Render(chart) + "\n")
	}

	help := "space pause  r reset  +/- speed  ? help  q quit"
	if m.showHelp {
		help = "space  pause or resume\n" +
			"r      restore the initial particles\n" +
			"+ -    double or halve steps per tick\n" +
			"t      next colour theme\n" +
			"q      quit"
	}
	s.WriteString(st.help.Render(help))

	return lipgloss.JoinHorizontal(lipgloss.Top, st.box.Render(m.canvas.String()), st.stats.Render(s.String()))
}

// Elapsed returns the simulated time so far.
func (m Model) Elapsed() float64 { return m.t }

// Steps returns the number of steps taken since the last reset.
func (m Model) Steps() int { return m.steps }

// Reason is empty while the run can still advance.
func (m Model) Reason() sim.Reason { return m.reason }
