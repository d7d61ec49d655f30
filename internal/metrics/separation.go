package metrics

import (
	"math"

	"github.com/san-kum/boxsim/internal/geometry"
	"github.com/san-kum/boxsim/internal/particles"
	"gonum.org/v1/gonum/stat"
)

// MinSeparation records the closest centre-to-centre approach of any two
// particles across a run. It only characterises the run; particles pass
// through each other.
type MinSeparation struct {
	min float64
}

func NewMinSeparation() *MinSeparation {
	return &MinSeparation{min: math.Inf(1)}
}

func (m *MinSeparation) Name() string { return "min_separation" }

func (m *MinSeparation) Observe(f particles.Frame) {
	m.min = math.Min(m.min, geometry.MinSeparation(f.X, f.Y))
}

// Value is +Inf until two particles have been observed.
func (m *MinSeparation) Value() float64 { return m.min }

func (m *MinSeparation) Reset() { m.min = math.Inf(1) }

// MeanSpeed is the average particle speed over all observed frames.
type MeanSpeed struct {
	sum     float64
	samples int
}

func NewMeanSpeed() *MeanSpeed { return &MeanSpeed{} }

func (m *MeanSpeed) Name() string { return "mean_speed" }

func (m *MeanSpeed) Observe(f particles.Frame) {
	if f.Len() == 0 {
		return
	}
	m.sum += stat.Mean(geometry.Magnitude(f.VX, f.VY), nil)
	m.samples++
}

func (m *MeanSpeed) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.sum / float64(m.samples)
}

func (m *MeanSpeed) Reset() {
	m.sum = 0
	m.samples = 0
}
