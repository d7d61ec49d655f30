package metrics

import (
	"math"

	"github.com/san-kum/boxsim/internal/particles"
)

// KineticEnergy averages the total kinetic energy of unit-mass particles
// over all observed frames.
type KineticEnergy struct {
	name        string
	samples     int
	totalEnergy float64
}

func NewKineticEnergy() *KineticEnergy {
	return &KineticEnergy{name: "kinetic_energy"}
}

func (e *KineticEnergy) Name() string { return e.name }

func (e *KineticEnergy) Observe(f particles.Frame) {
	e.totalEnergy += Kinetic(f)
	e.samples++
}

func (e *KineticEnergy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.totalEnergy / float64(e.samples)
}

func (e *KineticEnergy) Reset() {
	e.totalEnergy = 0
	e.samples = 0
}

// Kinetic returns sum(0.5 * |v|^2) for a frame.
func Kinetic(f particles.Frame) float64 {
	ke := 0.0
	for i := range f.VX {
		ke += 0.5 * (f.VX[i]*f.VX[i] + f.VY[i]*f.VY[i])
	}
	return ke
}

// EnergyDrift tracks the largest relative change in kinetic energy against
// the first frame. Wall reflection conserves energy, so anything above
// rounding error means the state was corrupted.
type EnergyDrift struct {
	name          string
	initialEnergy float64
	maxDrift      float64
	samples       int
}

func NewEnergyDrift() *EnergyDrift {
	return &EnergyDrift{name: "energy_drift"}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Observe(f particles.Frame) {
	energy := Kinetic(f)
	if e.samples == 0 {
		e.initialEnergy = energy
	}
	e.samples++

	if e.initialEnergy != 0 {
		drift := math.Abs(energy-e.initialEnergy) / math.Abs(e.initialEnergy)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 { return e.maxDrift }

func (e *EnergyDrift) Reset() {
	e.initialEnergy = 0
	e.maxDrift = 0
	e.samples = 0
}
