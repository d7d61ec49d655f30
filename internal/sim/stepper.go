package sim

import (
	"github.com/san-kum/boxsim/internal/geometry"
	"github.com/san-kum/boxsim/internal/particles"
	"gonum.org/v1/gonum/floats"
)

// StepFraction is the share of a particle radius the fastest particle
// travels in one adaptive step.
const StepFraction = 0.2

// Reflect negates VelX[i] when PosX[i] is not strictly inside the box's
// usable range, and likewise for y. Positions are not clamped. It returns
// the number of velocity components flipped.
func Reflect(set *particles.Set, box particles.Box) (int, error) {
	if err := box.Validate(); err != nil {
		return 0, err
	}
	if err := set.Validate(); err != nil {
		return 0, err
	}
	return reflect(set, box), nil
}

// Advance moves every particle by its velocity times dt.
func Advance(set *particles.Set, dt float64) error {
	if err := set.Validate(); err != nil {
		return err
	}
	advance(set, dt)
	return nil
}

// Timestep returns the step that moves the fastest particle StepFraction of
// a radius. moving is false when every speed is exactly zero or the set is
// empty.
func Timestep(set *particles.Set, box particles.Box) (dt float64, moving bool, err error) {
	if err := CheckStepping(set, box); err != nil {
		return 0, false, err
	}
	dt, moving = timestep(set, box)
	return dt, moving, nil
}

func timestep(set *particles.Set, box particles.Box) (dt float64, moving bool) {
	if set.Len() == 0 {
		return 0, false
	}
	maxSpeed := floats.Max(geometry.Magnitude(set.VelX, set.VelY))
	if maxSpeed == 0 {
		return 0, false
	}
	return StepFraction * box.Radius / maxSpeed, true
}

// Step performs one adaptive step: choose the timestep, reflect, advance.
func Step(set *particles.Set, box particles.Box) (StepInfo, error) {
	if err := CheckStepping(set, box); err != nil {
		return StepInfo{}, err
	}
	return step(set, box), nil
}

func step(set *particles.Set, box particles.Box) StepInfo {
	dt, moving := timestep(set, box)
	if !moving {
		return StepInfo{}
	}
	n := reflect(set, box)
	advance(set, dt)
	return StepInfo{Timestep: dt, Reflections: n, Moving: true}
}

// CheckStepping reports whether set and box can be stepped adaptively.
func CheckStepping(set *particles.Set, box particles.Box) error {
	if err := box.Validate(); err != nil {
		return err
	}
	if box.Radius == 0 {
		return &particles.PreconditionError{Reason: "adaptive stepping needs a positive particle radius"}
	}
	return set.Validate()
}

func reflect(set *particles.Set, box particles.Box) int {
	flipped := 0
	for i := range set.PosX {
		if !box.Inside(set.PosX[i]) {
			set.VelX[i] = -set.VelX[i]
			flipped++
		}
		if !box.Inside(set.PosY[i]) {
			set.VelY[i] = -set.VelY[i]
			flipped++
		}
	}
	return flipped
}

func advance(set *particles.Set, dt float64) {
	floats.AddScaled(set.PosX, dt, set.VelX)
	floats.AddScaled(set.PosY, dt, set.VelY)
}
