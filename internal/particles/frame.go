package particles

// Frame is a read-only copy of a set taken between steps.
type Frame struct {
	Step     int
	Time     float64
	Timestep float64
	X, Y     []float64
	VX, VY   []float64
}

// Snapshot copies the current positions and velocities.
func (s *Set) Snapshot(step int, t, dt float64) Frame {
	return Frame{
		Step:     step,
		Time:     t,
		Timestep: dt,
		X:        cloneSlice(s.PosX),
		Y:        cloneSlice(s.PosY),
		VX:       cloneSlice(s.VelX),
		VY:       cloneSlice(s.VelY),
	}
}

func (f Frame) Len() int { return len(f.X) }
