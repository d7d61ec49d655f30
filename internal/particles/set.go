package particles

import (
	"math"
	"math/rand"

	"github.com/san-kum/boxsim/internal/geometry"
)

// Set stores particle i at index i of all four sequences. VelX and VelY are
// nil until velocities are assigned.
type Set struct {
	PosX, PosY []float64
	VelX, VelY []float64
}

// FromArray decomposes a (4, N) block with rows pos_x, pos_y, vel_x, vel_y.
func FromArray(a geometry.Array) (*Set, error) {
	shape := a.Shape()
	if len(shape) != 2 || shape[0] != 4 {
		return nil, &ShapeError{Shape: shape}
	}
	return &Set{
		PosX: a.Row(0),
		PosY: a.Row(1),
		VelX: a.Row(2),
		VelY: a.Row(3),
	}, nil
}

// Stack builds the (4, N) construction block from its four rows.
func Stack(posX, posY, velX, velY []float64) (geometry.Array, error) {
	return geometry.Matrix([][]float64{posX, posY, velX, velY})
}

// Random draws n positions uniformly on [InnerEdge, OuterEdge] for each
// axis. The returned set has no velocities.
func Random(box Box, n int, rng *rand.Rand) (*Set, error) {
	if err := box.Validate(); err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, preconditionf("particle count must be non-negative, got %d", n)
	}
	lo, span := box.InnerEdge(), box.OuterEdge()-box.InnerEdge()
	s := &Set{
		PosX: make([]float64, n),
		PosY: make([]float64, n),
	}
	for i := 0; i < n; i++ {
		s.PosX[i] = lo + span*rng.Float64()
	}
	for i := 0; i < n; i++ {
		s.PosY[i] = lo + span*rng.Float64()
	}
	return s, nil
}

// RandomVelocities draws n velocity pairs with each component uniform on
// [-maxSpeed, maxSpeed].
func RandomVelocities(n int, maxSpeed float64, rng *rand.Rand) (vx, vy []float64) {
	vx = make([]float64, n)
	vy = make([]float64, n)
	for i := 0; i < n; i++ {
		vx[i] = maxSpeed * (2*rng.Float64() - 1)
		vy[i] = maxSpeed * (2*rng.Float64() - 1)
	}
	return vx, vy
}

// AssignVelocities completes a position-only set. The slices are copied.
func (s *Set) AssignVelocities(vx, vy []float64) error {
	n := len(s.PosX)
	if len(s.PosY) != n {
		return preconditionf("position lengths differ: x=%d y=%d", len(s.PosX), len(s.PosY))
	}
	if len(vx) != n || len(vy) != n {
		return preconditionf("velocity lengths (%d, %d) do not match %d particles", len(vx), len(vy), n)
	}
	s.VelX = append(make([]float64, 0, n), vx...)
	s.VelY = append(make([]float64, 0, n), vy...)
	return nil
}

// HasVelocities reports whether velocities have been assigned.
func (s *Set) HasVelocities() bool {
	return s.VelX != nil && s.VelY != nil
}

func (s *Set) Len() int { return len(s.PosX) }

// Validate reports whether the set is fully specified and consistent, with
// every position and velocity finite.
func (s *Set) Validate() error {
	if s == nil {
		return preconditionf("particle set is nil")
	}
	if !s.HasVelocities() {
		return preconditionf("velocities are unset; assign them before stepping")
	}
	n := len(s.PosX)
	if len(s.PosY) != n || len(s.VelX) != n || len(s.VelY) != n {
		return preconditionf("sequence lengths differ: pos_x=%d pos_y=%d vel_x=%d vel_y=%d",
			len(s.PosX), len(s.PosY), len(s.VelX), len(s.VelY))
	}
	for _, seq := range []struct {
		name string
		v    []float64
	}{{"pos_x", s.PosX}, {"pos_y", s.PosY}, {"vel_x", s.VelX}, {"vel_y", s.VelY}} {
		for i, v := range seq.v {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return preconditionf("%s[%d] is not finite: %v", seq.name, i, v)
			}
		}
	}
	return nil
}

// Clone returns a deep copy. Unset velocities stay unset.
func (s *Set) Clone() *Set {
	return &Set{
		PosX: cloneSlice(s.PosX),
		PosY: cloneSlice(s.PosY),
		VelX: cloneSlice(s.VelX),
		VelY: cloneSlice(s.VelY),
	}
}

func cloneSlice(v []float64) []float64 {
	if v == nil {
		return nil
	}
	c := make([]float64, len(v))
	copy(c, v)
	return c
}
