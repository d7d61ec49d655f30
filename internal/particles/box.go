package particles

import "math"

// Box is the square confinement region. Particles of radius Radius move in
// the usable range [InnerEdge, OuterEdge] along each axis.
type Box struct {
	SideLength float64 `json:"side_length"`
	Radius     float64 `json:"radius"`
}

// NewBoxRelative returns a box whose particle radius is a fraction of the
// side length.
func NewBoxRelative(sideLength, relativeRadius float64) Box {
	return Box{SideLength: sideLength, Radius: relativeRadius * sideLength}
}

func (b Box) InnerEdge() float64 { return b.Radius }
func (b Box) OuterEdge() float64 { return b.SideLength - b.Radius }

// Inside reports whether v lies strictly between the edges.
func (b Box) Inside(v float64) bool {
	return b.InnerEdge() < v && v < b.OuterEdge()
}

func (b Box) Validate() error {
	if !(b.SideLength > 0) || math.IsInf(b.SideLength, 0) {
		return preconditionf("side length must be positive and finite, got %v", b.SideLength)
	}
	if !(b.Radius >= 0) {
		return preconditionf("radius must be non-negative, got %v", b.Radius)
	}
	if b.InnerEdge() >= b.OuterEdge() {
		return preconditionf("side length %v must exceed twice the radius %v", b.SideLength, b.Radius)
	}
	return nil
}
