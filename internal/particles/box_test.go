package particles

import (
	"errors"
	"math"
	"testing"
)

func TestBoxEdges(t *testing.T) {
	b := Box{SideLength: 10, Radius: 0.5}
	if b.InnerEdge() != 0.5 {
		t.Errorf("expected inner edge 0.5, got %v", b.InnerEdge())
	}
	if b.OuterEdge() != 9.5 {
		t.Errorf("expected outer edge 9.5, got %v", b.OuterEdge())
	}
	if b.Inside(0.5) || b.Inside(9.5) {
		t.Error("edges must count as outside")
	}
	if !b.Inside(5) {
		t.Error("centre must count as inside")
	}
}

func TestNewBoxRelative(t *testing.T) {
	b := NewBoxRelative(10, 0.01)
	if math.Abs(b.Radius-0.1) > 1e-12 {
		t.Errorf("expected radius 0.1, got %v", b.Radius)
	}
}

func TestBoxValidate(t *testing.T) {
	tests := []struct {
		name string
		box  Box
		ok   bool
	}{
		{"normal", Box{SideLength: 100, Radius: 1}, true},
		{"point particles", Box{SideLength: 1, Radius: 0}, true},
		{"zero side", Box{SideLength: 0, Radius: 0}, false},
		{"negative radius", Box{SideLength: 10, Radius: -1}, false},
		{"radius fills box", Box{SideLength: 2, Radius: 1}, false},
		{"radius too big", Box{SideLength: 2, Radius: 3}, false},
		{"NaN side", Box{SideLength: math.NaN(), Radius: 1}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.box.Validate()
			if tt.ok && err != nil {
				t.Errorf("expected valid, got %v", err)
			}
			if !tt.ok && !errors.Is(err, ErrPrecondition) {
				t.Errorf("expected ErrPrecondition, got %v", err)
			}
		})
	}
}
