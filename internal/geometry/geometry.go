package geometry

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// PairwiseDifference returns the N×N matrix M with M[i][j] = v[j] - v[i]
// for a rank-1 array v of length N.
func PairwiseDifference(a Array) (*mat.Dense, error) {
	if rank := a.Rank(); rank != 1 {
		return nil, &DimensionError{Rank: rank}
	}
	n := len(a.data)
	if n == 0 {
		return &mat.Dense{}, nil
	}

	m := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		row := m.RawRowView(i)
		vi := a.data[i]
		for j, vj := range a.data {
			row[j] = vj - vi
		}
	}
	return m, nil
}

// Magnitude returns sqrt(x[i]^2 + y[i]^2) for every i.
// It panics if x and y differ in length.
func Magnitude(x, y []float64) []float64 {
	if len(x) != len(y) {
		panic("geometry: slice length mismatch")
	}
	out := make([]float64, len(x))
	for i := range x {
		out[i] = math.Sqrt(x[i]*x[i] + y[i]*y[i])
	}
	return out
}

// MinSeparation returns the smallest distance between two distinct points
// (x[i], y[i]). It is +Inf for fewer than two points. It visits each pair
// once and allocates nothing, so it is safe to call every step.
func MinSeparation(x, y []float64) float64 {
	if len(x) != len(y) {
		panic("geometry: slice length mismatch")
	}
	best := math.Inf(1)
	for i := 0; i < len(x)-1; i++ {
		for j := i + 1; j < len(x); j++ {
			dx, dy := x[j]-x[i], y[j]-y[i]
			if d := math.Sqrt(dx*dx + dy*dy); d < best {
				best = d
			}
		}
	}
	return best
}
