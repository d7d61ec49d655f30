// Package geometry provides pure numeric helpers for particle coordinates.
//
//   - [Array]: shaped, row-major float64 block used for construction input
//   - [PairwiseDifference]: outer subtraction of a 1-D array with itself
//   - [Magnitude]: elementwise Euclidean norm of a 2-D vector field
//   - [MinSeparation]: closest approach between any two points
//
// Nothing in this package holds state.
package geometry
