// Package particles holds the mutable state of N point particles in a
// square box.
//
// A [Set] is built either fully specified, from a (4, N) block via
// [FromArray], or position-only, via [Random]. A position-only set must be
// given velocities with [Set.AssignVelocities] before it can be stepped;
// [Set.Validate] enforces this.
//
// # Ownership
//
// A Set has a single writer. Observers get a [Frame], which is a copy.
package particles
