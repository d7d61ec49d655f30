// Package viz is the interactive terminal view of a running box.
//
// [Model] is a Bubble Tea model that advances the particles one adaptive
// step per tick (or several, see below) and draws them on a Braille
// [Canvas] next to kinetic energy and minimum separation charts.
//
// # Key Bindings
//
//	Space - Pause/Resume
//	R     - Reset to the initial particles
//	+/-   - More or fewer steps per tick
//	T     - Cycle colour themes
//	?     - Toggle help
//	Q     - Quit
package viz
