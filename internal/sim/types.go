package sim

import (
	"context"

	"github.com/san-kum/boxsim/internal/particles"
)

// Observer sees a read-only frame before the first step and after every step.
type Observer interface {
	OnStep(f particles.Frame)
}

type Metric interface {
	Name() string
	Observe(f particles.Frame)
	Value() float64
	Reset()
}

// Pacer delays playback by a step's timestep when animation is requested.
// It must not touch particle state.
type Pacer interface {
	Pace(ctx context.Context, dt float64) error
}

type Config struct {
	Duration float64
	// MaxSteps caps the loop when positive.
	MaxSteps int
	Animate  bool
	// RecordEvery stores every n-th frame in Result.Trajectory when positive.
	RecordEvery int
}

func DefaultConfig() Config {
	return Config{
		Duration: 10.0,
	}
}

// Reason tells why a run stopped.
type Reason string

const (
	ReasonExpired    Reason = "expired"
	ReasonStationary Reason = "stationary"
	ReasonStepLimit  Reason = "step_limit"
	ReasonCanceled   Reason = "canceled"
)

type StepInfo struct {
	Timestep    float64
	Reflections int
	// Moving is false when no particle has a non-zero speed; no step was taken.
	Moving bool
}

type Result struct {
	Steps       int
	Elapsed     float64
	Reason      Reason
	Reflections int
	Metrics     map[string]float64
	Trajectory  []particles.Frame
}
