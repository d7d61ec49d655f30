package sim

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/boxsim/internal/particles"
	"go.uber.org/zap"
)

type Simulator struct {
	box       particles.Box
	metrics   []Metric
	observers []Observer
	pacer     Pacer
	log       *zap.Logger
}

func New(box particles.Box) *Simulator {
	return &Simulator{
		box:       box,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
		log:       zap.NewNop(),
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }
func (s *Simulator) SetPacer(p Pacer)       { s.pacer = p }
func (s *Simulator) Box() particles.Box     { return s.box }

func (s *Simulator) SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	s.log = l
}

// Run steps set in place until the elapsed time exceeds cfg.Duration, every
// particle is at rest, cfg.MaxSteps is reached, or ctx is done. Nothing is
// mutated when validation fails.
func (s *Simulator) Run(ctx context.Context, set *particles.Set, cfg Config) (*Result, error) {
	if err := s.validateConfig(cfg); err != nil {
		return nil, err
	}
	if err := CheckStepping(set, s.box); err != nil {
		return nil, err
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	result := &Result{Metrics: make(map[string]float64)}
	s.log.Debug("run started",
		zap.Int("particles", set.Len()),
		zap.Float64("side_length", s.box.SideLength),
		zap.Float64("radius", s.box.Radius),
		zap.Float64("duration", cfg.Duration),
	)

	t := 0.0
	last := s.emit(set, result, cfg, 0, t, 0)

	var runErr error
	for t <= cfg.Duration {
		select {
		case <-ctx.Done():
			result.Reason = ReasonCanceled
			runErr = ctx.Err()
		default:
		}
		if runErr != nil {
			break
		}
		if cfg.MaxSteps > 0 && result.Steps >= cfg.MaxSteps {
			result.Reason = ReasonStepLimit
			break
		}

		dt, moving := timestep(set, s.box)
		if !moving {
			result.Reason = ReasonStationary
			break
		}

		if cfg.Animate && s.pacer != nil {
			if err := s.pacer.Pace(ctx, dt); err != nil {
				result.Reason = ReasonCanceled
				runErr = err
				break
			}
		}

		result.Reflections += reflect(set, s.box)
		advance(set, dt)
		t += dt
		result.Steps++

		last = s.emit(set, result, cfg, result.Steps, t, dt)
	}

	if result.Reason == "" {
		result.Reason = ReasonExpired
	}
	result.Elapsed = t

	if cfg.RecordEvery > 0 && len(result.Trajectory) > 0 &&
		result.Trajectory[len(result.Trajectory)-1].Step != result.Steps {
		result.Trajectory = append(result.Trajectory, last)
	}

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	s.log.Debug("run finished",
		zap.String("reason", string(result.Reason)),
		zap.Int("steps", result.Steps),
		zap.Float64("elapsed", result.Elapsed),
		zap.Int("reflections", result.Reflections),
	)

	return result, runErr
}

// emit hands the current state to metrics, observers and the recorder.
func (s *Simulator) emit(set *particles.Set, result *Result, cfg Config, stepNum int, t, dt float64) particles.Frame {
	f := set.Snapshot(stepNum, t, dt)
	for _, m := range s.metrics {
		m.Observe(f)
	}
	for _, o := range s.observers {
		o.OnStep(f)
	}
	if cfg.RecordEvery > 0 && stepNum%cfg.RecordEvery == 0 {
		result.Trajectory = append(result.Trajectory, f)
	}
	return f
}

func (s *Simulator) validateConfig(cfg Config) error {
	if math.IsNaN(cfg.Duration) || cfg.Duration < 0 {
		return fmt.Errorf("duration must be non-negative, got %f", cfg.Duration)
	}
	if cfg.MaxSteps < 0 {
		return fmt.Errorf("max steps must be non-negative, got %d", cfg.MaxSteps)
	}
	if cfg.RecordEvery < 0 {
		return fmt.Errorf("record interval must be non-negative, got %d", cfg.RecordEvery)
	}
	return nil
}
