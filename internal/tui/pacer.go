package tui

import (
	"context"
	"time"
)

// Pacer sleeps for a step's timestep, scaled by Speed, so an animated run
// plays back in wall-clock time. It implements sim.Pacer.
type Pacer struct {
	// Speed > 1 plays faster than real time. Zero means 1.
	Speed float64
	// MaxDelay caps a single pause when positive.
	MaxDelay time.Duration
}

func NewPacer(speed float64) *Pacer {
	return &Pacer{Speed: speed, MaxDelay: time.Second}
}

func (p *Pacer) Delay(dt float64) time.Duration {
	speed := p.Speed
	if speed <= 0 {
		speed = 1
	}
	d := time.Duration(dt / speed * float64(time.Second))
	if p.MaxDelay > 0 && d > p.MaxDelay {
		d = p.MaxDelay
	}
	if d < 0 {
		d = 0
	}
	return d
}

// Pace blocks for Delay(dt) or until ctx is done.
func (p *Pacer) Pace(ctx context.Context, dt float64) error {
	d := p.Delay(dt)
	if d == 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
