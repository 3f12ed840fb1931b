// Package engine provides the tick loop that drives the world forward
// in wall-clock time.
package engine

import (
	"context"
	"log/slog"
	"time"

	"github.com/talgya/oligarchy/internal/world"
)

// Engine steps the world at a fixed cadence. Speed scales the interval;
// zero pauses the loop without stopping it.
type Engine struct {
	World    *world.World
	Speed    float64
	Interval time.Duration

	// OnOutcome fires after every step, for broadcast and persistence
	// hooks. Called from the loop goroutine.
	OnOutcome func(tick uint64, outcome world.TickOutcome)

	stop chan struct{}
}

// New creates an engine at real-time speed.
func New(w *world.World, interval time.Duration) *Engine {
	if interval <= 0 {
		interval = time.Second
	}
	return &Engine{
		World:    w,
		Speed:    1.0,
		Interval: interval,
		stop:     make(chan struct{}),
	}
}

// Run blocks, stepping the world until the context is cancelled or Stop
// is called. Ticks keep firing after the season ends; the steps are
// no-ops until a new season is initialized.
func (e *Engine) Run(ctx context.Context) {
	slog.Info("engine started", "interval", e.Interval, "speed", e.Speed)

	for {
		if e.Speed <= 0 {
			// Paused. Check again shortly.
			select {
			case <-ctx.Done():
				slog.Info("engine stopped", "reason", ctx.Err())
				return
			case <-e.stop:
				slog.Info("engine stopped")
				return
			case <-time.After(100 * time.Millisecond):
			}
			continue
		}

		start := time.Now()
		outcome := e.World.Step()

		if outcome != world.OutcomeContinued {
			slog.Info("tick", "n", e.World.TickCount(), "outcome", outcome, "phase", e.World.CurrentPhase())
		}
		if e.OnOutcome != nil {
			e.OnOutcome(e.World.TickCount(), outcome)
		}

		// Sleep out the remainder of the interval, scaled by speed.
		target := time.Duration(float64(e.Interval) / e.Speed)
		if elapsed := time.Since(start); elapsed < target {
			target -= elapsed
		} else {
			target = 0
		}
		select {
		case <-ctx.Done():
			slog.Info("engine stopped", "reason", ctx.Err())
			return
		case <-e.stop:
			slog.Info("engine stopped")
			return
		case <-time.After(target):
		}
	}
}

// Stop halts the loop. Safe to call once.
func (e *Engine) Stop() {
	close(e.stop)
}
