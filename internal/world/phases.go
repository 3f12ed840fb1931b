package world

import (
	"time"

	"github.com/talgya/oligarchy/internal/events"
)

// Phase cycle: calm -> shock (event fires) -> reaction (player
// responds, action points limited) -> resolution (effects settle) ->
// calm. Transitions happen inside the tick pipeline or through the
// player's event response; these helpers are called with the lock held.

// enterShock freezes the world on a fired event, arms the reaction
// window, and grants the player a fresh budget of action points.
func (w *World) enterShock(event *events.BigEvent) {
	w.Phase = PhaseShock
	w.CurrentEvent = event
	w.ReactionTicksRemaining = w.cfg.ReactionWindow
	w.PlayerActionPoints = w.cfg.MaxActionPoints
}

// enterReaction starts the countdown. Reached from shock when the
// player responds to the event.
func (w *World) enterReaction() {
	w.Phase = PhaseReaction
}

// enterResolution closes the reaction window. Resolution drains back to
// calm after the configured delay; Step checks the deadline.
func (w *World) enterResolution(now time.Time) {
	w.Phase = PhaseResolution
	w.ReactionTicksRemaining = 0
	w.PlayerActionPoints = 0
	w.resolutionUntil = now.Add(w.cfg.ResolutionDelay)
}

// CurrentPhase returns the phase under the lock.
func (w *World) CurrentPhase() Phase {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.Phase
}

// spendActionPoint consumes one action point during the reaction phase.
// Outside reaction, actions are free. Returns false when the budget is
// exhausted.
func (w *World) spendActionPoint() bool {
	if w.Phase != PhaseReaction {
		return true
	}
	if w.PlayerActionPoints <= 0 {
		return false
	}
	w.PlayerActionPoints--
	return true
}
