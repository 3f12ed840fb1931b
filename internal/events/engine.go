package events

import (
	"time"

	"github.com/talgya/oligarchy/internal/entropy"
)

// Engine schedules major events: a cooldown between fires plus a
// per-check Bernoulli roll.
type Engine struct {
	ActiveEvents          []*BigEvent   `json:"active_events"`
	LastEventTime         time.Time     `json:"last_event_time"`
	Cooldown              time.Duration `json:"cooldown"`
	Probability           float64       `json:"probability"`
	TotalEventsThisSeason int           `json:"total_events_this_season"`
}

// NewEngine creates an engine with the given pacing. The cooldown starts
// from now so a fresh world gets a calm opening stretch.
func NewEngine(cooldown time.Duration, probability float64, now time.Time) *Engine {
	return &Engine{
		ActiveEvents:  []*BigEvent{},
		LastEventTime: now,
		Cooldown:      cooldown,
		Probability:   probability,
	}
}

// ShouldTrigger rolls for a new event. Always false inside the cooldown
// window.
func (e *Engine) ShouldTrigger(now time.Time, rng entropy.Source) bool {
	if now.Sub(e.LastEventTime) < e.Cooldown {
		return false
	}
	return rng.Chance(e.Probability)
}

// rollSeverity draws an event severity weighted toward high and critical:
// 10% critical, 30% high, 30% medium, 30% low.
func rollSeverity(rng entropy.Source) EventSeverity {
	roll := rng.Float()
	switch {
	case roll < 0.1:
		return SeverityCritical
	case roll < 0.4:
		return SeverityHigh
	case roll < 0.7:
		return SeverityMedium
	default:
		return SeverityLow
	}
}

// TriggerRandom fires a uniformly chosen template at a rolled severity
// and resets the cooldown clock.
func (e *Engine) TriggerRandom(now time.Time, rng entropy.Source) *BigEvent {
	eventType := entropy.Pick(rng, TemplateTypes())
	severity := rollSeverity(rng)

	event, err := NewEvent(eventType, severity, now)
	if err != nil {
		return nil
	}

	e.ActiveEvents = append(e.ActiveEvents, event)
	e.LastEventTime = now
	e.TotalEventsThisSeason++
	return event
}

// Update drops expired events and returns them so the orchestrator can
// unwind their effects.
func (e *Engine) Update(now time.Time) []*BigEvent {
	var expired []*BigEvent
	active := e.ActiveEvents[:0]
	for _, ev := range e.ActiveEvents {
		if ev.Active(now) {
			active = append(active, ev)
		} else {
			expired = append(expired, ev)
		}
	}
	e.ActiveEvents = active
	return expired
}

// ActiveByCategory filters live events by category.
func (e *Engine) ActiveByCategory(category EventCategory, now time.Time) []*BigEvent {
	var out []*BigEvent
	for _, ev := range e.ActiveEvents {
		if ev.Category == category && ev.Active(now) {
			out = append(out, ev)
		}
	}
	return out
}

// MostSevereEvent returns the live event with the highest severity, or
// nil when the world is calm.
func (e *Engine) MostSevereEvent(now time.Time) *BigEvent {
	var best *BigEvent
	for _, ev := range e.ActiveEvents {
		if !ev.Active(now) {
			continue
		}
		if best == nil || severityRank[ev.Severity] > severityRank[best.Severity] {
			best = ev
		}
	}
	return best
}

// ResetSeason clears the per-season event counter.
func (e *Engine) ResetSeason() {
	e.TotalEventsThisSeason = 0
}
