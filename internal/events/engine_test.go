package events

import (
	"testing"
	"time"

	"github.com/talgya/oligarchy/internal/entropy"
)

func TestShouldTriggerRespectsCooldown(t *testing.T) {
	now := time.Now()
	e := NewEngine(time.Minute, 0.15, now)

	// Certain hit (roll 0 < 0.15) still blocked inside the cooldown.
	if e.ShouldTrigger(now.Add(30*time.Second), entropy.Fixed{Value: 0}) {
		t.Fatalf("triggered inside cooldown")
	}
	if !e.ShouldTrigger(now.Add(61*time.Second), entropy.Fixed{Value: 0}) {
		t.Fatalf("did not trigger after cooldown with certain roll")
	}
	// Certain miss after cooldown.
	if e.ShouldTrigger(now.Add(61*time.Second), entropy.Fixed{Value: 0.99}) {
		t.Fatalf("triggered on failing roll")
	}
}

func TestSeverityBands(t *testing.T) {
	cases := []struct {
		roll float64
		want EventSeverity
	}{
		{0.05, SeverityCritical},
		{0.09, SeverityCritical},
		{0.1, SeverityHigh},
		{0.39, SeverityHigh},
		{0.4, SeverityMedium},
		{0.69, SeverityMedium},
		{0.7, SeverityLow},
		{0.99, SeverityLow},
	}
	for _, tc := range cases {
		if got := rollSeverity(entropy.Fixed{Value: tc.roll}); got != tc.want {
			t.Errorf("rollSeverity(%.2f) = %s, want %s", tc.roll, got, tc.want)
		}
	}
}

func TestTriggerRandomResetsCooldown(t *testing.T) {
	start := time.Now()
	e := NewEngine(time.Minute, 0.15, start)

	fireAt := start.Add(2 * time.Minute)
	event := e.TriggerRandom(fireAt, entropy.NewSource(42))
	if event == nil {
		t.Fatalf("no event fired")
	}
	if len(e.ActiveEvents) != 1 || e.TotalEventsThisSeason != 1 {
		t.Fatalf("engine state after fire: %d active, %d this season",
			len(e.ActiveEvents), e.TotalEventsThisSeason)
	}
	if !e.LastEventTime.Equal(fireAt) {
		t.Fatalf("cooldown clock not reset")
	}
	if e.ShouldTrigger(fireAt.Add(time.Second), entropy.Fixed{Value: 0}) {
		t.Fatalf("cooldown not enforced after fire")
	}
}

func TestDurationScalesWithSeverity(t *testing.T) {
	now := time.Now()

	critical, err := NewEvent("global_oil_shock", SeverityCritical, now)
	if err != nil {
		t.Fatal(err)
	}
	low, err := NewEvent("global_oil_shock", SeverityLow, now)
	if err != nil {
		t.Fatal(err)
	}

	if critical.Duration != 3*time.Minute { // 2m * 1.5
		t.Errorf("critical duration %s, want 3m", critical.Duration)
	}
	if low.Duration != 2*time.Minute {
		t.Errorf("low duration %s, want 2m", low.Duration)
	}
}

func TestUpdateExpiresEvents(t *testing.T) {
	now := time.Now()
	e := NewEngine(time.Minute, 0.15, now)

	short, _ := NewEvent("market_crash", SeverityLow, now) // 90s
	long, _ := NewEvent("rate_hike", SeverityLow, now)     // 3m
	e.ActiveEvents = append(e.ActiveEvents, short, long)

	expired := e.Update(now.Add(2 * time.Minute))
	if len(expired) != 1 || expired[0].Type != "market_crash" {
		t.Fatalf("expected market_crash to expire, got %d expired", len(expired))
	}
	if len(e.ActiveEvents) != 1 || e.ActiveEvents[0].Type != "rate_hike" {
		t.Fatalf("expected rate_hike still active")
	}
}

func TestMostSevereEvent(t *testing.T) {
	now := time.Now()
	e := NewEngine(time.Minute, 0.15, now)

	if e.MostSevereEvent(now) != nil {
		t.Fatalf("calm world returned an event")
	}

	low, _ := NewEvent("chip_shortage", SeverityLow, now)
	critical, _ := NewEvent("climate_disaster", SeverityCritical, now)
	medium, _ := NewEvent("rate_hike", SeverityMedium, now)
	e.ActiveEvents = append(e.ActiveEvents, low, critical, medium)

	got := e.MostSevereEvent(now)
	if got == nil || got.Type != "climate_disaster" {
		t.Fatalf("most severe = %v, want climate_disaster", got)
	}
}

func TestSeverityScaledEffects(t *testing.T) {
	now := time.Now()

	critical, _ := NewEvent("global_oil_shock", SeverityCritical, now)
	if got := critical.Effects.AssetEfficiencyChanges["refinery"]; got != 3.0 {
		t.Errorf("critical refinery boost = %.1f, want 3.0", got)
	}
	if got := critical.Effects.ResourcePriceChanges["fuel"]; got != 300 {
		t.Errorf("critical fuel change = %.0f, want 300", got)
	}

	medium, _ := NewEvent("global_oil_shock", SeverityMedium, now)
	if got := medium.Effects.AssetEfficiencyChanges["refinery"]; got != 1.5 {
		t.Errorf("medium refinery boost = %.1f, want 1.5", got)
	}
}

func TestNewEventUnknownType(t *testing.T) {
	if _, err := NewEvent("alien_invasion", SeverityHigh, time.Now()); err == nil {
		t.Fatalf("unknown template did not error")
	}
}

func TestActiveByCategory(t *testing.T) {
	now := time.Now()
	e := NewEngine(time.Minute, 0.15, now)

	crash, _ := NewEvent("market_crash", SeverityHigh, now)
	hike, _ := NewEvent("rate_hike", SeverityHigh, now)
	oil, _ := NewEvent("global_oil_shock", SeverityHigh, now)
	e.ActiveEvents = append(e.ActiveEvents, crash, hike, oil)

	macro := e.ActiveByCategory(CategoryMacro, now)
	if len(macro) != 2 {
		t.Fatalf("macro events = %d, want 2", len(macro))
	}
}
