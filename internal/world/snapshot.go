package world

import (
	"time"

	"github.com/talgya/oligarchy/internal/ai"
	"github.com/talgya/oligarchy/internal/economy"
	"github.com/talgya/oligarchy/internal/events"
	"github.com/talgya/oligarchy/internal/media"
	"github.com/talgya/oligarchy/internal/news"
	"github.com/talgya/oligarchy/internal/people"
	"github.com/talgya/oligarchy/internal/politics"
)

// Snapshot is the serializable world state. The persistence layer
// stores it as one JSON document per save.
type Snapshot struct {
	Companies   []*economy.Company          `json:"companies"`
	Assets      map[string]*economy.Asset   `json:"assets"`
	Market      *economy.MarketState        `json:"market"`
	Government  *politics.GovernmentState   `json:"government"`
	Media       *media.State                `json:"media"`
	People      *people.State               `json:"people"`
	Events      *events.Engine              `json:"events"`
	Feed        *news.Feed                  `json:"feed"`
	Competitors map[string]*ai.Competitor   `json:"competitors"`

	Phase                  Phase          `json:"phase"`
	CurrentEvent           *events.BigEvent `json:"current_event,omitempty"`
	ReactionTicksRemaining int            `json:"reaction_ticks_remaining"`
	PlayerActionPoints     int            `json:"player_action_points"`
	DistressTicks          map[string]int `json:"distress_ticks"`

	Tick          uint64                   `json:"tick"`
	SeasonEndsAt  time.Time                `json:"season_ends_at"`
	SeasonEnded   bool                     `json:"season_ended"`
	SeasonResults []economy.CompanyRanking `json:"season_results,omitempty"`
}

// Export captures the current state for persistence.
func (w *World) Export() *Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()

	return &Snapshot{
		Companies:              w.Companies,
		Assets:                 w.Assets,
		Market:                 w.Market,
		Government:             w.Government,
		Media:                  w.Media,
		People:                 w.People,
		Events:                 w.Events,
		Feed:                   w.Feed,
		Competitors:            w.Competitors,
		Phase:                  w.Phase,
		CurrentEvent:           w.CurrentEvent,
		ReactionTicksRemaining: w.ReactionTicksRemaining,
		PlayerActionPoints:     w.PlayerActionPoints,
		DistressTicks:          w.DistressTicks,
		Tick:                   w.Tick,
		SeasonEndsAt:           w.SeasonEndsAt,
		SeasonEnded:            w.SeasonEnded,
		SeasonResults:          w.SeasonResults,
	}
}

// Restore loads a snapshot into the world, rebuilding the pieces that
// do not serialize (the trend field derives from the seed).
func (w *World) Restore(s *Snapshot) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.Companies = s.Companies
	w.Assets = s.Assets
	if w.Assets == nil {
		w.Assets = map[string]*economy.Asset{}
	}
	w.Market = s.Market
	w.Government = s.Government
	w.Media = s.Media
	w.People = s.People
	w.Events = s.Events
	w.Feed = s.Feed
	w.Competitors = s.Competitors
	if w.Competitors == nil {
		w.Competitors = map[string]*ai.Competitor{}
	}
	w.Phase = s.Phase
	w.CurrentEvent = s.CurrentEvent
	w.ReactionTicksRemaining = s.ReactionTicksRemaining
	w.PlayerActionPoints = s.PlayerActionPoints
	w.DistressTicks = s.DistressTicks
	if w.DistressTicks == nil {
		w.DistressTicks = map[string]int{}
	}
	w.Tick = s.Tick
	w.SeasonEndsAt = s.SeasonEndsAt
	w.SeasonEnded = s.SeasonEnded
	w.SeasonResults = s.SeasonResults
	w.Trend = economy.NewTrendField(w.cfg.Seed)
}
