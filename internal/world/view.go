package world

import (
	"time"

	"github.com/talgya/oligarchy/internal/economy"
	"github.com/talgya/oligarchy/internal/events"
	"github.com/talgya/oligarchy/internal/news"
)

// Read views for the API layer. Each takes the world lock and copies
// what it returns, so handlers never race the tick loop.

// StatusView is the top-level world summary.
type StatusView struct {
	Tick               uint64           `json:"tick"`
	Phase              Phase            `json:"phase"`
	SeasonEndsAt       time.Time        `json:"season_ends_at"`
	SeasonEnded        bool             `json:"season_ended"`
	Companies          int              `json:"companies"`
	ActionPoints       int              `json:"action_points"`
	ReactionTicks      int              `json:"reaction_ticks_remaining"`
	CurrentEvent       *events.BigEvent `json:"current_event,omitempty"`
	MarketCondition    string           `json:"market_condition"`
	DistressedCount    int              `json:"distressed_companies"`
	ActiveEventCount   int              `json:"active_events"`
	GovernmentFaction  string           `json:"government_faction"`
	PublicTrust        float64          `json:"public_trust"`
}

// Status summarizes the world for the status endpoint.
func (w *World) Status() StatusView {
	w.mu.Lock()
	defer w.mu.Unlock()

	return StatusView{
		Tick:              w.Tick,
		Phase:             w.Phase,
		SeasonEndsAt:      w.SeasonEndsAt,
		SeasonEnded:       w.SeasonEnded,
		Companies:         len(w.Companies),
		ActionPoints:      w.PlayerActionPoints,
		ReactionTicks:     w.ReactionTicksRemaining,
		CurrentEvent:      w.CurrentEvent,
		MarketCondition:   string(economy.Condition(w.Trend.At(w.Tick))),
		DistressedCount:   len(w.DistressTicks),
		ActiveEventCount:  len(w.Events.ActiveEvents),
		GovernmentFaction: string(w.Government.Faction),
		PublicTrust:       w.People.Sentiment.TrustInCorporations,
	}
}

// CompanyView is one company plus its resolved assets and distress flag.
type CompanyView struct {
	Company    *economy.Company `json:"company"`
	Assets     []*economy.Asset `json:"assets"`
	Distressed bool             `json:"distressed"`
}

// CompaniesView lists every company with its assets.
func (w *World) CompaniesView() []CompanyView {
	w.mu.Lock()
	defer w.mu.Unlock()

	views := make([]CompanyView, 0, len(w.Companies))
	for _, c := range w.Companies {
		views = append(views, CompanyView{
			Company:    c,
			Assets:     w.companyAssets(c),
			Distressed: w.isDistressed(c.ID),
		})
	}
	return views
}

// CompanyView returns a single company view, or nil.
func (w *World) CompanyView(id string) *CompanyView {
	w.mu.Lock()
	defer w.mu.Unlock()

	c := w.company(id)
	if c == nil {
		return nil
	}
	return &CompanyView{
		Company:    c,
		Assets:     w.companyAssets(c),
		Distressed: w.isDistressed(id),
	}
}

// MarketView copies the current price table entries in catalog order.
func (w *World) MarketView() []economy.PriceEntry {
	w.mu.Lock()
	defer w.mu.Unlock()

	entries := make([]economy.PriceEntry, 0, len(w.Market.Prices))
	for _, t := range economy.AllResourceTypes() {
		if entry, ok := w.Market.Prices[t]; ok {
			entries = append(entries, *entry)
		}
	}
	return entries
}

// ActiveEventsView copies the live event list.
func (w *World) ActiveEventsView() []*events.BigEvent {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]*events.BigEvent(nil), w.Events.ActiveEvents...)
}

// NewsView returns the newest feed items, up to limit.
func (w *World) NewsView(limit int) []news.Item {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.Feed.Recent(limit)
}

// AllNews copies the whole feed, for archiving.
func (w *World) AllNews() []news.Item {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]news.Item(nil), w.Feed.Items...)
}
