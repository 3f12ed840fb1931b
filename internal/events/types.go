// Package events schedules and manages big cross-industry events. An
// event's effects cascade across markets, assets, government, media, and
// public sentiment; the orchestrator applies them when the event fires.
package events

import (
	"time"

	"github.com/talgya/oligarchy/internal/economy"
)

// EventCategory groups events by the system they originate from.
type EventCategory string

const (
	CategoryMacro         EventCategory = "macro"
	CategorySectoral      EventCategory = "sectoral"
	CategoryPolitical     EventCategory = "political"
	CategoryCorporate     EventCategory = "corporate"
	CategoryEnvironmental EventCategory = "environmental"
	CategoryTech          EventCategory = "tech"
)

// EventSeverity scales an event's effects and duration.
type EventSeverity string

const (
	SeverityLow      EventSeverity = "low"
	SeverityMedium   EventSeverity = "medium"
	SeverityHigh     EventSeverity = "high"
	SeverityCritical EventSeverity = "critical"
)

// severityRank orders severities for MostSevereEvent.
var severityRank = map[EventSeverity]int{
	SeverityCritical: 4,
	SeverityHigh:     3,
	SeverityMedium:   2,
	SeverityLow:      1,
}

// FactionShift names the government faction an event pushes power toward.
type FactionShift string

const (
	FactionProBusiness FactionShift = "pro_business"
	FactionPopulist    FactionShift = "populist"
	FactionGreen       FactionShift = "green"
	FactionNationalist FactionShift = "nationalist"
)

// NarrativeFrame is how a media outlet spins an event.
type NarrativeFrame string

const (
	FrameProBusiness   NarrativeFrame = "pro_business"
	FrameAntiCorporate NarrativeFrame = "anti_corporate"
	FrameCrisis        NarrativeFrame = "crisis"
	FrameOpportunity   NarrativeFrame = "opportunity"
)

// IndustryImpact is an event's effect on one industry.
type IndustryImpact struct {
	RevenueMultiplier float64 `json:"revenue_multiplier"`
	CostMultiplier    float64 `json:"cost_multiplier"`
	ReputationChange  float64 `json:"reputation_change"`  // -10..+10
	MarketShareShift  float64 `json:"market_share_shift"` // percentage points
}

// GovernmentReaction is the political fallout bundled with an event.
type GovernmentReaction struct {
	PolicyChanges        []string     `json:"policy_changes,omitempty"`
	InvestigationTargets []string     `json:"investigation_targets,omitempty"` // company IDs, filled at fire time
	FactionShift         FactionShift `json:"faction_shift,omitempty"`
}

// SentimentChanges are deltas applied to public sentiment axes.
type SentimentChanges struct {
	TrustInCorporations  float64 `json:"trust_in_corporations,omitempty"`
	AngerAtMonopolies    float64 `json:"anger_at_monopolies,omitempty"`
	EnvironmentalConcern float64 `json:"environmental_concern,omitempty"`
	EconomicOptimism     float64 `json:"economic_optimism,omitempty"`
}

// MediaNarrative pairs a frame with the outlets expected to push it.
type MediaNarrative struct {
	Frame   NarrativeFrame `json:"frame"`
	Outlets []string       `json:"outlets"`
}

// RetailInvestorReaction shifts retail investor mood.
type RetailInvestorReaction struct {
	RiskAppetiteChange   float64            `json:"risk_appetite_change,omitempty"`
	MemeStockManiaChange float64            `json:"meme_stock_mania_change,omitempty"`
	IndustryHype         map[string]float64 `json:"industry_hype,omitempty"`
}

// EventEffects is the full cross-system effect bundle of one event.
// Asset efficiency changes are the primary effect; everything else
// cascades from the shock.
type EventEffects struct {
	AssetEfficiencyChanges map[economy.AssetType]float64    `json:"asset_efficiency_changes,omitempty"` // multiplier, 2.0 = 200%
	AssetUpkeepChanges     map[economy.AssetType]float64    `json:"asset_upkeep_changes,omitempty"`     // multiplier
	ResourcePriceChanges   map[economy.ResourceType]float64 `json:"resource_price_changes,omitempty"`   // percentage change
	MarketVolatility       float64                          `json:"market_volatility,omitempty"`        // 0-1
	InflationChange        float64                          `json:"inflation_change,omitempty"`         // compounded into global inflation
	InterestRateChange     float64                          `json:"interest_rate_change,omitempty"`     // multiplier on all debt
	IndustryImpacts        map[string]IndustryImpact        `json:"industry_impacts,omitempty"`
	GovernmentReaction     *GovernmentReaction              `json:"government_reaction,omitempty"`
	SentimentChanges       *SentimentChanges                `json:"sentiment_changes,omitempty"`
	MediaNarratives        []MediaNarrative                 `json:"media_narratives,omitempty"`
	RetailInvestorReaction *RetailInvestorReaction          `json:"retail_investor_reaction,omitempty"`
}

// EventDecision is a response option shown to the player while the
// reaction window is open.
type EventDecision struct {
	ID               string  `json:"id"`
	Text             string  `json:"text"`
	Cost             float64 `json:"cost,omitempty"`
	ReputationChange float64 `json:"reputation_change,omitempty"`
	CashChange       float64 `json:"cash_change,omitempty"`
}

// BigEvent is a live world-reshaping event.
type BigEvent struct {
	ID          string        `json:"id"`
	Category    EventCategory `json:"category"`
	Type        string        `json:"type"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Severity    EventSeverity `json:"severity"`
	Duration    time.Duration `json:"duration"`
	StartedAt   time.Time     `json:"started_at"`
	ExpiresAt   time.Time     `json:"expires_at"`

	Effects EventEffects `json:"effects"`

	Headline    string          `json:"headline"`
	Subheadline string          `json:"subheadline"`
	Decisions   []EventDecision `json:"decisions,omitempty"`
}

// Active reports whether the event is still in effect at the given time.
func (e *BigEvent) Active(now time.Time) bool {
	return now.Before(e.ExpiresAt)
}
