package events

import (
	"fmt"
	"time"

	"github.com/talgya/oligarchy/internal/economy"
)

// Template is a static event definition. Effects are built per fire so
// severity can scale them.
type Template struct {
	Type         string
	Category     EventCategory
	Title        string
	Description  string
	BaseDuration time.Duration
	Effects      func(severity EventSeverity) EventEffects
}

// Templates is the major-event catalog.
var Templates = map[string]Template{
	"global_oil_shock": {
		Type:         "global_oil_shock",
		Category:     CategorySectoral,
		Title:        "Global Oil Supply Shock",
		Description:  "Major geopolitical crisis disrupts global oil supply chains",
		BaseDuration: 2 * time.Minute,
		Effects: func(severity EventSeverity) EventEffects {
			return EventEffects{
				AssetEfficiencyChanges: map[economy.AssetType]float64{
					economy.AssetRefinery: bySeverity(severity, 3.0, 2.0, 1.5), // refineries boom
					economy.AssetFactory:  bySeverity(severity, 0.6, 0.7, 0.8), // energy costs bite
					economy.AssetFarm:     bySeverity(severity, 0.7, 0.8, 0.9), // logistics hit
				},
				AssetUpkeepChanges: map[economy.AssetType]float64{
					economy.AssetFactory: 1.4,
					economy.AssetFarm:    1.3,
				},
				ResourcePriceChanges: map[economy.ResourceType]float64{
					economy.ResourceFuel:   bySeverity(severity, 300, 200, 150),
					economy.ResourceEnergy: bySeverity(severity, 250, 180, 120),
				},
				InflationChange: bySeverity(severity, 0.05, 0.03, 0.01),
				SentimentChanges: &SentimentChanges{
					TrustInCorporations: -10,
					AngerAtMonopolies:   15,
					EconomicOptimism:    -20,
				},
				GovernmentReaction: &GovernmentReaction{
					PolicyChanges: []string{"price_cap_oil"},
					FactionShift:  FactionPopulist,
				},
			}
		},
	},

	"tech_antitrust_crackdown": {
		Type:         "tech_antitrust_crackdown",
		Category:     CategoryPolitical,
		Title:        "Major Tech Antitrust Investigation",
		Description:  "Government launches sweeping antitrust investigation into tech sector",
		BaseDuration: 3 * time.Minute,
		Effects: func(EventSeverity) EventEffects {
			return EventEffects{
				IndustryImpacts: map[string]IndustryImpact{
					"tech": {
						RevenueMultiplier: 0.9,
						CostMultiplier:    1.2, // legal costs
						ReputationChange:  -10,
						MarketShareShift:  -15,
					},
				},
				GovernmentReaction: &GovernmentReaction{
					PolicyChanges:        []string{"antitrust_tech"},
					InvestigationTargets: []string{}, // filled with large tech companies at fire time
				},
				SentimentChanges: &SentimentChanges{
					TrustInCorporations: -5,
					AngerAtMonopolies:   10,
				},
			}
		},
	},

	"climate_disaster": {
		Type:         "climate_disaster",
		Category:     CategoryEnvironmental,
		Title:        "Major Climate Disaster",
		Description:  "Catastrophic weather event disrupts global supply chains",
		BaseDuration: 150 * time.Second,
		Effects: func(EventSeverity) EventEffects {
			return EventEffects{
				ResourcePriceChanges: map[economy.ResourceType]float64{
					economy.ResourceGrain: 150,
					economy.ResourceSteel: 80,
				},
				IndustryImpacts: map[string]IndustryImpact{
					"agriculture": {
						RevenueMultiplier: 0.6,
						CostMultiplier:    1.5,
						ReputationChange:  -5,
						MarketShareShift:  -10,
					},
					"energy": {
						RevenueMultiplier: 1.0,
						CostMultiplier:    1.0,
						ReputationChange:  -15, // blamed for the climate
						MarketShareShift:  -5,
					},
					"retail": {
						RevenueMultiplier: 0.85,
						CostMultiplier:    1.3,
					},
				},
				SentimentChanges: &SentimentChanges{
					EnvironmentalConcern: 30,
					TrustInCorporations:  -10,
					AngerAtMonopolies:    5,
				},
				GovernmentReaction: &GovernmentReaction{
					PolicyChanges: []string{"green_regulations"},
					FactionShift:  FactionGreen,
				},
			}
		},
	},

	"market_crash": {
		Type:         "market_crash",
		Category:     CategoryMacro,
		Title:        "Global Market Crash",
		Description:  "Panic selling triggers massive market correction",
		BaseDuration: 90 * time.Second,
		Effects: func(EventSeverity) EventEffects {
			return EventEffects{
				MarketVolatility: 0.8,
				IndustryImpacts: map[string]IndustryImpact{
					"finance": {
						RevenueMultiplier: 0.7,
						CostMultiplier:    1.0,
						ReputationChange:  -20,
						MarketShareShift:  -20,
					},
					"tech": {
						RevenueMultiplier: 0.8,
						CostMultiplier:    1.0,
						ReputationChange:  -10,
						MarketShareShift:  -15,
					},
				},
				SentimentChanges: &SentimentChanges{
					EconomicOptimism:    -40,
					TrustInCorporations: -15,
				},
				RetailInvestorReaction: &RetailInvestorReaction{
					RiskAppetiteChange:   -30,
					MemeStockManiaChange: -20,
				},
			}
		},
	},

	"data_breach_mega": {
		Type:         "data_breach_mega",
		Category:     CategoryCorporate,
		Title:        "Mega Data Breach Exposed",
		Description:  "Massive data breach affects millions, reveals corporate negligence",
		BaseDuration: 2 * time.Minute,
		Effects: func(EventSeverity) EventEffects {
			return EventEffects{
				IndustryImpacts: map[string]IndustryImpact{
					"tech": {
						RevenueMultiplier: 0.95,
						CostMultiplier:    1.3, // fines and remediation
						ReputationChange:  -15,
						MarketShareShift:  -10,
					},
					"finance": {
						RevenueMultiplier: 0.9,
						CostMultiplier:    1.2,
						ReputationChange:  -10,
						MarketShareShift:  -5,
					},
				},
				SentimentChanges: &SentimentChanges{
					TrustInCorporations: -20,
					AngerAtMonopolies:   10,
				},
				GovernmentReaction: &GovernmentReaction{
					PolicyChanges:        []string{"data_privacy_regulation"},
					InvestigationTargets: []string{},
				},
			}
		},
	},

	"chip_shortage": {
		Type:         "chip_shortage",
		Category:     CategorySectoral,
		Title:        "Global Semiconductor Shortage",
		Description:  "Critical chip shortage disrupts tech and automotive industries",
		BaseDuration: 3 * time.Minute,
		Effects: func(severity EventSeverity) EventEffects {
			return EventEffects{
				AssetEfficiencyChanges: map[economy.AssetType]float64{
					economy.AssetFactory:    bySeverity(severity, 0.5, 0.6, 0.7),
					economy.AssetDataCenter: bySeverity(severity, 0.8, 0.9, 0.95),
				},
				AssetUpkeepChanges: map[economy.AssetType]float64{
					economy.AssetFactory: 1.5, // sourcing chips gets expensive
				},
				ResourcePriceChanges: map[economy.ResourceType]float64{
					economy.ResourceChips: 250,
				},
				SentimentChanges: &SentimentChanges{
					EconomicOptimism: -10,
				},
			}
		},
	},

	"rate_hike": {
		Type:         "rate_hike",
		Category:     CategoryMacro,
		Title:        "Central Bank Rate Hike",
		Description:  "Interest rates double across the board",
		BaseDuration: 3 * time.Minute,
		Effects: func(EventSeverity) EventEffects {
			return EventEffects{
				InterestRateChange: 2.0, // double all debt interest
				InflationChange:    -0.02,
				SentimentChanges: &SentimentChanges{
					EconomicOptimism: -15,
				},
			}
		},
	},
}

// TemplateTypes returns the catalog keys in a stable order.
func TemplateTypes() []string {
	return []string{
		"global_oil_shock",
		"tech_antitrust_crackdown",
		"climate_disaster",
		"market_crash",
		"data_breach_mega",
		"chip_shortage",
		"rate_hike",
	}
}

// bySeverity picks the effect magnitude for a severity band. Low and
// medium share the mild value.
func bySeverity(s EventSeverity, critical, high, mild float64) float64 {
	switch s {
	case SeverityCritical:
		return critical
	case SeverityHigh:
		return high
	default:
		return mild
	}
}

// durationMultiplier stretches severe events.
func durationMultiplier(s EventSeverity) float64 {
	switch s {
	case SeverityCritical:
		return 1.5
	case SeverityHigh:
		return 1.2
	default:
		return 1.0
	}
}

// NewEvent instantiates a template at a severity. Returns an error for
// unknown template types.
func NewEvent(eventType string, severity EventSeverity, now time.Time) (*BigEvent, error) {
	tmpl, ok := Templates[eventType]
	if !ok {
		return nil, fmt.Errorf("unknown event type %q", eventType)
	}

	duration := time.Duration(float64(tmpl.BaseDuration) * durationMultiplier(severity))
	return &BigEvent{
		ID:          fmt.Sprintf("event-%s-%d", eventType, now.UnixMilli()),
		Category:    tmpl.Category,
		Type:        eventType,
		Title:       tmpl.Title,
		Description: tmpl.Description,
		Severity:    severity,
		Duration:    duration,
		StartedAt:   now,
		ExpiresAt:   now.Add(duration),
		Effects:     tmpl.Effects(severity),
		Headline:    tmpl.Title,
		Subheadline: tmpl.Description,
	}, nil
}
