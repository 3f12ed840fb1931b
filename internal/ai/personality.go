package ai

import (
	"math"
	"sort"
	"time"

	"github.com/talgya/oligarchy/internal/economy"
	"github.com/talgya/oligarchy/internal/entropy"
)

// Personality names a competitor archetype.
type Personality string

const (
	PersonalityVisionary   Personality = "visionary"
	PersonalityBaron       Personality = "baron"
	PersonalityShark       Personality = "shark"
	PersonalityPolitico    Personality = "politico"
	PersonalityGhost       Personality = "ghost"
	PersonalityOpportunist Personality = "opportunist"
)

// Traits is a personality's behavioral vector, each axis 0-1.
type Traits struct {
	Aggression         float64
	ExpansionRate      float64
	RiskTolerance      float64
	MarketManipulation float64
	AllianceTendency   float64
	ResourceFocus      []economy.ResourceType
}

// Profile describes one archetype.
type Profile struct {
	ID          Personality
	Name        string
	Description string
	Traits      Traits
}

// Personalities is the archetype catalog.
var Personalities = map[Personality]Profile{
	PersonalityVisionary: {
		ID:          PersonalityVisionary,
		Name:        "The Visionary",
		Description: "Invests heavily, expands fast, high risk tolerance",
		Traits: Traits{
			Aggression:         0.3,
			ExpansionRate:      0.9,
			RiskTolerance:      0.8,
			MarketManipulation: 0.4,
			AllianceTendency:   0.5,
			ResourceFocus:      []economy.ResourceType{economy.ResourceData, economy.ResourceChips},
		},
	},
	PersonalityBaron: {
		ID:          PersonalityBaron,
		Name:        "The Baron",
		Description: "Controls raw materials, hoards resources",
		Traits: Traits{
			Aggression:         0.5,
			ExpansionRate:      0.6,
			RiskTolerance:      0.4,
			MarketManipulation: 0.7,
			AllianceTendency:   0.3,
			ResourceFocus:      []economy.ResourceType{economy.ResourceSteel, economy.ResourceFuel, economy.ResourceGrain},
		},
	},
	PersonalityShark: {
		ID:          PersonalityShark,
		Name:        "The Shark",
		Description: "Hostile takeovers, aggressive pricing, sabotage",
		Traits: Traits{
			Aggression:         0.9,
			ExpansionRate:      0.7,
			RiskTolerance:      0.6,
			MarketManipulation: 0.5,
			AllianceTendency:   0.2,
		},
	},
	PersonalityPolitico: {
		ID:          PersonalityPolitico,
		Name:        "The Politico",
		Description: "Max lobbying, political influence",
		Traits: Traits{
			Aggression:         0.4,
			ExpansionRate:      0.5,
			RiskTolerance:      0.5,
			MarketManipulation: 0.3,
			AllianceTendency:   0.8,
			ResourceFocus:      []economy.ResourceType{economy.ResourceImpressions},
		},
	},
	PersonalityGhost: {
		ID:          PersonalityGhost,
		Name:        "The Ghost",
		Description: "Hoards assets quietly, low profile",
		Traits: Traits{
			Aggression:         0.2,
			ExpansionRate:      0.4,
			RiskTolerance:      0.3,
			MarketManipulation: 0.2,
			AllianceTendency:   0.1,
		},
	},
	PersonalityOpportunist: {
		ID:          PersonalityOpportunist,
		Name:        "The Opportunist",
		Description: "Adapts strategy based on market conditions",
		Traits: Traits{
			Aggression:         0.6,
			ExpansionRate:      0.6,
			RiskTolerance:      0.7,
			MarketManipulation: 0.6,
			AllianceTendency:   0.6,
		},
	},
}

// AllPersonalities returns the archetypes in a stable order.
func AllPersonalities() []Personality {
	return []Personality{
		PersonalityVisionary,
		PersonalityBaron,
		PersonalityShark,
		PersonalityPolitico,
		PersonalityGhost,
		PersonalityOpportunist,
	}
}

// StrategicAction is a higher-level move than the asset menu: the
// personality layer decides posture, the asset menu decides spending.
type StrategicAction string

const (
	StrategicExpand     StrategicAction = "expand_territory"
	StrategicBuild      StrategicAction = "build_asset"
	StrategicManipulate StrategicAction = "manipulate_market"
	StrategicSabotage   StrategicAction = "sabotage_player"
	StrategicInvest     StrategicAction = "invest_department"
	StrategicIdle       StrategicAction = "idle"
)

// StrategicDecision is one scored strategic option.
type StrategicDecision struct {
	Action       StrategicAction
	TargetID     string
	ResourceType economy.ResourceType
	Priority     float64
}

// Competitor is the personality-driven state riding alongside an AI
// company.
type Competitor struct {
	CompanyID      string      `json:"company_id"`
	Personality    Personality `json:"personality"`
	Power          float64     `json:"power"`
	LastActionTime time.Time   `json:"last_action_time"`
}

// NewCompetitor attaches a personality to a company. Power starts
// proportional to capital.
func NewCompetitor(companyID string, p Personality, capital float64, now time.Time) *Competitor {
	return &Competitor{
		CompanyID:      companyID,
		Personality:    p,
		Power:          capital / 1000,
		LastActionTime: now,
	}
}

// CalculateStrategy scores the strategic menu for a competitor. A 20%
// exploration roll sometimes takes the second-best option so identical
// personalities do not move in lockstep.
func (cp *Competitor) CalculateStrategy(
	c *economy.Company,
	playerPower float64,
	availableTerritories int,
	condition economy.MarketCondition,
	rng entropy.Source,
) StrategicDecision {
	profile := Personalities[cp.Personality]
	traits := profile.Traits
	var decisions []StrategicDecision

	if availableTerritories > 0 && c.Cash > 50_000 {
		expansion := traits.ExpansionRate * (1 - float64(len(c.TerritoriesOwned))/10)
		decisions = append(decisions, StrategicDecision{
			Action:   StrategicExpand,
			Priority: expansion,
		})
	}

	if c.Cash > 40_000 {
		decisions = append(decisions, StrategicDecision{
			Action:   StrategicBuild,
			Priority: traits.RiskTolerance * 0.7,
		})
	}

	if c.Cash > 30_000 && traits.MarketManipulation > 0.5 {
		weight := 0.5
		if condition == economy.ConditionBear {
			weight = 0.8
		}
		target := economy.ResourceSteel
		if len(traits.ResourceFocus) > 0 {
			target = traits.ResourceFocus[0]
		}
		decisions = append(decisions, StrategicDecision{
			Action:       StrategicManipulate,
			ResourceType: target,
			Priority:     traits.MarketManipulation * weight,
		})
	}

	if traits.Aggression > 0.6 && playerPower > cp.Power*0.8 {
		priority := traits.Aggression * (playerPower / (cp.Power + 1))
		decisions = append(decisions, StrategicDecision{
			Action:   StrategicSabotage,
			TargetID: "player",
			Priority: math.Min(0.9, priority),
		})
	}

	if c.Cash > 20_000 {
		decisions = append(decisions, StrategicDecision{
			Action:   StrategicInvest,
			Priority: 0.4,
		})
	}

	decisions = append(decisions, StrategicDecision{Action: StrategicIdle, Priority: idlePriority})

	sort.SliceStable(decisions, func(i, j int) bool {
		return decisions[i].Priority > decisions[j].Priority
	})

	if len(decisions) > 1 && rng.Chance(0.2) {
		return decisions[1]
	}
	return decisions[0]
}
