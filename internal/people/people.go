// Package people models the public: broad sentiment axes plus the
// retail investor mood. Both feed back into government policy, share
// prices, and company reputation.
package people

import (
	"math"
	"time"
)

// PublicSentiment holds the population's mood on five 0-100 axes.
type PublicSentiment struct {
	TrustInCorporations  float64   `json:"trust_in_corporations"`
	AngerAtMonopolies    float64   `json:"anger_at_monopolies"`
	EnvironmentalConcern float64   `json:"environmental_concern"`
	Nationalism          float64   `json:"nationalism"` // vs globalism
	EconomicOptimism     float64   `json:"economic_optimism"`
	LastUpdate           time.Time `json:"last_update"`
}

// RetailInvestorState is the speculative mood of small investors.
type RetailInvestorState struct {
	RiskAppetite       float64            `json:"risk_appetite"`       // 0-100
	MemeStockMania     float64            `json:"meme_stock_mania"`    // 0-100
	FavoriteIndustries map[string]float64 `json:"favorite_industries"` // industry -> enthusiasm 0-100
	LastUpdate         time.Time          `json:"last_update"`
}

// State is the full people layer.
type State struct {
	Sentiment       PublicSentiment     `json:"sentiment"`
	RetailInvestors RetailInvestorState `json:"retail_investors"`
	LastUpdate      time.Time           `json:"last_update"`
}

// NewState starts the public in a wary but hopeful mood.
func NewState(now time.Time) *State {
	return &State{
		Sentiment: PublicSentiment{
			TrustInCorporations:  50,
			AngerAtMonopolies:    30,
			EnvironmentalConcern: 40,
			Nationalism:          50,
			EconomicOptimism:     60,
			LastUpdate:           now,
		},
		RetailInvestors: RetailInvestorState{
			RiskAppetite:       50,
			MemeStockMania:     20,
			FavoriteIndustries: map[string]float64{},
			LastUpdate:         now,
		},
		LastUpdate: now,
	}
}

func clamp100(v float64) float64 {
	return math.Max(0, math.Min(100, v))
}

// SentimentFactors flag what kind of news just hit the public.
type SentimentFactors struct {
	CorporateScandal      bool
	MonopolyReveal        bool
	EnvironmentalDisaster bool
	EconomicBoom          bool
	EconomicCrisis        bool
	NationalistPolicy     bool
	GlobalistPolicy       bool
}

// UpdateSentiment applies fixed deltas per factor, each axis clamped to
// [0, 100].
func (s *State) UpdateSentiment(f SentimentFactors, now time.Time) {
	sent := &s.Sentiment

	if f.CorporateScandal {
		sent.TrustInCorporations = clamp100(sent.TrustInCorporations - 10)
		sent.AngerAtMonopolies = clamp100(sent.AngerAtMonopolies + 5)
	}
	if f.MonopolyReveal {
		sent.AngerAtMonopolies = clamp100(sent.AngerAtMonopolies + 15)
		sent.TrustInCorporations = clamp100(sent.TrustInCorporations - 5)
	}
	if f.EnvironmentalDisaster {
		sent.EnvironmentalConcern = clamp100(sent.EnvironmentalConcern + 20)
		sent.TrustInCorporations = clamp100(sent.TrustInCorporations - 5)
	}
	if f.EconomicBoom {
		sent.EconomicOptimism = clamp100(sent.EconomicOptimism + 10)
		sent.TrustInCorporations = clamp100(sent.TrustInCorporations + 5)
	}
	if f.EconomicCrisis {
		sent.EconomicOptimism = clamp100(sent.EconomicOptimism - 20)
		sent.TrustInCorporations = clamp100(sent.TrustInCorporations - 10)
	}
	if f.NationalistPolicy {
		sent.Nationalism = clamp100(sent.Nationalism + 10)
	}
	if f.GlobalistPolicy {
		sent.Nationalism = clamp100(sent.Nationalism - 10)
	}

	sent.LastUpdate = now
	s.LastUpdate = now
}

// ApplySentimentDeltas shifts the axes by raw event deltas, clamped.
// Used when an event carries explicit sentiment changes instead of the
// named factor flags.
func (s *State) ApplySentimentDeltas(trust, anger, env, optimism float64, now time.Time) {
	sent := &s.Sentiment
	sent.TrustInCorporations = clamp100(sent.TrustInCorporations + trust)
	sent.AngerAtMonopolies = clamp100(sent.AngerAtMonopolies + anger)
	sent.EnvironmentalConcern = clamp100(sent.EnvironmentalConcern + env)
	sent.EconomicOptimism = clamp100(sent.EconomicOptimism + optimism)
	sent.LastUpdate = now
	s.LastUpdate = now
}

// RetailFactors flag market news that moves small investors.
type RetailFactors struct {
	MarketCrash   bool
	MarketBoom    bool
	MemeStockMoment bool
	IndustryHype  string // industry ID, empty for none
}

// UpdateRetailInvestors applies fixed deltas per factor.
func (s *State) UpdateRetailInvestors(f RetailFactors, now time.Time) {
	retail := &s.RetailInvestors

	if f.MarketCrash {
		retail.RiskAppetite = clamp100(retail.RiskAppetite - 20)
		retail.MemeStockMania = clamp100(retail.MemeStockMania - 10)
	}
	if f.MarketBoom {
		retail.RiskAppetite = clamp100(retail.RiskAppetite + 15)
		retail.MemeStockMania = clamp100(retail.MemeStockMania + 5)
	}
	if f.MemeStockMoment {
		retail.MemeStockMania = clamp100(retail.MemeStockMania + 30)
		retail.RiskAppetite = clamp100(retail.RiskAppetite + 10)
	}
	if f.IndustryHype != "" {
		retail.FavoriteIndustries[f.IndustryHype] = clamp100(retail.FavoriteIndustries[f.IndustryHype] + 20)
	}

	retail.LastUpdate = now
	s.LastUpdate = now
}

// ApplyRetailDeltas shifts retail mood by raw event deltas.
func (s *State) ApplyRetailDeltas(riskAppetite, memeMania float64, industryHype map[string]float64, now time.Time) {
	retail := &s.RetailInvestors
	retail.RiskAppetite = clamp100(retail.RiskAppetite + riskAppetite)
	retail.MemeStockMania = clamp100(retail.MemeStockMania + memeMania)
	for industry, delta := range industryHype {
		retail.FavoriteIndustries[industry] = clamp100(retail.FavoriteIndustries[industry] + delta)
	}
	retail.LastUpdate = now
	s.LastUpdate = now
}

// SentimentReputationImpact computes the per-tick reputation drift the
// public mood exerts on one company. Trust moves everyone; industry
// enthusiasm moves its sector; environmental concern drags energy.
// Returned as a rounded integer delta.
func (s *State) SentimentReputationImpact(companyIndustry string) float64 {
	impact := 0.0

	trustFactor := (s.Sentiment.TrustInCorporations - 50) / 50 // -1..1
	impact += trustFactor * 5

	enthusiasm, ok := s.RetailInvestors.FavoriteIndustries[companyIndustry]
	if !ok {
		enthusiasm = 50
	}
	impact += (enthusiasm - 50) / 50 * 3

	if companyIndustry == "energy" {
		envFactor := (s.Sentiment.EnvironmentalConcern - 50) / 50
		impact -= envFactor * 5
	}

	return math.Round(impact)
}
