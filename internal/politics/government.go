// Package politics models the government: policy, regulation, lobbying,
// and investigations. The government reacts to events, lobbying spend,
// and public sentiment; its state feeds the per-tick tax pass and the
// merger review.
package politics

import (
	"fmt"
	"math"
	"time"
)

// PoliticalFaction is the bloc currently steering policy.
type PoliticalFaction string

const (
	FactionProBusiness PoliticalFaction = "pro_business"
	FactionPopulist    PoliticalFaction = "populist"
	FactionGreen       PoliticalFaction = "green"
	FactionNationalist PoliticalFaction = "nationalist"
	FactionCentrist    PoliticalFaction = "centrist"
)

// RegulatoryStance summarizes how hard the regulator leans on business.
type RegulatoryStance string

const (
	StanceLaissezFaire RegulatoryStance = "laissez_faire"
	StanceModerate     RegulatoryStance = "moderate"
	StanceStrict       RegulatoryStance = "strict"
)

// PolicyType classifies a policy lever.
type PolicyType string

const (
	PolicyTaxRate       PolicyType = "tax_rate"
	PolicyAntitrust     PolicyType = "antitrust_enforcement"
	PolicySubsidy       PolicyType = "subsidy_program"
	PolicyRegulation    PolicyType = "regulation"
	PolicyTariff        PolicyType = "tariff"
	PolicyInvestigation PolicyType = "investigation"
)

// PolicyEffect is the mechanical payload of one policy. Zero fields are
// inert.
type PolicyEffect struct {
	TaxRateChange        float64 `json:"tax_rate_change,omitempty"` // percentage points
	AntitrustLevel       float64 `json:"antitrust_level,omitempty"` // 0-100
	SubsidyAmount        float64 `json:"subsidy_amount,omitempty"`  // per company per tick
	RegulationStrictness float64 `json:"regulation_strictness,omitempty"`
	TariffRate           float64 `json:"tariff_rate,omitempty"`
	BlocksMergers        bool    `json:"blocks_mergers,omitempty"`
	BreaksMonopolies     bool    `json:"breaks_monopolies,omitempty"`
}

// Policy is an enacted or pending piece of regulation.
type Policy struct {
	ID             string       `json:"id"`
	Type           PolicyType   `json:"type"`
	Name           string       `json:"name"`
	Description    string       `json:"description"`
	TargetIndustry string       `json:"target_industry,omitempty"`
	Effect         PolicyEffect `json:"effect"`
	EnactedAt      time.Time    `json:"enacted_at"`
	ExpiresAt      time.Time    `json:"expires_at,omitempty"` // zero means permanent
	Active         bool         `json:"active"`
}

// InvestigationType names what a company is being investigated for.
type InvestigationType string

const (
	InvestigationAntitrust     InvestigationType = "antitrust"
	InvestigationFraud         InvestigationType = "fraud"
	InvestigationEnvironmental InvestigationType = "environmental"
	InvestigationLabor         InvestigationType = "labor"
)

// Investigation is an open regulatory probe into one company.
type Investigation struct {
	ID              string            `json:"id"`
	TargetCompanyID string            `json:"target_company_id"`
	Type            InvestigationType `json:"type"`
	Severity        string            `json:"severity"` // low/medium/high/critical
	StartedAt       time.Time         `json:"started_at"`
	Progress        float64           `json:"progress"` // 0-100
}

// GovernmentState is the full political world state.
type GovernmentState struct {
	Faction              PoliticalFaction   `json:"faction"`
	RegulatoryStance     RegulatoryStance   `json:"regulatory_stance"`
	TaxRate              float64            `json:"tax_rate"`              // base corporate rate, 0-50
	AntitrustEnforcement float64            `json:"antitrust_enforcement"` // 0-100
	ActivePolicies       []Policy           `json:"active_policies"`
	PendingBills         []Policy           `json:"pending_bills"`
	Investigations       []Investigation    `json:"investigations"`
	LobbyingInfluence    map[string]float64 `json:"lobbying_influence"` // company ID -> 0-100
	LastUpdate           time.Time          `json:"last_update"`
}

// NewGovernmentState starts with a centrist, moderately regulated world.
func NewGovernmentState(now time.Time) *GovernmentState {
	return &GovernmentState{
		Faction:              FactionCentrist,
		RegulatoryStance:     StanceModerate,
		TaxRate:              25,
		AntitrustEnforcement: 30,
		ActivePolicies:       []Policy{},
		PendingBills:         []Policy{},
		Investigations:       []Investigation{},
		LobbyingInfluence:    map[string]float64{},
		LastUpdate:           now,
	}
}

// EnactPolicy adds a policy to the active set.
func (g *GovernmentState) EnactPolicy(p Policy, now time.Time) {
	p.Active = true
	p.EnactedAt = now
	g.ActivePolicies = append(g.ActivePolicies, p)
	g.LastUpdate = now
}

// RepealPolicy removes a policy by ID. Unknown IDs are a no-op.
func (g *GovernmentState) RepealPolicy(policyID string, now time.Time) {
	for i, p := range g.ActivePolicies {
		if p.ID == policyID {
			g.ActivePolicies = append(g.ActivePolicies[:i], g.ActivePolicies[i+1:]...)
			g.LastUpdate = now
			return
		}
	}
}

// ExpirePolicies deactivates temporary policies whose window has passed.
func (g *GovernmentState) ExpirePolicies(now time.Time) {
	kept := g.ActivePolicies[:0]
	for _, p := range g.ActivePolicies {
		if !p.ExpiresAt.IsZero() && !now.Before(p.ExpiresAt) {
			continue
		}
		kept = append(kept, p)
	}
	g.ActivePolicies = kept
}

// UpdateLobbyingInfluence shifts a company's standing, clamped to [0,100].
func (g *GovernmentState) UpdateLobbyingInfluence(companyID string, change float64, now time.Time) {
	current := g.LobbyingInfluence[companyID]
	g.LobbyingInfluence[companyID] = math.Max(0, math.Min(100, current+change))
	g.LastUpdate = now
}

// StartInvestigation opens a probe into a company.
func (g *GovernmentState) StartInvestigation(targetCompanyID string, invType InvestigationType, severity string, now time.Time) Investigation {
	inv := Investigation{
		ID:              fmt.Sprintf("investigation-%d", now.UnixMilli()),
		TargetCompanyID: targetCompanyID,
		Type:            invType,
		Severity:        severity,
		StartedAt:       now,
	}
	g.Investigations = append(g.Investigations, inv)
	g.LastUpdate = now
	return inv
}

// WouldBlockMerger decides whether regulators stop an acquisition.
// Blocked when a merger-blocking policy is live, when enforcement is
// high and the combined share exceeds 40%, or when the combined market
// cap tops $500M under very high enforcement.
func (g *GovernmentState) WouldBlockMerger(acquirerMarketCap, targetMarketCap, combinedMarketShare float64) bool {
	for _, p := range g.ActivePolicies {
		if p.Active && p.Effect.BlocksMergers {
			return true
		}
	}
	if g.AntitrustEnforcement > 50 && combinedMarketShare > 40 {
		return true
	}
	if acquirerMarketCap+targetMarketCap > 500_000_000 && g.AntitrustEnforcement > 70 {
		return true
	}
	return false
}

// EffectiveTaxRate computes one company's rate: base minus a lobbying
// discount (capped at 10 points), plus active policy deltas, clamped to
// [0, 50].
func (g *GovernmentState) EffectiveTaxRate(companyLobbyingInfluence float64) float64 {
	rate := g.TaxRate
	rate -= math.Min(10, companyLobbyingInfluence*0.1)
	for _, p := range g.ActivePolicies {
		if p.Active {
			rate += p.Effect.TaxRateChange
		}
	}
	return math.Max(0, math.Min(50, rate))
}

// ShiftFaction moves power to a new faction and adjusts the regulatory
// stance to match its temperament.
func (g *GovernmentState) ShiftFaction(faction PoliticalFaction, now time.Time) {
	g.Faction = faction
	switch faction {
	case FactionProBusiness:
		g.RegulatoryStance = StanceLaissezFaire
	case FactionPopulist, FactionGreen:
		g.RegulatoryStance = StanceStrict
	default:
		g.RegulatoryStance = StanceModerate
	}
	g.LastUpdate = now
}
