package economy

import (
	"math"
	"time"

	"github.com/talgya/oligarchy/internal/entropy"
)

// Standard equity structure for every newly founded company.
const (
	standardTotalShares = 1_000_000
	initialFloatRatio   = 0.3  // 30% free float
	initialInterestRate = 0.12 // 12% annual on debt
	initialReputation   = 50
	initialLobbying     = 10
)

// Company is a player or AI competitor. One canonical schema: cash is
// cash, production is production — no legacy aliases.
type Company struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Industry string `json:"industry"`
	CEOID    string `json:"ceo_id"`
	IsPlayer bool   `json:"is_player"`

	// Equity
	TotalShares  float64            `json:"total_shares"`
	FreeFloat    float64            `json:"free_float"`
	SharePrice   float64            `json:"share_price"`
	MarketCap    float64            `json:"market_cap"`
	Shareholders map[string]float64 `json:"shareholders"` // holder ID -> shares

	// Financials
	Cash         float64 `json:"cash"` // soft floor at 0 via clamping
	Debt         float64 `json:"debt"`
	InterestRate float64 `json:"interest_rate"` // annual

	// Holdings
	Assets    []string                 `json:"assets"` // asset IDs, by reference
	Resources map[ResourceType]float64 `json:"resources"`

	// Influence
	Reputation         float64 `json:"reputation"` // 0-100
	LobbyingPower      float64 `json:"lobbying_power"`
	MediaInfluence     float64 `json:"media_influence"`
	ProductionCapacity float64 `json:"production_capacity"`

	TerritoriesOwned []string `json:"territories_owned"`

	// Status
	IsSubsidiary      bool   `json:"is_subsidiary"`
	ParentCompanyID   string `json:"parent_company_id,omitempty"`
	IsFounderEmeritus bool   `json:"is_founder_emeritus"`

	FoundedAt time.Time `json:"founded_at"`
}

// NewCompany founds a company: 1M shares, 30% float, CEO holding 70%,
// share price seeded so market cap equals starting cash.
func NewCompany(id, name, industry, ceoID string, isPlayer bool, startingCash float64, now time.Time) *Company {
	sharePrice := startingCash / standardTotalShares
	return &Company{
		ID:           id,
		Name:         name,
		Industry:     industry,
		CEOID:        ceoID,
		IsPlayer:     isPlayer,
		TotalShares:  standardTotalShares,
		FreeFloat:    standardTotalShares * initialFloatRatio,
		SharePrice:   sharePrice,
		MarketCap:    sharePrice * standardTotalShares,
		Shareholders: map[string]float64{ceoID: standardTotalShares * (1 - initialFloatRatio)},
		Cash:         startingCash,
		Debt:         0,
		InterestRate: initialInterestRate,
		Assets:       []string{},
		Resources:    map[ResourceType]float64{},
		Reputation:   initialReputation,
		LobbyingPower: initialLobbying,
		FoundedAt:    now,
	}
}

// SharePriceFactors feed one share-price update. Each factor is a signed
// fraction; zero means no contribution.
type SharePriceFactors struct {
	RevenueChange   float64 // 10% revenue change -> 5% price change
	EventImpact     float64 // -1..1
	SentimentImpact float64 // -1..1
	MarketTrend     float64 // -1..1
}

// UpdateSharePrice applies a multiplicative composition of performance
// factors plus a ±2% random walk. The aggregate multiplier is clamped to
// [0.5, 1.5] per call, bounding single-update volatility.
func (c *Company) UpdateSharePrice(f SharePriceFactors, rng entropy.Source) {
	mult := 1.0
	mult *= 1 + f.RevenueChange*0.5
	mult *= 1 + f.EventImpact*0.2
	mult *= 1 + f.SentimentImpact*0.1
	mult *= 1 + f.MarketTrend*0.05

	const volatility = 0.02
	mult *= 1 + (rng.Float()-0.5)*volatility

	mult = math.Max(0.5, math.Min(1.5, mult))

	c.SharePrice *= mult
	c.MarketCap = c.SharePrice * c.TotalShares
}

// HeldShares sums all shareholder positions.
func (c *Company) HeldShares() float64 {
	total := 0.0
	for _, n := range c.Shareholders {
		total += n
	}
	return total
}

// BuyShares moves shares from the free float to a buyer's holding and
// returns the total cost. The caller debits the buyer's cash: this
// function never touches cash. Fails (no mutation) if the float is too
// small.
func (c *Company) BuyShares(buyerID string, shares float64, pricePerShare float64) (cost float64, ok bool) {
	if shares <= 0 || shares > c.FreeFloat {
		return 0, false
	}
	if pricePerShare <= 0 {
		pricePerShare = c.SharePrice
	}
	c.Shareholders[buyerID] += shares
	c.FreeFloat -= shares
	return shares * pricePerShare, true
}

// SellShares returns a holder's shares to the float and reports the sale
// proceeds at the current share price. The caller credits the seller.
func (c *Company) SellShares(sellerID string, shares float64) (proceeds float64, ok bool) {
	held := c.Shareholders[sellerID]
	if shares <= 0 || held < shares {
		return 0, false
	}
	remaining := held - shares
	if remaining <= 0 {
		delete(c.Shareholders, sellerID)
	} else {
		c.Shareholders[sellerID] = remaining
	}
	c.FreeFloat += shares
	return shares * c.SharePrice, true
}

// OwnershipPercentage returns a holder's stake as a 0-100 percentage.
func (c *Company) OwnershipPercentage(holderID string) float64 {
	return c.Shareholders[holderID] / c.TotalShares * 100
}

// AtBuyoutThreshold reports whether a holder controls more than half the
// company.
func (c *Company) AtBuyoutThreshold(holderID string) bool {
	return c.OwnershipPercentage(holderID) > 50
}

// DefaultBuyoutPremium is used when the caller has no distress
// information about the target.
const DefaultBuyoutPremium = 1.3

// BuyoutResult reports the outcome of an executed acquisition.
type BuyoutResult struct {
	Payout          float64
	FounderEmeritus bool
}

// ExecuteBuyout marks the target as a subsidiary under a new CEO and
// returns the payout at the given premium over market cap. The premium
// is chosen by the orchestrator from the target's distress state.
func (c *Company) ExecuteBuyout(acquirerID string, premium float64) BuyoutResult {
	if premium <= 0 {
		premium = DefaultBuyoutPremium
	}
	payout := c.MarketCap * premium

	c.IsSubsidiary = true
	c.ParentCompanyID = acquirerID
	c.CEOID = acquirerID

	emeritus := c.IsPlayer
	if emeritus {
		c.IsFounderEmeritus = true
	}
	return BuyoutResult{Payout: payout, FounderEmeritus: emeritus}
}

// OwnsAsset reports whether the company lists the asset ID.
func (c *Company) OwnsAsset(assetID string) bool {
	for _, id := range c.Assets {
		if id == assetID {
			return true
		}
	}
	return false
}

// RemoveAsset drops an asset ID from the company's list.
func (c *Company) RemoveAsset(assetID string) {
	for i, id := range c.Assets {
		if id == assetID {
			c.Assets = append(c.Assets[:i], c.Assets[i+1:]...)
			return
		}
	}
}

// AdjustReputation applies a delta and clamps to [0, 100].
func (c *Company) AdjustReputation(delta float64) {
	c.Reputation = math.Max(0, math.Min(100, c.Reputation+delta))
}
