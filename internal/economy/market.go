package economy

import (
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/talgya/oligarchy/internal/entropy"
)

// Price floor and ceiling relative to a resource's base price. Hard
// invariant: current price always stays inside these bounds.
const (
	priceFloorRatio   = 0.1
	priceCeilingRatio = 5.0
)

// maxManipulationSwing caps the effect of one active manipulation at ±20%.
const maxManipulationSwing = 0.2

// ManipulationDirection pushes a price up or down.
type ManipulationDirection string

const (
	ManipulateUp   ManipulationDirection = "up"
	ManipulateDown ManipulationDirection = "down"
)

// PriceEntry holds the market state for a single resource.
type PriceEntry struct {
	ResourceType ResourceType `json:"resource_type"`
	CurrentPrice float64      `json:"current_price"`
	BasePrice    float64      `json:"base_price"`
	Supply       float64      `json:"supply"`
	Demand       float64      `json:"demand"`
	Volatility   float64      `json:"volatility"` // 0-1
	LastUpdate   time.Time    `json:"last_update"`
}

// Manipulation is a time-boxed multiplicative price modifier. Multiple
// simultaneous manipulations on the same resource compound.
type Manipulation struct {
	ResourceType ResourceType          `json:"resource_type"`
	Direction    ManipulationDirection `json:"direction"`
	Strength     float64               `json:"strength"` // 0-1
	ExpiresAt    time.Time             `json:"expires_at"`
}

// MarketState is the per-resource price book plus global modifiers.
type MarketState struct {
	Prices          map[ResourceType]*PriceEntry `json:"prices"`
	GlobalInflation float64                      `json:"global_inflation"`
	Manipulations   map[string]Manipulation      `json:"manipulations"`
}

// NewMarketState seeds every resource at its base price with equal supply
// and demand.
func NewMarketState(now time.Time) *MarketState {
	prices := make(map[ResourceType]*PriceEntry, len(Resources))
	for _, t := range AllResourceTypes() {
		base := BasePrice(t)
		prices[t] = &PriceEntry{
			ResourceType: t,
			CurrentPrice: base,
			BasePrice:    base,
			Supply:       1000,
			Demand:       1000,
			Volatility:   BaseVolatility,
			LastUpdate:   now,
		}
	}
	return &MarketState{
		Prices:          prices,
		GlobalInflation: 1.0,
		Manipulations:   make(map[string]Manipulation),
	}
}

// UpdatePrices recomputes every resource's price from supply/demand
// pressure, volatility noise, inflation, and active manipulations, then
// clamps to [0.1x, 5x] of base.
func (m *MarketState) UpdatePrices(now time.Time, rng entropy.Source) {
	for _, t := range AllResourceTypes() {
		entry, ok := m.Prices[t]
		if !ok {
			continue
		}

		ratio := entry.Demand / (entry.Supply + 1) // +1 avoids division by zero
		price := entry.BasePrice * ratio

		price *= 1 + rng.FloatRange(-entry.Volatility, entry.Volatility)
		price *= m.GlobalInflation

		for _, manip := range m.Manipulations {
			if manip.ResourceType != t || !now.Before(manip.ExpiresAt) {
				continue
			}
			dir := 1.0
			if manip.Direction == ManipulateDown {
				dir = -1.0
			}
			price *= 1 + dir*manip.Strength*maxManipulationSwing
		}

		floor := entry.BasePrice * priceFloorRatio
		ceiling := entry.BasePrice * priceCeilingRatio
		price = math.Max(floor, math.Min(ceiling, price))

		entry.CurrentPrice = math.Round(price)
		entry.LastUpdate = now
	}
}

// Price returns the current price for a resource. Never errors: an
// unknown or missing entry falls back to the catalog base price.
func (m *MarketState) Price(t ResourceType) float64 {
	if entry, ok := m.Prices[t]; ok {
		return entry.CurrentPrice
	}
	return BasePrice(t)
}

// PriceTable snapshots every current price, for the per-tick revenue pass.
func (m *MarketState) PriceTable() map[ResourceType]float64 {
	table := make(map[ResourceType]float64, len(m.Prices))
	for _, t := range AllResourceTypes() {
		table[t] = m.Price(t)
	}
	return table
}

// AdjustSupplyDemand shifts a resource's supply and demand, clamping both
// at zero. Unknown resources are ignored.
func (m *MarketState) AdjustSupplyDemand(t ResourceType, supplyDelta, demandDelta float64) {
	entry, ok := m.Prices[t]
	if !ok {
		return
	}
	entry.Supply = math.Max(0, entry.Supply+supplyDelta)
	entry.Demand = math.Max(0, entry.Demand+demandDelta)
}

// Manipulate inserts a time-boxed price manipulation. Strength is clamped
// to [0,1]; one manipulation moves a price at most 20%.
func (m *MarketState) Manipulate(t ResourceType, dir ManipulationDirection, strength float64, duration time.Duration, now time.Time) {
	m.Manipulations[uuid.NewString()] = Manipulation{
		ResourceType: t,
		Direction:    dir,
		Strength:     math.Min(1, math.Max(0, strength)),
		ExpiresAt:    now.Add(duration),
	}
}

// ExpireManipulations drops manipulations whose window has passed.
// Cleaned lazily each tick before the price update.
func (m *MarketState) ExpireManipulations(now time.Time) {
	for id, manip := range m.Manipulations {
		if !now.Before(manip.ExpiresAt) {
			delete(m.Manipulations, id)
		}
	}
}

// ApplyInflation compounds a rate into the global inflation multiplier.
func (m *MarketState) ApplyInflation(rate float64) {
	m.GlobalInflation *= 1 + rate
}

// BaseVolatility is the quiet-market noise band.
const BaseVolatility = 0.1

// SetVolatility sets every resource's volatility noise band. Events
// raise it; expiry restores BaseVolatility.
func (m *MarketState) SetVolatility(v float64) {
	for _, entry := range m.Prices {
		entry.Volatility = v
	}
}
