package economy

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// AssetType identifies a class of production asset.
type AssetType string

const (
	AssetFactory      AssetType = "factory"
	AssetFarm         AssetType = "farm"
	AssetMine         AssetType = "mine"
	AssetRefinery     AssetType = "refinery"
	AssetMediaNetwork AssetType = "media_network"
	AssetDataCenter   AssetType = "data_center"
)

// MaxAssetLevel caps upgrades.
const MaxAssetLevel = 5

// AssetDefinition is the static catalog entry for an asset type.
// Negative production amounts denote consumption (labor, energy).
type AssetDefinition struct {
	Name           string
	BaseBuildCost  float64
	BaseUpkeep     float64
	BaseProduction map[ResourceType]float64
	Industry       string
}

// AssetDefinitions is the asset catalog.
var AssetDefinitions = map[AssetType]AssetDefinition{
	AssetFactory: {
		Name:          "Manufacturing Factory",
		BaseBuildCost: 50_000,
		BaseUpkeep:    2_000,
		BaseProduction: map[ResourceType]float64{
			ResourceChips:  20,
			ResourceLabor:  -10,
			ResourceEnergy: -15,
		},
		Industry: "tech",
	},
	AssetFarm: {
		Name:          "Agricultural Farm",
		BaseBuildCost: 30_000,
		BaseUpkeep:    1_500,
		BaseProduction: map[ResourceType]float64{
			ResourceGrain:  30,
			ResourceLabor:  -8,
			ResourceEnergy: -5,
		},
		Industry: "agriculture",
	},
	AssetMine: {
		Name:          "Mining Operation",
		BaseBuildCost: 40_000,
		BaseUpkeep:    1_800,
		BaseProduction: map[ResourceType]float64{
			ResourceSteel:  25,
			ResourceLabor:  -12,
			ResourceEnergy: -10,
		},
		Industry: "energy",
	},
	AssetRefinery: {
		Name:          "Fuel Refinery",
		BaseBuildCost: 60_000,
		BaseUpkeep:    2_500,
		BaseProduction: map[ResourceType]float64{
			ResourceFuel:   30,
			ResourceLabor:  -15,
			ResourceEnergy: -20,
		},
		Industry: "energy",
	},
	AssetMediaNetwork: {
		Name:          "Media Network",
		BaseBuildCost: 80_000,
		BaseUpkeep:    3_000,
		BaseProduction: map[ResourceType]float64{
			ResourceImpressions: 100,
			ResourceLabor:       -20,
			ResourceEnergy:      -15,
		},
		Industry: "media",
	},
	AssetDataCenter: {
		Name:          "Data Center",
		BaseBuildCost: 100_000,
		BaseUpkeep:    4_000,
		BaseProduction: map[ResourceType]float64{
			ResourceData:   50,
			ResourceLabor:  -5,
			ResourceEnergy: -30,
		},
		Industry: "tech",
	},
}

// AllAssetTypes returns the catalog keys in a stable order.
func AllAssetTypes() []AssetType {
	return []AssetType{
		AssetFactory,
		AssetFarm,
		AssetMine,
		AssetRefinery,
		AssetMediaNetwork,
		AssetDataCenter,
	}
}

// Asset is a production asset owned by exactly one company. The owning
// company lists its ID; the asset itself does not know its owner.
// UpkeepCost and ProductionPerTick are caches derived from
// (type, level, efficiency) — events may rescale them directly.
type Asset struct {
	ID                   string                   `json:"id"`
	Type                 AssetType                `json:"type"`
	Level                int                      `json:"level"` // 1..5, never decremented
	BuildCost            float64                  `json:"build_cost"`
	UpkeepCost           float64                  `json:"upkeep_cost"`
	ProductionPerTick    map[ResourceType]float64 `json:"production_per_tick"`
	Industry             string                   `json:"industry"`
	EfficiencyMultiplier float64                  `json:"efficiency_multiplier"`
	BuiltAt              time.Time                `json:"built_at"`
}

// BuildCost returns the cost to construct an asset of the given type at
// the given level. Cost scales 1.5x per level.
func BuildCost(t AssetType, level int) float64 {
	def, ok := AssetDefinitions[t]
	if !ok {
		return 0
	}
	return math.Round(def.BaseBuildCost * math.Pow(1.5, float64(level-1)))
}

// UpkeepCost returns per-tick upkeep for a type at a level. Upkeep scales
// linearly with level.
func UpkeepCost(t AssetType, level int) float64 {
	def, ok := AssetDefinitions[t]
	if !ok {
		return 0
	}
	return math.Round(def.BaseUpkeep * float64(level))
}

// ProductionPerTick returns the per-resource production vector for a type
// at a level with an efficiency multiplier, rounded per resource.
// Production scales +30% per level over base.
func ProductionPerTick(t AssetType, level int, efficiency float64) map[ResourceType]float64 {
	def, ok := AssetDefinitions[t]
	if !ok {
		return map[ResourceType]float64{}
	}
	levelMult := 1.0 + float64(level-1)*0.3
	total := levelMult * efficiency

	out := make(map[ResourceType]float64, len(def.BaseProduction))
	for res, amount := range def.BaseProduction {
		out[res] = math.Round(amount * total)
	}
	return out
}

// NewAsset constructs an asset from the catalog.
func NewAsset(t AssetType, level int, efficiency float64, now time.Time) *Asset {
	def := AssetDefinitions[t]
	return &Asset{
		ID:                   uuid.NewString(),
		Type:                 t,
		Level:                level,
		BuildCost:            BuildCost(t, level),
		UpkeepCost:           UpkeepCost(t, level),
		ProductionPerTick:    ProductionPerTick(t, level, efficiency),
		Industry:             def.Industry,
		EfficiencyMultiplier: efficiency,
		BuiltAt:              now,
	}
}

// UpgradeCost returns the cost to take an asset to its next level.
func UpgradeCost(a *Asset) float64 {
	return BuildCost(a.Type, a.Level+1) - BuildCost(a.Type, a.Level)
}

// Upgrade raises the asset one level in place, refreshing the cached
// upkeep and production. Levels never decrease.
func (a *Asset) Upgrade() {
	a.Level++
	a.UpkeepCost = UpkeepCost(a.Type, a.Level)
	a.ProductionPerTick = ProductionPerTick(a.Type, a.Level, a.EfficiencyMultiplier)
}

// ApplyEfficiency compounds an event's efficiency change onto the asset
// and rebuilds the production cache from it.
func (a *Asset) ApplyEfficiency(multiplier float64) {
	a.EfficiencyMultiplier *= multiplier
	a.ProductionPerTick = ProductionPerTick(a.Type, a.Level, a.EfficiencyMultiplier)
}

// AssetProfit computes revenue minus upkeep at the given prices. The tick
// loop must never crash on a half-formed asset, so a nil asset or missing
// production map degrades to -upkeep.
func AssetProfit(a *Asset, prices map[ResourceType]float64) float64 {
	if a == nil {
		return 0
	}
	if len(a.ProductionPerTick) == 0 {
		return -a.UpkeepCost
	}

	revenue := 0.0
	for res, amount := range a.ProductionPerTick {
		if amount > 0 {
			revenue += amount * prices[res]
		}
	}
	return revenue - a.UpkeepCost
}
