// Package economy provides the market, asset, company equity, and scoring
// systems that the world orchestrator drives each tick.
package economy

// ResourceType identifies a tradeable (or consumed) commodity.
type ResourceType string

const (
	ResourceSteel       ResourceType = "steel"
	ResourceFuel        ResourceType = "fuel"
	ResourceChips       ResourceType = "chips"
	ResourceGrain       ResourceType = "grain"
	ResourceImpressions ResourceType = "media_impressions"
	ResourceData        ResourceType = "data"
	ResourceLabor       ResourceType = "labor"
	ResourceEnergy      ResourceType = "energy"
)

// Resource is a static catalog entry, loaded once and never mutated.
type Resource struct {
	Type      ResourceType
	Name      string
	BasePrice float64
	Unit      string
}

// Resources is the commodity catalog. Labor and energy are consumed by
// assets (negative production) and are never sold.
var Resources = map[ResourceType]Resource{
	ResourceSteel:       {Type: ResourceSteel, Name: "Steel", BasePrice: 500, Unit: "tons"},
	ResourceFuel:        {Type: ResourceFuel, Name: "Fuel", BasePrice: 800, Unit: "barrels"},
	ResourceChips:       {Type: ResourceChips, Name: "Semiconductor Chips", BasePrice: 1200, Unit: "units"},
	ResourceGrain:       {Type: ResourceGrain, Name: "Grain", BasePrice: 300, Unit: "bushels"},
	ResourceImpressions: {Type: ResourceImpressions, Name: "Media Impressions", BasePrice: 100, Unit: "impressions"},
	ResourceData:        {Type: ResourceData, Name: "Data", BasePrice: 2000, Unit: "TB"},
	ResourceLabor:       {Type: ResourceLabor, Name: "Labor", BasePrice: 50, Unit: "hours"},
	ResourceEnergy:      {Type: ResourceEnergy, Name: "Energy", BasePrice: 150, Unit: "MWh"},
}

// AllResourceTypes returns the catalog's keys in a stable order so price
// updates and supply aggregation iterate deterministically.
func AllResourceTypes() []ResourceType {
	return []ResourceType{
		ResourceSteel,
		ResourceFuel,
		ResourceChips,
		ResourceGrain,
		ResourceImpressions,
		ResourceData,
		ResourceLabor,
		ResourceEnergy,
	}
}

// BasePrice returns the catalog base price, or 0 for an unknown type.
func BasePrice(t ResourceType) float64 {
	return Resources[t].BasePrice
}
