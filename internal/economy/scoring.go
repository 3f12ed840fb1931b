package economy

import (
	"math"
	"sort"
)

// NCPBreakdown exposes each weighted term of the Net Corporate Power
// composite so dashboards can show where a score comes from.
type NCPBreakdown struct {
	Cash               float64 `json:"cash"`
	AssetValue         float64 `json:"asset_value"`
	MarketCap          float64 `json:"market_cap"`
	ProductionCapacity float64 `json:"production_capacity"`
	MarketShare        float64 `json:"market_share"`
	LobbyingPower      float64 `json:"lobbying_power"`
	MediaInfluence     float64 `json:"media_influence"`
	AllianceStrength   float64 `json:"alliance_strength"`
	Total              float64 `json:"total"`
}

// CalculateNCP computes the Net Corporate Power composite. Pure: given
// identical inputs it returns identical output.
//
// Cash counts 1:1 but is capped at 10M for scoring so a hoarder cannot
// outrank an operator.
func CalculateNCP(
	c *Company,
	assetValues map[string]float64,
	marketShare map[string]float64, // industry -> share %
	allianceStrength float64,
) NCPBreakdown {
	cashComponent := math.Min(c.Cash, 10_000_000) * 0.1

	assetValue := 0.0
	for _, assetID := range c.Assets {
		assetValue += assetValues[assetID]
	}
	assetComponent := assetValue * 0.15

	marketCapComponent := c.MarketCap / 1_000_000 * 50 // $1M market cap = 50 NCP

	productionComponent := c.ProductionCapacity * 2

	shareSum := 0.0
	for _, share := range marketShare {
		shareSum += share
	}
	marketShareComponent := shareSum * 10

	lobbyingComponent := c.LobbyingPower * 5
	mediaComponent := c.MediaInfluence * 3
	allianceComponent := allianceStrength * 2

	total := cashComponent + assetComponent + marketCapComponent +
		productionComponent + marketShareComponent +
		lobbyingComponent + mediaComponent + allianceComponent

	return NCPBreakdown{
		Cash:               cashComponent,
		AssetValue:         assetComponent,
		MarketCap:          marketCapComponent,
		ProductionCapacity: productionComponent,
		MarketShare:        marketShareComponent,
		LobbyingPower:      lobbyingComponent,
		MediaInfluence:     mediaComponent,
		AllianceStrength:   allianceComponent,
		Total:              math.Round(total),
	}
}

// CompanyRanking pairs a company with its score and 1-based rank.
type CompanyRanking struct {
	Company *Company     `json:"company"`
	NCP     NCPBreakdown `json:"ncp"`
	Rank    int          `json:"rank"`
}

// RankCompaniesByNCP scores every company and sorts descending by total.
// The sort is stable: equal totals keep their prior relative order.
func RankCompaniesByNCP(
	companies []*Company,
	assetValues map[string]float64,
	marketShares map[string]map[string]float64, // company ID -> industry -> share %
	allianceStrengths map[string]float64,
) []CompanyRanking {
	rankings := make([]CompanyRanking, 0, len(companies))
	for _, c := range companies {
		ncp := CalculateNCP(c, assetValues, marketShares[c.ID], allianceStrengths[c.ID])
		rankings = append(rankings, CompanyRanking{Company: c, NCP: ncp})
	}

	sort.SliceStable(rankings, func(i, j int) bool {
		return rankings[i].NCP.Total > rankings[j].NCP.Total
	})
	for i := range rankings {
		rankings[i].Rank = i + 1
	}
	return rankings
}

// Oligarchs truncates rankings to the top N.
func Oligarchs(rankings []CompanyRanking, topN int) []CompanyRanking {
	if topN > len(rankings) {
		topN = len(rankings)
	}
	return rankings[:topN]
}
