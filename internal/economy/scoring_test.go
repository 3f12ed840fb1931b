package economy

import (
	"testing"
	"time"
)

func TestCalculateNCPWeights(t *testing.T) {
	c := newTestCompany()
	c.Cash = 20_000_000 // above the 10M scoring cap
	c.MarketCap = 2_000_000
	c.Assets = []string{"a-1", "a-2"}
	c.ProductionCapacity = 100
	c.LobbyingPower = 20
	c.MediaInfluence = 10

	assetValues := map[string]float64{"a-1": 50_000, "a-2": 150_000}
	shares := map[string]float64{"tech": 30, "media": 10}

	ncp := CalculateNCP(c, assetValues, shares, 5)

	if ncp.Cash != 1_000_000 {
		t.Errorf("cash component %.0f, want capped 1000000", ncp.Cash)
	}
	if ncp.AssetValue != 30_000 {
		t.Errorf("asset component %.0f, want 30000", ncp.AssetValue)
	}
	if ncp.MarketCap != 100 {
		t.Errorf("market cap component %.0f, want 100", ncp.MarketCap)
	}
	if ncp.ProductionCapacity != 200 {
		t.Errorf("production component %.0f, want 200", ncp.ProductionCapacity)
	}
	if ncp.MarketShare != 400 {
		t.Errorf("market share component %.0f, want 400", ncp.MarketShare)
	}
	if ncp.LobbyingPower != 100 || ncp.MediaInfluence != 30 || ncp.AllianceStrength != 10 {
		t.Errorf("influence components %+v", ncp)
	}
	want := 1_000_000 + 30_000 + 100.0 + 200 + 400 + 100 + 30 + 10
	if ncp.Total != want {
		t.Errorf("total %.0f, want %.0f", ncp.Total, want)
	}
}

func TestCalculateNCPDeterministic(t *testing.T) {
	c := newTestCompany()
	c.Assets = []string{"a-1"}
	values := map[string]float64{"a-1": 75_000}

	first := CalculateNCP(c, values, nil, 0)
	second := CalculateNCP(c, values, nil, 0)
	if first != second {
		t.Fatalf("NCP not deterministic: %+v vs %+v", first, second)
	}
}

func TestRankCompaniesByNCP(t *testing.T) {
	now := time.Now()
	rich := NewCompany("co-rich", "Rich Corp", "finance", "ceo-r", false, 5_000_000, now)
	mid := NewCompany("co-mid", "Mid Corp", "tech", "ceo-m", false, 500_000, now)
	poor := NewCompany("co-poor", "Poor Corp", "retail", "ceo-p", false, 5_000, now)

	rankings := RankCompaniesByNCP([]*Company{poor, rich, mid}, nil, nil, nil)

	if rankings[0].Company.ID != "co-rich" || rankings[0].Rank != 1 {
		t.Fatalf("rank 1 = %s", rankings[0].Company.ID)
	}
	if rankings[1].Company.ID != "co-mid" || rankings[1].Rank != 2 {
		t.Fatalf("rank 2 = %s", rankings[1].Company.ID)
	}
	if rankings[2].Company.ID != "co-poor" || rankings[2].Rank != 3 {
		t.Fatalf("rank 3 = %s", rankings[2].Company.ID)
	}
}

func TestRankStableOnTies(t *testing.T) {
	now := time.Now()
	a := NewCompany("co-a", "Alpha", "tech", "ceo-a", false, 100_000, now)
	b := NewCompany("co-b", "Beta", "tech", "ceo-b", false, 100_000, now)

	// Identical inputs, identical scores: input order must survive.
	rankings := RankCompaniesByNCP([]*Company{a, b}, nil, nil, nil)
	if rankings[0].Company.ID != "co-a" || rankings[1].Company.ID != "co-b" {
		t.Fatalf("tie order not stable: %s, %s", rankings[0].Company.ID, rankings[1].Company.ID)
	}
}

func TestOligarchsTruncation(t *testing.T) {
	now := time.Now()
	companies := []*Company{
		NewCompany("1", "One", "tech", "c1", false, 300_000, now),
		NewCompany("2", "Two", "tech", "c2", false, 200_000, now),
		NewCompany("3", "Three", "tech", "c3", false, 100_000, now),
	}
	rankings := RankCompaniesByNCP(companies, nil, nil, nil)

	top := Oligarchs(rankings, 2)
	if len(top) != 2 || top[0].Company.ID != "1" {
		t.Fatalf("unexpected top slice: %d entries", len(top))
	}
	if got := Oligarchs(rankings, 10); len(got) != 3 {
		t.Fatalf("oversized topN not truncated to len: %d", len(got))
	}
}
