package economy

import (
	"testing"
	"time"

	"github.com/talgya/oligarchy/internal/entropy"
)

func newTestCompany() *Company {
	return NewCompany("co-1", "Test Corp", "tech", "ceo-1", true, 100_000, time.Now())
}

func TestNewCompanyEquityStructure(t *testing.T) {
	c := newTestCompany()

	if c.TotalShares != 1_000_000 {
		t.Errorf("total shares = %.0f, want 1000000", c.TotalShares)
	}
	if c.FreeFloat != 300_000 {
		t.Errorf("free float = %.0f, want 300000", c.FreeFloat)
	}
	if c.Shareholders["ceo-1"] != 700_000 {
		t.Errorf("CEO holding = %.0f, want 700000", c.Shareholders["ceo-1"])
	}
	if c.MarketCap != 100_000 {
		t.Errorf("market cap = %.2f, want starting cash 100000", c.MarketCap)
	}
	if c.SharePrice != 0.1 {
		t.Errorf("share price = %.4f, want 0.10", c.SharePrice)
	}
}

func TestShareConservation(t *testing.T) {
	c := newTestCompany()

	if _, ok := c.BuyShares("fund-1", 50_000, 0); !ok {
		t.Fatalf("buy rejected")
	}
	if _, ok := c.SellShares("fund-1", 20_000); !ok {
		t.Fatalf("sell rejected")
	}

	if total := c.HeldShares() + c.FreeFloat; total != c.TotalShares {
		t.Fatalf("share conservation broken: held+float = %.0f, total = %.0f", total, c.TotalShares)
	}
}

func TestBuySharesRespectsFloat(t *testing.T) {
	c := newTestCompany()

	if _, ok := c.BuyShares("fund-1", c.FreeFloat+1, 0); ok {
		t.Fatalf("buy exceeding float should fail")
	}
	if c.FreeFloat != 300_000 {
		t.Fatalf("failed buy mutated float: %.0f", c.FreeFloat)
	}

	cost, ok := c.BuyShares("fund-1", 10_000, 0)
	if !ok {
		t.Fatalf("valid buy rejected")
	}
	if cost != 10_000*c.SharePrice {
		t.Errorf("cost = %.2f, want %.2f", cost, 10_000*c.SharePrice)
	}
}

func TestSellClearsEmptyPositions(t *testing.T) {
	c := newTestCompany()
	c.BuyShares("fund-1", 5_000, 0)
	c.SellShares("fund-1", 5_000)

	if _, exists := c.Shareholders["fund-1"]; exists {
		t.Fatalf("zero position not removed")
	}
}

func TestUpdateSharePriceClampsMultiplier(t *testing.T) {
	c := newTestCompany()
	start := c.SharePrice

	// Absurdly good quarter: raw multiplier far above 1.5.
	c.UpdateSharePrice(SharePriceFactors{
		RevenueChange:   5,
		EventImpact:     1,
		SentimentImpact: 1,
		MarketTrend:     1,
	}, entropy.Fixed{Value: 0.5})

	if got := c.SharePrice; got != start*1.5 {
		t.Errorf("upside clamp: price %.4f, want %.4f", got, start*1.5)
	}

	// Catastrophic quarter clamps at 0.5x.
	start = c.SharePrice
	c.UpdateSharePrice(SharePriceFactors{RevenueChange: -5}, entropy.Fixed{Value: 0.5})
	if got := c.SharePrice; got != start*0.5 {
		t.Errorf("downside clamp: price %.4f, want %.4f", got, start*0.5)
	}

	if c.MarketCap != c.SharePrice*c.TotalShares {
		t.Errorf("market cap out of sync with share price")
	}
}

func TestBuyoutThreshold(t *testing.T) {
	c := newTestCompany()

	if c.AtBuyoutThreshold("fund-1") {
		t.Fatalf("empty holder at threshold")
	}
	c.BuyShares("fund-1", 300_000, 0) // 30%, not enough
	if c.AtBuyoutThreshold("fund-1") {
		t.Fatalf("30%% holder at threshold")
	}
	// CEO holds 70%.
	if !c.AtBuyoutThreshold("ceo-1") {
		t.Fatalf("70%% holder not at threshold")
	}
}

func TestExecuteBuyout(t *testing.T) {
	c := newTestCompany()

	res := c.ExecuteBuyout("acq-1", 1.1)
	if res.Payout != c.MarketCap*1.1 {
		t.Errorf("payout = %.2f, want %.2f", res.Payout, c.MarketCap*1.1)
	}
	if !c.IsSubsidiary || c.ParentCompanyID != "acq-1" || c.CEOID != "acq-1" {
		t.Errorf("buyout did not transfer control: %+v", c)
	}
	if !res.FounderEmeritus || !c.IsFounderEmeritus {
		t.Errorf("player founder should become emeritus")
	}

	ai := NewCompany("co-2", "AI Corp", "energy", "ai-2", false, 100_000, time.Now())
	res = ai.ExecuteBuyout("acq-1", 0) // default premium
	if res.Payout != ai.MarketCap*DefaultBuyoutPremium {
		t.Errorf("default premium payout = %.2f", res.Payout)
	}
	if res.FounderEmeritus {
		t.Errorf("AI founder should not become emeritus")
	}
}

func TestReputationClamp(t *testing.T) {
	c := newTestCompany()
	c.AdjustReputation(1000)
	if c.Reputation != 100 {
		t.Errorf("reputation %.0f, want 100", c.Reputation)
	}
	c.AdjustReputation(-1000)
	if c.Reputation != 0 {
		t.Errorf("reputation %.0f, want 0", c.Reputation)
	}
}

func TestRemoveAsset(t *testing.T) {
	c := newTestCompany()
	c.Assets = []string{"a", "b", "c"}
	c.RemoveAsset("b")

	if c.OwnsAsset("b") {
		t.Fatalf("asset not removed")
	}
	if len(c.Assets) != 2 || !c.OwnsAsset("a") || !c.OwnsAsset("c") {
		t.Fatalf("unexpected asset list: %v", c.Assets)
	}
}
