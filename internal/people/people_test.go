package people

import (
	"testing"
	"time"
)

func TestNewStateBaselines(t *testing.T) {
	s := NewState(time.Now())

	if s.Sentiment.TrustInCorporations != 50 ||
		s.Sentiment.AngerAtMonopolies != 30 ||
		s.Sentiment.EnvironmentalConcern != 40 ||
		s.Sentiment.Nationalism != 50 ||
		s.Sentiment.EconomicOptimism != 60 {
		t.Fatalf("unexpected sentiment baseline: %+v", s.Sentiment)
	}
	if s.RetailInvestors.RiskAppetite != 50 || s.RetailInvestors.MemeStockMania != 20 {
		t.Fatalf("unexpected retail baseline: %+v", s.RetailInvestors)
	}
}

func TestUpdateSentimentDeltas(t *testing.T) {
	now := time.Now()

	cases := []struct {
		name    string
		factors SentimentFactors
		check   func(PublicSentiment) bool
	}{
		{
			"corporate scandal",
			SentimentFactors{CorporateScandal: true},
			func(s PublicSentiment) bool { return s.TrustInCorporations == 40 && s.AngerAtMonopolies == 35 },
		},
		{
			"monopoly reveal",
			SentimentFactors{MonopolyReveal: true},
			func(s PublicSentiment) bool { return s.AngerAtMonopolies == 45 && s.TrustInCorporations == 45 },
		},
		{
			"environmental disaster",
			SentimentFactors{EnvironmentalDisaster: true},
			func(s PublicSentiment) bool { return s.EnvironmentalConcern == 60 && s.TrustInCorporations == 45 },
		},
		{
			"economic boom",
			SentimentFactors{EconomicBoom: true},
			func(s PublicSentiment) bool { return s.EconomicOptimism == 70 && s.TrustInCorporations == 55 },
		},
		{
			"economic crisis",
			SentimentFactors{EconomicCrisis: true},
			func(s PublicSentiment) bool { return s.EconomicOptimism == 40 && s.TrustInCorporations == 40 },
		},
		{
			"nationalist policy",
			SentimentFactors{NationalistPolicy: true},
			func(s PublicSentiment) bool { return s.Nationalism == 60 },
		},
		{
			"globalist policy",
			SentimentFactors{GlobalistPolicy: true},
			func(s PublicSentiment) bool { return s.Nationalism == 40 },
		},
	}

	for _, tc := range cases {
		s := NewState(now)
		s.UpdateSentiment(tc.factors, now)
		if !tc.check(s.Sentiment) {
			t.Errorf("%s: unexpected sentiment %+v", tc.name, s.Sentiment)
		}
	}
}

func TestSentimentClamps(t *testing.T) {
	now := time.Now()
	s := NewState(now)

	for i := 0; i < 20; i++ {
		s.UpdateSentiment(SentimentFactors{EconomicCrisis: true, MonopolyReveal: true}, now)
	}
	if s.Sentiment.TrustInCorporations != 0 || s.Sentiment.EconomicOptimism != 0 {
		t.Errorf("lower clamp failed: %+v", s.Sentiment)
	}
	if s.Sentiment.AngerAtMonopolies != 100 {
		t.Errorf("upper clamp failed: anger %.0f", s.Sentiment.AngerAtMonopolies)
	}
}

func TestUpdateRetailInvestors(t *testing.T) {
	now := time.Now()
	s := NewState(now)

	s.UpdateRetailInvestors(RetailFactors{MarketCrash: true}, now)
	if s.RetailInvestors.RiskAppetite != 30 || s.RetailInvestors.MemeStockMania != 10 {
		t.Errorf("crash deltas wrong: %+v", s.RetailInvestors)
	}

	s.UpdateRetailInvestors(RetailFactors{MemeStockMoment: true, IndustryHype: "tech"}, now)
	if s.RetailInvestors.MemeStockMania != 40 || s.RetailInvestors.RiskAppetite != 40 {
		t.Errorf("meme deltas wrong: %+v", s.RetailInvestors)
	}
	if s.RetailInvestors.FavoriteIndustries["tech"] != 20 {
		t.Errorf("industry hype = %.0f, want 20", s.RetailInvestors.FavoriteIndustries["tech"])
	}
}

func TestSentimentReputationImpact(t *testing.T) {
	now := time.Now()

	t.Run("neutral world is flat", func(t *testing.T) {
		s := NewState(now)
		if got := s.SentimentReputationImpact("tech"); got != 0 {
			t.Errorf("impact = %.0f, want 0", got)
		}
	})

	t.Run("high trust lifts everyone", func(t *testing.T) {
		s := NewState(now)
		s.Sentiment.TrustInCorporations = 100
		if got := s.SentimentReputationImpact("retail"); got != 5 {
			t.Errorf("impact = %.0f, want 5", got)
		}
	})

	t.Run("industry enthusiasm adds", func(t *testing.T) {
		s := NewState(now)
		s.RetailInvestors.FavoriteIndustries["tech"] = 100
		if got := s.SentimentReputationImpact("tech"); got != 3 {
			t.Errorf("impact = %.0f, want 3", got)
		}
	})

	t.Run("environmental concern drags energy", func(t *testing.T) {
		s := NewState(now)
		s.Sentiment.EnvironmentalConcern = 100
		if got := s.SentimentReputationImpact("energy"); got != -5 {
			t.Errorf("impact = %.0f, want -5", got)
		}
		// Non-energy unaffected by env concern.
		if got := s.SentimentReputationImpact("media"); got != 0 {
			t.Errorf("media impact = %.0f, want 0", got)
		}
	})
}
