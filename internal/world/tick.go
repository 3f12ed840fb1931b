package world

import (
	"math"

	"github.com/talgya/oligarchy/internal/ai"
	"github.com/talgya/oligarchy/internal/economy"
	"github.com/talgya/oligarchy/internal/events"
	"github.com/talgya/oligarchy/internal/media"
	"github.com/talgya/oligarchy/internal/news"
	"github.com/talgya/oligarchy/internal/people"
	"github.com/talgya/oligarchy/internal/politics"
)

// TickOutcome says what a step did, so callers (engine loop, API, live
// stream) can react without inspecting the whole world.
type TickOutcome string

const (
	OutcomeContinued     TickOutcome = "continued"
	OutcomeEventFired    TickOutcome = "event_fired"
	OutcomePhaseAdvanced TickOutcome = "phase_advanced"
	OutcomeSeasonEnded   TickOutcome = "season_ended"
)

// Step advances the world one tick through the full pipeline:
// production and auto-sell, market update, event trigger, AI actions,
// the reaction timer, sentiment drift, tax, bankruptcy, season end.
// An event firing or the reaction window closing short-circuits the
// remainder of the pipeline for that tick.
func (w *World) Step() TickOutcome {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.SeasonEnded {
		return OutcomeSeasonEnded
	}

	now := w.clock()
	w.Tick++

	// Resolution quietly times out back to calm.
	if w.Phase == PhaseResolution && !now.Before(w.resolutionUntil) {
		w.Phase = PhaseCalm
		w.CurrentEvent = nil
	}

	prices := w.Market.PriceTable()

	// 1. Production and auto-sell. Every asset produces, output sells
	// at market immediately, upkeep and debt interest come out of cash.
	totalProduction := map[economy.ResourceType]float64{}
	for _, c := range w.Companies {
		revenue, upkeep, capacity := 0.0, 0.0, 0.0
		for _, a := range w.companyAssets(c) {
			for res, amount := range a.ProductionPerTick {
				if amount > 0 {
					revenue += amount * prices[res]
					totalProduction[res] += amount
					capacity += amount
				}
			}
			upkeep += a.UpkeepCost
		}
		c.ProductionCapacity = capacity

		interest := c.Debt * c.InterestRate / w.cfg.TicksPerYear()
		net := revenue - upkeep - interest
		if interest > c.Cash {
			// Unpayable interest capitalizes into debt.
			c.Debt += interest - c.Cash
		}
		c.Cash = math.Max(0, c.Cash+net)

		// Distress register: broke, or debt more than twice cash.
		if c.Cash <= 0 || (c.Debt > 0 && c.Debt > c.Cash*2) {
			w.DistressTicks[c.ID]++
		} else {
			delete(w.DistressTicks, c.ID)
		}
	}
	for res, amount := range totalProduction {
		w.Market.AdjustSupplyDemand(res, amount, 0)
	}

	// 2. Market and timed-state update. Expired events give back the
	// volatility they injected.
	w.Market.ExpireManipulations(now)
	w.Market.UpdatePrices(now, w.rng)
	w.Government.ExpirePolicies(now)
	w.Media.ExpireCampaigns(now)
	for _, expired := range w.Events.Update(now) {
		if expired.Effects.MarketVolatility > 0 {
			w.Market.SetVolatility(economy.BaseVolatility)
		}
	}

	// 3. Event trigger, only from calm or resolution. A fired event
	// applies its full cascade and ends the tick in shock.
	if (w.Phase == PhaseCalm || w.Phase == PhaseResolution) && w.Events.ShouldTrigger(now, w.rng) {
		if event := w.Events.TriggerRandom(now, w.rng); event != nil {
			w.applyEventEffects(event)
			w.Feed.Add(news.Crisis(event.Title, event.Description, now))
			w.enterShock(event)
			return OutcomeEventFired
		}
	}

	// 4. AI actions. One global gate roll per tick; when it passes,
	// every AI company gets a decision.
	if w.rng.Chance(w.cfg.AIActionChance) {
		w.runAITurn(prices)
	}

	// 5. Reaction timer. While the window is open the world holds its
	// breath: no sentiment drift, tax, or bankruptcy.
	if w.Phase == PhaseReaction {
		w.ReactionTicksRemaining--
		if w.ReactionTicksRemaining <= 0 {
			w.enterResolution(now)
			return OutcomePhaseAdvanced
		}
		return OutcomeContinued
	}

	// 6. Sentiment drift onto reputation.
	for _, c := range w.Companies {
		if impact := w.People.SentimentReputationImpact(c.Industry); impact != 0 {
			c.AdjustReputation(impact)
		}
		c.MediaInfluence = w.Media.CompanyMediaInfluence(c.ID)
	}

	// 7. Tax on production revenue at each company's effective rate.
	for _, c := range w.Companies {
		rate := w.Government.EffectiveTaxRate(c.LobbyingPower)
		productionRevenue := 0.0
		for _, a := range w.companyAssets(c) {
			for res, amount := range a.ProductionPerTick {
				if amount > 0 {
					productionRevenue += amount * prices[res]
				}
			}
		}
		c.Cash = math.Max(0, c.Cash-productionRevenue*rate/100)
	}

	// 8. Bankruptcy. AI companies that stay distressed too long fold;
	// the player survives to limp on.
	survivors := w.Companies[:0]
	for _, c := range w.Companies {
		if w.DistressTicks[c.ID] >= w.cfg.DistressTicks && !c.IsPlayer {
			w.Feed.Add(news.Bankruptcy(c.Name, now))
			for _, id := range c.Assets {
				delete(w.Assets, id)
			}
			delete(w.DistressTicks, c.ID)
			delete(w.Competitors, c.ID)
			continue
		}
		survivors = append(survivors, c)
	}
	w.Companies = survivors

	// 9. Ambient news keeps the feed alive.
	w.Feed.EnsureNotEmpty(w.Companies, economy.Condition(w.Trend.At(w.Tick)), w.Events.LastEventTime, w.rng, now)

	// 10. Season end freezes the world and publishes final rankings.
	if !now.Before(w.SeasonEndsAt) {
		w.SeasonResults = w.rankings()
		w.SeasonEnded = true
		if len(w.SeasonResults) > 0 {
			top := w.SeasonResults[0]
			w.Feed.Add(news.SeasonEnd(top.Company.Name, top.NCP.Total, now))
		}
		return OutcomeSeasonEnded
	}

	return OutcomeContinued
}

// applyEventEffects runs an event's full cross-system cascade.
func (w *World) applyEventEffects(event *events.BigEvent) {
	now := w.clock()
	effects := event.Effects

	// Industry impacts move share prices and reputation.
	for _, c := range w.Companies {
		impact, ok := effects.IndustryImpacts[c.Industry]
		if !ok {
			continue
		}
		c.UpdateSharePrice(economy.SharePriceFactors{
			RevenueChange: impact.RevenueMultiplier - 1,
			EventImpact:   impact.ReputationChange / 100,
		}, w.rng)
		c.AdjustReputation(impact.ReputationChange)
	}

	// Asset efficiency is the primary effect.
	for _, a := range w.Assets {
		if mult, ok := effects.AssetEfficiencyChanges[a.Type]; ok {
			a.ApplyEfficiency(mult)
		}
		if mult, ok := effects.AssetUpkeepChanges[a.Type]; ok {
			a.UpkeepCost = math.Round(a.UpkeepCost * mult)
		}
	}

	if effects.InterestRateChange != 0 {
		for _, c := range w.Companies {
			c.InterestRate *= effects.InterestRateChange
		}
	}
	if effects.InflationChange != 0 {
		w.Market.ApplyInflation(effects.InflationChange)
	}
	if effects.MarketVolatility > 0 {
		w.Market.SetVolatility(effects.MarketVolatility)
	}

	// Price shocks move demand, and the next market update does the rest.
	for res, change := range effects.ResourcePriceChanges {
		delta := 1000.0
		if change < 0 {
			delta = -1000
		}
		w.Market.AdjustSupplyDemand(res, 0, delta)
	}

	if gov := effects.GovernmentReaction; gov != nil {
		if gov.FactionShift != "" {
			w.Government.ShiftFaction(politics.PoliticalFaction(gov.FactionShift), now)
		}
		for _, target := range gov.InvestigationTargets {
			w.Government.StartInvestigation(target, politics.InvestigationAntitrust, "medium", now)
		}
	}

	if sc := effects.SentimentChanges; sc != nil {
		w.People.ApplySentimentDeltas(sc.TrustInCorporations, sc.AngerAtMonopolies,
			sc.EnvironmentalConcern, sc.EconomicOptimism, now)
	}

	if retail := effects.RetailInvestorReaction; retail != nil {
		w.People.UpdateRetailInvestors(people.RetailFactors{
			MarketCrash: retail.RiskAppetiteChange < 0,
			MarketBoom:  retail.RiskAppetiteChange > 0,
		}, now)
	}

	if len(effects.MediaNarratives) > 0 {
		n := effects.MediaNarratives[0]
		w.Media.FrameEvent(event.ID, media.Frame(n.Frame), n.Outlets, now)
	}
}

// runAITurn gives every AI company one decision through the shared
// action primitives.
func (w *World) runAITurn(prices map[economy.ResourceType]float64) {
	now := w.clock()
	for _, c := range w.Companies {
		if c.IsPlayer {
			continue
		}
		decision := ai.DecideAction(c, w.companyAssets(c), prices)
		switch decision.Action {
		case ai.ActionBuild:
			cost := economy.BuildCost(decision.AssetType, 1)
			if c.Cash < cost {
				continue
			}
			a := economy.NewAsset(decision.AssetType, 1, 1.0, now)
			w.Assets[a.ID] = a
			c.Assets = append(c.Assets, a.ID)
			c.Cash -= cost
			w.Feed.Add(news.AIAction(c.Name, c.ID,
				"built a new "+economy.AssetDefinitions[decision.AssetType].Name, now))

		case ai.ActionUpgrade:
			a, ok := w.Assets[decision.AssetID]
			if !ok || a.Level >= economy.MaxAssetLevel {
				continue
			}
			cost := economy.UpgradeCost(a)
			if c.Cash < cost {
				continue
			}
			a.Upgrade()
			c.Cash -= cost

		case ai.ActionShutdown:
			if !c.OwnsAsset(decision.AssetID) {
				continue
			}
			delete(w.Assets, decision.AssetID)
			c.RemoveAsset(decision.AssetID)

		case ai.ActionLoan:
			amount := decision.LoanAmount
			if limit := ai.MaxLoan(c); amount > limit {
				amount = limit
			}
			c.Cash += amount
			c.Debt += amount
		}

		if cp, ok := w.Competitors[c.ID]; ok {
			cp.LastActionTime = now
		}
	}
}
