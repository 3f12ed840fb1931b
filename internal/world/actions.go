package world

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/talgya/oligarchy/internal/economy"
	"github.com/talgya/oligarchy/internal/media"
	"github.com/talgya/oligarchy/internal/news"
	"github.com/talgya/oligarchy/internal/people"
)

// Action surface shared by the player API and (through the same
// primitives) the AI turn. All methods lock the world and return an
// error describing why a move was refused.

var (
	ErrUnknownCompany   = errors.New("unknown company")
	ErrUnknownAsset     = errors.New("unknown asset")
	ErrNotOwner         = errors.New("company does not own this asset")
	ErrInsufficientCash = errors.New("insufficient cash")
	ErrNoActionPoints   = errors.New("no action points remaining")
	ErrSeasonOver       = errors.New("season has ended")
)

// BuildAsset constructs a new level-1 asset for the player.
func (w *World) BuildAsset(assetType economy.AssetType) (*economy.Asset, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.SeasonEnded {
		return nil, ErrSeasonOver
	}
	c := w.company(PlayerID)
	if c == nil {
		return nil, ErrUnknownCompany
	}
	if _, ok := economy.AssetDefinitions[assetType]; !ok {
		return nil, fmt.Errorf("unknown asset type %q", assetType)
	}

	cost := economy.BuildCost(assetType, 1)
	if c.Cash < cost {
		return nil, ErrInsufficientCash
	}

	now := w.clock()
	a := economy.NewAsset(assetType, 1, 1.0, now)
	w.Assets[a.ID] = a
	c.Assets = append(c.Assets, a.ID)
	c.Cash -= cost

	w.Feed.Add(news.PlayerAction(c.Name, "built a new "+economy.AssetDefinitions[assetType].Name, now))
	return a, nil
}

// UpgradeAsset raises one of the player's assets a level.
func (w *World) UpgradeAsset(assetID string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.SeasonEnded {
		return ErrSeasonOver
	}
	c := w.company(PlayerID)
	if c == nil {
		return ErrUnknownCompany
	}
	a, ok := w.Assets[assetID]
	if !ok {
		return ErrUnknownAsset
	}
	if !c.OwnsAsset(assetID) {
		return ErrNotOwner
	}
	if a.Level >= economy.MaxAssetLevel {
		return fmt.Errorf("asset already at max level %d", economy.MaxAssetLevel)
	}

	cost := economy.UpgradeCost(a)
	if c.Cash < cost {
		return ErrInsufficientCash
	}

	a.Upgrade()
	c.Cash -= cost
	w.Feed.Add(news.PlayerAction(c.Name,
		fmt.Sprintf("upgraded %s to level %d", economy.AssetDefinitions[a.Type].Name, a.Level),
		w.clock()))
	return nil
}

// ShutdownAsset decommissions one of the player's assets. Costs a
// little reputation: closures make local news.
func (w *World) ShutdownAsset(assetID string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.SeasonEnded {
		return ErrSeasonOver
	}
	c := w.company(PlayerID)
	if c == nil {
		return ErrUnknownCompany
	}
	a, ok := w.Assets[assetID]
	if !ok {
		return ErrUnknownAsset
	}
	if !c.OwnsAsset(assetID) {
		return ErrNotOwner
	}

	delete(w.Assets, assetID)
	c.RemoveAsset(assetID)
	c.AdjustReputation(-2)

	w.Feed.Add(news.PlayerAction(c.Name, "shut down "+economy.AssetDefinitions[a.Type].Name, w.clock()))
	return nil
}

// TakeLoan borrows cash against future production. Capped at five times
// current cash or $500k.
func (w *World) TakeLoan(amount float64) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.SeasonEnded {
		return ErrSeasonOver
	}
	c := w.company(PlayerID)
	if c == nil {
		return ErrUnknownCompany
	}
	if amount <= 0 {
		return fmt.Errorf("loan amount must be positive")
	}
	limit := math.Min(c.Cash*5, 500_000)
	if amount > limit {
		return fmt.Errorf("loan exceeds limit of $%.0f", limit)
	}

	c.Cash += amount
	c.Debt += amount
	w.Feed.Add(news.PlayerAction(c.Name, fmt.Sprintf("took out a $%.0f loan", amount), w.clock()))
	return nil
}

// RepayLoan pays down debt. Repaying more than owed clears the debt.
func (w *World) RepayLoan(amount float64) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	c := w.company(PlayerID)
	if c == nil {
		return ErrUnknownCompany
	}
	if amount <= 0 {
		return fmt.Errorf("repayment must be positive")
	}
	if c.Cash < amount {
		return ErrInsufficientCash
	}
	if amount > c.Debt {
		amount = c.Debt
	}

	c.Cash -= amount
	c.Debt = math.Max(0, c.Debt-amount)
	return nil
}

// BuyShares purchases shares of a target company from its free float.
// Consumes an action point during the reaction phase.
func (w *World) BuyShares(targetCompanyID string, shares float64) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.SeasonEnded {
		return ErrSeasonOver
	}
	if !w.spendActionPoint() {
		return ErrNoActionPoints
	}
	buyer := w.company(PlayerID)
	target := w.company(targetCompanyID)
	if buyer == nil || target == nil {
		return ErrUnknownCompany
	}

	cost := shares * target.SharePrice
	if buyer.Cash < cost {
		return ErrInsufficientCash
	}
	if _, ok := target.BuyShares(PlayerID, shares, target.SharePrice); !ok {
		return fmt.Errorf("only %.0f shares in the free float", target.FreeFloat)
	}

	buyer.Cash -= cost
	w.Feed.Add(news.PlayerAction(buyer.Name, "increased stake in "+target.Name, w.clock()))
	return nil
}

// SellShares returns shares of a target company to its float at the
// current price.
func (w *World) SellShares(targetCompanyID string, shares float64) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	seller := w.company(PlayerID)
	target := w.company(targetCompanyID)
	if seller == nil || target == nil {
		return ErrUnknownCompany
	}

	proceeds, ok := target.SellShares(PlayerID, shares)
	if !ok {
		return fmt.Errorf("holding smaller than %v shares", shares)
	}
	seller.Cash += proceeds
	return nil
}

// TradeResource sells the player's resource inventory to another
// company at market price. Consumes an action point during reaction.
func (w *World) TradeResource(resource economy.ResourceType, amount float64, targetCompanyID string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.SeasonEnded {
		return ErrSeasonOver
	}
	if !w.spendActionPoint() {
		return ErrNoActionPoints
	}
	seller := w.company(PlayerID)
	buyer := w.company(targetCompanyID)
	if seller == nil || buyer == nil {
		return ErrUnknownCompany
	}
	if seller.Resources[resource] < amount || amount <= 0 {
		return fmt.Errorf("insufficient %s inventory", resource)
	}

	value := w.Market.Price(resource) * amount
	seller.Resources[resource] -= amount
	seller.Cash += value
	buyer.Resources[resource] += amount
	buyer.Cash = math.Max(0, buyer.Cash-value)
	return nil
}

// BuyoutQuote prices an acquisition: market cap plus asset book value
// minus debt, at a 10% premium for distressed targets and 30% for
// healthy ones.
func (w *World) BuyoutQuote(targetCompanyID string) (cost float64, distressed bool, err error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.buyoutQuote(targetCompanyID)
}

func (w *World) buyoutQuote(targetCompanyID string) (float64, bool, error) {
	target := w.company(targetCompanyID)
	if target == nil {
		return 0, false, ErrUnknownCompany
	}
	assetValue := 0.0
	for _, a := range w.companyAssets(target) {
		assetValue += a.BuildCost
	}
	distressed := w.isDistressed(targetCompanyID)
	premium := 1.3
	if distressed {
		premium = 1.1
	}
	return (target.MarketCap + assetValue - target.Debt) * premium, distressed, nil
}

// AttemptBuyout acquires a target company outright: allowed with
// majority ownership or the cash to cover the quote. The target's
// assets and cash transfer to the player; the target becomes a
// subsidiary. Consumes an action point during reaction.
func (w *World) AttemptBuyout(targetCompanyID string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.SeasonEnded {
		return ErrSeasonOver
	}
	if !w.spendActionPoint() {
		return ErrNoActionPoints
	}
	acquirer := w.company(PlayerID)
	target := w.company(targetCompanyID)
	if acquirer == nil || target == nil {
		return ErrUnknownCompany
	}
	if targetCompanyID == PlayerID {
		return fmt.Errorf("cannot acquire yourself")
	}

	cost, distressed, err := w.buyoutQuote(targetCompanyID)
	if err != nil {
		return err
	}

	majority := target.AtBuyoutThreshold(PlayerID)
	if !majority && acquirer.Cash < cost {
		return ErrInsufficientCash
	}

	premium := 1.3
	if distressed {
		premium = 1.1
	}
	target.ExecuteBuyout(PlayerID, premium)

	// Assets and cash move to the acquirer.
	acquirer.Cash = acquirer.Cash - cost + target.Cash
	target.Cash = 0
	acquirer.Assets = append(acquirer.Assets, target.Assets...)
	target.Assets = nil

	delete(w.DistressTicks, targetCompanyID)

	now := w.clock()
	if distressed {
		w.Feed.Add(news.FireSale(acquirer.Name, target.Name, cost, now))
	} else {
		w.Feed.Add(news.Takeover(acquirer.Name, target.Name, cost, now))
	}
	return nil
}

// RespondToEventChoice applies a decision on the active event and moves
// the world from shock into the reaction window. Only valid while an
// event is live.
func (w *World) RespondToEventChoice(eventID, choiceID string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.CurrentEvent == nil || w.CurrentEvent.ID != eventID {
		return fmt.Errorf("no active event %q", eventID)
	}
	if w.Phase != PhaseShock {
		return fmt.Errorf("event responses only accepted during shock, phase is %s", w.Phase)
	}

	c := w.company(PlayerID)
	for _, choice := range w.CurrentEvent.Decisions {
		if choice.ID != choiceID {
			continue
		}
		if c != nil {
			c.Cash = math.Max(0, c.Cash+choice.CashChange-choice.Cost)
			c.AdjustReputation(choice.ReputationChange)
		}
		break
	}

	w.enterReaction()
	return nil
}

// AcknowledgeEvent moves shock to reaction without picking a decision.
func (w *World) AcknowledgeEvent() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.Phase != PhaseShock {
		return fmt.Errorf("nothing to acknowledge, phase is %s", w.Phase)
	}
	w.enterReaction()
	return nil
}

// AcquireOutlet buys a for-sale media outlet at its listed price. Owned
// outlets add their influence to the company every tick.
func (w *World) AcquireOutlet(outletID string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.SeasonEnded {
		return ErrSeasonOver
	}
	c := w.company(PlayerID)
	if c == nil {
		return ErrUnknownCompany
	}
	outlet := w.Media.Outlet(outletID)
	if outlet == nil {
		return fmt.Errorf("unknown outlet %q", outletID)
	}
	if c.Cash < outlet.Price {
		return ErrInsufficientCash
	}

	now := w.clock()
	if _, err := w.Media.AcquireOutlet(outletID, PlayerID, now); err != nil {
		return err
	}
	c.Cash -= outlet.Price
	c.MediaInfluence = w.Media.CompanyMediaInfluence(PlayerID)

	w.Feed.Add(news.PlayerAction(c.Name, "acquired media outlet "+outlet.Name, now))
	return nil
}

// campaignBlueprints fixes the cost, payout, and backfire odds per
// campaign type.
var campaignBlueprints = map[media.CampaignType]struct {
	Cost     float64
	Duration time.Duration
	Effect   media.CampaignEffect
	Backfire float64
}{
	media.CampaignReputationBoost: {20_000, 2 * time.Minute, media.CampaignEffect{ReputationChange: 5}, 0.10},
	media.CampaignDamageControl:   {30_000, 2 * time.Minute, media.CampaignEffect{ReputationChange: 3, PublicTrustChange: 2}, 0.15},
	media.CampaignStockPump:       {40_000, time.Minute, media.CampaignEffect{StockPriceBoost: 5}, 0.25},
	media.CampaignSentimentShift:  {25_000, 3 * time.Minute, media.CampaignEffect{SentimentShift: 0.2, PublicTrustChange: 1}, 0.10},
	media.CampaignGreenwashing:    {15_000, 2 * time.Minute, media.CampaignEffect{ReputationChange: 4}, 0.30},
}

// LaunchPRCampaign starts a narrative push. A backfired campaign costs
// the same cash and lands as a scandal instead of a boost.
func (w *World) LaunchPRCampaign(campaignType media.CampaignType) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.SeasonEnded {
		return ErrSeasonOver
	}
	c := w.company(PlayerID)
	if c == nil {
		return ErrUnknownCompany
	}
	blueprint, ok := campaignBlueprints[campaignType]
	if !ok {
		return fmt.Errorf("unknown campaign type %q", campaignType)
	}
	if c.Cash < blueprint.Cost {
		return ErrInsufficientCash
	}

	now := w.clock()
	c.Cash -= blueprint.Cost
	campaign := &media.PRCampaign{
		ID:             "campaign-" + fmt.Sprint(now.UnixMilli()),
		CompanyID:      PlayerID,
		Type:           campaignType,
		Target:         "self",
		Cost:           blueprint.Cost,
		StartedAt:      now,
		ExpiresAt:      now.Add(blueprint.Duration),
		Effect:         blueprint.Effect,
		Active:         true,
		CanBackfire:    blueprint.Backfire > 0,
		BackfireChance: blueprint.Backfire,
	}
	w.Media.LaunchPRCampaign(campaign, now)

	if media.CheckCampaignBackfire(campaign, w.rng) {
		c.AdjustReputation(-5)
		w.People.UpdateSentiment(people.SentimentFactors{CorporateScandal: true}, now)
		w.Feed.Add(news.Scandal(c.Name, "astroturfing",
			"Leaked documents expose the company's "+string(campaignType)+" campaign as manufactured.", now))
		return nil
	}

	c.AdjustReputation(campaign.Effect.ReputationChange)
	if campaign.Effect.StockPriceBoost != 0 {
		c.UpdateSharePrice(economy.SharePriceFactors{
			EventImpact: campaign.Effect.StockPriceBoost / 100,
		}, w.rng)
	}
	if trust := campaign.Effect.PublicTrustChange + campaign.Effect.SentimentShift*5; trust != 0 {
		w.People.ApplySentimentDeltas(trust, 0, 0, 0, now)
	}
	w.Feed.Add(news.PlayerAction(c.Name, "launched a "+string(campaignType)+" media campaign", now))
	return nil
}

// Lobby converts cash into political access: 10k buys one point of
// lobbying power, which discounts the effective tax rate.
func (w *World) Lobby(amount float64) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.SeasonEnded {
		return ErrSeasonOver
	}
	c := w.company(PlayerID)
	if c == nil {
		return ErrUnknownCompany
	}
	if amount <= 0 {
		return fmt.Errorf("lobbying spend must be positive")
	}
	if c.Cash < amount {
		return ErrInsufficientCash
	}

	now := w.clock()
	points := amount / 10_000
	c.Cash -= amount
	c.LobbyingPower = math.Min(100, c.LobbyingPower+points)
	w.Government.UpdateLobbyingInfluence(PlayerID, points, now)
	return nil
}

// LaunchManipulation lets the player push a resource price for a
// duration, at a cash cost proportional to strength. Consumes an action
// point during reaction.
func (w *World) LaunchManipulation(resource economy.ResourceType, dir economy.ManipulationDirection, strength float64) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.SeasonEnded {
		return ErrSeasonOver
	}
	if !w.spendActionPoint() {
		return ErrNoActionPoints
	}
	c := w.company(PlayerID)
	if c == nil {
		return ErrUnknownCompany
	}

	cost := 30_000 * strength
	if c.Cash < cost {
		return ErrInsufficientCash
	}
	c.Cash -= cost
	w.Market.Manipulate(resource, dir, strength, w.cfg.EventCooldown, w.clock())
	return nil
}
