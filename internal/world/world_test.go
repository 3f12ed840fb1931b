package world

import (
	"testing"
	"time"

	"github.com/talgya/oligarchy/internal/ai"
	"github.com/talgya/oligarchy/internal/config"
	"github.com/talgya/oligarchy/internal/economy"
	"github.com/talgya/oligarchy/internal/entropy"
)

type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time { return f.now }

func (f *fakeClock) Advance(d time.Duration) { f.now = f.now.Add(d) }

// quietConfig disables stochastic branches so tests drive each system
// explicitly.
func quietConfig() config.Config {
	cfg := config.Default()
	cfg.EventProbability = 0
	cfg.AIActionChance = 0
	cfg.Seed = 7
	return cfg
}

func newTestWorld(cfg config.Config) (*World, *fakeClock) {
	clock := &fakeClock{now: time.Date(2026, 1, 2, 9, 0, 0, 0, time.UTC)}
	w := New(cfg, entropy.NewSource(cfg.Seed), clock.Now)
	w.InitializeWorld("Player", "tech")
	return w, clock
}

// soloWorld strips the AI field so only the player remains.
func soloWorld(cfg config.Config) (*World, *fakeClock) {
	w, clock := newTestWorld(cfg)
	player := w.Companies[0]
	w.Companies = []*economy.Company{player}
	for id := range w.Assets {
		if !player.OwnsAsset(id) {
			delete(w.Assets, id)
		}
	}
	w.Competitors = map[string]*ai.Competitor{}
	return w, clock
}

func TestInitializeWorld(t *testing.T) {
	w, _ := newTestWorld(quietConfig())

	if len(w.Companies) != 6 {
		t.Fatalf("companies = %d, want player + 5 AI", len(w.Companies))
	}
	player := w.Companies[0]
	if !player.IsPlayer || player.ID != PlayerID {
		t.Fatalf("first company is not the player: %+v", player)
	}
	if player.Cash != 100_000 {
		t.Errorf("player cash = %.0f, want 100000", player.Cash)
	}
	// Tech founders open with a data center and a factory.
	if len(player.Assets) != 2 {
		t.Fatalf("player assets = %d, want 2", len(player.Assets))
	}
	types := map[economy.AssetType]bool{}
	for _, id := range player.Assets {
		types[w.Assets[id].Type] = true
	}
	if !types[economy.AssetDataCenter] || !types[economy.AssetFactory] {
		t.Errorf("tech starting assets wrong: %v", types)
	}

	for _, c := range w.Companies[1:] {
		if c.IsPlayer {
			t.Errorf("AI company %s flagged as player", c.ID)
		}
		if c.Cash != 100_000 {
			t.Errorf("%s cash = %.0f, want same capital as player", c.ID, c.Cash)
		}
		if len(c.Assets) == 0 {
			t.Errorf("%s has no starting assets", c.ID)
		}
		if _, ok := w.Competitors[c.ID]; !ok {
			t.Errorf("%s has no personality attached", c.ID)
		}
	}
}

func TestBuildAsset(t *testing.T) {
	w, _ := soloWorld(quietConfig())

	a, err := w.BuildAsset(economy.AssetFactory)
	if err != nil {
		t.Fatal(err)
	}
	player := w.Player()
	if player.Cash != 50_000 {
		t.Errorf("cash after build = %.0f, want 50000", player.Cash)
	}
	if !player.OwnsAsset(a.ID) {
		t.Errorf("built asset not owned")
	}
	if _, ok := w.Assets[a.ID]; !ok {
		t.Errorf("built asset not in world")
	}

	// Second 50k build drains the account; third is refused.
	if _, err := w.BuildAsset(economy.AssetFactory); err != nil {
		t.Fatal(err)
	}
	if _, err := w.BuildAsset(economy.AssetFactory); err != ErrInsufficientCash {
		t.Fatalf("broke build error = %v, want ErrInsufficientCash", err)
	}
}

func TestUpgradeAndShutdown(t *testing.T) {
	w, _ := soloWorld(quietConfig())
	player := w.Player()

	var factoryID string
	for _, id := range player.Assets {
		if w.Assets[id].Type == economy.AssetFactory {
			factoryID = id
		}
	}

	if err := w.UpgradeAsset(factoryID); err != nil {
		t.Fatal(err)
	}
	if w.Assets[factoryID].Level != 2 {
		t.Errorf("level = %d, want 2", w.Assets[factoryID].Level)
	}
	if player.Cash != 75_000 { // 100k - (75k-50k)
		t.Errorf("cash = %.0f, want 75000", player.Cash)
	}

	repBefore := player.Reputation
	if err := w.ShutdownAsset(factoryID); err != nil {
		t.Fatal(err)
	}
	if player.OwnsAsset(factoryID) {
		t.Errorf("asset still owned after shutdown")
	}
	if _, ok := w.Assets[factoryID]; ok {
		t.Errorf("asset still in world after shutdown")
	}
	if player.Reputation != repBefore-2 {
		t.Errorf("shutdown reputation penalty not applied")
	}

	if err := w.UpgradeAsset("nope"); err != ErrUnknownAsset {
		t.Errorf("unknown asset error = %v", err)
	}
}

func TestLoans(t *testing.T) {
	w, _ := soloWorld(quietConfig())
	player := w.Player()

	if err := w.TakeLoan(600_000); err == nil {
		t.Fatalf("loan above the 500k cap accepted")
	}
	if err := w.TakeLoan(200_000); err != nil {
		t.Fatal(err)
	}
	if player.Cash != 300_000 || player.Debt != 200_000 {
		t.Fatalf("after loan: cash %.0f debt %.0f", player.Cash, player.Debt)
	}

	// Over-repayment clears the debt instead of going negative.
	if err := w.RepayLoan(250_000); err != nil {
		t.Fatal(err)
	}
	if player.Debt != 0 {
		t.Errorf("debt = %.0f, want 0", player.Debt)
	}
	if player.Cash != 100_000 {
		t.Errorf("cash = %.0f, want 100000", player.Cash)
	}
}

func TestProductionAndTaxTick(t *testing.T) {
	w, _ := soloWorld(quietConfig())
	player := w.Player()

	// Keep just the factory for arithmetic: 20 chips/tick.
	for _, id := range append([]string(nil), player.Assets...) {
		if w.Assets[id].Type != economy.AssetFactory {
			delete(w.Assets, id)
			player.RemoveAsset(id)
		}
	}

	outcome := w.Step()
	if outcome != OutcomeContinued {
		t.Fatalf("outcome = %s", outcome)
	}

	// Revenue 20 chips x 1200 = 24000, upkeep 2000, no debt.
	// Tax: lobbying 10 gives 25 - 1 = 24% on the 24000 revenue = 5760.
	want := 100_000.0 + 24_000 - 2_000 - 5_760
	if player.Cash != want {
		t.Errorf("cash after tick = %.0f, want %.0f", player.Cash, want)
	}
	if player.ProductionCapacity != 20 {
		t.Errorf("production capacity = %.0f, want 20", player.ProductionCapacity)
	}

	// Sold production raises chip supply.
	if got := w.Market.Prices[economy.ResourceChips].Supply; got != 1020 {
		t.Errorf("chip supply = %.0f, want 1020", got)
	}
}

func TestInterestCapitalizesWhenUnpayable(t *testing.T) {
	cfg := quietConfig()
	cfg.TickInterval = 365 * 24 * time.Hour // one tick = one year, interest bites
	w, _ := soloWorld(cfg)
	player := w.Player()

	// Strip assets: no revenue, no upkeep.
	for _, id := range append([]string(nil), player.Assets...) {
		delete(w.Assets, id)
		player.RemoveAsset(id)
	}
	player.Cash = 1_000
	player.Debt = 100_000 // 12% annual = 12000/tick

	w.Step()

	if player.Cash != 0 {
		t.Errorf("cash = %.0f, want 0", player.Cash)
	}
	// Unpayable portion (12000 - 1000) lands on the debt.
	if player.Debt != 111_000 {
		t.Errorf("debt = %.0f, want 111000", player.Debt)
	}
	if !w.isDistressed(PlayerID) {
		t.Errorf("broke company not marked distressed")
	}
}

func TestBankruptcyRemovesAIOnly(t *testing.T) {
	cfg := quietConfig()
	cfg.DistressTicks = 3
	w, _ := newTestWorld(cfg)

	// Ruin the player and one AI company.
	player := w.Player()
	victim := w.Companies[1]
	for _, c := range []*economy.Company{player, victim} {
		for _, id := range append([]string(nil), c.Assets...) {
			delete(w.Assets, id)
			c.RemoveAsset(id)
		}
		c.Cash = 0
		c.Debt = 500_000
	}

	for i := 0; i < 3; i++ {
		w.Step()
	}

	if w.Company(victim.ID) != nil {
		t.Fatalf("distressed AI company survived past the threshold")
	}
	if w.Player() == nil {
		t.Fatalf("player went bankrupt, players only distress")
	}
	if _, ok := w.Competitors[victim.ID]; ok {
		t.Errorf("bankrupt competitor still registered")
	}
}

func TestSeasonEndFreezesWorld(t *testing.T) {
	cfg := quietConfig()
	w, clock := soloWorld(cfg)

	clock.Advance(cfg.SeasonDuration + time.Second)
	if outcome := w.Step(); outcome != OutcomeSeasonEnded {
		t.Fatalf("outcome = %s, want season_ended", outcome)
	}
	if !w.SeasonEnded || len(w.SeasonResults) == 0 {
		t.Fatalf("season results not published")
	}
	if w.SeasonResults[0].Rank != 1 {
		t.Errorf("winner rank = %d", w.SeasonResults[0].Rank)
	}

	// Frozen: further steps are no-ops and actions are refused.
	if outcome := w.Step(); outcome != OutcomeSeasonEnded {
		t.Errorf("post-season step outcome = %s", outcome)
	}
	if _, err := w.BuildAsset(economy.AssetFarm); err != ErrSeasonOver {
		t.Errorf("post-season build error = %v", err)
	}
}
