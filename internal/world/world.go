// Package world is the orchestrator: it owns every subsystem, runs the
// tick pipeline, and exposes the action surface players and AI
// competitors share.
package world

import (
	"fmt"
	"sync"
	"time"

	"github.com/talgya/oligarchy/internal/ai"
	"github.com/talgya/oligarchy/internal/config"
	"github.com/talgya/oligarchy/internal/economy"
	"github.com/talgya/oligarchy/internal/entropy"
	"github.com/talgya/oligarchy/internal/events"
	"github.com/talgya/oligarchy/internal/media"
	"github.com/talgya/oligarchy/internal/news"
	"github.com/talgya/oligarchy/internal/people"
	"github.com/talgya/oligarchy/internal/politics"
)

// Phase is the world's position in the shock cycle.
type Phase string

const (
	PhaseCalm       Phase = "calm"
	PhaseShock      Phase = "shock"
	PhaseReaction   Phase = "reaction"
	PhaseResolution Phase = "resolution"
)

// PlayerID is the fixed company ID of the human player.
const PlayerID = "player"

// World aggregates every subsystem behind one mutex. All mutation goes
// through methods; the tick loop and the API share the same lock.
type World struct {
	mu    sync.Mutex
	cfg   config.Config
	rng   entropy.Source
	clock func() time.Time

	Companies []*economy.Company
	Assets    map[string]*economy.Asset

	Market      *economy.MarketState
	Trend       *economy.TrendField
	Government  *politics.GovernmentState
	Media       *media.State
	People      *people.State
	Events      *events.Engine
	Feed        *news.Feed
	Competitors map[string]*ai.Competitor

	Phase                  Phase
	CurrentEvent           *events.BigEvent
	ReactionTicksRemaining int
	PlayerActionPoints     int
	resolutionUntil        time.Time

	DistressTicks map[string]int

	Tick          uint64
	SeasonEndsAt  time.Time
	SeasonEnded   bool
	SeasonResults []economy.CompanyRanking
}

// New creates an empty world. Call InitializeWorld (fresh start) or
// restore a snapshot before ticking.
func New(cfg config.Config, rng entropy.Source, clock func() time.Time) *World {
	if clock == nil {
		clock = time.Now
	}
	return &World{
		cfg:           cfg,
		rng:           rng,
		clock:         clock,
		Assets:        map[string]*economy.Asset{},
		Competitors:   map[string]*ai.Competitor{},
		DistressTicks: map[string]int{},
		Phase:         PhaseCalm,
	}
}

// industries available for company founding.
var industries = []string{"tech", "energy", "agriculture", "media", "finance", "retail"}

// startingAssets maps an industry to the asset types a new company
// opens with.
func startingAssets(industry string) []economy.AssetType {
	switch industry {
	case "tech":
		return []economy.AssetType{economy.AssetDataCenter, economy.AssetFactory}
	case "energy":
		return []economy.AssetType{economy.AssetRefinery, economy.AssetMine}
	case "agriculture":
		return []economy.AssetType{economy.AssetFarm}
	case "media":
		return []economy.AssetType{economy.AssetMediaNetwork}
	case "finance":
		return []economy.AssetType{economy.AssetDataCenter}
	case "retail":
		return []economy.AssetType{economy.AssetFactory}
	default:
		return []economy.AssetType{economy.AssetFactory}
	}
}

// InitializeWorld founds the player company, the AI field, and every
// subsystem at its baseline. Everyone starts with the same capital.
func (w *World) InitializeWorld(playerName, playerIndustry string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	now := w.clock()
	if playerName == "" {
		playerName = "Player"
	}
	if playerIndustry == "" {
		playerIndustry = "tech"
	}

	w.Companies = nil
	w.Assets = map[string]*economy.Asset{}
	w.Competitors = map[string]*ai.Competitor{}
	w.DistressTicks = map[string]int{}

	player := economy.NewCompany(PlayerID, playerName, playerIndustry, PlayerID, true, w.cfg.StartingCash, now)
	w.Companies = append(w.Companies, player)

	personalities := ai.AllPersonalities()
	for i := 0; i < w.cfg.AICompanies; i++ {
		id := fmt.Sprintf("ai-%d", i)
		name := fmt.Sprintf("Corp %c", 'A'+i)
		industry := entropy.Pick(w.rng, industries)

		c := economy.NewCompany(id, name, industry, id, false, w.cfg.StartingCash, now)
		w.Companies = append(w.Companies, c)
		w.Competitors[id] = ai.NewCompetitor(id, personalities[i%len(personalities)], w.cfg.StartingCash, now)
	}

	for _, c := range w.Companies {
		for _, assetType := range startingAssets(c.Industry) {
			a := economy.NewAsset(assetType, 1, 1.0, now)
			w.Assets[a.ID] = a
			c.Assets = append(c.Assets, a.ID)
		}
	}

	w.Market = economy.NewMarketState(now)
	w.Trend = economy.NewTrendField(w.cfg.Seed)
	w.Government = politics.NewGovernmentState(now)
	w.Media = media.NewState(now)
	w.People = people.NewState(now)
	w.Events = events.NewEngine(w.cfg.EventCooldown, w.cfg.EventProbability, now)
	w.Feed = news.NewFeed(100, now)

	w.Phase = PhaseCalm
	w.CurrentEvent = nil
	w.ReactionTicksRemaining = 0
	w.PlayerActionPoints = 0
	w.Tick = 0
	w.SeasonEndsAt = now.Add(w.cfg.SeasonDuration)
	w.SeasonEnded = false
	w.SeasonResults = nil
}

// TickCount returns the tick counter under the lock.
func (w *World) TickCount() uint64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.Tick
}

// Company returns a company by ID, or nil.
func (w *World) company(id string) *economy.Company {
	for _, c := range w.Companies {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// Company is the locked public lookup.
func (w *World) Company(id string) *economy.Company {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.company(id)
}

// Player returns the player company.
func (w *World) Player() *economy.Company {
	return w.Company(PlayerID)
}

// companyAssets resolves a company's asset IDs.
func (w *World) companyAssets(c *economy.Company) []*economy.Asset {
	assets := make([]*economy.Asset, 0, len(c.Assets))
	for _, id := range c.Assets {
		if a, ok := w.Assets[id]; ok {
			assets = append(assets, a)
		}
	}
	return assets
}

// isDistressed reports whether a company is in the distress register.
func (w *World) isDistressed(companyID string) bool {
	_, ok := w.DistressTicks[companyID]
	return ok
}

// DistressedCompanies lists the IDs currently in distress.
func (w *World) DistressedCompanies() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	ids := make([]string, 0, len(w.DistressTicks))
	for _, c := range w.Companies {
		if w.isDistressed(c.ID) {
			ids = append(ids, c.ID)
		}
	}
	return ids
}

// assetValues maps every asset to its valuation. Build cost stands in
// for book value.
func (w *World) assetValues() map[string]float64 {
	values := make(map[string]float64, len(w.Assets))
	for id, a := range w.Assets {
		values[id] = a.BuildCost
	}
	return values
}

// marketShares computes per-industry production share percentages.
func (w *World) marketShares() map[string]map[string]float64 {
	industryProduction := map[string]map[string]float64{}
	for _, c := range w.Companies {
		total := 0.0
		for _, a := range w.companyAssets(c) {
			for _, amount := range a.ProductionPerTick {
				if amount > 0 {
					total += amount
				}
			}
		}
		if industryProduction[c.Industry] == nil {
			industryProduction[c.Industry] = map[string]float64{}
		}
		industryProduction[c.Industry][c.ID] = total
	}

	shares := map[string]map[string]float64{}
	for industry, byCompany := range industryProduction {
		industryTotal := 0.0
		for _, p := range byCompany {
			industryTotal += p
		}
		for companyID, p := range byCompany {
			if shares[companyID] == nil {
				shares[companyID] = map[string]float64{}
			}
			if industryTotal > 0 {
				shares[companyID][industry] = p / industryTotal * 100
			}
		}
	}
	return shares
}

// Rankings scores the current field by net corporate power.
func (w *World) Rankings() []economy.CompanyRanking {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.rankings()
}

func (w *World) rankings() []economy.CompanyRanking {
	return economy.RankCompaniesByNCP(w.Companies, w.assetValues(), w.marketShares(), nil)
}
