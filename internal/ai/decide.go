// Package ai is the decision engine for computer-run companies. AI
// companies act through the same primitives as the player: the engine
// only decides what to do, the orchestrator executes it.
package ai

import (
	"sort"

	"github.com/talgya/oligarchy/internal/economy"
)

// Action is what an AI company wants to do this tick.
type Action string

const (
	ActionBuild    Action = "build"
	ActionUpgrade  Action = "upgrade"
	ActionShutdown Action = "shutdown"
	ActionLoan     Action = "loan"
	ActionIdle     Action = "idle"
)

// Decision is one scored option. Priority is an ROI-flavored score; the
// highest wins.
type Decision struct {
	Action     Action
	AssetType  economy.AssetType
	AssetID    string
	LoanAmount float64
	Priority   float64
}

// Cash and debt thresholds for the decision menu.
const (
	buildCashFloor   = 100_000
	loanCashTrigger  = 50_000
	loanRequestCap   = 100_000
	minUpgradeROI    = 0.1
	shutdownLossGate = -1000
	idlePriority     = 0.1
)

// DecideAction scores every available move for one company and returns
// the best. Deterministic given the same state.
func DecideAction(c *economy.Company, assets []*economy.Asset, prices map[economy.ResourceType]float64) Decision {
	var decisions []Decision

	// Build a new asset when flush. Priority is estimated profit per
	// dollar of build cost.
	if c.Cash > buildCashFloor {
		for _, assetType := range economy.AllAssetTypes() {
			buildCost := economy.BuildCost(assetType, 1)
			if c.Cash < buildCost {
				continue
			}
			def := economy.AssetDefinitions[assetType]
			revenue := 0.0
			for res, amount := range def.BaseProduction {
				if amount > 0 {
					revenue += amount * prices[res]
				}
			}
			profit := revenue - def.BaseUpkeep
			if profit > 0 {
				decisions = append(decisions, Decision{
					Action:    ActionBuild,
					AssetType: assetType,
					Priority:  profit / buildCost,
				})
			}
		}
	}

	// Upgrade an existing asset when the marginal profit clears a 10%
	// ROI bar. A level adds roughly 30% profit.
	for _, a := range assets {
		if a.Level >= economy.MaxAssetLevel {
			continue
		}
		upgradeCost := economy.UpgradeCost(a)
		if c.Cash < upgradeCost {
			continue
		}
		profitIncrease := economy.AssetProfit(a, prices) * 0.3
		if profitIncrease > 0 && profitIncrease/upgradeCost > minUpgradeROI {
			decisions = append(decisions, Decision{
				Action:   ActionUpgrade,
				AssetID:  a.ID,
				Priority: profitIncrease / upgradeCost,
			})
		}
	}

	// Borrow when cash runs low but the company has productive assets
	// and is not already over-leveraged.
	if c.Cash < loanCashTrigger && len(assets) > 0 && c.Debt < c.Cash*3 {
		amount := c.Cash * 2
		if amount > loanRequestCap {
			amount = loanRequestCap
		}
		decisions = append(decisions, Decision{
			Action:     ActionLoan,
			LoanAmount: amount,
			Priority:   0.5,
		})
	}

	// Shut down bleeders. Bigger losses, higher priority.
	for _, a := range assets {
		profit := economy.AssetProfit(a, prices)
		if profit < shutdownLossGate {
			decisions = append(decisions, Decision{
				Action:   ActionShutdown,
				AssetID:  a.ID,
				Priority: -profit / 1000,
			})
		}
	}

	decisions = append(decisions, Decision{Action: ActionIdle, Priority: idlePriority})

	sort.SliceStable(decisions, func(i, j int) bool {
		return decisions[i].Priority > decisions[j].Priority
	})
	return decisions[0]
}

// MaxLoan caps a loan at five times cash or $500k, whichever is lower.
func MaxLoan(c *economy.Company) float64 {
	limit := c.Cash * 5
	if limit > 500_000 {
		limit = 500_000
	}
	return limit
}
