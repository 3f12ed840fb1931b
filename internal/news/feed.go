// Package news generates the world's news feed: player and AI actions,
// crises, takeovers, market shifts, plus ambient analyst chatter so the
// feed is never empty.
package news

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/talgya/oligarchy/internal/economy"
	"github.com/talgya/oligarchy/internal/entropy"
)

// Category classifies a news item.
type Category string

const (
	CategoryHeadline     Category = "headline"
	CategoryPlayerAction Category = "player_action"
	CategoryAIAction     Category = "ai_action"
	CategoryMarketShift  Category = "market_shift"
	CategoryCrisis       Category = "crisis"
	CategoryAlliance     Category = "alliance"
	CategoryBetrayal     Category = "betrayal"
	CategoryTakeover     Category = "takeover"
	CategoryScandal      Category = "scandal"
	CategoryAchievement  Category = "achievement"
	CategoryAnalyst      Category = "analyst"
	CategoryRumor        Category = "rumor"
	CategorySentiment    Category = "sentiment"
	CategoryGovernment   Category = "government"
	CategoryMedia        Category = "media"
	CategoryAmbient      Category = "ambient"
)

// Severity ranks how loudly an item should be surfaced.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Item is one news entry.
type Item struct {
	ID         string    `json:"id"`
	Category   Category  `json:"category"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	Timestamp  time.Time `json:"timestamp"`
	Severity   Severity  `json:"severity"`
	RelatedIDs []string  `json:"related_ids"`
}

// Feed is a bounded, newest-first news list.
type Feed struct {
	Items                 []Item        `json:"items"`
	MaxItems              int           `json:"max_items"`
	LastAmbientGeneration time.Time     `json:"last_ambient_generation"`
	AmbientInterval       time.Duration `json:"ambient_interval"`
}

// NewFeed creates a feed keeping the last maxItems entries. Ambient
// filler is generated at most every 30 seconds.
func NewFeed(maxItems int, now time.Time) *Feed {
	if maxItems <= 0 {
		maxItems = 100
	}
	return &Feed{
		Items:                 []Item{},
		MaxItems:              maxItems,
		LastAmbientGeneration: now,
		AmbientInterval:       30 * time.Second,
	}
}

// Add prepends an item and trims the feed to its cap.
func (f *Feed) Add(item Item) {
	f.Items = append([]Item{item}, f.Items...)
	if len(f.Items) > f.MaxItems {
		f.Items = f.Items[:f.MaxItems]
	}
}

// Recent returns the newest items up to limit.
func (f *Feed) Recent(limit int) []Item {
	if limit <= 0 || limit > len(f.Items) {
		limit = len(f.Items)
	}
	return f.Items[:limit]
}

// ByCategory filters the feed.
func (f *Feed) ByCategory(c Category) []Item {
	var out []Item
	for _, item := range f.Items {
		if item.Category == c {
			out = append(out, item)
		}
	}
	return out
}

// Headlines returns the loudest items: explicit headlines plus anything
// high severity.
func (f *Feed) Headlines(limit int) []Item {
	var out []Item
	for _, item := range f.Items {
		if item.Category == CategoryHeadline || item.Severity == SeverityHigh {
			out = append(out, item)
			if len(out) == limit {
				break
			}
		}
	}
	return out
}

func newItem(category Category, title, content string, severity Severity, now time.Time, related ...string) Item {
	if related == nil {
		related = []string{}
	}
	return Item{
		ID:         "news-" + uuid.NewString(),
		Category:   category,
		Title:      title,
		Content:    content,
		Timestamp:  now,
		Severity:   severity,
		RelatedIDs: related,
	}
}

// PlayerAction reports something the player did.
func PlayerAction(playerName, action string, now time.Time) Item {
	return newItem(CategoryPlayerAction,
		fmt.Sprintf("%s %s", playerName, action),
		fmt.Sprintf("%s has %s.", playerName, action),
		SeverityMedium, now, "player")
}

// AIAction reports a competitor move.
func AIAction(aiName, aiID, action string, now time.Time) Item {
	return newItem(CategoryAIAction,
		fmt.Sprintf("%s %s", aiName, action),
		fmt.Sprintf("%s has %s. Market analysts are watching closely.", aiName, action),
		SeverityLow, now, aiID)
}

// MarketShift reports a large price move. Severity scales with the
// magnitude of the move.
func MarketShift(resource economy.ResourceType, up bool, magnitude float64, now time.Time) Item {
	verb, mood := "plummet", "concerned"
	if up {
		verb, mood = "surge", "optimistic"
	}
	severity := SeverityLow
	if magnitude > 0.3 {
		severity = SeverityHigh
	} else if magnitude > 0.15 {
		severity = SeverityMedium
	}
	return newItem(CategoryMarketShift,
		fmt.Sprintf("%s prices %s", resource, verb),
		fmt.Sprintf("%s prices have moved %.0f%%. Traders are %s.", resource, magnitude*100, mood),
		severity, now)
}

// Crisis reports a major event firing.
func Crisis(title, description string, now time.Time) Item {
	return newItem(CategoryCrisis, "BREAKING: "+title, description, SeverityHigh, now)
}

// Takeover reports an acquisition.
func Takeover(acquirerName, targetName string, amount float64, now time.Time) Item {
	content := fmt.Sprintf("%s has successfully acquired %s. The deal was valued at $%.0f.",
		acquirerName, targetName, amount)
	return newItem(CategoryTakeover,
		fmt.Sprintf("%s acquires %s", acquirerName, targetName),
		content, SeverityHigh, now, acquirerName, targetName)
}

// FireSale reports a distressed acquisition at a discount premium.
func FireSale(acquirerName, targetName string, amount float64, now time.Time) Item {
	content := fmt.Sprintf("%s snaps up distressed %s in a fire sale valued at $%.0f.",
		acquirerName, targetName, amount)
	return newItem(CategoryTakeover,
		fmt.Sprintf("%s buys troubled %s", acquirerName, targetName),
		content, SeverityHigh, now, acquirerName, targetName)
}

// Bankruptcy reports a company going under.
func Bankruptcy(companyName string, now time.Time) Item {
	return newItem(CategoryCrisis,
		fmt.Sprintf("%s declares bankruptcy", companyName),
		fmt.Sprintf("%s has collapsed under its debts. Its assets return to the market.", companyName),
		SeverityHigh, now, companyName)
}

// Scandal reports corporate misbehavior coming to light.
func Scandal(companyName, scandalType, description string, now time.Time) Item {
	return newItem(CategoryScandal,
		fmt.Sprintf("%s embroiled in %s scandal", companyName, scandalType),
		description, SeverityHigh, now, companyName)
}

// Government reports a policy or investigation move.
func Government(title, content string, now time.Time) Item {
	return newItem(CategoryGovernment, title, content, SeverityMedium, now)
}

// SeasonEnd reports the final standings.
func SeasonEnd(winnerName string, ncp float64, now time.Time) Item {
	return newItem(CategoryHeadline,
		fmt.Sprintf("Season over: %s reigns", winnerName),
		fmt.Sprintf("%s finishes the season on top with %.0f net corporate power.", winnerName, ncp),
		SeverityHigh, now, winnerName)
}

// ambient text pools, picked by one rng draw each.
var analystLines = [][2]string{
	{"Market Analysts Weigh In", "Industry analysts predict %s in the coming quarter."},
	{"Economic Outlook", "Leading economists suggest a %s outlook for corporate earnings."},
}

var rumorLines = [][2]string{
	{"Insider Leak: Merger Talks?", "Sources suggest potential merger discussions between major players. No official confirmation yet."},
	{"Whispers of Regulatory Changes", "Industry insiders hint at upcoming regulatory shifts. Government officials remain tight-lipped."},
	{"Rumor: Major Investment", "Unconfirmed reports of a massive investment deal in the works. Market watchers are paying close attention."},
}

var companyLines = [][2]string{
	{"%s Expands Operations", "%s announces expansion plans in key markets."},
	{"%s Reports Strong Quarter", "%s shows robust performance despite market conditions."},
	{"%s Leadership Changes", "%s makes strategic leadership appointments."},
}

var sentimentLines = [][2]string{
	{"Retail Investor Sentiment Shifts", "Retail investors show changing risk appetite. Market volatility expected."},
	{"Public Trust in Corporations", "Latest polls show public sentiment toward corporations remains mixed."},
}

func trendWords(condition economy.MarketCondition) (prediction, outlook string) {
	switch condition {
	case economy.ConditionBull:
		return "continued growth", "optimistic"
	case economy.ConditionBear:
		return "a market correction", "cautious"
	default:
		return "stable conditions", "steady"
	}
}

// Ambient generates filler: analyst commentary, a rumor when the world
// has been calm for over a minute, a company puff piece, and a sentiment
// note.
func Ambient(companies []*economy.Company, condition economy.MarketCondition, sinceLastEvent time.Duration, rng entropy.Source, now time.Time) []Item {
	var items []Item

	prediction, outlook := trendWords(condition)
	analyst := entropy.Pick(rng, analystLines)
	fill := prediction
	if analyst[0] == "Economic Outlook" {
		fill = outlook
	}
	items = append(items, newItem(CategoryAnalyst, analyst[0], fmt.Sprintf(analyst[1], fill), SeverityLow, now))

	if sinceLastEvent > time.Minute {
		rumor := entropy.Pick(rng, rumorLines)
		items = append(items, newItem(CategoryRumor, rumor[0], rumor[1], SeverityLow, now))
	}

	if len(companies) > 0 {
		company := entropy.Pick(rng, companies)
		line := entropy.Pick(rng, companyLines)
		items = append(items, newItem(CategoryAmbient,
			fmt.Sprintf(line[0], company.Name),
			fmt.Sprintf(line[1], company.Name),
			SeverityLow, now, company.ID))
	}

	sentiment := entropy.Pick(rng, sentimentLines)
	items = append(items, newItem(CategorySentiment, sentiment[0], sentiment[1], SeverityLow, now))

	return items
}

// EnsureNotEmpty tops up the feed with ambient items when it is empty or
// the ambient interval has elapsed.
func (f *Feed) EnsureNotEmpty(companies []*economy.Company, condition economy.MarketCondition, lastEventTime time.Time, rng entropy.Source, now time.Time) {
	if len(f.Items) > 0 && now.Sub(f.LastAmbientGeneration) <= f.AmbientInterval {
		return
	}
	for _, item := range Ambient(companies, condition, now.Sub(lastEventTime), rng, now) {
		f.Add(item)
	}
	f.LastAmbientGeneration = now
}
