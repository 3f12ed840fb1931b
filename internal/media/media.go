// Package media models outlets, PR campaigns, and narrative control.
// Owning outlets buys narrative power; campaigns trade cash for
// reputation and can backfire.
package media

import (
	"fmt"
	"time"

	"github.com/talgya/oligarchy/internal/entropy"
)

// OutletType classifies a media property.
type OutletType string

const (
	OutletTVNetwork      OutletType = "tv_network"
	OutletNewspaper      OutletType = "newspaper"
	OutletSocialPlatform OutletType = "social_platform"
	OutletNewsAggregator OutletType = "news_aggregator"
	OutletPodcastNetwork OutletType = "podcast_network"
)

// OutletBias is an outlet's editorial leaning.
type OutletBias string

const (
	BiasProBusiness OutletBias = "pro_business"
	BiasNeutral     OutletBias = "neutral"
	BiasPopulist    OutletBias = "populist"
	BiasGreen       OutletBias = "green"
	BiasNationalist OutletBias = "nationalist"
)

// Outlet is a purchasable media property.
type Outlet struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Type      OutletType `json:"type"`
	OwnerID   string     `json:"owner_id,omitempty"`
	Influence float64    `json:"influence"` // 0-100
	Reach     float64    `json:"reach"`     // audience size
	Bias      OutletBias `json:"bias"`
	Price     float64    `json:"price"`
	ForSale   bool       `json:"for_sale"`
}

// CampaignType names what a PR campaign is trying to do.
type CampaignType string

const (
	CampaignReputationBoost CampaignType = "reputation_boost"
	CampaignDamageControl   CampaignType = "damage_control"
	CampaignStockPump       CampaignType = "stock_pump"
	CampaignSentimentShift  CampaignType = "sentiment_shift"
	CampaignGreenwashing    CampaignType = "greenwashing"
)

// CampaignEffect is the payout of a successful campaign.
type CampaignEffect struct {
	ReputationChange  float64 `json:"reputation_change,omitempty"`   // -10..+10
	SentimentShift    float64 `json:"sentiment_shift,omitempty"`     // -1..1
	StockPriceBoost   float64 `json:"stock_price_boost,omitempty"`   // percentage
	PublicTrustChange float64 `json:"public_trust_change,omitempty"` // -5..+5
}

// PRCampaign is a time-boxed narrative push.
type PRCampaign struct {
	ID             string         `json:"id"`
	CompanyID      string         `json:"company_id"`
	OutletID       string         `json:"outlet_id,omitempty"`
	Type           CampaignType   `json:"type"`
	Target         string         `json:"target"` // target company ID, or "self"
	Cost           float64        `json:"cost"`
	StartedAt      time.Time      `json:"started_at"`
	ExpiresAt      time.Time      `json:"expires_at"`
	Effect         CampaignEffect `json:"effect"`
	Active         bool           `json:"active"`
	CanBackfire    bool           `json:"can_backfire"`
	BackfireChance float64        `json:"backfire_chance"` // 0-1
}

// Frame is how an outlet spins an event for the public.
type Frame string

const (
	FrameProBusiness   Frame = "pro_business"
	FrameAntiCorporate Frame = "anti_corporate"
	FrameNeutral       Frame = "neutral"
	FrameCrisis        Frame = "crisis"
	FrameOpportunity   Frame = "opportunity"
)

// NarrativeFrame records which outlets pushed which spin on an event.
type NarrativeFrame struct {
	ID           string   `json:"id"`
	EventID      string   `json:"event_id"`
	Frame        Frame    `json:"frame"`
	Outlets      []string `json:"outlets"`
	PublicImpact float64  `json:"public_impact"` // -1..1
}

// State is the media landscape.
type State struct {
	Outlets         []*Outlet        `json:"outlets"`
	ActiveCampaigns []*PRCampaign    `json:"active_campaigns"`
	NarrativeFrames []NarrativeFrame `json:"narrative_frames"`
	LastUpdate      time.Time        `json:"last_update"`
}

// NewState seeds the landscape with the three founding outlets.
func NewState(now time.Time) *State {
	return &State{
		Outlets: []*Outlet{
			{
				ID:        "outlet-1",
				Name:      "Global News Network",
				Type:      OutletTVNetwork,
				Influence: 80,
				Reach:     1_000_000,
				Bias:      BiasNeutral,
				Price:     50_000_000,
				ForSale:   true,
			},
			{
				ID:        "outlet-2",
				Name:      "Business Times",
				Type:      OutletNewspaper,
				Influence: 60,
				Reach:     500_000,
				Bias:      BiasProBusiness,
				Price:     30_000_000,
				ForSale:   true,
			},
			{
				ID:        "outlet-3",
				Name:      "Social Platform X",
				Type:      OutletSocialPlatform,
				Influence: 70,
				Reach:     2_000_000,
				Bias:      BiasNeutral,
				Price:     80_000_000,
				ForSale:   true,
			},
		},
		ActiveCampaigns: []*PRCampaign{},
		NarrativeFrames: []NarrativeFrame{},
		LastUpdate:      now,
	}
}

// Outlet returns an outlet by ID, or nil.
func (s *State) Outlet(outletID string) *Outlet {
	for _, o := range s.Outlets {
		if o.ID == outletID {
			return o
		}
	}
	return nil
}

// LaunchPRCampaign registers a campaign. The caller has already debited
// the company's cash.
func (s *State) LaunchPRCampaign(c *PRCampaign, now time.Time) {
	c.Active = true
	s.ActiveCampaigns = append(s.ActiveCampaigns, c)
	s.LastUpdate = now
}

// CheckCampaignBackfire rolls whether a campaign blows up in the
// company's face.
func CheckCampaignBackfire(c *PRCampaign, rng entropy.Source) bool {
	if !c.CanBackfire {
		return false
	}
	return rng.Chance(c.BackfireChance)
}

// ExpireCampaigns deactivates campaigns whose window has passed and
// returns the ones that just ended.
func (s *State) ExpireCampaigns(now time.Time) []*PRCampaign {
	var ended []*PRCampaign
	kept := s.ActiveCampaigns[:0]
	for _, c := range s.ActiveCampaigns {
		if now.Before(c.ExpiresAt) {
			kept = append(kept, c)
		} else {
			c.Active = false
			ended = append(ended, c)
		}
	}
	s.ActiveCampaigns = kept
	s.LastUpdate = now
	return ended
}

// AcquireOutlet transfers an outlet to a buyer and takes it off the
// market. Fails if the outlet is unknown or not for sale.
func (s *State) AcquireOutlet(outletID, buyerID string, now time.Time) (*Outlet, error) {
	o := s.Outlet(outletID)
	if o == nil {
		return nil, fmt.Errorf("unknown outlet %q", outletID)
	}
	if !o.ForSale {
		return nil, fmt.Errorf("outlet %q is not for sale", outletID)
	}
	o.OwnerID = buyerID
	o.ForSale = false
	s.LastUpdate = now
	return o, nil
}

// frameImpact maps a frame to its public sentiment impact.
func frameImpact(f Frame) float64 {
	switch f {
	case FrameProBusiness:
		return 0.2
	case FrameAntiCorporate:
		return -0.3
	default:
		return 0
	}
}

// FrameEvent records a narrative push on an event by a set of outlets.
func (s *State) FrameEvent(eventID string, frame Frame, outletIDs []string, now time.Time) NarrativeFrame {
	nf := NarrativeFrame{
		ID:           fmt.Sprintf("frame-%d", now.UnixMilli()),
		EventID:      eventID,
		Frame:        frame,
		Outlets:      outletIDs,
		PublicImpact: frameImpact(frame),
	}
	s.NarrativeFrames = append(s.NarrativeFrames, nf)
	s.LastUpdate = now
	return nf
}

// CompanyMediaInfluence sums the influence of every outlet a company
// owns.
func (s *State) CompanyMediaInfluence(companyID string) float64 {
	total := 0.0
	for _, o := range s.Outlets {
		if o.OwnerID == companyID {
			total += o.Influence
		}
	}
	return total
}
