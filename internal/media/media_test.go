package media

import (
	"testing"
	"time"

	"github.com/talgya/oligarchy/internal/entropy"
)

func TestNewStateSeedsOutlets(t *testing.T) {
	s := NewState(time.Now())
	if len(s.Outlets) != 3 {
		t.Fatalf("outlets = %d, want 3", len(s.Outlets))
	}
	for _, o := range s.Outlets {
		if !o.ForSale || o.OwnerID != "" {
			t.Errorf("outlet %s should start unowned and for sale", o.ID)
		}
	}
}

func TestAcquireOutlet(t *testing.T) {
	now := time.Now()
	s := NewState(now)

	o, err := s.AcquireOutlet("outlet-2", "co-1", now)
	if err != nil {
		t.Fatal(err)
	}
	if o.OwnerID != "co-1" || o.ForSale {
		t.Fatalf("acquisition did not transfer: %+v", o)
	}

	// Second buyer gets refused.
	if _, err := s.AcquireOutlet("outlet-2", "co-2", now); err == nil {
		t.Fatalf("sold outlet acquired twice")
	}
	if _, err := s.AcquireOutlet("outlet-99", "co-1", now); err == nil {
		t.Fatalf("unknown outlet acquired")
	}
}

func TestCompanyMediaInfluence(t *testing.T) {
	now := time.Now()
	s := NewState(now)

	if got := s.CompanyMediaInfluence("co-1"); got != 0 {
		t.Fatalf("unowned influence = %.0f, want 0", got)
	}

	s.AcquireOutlet("outlet-1", "co-1", now) // influence 80
	s.AcquireOutlet("outlet-3", "co-1", now) // influence 70
	if got := s.CompanyMediaInfluence("co-1"); got != 150 {
		t.Fatalf("influence = %.0f, want 150", got)
	}
}

func TestCampaignBackfire(t *testing.T) {
	c := &PRCampaign{CanBackfire: true, BackfireChance: 0.3}

	if !CheckCampaignBackfire(c, entropy.Fixed{Value: 0.1}) {
		t.Errorf("roll under chance should backfire")
	}
	if CheckCampaignBackfire(c, entropy.Fixed{Value: 0.9}) {
		t.Errorf("roll over chance should not backfire")
	}

	safe := &PRCampaign{CanBackfire: false, BackfireChance: 1.0}
	if CheckCampaignBackfire(safe, entropy.Fixed{Value: 0}) {
		t.Errorf("non-backfireable campaign backfired")
	}
}

func TestExpireCampaigns(t *testing.T) {
	now := time.Now()
	s := NewState(now)

	short := &PRCampaign{ID: "c-1", ExpiresAt: now.Add(time.Minute)}
	long := &PRCampaign{ID: "c-2", ExpiresAt: now.Add(time.Hour)}
	s.LaunchPRCampaign(short, now)
	s.LaunchPRCampaign(long, now)

	ended := s.ExpireCampaigns(now.Add(2 * time.Minute))
	if len(ended) != 1 || ended[0].ID != "c-1" || ended[0].Active {
		t.Fatalf("unexpected ended campaigns: %d", len(ended))
	}
	if len(s.ActiveCampaigns) != 1 || s.ActiveCampaigns[0].ID != "c-2" {
		t.Fatalf("active list wrong after expiry")
	}
}

func TestFrameImpact(t *testing.T) {
	now := time.Now()
	s := NewState(now)

	cases := []struct {
		frame Frame
		want  float64
	}{
		{FrameProBusiness, 0.2},
		{FrameAntiCorporate, -0.3},
		{FrameNeutral, 0},
		{FrameCrisis, 0},
		{FrameOpportunity, 0},
	}
	for _, tc := range cases {
		nf := s.FrameEvent("event-1", tc.frame, []string{"outlet-1"}, now)
		if nf.PublicImpact != tc.want {
			t.Errorf("frame %s impact = %.1f, want %.1f", tc.frame, nf.PublicImpact, tc.want)
		}
	}
	if len(s.NarrativeFrames) != len(cases) {
		t.Fatalf("frames recorded = %d", len(s.NarrativeFrames))
	}
}
