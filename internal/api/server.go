// Package api provides the HTTP API for observing and playing the
// world. GET endpoints are public (read-only observation). POST
// endpoints require a bearer token. A websocket stream pushes tick
// summaries and news to connected clients.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/talgya/oligarchy/internal/economy"
	"github.com/talgya/oligarchy/internal/engine"
	"github.com/talgya/oligarchy/internal/media"
	"github.com/talgya/oligarchy/internal/persistence"
	"github.com/talgya/oligarchy/internal/world"
)

// Server serves the world state over HTTP.
type Server struct {
	World    *world.World
	Eng      *engine.Engine
	DB       *persistence.DB
	Hub      *Hub
	Port     int
	AdminKey string // Bearer token for POST endpoints. Empty = POST disabled.
	Store    string // Snapshot name used by the snapshot endpoint.
}

// Start begins serving the HTTP API in a goroutine.
func (s *Server) Start() {
	actionLimiter := NewRateLimiter(120, time.Minute)

	mux := http.NewServeMux()

	// Public endpoints.
	mux.HandleFunc("/api/v1/status", s.handleStatus)
	mux.HandleFunc("/api/v1/companies", s.handleCompanies)
	mux.HandleFunc("/api/v1/company/", s.handleCompanyDetail)
	mux.HandleFunc("/api/v1/market", s.handleMarket)
	mux.HandleFunc("/api/v1/events", s.handleEvents)
	mux.HandleFunc("/api/v1/news", s.handleNews)
	mux.HandleFunc("/api/v1/rankings", s.handleRankings)
	mux.HandleFunc("/api/v1/government", s.handleGovernment)
	mux.HandleFunc("/api/v1/sentiment", s.handleSentiment)
	mux.HandleFunc("/api/v1/media", s.handleMedia)

	// Live stream.
	mux.HandleFunc("/api/v1/ws", func(w http.ResponseWriter, r *http.Request) {
		ServeWs(s.Hub, w, r)
	})

	// Control plane (POST, bearer token).
	mux.HandleFunc("/api/v1/action", s.adminOnly(RateLimitMiddleware(actionLimiter, s.handleAction)))
	mux.HandleFunc("/api/v1/speed", s.adminOnly(s.handleSpeed))
	mux.HandleFunc("/api/v1/snapshot", s.adminOnly(s.handleSnapshot))

	addr := fmt.Sprintf(":%d", s.Port)
	slog.Info("HTTP API starting", "addr", addr, "admin_auth", s.AdminKey != "")

	go func() {
		if err := http.ListenAndServe(addr, mux); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()
}

// checkBearerToken reports whether the request carries the admin token.
func (s *Server) checkBearerToken(r *http.Request) bool {
	auth := r.Header.Get("Authorization")
	return strings.HasPrefix(auth, "Bearer ") && strings.TrimPrefix(auth, "Bearer ") == s.AdminKey
}

// adminOnly wraps a handler to require bearer token auth on POST
// requests. GET requests pass through.
func (s *Server) adminOnly(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			if s.AdminKey == "" {
				http.Error(w, "control endpoints disabled (no admin key set)", http.StatusForbidden)
				return
			}
			if !s.checkBearerToken(r) {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
		}
		next(w, r)
	}
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	status := s.World.Status()
	writeJSON(w, map[string]any{
		"name":   "Oligarchy",
		"speed":  s.Eng.Speed,
		"status": status,
	})
}

func (s *Server) handleCompanies(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.World.CompaniesView())
}

func (s *Server) handleCompanyDetail(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/v1/company/")
	view := s.World.CompanyView(id)
	if view == nil {
		http.Error(w, "company not found", http.StatusNotFound)
		return
	}
	writeJSON(w, view)
}

func (s *Server) handleMarket(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.World.MarketView())
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.World.ActiveEventsView())
}

func (s *Server) handleNews(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if l := r.URL.Query().Get("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil && n > 0 && n <= 500 {
			limit = n
		}
	}

	// The archive serves history beyond the in-memory feed.
	if r.URL.Query().Get("archive") == "true" && s.DB != nil {
		items, err := s.DB.RecentNews(limit)
		if err != nil {
			http.Error(w, "archive unavailable", http.StatusInternalServerError)
			return
		}
		writeJSON(w, items)
		return
	}

	writeJSON(w, s.World.NewsView(limit))
}

func (s *Server) handleRankings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.World.Rankings())
}

func (s *Server) handleGovernment(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.World.Government)
}

func (s *Server) handleSentiment(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.World.People)
}

func (s *Server) handleMedia(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.World.Media)
}

// actionRequest is the envelope for every player move.
type actionRequest struct {
	Type      string  `json:"type"`
	AssetType string  `json:"asset_type,omitempty"`
	AssetID   string  `json:"asset_id,omitempty"`
	CompanyID string  `json:"company_id,omitempty"`
	Resource  string  `json:"resource,omitempty"`
	Amount    float64 `json:"amount,omitempty"`
	Shares    float64 `json:"shares,omitempty"`
	Direction string  `json:"direction,omitempty"`
	Strength  float64 `json:"strength,omitempty"`
	EventID   string  `json:"event_id,omitempty"`
	ChoiceID  string  `json:"choice_id,omitempty"`
	OutletID  string  `json:"outlet_id,omitempty"`
	Campaign  string  `json:"campaign,omitempty"`
}

func (s *Server) handleAction(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req actionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}

	var err error
	switch req.Type {
	case "build_asset":
		_, err = s.World.BuildAsset(economy.AssetType(req.AssetType))
	case "upgrade_asset":
		err = s.World.UpgradeAsset(req.AssetID)
	case "shutdown_asset":
		err = s.World.ShutdownAsset(req.AssetID)
	case "take_loan":
		err = s.World.TakeLoan(req.Amount)
	case "repay_loan":
		err = s.World.RepayLoan(req.Amount)
	case "buy_shares":
		err = s.World.BuyShares(req.CompanyID, req.Shares)
	case "sell_shares":
		err = s.World.SellShares(req.CompanyID, req.Shares)
	case "trade_resource":
		err = s.World.TradeResource(economy.ResourceType(req.Resource), req.Amount, req.CompanyID)
	case "attempt_buyout":
		err = s.World.AttemptBuyout(req.CompanyID)
	case "respond_event":
		err = s.World.RespondToEventChoice(req.EventID, req.ChoiceID)
	case "acknowledge_event":
		err = s.World.AcknowledgeEvent()
	case "acquire_outlet":
		err = s.World.AcquireOutlet(req.OutletID)
	case "launch_pr_campaign":
		err = s.World.LaunchPRCampaign(media.CampaignType(req.Campaign))
	case "lobby":
		err = s.World.Lobby(req.Amount)
	case "launch_manipulation":
		dir := economy.ManipulateUp
		if req.Direction == "down" {
			dir = economy.ManipulateDown
		}
		err = s.World.LaunchManipulation(economy.ResourceType(req.Resource), dir, req.Strength)
	default:
		http.Error(w, fmt.Sprintf("unknown action type %q", req.Type), http.StatusBadRequest)
		return
	}

	if err != nil {
		status := http.StatusUnprocessableEntity
		switch {
		case errors.Is(err, world.ErrUnknownCompany), errors.Is(err, world.ErrUnknownAsset):
			status = http.StatusNotFound
		case errors.Is(err, world.ErrNoActionPoints):
			status = http.StatusTooManyRequests
		}
		http.Error(w, err.Error(), status)
		return
	}

	slog.Info("player action", "type", req.Type)
	writeJSON(w, map[string]any{
		"ok":     true,
		"status": s.World.Status(),
	})
}

func (s *Server) handleSpeed(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodPost {
		var req struct {
			Speed float64 `json:"speed"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if req.Speed < 0 || req.Speed > 100 {
			http.Error(w, "speed must be 0-100", http.StatusBadRequest)
			return
		}
		s.Eng.Speed = req.Speed
		slog.Info("speed changed", "speed", req.Speed)
	}

	writeJSON(w, map[string]float64{"speed": s.Eng.Speed})
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if s.DB == nil {
		http.Error(w, "database not available", http.StatusServiceUnavailable)
		return
	}

	snap := s.World.Export()
	if err := s.DB.SaveWorldState(s.Store, snap); err != nil {
		slog.Error("snapshot save failed", "error", err)
		http.Error(w, "snapshot failed", http.StatusInternalServerError)
		return
	}
	if err := s.DB.ArchiveNews(s.World.AllNews()); err != nil {
		slog.Warn("news archive failed", "error", err)
	}

	writeJSON(w, map[string]any{
		"tick":    snap.Tick,
		"message": "snapshot saved",
	})
}

func writeJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.Encode(data)
}
