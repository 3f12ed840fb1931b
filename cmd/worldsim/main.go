// Command worldsim runs the Oligarchy corporate simulation server.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/talgya/oligarchy/internal/api"
	"github.com/talgya/oligarchy/internal/config"
	"github.com/talgya/oligarchy/internal/engine"
	"github.com/talgya/oligarchy/internal/entropy"
	"github.com/talgya/oligarchy/internal/persistence"
	"github.com/talgya/oligarchy/internal/world"
)

// autosaveEvery is the tick interval between background saves.
const autosaveEvery = 60

func main() {
	configPath := flag.String("config", "config.yaml", "path to YAML config")
	playerName := flag.String("player", "Player", "player company name")
	playerIndustry := flag.String("industry", "tech", "player company industry")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("config load failed", "error", err)
		os.Exit(1)
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	slog.Info("Oligarchy — corporate power simulation",
		"season", cfg.SeasonDuration,
		"tick", cfg.TickInterval,
		"seed", cfg.Seed,
	)

	// ── Database ──────────────────────────────────────────────────────
	os.MkdirAll(filepath.Dir(cfg.DatabasePath), 0755)
	db, err := persistence.Open(cfg.DatabasePath)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	slog.Info("database opened", "path", cfg.DatabasePath)

	// ── Load or Initialize World ─────────────────────────────────────
	w := world.New(cfg, entropy.NewSource(cfg.Seed), nil)

	snap, err := db.LoadWorldState(cfg.StoreName)
	switch {
	case err == nil:
		w.Restore(snap)
		slog.Info("world restored", "tick", snap.Tick, "companies", len(snap.Companies))
	case errors.Is(err, persistence.ErrNoSnapshot):
		w.InitializeWorld(*playerName, *playerIndustry)
		slog.Info("fresh world initialized",
			"player", *playerName,
			"industry", *playerIndustry,
			"ai_companies", cfg.AICompanies,
		)
		if err := db.SaveWorldState(cfg.StoreName, w.Export()); err != nil {
			slog.Error("initial save failed", "error", err)
		}
	default:
		slog.Error("failed to load world state", "error", err)
		os.Exit(1)
	}

	// ── Live stream ───────────────────────────────────────────────────
	hub := api.NewHub()
	go hub.Run()

	// ── Engine ────────────────────────────────────────────────────────
	eng := engine.New(w, cfg.TickInterval)
	eng.OnOutcome = func(tick uint64, outcome world.TickOutcome) {
		if outcome != world.OutcomeContinued {
			hub.Publish(string(outcome), w.Status())
		}
		hub.Publish("tick", map[string]any{
			"tick":  tick,
			"phase": w.CurrentPhase(),
			"news":  w.NewsView(5),
		})

		if tick%autosaveEvery == 0 {
			if err := db.SaveWorldState(cfg.StoreName, w.Export()); err != nil {
				slog.Error("autosave failed", "error", err)
			}
			if err := db.ArchiveNews(w.AllNews()); err != nil {
				slog.Warn("news archive failed", "error", err)
			}
		}
	}

	// ── HTTP API ──────────────────────────────────────────────────────
	adminKey := os.Getenv("OLIGARCHY_ADMIN_KEY")
	if adminKey == "" {
		slog.Warn("OLIGARCHY_ADMIN_KEY not set — action endpoints will be disabled")
	}

	server := &api.Server{
		World:    w,
		Eng:      eng,
		DB:       db,
		Hub:      hub,
		Port:     cfg.APIPort,
		AdminKey: adminKey,
		Store:    cfg.StoreName,
	}
	server.Start()

	// ── Run ───────────────────────────────────────────────────────────
	ctx, cancel := context.WithCancel(context.Background())
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("received signal, shutting down", "signal", sig)
		cancel()
	}()

	fmt.Printf("\nOligarchy is open for business: %d companies on the board.\n", len(w.CompaniesView()))
	fmt.Printf("API: http://localhost:%d/api/v1/status\n", cfg.APIPort)
	fmt.Println("Starting simulation... (Ctrl+C to stop)")

	eng.Run(ctx)

	// Final save on shutdown.
	slog.Info("final save...")
	if err := db.SaveWorldState(cfg.StoreName, w.Export()); err != nil {
		slog.Error("final save failed", "error", err)
	}
	if err := db.ArchiveNews(w.AllNews()); err != nil {
		slog.Warn("final news archive failed", "error", err)
	}

	fmt.Println("Simulation stopped. World state saved.")
}
