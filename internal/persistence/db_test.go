package persistence

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/talgya/oligarchy/internal/config"
	"github.com/talgya/oligarchy/internal/entropy"
	"github.com/talgya/oligarchy/internal/news"
	"github.com/talgya/oligarchy/internal/world"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func testSnapshot(t *testing.T) *world.Snapshot {
	t.Helper()
	cfg := config.Default()
	cfg.EventProbability = 0
	cfg.AIActionChance = 0
	cfg.Seed = 3
	w := world.New(cfg, entropy.NewSource(cfg.Seed), nil)
	w.InitializeWorld("Player", "energy")
	w.Step()
	w.Step()
	return w.Export()
}

func TestSnapshotSaveLoad(t *testing.T) {
	db := openTestDB(t)
	snap := testSnapshot(t)

	if err := db.SaveWorldState("test-world", snap); err != nil {
		t.Fatal(err)
	}

	loaded, err := db.LoadWorldState("test-world")
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Tick != snap.Tick {
		t.Errorf("tick = %d, want %d", loaded.Tick, snap.Tick)
	}
	if len(loaded.Companies) != len(snap.Companies) {
		t.Errorf("companies = %d, want %d", len(loaded.Companies), len(snap.Companies))
	}
	if loaded.Companies[0].ID != world.PlayerID {
		t.Errorf("player not first in restored company list")
	}
}

func TestSnapshotReplace(t *testing.T) {
	db := openTestDB(t)
	snap := testSnapshot(t)

	if err := db.SaveWorldState("w", snap); err != nil {
		t.Fatal(err)
	}
	snap.Tick = 99
	if err := db.SaveWorldState("w", snap); err != nil {
		t.Fatal(err)
	}

	loaded, err := db.LoadWorldState("w")
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Tick != 99 {
		t.Errorf("tick = %d, want the replacing save", loaded.Tick)
	}
}

func TestLoadMissingSnapshot(t *testing.T) {
	db := openTestDB(t)
	if _, err := db.LoadWorldState("never-saved"); !errors.Is(err, ErrNoSnapshot) {
		t.Fatalf("err = %v, want ErrNoSnapshot", err)
	}
}

func TestNewsArchive(t *testing.T) {
	db := openTestDB(t)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	items := []news.Item{
		news.Crisis("Oil Shock", "Prices triple overnight.", now),
		news.Bankruptcy("Corp B", now.Add(time.Minute)),
	}
	if err := db.ArchiveNews(items); err != nil {
		t.Fatal(err)
	}
	// Re-archiving the same feed must not duplicate.
	if err := db.ArchiveNews(items); err != nil {
		t.Fatal(err)
	}

	got, err := db.RecentNews(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("archived items = %d, want 2", len(got))
	}
	// Newest first.
	if got[0].ID != items[1].ID {
		t.Errorf("order wrong: first = %s", got[0].Title)
	}
}

func TestMetaRoundTrip(t *testing.T) {
	db := openTestDB(t)
	if err := db.SaveMeta("season", "3"); err != nil {
		t.Fatal(err)
	}
	v, err := db.GetMeta("season")
	if err != nil {
		t.Fatal(err)
	}
	if v != "3" {
		t.Errorf("meta = %q, want 3", v)
	}
}
