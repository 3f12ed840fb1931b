// Package persistence provides SQLite-based world state storage.
package persistence

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/oligarchy/internal/news"
	"github.com/talgya/oligarchy/internal/world"
)

// ErrNoSnapshot means no saved world exists under the requested name.
var ErrNoSnapshot = errors.New("no snapshot found")

// DB wraps a SQLite connection for world state persistence.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS snapshots (
		name TEXT PRIMARY KEY,
		data TEXT NOT NULL,
		tick INTEGER NOT NULL,
		saved_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS news_archive (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		item_id TEXT NOT NULL,
		category TEXT NOT NULL,
		title TEXT NOT NULL,
		content TEXT NOT NULL,
		severity TEXT NOT NULL,
		published_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS world_meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_news_published ON news_archive(published_at);
	CREATE UNIQUE INDEX IF NOT EXISTS idx_news_item ON news_archive(item_id);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// SaveWorldState stores a snapshot as one JSON document under a name.
// Replaces any previous save with the same name.
func (db *DB) SaveWorldState(name string, snap *world.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	_, err = db.conn.Exec(
		"INSERT OR REPLACE INTO snapshots (name, data, tick, saved_at) VALUES (?, ?, ?, ?)",
		name, string(data), snap.Tick, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}

	slog.Info("world state saved", "name", name, "tick", snap.Tick, "companies", len(snap.Companies))
	return nil
}

// LoadWorldState retrieves a named snapshot. Returns ErrNoSnapshot when
// the save does not exist, so callers can fall back to a fresh world.
func (db *DB) LoadWorldState(name string) (*world.Snapshot, error) {
	var data string
	err := db.conn.Get(&data, "SELECT data FROM snapshots WHERE name = ?", name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoSnapshot
	}
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}

	var snap world.Snapshot
	if err := json.Unmarshal([]byte(data), &snap); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}

	slog.Info("world state loaded", "name", name, "tick", snap.Tick)
	return &snap, nil
}

// ArchiveNews appends feed items to the archive. Items already archived
// (by item ID) are skipped, so the caller can pass the whole feed.
func (db *DB) ArchiveNews(items []news.Item) error {
	if len(items) == 0 {
		return nil
	}

	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, item := range items {
		_, err := tx.Exec(
			`INSERT OR IGNORE INTO news_archive
			 (item_id, category, title, content, severity, published_at)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			item.ID, string(item.Category), item.Title, item.Content,
			string(item.Severity), item.Timestamp.UTC().Format(time.RFC3339),
		)
		if err != nil {
			return fmt.Errorf("archive news item %s: %w", item.ID, err)
		}
	}

	return tx.Commit()
}

// RecentNews returns the most recently archived items, newest first.
func (db *DB) RecentNews(limit int) ([]news.Item, error) {
	rows, err := db.conn.Queryx(
		`SELECT item_id, category, title, content, severity, published_at
		 FROM news_archive ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("recent news: %w", err)
	}
	defer rows.Close()

	var items []news.Item
	for rows.Next() {
		var (
			item      news.Item
			category  string
			severity  string
			published string
		)
		if err := rows.Scan(&item.ID, &category, &item.Title, &item.Content, &severity, &published); err != nil {
			return nil, err
		}
		item.Category = news.Category(category)
		item.Severity = news.Severity(severity)
		if ts, err := time.Parse(time.RFC3339, published); err == nil {
			item.Timestamp = ts
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// SaveMeta stores a key-value pair in world metadata.
func (db *DB) SaveMeta(key, value string) error {
	_, err := db.conn.Exec(
		"INSERT OR REPLACE INTO world_meta (key, value) VALUES (?, ?)",
		key, value,
	)
	return err
}

// GetMeta retrieves a metadata value.
func (db *DB) GetMeta(key string) (string, error) {
	var value string
	err := db.conn.Get(&value, "SELECT value FROM world_meta WHERE key = ?", key)
	return value, err
}
