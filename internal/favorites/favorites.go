// Package favorites provides the persisted favorite set, keyed by item id.
//
// The set has a lifecycle independent from the record store: it survives
// items being removed and reappearing, and it survives restarts.
package favorites

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS favorites (
	item_id    TEXT PRIMARY KEY,
	created_at TEXT NOT NULL
);
`

// Store is a SQLite-backed favorite set with an in-memory read cache.
type Store struct {
	mu  sync.RWMutex
	db  *sql.DB
	ids map[string]struct{}
}

// Open creates or opens the favorite set database at the provided path.
func Open(dbPath string) (*Store, error) {
	if strings.TrimSpace(dbPath) == "" {
		return nil, fmt.Errorf("favorites: db path cannot be empty")
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("favorites: create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("favorites: open db: %w", err)
	}

	s := &Store{db: db, ids: make(map[string]struct{})}
	if err := s.init(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return s, nil
}

func (s *Store) init() error {
	if _, err := s.db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		return fmt.Errorf("favorites: set busy timeout: %w", err)
	}

	if _, err := s.db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("favorites: create schema: %w", err)
	}

	rows, err := s.db.Query("SELECT item_id FROM favorites")
	if err != nil {
		return fmt.Errorf("favorites: load: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return fmt.Errorf("favorites: scan: %w", err)
		}
		s.ids[id] = struct{}{}
	}
	return rows.Err()
}

// Close closes the underlying database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Has reports whether the item id is in the favorite set.
func (s *Store) Has(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.ids[id]
	return ok
}

// All returns the favorite set as a membership map.
func (s *Store) All() map[string]struct{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]struct{}, len(s.ids))
	for id := range s.ids {
		out[id] = struct{}{}
	}
	return out
}

// Len returns the number of favorited ids.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.ids)
}

// Add puts the item id into the set. Idempotent.
func (s *Store) Add(id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("favorites: item id cannot be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.ids[id]; ok {
		return nil
	}

	now := time.Now().UTC().Format(time.RFC3339)
	if _, err := s.db.Exec(
		"INSERT OR IGNORE INTO favorites (item_id, created_at) VALUES (?, ?)", id, now,
	); err != nil {
		return fmt.Errorf("favorites: add: %w", err)
	}

	s.ids[id] = struct{}{}
	return nil
}

// Remove deletes the item id from the set. Idempotent.
func (s *Store) Remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.ids[id]; !ok {
		return nil
	}

	if _, err := s.db.Exec("DELETE FROM favorites WHERE item_id = ?", id); err != nil {
		return fmt.Errorf("favorites: remove: %w", err)
	}

	delete(s.ids, id)
	return nil
}

// Toggle flips membership of the item id and reports the new state.
func (s *Store) Toggle(id string) (favorited bool, err error) {
	if s.Has(id) {
		return false, s.Remove(id)
	}
	return true, s.Add(id)
}
