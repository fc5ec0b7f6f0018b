// Package blacklist persists content hashes of pronunciations the user
// never wants to see again. Sources consult the store before returning a
// candidate, so a blacklisted download is suppressed rather than reviewed.
package blacklist

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Store is a persistent set of content hashes backed by SQLite.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) a blacklist database at path.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create blacklist directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open blacklist: %w", err)
	}

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS blacklist (
		hash  text PRIMARY KEY,
		added integer NOT NULL
	)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create blacklist table: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Contains reports whether hash has been blacklisted.
func (s *Store) Contains(hash string) (bool, error) {
	if hash == "" {
		return false, nil
	}
	var one int
	err := s.db.QueryRow(`SELECT 1 FROM blacklist WHERE hash = ?`, hash).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to query blacklist: %w", err)
	}
	return true, nil
}

// Add records hash. Adding the same hash twice is a no-op.
func (s *Store) Add(hash string) error {
	if hash == "" {
		return nil
	}
	_, err := s.db.Exec(
		`INSERT OR IGNORE INTO blacklist (hash, added) VALUES (?, ?)`,
		hash, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("failed to add blacklist entry: %w", err)
	}
	return nil
}
