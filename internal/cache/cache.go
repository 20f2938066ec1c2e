// Package cache stores raw backend responses in SQLite so repeated runs
// over the same word list do not re-invoke models for unchanged tasks.
package cache

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Store is a SQLite-backed response cache. Entries are keyed by a digest
// of the task plus the backend that answered it, so editing a definition
// in the word list naturally invalidates the stale entry.
type Store struct {
	db   *sql.DB
	path string

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// Open opens (or creates) the cache database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open cache db: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping cache db: %w", err)
	}
	s := &Store{db: db, path: path, locks: make(map[string]*sync.Mutex)}
	if err := s.Migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// OpenMemory opens an in-memory store, used by tests and --no-cache runs.
func OpenMemory() (*Store, error) {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("open in-memory cache: %w", err)
	}
	// A second connection to :memory: would see a different database.
	db.SetMaxOpenConns(1)
	s := &Store{db: db, path: ":memory:", locks: make(map[string]*sync.Mutex)}
	if err := s.Migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Migrate creates the schema if it does not exist.
func (s *Store) Migrate() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS responses (
			key        TEXT PRIMARY KEY,
			backend_id TEXT NOT NULL,
			word       TEXT NOT NULL,
			response   TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_responses_word ON responses(word);
	`)
	if err != nil {
		return fmt.Errorf("migrate cache schema: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Key derives the cache key for a task/backend pair.
func Key(word, pos, definition, backendID string) string {
	sum := sha256.Sum256([]byte(word + "|" + pos + "|" + definition + "|" + backendID))
	return hex.EncodeToString(sum[:])
}

// Get returns the cached response for key, if present.
func (s *Store) Get(key string) (string, bool, error) {
	var response string
	err := s.db.QueryRow(`SELECT response FROM responses WHERE key = ?`, key).Scan(&response)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("cache get: %w", err)
	}
	return response, true, nil
}

// Put stores a response, replacing any previous entry for the key.
func (s *Store) Put(key, backendID, word, response string) error {
	_, err := s.db.Exec(`
		INSERT INTO responses (key, backend_id, word, response, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET response = excluded.response, created_at = excluded.created_at
	`, key, backendID, word, response, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("cache put: %w", err)
	}
	return nil
}

// GetOrCompute returns the cached response for key, or invokes compute,
// stores its result, and returns it. Callers computing the same key are
// serialized so a backend is queried at most once per key.
func (s *Store) GetOrCompute(key, backendID, word string, compute func() (string, error)) (string, bool, error) {
	lock := s.keyLock(key)
	lock.Lock()
	defer lock.Unlock()

	if response, ok, err := s.Get(key); err != nil || ok {
		return response, ok, err
	}
	response, err := compute()
	if err != nil {
		return "", false, err
	}
	if err := s.Put(key, backendID, word, response); err != nil {
		return "", false, err
	}
	return response, false, nil
}

// Purge deletes entries older than the cutoff and returns how many went.
func (s *Store) Purge(olderThan time.Duration) (int64, error) {
	cutoff := time.Now().UTC().Add(-olderThan)
	res, err := s.db.Exec(`DELETE FROM responses WHERE created_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("cache purge: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("cache purge count: %w", err)
	}
	return n, nil
}

// Len returns the number of cached responses.
func (s *Store) Len() (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM responses`).Scan(&n); err != nil {
		return 0, fmt.Errorf("cache len: %w", err)
	}
	return n, nil
}

func (s *Store) keyLock(key string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[key]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[key] = lock
	}
	return lock
}
