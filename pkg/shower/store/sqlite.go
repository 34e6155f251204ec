package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// SQLiteStore persists run summaries to SQLite. Suitable for
// single-process production use; bins are stored as a JSON blob, the
// scalars as columns so List never deserializes histograms.
type SQLiteStore struct {
	db     *sql.DB
	mu     sync.RWMutex
	closed bool
}

// NewSQLiteStore creates a SQLite-backed store. The path should be a
// file path (e.g. "./runs.db") or ":memory:" for testing.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// A single connection serializes writers and keeps :memory:
	// databases on one backing store.
	db.SetMaxOpenConns(1)

	// WAL keeps concurrent readers cheap
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS runs (
			run_id TEXT NOT NULL PRIMARY KEY,
			created_at TEXT NOT NULL,
			realizations INTEGER NOT NULL,
			ngl1_loop REAL NOT NULL,
			ngl2_loop REAL NOT NULL,
			tmax REAL NOT NULL,
			bins BLOB NOT NULL
		)
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create table: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Save implements Store.
func (s *SQLiteStore) Save(sum Summary) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}

	bins, err := json.Marshal(sum.Bins)
	if err != nil {
		return fmt.Errorf("serialize bins: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO runs (run_id, created_at, realizations, ngl1_loop, ngl2_loop, tmax, bins)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(run_id) DO UPDATE SET
			created_at = excluded.created_at,
			realizations = excluded.realizations,
			ngl1_loop = excluded.ngl1_loop,
			ngl2_loop = excluded.ngl2_loop,
			tmax = excluded.tmax,
			bins = excluded.bins
	`, sum.RunID, sum.CreatedAt.UTC().Format(time.RFC3339Nano),
		sum.Realizations, sum.NGL1Loop, sum.NGL2Loop, sum.TMax, bins)
	if err != nil {
		return fmt.Errorf("save run: %w", err)
	}
	return nil
}

// Load implements Store.
func (s *SQLiteStore) Load(runID string) (Summary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return Summary{}, ErrStoreClosed
	}

	var sum Summary
	var createdAt string
	var bins []byte
	err := s.db.QueryRow(`
		SELECT run_id, created_at, realizations, ngl1_loop, ngl2_loop, tmax, bins
		FROM runs WHERE run_id = ?
	`, runID).Scan(&sum.RunID, &createdAt, &sum.Realizations,
		&sum.NGL1Loop, &sum.NGL2Loop, &sum.TMax, &bins)

	if err == sql.ErrNoRows {
		return Summary{}, ErrNotFound
	}
	if err != nil {
		return Summary{}, fmt.Errorf("load run: %w", err)
	}

	sum.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
	if err := json.Unmarshal(bins, &sum.Bins); err != nil {
		return Summary{}, fmt.Errorf("deserialize bins: %w", err)
	}
	return sum, nil
}

// List implements Store.
func (s *SQLiteStore) List() ([]Info, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrStoreClosed
	}

	rows, err := s.db.Query(`
		SELECT run_id, created_at, realizations
		FROM runs ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var infos []Info
	for rows.Next() {
		var info Info
		var createdAt string
		if err := rows.Scan(&info.RunID, &createdAt, &info.Realizations); err != nil {
			return nil, fmt.Errorf("scan run info: %w", err)
		}
		info.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
		infos = append(infos, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return infos, nil
}

// Delete implements Store.
func (s *SQLiteStore) Delete(runID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}

	if _, err := s.db.Exec(`DELETE FROM runs WHERE run_id = ?`, runID); err != nil {
		return fmt.Errorf("delete run: %w", err)
	}
	return nil
}

// Close implements Store.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}
