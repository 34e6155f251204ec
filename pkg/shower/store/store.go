// Package store persists shower run summaries so long Monte-Carlo
// campaigns can be inspected and combined after the fact.
package store

import (
	"errors"
	"time"
)

// Summary is the persisted form of one accumulated shower run: raw
// histogram sums plus the loop-coefficient accumulators. Values are
// stored unnormalized so stored runs can still be merged correctly.
type Summary struct {
	RunID        string    `json:"run_id"`
	CreatedAt    time.Time `json:"created_at"`
	Realizations int       `json:"realizations"`
	NGL1Loop     float64   `json:"ngl1_loop"`
	NGL2Loop     float64   `json:"ngl2_loop"`
	TMax         float64   `json:"tmax"`
	Bins         []Bin     `json:"bins"`
}

// Bin is one histogram bin of a Summary.
type Bin struct {
	Center float64 `json:"center"`
	Value  float64 `json:"value"`
	SumW2  float64 `json:"sumw2"`
}

// Store persists run summaries.
// Implementations must be safe for concurrent use.
type Store interface {
	// Save stores a summary, overwriting any summary with the same
	// run ID.
	Save(s Summary) error

	// Load retrieves a summary by run ID.
	// Returns ErrNotFound if no such run exists.
	Load(runID string) (Summary, error)

	// List returns metadata for all stored runs, newest first.
	List() ([]Info, error)

	// Delete removes a stored run. Returns nil if it doesn't exist.
	Delete(runID string) error

	// Close releases any resources (connections, files).
	Close() error
}

// Info provides run metadata without loading the full summary.
type Info struct {
	RunID        string
	CreatedAt    time.Time
	Realizations int
}

// Sentinel errors for store operations.
var (
	// ErrNotFound indicates a run summary doesn't exist.
	ErrNotFound = errors.New("run summary not found")

	// ErrStoreClosed indicates the store has been closed.
	ErrStoreClosed = errors.New("result store closed")
)
