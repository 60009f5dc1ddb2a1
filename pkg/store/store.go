// Package store persists run results. Sessions themselves never live
// server-side — they round-trip through the share token — but the CLI can
// record what a run produced.
package store

import (
	"fmt"

	"github.com/lexgrep/lexgrep/pkg/types"
)

// Run is one recorded execution of a session.
type Run struct {
	ID       int64
	Language string
	Subject  string
}

// Store provides persistence for runs and their matches.
type Store interface {
	// AddRun records an execution and returns its ID.
	AddRun(language, subject string) (int64, error)

	// AddMatch records a match under a run.
	AddMatch(runID int64, m types.Match) error

	// GetMatches retrieves the matches of one run in insertion order.
	GetMatches(runID int64) ([]types.Match, error)

	// GetRuns retrieves all recorded runs.
	GetRuns() ([]Run, error)

	// Close closes the underlying storage.
	Close() error
}

// Config for store initialization.
type Config struct {
	// Path is the database file path. Use ":memory:" for an in-memory
	// store (useful for testing and one-shot runs).
	Path string
}

// New creates a Store. ":memory:" paths use the in-memory implementation,
// file paths use SQLite.
func New(cfg Config) (Store, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("path is required")
	}
	if cfg.Path == ":memory:" {
		return NewMemory(), nil
	}
	return NewSQLite(cfg.Path)
}
