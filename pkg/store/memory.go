package store

import (
	"fmt"
	"sync"

	"github.com/lexgrep/lexgrep/pkg/types"
)

// MemoryStore implements Store in memory.
type MemoryStore struct {
	mu      sync.RWMutex
	runs    []Run
	matches map[int64][]types.Match
	nextID  int64
}

// NewMemory creates an in-memory store.
func NewMemory() *MemoryStore {
	return &MemoryStore{matches: make(map[int64][]types.Match), nextID: 1}
}

// AddRun records an execution and returns its ID.
func (s *MemoryStore) AddRun(language, subject string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.runs = append(s.runs, Run{ID: id, Language: language, Subject: subject})
	return id, nil
}

// AddMatch records a match under a run.
func (s *MemoryStore) AddMatch(runID int64, m types.Match) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if runID <= 0 || runID >= s.nextID {
		return fmt.Errorf("unknown run %d", runID)
	}
	s.matches[runID] = append(s.matches[runID], m)
	return nil
}

// GetMatches retrieves the matches of one run in insertion order.
func (s *MemoryStore) GetMatches(runID int64) ([]types.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]types.Match, len(s.matches[runID]))
	copy(out, s.matches[runID])
	return out, nil
}

// GetRuns retrieves all recorded runs.
func (s *MemoryStore) GetRuns() ([]Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Run, len(s.runs))
	copy(out, s.runs)
	return out, nil
}

// Close is a no-op for the in-memory store.
func (s *MemoryStore) Close() error { return nil }
