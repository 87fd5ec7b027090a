package run

import (
	"sort"
	"sync"

	"github.com/kdemir/pipekit/errors"
)

// Store keeps runs in memory for the API surface. Runs do not survive a
// process restart.
type Store struct {
	mu   sync.RWMutex
	runs map[string]*Run
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{runs: make(map[string]*Run)}
}

// Save inserts or replaces a run.
func (s *Store) Save(r *Run) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs[r.ID] = r
}

// Get retrieves a run by ID.
func (s *Store) Get(id string) (*Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.runs[id]
	if !ok {
		return nil, errors.NotFound("run", id)
	}
	return r, nil
}

// List returns all runs, newest first.
func (s *Store) List() []*Run {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Run, 0, len(s.runs))
	for _, r := range s.runs {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}
