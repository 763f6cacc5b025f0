// Package memory provides an in-memory DatasetStore, primarily for tests
// and short-lived generation runs.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/aretw0/lumen/pkg/domain"
)

// Store implements ports.DatasetStore using an in-memory map.
// Batches are deep-copied on write and read so callers cannot alias stored
// frames.
type Store struct {
	mu       sync.RWMutex
	datasets map[string][]domain.Sample
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		datasets: make(map[string][]domain.Sample),
	}
}

func cloneBatch(batch []domain.Sample) []domain.Sample {
	out := make([]domain.Sample, len(batch))
	for i, s := range batch {
		out[i] = domain.Sample{
			ID:     s.ID,
			Frames: domain.CloneFrames(s.Frames),
			Label:  s.Label,
		}
	}
	return out
}

// Save persists a batch under the given dataset ID.
func (s *Store) Save(_ context.Context, id string, batch []domain.Sample) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.datasets[id] = cloneBatch(batch)
	return nil
}

// Load retrieves a previously saved batch.
func (s *Store) Load(_ context.Context, id string) ([]domain.Sample, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	batch, ok := s.datasets[id]
	if !ok {
		return nil, domain.ErrDatasetNotFound
	}
	return cloneBatch(batch), nil
}

// List returns all dataset IDs in lexical order.
func (s *Store) List(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.datasets))
	for id := range s.datasets {
		ids = append(ids, id)
	}
	sort.Strings(ids) // Deterministic order
	return ids, nil
}

// Delete removes a dataset.
func (s *Store) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.datasets, id)
	return nil
}
