package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/sizhu-cli/internal/core/domain"
	"github.com/custodia-labs/sizhu-cli/internal/core/ports/driven"
)

// Ensure ChartStore implements the interface.
var _ driven.ChartStore = (*ChartStore)(nil)

// ChartStore is an in-memory implementation of driven.ChartStore.
type ChartStore struct {
	mu      sync.RWMutex
	records map[string]domain.ChartRecord
}

// NewChartStore creates a new in-memory chart store.
func NewChartStore() *ChartStore {
	return &ChartStore{
		records: make(map[string]domain.ChartRecord),
	}
}

// Save stores or updates a chart record.
func (s *ChartStore) Save(_ context.Context, record domain.ChartRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[record.ID] = record
	return nil
}

// Get retrieves a chart record by ID.
func (s *ChartStore) Get(_ context.Context, id string) (*domain.ChartRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.records[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &record, nil
}

// List returns records for a subject, newest first.
func (s *ChartStore) List(_ context.Context, subject string, limit int) ([]domain.ChartRecord, error) {
	s.mu.RLock()
	result := make([]domain.ChartRecord, 0, len(s.records))
	for _, record := range s.records {
		if subject == "" || record.Subject == subject {
			result = append(result, record)
		}
	}
	s.mu.RUnlock()

	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID < result[j].ID
		}
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})

	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// Delete removes a chart record.
func (s *ChartStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.records, id)
	return nil
}
