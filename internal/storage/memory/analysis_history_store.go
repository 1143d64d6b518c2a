package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"tokenpulse/internal/domain"
	"tokenpulse/internal/storage"
)

// AnalysisHistoryStore is an in-memory implementation of
// storage.AnalysisHistoryStore.
type AnalysisHistoryStore struct {
	mu   sync.RWMutex
	data map[string]*domain.AnalysisRecord // keyed by (day, identity)
}

// NewAnalysisHistoryStore creates a new in-memory history store.
func NewAnalysisHistoryStore() *AnalysisHistoryStore {
	return &AnalysisHistoryStore{
		data: make(map[string]*domain.AnalysisRecord),
	}
}

var _ storage.AnalysisHistoryStore = (*AnalysisHistoryStore)(nil)

func historyKey(date time.Time, id string) string {
	return fmt.Sprintf("%s|%s", date.Format("2006-01-02"), id)
}

// InsertBulk adds records, failing the entire batch on any duplicate.
func (s *AnalysisHistoryStore) InsertBulk(_ context.Context, records []*domain.AnalysisRecord) error {
	if len(records) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// First pass: detect existing and intra-batch duplicates.
	batchKeys := make(map[string]struct{}, len(records))
	for _, r := range records {
		if r == nil || r.Identity == "" {
			return storage.ErrInvalidInput
		}
		key := historyKey(r.Date, r.Identity)
		if _, exists := s.data[key]; exists {
			return storage.ErrDuplicateKey
		}
		if _, exists := batchKeys[key]; exists {
			return storage.ErrDuplicateKey
		}
		batchKeys[key] = struct{}{}
	}

	// Second pass: insert all.
	for _, r := range records {
		recCopy := *r
		s.data[historyKey(r.Date, r.Identity)] = &recCopy
	}
	return nil
}

// GetByIdentity retrieves all records for an identity, date ASC.
func (s *AnalysisHistoryStore) GetByIdentity(_ context.Context, id string) ([]*domain.AnalysisRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.AnalysisRecord
	for _, r := range s.data {
		if r.Identity == id {
			recCopy := *r
			result = append(result, &recCopy)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date.Before(result[j].Date) })
	return result, nil
}

// GetByDate retrieves all records for a day, rank ASC.
func (s *AnalysisHistoryStore) GetByDate(_ context.Context, date time.Time) ([]*domain.AnalysisRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	day := date.Format("2006-01-02")
	var result []*domain.AnalysisRecord
	for _, r := range s.data {
		if r.Date.Format("2006-01-02") == day {
			recCopy := *r
			result = append(result, &recCopy)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Rank < result[j].Rank })
	return result, nil
}
