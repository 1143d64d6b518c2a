package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"tokenpulse/internal/domain"
	"tokenpulse/internal/storage"
)

// SnapshotStore is an in-memory implementation of storage.SnapshotStore.
type SnapshotStore struct {
	mu   sync.RWMutex
	data map[string]*domain.Snapshot // keyed by YYYY-MM-DD
}

// NewSnapshotStore creates a new in-memory snapshot store.
func NewSnapshotStore() *SnapshotStore {
	return &SnapshotStore{
		data: make(map[string]*domain.Snapshot),
	}
}

var _ storage.SnapshotStore = (*SnapshotStore)(nil)

// Save stores a snapshot, replacing any snapshot for the same day.
func (s *SnapshotStore) Save(_ context.Context, snap *domain.Snapshot) error {
	if snap == nil || snap.Date.IsZero() {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snapCopy := copySnapshot(snap)
	s.data[snap.Day()] = snapCopy
	return nil
}

// LoadRange retrieves snapshots within [start, end], ascending by date.
func (s *SnapshotStore) LoadRange(_ context.Context, start, end time.Time) ([]domain.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []domain.Snapshot
	for _, snap := range s.data {
		if !snap.Date.Before(start) && !snap.Date.After(end) {
			result = append(result, *copySnapshot(snap))
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Date.Before(result[j].Date)
	})
	return result, nil
}

// LoadCurrent retrieves the most recent snapshot.
func (s *SnapshotStore) LoadCurrent(_ context.Context) (*domain.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var latest *domain.Snapshot
	for _, snap := range s.data {
		if latest == nil || snap.Date.After(latest.Date) {
			latest = snap
		}
	}
	if latest == nil {
		return nil, storage.ErrNotFound
	}
	return copySnapshot(latest), nil
}

// LoadDates lists all stored snapshot dates, ascending.
func (s *SnapshotStore) LoadDates(_ context.Context) ([]time.Time, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	dates := make([]time.Time, 0, len(s.data))
	for _, snap := range s.data {
		dates = append(dates, snap.Date)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates, nil
}

// copySnapshot deep-copies a snapshot so callers cannot mutate stored
// state through the returned value.
func copySnapshot(snap *domain.Snapshot) *domain.Snapshot {
	out := &domain.Snapshot{
		Date:      snap.Date,
		Timestamp: snap.Timestamp,
		Assets:    make([]domain.AssetRecord, len(snap.Assets)),
	}
	copy(out.Assets, snap.Assets)
	for i := range out.Assets {
		rec := &out.Assets[i]
		if rec.Address != nil {
			v := *rec.Address
			rec.Address = &v
		}
		if rec.Buys24h != nil {
			v := *rec.Buys24h
			rec.Buys24h = &v
		}
		if rec.Sells24h != nil {
			v := *rec.Sells24h
			rec.Sells24h = &v
		}
		if rec.DaysSinceLaunch != nil {
			v := *rec.DaysSinceLaunch
			rec.DaysSinceLaunch = &v
		}
	}
	return out
}
