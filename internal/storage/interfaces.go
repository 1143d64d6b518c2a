package storage

import (
	"context"
	"time"

	"tokenpulse/internal/domain"
)

// SnapshotStore provides access to daily snapshot storage. Snapshots
// are keyed by calendar day: at most one per day, single writer,
// replace-by-date semantics.
type SnapshotStore interface {
	// Save stores a snapshot, replacing any snapshot already stored
	// for the same calendar day.
	Save(ctx context.Context, snap *domain.Snapshot) error

	// LoadRange retrieves snapshots with dates in [start, end]
	// (inclusive), ascending by date. Days with no snapshot are
	// simply absent from the result.
	LoadRange(ctx context.Context, start, end time.Time) ([]domain.Snapshot, error)

	// LoadCurrent retrieves the most recent snapshot. Returns
	// ErrNotFound when the store is empty.
	LoadCurrent(ctx context.Context) (*domain.Snapshot, error)

	// LoadDates lists all stored snapshot dates, ascending.
	LoadDates(ctx context.Context) ([]time.Time, error)
}

// AnalysisHistoryStore keeps dated per-asset scoring outcomes for
// later review. Append-only.
type AnalysisHistoryStore interface {
	// InsertBulk adds one day's analysis records. Fails the entire
	// batch on a duplicate (date, identity).
	InsertBulk(ctx context.Context, records []*domain.AnalysisRecord) error

	// GetByIdentity retrieves all records for an identity, ordered by
	// date ASC.
	GetByIdentity(ctx context.Context, id string) ([]*domain.AnalysisRecord, error)

	// GetByDate retrieves all records for a day, ordered by rank ASC.
	GetByDate(ctx context.Context, date time.Time) ([]*domain.AnalysisRecord, error)
}
