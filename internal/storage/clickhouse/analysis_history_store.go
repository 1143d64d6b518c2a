package clickhouse

import (
	"context"
	"fmt"
	"time"

	"tokenpulse/internal/domain"
	"tokenpulse/internal/storage"
)

// AnalysisHistoryStore implements storage.AnalysisHistoryStore using
// ClickHouse. MergeTree does not enforce uniqueness, so duplicates are
// rejected by explicit checks before the batch insert.
type AnalysisHistoryStore struct {
	conn *Conn
}

// NewAnalysisHistoryStore creates a new AnalysisHistoryStore.
func NewAnalysisHistoryStore(conn *Conn) *AnalysisHistoryStore {
	return &AnalysisHistoryStore{conn: conn}
}

// Compile-time interface check.
var _ storage.AnalysisHistoryStore = (*AnalysisHistoryStore)(nil)

// InsertBulk adds multiple records. Fails entire batch on duplicate
// (date, identity).
func (s *AnalysisHistoryStore) InsertBulk(ctx context.Context, records []*domain.AnalysisRecord) error {
	if len(records) == 0 {
		return nil
	}

	// Check for intra-batch duplicates
	type key struct {
		day      string
		identity string
	}
	seen := make(map[key]struct{})
	for _, r := range records {
		if r == nil || r.Identity == "" {
			return storage.ErrInvalidInput
		}
		k := key{r.Date.Format("2006-01-02"), r.Identity}
		if _, exists := seen[k]; exists {
			return storage.ErrDuplicateKey
		}
		seen[k] = struct{}{}
	}

	// Check for duplicates against existing DB rows
	for _, r := range records {
		exists, err := s.exists(ctx, r.Date, r.Identity)
		if err != nil {
			return fmt.Errorf("check exists: %w", err)
		}
		if exists {
			return storage.ErrDuplicateKey
		}
	}

	batch, err := s.conn.PrepareBatch(ctx, `
		INSERT INTO analysis_history (
			date, identity, symbol, score, rank, recommendation, alert_count, weekly_growth
		)
	`)
	if err != nil {
		return fmt.Errorf("prepare batch: %w", err)
	}

	for _, r := range records {
		err = batch.Append(
			r.Date, r.Identity, r.Symbol,
			r.Score, uint32(r.Rank), r.Recommendation,
			uint32(r.AlertCount), r.WeeklyGrowth,
		)
		if err != nil {
			return fmt.Errorf("append to batch: %w", err)
		}
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("send batch: %w", err)
	}

	return nil
}

// GetByIdentity retrieves all records for an identity, ordered by date ASC.
func (s *AnalysisHistoryStore) GetByIdentity(ctx context.Context, id string) ([]*domain.AnalysisRecord, error) {
	query := `
		SELECT date, identity, symbol, score, rank, recommendation, alert_count, weekly_growth
		FROM analysis_history
		WHERE identity = ?
		ORDER BY date ASC
	`

	rows, err := s.conn.Query(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("query by identity: %w", err)
	}
	defer rows.Close()

	return scanAnalysisRecords(rows)
}

// GetByDate retrieves all records for a day, ordered by rank ASC.
func (s *AnalysisHistoryStore) GetByDate(ctx context.Context, date time.Time) ([]*domain.AnalysisRecord, error) {
	query := `
		SELECT date, identity, symbol, score, rank, recommendation, alert_count, weekly_growth
		FROM analysis_history
		WHERE date = ?
		ORDER BY rank ASC
	`

	rows, err := s.conn.Query(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("query by date: %w", err)
	}
	defer rows.Close()

	return scanAnalysisRecords(rows)
}

// exists checks if a record with the given key exists.
func (s *AnalysisHistoryStore) exists(ctx context.Context, date time.Time, identity string) (bool, error) {
	query := `
		SELECT count(*) FROM analysis_history
		WHERE date = ? AND identity = ?
	`

	var count uint64
	err := s.conn.QueryRow(ctx, query, date, identity).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// chRows is the subset of driver.Rows needed by scanners.
type chRows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

// scanAnalysisRecords scans multiple rows.
func scanAnalysisRecords(rows chRows) ([]*domain.AnalysisRecord, error) {
	var records []*domain.AnalysisRecord

	for rows.Next() {
		var r domain.AnalysisRecord
		var rank, alertCount uint32

		err := rows.Scan(
			&r.Date, &r.Identity, &r.Symbol,
			&r.Score, &rank, &r.Recommendation,
			&alertCount, &r.WeeklyGrowth,
		)
		if err != nil {
			return nil, fmt.Errorf("scan analysis record row: %w", err)
		}

		r.Date = r.Date.UTC()
		r.Rank = int(rank)
		r.AlertCount = int(alertCount)
		records = append(records, &r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate analysis record rows: %w", err)
	}

	return records, nil
}
