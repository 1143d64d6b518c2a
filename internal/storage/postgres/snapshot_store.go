package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"tokenpulse/internal/domain"
	"tokenpulse/internal/storage"
)

// SnapshotStore implements storage.SnapshotStore using PostgreSQL.
// A snapshot spans two tables: one row in snapshots per day plus one
// row in asset_records per observed asset.
type SnapshotStore struct {
	pool *Pool
}

// NewSnapshotStore creates a new SnapshotStore.
func NewSnapshotStore(pool *Pool) *SnapshotStore {
	return &SnapshotStore{pool: pool}
}

// Compile-time interface check.
var _ storage.SnapshotStore = (*SnapshotStore)(nil)

// Save stores a snapshot, replacing any snapshot already stored for
// the same calendar day. Replacement is atomic.
func (s *SnapshotStore) Save(ctx context.Context, snap *domain.Snapshot) error {
	if snap == nil || snap.Date.IsZero() {
		return storage.ErrInvalidInput
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM snapshots WHERE date = $1`, snap.Date); err != nil {
		return fmt.Errorf("delete previous snapshot: %w", err)
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO snapshots (date, captured_at) VALUES ($1, $2)`,
		snap.Date, snap.Timestamp,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return storage.ErrDuplicateKey
		}
		return fmt.Errorf("insert snapshot: %w", err)
	}

	query := `
		INSERT INTO asset_records (
			snapshot_date, address, symbol, name, price, volume_24h, market_cap,
			liquidity, price_change_24h, buys_24h, sells_24h, is_from_launchpad, days_since_launch
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	for i := range snap.Assets {
		rec := &snap.Assets[i]
		_, err := tx.Exec(ctx, query,
			snap.Date,
			rec.Address,
			rec.Symbol,
			rec.Name,
			rec.Price,
			rec.Volume24h,
			rec.MarketCap,
			rec.Liquidity,
			rec.PriceChange24h,
			rec.Buys24h,
			rec.Sells24h,
			rec.IsFromLaunchpad,
			rec.DaysSinceLaunch,
		)
		if err != nil {
			return fmt.Errorf("insert asset record: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	return nil
}

// LoadRange retrieves snapshots with dates in [start, end] (inclusive),
// ascending by date.
func (s *SnapshotStore) LoadRange(ctx context.Context, start, end time.Time) ([]domain.Snapshot, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT date, captured_at
		FROM snapshots
		WHERE date >= $1 AND date <= $2
		ORDER BY date ASC
	`, start, end)
	if err != nil {
		return nil, fmt.Errorf("query snapshots by range: %w", err)
	}
	defer rows.Close()

	var result []domain.Snapshot
	for rows.Next() {
		var snap domain.Snapshot
		if err := rows.Scan(&snap.Date, &snap.Timestamp); err != nil {
			return nil, fmt.Errorf("scan snapshot row: %w", err)
		}
		snap.Date = snap.Date.UTC()
		snap.Timestamp = snap.Timestamp.UTC()
		result = append(result, snap)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate snapshot rows: %w", err)
	}

	for i := range result {
		assets, err := s.loadAssets(ctx, result[i].Date)
		if err != nil {
			return nil, err
		}
		result[i].Assets = assets
	}

	return result, nil
}

// LoadCurrent retrieves the most recent snapshot. Returns ErrNotFound
// when no snapshots are stored.
func (s *SnapshotStore) LoadCurrent(ctx context.Context) (*domain.Snapshot, error) {
	var snap domain.Snapshot
	err := s.pool.QueryRow(ctx, `
		SELECT date, captured_at
		FROM snapshots
		ORDER BY date DESC
		LIMIT 1
	`).Scan(&snap.Date, &snap.Timestamp)
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("query latest snapshot: %w", err)
	}
	snap.Date = snap.Date.UTC()
	snap.Timestamp = snap.Timestamp.UTC()

	assets, err := s.loadAssets(ctx, snap.Date)
	if err != nil {
		return nil, err
	}
	snap.Assets = assets

	return &snap, nil
}

// LoadDates lists all stored snapshot dates, ascending.
func (s *SnapshotStore) LoadDates(ctx context.Context) ([]time.Time, error) {
	rows, err := s.pool.Query(ctx, `SELECT date FROM snapshots ORDER BY date ASC`)
	if err != nil {
		return nil, fmt.Errorf("query snapshot dates: %w", err)
	}
	defer rows.Close()

	var dates []time.Time
	for rows.Next() {
		var date time.Time
		if err := rows.Scan(&date); err != nil {
			return nil, fmt.Errorf("scan date row: %w", err)
		}
		dates = append(dates, date.UTC())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate date rows: %w", err)
	}

	return dates, nil
}

// loadAssets retrieves the asset records belonging to one snapshot day.
func (s *SnapshotStore) loadAssets(ctx context.Context, date time.Time) ([]domain.AssetRecord, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT address, symbol, name, price, volume_24h, market_cap,
		       liquidity, price_change_24h, buys_24h, sells_24h, is_from_launchpad, days_since_launch
		FROM asset_records
		WHERE snapshot_date = $1
		ORDER BY id ASC
	`, date)
	if err != nil {
		return nil, fmt.Errorf("query asset records: %w", err)
	}
	defer rows.Close()

	return scanAssetRecords(rows)
}

// scanAssetRecords scans multiple rows into a slice of AssetRecord.
func scanAssetRecords(rows pgx.Rows) ([]domain.AssetRecord, error) {
	var records []domain.AssetRecord

	for rows.Next() {
		var rec domain.AssetRecord

		err := rows.Scan(
			&rec.Address,
			&rec.Symbol,
			&rec.Name,
			&rec.Price,
			&rec.Volume24h,
			&rec.MarketCap,
			&rec.Liquidity,
			&rec.PriceChange24h,
			&rec.Buys24h,
			&rec.Sells24h,
			&rec.IsFromLaunchpad,
			&rec.DaysSinceLaunch,
		)
		if err != nil {
			return nil, fmt.Errorf("scan asset record row: %w", err)
		}

		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate asset record rows: %w", err)
	}

	return records, nil
}
