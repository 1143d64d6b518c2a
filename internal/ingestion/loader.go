// Package ingestion materializes daily snapshots from external
// sources: JSON documents on disk, an HTTP pairs endpoint, and a
// websocket push feed. Records are sanitized here, at the boundary,
// so the engine only ever sees resolvable, non-negative inputs.
package ingestion

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"tokenpulse/internal/domain"
	"tokenpulse/internal/identity"
	"tokenpulse/internal/observability"
)

// snapshotDoc is the wire shape of one snapshot document.
type snapshotDoc struct {
	Date      string     `json:"date"`      // YYYY-MM-DD
	Timestamp *time.Time `json:"timestamp"` // capture time, defaults to the date
	Assets    []assetDoc `json:"assets"`
}

// assetDoc is the wire shape of one asset record.
type assetDoc struct {
	Address         *string `json:"address"`
	Symbol          string  `json:"symbol"`
	Name            string  `json:"name"`
	Price           float64 `json:"price"`
	Volume24h       float64 `json:"volume24h"`
	MarketCap       float64 `json:"marketCap"`
	Liquidity       float64 `json:"liquidity"`
	PriceChange24h  float64 `json:"priceChange24h"`
	Buys24h         *int    `json:"buys24h"`
	Sells24h        *int    `json:"sells24h"`
	IsFromLaunchpad bool    `json:"isFromLaunchpad"`
	DaysSinceLaunch *int    `json:"daysSinceLaunch"`
}

// Drop reasons reported through metrics.
const (
	dropUnidentified   = "unidentified"
	dropNegativeMetric = "negative_metric"
)

// Loader reads snapshot documents from a directory, one JSON file per
// day.
type Loader struct {
	dir     string
	logger  zerolog.Logger
	metrics *observability.Metrics
}

// LoaderOptions configures a Loader. Dir is required.
type LoaderOptions struct {
	Dir     string
	Logger  zerolog.Logger
	Metrics *observability.Metrics
}

// NewLoader creates a new Loader.
func NewLoader(opts LoaderOptions) *Loader {
	return &Loader{
		dir:     opts.Dir,
		logger:  opts.Logger,
		metrics: opts.Metrics,
	}
}

// LoadDir reads every .json file in the directory, ascending by file
// name, and returns the sanitized snapshots ascending by date.
func (l *Loader) LoadDir(ctx context.Context) ([]domain.Snapshot, error) {
	entries, err := os.ReadDir(l.dir)
	if err != nil {
		return nil, fmt.Errorf("read snapshot dir: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".json") {
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)

	snapshots := make([]domain.Snapshot, 0, len(files))
	for _, file := range files {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		snap, err := l.LoadFile(filepath.Join(l.dir, file))
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", file, err)
		}
		snapshots = append(snapshots, *snap)
	}

	sort.Slice(snapshots, func(i, j int) bool {
		return snapshots[i].Date.Before(snapshots[j].Date)
	})
	return snapshots, nil
}

// LoadFile reads and sanitizes a single snapshot document.
func (l *Loader) LoadFile(path string) (*domain.Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot file: %w", err)
	}

	var doc snapshotDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode snapshot document: %w", err)
	}

	snap, dropped, err := materialize(&doc)
	if err != nil {
		return nil, err
	}

	l.recordDrops(dropped)
	if l.metrics != nil {
		l.metrics.SnapshotsIngested.Inc()
		l.metrics.RecordsIngested.Add(float64(len(snap.Assets)))
	}
	l.logger.Debug().
		Str("file", filepath.Base(path)).
		Int("assets", len(snap.Assets)).
		Msg("snapshot loaded")

	return snap, nil
}

func (l *Loader) recordDrops(dropped map[string]int) {
	for reason, n := range dropped {
		l.logger.Warn().Str("reason", reason).Int("records", n).Msg("records dropped during sanitization")
		if l.metrics != nil {
			l.metrics.RecordsDropped.WithLabelValues(reason).Add(float64(n))
		}
	}
}

// materialize converts a wire document into a domain snapshot,
// sanitizing each record. Returns drop counts by reason.
func materialize(doc *snapshotDoc) (*domain.Snapshot, map[string]int, error) {
	date, err := time.ParseInLocation("2006-01-02", doc.Date, time.UTC)
	if err != nil {
		return nil, nil, fmt.Errorf("parse snapshot date %q: %w", doc.Date, err)
	}

	snap := &domain.Snapshot{Date: date, Timestamp: date}
	if doc.Timestamp != nil {
		snap.Timestamp = doc.Timestamp.UTC()
	}

	dropped := make(map[string]int)
	for i := range doc.Assets {
		rec, reason := sanitize(&doc.Assets[i])
		if reason != "" {
			dropped[reason]++
			continue
		}
		snap.Assets = append(snap.Assets, *rec)
	}

	return snap, dropped, nil
}

// sanitize validates one wire record. A malformed address degrades to
// symbol identity; a record that cannot be identified at all, or that
// carries negative metrics, is dropped with a reason.
func sanitize(doc *assetDoc) (*domain.AssetRecord, string) {
	rec := &domain.AssetRecord{
		Symbol:          strings.TrimSpace(doc.Symbol),
		Name:            strings.TrimSpace(doc.Name),
		Price:           doc.Price,
		Volume24h:       doc.Volume24h,
		MarketCap:       doc.MarketCap,
		Liquidity:       doc.Liquidity,
		PriceChange24h:  doc.PriceChange24h,
		Buys24h:         doc.Buys24h,
		Sells24h:        doc.Sells24h,
		IsFromLaunchpad: doc.IsFromLaunchpad,
		DaysSinceLaunch: doc.DaysSinceLaunch,
	}

	if doc.Address != nil {
		addr := strings.TrimSpace(*doc.Address)
		if identity.IsValidAddress(addr) {
			rec.Address = &addr
		}
	}
	if rec.Address == nil && rec.Symbol == "" {
		return nil, dropUnidentified
	}
	if rec.Price < 0 || rec.Volume24h < 0 || rec.MarketCap < 0 || rec.Liquidity < 0 {
		return nil, dropNegativeMetric
	}

	return rec, ""
}
