// Package analysis coordinates the full engine run over a snapshot
// range: aggregation, per-asset trend assessment and scoring, batch
// ranking, cohort survival and daily trend, then history persistence.
package analysis

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"tokenpulse/internal/aggregation"
	"tokenpulse/internal/cohort"
	"tokenpulse/internal/domain"
	"tokenpulse/internal/identity"
	"tokenpulse/internal/observability"
	"tokenpulse/internal/scoring"
	"tokenpulse/internal/storage"
	"tokenpulse/internal/trend"
)

// defaultWorkers bounds the per-asset analysis fan-out.
const defaultWorkers = 8

// Pipeline coordinates the engine over stored snapshots.
// Flow: load range → aggregate → per-asset analysis → rank → cohort.
type Pipeline struct {
	snapshots storage.SnapshotStore
	history   storage.AnalysisHistoryStore
	workers   int
	logger    zerolog.Logger
	metrics   *observability.Metrics
}

// Options for creating Pipeline.
type Options struct {
	// SnapshotStore is required.
	SnapshotStore storage.SnapshotStore

	// HistoryStore is optional; when set, ranked outcomes are persisted
	// after each run.
	HistoryStore storage.AnalysisHistoryStore

	// Workers bounds the per-asset fan-out. Defaults to 8.
	Workers int

	Logger  zerolog.Logger
	Metrics *observability.Metrics
}

// New creates a new Pipeline.
func New(opts Options) *Pipeline {
	workers := opts.Workers
	if workers <= 0 {
		workers = defaultWorkers
	}
	return &Pipeline{
		snapshots: opts.SnapshotStore,
		history:   opts.HistoryStore,
		workers:   workers,
		logger:    opts.Logger,
		metrics:   opts.Metrics,
	}
}

// RunResult contains results from one pipeline execution.
type RunResult struct {
	Start time.Time
	End   time.Time

	SnapshotCount  int
	AssetsAnalyzed int

	// Rankings holds every successfully analyzed asset in rank order.
	Rankings []*domain.PerformanceAnalysis

	// Series is the aggregated per-asset history keyed by identity.
	Series map[string]*domain.AssetSeries

	Cohort         domain.CohortResult
	DailyTrend     domain.DailyTrendResult
	LaunchOutcomes domain.LaunchOutcomes

	// Failures lists per-asset analysis failures. A failed asset is
	// excluded from Rankings, never fatal to the run.
	Failures []string
}

// Run executes the full pipeline over snapshots in [start, end].
func (p *Pipeline) Run(ctx context.Context, start, end time.Time) (*RunResult, error) {
	began := time.Now()

	result, err := p.run(ctx, start, end)

	if p.metrics != nil {
		p.metrics.PipelineDuration.Observe(time.Since(began).Seconds())
		if err != nil {
			p.metrics.PipelineRunsTotal.WithLabelValues("error").Inc()
		} else {
			p.metrics.PipelineRunsTotal.WithLabelValues("ok").Inc()
			p.metrics.LastSuccessfulPipeline.SetToCurrentTime()
		}
	}

	return result, err
}

func (p *Pipeline) run(ctx context.Context, start, end time.Time) (*RunResult, error) {
	result := &RunResult{Start: start, End: end}

	snapshots, err := p.snapshots.LoadRange(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("load snapshot range: %w", err)
	}
	result.SnapshotCount = len(snapshots)
	p.logger.Info().
		Int("snapshots", len(snapshots)).
		Time("start", start).
		Time("end", end).
		Msg("pipeline run started")

	if len(snapshots) == 0 {
		return result, nil
	}

	result.Series = aggregation.Aggregate(snapshots)

	latest := &snapshots[len(snapshots)-1]
	result.Rankings, result.Failures = p.analyzeBatch(ctx, latest, result.Series)
	result.AssetsAnalyzed = len(result.Rankings)

	scoring.Rank(result.Rankings)

	result.Cohort = cohort.Survival(snapshots)
	result.DailyTrend = cohort.DailyTrend(snapshots)
	result.LaunchOutcomes = aggregation.NewLaunchOutcomes(result.Series)

	if p.history != nil {
		if err := p.persistHistory(ctx, latest.Date, result); err != nil {
			return nil, err
		}
	}

	p.logger.Info().
		Int("analyzed", result.AssetsAnalyzed).
		Int("failures", len(result.Failures)).
		Msg("pipeline run completed")

	return result, nil
}

// AnalyzeCurrent analyzes every asset of the most recent snapshot with
// up to a week of preceding history as context, returning the ranked
// batch. Returns storage.ErrNotFound when no snapshots are stored.
func (p *Pipeline) AnalyzeCurrent(ctx context.Context) ([]*domain.PerformanceAnalysis, error) {
	current, err := p.snapshots.LoadCurrent(ctx)
	if err != nil {
		return nil, fmt.Errorf("load current snapshot: %w", err)
	}

	start := current.Date.AddDate(0, 0, -7)
	snapshots, err := p.snapshots.LoadRange(ctx, start, current.Date)
	if err != nil {
		return nil, fmt.Errorf("load history range: %w", err)
	}

	series := aggregation.Aggregate(snapshots)
	analyses, _ := p.analyzeBatch(ctx, current, series)
	scoring.Rank(analyses)
	return analyses, nil
}

// analyzeBatch fans per-asset analysis out across a bounded worker set.
// A panic or failure in one asset's analysis is recorded and excluded;
// the rest of the batch proceeds.
func (p *Pipeline) analyzeBatch(ctx context.Context, snap *domain.Snapshot, series map[string]*domain.AssetSeries) ([]*domain.PerformanceAnalysis, []string) {
	var (
		mu       sync.Mutex
		wg       sync.WaitGroup
		analyses []*domain.PerformanceAnalysis
		failures []string
		sem      = make(chan struct{}, p.workers)
	)

	for i := range snap.Assets {
		if ctx.Err() != nil {
			break
		}

		rec := snap.Assets[i]
		wg.Add(1)
		sem <- struct{}{}

		go func() {
			defer wg.Done()
			defer func() { <-sem }()

			id := identity.ResolveRecordID(rec.Address, rec.Symbol)

			a, err := p.analyzeOne(rec, series[id])
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failures = append(failures, fmt.Sprintf("%s: %v", id, err))
				if p.metrics != nil {
					p.metrics.AnalysisFailures.Inc()
				}
				return
			}
			analyses = append(analyses, a)
			if p.metrics != nil {
				p.metrics.AnalysesComputed.Inc()
				for _, alert := range a.Alerts {
					p.metrics.AlertsFired.WithLabelValues(alert.Type).Inc()
				}
			}
		}()
	}
	wg.Wait()

	// Deterministic pre-rank order regardless of goroutine scheduling.
	sort.Slice(analyses, func(i, j int) bool { return analyses[i].Identity < analyses[j].Identity })

	return analyses, failures
}

// analyzeOne runs the trend and scoring stages for a single asset,
// converting a panic into an error so one bad record cannot take the
// batch down.
func (p *Pipeline) analyzeOne(rec domain.AssetRecord, hist *domain.AssetSeries) (a *domain.PerformanceAnalysis, err error) {
	defer func() {
		if r := recover(); r != nil {
			a = nil
			err = fmt.Errorf("analysis panicked: %v", r)
		}
	}()

	if rec.Symbol == "" && rec.Address == nil {
		return nil, errors.New("record has neither address nor symbol")
	}

	var points []domain.DailyPoint
	if hist != nil {
		points = hist.Points
	}

	analysis := trend.Analyze(rec, points)
	analysis.Score = scoring.Score(&analysis)
	analysis.Recommendation = scoring.Recommend(&analysis)
	return &analysis, nil
}

// persistHistory writes the ranked batch to the analytics store.
// An already-recorded day is tolerated.
func (p *Pipeline) persistHistory(ctx context.Context, date time.Time, result *RunResult) error {
	records := make([]*domain.AnalysisRecord, 0, len(result.Rankings))
	for _, a := range result.Rankings {
		rec := &domain.AnalysisRecord{
			Date:           date,
			Identity:       a.Identity,
			Symbol:         a.Current.Symbol,
			Score:          a.Score,
			Rank:           a.Rank,
			Recommendation: a.Recommendation,
			AlertCount:     len(a.Alerts),
		}
		if s, ok := result.Series[a.Identity]; ok {
			rec.WeeklyGrowth = s.WeeklyGrowth
		}
		records = append(records, rec)
	}

	if err := p.history.InsertBulk(ctx, records); err != nil {
		if errors.Is(err, storage.ErrDuplicateKey) {
			p.logger.Debug().Time("date", date).Msg("analysis history already recorded for day")
			return nil
		}
		return fmt.Errorf("persist analysis history: %w", err)
	}
	return nil
}
