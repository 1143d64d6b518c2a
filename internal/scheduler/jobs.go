package scheduler

import (
	"context"
	"fmt"
	"time"

	"tokenpulse/internal/analysis"
	"tokenpulse/internal/ingestion"
	"tokenpulse/internal/storage"
)

// IngestJob polls the pairs endpoint and stores today's snapshot.
type IngestJob struct {
	Fetcher   *ingestion.Fetcher
	Snapshots storage.SnapshotStore
	Spec      string // cron expression
}

func (j *IngestJob) Name() string     { return "snapshot_ingest" }
func (j *IngestJob) Schedule() string { return j.Spec }

func (j *IngestJob) Run(ctx context.Context) error {
	snap, err := j.Fetcher.Fetch(ctx)
	if err != nil {
		return fmt.Errorf("fetch snapshot: %w", err)
	}
	if err := j.Snapshots.Save(ctx, snap); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

// AnalysisJob runs the pipeline over the trailing week.
type AnalysisJob struct {
	Pipeline *analysis.Pipeline
	Spec     string
	Now      func() time.Time
}

func (j *AnalysisJob) Name() string     { return "daily_analysis" }
func (j *AnalysisJob) Schedule() string { return j.Spec }

func (j *AnalysisJob) Run(ctx context.Context) error {
	now := time.Now().UTC()
	if j.Now != nil {
		now = j.Now()
	}
	end := now.Truncate(24 * time.Hour)
	start := end.AddDate(0, 0, -6)

	if _, err := j.Pipeline.Run(ctx, start, end); err != nil {
		return fmt.Errorf("run analysis pipeline: %w", err)
	}
	return nil
}
