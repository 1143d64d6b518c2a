package reporting

import (
	"context"
	"time"

	"tokenpulse/internal/aggregation"
	"tokenpulse/internal/analysis"
	"tokenpulse/internal/domain"
)

// defaultLeaderLimit caps the leader tables.
const defaultLeaderLimit = 10

// Generator produces reports from pipeline runs.
type Generator struct {
	pipeline    *analysis.Pipeline
	leaderLimit int
	now         func() time.Time // Injectable clock for deterministic output
}

// NewGenerator creates a new report generator.
func NewGenerator(pipeline *analysis.Pipeline) *Generator {
	return &Generator{
		pipeline:    pipeline,
		leaderLimit: defaultLeaderLimit,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// WithClock sets a custom clock function for deterministic output.
func (g *Generator) WithClock(now func() time.Time) *Generator {
	g.now = now
	return g
}

// WithLeaderLimit sets how many rows the leader tables carry.
func (g *Generator) WithLeaderLimit(limit int) *Generator {
	if limit > 0 {
		g.leaderLimit = limit
	}
	return g
}

// Generate runs the pipeline over [start, end] and assembles the
// complete report.
func (g *Generator) Generate(ctx context.Context, start, end time.Time) (*Report, error) {
	result, err := g.pipeline.Run(ctx, start, end)
	if err != nil {
		return nil, err
	}

	windowDays := int(end.Sub(start).Hours()/24) + 1

	return &Report{
		GeneratedAt:    g.now(),
		RangeStart:     start,
		RangeEnd:       end,
		SnapshotCount:  result.SnapshotCount,
		AssetsAnalyzed: result.AssetsAnalyzed,
		FailureCount:   len(result.Failures),

		Rankings: rankingRows(result.Rankings),

		TopPerformers:      leaderRows(aggregation.TopPerformers(result.Series, windowDays, g.leaderLimit)),
		MarketCapLeaders:   leaderRows(aggregation.MarketCapGrowthLeaders(result.Series, g.leaderLimit)),
		ConsistencyLeaders: leaderRows(aggregation.VolumeConsistencyLeaders(result.Series, g.leaderLimit)),

		LaunchOutcomes: result.LaunchOutcomes,
		Cohort:         result.Cohort,
		DailyTrends:    result.DailyTrend.Trends,

		Alerts: alertRows(result.Rankings),
	}, nil
}

func rankingRows(analyses []*domain.PerformanceAnalysis) []RankingRow {
	rows := make([]RankingRow, 0, len(analyses))
	for _, a := range analyses {
		rows = append(rows, RankingRow{
			Rank:           a.Rank,
			Identity:       a.Identity,
			Symbol:         a.Current.Symbol,
			Score:          a.Score,
			PriceChange24h: a.Current.PriceChange24h,
			Momentum:       a.Trends.Momentum.Overall,
			Sustainability: a.Trends.Sustainability.Label,
			AlertCount:     len(a.Alerts),
			Recommendation: a.Recommendation,
		})
	}
	return rows
}

func leaderRows(summaries []domain.AssetSummary) []LeaderRow {
	rows := make([]LeaderRow, 0, len(summaries))
	for i, s := range summaries {
		rows = append(rows, LeaderRow{
			Position:   i + 1,
			Identity:   s.Identity,
			Symbol:     s.Symbol,
			DaysActive: s.DaysActive,
			Value:      s.Value,
		})
	}
	return rows
}

func alertRows(analyses []*domain.PerformanceAnalysis) []AlertRow {
	var rows []AlertRow
	for _, a := range analyses {
		for _, alert := range a.Alerts {
			rows = append(rows, AlertRow{
				Identity: a.Identity,
				Symbol:   a.Current.Symbol,
				Type:     alert.Type,
				Severity: alert.Severity,
				Message:  alert.Message,
				Value:    alert.Value,
			})
		}
	}
	return rows
}
