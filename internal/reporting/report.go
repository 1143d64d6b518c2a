package reporting

import (
	"time"

	"tokenpulse/internal/domain"
)

// Report is the daily analytics report structure.
type Report struct {
	// Metadata
	GeneratedAt time.Time
	RangeStart  time.Time
	RangeEnd    time.Time

	// Run summary
	SnapshotCount  int
	AssetsAnalyzed int
	FailureCount   int

	// Rankings (rank ASC)
	Rankings []RankingRow

	// Leader tables (value DESC)
	TopPerformers      []LeaderRow
	MarketCapLeaders   []LeaderRow
	ConsistencyLeaders []LeaderRow

	// Launch outcomes for young launchpad assets
	LaunchOutcomes domain.LaunchOutcomes

	// Cohort survival between first and last snapshot of the range
	Cohort domain.CohortResult

	// Market-wide daily aggregates and their trend directions
	DailyTrends []domain.MetricTrend

	// Alerts fired across the batch (rank ASC, then alert order)
	Alerts []AlertRow
}

// RankingRow is one asset's line in the rankings table.
type RankingRow struct {
	Rank           int
	Identity       string
	Symbol         string
	Score          float64
	PriceChange24h float64
	Momentum       string // bullish | bearish | neutral
	Sustainability string
	AlertCount     int
	Recommendation string
}

// LeaderRow is one row of a leader table.
type LeaderRow struct {
	Position   int
	Identity   string
	Symbol     string
	DaysActive int
	Value      float64 // the metric the table ranks by
}

// AlertRow flattens one fired alert with its owning asset.
type AlertRow struct {
	Identity string
	Symbol   string
	Type     string
	Severity string
	Message  string
	Value    float64
}
