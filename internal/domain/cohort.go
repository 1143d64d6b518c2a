package domain

import "time"

// Trend direction labels derived from a linear-trend slope.
const (
	TrendGrowing   = "growing"
	TrendDeclining = "declining"
	TrendStable    = "stable"
)

// CohortResult is the survival comparison between the first and last
// snapshot of a date range.
type CohortResult struct {
	StartDate     time.Time
	EndDate       time.Time
	StartingCount int      // identities in the first snapshot
	EndingCount   int      // identities in the last snapshot
	Survived      int      // present in both
	Dropped       int      // present in first, absent from last
	NewEntrants   int      // present in last, absent from first
	SurvivalRate  float64  // Survived / StartingCount * 100, 0 if empty start
	SurvivorIDs   []string // canonical identities of survivors, sorted
}

// DailyAggregate is one day of market-wide totals used for trend
// slope computation across a range.
type DailyAggregate struct {
	Date           time.Time
	TotalVolume    float64
	TotalMarketCap float64
	AvgPriceChange float64 // mean 24h price change across assets, percent
	ActiveAssets   int
}

// MetricTrend is one aggregate series with its fitted slope and
// direction label.
type MetricTrend struct {
	Metric    string    // total_volume | total_market_cap | avg_price_change | active_assets
	Values    []float64 // one value per snapshot day, date ASC
	Slope     float64   // least-squares slope against day index
	Direction string    // growing | declining | stable
}

// DailyTrendResult bundles the aggregate series and per-metric trends
// for a snapshot range.
type DailyTrendResult struct {
	Days   []DailyAggregate
	Trends []MetricTrend
}
