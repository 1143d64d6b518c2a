package domain

import "time"

// DailyPoint is one day of an asset's history inside an AssetSeries.
type DailyPoint struct {
	Date           time.Time // snapshot day, UTC midnight
	Price          float64   // unit price at snapshot time
	Volume24h      float64   // 24h traded volume
	MarketCap      float64   // market capitalization
	Liquidity      float64   // pool liquidity
	PriceChange24h float64   // 24h price change, percent
}

// AssetSeries is the per-asset time series derived from a range of
// snapshots. It is a pure function of the queried snapshot range and
// is never persisted.
type AssetSeries struct {
	Identity string // canonical identity (address, else symbol)
	Symbol   string // last observed symbol
	Name     string // last observed name

	Points    []DailyPoint // one per snapshot the asset appeared in, date ASC
	FirstSeen time.Time    // date of first appearance in the range
	LastSeen  time.Time    // date of last appearance in the range

	DaysActive   int     // count of snapshots containing this identity
	MaxMarketCap float64 // running max over daily market caps
	MinMarketCap float64 // running min over daily market caps, 0 until seen
	TotalVolume  float64 // sum of daily volumes

	IsFromLaunchpad bool // true if any record carried the launchpad flag
	DaysSinceLaunch *int // most recent non-nil value in the range

	// Derived after the full range is consumed.
	WeeklyGrowth      float64 // percent change, earliest to latest valid price
	AvgVolume         float64 // TotalVolume / DaysActive
	AvgMarketCap      float64 // mean of daily market caps
	VolumeConsistency float64 // [0,1], higher is more stable
	PriceVolatility   float64 // stddev of daily returns, percent
}

// AssetSummary is one row of a ranked or classified query surface
// (top performers, growth leaders, consistency leaders).
type AssetSummary struct {
	Identity   string
	Symbol     string
	Name       string
	DaysActive int
	Value      float64 // the metric the surface ranks by
}

// LaunchOutcomes buckets launchpad assets no older than a week by
// their weekly growth.
type LaunchOutcomes struct {
	Total        int     // launchpad assets with DaysSinceLaunch <= 7
	Successful   int     // weekly growth > 50%
	Moderate     int     // 0% < weekly growth <= 50%
	Unsuccessful int     // weekly growth <= 0%
	SuccessRate  float64 // Successful / Total * 100
	AvgSuccess   float64 // mean weekly growth of the successful bucket
}
