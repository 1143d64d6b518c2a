package cohort

import (
	"tokenpulse/internal/domain"
	"tokenpulse/internal/stats"
)

// Metric names for the daily aggregate trends.
const (
	MetricTotalVolume    = "total_volume"
	MetricTotalMarketCap = "total_market_cap"
	MetricAvgPriceChange = "avg_price_change"
	MetricActiveAssets   = "active_assets"
)

// DailyTrend aggregates each snapshot into market-wide totals, fits a
// least-squares slope to every aggregate series, and labels its
// direction.
func DailyTrend(snapshots []domain.Snapshot) domain.DailyTrendResult {
	days := make([]domain.DailyAggregate, 0, len(snapshots))
	for i := range snapshots {
		days = append(days, aggregateDay(&snapshots[i]))
	}

	n := len(days)
	volumes := make([]float64, n)
	caps := make([]float64, n)
	changes := make([]float64, n)
	active := make([]float64, n)
	for i, d := range days {
		volumes[i] = d.TotalVolume
		caps[i] = d.TotalMarketCap
		changes[i] = d.AvgPriceChange
		active[i] = float64(d.ActiveAssets)
	}

	return domain.DailyTrendResult{
		Days: days,
		Trends: []domain.MetricTrend{
			metricTrend(MetricTotalVolume, volumes),
			metricTrend(MetricTotalMarketCap, caps),
			metricTrend(MetricAvgPriceChange, changes),
			metricTrend(MetricActiveAssets, active),
		},
	}
}

// aggregateDay sums one snapshot into a DailyAggregate.
func aggregateDay(snap *domain.Snapshot) domain.DailyAggregate {
	agg := domain.DailyAggregate{
		Date:         snap.Date,
		ActiveAssets: len(snap.Assets),
	}

	changes := make([]float64, 0, len(snap.Assets))
	for i := range snap.Assets {
		rec := &snap.Assets[i]
		agg.TotalVolume += rec.Volume24h
		agg.TotalMarketCap += rec.MarketCap
		changes = append(changes, rec.PriceChange24h)
	}
	agg.AvgPriceChange = stats.Mean(changes)

	return agg
}

// metricTrend fits the slope and labels the direction.
func metricTrend(name string, values []float64) domain.MetricTrend {
	slope := stats.LinearTrendSlope(values)

	direction := domain.TrendStable
	if slope > 0 {
		direction = domain.TrendGrowing
	} else if slope < 0 {
		direction = domain.TrendDeclining
	}

	return domain.MetricTrend{
		Metric:    name,
		Values:    values,
		Slope:     slope,
		Direction: direction,
	}
}
