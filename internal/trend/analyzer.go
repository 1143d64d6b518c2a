// Package trend assesses one asset at a time: momentum, strength and
// sustainability from the current record plus its recent history, and
// independent threshold alerts. All computation is pure; missing data
// degrades to documented neutral values instead of failing.
package trend

import (
	"tokenpulse/internal/domain"
	"tokenpulse/internal/identity"
	"tokenpulse/internal/stats"
)

// weeklyWindow caps how much history feeds the weekly context.
const weeklyWindow = 7

// Analyze produces the full per-asset assessment from the current
// record and its (possibly empty) historical series. Only the most
// recent seven entries of the series are used for weekly context.
func Analyze(current domain.AssetRecord, historical []domain.DailyPoint) domain.PerformanceAnalysis {
	if len(historical) > weeklyWindow {
		historical = historical[len(historical)-weeklyWindow:]
	}

	metrics := buildMetrics(&current, historical)

	return domain.PerformanceAnalysis{
		Identity: identity.ResolveRecordID(current.Address, current.Symbol),
		Current:  current,
		Metrics:  metrics,
		Trends: domain.TrendAssessment{
			Momentum:       assessMomentum(current.PriceChange24h, metrics.VolumeToMarketCapPct),
			Strength:       assessStrength(&current),
			Sustainability: assessSustainability(historical),
		},
		Alerts: detectAlerts(&current, metrics.VolumeToMarketCapPct),
	}
}

// buildMetrics flattens the record into the sub-metrics the scoring
// engine consumes, plus the optional historical block.
func buildMetrics(rec *domain.AssetRecord, historical []domain.DailyPoint) domain.PerformanceMetrics {
	m := domain.PerformanceMetrics{
		Price:          rec.Price,
		PriceChange24h: rec.PriceChange24h,
		Volume24h:      rec.Volume24h,
		MarketCap:      rec.MarketCap,
		Liquidity:      rec.Liquidity,
		HasTxCounts:    rec.Buys24h != nil || rec.Sells24h != nil,
	}

	if rec.MarketCap > 0 {
		m.VolumeToMarketCapPct = rec.Volume24h / rec.MarketCap * 100
		m.LiquidityToMarketCapPct = rec.Liquidity / rec.MarketCap * 100
	}

	buys, sells := 0, 0
	if rec.Buys24h != nil {
		buys = *rec.Buys24h
	}
	if rec.Sells24h != nil {
		sells = *rec.Sells24h
	}
	m.BuySellRatio = buySellRatio(buys, sells)

	if len(historical) > 0 {
		m.History = historyBlock(historical)
	}
	return m
}

// historyBlock derives the trend sub-metrics from the window.
func historyBlock(points []domain.DailyPoint) *domain.HistoricalMetrics {
	volumes := make([]float64, len(points))
	prices := make([]float64, len(points))
	caps := make([]float64, len(points))
	for i, p := range points {
		volumes[i] = p.Volume24h
		prices[i] = p.Price
		caps[i] = p.MarketCap
	}

	growth := 0.0
	if len(prices) >= 2 {
		first, last := 0.0, 0.0
		for _, p := range prices {
			if p > 0 {
				if first == 0 {
					first = p
				}
				last = p
			}
		}
		growth = stats.PercentChange(last, first)
	}

	return &domain.HistoricalMetrics{
		DaysActive:        len(points),
		WeeklyGrowth:      growth,
		AvgVolume:         stats.Mean(volumes),
		AvgMarketCap:      stats.Mean(caps),
		VolumeConsistency: stats.Consistency(volumes),
		PriceVolatility:   stats.Volatility(prices),
	}
}
