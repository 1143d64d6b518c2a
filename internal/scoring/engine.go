// Package scoring turns a performance analysis into a composite 0-100
// score, ranks batches, and derives a recommendation label. Every
// adjustment is clamped independently before summation, so the final
// score stays bounded for arbitrary finite inputs.
package scoring

import (
	"sort"

	"tokenpulse/internal/domain"
	"tokenpulse/internal/stats"
)

// Score weights and caps.
const (
	baseScore = 50.0

	priceChangeWeight = 0.5
	priceChangeCap    = 25.0

	volumeRatioWeight = 0.3
	volumeRatioCap    = 15.0

	liquidityHealthyBonus  = 10.0
	liquidityModerateBonus = 5.0
	liquidityPoorPenalty   = -10.0

	buyPressureNudge  = 5.0
	buyPressureRatio  = 1.2
	sellPressureRatio = 0.8
)

// Score computes the composite score for one analysis. The result is
// always in [0, 100].
func Score(a *domain.PerformanceAnalysis) float64 {
	score := baseScore

	score += stats.Clamp(priceChangeWeight*a.Metrics.PriceChange24h, -priceChangeCap, priceChangeCap)

	volumeAdj := volumeRatioWeight * a.Metrics.VolumeToMarketCapPct
	if volumeAdj > volumeRatioCap {
		volumeAdj = volumeRatioCap
	}
	score += volumeAdj

	switch a.Trends.Strength.LiquidityHealth {
	case domain.LiquidityHealthy:
		score += liquidityHealthyBonus
	case domain.LiquidityModerate:
		score += liquidityModerateBonus
	case domain.LiquidityPoor:
		score += liquidityPoorPenalty
	}

	if a.Metrics.BuySellRatio > buyPressureRatio {
		score += buyPressureNudge
	} else if a.Metrics.BuySellRatio < sellPressureRatio {
		score -= buyPressureNudge
	}

	return stats.Clamp(score, 0, 100)
}

// Rank sorts a batch descending by score and assigns 1-based ranks in
// sorted order. The sort is stable: equal scores keep their relative
// input order. The input slice is modified in place and returned.
func Rank(batch []*domain.PerformanceAnalysis) []*domain.PerformanceAnalysis {
	sort.SliceStable(batch, func(i, j int) bool {
		return batch[i].Score > batch[j].Score
	})
	for i, a := range batch {
		a.Rank = i + 1
	}
	return batch
}
