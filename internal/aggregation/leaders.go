package aggregation

import (
	"math"
	"sort"

	"tokenpulse/internal/domain"
	"tokenpulse/internal/stats"
)

// Leader-board thresholds.
const (
	growthLeaderMinDays    = 3
	consistencyMinDays     = 5
	consistencyMinAvgVolume = 10000
)

// TopPerformers ranks assets by price growth over the window,
// descending. Assets active for less than half the window (capped at
// three days) are excluded so a single lucky day cannot top the board.
func TopPerformers(series map[string]*domain.AssetSeries, windowDays, limit int) []domain.AssetSummary {
	minDays := math.Min(0.5*float64(windowDays), growthLeaderMinDays)

	var rows []domain.AssetSummary
	for _, s := range series {
		if float64(s.DaysActive) < minDays {
			continue
		}
		if len(s.Points) == 0 {
			continue
		}
		first := s.Points[0].Price
		last := s.Points[len(s.Points)-1].Price
		rows = append(rows, summaryRow(s, stats.PercentChange(last, first)))
	}

	return sortAndTruncate(rows, limit)
}

// MarketCapGrowthLeaders ranks assets by the spread between their
// running max and min market cap, as a percent of the min.
func MarketCapGrowthLeaders(series map[string]*domain.AssetSeries, limit int) []domain.AssetSummary {
	var rows []domain.AssetSummary
	for _, s := range series {
		if s.DaysActive < growthLeaderMinDays {
			continue
		}
		if s.MaxMarketCap <= s.MinMarketCap || s.MinMarketCap <= 0 {
			continue
		}
		growth := (s.MaxMarketCap - s.MinMarketCap) / s.MinMarketCap * 100
		rows = append(rows, summaryRow(s, growth))
	}

	return sortAndTruncate(rows, limit)
}

// VolumeConsistencyLeaders ranks assets by volume consistency.
// Requires at least five active days and meaningful average volume,
// so thin books do not score as "consistent".
func VolumeConsistencyLeaders(series map[string]*domain.AssetSeries, limit int) []domain.AssetSummary {
	var rows []domain.AssetSummary
	for _, s := range series {
		if s.DaysActive < consistencyMinDays {
			continue
		}
		if s.AvgVolume <= consistencyMinAvgVolume {
			continue
		}
		rows = append(rows, summaryRow(s, s.VolumeConsistency))
	}

	return sortAndTruncate(rows, limit)
}

func summaryRow(s *domain.AssetSeries, value float64) domain.AssetSummary {
	return domain.AssetSummary{
		Identity:   s.Identity,
		Symbol:     s.Symbol,
		Name:       s.Name,
		DaysActive: s.DaysActive,
		Value:      value,
	}
}

// sortAndTruncate orders rows by value descending, breaking ties by
// identity for deterministic output, and applies the limit.
func sortAndTruncate(rows []domain.AssetSummary, limit int) []domain.AssetSummary {
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Value != rows[j].Value {
			return rows[i].Value > rows[j].Value
		}
		return rows[i].Identity < rows[j].Identity
	})
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	return rows
}
