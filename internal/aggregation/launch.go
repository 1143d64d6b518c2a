package aggregation

import (
	"tokenpulse/internal/domain"
	"tokenpulse/internal/stats"
)

// Launch outcome thresholds.
const (
	launchMaxAgeDays    = 7
	launchSuccessGrowth = 50.0
)

// NewLaunchOutcomes partitions launchpad-sourced assets no older than
// a week into success buckets by weekly growth. Assets without a
// known launch age are excluded.
func NewLaunchOutcomes(series map[string]*domain.AssetSeries) domain.LaunchOutcomes {
	var out domain.LaunchOutcomes
	var successGrowth []float64

	for _, s := range series {
		if !s.IsFromLaunchpad || s.DaysSinceLaunch == nil || *s.DaysSinceLaunch > launchMaxAgeDays {
			continue
		}

		out.Total++
		switch {
		case s.WeeklyGrowth > launchSuccessGrowth:
			out.Successful++
			successGrowth = append(successGrowth, s.WeeklyGrowth)
		case s.WeeklyGrowth > 0:
			out.Moderate++
		default:
			out.Unsuccessful++
		}
	}

	if out.Total > 0 {
		out.SuccessRate = float64(out.Successful) / float64(out.Total) * 100
	}
	out.AvgSuccess = stats.Mean(successGrowth)

	return out
}
