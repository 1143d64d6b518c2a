package trend

import (
	"tokenpulse/internal/domain"
	"tokenpulse/internal/stats"
)

// Sustainability thresholds.
const (
	sustainMinPoints = 3
	sustainHighBar   = 0.7
	sustainLowBar    = 0.3
	neutralScore     = 0.5
)

// assessSustainability averages volume consistency, liquidity
// consistency and price stability over the historical window. Fewer
// than three points is not enough signal: the label is unknown with a
// neutral score.
func assessSustainability(historical []domain.DailyPoint) domain.SustainabilityAssessment {
	if len(historical) < sustainMinPoints {
		return domain.SustainabilityAssessment{
			Label: domain.SustainabilityUnknown,
			Score: neutralScore,
		}
	}

	volumes := make([]float64, len(historical))
	liquidity := make([]float64, len(historical))
	prices := make([]float64, len(historical))
	for i, p := range historical {
		volumes[i] = p.Volume24h
		liquidity[i] = p.Liquidity
		prices[i] = p.Price
	}

	volCons := stats.Consistency(volumes)
	liqCons := stats.Consistency(liquidity)
	stability := 1 - stats.Volatility(prices)/100
	if stability < 0 {
		stability = 0
	}

	score := (volCons + liqCons + stability) / 3
	label := domain.SustainabilityModerate
	if score > sustainHighBar {
		label = domain.SustainabilityHigh
	} else if score < sustainLowBar {
		label = domain.SustainabilityLow
	}

	return domain.SustainabilityAssessment{
		Label:                label,
		Score:                score,
		VolumeConsistency:    volCons,
		LiquidityConsistency: liqCons,
		PriceStability:       stability,
	}
}
