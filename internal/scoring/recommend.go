package scoring

import "tokenpulse/internal/domain"

// Recommendation thresholds.
const (
	strongBuyScore = 80.0
	buyScore       = 65.0
	holdScore      = 50.0
	sellScore      = 35.0
	holdMaxAlerts  = 1
)

// Recommend derives the action label from score, momentum and alert
// count. Rules are evaluated in order; the first match wins.
func Recommend(a *domain.PerformanceAnalysis) string {
	momentum := a.Trends.Momentum.Overall
	alerts := len(a.Alerts)

	switch {
	case a.Score > strongBuyScore && momentum == domain.MomentumBullish && alerts == 0:
		return domain.RecommendStrongBuy
	case a.Score > buyScore && momentum != domain.MomentumBearish:
		return domain.RecommendBuy
	case a.Score > holdScore && alerts <= holdMaxAlerts:
		return domain.RecommendHold
	case a.Score < sellScore || momentum == domain.MomentumBearish:
		return domain.RecommendSell
	default:
		return domain.RecommendWatch
	}
}
