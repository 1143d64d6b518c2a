package trend

import "tokenpulse/internal/domain"

// Trading activity labels.
const (
	ActivityNone       = "none"
	ActivityLight      = "light"
	ActivityModerate   = "moderate"
	ActivityActive     = "active"
	ActivityVeryActive = "very_active"
)

// Buy/sell pressure labels.
const (
	PressureHeavySelling = "heavy_selling"
	PressureSelling      = "selling"
	PressureBalanced     = "balanced"
	PressureBuying       = "buying"
	PressureHeavyBuying  = "heavy_buying"
)

// buySellSentinel stands in for the ratio when sells are zero but
// buys exist; large enough to land in the strongest buying bucket.
const buySellSentinel = 999.0

// classifyLiquidityHealth buckets liquidity as a share of market cap.
// Either input missing (reported as zero) yields unknown, never a
// division error.
func classifyLiquidityHealth(liquidity, marketCap float64) string {
	if liquidity <= 0 || marketCap <= 0 {
		return domain.LiquidityUnknown
	}
	pct := liquidity / marketCap * 100
	switch {
	case pct > 10:
		return domain.LiquidityHealthy
	case pct > 5:
		return domain.LiquidityModerate
	case pct > 1:
		return domain.LiquidityLow
	default:
		return domain.LiquidityPoor
	}
}

// classifyActivity buckets by transaction count, with one escalation
// step when the average trade is unusually large.
func classifyActivity(txCount int, avgTradeSize float64) string {
	var bucket string
	switch {
	case txCount <= 0:
		return ActivityNone
	case txCount > 1000:
		bucket = ActivityVeryActive
	case txCount > 500:
		bucket = ActivityActive
	case txCount > 100:
		bucket = ActivityModerate
	default:
		bucket = ActivityLight
	}

	if avgTradeSize > 1000 {
		switch bucket {
		case ActivityLight:
			bucket = ActivityModerate
		case ActivityModerate:
			bucket = ActivityActive
		}
	}
	return bucket
}

// buySellRatio computes buys/sells with the zero-sell guard: a book
// with buys and no sells reports the sentinel, an empty book reports
// a neutral 1.
func buySellRatio(buys, sells int) float64 {
	if sells == 0 {
		if buys > 0 {
			return buySellSentinel
		}
		return 1
	}
	return float64(buys) / float64(sells)
}

// classifyPressure buckets the buy/sell ratio.
func classifyPressure(ratio float64) string {
	switch {
	case ratio > 2:
		return PressureHeavyBuying
	case ratio > 1.2:
		return PressureBuying
	case ratio >= 0.8:
		return PressureBalanced
	case ratio >= 0.5:
		return PressureSelling
	default:
		return PressureHeavySelling
	}
}

// assessStrength classifies structural market quality for the asset.
func assessStrength(rec *domain.AssetRecord) domain.StrengthAssessment {
	txCount := rec.TxCount()
	avgTrade := 0.0
	if txCount > 0 {
		avgTrade = rec.Volume24h / float64(txCount)
	}

	buys, sells := 0, 0
	if rec.Buys24h != nil {
		buys = *rec.Buys24h
	}
	if rec.Sells24h != nil {
		sells = *rec.Sells24h
	}
	ratio := buySellRatio(buys, sells)

	return domain.StrengthAssessment{
		LiquidityHealth: classifyLiquidityHealth(rec.Liquidity, rec.MarketCap),
		TradingActivity: classifyActivity(txCount, avgTrade),
		AvgTradeSize:    avgTrade,
		BuySellPressure: classifyPressure(ratio),
		BuySellRatio:    ratio,
	}
}
