package trend

import (
	"fmt"

	"tokenpulse/internal/domain"
)

// Alert thresholds.
const (
	breakoutChangePct    = 100.0
	dumpChangePct        = -50.0
	volumeSpikePct       = 50.0
	lowLiquidityFloor    = 5000.0
	lowLiquidityMinMcap  = 100000.0
)

// detectAlerts runs the independent threshold checks against the
// current record. All checks may fire at once.
func detectAlerts(rec *domain.AssetRecord, volumeToMcapPct float64) []domain.Alert {
	var alerts []domain.Alert

	if rec.PriceChange24h > breakoutChangePct {
		alerts = append(alerts, domain.Alert{
			Type:     domain.AlertPriceBreakout,
			Message:  fmt.Sprintf("%s is up %.1f%% in 24h", rec.Symbol, rec.PriceChange24h),
			Severity: domain.SeverityHigh,
			Value:    rec.PriceChange24h,
		})
	}

	if rec.PriceChange24h < dumpChangePct {
		alerts = append(alerts, domain.Alert{
			Type:     domain.AlertPriceDump,
			Message:  fmt.Sprintf("%s is down %.1f%% in 24h", rec.Symbol, rec.PriceChange24h),
			Severity: domain.SeverityHigh,
			Value:    rec.PriceChange24h,
		})
	}

	if volumeToMcapPct > volumeSpikePct {
		alerts = append(alerts, domain.Alert{
			Type:     domain.AlertVolumeSpike,
			Message:  fmt.Sprintf("%s 24h volume is %.1f%% of market cap", rec.Symbol, volumeToMcapPct),
			Severity: domain.SeverityMedium,
			Value:    volumeToMcapPct,
		})
	}

	if rec.Liquidity < lowLiquidityFloor && rec.MarketCap > lowLiquidityMinMcap {
		alerts = append(alerts, domain.Alert{
			Type:     domain.AlertLowLiquidity,
			Message:  fmt.Sprintf("%s liquidity %.0f is thin for a %.0f market cap", rec.Symbol, rec.Liquidity, rec.MarketCap),
			Severity: domain.SeverityHigh,
			Value:    rec.Liquidity,
		})
	}

	return alerts
}
