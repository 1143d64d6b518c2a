package domain

// Alert types.
const (
	AlertPriceBreakout = "price_breakout"
	AlertPriceDump     = "price_dump"
	AlertVolumeSpike   = "volume_spike"
	AlertLowLiquidity  = "low_liquidity"
)

// Alert severities.
const (
	SeverityHigh   = "high"
	SeverityMedium = "medium"
)

// Alert is a single threshold breach detected for an asset. All
// checks are independent; an asset may carry several alerts at once.
type Alert struct {
	Type     string  // machine-readable alert type
	Message  string  // human-readable description
	Severity string  // high | medium
	Value    float64 // the value that tripped the threshold
}
