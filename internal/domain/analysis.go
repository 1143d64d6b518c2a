package domain

// Momentum classification labels.
const (
	MomentumVeryBearish     = "very_bearish"
	MomentumBearish         = "bearish"
	MomentumSlightlyBearish = "slightly_bearish"
	MomentumNeutral         = "neutral"
	MomentumSlightlyBullish = "slightly_bullish"
	MomentumBullish         = "bullish"
	MomentumVeryBullish     = "very_bullish"
)

// Volume-to-market-cap activity labels.
const (
	VolumeVeryLow       = "very_low"
	VolumeLow           = "low"
	VolumeModerate      = "moderate"
	VolumeHigh          = "high"
	VolumeVeryHigh      = "very_high"
	VolumeExtremelyHigh = "extremely_high"
)

// Liquidity health labels.
const (
	LiquidityHealthy  = "healthy"
	LiquidityModerate = "moderate"
	LiquidityLow      = "low"
	LiquidityPoor     = "poor"
	LiquidityUnknown  = "unknown"
)

// Sustainability labels.
const (
	SustainabilityHigh     = "high"
	SustainabilityModerate = "moderate"
	SustainabilityLow      = "low"
	SustainabilityUnknown  = "unknown"
)

// Recommendation labels, strongest first.
const (
	RecommendStrongBuy = "strong_buy"
	RecommendBuy       = "buy"
	RecommendHold      = "hold"
	RecommendSell      = "sell"
	RecommendWatch     = "watch"
)

// PerformanceMetrics holds the flat per-asset sub-metrics the scoring
// engine consumes. Ratios are expressed in percent.
type PerformanceMetrics struct {
	Price                   float64
	PriceChange24h          float64
	Volume24h               float64
	MarketCap               float64
	Liquidity               float64
	VolumeToMarketCapPct    float64 // Volume24h / MarketCap * 100, 0 if cap unknown
	LiquidityToMarketCapPct float64 // Liquidity / MarketCap * 100, 0 if cap unknown
	BuySellRatio            float64 // Buys24h / Sells24h with zero-sell sentinel
	HasTxCounts             bool    // false when the source omitted both counts

	History *HistoricalMetrics // nil when no historical series was available
}

// HistoricalMetrics is the optional trend block sourced from the
// asset's series over the analysis window.
type HistoricalMetrics struct {
	DaysActive        int
	WeeklyGrowth      float64
	AvgVolume         float64
	AvgMarketCap      float64
	VolumeConsistency float64
	PriceVolatility   float64
}

// MomentumAssessment classifies short-term direction from the 24h
// price change and the volume/market-cap ratio.
type MomentumAssessment struct {
	PriceBucket  string  // one of the Momentum* labels
	PriceScore   float64 // [-1, 1]
	VolumeBucket string  // one of the Volume* labels
	VolumeScore  float64 // [-1, 1]
	Overall      string  // bullish | bearish | neutral
}

// StrengthAssessment classifies structural quality of the current
// market for the asset.
type StrengthAssessment struct {
	LiquidityHealth string  // one of the Liquidity* labels
	TradingActivity string  // none | light | moderate | active | very_active
	AvgTradeSize    float64 // Volume24h / tx count, 0 when count unknown
	BuySellPressure string  // heavy_selling .. heavy_buying
	BuySellRatio    float64
}

// SustainabilityAssessment rates how repeatable recent behavior looks,
// averaged over volume consistency, liquidity consistency and price
// stability.
type SustainabilityAssessment struct {
	Label                string  // one of the Sustainability* labels
	Score                float64 // [0,1]; 0.5 when unknown
	VolumeConsistency    float64
	LiquidityConsistency float64
	PriceStability       float64 // 1 - volatility/100, floored at 0
}

// TrendAssessment bundles the three independent trend-quality axes.
type TrendAssessment struct {
	Momentum       MomentumAssessment
	Strength       StrengthAssessment
	Sustainability SustainabilityAssessment
}

// PerformanceAnalysis is the full per-asset result of one analysis
// invocation. Rank is zero until the batch has been ranked.
type PerformanceAnalysis struct {
	Identity       string
	Current        AssetRecord
	Metrics        PerformanceMetrics
	Trends         TrendAssessment
	Alerts         []Alert
	Score          float64 // [0,100]
	Rank           int     // 1-based, assigned by batch ranking
	Recommendation string
}
