package trend

import "tokenpulse/internal/domain"

// classifyPriceChange maps a signed 24h percent change onto one of
// seven momentum buckets with scores in [-1, 1].
func classifyPriceChange(changePct float64) (string, float64) {
	switch {
	case changePct <= -50:
		return domain.MomentumVeryBearish, -1.0
	case changePct <= -20:
		return domain.MomentumBearish, -0.6
	case changePct <= -5:
		return domain.MomentumSlightlyBearish, -0.3
	case changePct < 5:
		return domain.MomentumNeutral, 0.0
	case changePct < 20:
		return domain.MomentumSlightlyBullish, 0.3
	case changePct <= 50:
		return domain.MomentumBullish, 0.6
	default:
		return domain.MomentumVeryBullish, 1.0
	}
}

// classifyVolumeRatio maps the volume/market-cap ratio (percent) onto
// six activity buckets. A zero ratio (unknown market cap) lands in
// very_low.
func classifyVolumeRatio(volumeToMcapPct float64) (string, float64) {
	switch {
	case volumeToMcapPct < 1:
		return domain.VolumeVeryLow, -0.5
	case volumeToMcapPct < 5:
		return domain.VolumeLow, -0.2
	case volumeToMcapPct < 10:
		return domain.VolumeModerate, 0.1
	case volumeToMcapPct < 25:
		return domain.VolumeHigh, 0.4
	case volumeToMcapPct < 50:
		return domain.VolumeVeryHigh, 0.7
	default:
		return domain.VolumeExtremelyHigh, 1.0
	}
}

// assessMomentum combines the price and volume buckets. The overall
// label only turns bullish or bearish when the average of the two
// scores clears +-0.6.
func assessMomentum(changePct, volumeToMcapPct float64) domain.MomentumAssessment {
	priceBucket, priceScore := classifyPriceChange(changePct)
	volumeBucket, volumeScore := classifyVolumeRatio(volumeToMcapPct)

	avg := (priceScore + volumeScore) / 2
	overall := domain.MomentumNeutral
	if avg > 0.6 {
		overall = domain.MomentumBullish
	} else if avg < -0.6 {
		overall = domain.MomentumBearish
	}

	return domain.MomentumAssessment{
		PriceBucket:  priceBucket,
		PriceScore:   priceScore,
		VolumeBucket: volumeBucket,
		VolumeScore:  volumeScore,
		Overall:      overall,
	}
}
