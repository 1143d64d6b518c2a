package scoring

import (
	"math"
	"testing"

	"tokenpulse/internal/domain"
)

func analysisWith(change, volPct float64, health string, ratio float64) *domain.PerformanceAnalysis {
	return &domain.PerformanceAnalysis{
		Metrics: domain.PerformanceMetrics{
			PriceChange24h:       change,
			VolumeToMarketCapPct: volPct,
			BuySellRatio:         ratio,
		},
		Trends: domain.TrendAssessment{
			Strength: domain.StrengthAssessment{LiquidityHealth: health},
		},
	}
}

func TestScore_Neutral(t *testing.T) {
	// No signal at all: base score with a neutral buy/sell ratio of 1.
	a := analysisWith(0, 0, domain.LiquidityUnknown, 1)
	if got := Score(a); got != 50 {
		t.Errorf("Score = %f, want base 50", got)
	}
}

func TestScore_Components(t *testing.T) {
	tests := []struct {
		name string
		a    *domain.PerformanceAnalysis
		want float64
	}{
		{"price change adds half, capped at 25", analysisWith(100, 0, domain.LiquidityUnknown, 1), 75},
		{"price change cap holds for extreme moves", analysisWith(1000, 0, domain.LiquidityUnknown, 1), 75},
		{"negative change subtracts, capped at -25", analysisWith(-200, 0, domain.LiquidityUnknown, 1), 25},
		{"volume ratio capped at 15", analysisWith(0, 200, domain.LiquidityUnknown, 1), 65},
		{"healthy liquidity bonus", analysisWith(0, 0, domain.LiquidityHealthy, 1), 60},
		{"moderate liquidity bonus", analysisWith(0, 0, domain.LiquidityModerate, 1), 55},
		{"poor liquidity penalty", analysisWith(0, 0, domain.LiquidityPoor, 1), 40},
		{"buy pressure nudge", analysisWith(0, 0, domain.LiquidityUnknown, 1.5), 55},
		{"sell pressure nudge", analysisWith(0, 0, domain.LiquidityUnknown, 0.5), 45},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Score(tt.a); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Score = %f, want %f", got, tt.want)
			}
		})
	}
}

func TestScore_AlwaysBounded(t *testing.T) {
	extremes := []float64{-1e12, -1e6, -100, 0, 100, 1e6, 1e12}
	for _, change := range extremes {
		for _, volPct := range extremes {
			for _, ratio := range extremes {
				a := analysisWith(change, volPct, domain.LiquidityHealthy, ratio)
				got := Score(a)
				if got < 0 || got > 100 {
					t.Fatalf("Score(change=%g, vol=%g, ratio=%g) = %f out of [0,100]",
						change, volPct, ratio, got)
				}
			}
		}
	}
}

func TestRank_ContiguousAndOrdered(t *testing.T) {
	batch := []*domain.PerformanceAnalysis{
		{Identity: "a", Score: 40},
		{Identity: "b", Score: 90},
		{Identity: "c", Score: 70},
		{Identity: "d", Score: 90},
	}

	ranked := Rank(batch)

	if len(ranked) != 4 {
		t.Fatalf("expected 4 ranked entries, got %d", len(ranked))
	}
	for i, a := range ranked {
		if a.Rank != i+1 {
			t.Errorf("rank at position %d = %d, want %d", i, a.Rank, i+1)
		}
		if i > 0 && ranked[i-1].Score < a.Score {
			t.Errorf("scores not descending at position %d", i)
		}
	}
	// Stable: b entered before d with an equal score, so b keeps rank 1.
	if ranked[0].Identity != "b" || ranked[1].Identity != "d" {
		t.Errorf("tie order = %s,%s, want b,d", ranked[0].Identity, ranked[1].Identity)
	}
}

func TestRecommend_FirstMatchWins(t *testing.T) {
	tests := []struct {
		name     string
		score    float64
		momentum string
		alerts   int
		want     string
	}{
		{"strong buy needs everything", 85, domain.MomentumBullish, 0, domain.RecommendStrongBuy},
		{"alerts demote strong buy", 85, domain.MomentumBullish, 1, domain.RecommendBuy},
		{"buy tolerates neutral momentum", 70, domain.MomentumNeutral, 2, domain.RecommendBuy},
		{"bearish momentum blocks buy", 70, domain.MomentumBearish, 0, domain.RecommendSell},
		{"hold on mid score", 55, domain.MomentumBearish, 1, domain.RecommendHold},
		{"sell on low score", 20, domain.MomentumNeutral, 0, domain.RecommendSell},
		{"watch is the fallback", 45, domain.MomentumNeutral, 3, domain.RecommendWatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := &domain.PerformanceAnalysis{
				Score: tt.score,
				Trends: domain.TrendAssessment{
					Momentum: domain.MomentumAssessment{Overall: tt.momentum},
				},
				Alerts: make([]domain.Alert, tt.alerts),
			}
			if got := Recommend(a); got != tt.want {
				t.Errorf("Recommend = %s, want %s", got, tt.want)
			}
		})
	}
}
