package aggregation

import (
	"math"
	"testing"

	"tokenpulse/internal/domain"
)

// rangeOf builds snapshots for days 1..n with per-asset price series.
func rangeOf(n int, assets map[string][]float64, volume float64) []domain.Snapshot {
	snaps := make([]domain.Snapshot, n)
	for i := 0; i < n; i++ {
		snap := snapshotOn(i + 1)
		for symbol, prices := range assets {
			if i < len(prices) && prices[i] > 0 {
				snap.Assets = append(snap.Assets, record("Addr"+symbol, symbol, prices[i], volume))
			}
		}
		snaps[i] = snap
	}
	return snaps
}

func TestTopPerformers_RanksByGrowth(t *testing.T) {
	series := Aggregate(rangeOf(7, map[string][]float64{
		"X": {1.0, 1.1, 1.2, 1.3, 1.4, 1.5, 2.0}, // +100%
		"S": {1.0, 1.0, 1.0, 1.0, 1.0, 1.0, 1.2}, // +20%
	}, 10000))

	top := TopPerformers(series, 7, 10)
	if len(top) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(top))
	}
	if top[0].Symbol != "X" {
		t.Errorf("leader = %s, want X", top[0].Symbol)
	}
	if math.Abs(top[0].Value-100) > 1e-9 {
		t.Errorf("leader growth = %f, want 100", top[0].Value)
	}
}

func TestTopPerformers_ExcludesShortLivedAssets(t *testing.T) {
	series := Aggregate(rangeOf(7, map[string][]float64{
		"X": {1.0, 1.1, 1.2, 1.3, 1.4, 1.5, 2.0},
		"Y": {1.0}, // single day, below the 3-day floor
	}, 10000))

	top := TopPerformers(series, 7, 10)
	for _, row := range top {
		if row.Symbol == "Y" {
			t.Error("single-day asset must be excluded from top performers")
		}
	}
}

func TestTopPerformers_Limit(t *testing.T) {
	series := Aggregate(rangeOf(7, map[string][]float64{
		"A": {1, 1, 1, 1, 1, 1, 2},
		"B": {1, 1, 1, 1, 1, 1, 3},
		"C": {1, 1, 1, 1, 1, 1, 4},
	}, 10000))

	top := TopPerformers(series, 7, 2)
	if len(top) != 2 {
		t.Fatalf("expected limit of 2, got %d", len(top))
	}
	if top[0].Symbol != "C" || top[1].Symbol != "B" {
		t.Errorf("order = %s,%s, want C,B", top[0].Symbol, top[1].Symbol)
	}
}

func TestMarketCapGrowthLeaders(t *testing.T) {
	series := Aggregate(rangeOf(4, map[string][]float64{
		"G": {1.0, 2.0, 3.0, 4.0}, // cap 1e6 -> 4e6: +300%
		"F": {2.0, 2.0, 2.0, 2.0}, // flat cap, excluded
	}, 10000))

	leaders := MarketCapGrowthLeaders(series, 10)
	if len(leaders) != 1 {
		t.Fatalf("expected 1 leader, got %d", len(leaders))
	}
	if leaders[0].Symbol != "G" {
		t.Errorf("leader = %s, want G", leaders[0].Symbol)
	}
	if math.Abs(leaders[0].Value-300) > 1e-9 {
		t.Errorf("growth = %f, want 300", leaders[0].Value)
	}
}

func TestVolumeConsistencyLeaders_Filters(t *testing.T) {
	// Constant volume above the floor over 7 days: perfect consistency.
	steady := Aggregate(rangeOf(7, map[string][]float64{
		"X": {1, 1, 1, 1, 1, 1, 1},
	}, 20000))
	// Below the average-volume floor: excluded despite consistency.
	thin := Aggregate(rangeOf(7, map[string][]float64{
		"T": {1, 1, 1, 1, 1, 1, 1},
	}, 500))
	// Short-lived: excluded by the 5-day requirement.
	young := Aggregate(rangeOf(4, map[string][]float64{
		"Y": {1, 1, 1, 1},
	}, 20000))

	if got := VolumeConsistencyLeaders(steady, 10); len(got) != 1 || math.Abs(got[0].Value-1) > 1e-9 {
		t.Errorf("steady asset should lead with consistency 1, got %+v", got)
	}
	if got := VolumeConsistencyLeaders(thin, 10); len(got) != 0 {
		t.Errorf("thin asset should be excluded, got %+v", got)
	}
	if got := VolumeConsistencyLeaders(young, 10); len(got) != 0 {
		t.Errorf("young asset should be excluded, got %+v", got)
	}
}

func TestNewLaunchOutcomes(t *testing.T) {
	launch := func(symbol string, prices []float64, age int) []domain.AssetRecord {
		recs := make([]domain.AssetRecord, len(prices))
		for i, p := range prices {
			rec := record("Addr"+symbol, symbol, p, 10000)
			rec.IsFromLaunchpad = true
			rec.DaysSinceLaunch = intPtr(age)
			recs[i] = rec
		}
		return recs
	}

	winner := launch("W", []float64{1.0, 2.0}, 3)     // +100% -> successful
	modest := launch("M", []float64{1.0, 1.2}, 5)     // +20%  -> moderate
	failed := launch("L", []float64{1.0, 0.5}, 2)     // -50%  -> unsuccessful
	oldTok := launch("O", []float64{1.0, 9.0}, 30)    // too old, excluded

	snaps := []domain.Snapshot{
		snapshotOn(1, winner[0], modest[0], failed[0], oldTok[0]),
		snapshotOn(2, winner[1], modest[1], failed[1], oldTok[1]),
	}

	out := NewLaunchOutcomes(Aggregate(snaps))
	if out.Total != 3 {
		t.Errorf("Total = %d, want 3", out.Total)
	}
	if out.Successful != 1 || out.Moderate != 1 || out.Unsuccessful != 1 {
		t.Errorf("buckets = %d/%d/%d, want 1/1/1", out.Successful, out.Moderate, out.Unsuccessful)
	}
	if math.Abs(out.SuccessRate-100.0/3.0) > 1e-9 {
		t.Errorf("SuccessRate = %f, want %f", out.SuccessRate, 100.0/3.0)
	}
	if math.Abs(out.AvgSuccess-100) > 1e-9 {
		t.Errorf("AvgSuccess = %f, want 100", out.AvgSuccess)
	}
}
