package aggregation

import (
	"math"
	"reflect"
	"testing"
	"time"

	"tokenpulse/internal/domain"
)

func day(n int) time.Time {
	return time.Date(2025, 6, n, 0, 0, 0, 0, time.UTC)
}

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }

// snapshotOn builds a snapshot containing the given records.
func snapshotOn(n int, assets ...domain.AssetRecord) domain.Snapshot {
	return domain.Snapshot{
		Date:      day(n),
		Timestamp: day(n).Add(12 * time.Hour),
		Assets:    assets,
	}
}

func record(addr, symbol string, price, volume float64) domain.AssetRecord {
	rec := domain.AssetRecord{
		Symbol:    symbol,
		Name:      symbol + " Token",
		Price:     price,
		Volume24h: volume,
		MarketCap: price * 1e6,
		Liquidity: 50000,
	}
	if addr != "" {
		rec.Address = strPtr(addr)
	}
	return rec
}

func TestAggregate_SevenDaySeries(t *testing.T) {
	prices := []float64{1.0, 1.1, 1.2, 1.3, 1.4, 1.5, 2.0}
	snaps := make([]domain.Snapshot, len(prices))
	for i, p := range prices {
		snaps[i] = snapshotOn(i+1, record("AddrX", "X", p, 10000))
	}

	series := Aggregate(snaps)
	s, ok := series["AddrX"]
	if !ok {
		t.Fatal("expected series for AddrX")
	}

	if s.DaysActive != 7 {
		t.Errorf("DaysActive = %d, want 7", s.DaysActive)
	}
	if math.Abs(s.WeeklyGrowth-100) > 1e-9 {
		t.Errorf("WeeklyGrowth = %f, want 100", s.WeeklyGrowth)
	}
	if math.Abs(s.VolumeConsistency-1) > 1e-9 {
		t.Errorf("VolumeConsistency = %f, want 1 for constant volume", s.VolumeConsistency)
	}
	if !s.FirstSeen.Equal(day(1)) || !s.LastSeen.Equal(day(7)) {
		t.Errorf("FirstSeen/LastSeen = %v/%v, want day 1 / day 7", s.FirstSeen, s.LastSeen)
	}
	if math.Abs(s.TotalVolume-70000) > 1e-9 {
		t.Errorf("TotalVolume = %f, want 70000", s.TotalVolume)
	}
	if math.Abs(s.AvgVolume-10000) > 1e-9 {
		t.Errorf("AvgVolume = %f, want 10000", s.AvgVolume)
	}
	if math.Abs(s.MaxMarketCap-2e6) > 1e-3 || math.Abs(s.MinMarketCap-1e6) > 1e-3 {
		t.Errorf("market cap range = [%f, %f], want [1e6, 2e6]", s.MinMarketCap, s.MaxMarketCap)
	}
}

func TestAggregate_SingleDayAsset(t *testing.T) {
	series := Aggregate([]domain.Snapshot{snapshotOn(1, record("AddrY", "Y", 1.0, 5000))})

	s := series["AddrY"]
	if s == nil {
		t.Fatal("expected series for AddrY")
	}
	if s.DaysActive != 1 {
		t.Errorf("DaysActive = %d, want 1", s.DaysActive)
	}
	if s.WeeklyGrowth != 0 {
		t.Errorf("WeeklyGrowth = %f, want 0", s.WeeklyGrowth)
	}
	if s.VolumeConsistency != 0 {
		t.Errorf("VolumeConsistency = %f, want 0", s.VolumeConsistency)
	}
}

func TestAggregate_FirstObservationSetsMinMarketCap(t *testing.T) {
	rec := record("AddrZ", "Z", 1.0, 1000)
	rec.MarketCap = 0
	series := Aggregate([]domain.Snapshot{snapshotOn(1, rec)})

	if got := series["AddrZ"].MinMarketCap; got != 0 {
		t.Errorf("MinMarketCap = %f, want 0 from first observation", got)
	}
}

func TestAggregate_Idempotent(t *testing.T) {
	snaps := []domain.Snapshot{
		snapshotOn(1, record("AddrA", "A", 1.0, 1000), record("", "B", 2.0, 2000)),
		snapshotOn(2, record("AddrA", "A", 1.5, 1200), record("", "B", 1.8, 2200)),
	}

	first := Aggregate(snaps)
	second := Aggregate(snaps)

	if !reflect.DeepEqual(first, second) {
		t.Error("Aggregate is not idempotent over identical input")
	}
}

func TestAggregate_SymbolFallbackJoinsAcrossDays(t *testing.T) {
	// Same symbol, no address on either day: one series keyed by symbol.
	series := Aggregate([]domain.Snapshot{
		snapshotOn(1, record("", "NOADDR", 1.0, 1000)),
		snapshotOn(2, record("", "NOADDR", 2.0, 1000)),
	})

	s := series["NOADDR"]
	if s == nil {
		t.Fatal("expected symbol-keyed series")
	}
	if s.DaysActive != 2 {
		t.Errorf("DaysActive = %d, want 2", s.DaysActive)
	}
}

func TestAggregate_AddressAppearsMidRange(t *testing.T) {
	// Day 1 the source omits the address, day 2 it appears. The
	// symbol-keyed accumulator must be promoted, not duplicated.
	series := Aggregate([]domain.Snapshot{
		snapshotOn(1, record("", "PROMO", 1.0, 1000)),
		snapshotOn(2, record("AddrP", "PROMO", 2.0, 1000)),
	})

	if len(series) != 1 {
		t.Fatalf("expected 1 series, got %d", len(series))
	}
	s := series["AddrP"]
	if s == nil {
		t.Fatal("expected address-keyed series after promotion")
	}
	if s.DaysActive != 2 {
		t.Errorf("DaysActive = %d, want 2 after reconciliation", s.DaysActive)
	}
}

func TestAggregate_AddressDisappearsMidRange(t *testing.T) {
	// Address on day 1, gone on day 2: the symbol lookup must land on
	// the address-keyed accumulator.
	series := Aggregate([]domain.Snapshot{
		snapshotOn(1, record("AddrQ", "Q", 1.0, 1000)),
		snapshotOn(2, record("", "Q", 2.0, 1000)),
	})

	if len(series) != 1 {
		t.Fatalf("expected 1 series, got %d", len(series))
	}
	if s := series["AddrQ"]; s == nil || s.DaysActive != 2 {
		t.Fatalf("expected AddrQ series with 2 active days, got %+v", s)
	}
}

func TestWeeklyGrowth_SkipsInvalidPrices(t *testing.T) {
	// A zero price mid-range must not poison the growth computation.
	series := Aggregate([]domain.Snapshot{
		snapshotOn(1, record("AddrR", "R", 2.0, 1000)),
		snapshotOn(2, record("AddrR", "R", 0, 1000)),
		snapshotOn(3, record("AddrR", "R", 3.0, 1000)),
	})

	if got := series["AddrR"].WeeklyGrowth; math.Abs(got-50) > 1e-9 {
		t.Errorf("WeeklyGrowth = %f, want 50 (2.0 -> 3.0)", got)
	}
}
