// Package aggregation merges ordered daily snapshots into per-asset
// time series and exposes the cross-sectional query surfaces built on
// top of them. Aggregation is a pure function of the snapshot range:
// the same input always yields the same series.
package aggregation

import (
	"tokenpulse/internal/domain"
	"tokenpulse/internal/identity"
	"tokenpulse/internal/stats"
)

// accumulator collects one asset's observations while the range is
// being consumed. MinMarketCap uses an explicit seen flag instead of
// a numeric sentinel so the first observation sets it.
type accumulator struct {
	series        domain.AssetSeries
	marketCapSeen bool
}

// Aggregate builds one AssetSeries per distinct canonical identity
// observed in any snapshot. Snapshots must be in ascending date order;
// missing days are simply absent and do not break the series.
//
// Identity joins follow the address-else-symbol rule. When an asset's
// fallback basis changes mid-range (address appears or disappears), a
// secondary match by symbol reconciles the two accumulators instead
// of silently splitting the asset in two.
func Aggregate(snapshots []domain.Snapshot) map[string]*domain.AssetSeries {
	accs := make(map[string]*accumulator)
	bySymbol := make(map[string]string) // symbol -> canonical id of its accumulator

	for i := range snapshots {
		snap := &snapshots[i]
		for j := range snap.Assets {
			rec := &snap.Assets[j]
			acc := lookupOrCreate(accs, bySymbol, rec)
			observe(acc, rec, snap)
		}
	}

	out := make(map[string]*domain.AssetSeries, len(accs))
	for id, acc := range accs {
		finalize(acc)
		s := acc.series
		out[id] = &s
	}
	return out
}

// lookupOrCreate resolves the record's canonical identity and returns
// its accumulator, creating or re-keying as needed.
func lookupOrCreate(accs map[string]*accumulator, bySymbol map[string]string, rec *domain.AssetRecord) *accumulator {
	id, fromAddress := identity.Resolve(rec.Address, rec.Symbol)

	if !fromAddress {
		// Symbol fallback: reuse the accumulator this symbol already
		// maps to, which may be address-keyed from an earlier day.
		if existing, ok := bySymbol[rec.Symbol]; ok {
			return accs[existing]
		}
		acc := &accumulator{series: domain.AssetSeries{Identity: id}}
		accs[id] = acc
		bySymbol[rec.Symbol] = id
		return acc
	}

	if acc, ok := accs[id]; ok {
		bySymbol[rec.Symbol] = id
		return acc
	}

	// First time this address is seen. If the symbol was previously
	// tracked without an address, promote that accumulator to the
	// address key so the history is not split.
	if prevID, ok := bySymbol[rec.Symbol]; ok {
		if acc, ok := accs[prevID]; ok && prevID != id {
			delete(accs, prevID)
			acc.series.Identity = id
			accs[id] = acc
			bySymbol[rec.Symbol] = id
			return acc
		}
	}

	acc := &accumulator{series: domain.AssetSeries{Identity: id}}
	accs[id] = acc
	bySymbol[rec.Symbol] = id
	return acc
}

// observe folds one asset record into its accumulator.
func observe(acc *accumulator, rec *domain.AssetRecord, snap *domain.Snapshot) {
	s := &acc.series

	if s.DaysActive == 0 {
		s.FirstSeen = snap.Date
	}
	s.LastSeen = snap.Date
	s.DaysActive++
	s.Symbol = rec.Symbol
	s.Name = rec.Name

	s.Points = append(s.Points, domain.DailyPoint{
		Date:           snap.Date,
		Price:          rec.Price,
		Volume24h:      rec.Volume24h,
		MarketCap:      rec.MarketCap,
		Liquidity:      rec.Liquidity,
		PriceChange24h: rec.PriceChange24h,
	})

	if rec.MarketCap > s.MaxMarketCap {
		s.MaxMarketCap = rec.MarketCap
	}
	if !acc.marketCapSeen || rec.MarketCap < s.MinMarketCap {
		s.MinMarketCap = rec.MarketCap
		acc.marketCapSeen = true
	}
	s.TotalVolume += rec.Volume24h

	if rec.IsFromLaunchpad {
		s.IsFromLaunchpad = true
	}
	if rec.DaysSinceLaunch != nil {
		v := *rec.DaysSinceLaunch
		s.DaysSinceLaunch = &v
	}
}

// finalize computes the derived fields once the full range has been
// consumed.
func finalize(acc *accumulator) {
	s := &acc.series

	if s.DaysActive > 0 {
		s.AvgVolume = s.TotalVolume / float64(s.DaysActive)
	}

	volumes := make([]float64, len(s.Points))
	prices := make([]float64, len(s.Points))
	caps := make([]float64, len(s.Points))
	for i, p := range s.Points {
		volumes[i] = p.Volume24h
		prices[i] = p.Price
		caps[i] = p.MarketCap
	}

	s.AvgMarketCap = stats.Mean(caps)
	s.VolumeConsistency = stats.Consistency(volumes)
	s.PriceVolatility = stats.Volatility(prices)
	s.WeeklyGrowth = weeklyGrowth(prices)
}

// weeklyGrowth is the percent change from the earliest to the most
// recent valid (positive) price. Defined only once two data points
// exist.
func weeklyGrowth(prices []float64) float64 {
	if len(prices) < 2 {
		return 0
	}

	first, last := 0.0, 0.0
	for _, p := range prices {
		if p > 0 {
			if first == 0 {
				first = p
			}
			last = p
		}
	}
	return stats.PercentChange(last, first)
}
