package domain

import "time"

// Snapshot is one dated capture of all tracked assets' metrics.
// At most one snapshot exists per calendar day; Date is the calendar
// day truncated to UTC midnight, Timestamp the capture instant.
type Snapshot struct {
	Date      time.Time     // calendar day, UTC midnight
	Timestamp time.Time     // capture instant
	Assets    []AssetRecord // records in source order
}

// Day returns the snapshot date formatted as YYYY-MM-DD.
func (s *Snapshot) Day() string {
	return s.Date.Format("2006-01-02")
}

// AssetRecord is a single asset's metrics at snapshot time.
// Nullable fields are pointers so a reported 0 stays distinguishable
// from a value the source never supplied.
type AssetRecord struct {
	Address         *string // chain address (nullable)
	Symbol          string  // ticker symbol
	Name            string  // display name
	Price           float64 // unit price, >= 0
	Volume24h       float64 // 24h traded volume, >= 0
	MarketCap       float64 // market capitalization, >= 0
	Liquidity       float64 // pool liquidity, >= 0
	PriceChange24h  float64 // 24h price change, percent, signed
	Buys24h         *int    // 24h buy transaction count (nullable)
	Sells24h        *int    // 24h sell transaction count (nullable)
	IsFromLaunchpad bool    // launchpad provenance flag
	DaysSinceLaunch *int    // days since launch (nullable, >= 0)
}

// TxCount returns the total 24h transaction count, treating missing
// buy or sell counts as zero.
func (r *AssetRecord) TxCount() int {
	total := 0
	if r.Buys24h != nil {
		total += *r.Buys24h
	}
	if r.Sells24h != nil {
		total += *r.Sells24h
	}
	return total
}
