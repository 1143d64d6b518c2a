package domain

import "time"

// AnalysisRecord is one asset's dated scoring outcome, kept in the
// analytics store so score and rank evolution can be reviewed later.
type AnalysisRecord struct {
	Date           time.Time // analysis day, UTC midnight
	Identity       string    // canonical identity
	Symbol         string
	Score          float64
	Rank           int
	Recommendation string
	AlertCount     int
	WeeklyGrowth   float64 // percent, 0 when no history was available
}
