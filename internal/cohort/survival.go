// Package cohort compares point-in-time identity sets across a
// snapshot range: who survived from the first day to the last, who
// dropped, who entered, and which direction the market-wide daily
// aggregates are trending. It operates on raw snapshots and needs no
// per-asset aggregation.
package cohort

import (
	"sort"

	"tokenpulse/internal/domain"
	"tokenpulse/internal/identity"
)

// Survival computes the survival set between the chronologically
// first and last snapshot of a range. Fewer than two snapshots is not
// a comparable range and yields the zero result.
func Survival(snapshots []domain.Snapshot) domain.CohortResult {
	if len(snapshots) < 2 {
		return domain.CohortResult{}
	}

	first := &snapshots[0]
	last := &snapshots[len(snapshots)-1]

	firstSet := identitySet(first)
	lastSet := identitySet(last)

	var survivors []string
	for id := range firstSet {
		if _, ok := lastSet[id]; ok {
			survivors = append(survivors, id)
		}
	}
	sort.Strings(survivors)

	newEntrants := 0
	for id := range lastSet {
		if _, ok := firstSet[id]; !ok {
			newEntrants++
		}
	}

	result := domain.CohortResult{
		StartDate:     first.Date,
		EndDate:       last.Date,
		StartingCount: len(firstSet),
		EndingCount:   len(lastSet),
		Survived:      len(survivors),
		Dropped:       len(firstSet) - len(survivors),
		NewEntrants:   newEntrants,
		SurvivorIDs:   survivors,
	}
	if result.StartingCount > 0 {
		result.SurvivalRate = float64(result.Survived) / float64(result.StartingCount) * 100
	}
	return result
}

// identitySet collects the canonical identities present in a snapshot.
func identitySet(snap *domain.Snapshot) map[string]struct{} {
	set := make(map[string]struct{}, len(snap.Assets))
	for i := range snap.Assets {
		rec := &snap.Assets[i]
		set[identity.ResolveRecordID(rec.Address, rec.Symbol)] = struct{}{}
	}
	return set
}
