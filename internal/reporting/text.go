package reporting

import (
	"fmt"
	"strings"
)

// RenderText renders a compact console summary of the report.
func RenderText(r *Report) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Daily Asset Report  %s to %s\n",
		r.RangeStart.Format("2006-01-02"), r.RangeEnd.Format("2006-01-02")))
	sb.WriteString(fmt.Sprintf("Snapshots: %d  Analyzed: %d  Failures: %d\n\n",
		r.SnapshotCount, r.AssetsAnalyzed, r.FailureCount))

	sb.WriteString("Rankings:\n")
	if len(r.Rankings) == 0 {
		sb.WriteString("  (none)\n")
	}
	for _, row := range r.Rankings {
		sb.WriteString(fmt.Sprintf("  %3d. %-12s score=%6.2f  %-8s %s\n",
			row.Rank, row.Symbol, row.Score, row.Momentum, row.Recommendation))
	}

	if r.Cohort.StartingCount > 0 {
		sb.WriteString(fmt.Sprintf("\nCohort: %d -> %d survived (%.1f%%), %d dropped, %d new\n",
			r.Cohort.StartingCount, r.Cohort.Survived, r.Cohort.SurvivalRate,
			r.Cohort.Dropped, r.Cohort.NewEntrants))
	}

	if len(r.Alerts) > 0 {
		sb.WriteString("\nAlerts:\n")
		for _, a := range r.Alerts {
			sb.WriteString(fmt.Sprintf("  [%s] %-12s %s\n", a.Severity, a.Symbol, a.Message))
		}
	}

	return sb.String()
}
