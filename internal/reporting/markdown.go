package reporting

import (
	"fmt"
	"strings"
	"time"
)

// RenderMarkdown renders report as Markdown string.
func RenderMarkdown(r *Report) string {
	var sb strings.Builder

	// Header
	sb.WriteString("# Daily Asset Report\n\n")
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", r.GeneratedAt.Format(time.RFC3339)))
	sb.WriteString(fmt.Sprintf("Range: %s to %s | Snapshots: %d | Assets analyzed: %d | Failures: %d\n\n",
		r.RangeStart.Format("2006-01-02"), r.RangeEnd.Format("2006-01-02"),
		r.SnapshotCount, r.AssetsAnalyzed, r.FailureCount))

	// Rankings
	sb.WriteString("## Rankings\n\n")
	if len(r.Rankings) > 0 {
		sb.WriteString("| Rank | Symbol | Score | 24h Change | Momentum | Sustainability | Alerts | Recommendation |\n")
		sb.WriteString("|------|--------|-------|------------|----------|----------------|--------|----------------|\n")
		for _, row := range r.Rankings {
			sb.WriteString(fmt.Sprintf("| %d | %s | %.2f | %.2f%% | %s | %s | %d | %s |\n",
				row.Rank, row.Symbol, row.Score, row.PriceChange24h,
				row.Momentum, row.Sustainability, row.AlertCount, row.Recommendation))
		}
	} else {
		sb.WriteString("No assets analyzed.\n")
	}
	sb.WriteString("\n")

	// Leader tables
	writeLeaderTable(&sb, "Top Performers (weekly growth %)", r.TopPerformers)
	writeLeaderTable(&sb, "Market Cap Growth Leaders (growth %)", r.MarketCapLeaders)
	writeLeaderTable(&sb, "Volume Consistency Leaders", r.ConsistencyLeaders)

	// Launch outcomes
	sb.WriteString("## Launch Outcomes\n\n")
	if r.LaunchOutcomes.Total > 0 {
		sb.WriteString("| Metric | Value |\n")
		sb.WriteString("|--------|-------|\n")
		sb.WriteString(fmt.Sprintf("| Recent launches | %d |\n", r.LaunchOutcomes.Total))
		sb.WriteString(fmt.Sprintf("| Successful | %d |\n", r.LaunchOutcomes.Successful))
		sb.WriteString(fmt.Sprintf("| Moderate | %d |\n", r.LaunchOutcomes.Moderate))
		sb.WriteString(fmt.Sprintf("| Unsuccessful | %d |\n", r.LaunchOutcomes.Unsuccessful))
		sb.WriteString(fmt.Sprintf("| Success rate | %.2f%% |\n", r.LaunchOutcomes.SuccessRate))
		sb.WriteString(fmt.Sprintf("| Avg growth of successful | %.2f%% |\n", r.LaunchOutcomes.AvgSuccess))
	} else {
		sb.WriteString("No recent launchpad assets in range.\n")
	}
	sb.WriteString("\n")

	// Cohort survival
	sb.WriteString("## Cohort Survival\n\n")
	if r.Cohort.StartingCount > 0 {
		sb.WriteString(fmt.Sprintf("Period: %s to %s\n\n",
			r.Cohort.StartDate.Format("2006-01-02"), r.Cohort.EndDate.Format("2006-01-02")))
		sb.WriteString("| Metric | Value |\n")
		sb.WriteString("|--------|-------|\n")
		sb.WriteString(fmt.Sprintf("| Starting assets | %d |\n", r.Cohort.StartingCount))
		sb.WriteString(fmt.Sprintf("| Ending assets | %d |\n", r.Cohort.EndingCount))
		sb.WriteString(fmt.Sprintf("| Survived | %d |\n", r.Cohort.Survived))
		sb.WriteString(fmt.Sprintf("| Dropped | %d |\n", r.Cohort.Dropped))
		sb.WriteString(fmt.Sprintf("| New entrants | %d |\n", r.Cohort.NewEntrants))
		sb.WriteString(fmt.Sprintf("| Survival rate | %.2f%% |\n", r.Cohort.SurvivalRate))
	} else {
		sb.WriteString("Not enough snapshots for cohort analysis.\n")
	}
	sb.WriteString("\n")

	// Daily trends
	sb.WriteString("## Market Trends\n\n")
	if len(r.DailyTrends) > 0 {
		sb.WriteString("| Metric | Slope | Direction |\n")
		sb.WriteString("|--------|-------|----------|\n")
		for _, t := range r.DailyTrends {
			sb.WriteString(fmt.Sprintf("| %s | %.4f | %s |\n", t.Metric, t.Slope, t.Direction))
		}
	} else {
		sb.WriteString("No trend data available.\n")
	}
	sb.WriteString("\n")

	// Alerts
	sb.WriteString("## Alerts\n\n")
	if len(r.Alerts) > 0 {
		sb.WriteString("| Symbol | Type | Severity | Message |\n")
		sb.WriteString("|--------|------|----------|--------|\n")
		for _, a := range r.Alerts {
			sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s |\n", a.Symbol, a.Type, a.Severity, a.Message))
		}
	} else {
		sb.WriteString("No alerts fired.\n")
	}
	sb.WriteString("\n")

	return sb.String()
}

func writeLeaderTable(sb *strings.Builder, title string, rows []LeaderRow) {
	sb.WriteString("## " + title + "\n\n")
	if len(rows) == 0 {
		sb.WriteString("No qualifying assets.\n\n")
		return
	}
	sb.WriteString("| # | Symbol | Days Active | Value |\n")
	sb.WriteString("|---|--------|-------------|-------|\n")
	for _, row := range rows {
		sb.WriteString(fmt.Sprintf("| %d | %s | %d | %.2f |\n",
			row.Position, row.Symbol, row.DaysActive, row.Value))
	}
	sb.WriteString("\n")
}
