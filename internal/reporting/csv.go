package reporting

import (
	"fmt"
	"strings"
)

// RenderCSV renders the rankings table as CSV string.
func RenderCSV(rows []RankingRow) string {
	var sb strings.Builder

	// Header
	sb.WriteString("rank,identity,symbol,score,price_change_24h,momentum,sustainability,alert_count,recommendation\n")

	// Rows
	for _, r := range rows {
		sb.WriteString(fmt.Sprintf("%d,%s,%s,%.4f,%.4f,%s,%s,%d,%s\n",
			r.Rank,
			r.Identity,
			r.Symbol,
			r.Score,
			r.PriceChange24h,
			r.Momentum,
			r.Sustainability,
			r.AlertCount,
			r.Recommendation,
		))
	}

	return sb.String()
}
