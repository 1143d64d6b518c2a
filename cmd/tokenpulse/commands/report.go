package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tokenpulse/internal/analysis"
	"tokenpulse/internal/reporting"
)

var (
	reportDays   int
	reportFrom   string
	reportTo     string
	reportFormat string
	reportOut    string
	reportLimit  int
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate a full analysis report",
	Long: `Runs the analysis pipeline over a window of stored snapshots and
renders the results as markdown, CSV or plain text. The report covers
rankings, leader tables, launchpad outcomes, cohort survival, market
trends and fired alerts.`,
	RunE: runReport,
}

func init() {
	reportCmd.Flags().IntVar(&reportDays, "days", 7, "window length in days, ending at the latest snapshot")
	reportCmd.Flags().StringVar(&reportFrom, "from", "", "window start date (YYYY-MM-DD), overrides --days")
	reportCmd.Flags().StringVar(&reportTo, "to", "", "window end date (YYYY-MM-DD), overrides --days")
	reportCmd.Flags().StringVar(&reportFormat, "format", "markdown", "output format: markdown, csv or text")
	reportCmd.Flags().StringVarP(&reportOut, "out", "o", "", "write the report to a file instead of stdout")
	reportCmd.Flags().IntVar(&reportLimit, "limit", 0, "cap the leader tables at this many rows")
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := setup(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	start, end, err := resolveWindow(cmd, a, reportDays, reportFrom, reportTo)
	if err != nil {
		return err
	}

	pipeline := analysis.New(analysis.Options{
		SnapshotStore: a.snapshots,
		HistoryStore:  a.history,
		Workers:       a.cfg.Workers,
		Logger:        a.logger,
	})

	generator := reporting.NewGenerator(pipeline)
	if reportLimit > 0 {
		generator = generator.WithLeaderLimit(reportLimit)
	}

	report, err := generator.Generate(ctx, start, end)
	if err != nil {
		return fmt.Errorf("generate report: %w", err)
	}

	var rendered string
	switch reportFormat {
	case "markdown":
		rendered = reporting.RenderMarkdown(report)
	case "csv":
		rendered = reporting.RenderCSV(report.Rankings)
	case "text":
		rendered = reporting.RenderText(report)
	default:
		return fmt.Errorf("unknown format %q (want markdown, csv or text)", reportFormat)
	}

	if reportOut == "" {
		cmd.Print(rendered)
		return nil
	}
	if err := os.WriteFile(reportOut, []byte(rendered), 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	a.logger.Info().Str("path", reportOut).Str("format", reportFormat).Msg("report written")
	return nil
}
