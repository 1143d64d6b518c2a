package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"tokenpulse/internal/analysis"
	"tokenpulse/internal/reporting"
)

var (
	analyzeDays int
	analyzeFrom string
	analyzeTo   string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run the analysis pipeline over a window of stored snapshots",
	Long: `Aggregates the stored snapshots into per-asset series, analyzes trend,
momentum and sustainability, ranks the assets by composite score and
prints a summary. Ranked results are persisted to the analysis history
store. The window defaults to the trailing week ending at the most
recent snapshot; use --from/--to for an explicit range.`,
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().IntVar(&analyzeDays, "days", 7, "window length in days, ending at the latest snapshot")
	analyzeCmd.Flags().StringVar(&analyzeFrom, "from", "", "window start date (YYYY-MM-DD), overrides --days")
	analyzeCmd.Flags().StringVar(&analyzeTo, "to", "", "window end date (YYYY-MM-DD), overrides --days")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := setup(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	start, end, err := resolveWindow(cmd, a, analyzeDays, analyzeFrom, analyzeTo)
	if err != nil {
		return err
	}

	pipeline := analysis.New(analysis.Options{
		SnapshotStore: a.snapshots,
		HistoryStore:  a.history,
		Workers:       a.cfg.Workers,
		Logger:        a.logger,
	})

	report, err := reporting.NewGenerator(pipeline).Generate(ctx, start, end)
	if err != nil {
		return fmt.Errorf("run analysis: %w", err)
	}

	cmd.Print(reporting.RenderText(report))
	return nil
}

// resolveWindow turns the --days or --from/--to flags into a concrete
// snapshot date range.
func resolveWindow(cmd *cobra.Command, a *app, days int, from, to string) (time.Time, time.Time, error) {
	if from == "" && to == "" {
		if days < 1 {
			return time.Time{}, time.Time{}, fmt.Errorf("--days must be at least 1")
		}
		return a.analysisWindow(cmd.Context(), days)
	}
	if from == "" || to == "" {
		return time.Time{}, time.Time{}, fmt.Errorf("--from and --to must be given together")
	}
	start, err := time.ParseInLocation("2006-01-02", from, time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("parse --from: %w", err)
	}
	end, err := time.ParseInLocation("2006-01-02", to, time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("parse --to: %w", err)
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("--to is before --from")
	}
	return start, end, nil
}
