package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"tokenpulse/internal/ingestion"
)

var (
	ingestDir   string
	ingestFetch bool
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Load snapshot files into storage, or fetch today's snapshot",
	Long: `Reads daily snapshot JSON files from a directory and stores them,
replacing any snapshot already recorded for the same date. With --fetch
it instead polls the configured pairs endpoint once and stores the
result as today's snapshot.`,
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().StringVar(&ingestDir, "dir", "", "directory of snapshot JSON files (defaults to SNAPSHOT_DIR)")
	ingestCmd.Flags().BoolVar(&ingestFetch, "fetch", false, "fetch a single snapshot from the pairs endpoint instead of reading files")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := setup(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	if ingestFetch {
		if a.cfg.PairsURL == "" {
			return fmt.Errorf("--fetch requires PAIRS_URL to be set")
		}
		fetcher := ingestion.NewFetcher(ingestion.FetcherOptions{
			Endpoint: a.cfg.PairsURL,
			Timeout:  a.cfg.FetchTimeout,
			Logger:   a.logger,
		})
		snap, err := fetcher.Fetch(ctx)
		if err != nil {
			return fmt.Errorf("fetch snapshot: %w", err)
		}
		if err := a.snapshots.Save(ctx, snap); err != nil {
			return fmt.Errorf("save snapshot: %w", err)
		}
		a.logger.Info().
			Time("date", snap.Date).
			Int("assets", len(snap.Assets)).
			Msg("snapshot fetched and stored")
		return nil
	}

	dir := ingestDir
	if dir == "" {
		dir = a.cfg.SnapshotDir
	}

	loader := ingestion.NewLoader(ingestion.LoaderOptions{
		Dir:    dir,
		Logger: a.logger,
	})
	snapshots, err := loader.LoadDir(ctx)
	if err != nil {
		return fmt.Errorf("load snapshot dir: %w", err)
	}
	if len(snapshots) == 0 {
		a.logger.Warn().Str("dir", dir).Msg("no snapshot files found")
		return nil
	}

	for i := range snapshots {
		if err := a.snapshots.Save(ctx, &snapshots[i]); err != nil {
			return fmt.Errorf("save snapshot for %s: %w", snapshots[i].Date.Format("2006-01-02"), err)
		}
	}

	a.logger.Info().
		Str("dir", dir).
		Int("snapshots", len(snapshots)).
		Msg("snapshots ingested")
	return nil
}
