package commands

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"tokenpulse/internal/analysis"
	"tokenpulse/internal/api"
	"tokenpulse/internal/domain"
	"tokenpulse/internal/ingestion"
	"tokenpulse/internal/observability"
	"tokenpulse/internal/scheduler"
)

const shutdownTimeout = 15 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API with scheduled ingestion and analysis",
	Long: `Starts the HTTP API, exposes Prometheus metrics on /metrics and runs
the cron jobs: snapshot ingestion from the pairs endpoint (when
PAIRS_URL is set) and the daily analysis pipeline. When FEED_URL is
set, snapshots pushed over the websocket feed are stored as they
arrive. Shuts down cleanly on SIGINT or SIGTERM.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := setup(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	metrics := observability.NewMetrics("")

	pipeline := analysis.New(analysis.Options{
		SnapshotStore: a.snapshots,
		HistoryStore:  a.history,
		Workers:       a.cfg.Workers,
		Logger:        a.logger,
		Metrics:       metrics,
	})

	handlers := api.NewHandlers(api.HandlersOptions{
		Pipeline:      pipeline,
		SnapshotStore: a.snapshots,
		HistoryStore:  a.history,
		Logger:        a.logger,
	})
	server := api.NewServer(":"+a.cfg.Port, api.NewRouter(handlers, a.logger), a.logger)

	sched := scheduler.New(a.logger)
	if a.cfg.PairsURL != "" {
		fetcher := ingestion.NewFetcher(ingestion.FetcherOptions{
			Endpoint: a.cfg.PairsURL,
			Timeout:  a.cfg.FetchTimeout,
			Logger:   a.logger,
			Metrics:  metrics,
		})
		job := &scheduler.IngestJob{
			Fetcher:   fetcher,
			Snapshots: a.snapshots,
			Spec:      a.cfg.IngestSpec,
		}
		if err := sched.AddJob(job); err != nil {
			return fmt.Errorf("register ingest job: %w", err)
		}
	}
	analysisJob := &scheduler.AnalysisJob{
		Pipeline: pipeline,
		Spec:     a.cfg.AnalysisSpec,
	}
	if err := sched.AddJob(analysisJob); err != nil {
		return fmt.Errorf("register analysis job: %w", err)
	}

	var feed *ingestion.Feed
	if a.cfg.FeedURL != "" {
		feed, err = ingestion.NewFeed(ctx, a.cfg.FeedURL, func(snap *domain.Snapshot) {
			saveCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if err := a.snapshots.Save(saveCtx, snap); err != nil {
				a.logger.Error().Err(err).Time("date", snap.Date).Msg("save feed snapshot")
				return
			}
			a.logger.Info().Time("date", snap.Date).Int("assets", len(snap.Assets)).Msg("feed snapshot stored")
		}, a.logger, nil)
		if err != nil {
			return fmt.Errorf("connect snapshot feed: %w", err)
		}
	}

	sched.Start()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	a.logger.Info().Str("port", a.cfg.Port).Str("env", a.cfg.Env).Msg("tokenpulse started")

	select {
	case <-ctx.Done():
		a.logger.Info().Msg("shutdown signal received")
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	}

	sched.Stop()
	if feed != nil {
		_ = feed.Close()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}

	a.logger.Info().Msg("tokenpulse stopped")
	return nil
}
