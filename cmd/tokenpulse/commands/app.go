package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"tokenpulse/internal/storage"
	"tokenpulse/internal/storage/clickhouse"
	"tokenpulse/internal/storage/memory"
	"tokenpulse/internal/storage/migrations"
	"tokenpulse/internal/storage/postgres"
	"tokenpulse/pkg/config"
	"tokenpulse/pkg/logging"
)

// app holds the wiring shared by all subcommands: configuration, the
// logger and the storage backends selected by the environment.
type app struct {
	cfg       *config.Config
	logger    zerolog.Logger
	snapshots storage.SnapshotStore
	history   storage.AnalysisHistoryStore

	closers []func()
}

// setup loads configuration and connects the storage backends.
// Postgres backs snapshots when POSTGRES_DSN is set, ClickHouse backs
// analysis history when CLICKHOUSE_DSN is set; otherwise in-memory
// stores are used.
func setup(ctx context.Context) (*app, error) {
	if flagEnvFile != "" {
		if err := godotenv.Overload(flagEnvFile); err != nil {
			return nil, fmt.Errorf("load env file %s: %w", flagEnvFile, err)
		}
	}

	cfg := config.Load()

	level := cfg.LogLevel
	if flagVerbose {
		level = "debug"
	}
	logger := logging.New(level, cfg.LogFormat)

	a := &app{cfg: cfg, logger: logger}

	if cfg.PostgresDSN != "" {
		pool, err := postgres.NewPool(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		if err := migrations.RunPostgresMigrations(ctx, pool); err != nil {
			pool.Close()
			return nil, fmt.Errorf("run postgres migrations: %w", err)
		}
		a.snapshots = postgres.NewSnapshotStore(pool)
		a.closers = append(a.closers, pool.Close)
		logger.Info().Msg("using postgres snapshot store")
	} else {
		a.snapshots = memory.NewSnapshotStore()
		logger.Info().Msg("using in-memory snapshot store")
	}

	if cfg.ClickhouseDSN != "" {
		conn, err := migrations.RunClickhouseMigrations(ctx, cfg.ClickhouseDSN)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("connect clickhouse: %w", err)
		}
		a.history = clickhouse.NewAnalysisHistoryStore(conn)
		a.closers = append(a.closers, func() { _ = conn.Close() })
		logger.Info().Msg("using clickhouse analysis history store")
	} else {
		a.history = memory.NewAnalysisHistoryStore()
	}

	return a, nil
}

// Close releases storage connections in reverse order.
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

// analysisWindow returns the [start, end] range ending at the most
// recent stored snapshot and spanning days calendar days.
func (a *app) analysisWindow(ctx context.Context, days int) (time.Time, time.Time, error) {
	current, err := a.snapshots.LoadCurrent(ctx)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("load current snapshot: %w", err)
	}
	end := current.Date
	start := end.AddDate(0, 0, -(days - 1))
	return start, end, nil
}
