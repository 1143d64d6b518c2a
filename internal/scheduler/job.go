// Package scheduler runs the recurring ingestion and analysis jobs on
// cron schedules.
package scheduler

import "context"

// Job is one schedulable unit of work.
type Job interface {
	// Name returns the job name.
	Name() string

	// Run executes the job.
	Run(ctx context.Context) error

	// Schedule returns the cron schedule expression,
	// e.g. "0 1 * * *" or "@daily".
	Schedule() string
}
