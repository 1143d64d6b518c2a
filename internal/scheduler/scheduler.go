package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// jobTimeout bounds one job execution.
const jobTimeout = 10 * time.Minute

// Scheduler manages scheduled jobs.
type Scheduler struct {
	cron   *cron.Cron
	logger zerolog.Logger
	jobs   map[string]Job
	mu     sync.RWMutex
}

// New creates a new scheduler.
func New(logger zerolog.Logger) *Scheduler {
	return &Scheduler{
		cron:   cron.New(),
		logger: logger,
		jobs:   make(map[string]Job),
	}
}

// AddJob registers a job on its own schedule.
func (s *Scheduler) AddJob(job Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	name := job.Name()
	if _, exists := s.jobs[name]; exists {
		return fmt.Errorf("job %s already exists", name)
	}

	if _, err := s.cron.AddFunc(job.Schedule(), func() { s.runJob(job) }); err != nil {
		return fmt.Errorf("schedule job %s: %w", name, err)
	}
	s.jobs[name] = job

	s.logger.Info().
		Str("job", name).
		Str("schedule", job.Schedule()).
		Msg("job added to scheduler")
	return nil
}

// RunJob runs a specific job immediately, outside of its schedule.
func (s *Scheduler) RunJob(name string) error {
	s.mu.RLock()
	job, exists := s.jobs[name]
	s.mu.RUnlock()

	if !exists {
		return fmt.Errorf("job %s not found", name)
	}
	go s.runJob(job)
	return nil
}

// Start starts the scheduler.
func (s *Scheduler) Start() {
	s.logger.Info().Msg("starting scheduler")
	s.cron.Start()
}

// Stop stops the scheduler and waits for running jobs.
func (s *Scheduler) Stop() {
	s.logger.Info().Msg("stopping scheduler")
	<-s.cron.Stop().Done()
	s.logger.Info().Msg("scheduler stopped")
}

func (s *Scheduler) runJob(job Job) {
	started := time.Now()
	s.logger.Info().Str("job", job.Name()).Msg("job started")

	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	if err := job.Run(ctx); err != nil {
		s.logger.Error().
			Err(err).
			Str("job", job.Name()).
			Dur("duration", time.Since(started)).
			Msg("job failed")
		return
	}

	s.logger.Info().
		Str("job", job.Name()).
		Dur("duration", time.Since(started)).
		Msg("job completed")
}
