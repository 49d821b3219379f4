package backup

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/attribute"

	"github.com/tbourn/warri-apartment-hunt/internal/observability"
)

// Job is a scheduled unit of work.
type Job func(ctx context.Context) error

// Scheduler runs jobs on cron expressions (standard five-field syntax plus
// descriptors such as "@daily").
type Scheduler struct {
	cron *cron.Cron
	ctx  context.Context
}

// NewScheduler returns a stopped scheduler. Jobs receive ctx.
func NewScheduler(ctx context.Context) *Scheduler {
	return &Scheduler{cron: cron.New(), ctx: ctx}
}

// Add registers job under name. Errors are logged, not retried.
func (s *Scheduler) Add(spec, name string, job Job) error {
	_, err := s.cron.AddFunc(spec, func() { s.run(name, job) })
	if err != nil {
		return fmt.Errorf("invalid cron expression %q for %s: %w", spec, name, err)
	}
	log.Info().Str("job", name).Str("cron", spec).Msg("job scheduled")
	return nil
}

func (s *Scheduler) run(name string, job Job) {
	ctx, end := observability.StartJob(s.ctx, "job."+name, attribute.String("job.name", name))
	err := job(ctx)
	end(err)
	if err != nil {
		log.Error().Err(err).Str("job", name).Msg("scheduled job failed")
		return
	}
	log.Debug().Str("job", name).Msg("scheduled job done")
}

// Len returns the number of registered jobs.
func (s *Scheduler) Len() int { return len(s.cron.Entries()) }

// Start begins running jobs in the background.
func (s *Scheduler) Start() { s.cron.Start() }

// Stop prevents new runs and returns a context done once running jobs finish.
func (s *Scheduler) Stop() context.Context { return s.cron.Stop() }

// BackupJob adapts b to a Job.
func BackupJob(b *Backuper) Job {
	return func(ctx context.Context) error {
		_, err := b.Run(ctx)
		return err
	}
}
