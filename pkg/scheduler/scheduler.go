// Package scheduler runs periodic maintenance jobs inside the API process.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// Job is a named task run every Interval. A job with a zero interval is skipped.
type Job struct {
	Name     string
	Interval time.Duration
	Run      func(ctx context.Context) error
}

// Start registers jobs on a new gocron scheduler and starts it. Runs of the
// same job never overlap; a run that is still going when the next one is due
// pushes the next one back. The caller owns Shutdown.
func Start(ctx context.Context, jobs ...Job) (gocron.Scheduler, error) {
	sched, err := gocron.NewScheduler(gocron.WithLocation(time.UTC))
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	for _, job := range jobs {
		if job.Interval <= 0 {
			slog.InfoContext(ctx, "scheduled job disabled", "job", job.Name)
			continue
		}

		_, err := sched.NewJob(
			gocron.DurationJob(job.Interval),
			gocron.NewTask(func() { run(ctx, job) }),
			gocron.WithName(job.Name),
			gocron.WithSingletonMode(gocron.LimitModeReschedule),
		)
		if err != nil {
			_ = sched.Shutdown()
			return nil, fmt.Errorf("failed to schedule %s: %w", job.Name, err)
		}
		slog.InfoContext(ctx, "scheduled job registered", "job", job.Name, "interval", job.Interval)
	}

	sched.Start()
	return sched, nil
}

func run(ctx context.Context, job Job) {
	if ctx.Err() != nil {
		return
	}

	start := time.Now()
	if err := job.Run(ctx); err != nil {
		slog.ErrorContext(ctx, "scheduled job failed", "job", job.Name, "error", err)
		return
	}
	slog.DebugContext(ctx, "scheduled job finished", "job", job.Name, "took", time.Since(start))
}

// StatusJob wraps an AutoUpdateStatuses-style function as a Job.
func StatusJob(interval time.Duration, update func(ctx context.Context, now time.Time) (int, error)) Job {
	return Job{
		Name:     "match-status",
		Interval: interval,
		Run: func(ctx context.Context) error {
			n, err := update(ctx, time.Now().UTC())
			if n > 0 {
				slog.InfoContext(ctx, "match statuses updated", "updated", n)
			}
			return err
		},
	}
}

// StaleDepositJob wraps a FailStaleDeposits-style function as a Job.
func StaleDepositJob(interval, maxAge time.Duration, expire func(ctx context.Context, maxAge time.Duration) (int, error)) Job {
	return Job{
		Name:     "stale-deposits",
		Interval: interval,
		Run: func(ctx context.Context) error {
			n, err := expire(ctx, maxAge)
			if n > 0 {
				slog.InfoContext(ctx, "stale deposits failed", "count", n)
			}
			return err
		},
	}
}
