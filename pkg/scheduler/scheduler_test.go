package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartRunsJobs(t *testing.T) {
	var runs atomic.Int32
	job := Job{
		Name:     "count",
		Interval: 20 * time.Millisecond,
		Run: func(ctx context.Context) error {
			runs.Add(1)
			return errors.New("keeps going after errors")
		},
	}

	sched, err := Start(context.Background(), job)
	require.NoError(t, err)
	defer sched.Shutdown()

	assert.Eventually(t, func() bool { return runs.Load() >= 2 }, 2*time.Second, 10*time.Millisecond)
}

func TestStartSkipsDisabledJobs(t *testing.T) {
	sched, err := Start(context.Background(), Job{Name: "off", Run: func(ctx context.Context) error {
		t.Fatal("disabled job must not run")
		return nil
	}})
	require.NoError(t, err)
	defer sched.Shutdown()

	assert.Empty(t, sched.Jobs())
}

func TestStatusJob(t *testing.T) {
	var got time.Time
	job := StatusJob(time.Minute, func(ctx context.Context, now time.Time) (int, error) {
		got = now
		return 3, nil
	})

	require.NoError(t, job.Run(context.Background()))
	assert.Equal(t, "match-status", job.Name)
	assert.Equal(t, time.UTC, got.Location())
}

func TestStaleDepositJob(t *testing.T) {
	var got time.Duration
	job := StaleDepositJob(time.Minute, 30*time.Minute, func(ctx context.Context, maxAge time.Duration) (int, error) {
		got = maxAge
		return 0, errors.New("boom")
	})

	assert.EqualError(t, job.Run(context.Background()), "boom")
	assert.Equal(t, 30*time.Minute, got)
}

func TestRunSkipsAfterCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	run(ctx, Job{Name: "late", Run: func(ctx context.Context) error {
		called = true
		return nil
	}})

	assert.False(t, called)
}
