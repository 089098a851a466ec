package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestScheduler_RunNow(t *testing.T) {
	var runs atomic.Int32

	s := New(time.Hour, func(ctx context.Context) {
		runs.Add(1)
	})

	s.Start(context.Background(), true)
	defer s.Stop()

	assert.Eventually(t, func() bool {
		return runs.Load() == 1
	}, time.Second, 10*time.Millisecond)
}

func TestScheduler_Ticks(t *testing.T) {
	var runs atomic.Int32

	s := New(20*time.Millisecond, func(ctx context.Context) {
		runs.Add(1)
	})

	s.Start(context.Background(), false)
	defer s.Stop()

	assert.Eventually(t, func() bool {
		return runs.Load() >= 2
	}, time.Second, 10*time.Millisecond)
}

func TestScheduler_Stop(t *testing.T) {
	s := New(10*time.Millisecond, func(ctx context.Context) {})

	s.Start(context.Background(), false)
	assert.True(t, s.IsRunning())

	s.Stop()
	assert.False(t, s.IsRunning())

	// Repeated Stop is safe
	assert.NotPanics(t, s.Stop)
}

func TestScheduler_ZeroIntervalNeverStarts(t *testing.T) {
	s := New(0, func(ctx context.Context) {
		t.Error("task must not run with zero interval")
	})

	s.Start(context.Background(), true)
	assert.False(t, s.IsRunning())
}

func TestScheduler_DoubleStart(t *testing.T) {
	s := New(time.Hour, func(ctx context.Context) {})

	ctx := context.Background()
	s.Start(ctx, false)
	s.Start(ctx, false)
	assert.True(t, s.IsRunning())

	s.Stop()
}
