package campaign

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopsignal/engagement/internal/domain"
)

type fakeClock struct{ t time.Time }

func (c fakeClock) Now() time.Time { return c.t }

func TestNextTrigger(t *testing.T) {
	now := time.Date(2026, 3, 1, 8, 30, 0, 0, time.UTC)

	t.Run("later_today", func(t *testing.T) {
		next := NextTrigger(now, "09:00")
		assert.Equal(t, time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC), next)
	})

	t.Run("already_passed_rolls_to_tomorrow", func(t *testing.T) {
		next := NextTrigger(now, "08:00")
		assert.Equal(t, time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC), next)
	})

	t.Run("exactly_now_rolls_to_tomorrow", func(t *testing.T) {
		next := NextTrigger(now, "08:30")
		assert.Equal(t, time.Date(2026, 3, 2, 8, 30, 0, 0, time.UTC), next)
	})

	t.Run("keeps_location", func(t *testing.T) {
		loc := time.FixedZone("UTC+2", 2*3600)
		local := time.Date(2026, 3, 1, 8, 30, 0, 0, loc)
		next := NextTrigger(local, "09:00")
		assert.Equal(t, loc, next.Location())
		assert.Equal(t, 9, next.Hour())
	})
}

func TestScheduler_RunOnceStateTransitions(t *testing.T) {
	clock := fakeClock{t: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
	runner := newRunner(newMemWatermarks())
	s := NewScheduler(runner, clock, time.Minute, zerolog.Nop())

	var ran atomic.Int32
	job := Job{
		Name:     "abandoned_cart",
		Audience: func(ctx context.Context) ([]domain.AudienceEntry, error) { return entries("u1"), nil },
		Send: func(ctx context.Context, e domain.AudienceEntry) error {
			ran.Add(1)
			return nil
		},
	}
	s.Register(job, "09:00")

	sj := s.jobs[0]
	s.runOnce(context.Background(), sj)

	assert.Equal(t, int32(1), ran.Load())
	status := s.Status()
	require.Len(t, status, 1)
	assert.Equal(t, StateIdle, status[0].State)
	assert.Equal(t, "completed", status[0].LastOutcome)
	assert.NotNil(t, status[0].LastRunAt)
}

func TestScheduler_FailedRunIsTerminalForThatRunOnly(t *testing.T) {
	clock := fakeClock{t: time.Now().UTC()}
	runner := newRunner(newMemWatermarks())
	s := NewScheduler(runner, clock, time.Minute, zerolog.Nop())

	attempts := 0
	job := Job{
		Name: "frequent_viewer",
		Audience: func(ctx context.Context) ([]domain.AudienceEntry, error) {
			attempts++
			if attempts == 1 {
				return nil, domain.ErrUnavailable("store down")
			}
			return entries("u1"), nil
		},
		Send: func(ctx context.Context, e domain.AudienceEntry) error { return nil },
	}
	s.Register(job, "09:00")
	sj := s.jobs[0]

	s.runOnce(context.Background(), sj)
	assert.Equal(t, "failed", s.Status()[0].LastOutcome)
	assert.Contains(t, s.Status()[0].LastError, "store down")

	// the next scheduled trigger runs the job again from scratch
	s.runOnce(context.Background(), sj)
	assert.Equal(t, "completed", s.Status()[0].LastOutcome)
	assert.Empty(t, s.Status()[0].LastError)
}

func TestScheduler_JobsAreIndependent(t *testing.T) {
	clock := fakeClock{t: time.Now().UTC()}
	runner := newRunner(newMemWatermarks())
	s := NewScheduler(runner, clock, time.Minute, zerolog.Nop())

	bad := Job{
		Name: "abandoned_cart",
		Audience: func(ctx context.Context) ([]domain.AudienceEntry, error) {
			return nil, domain.ErrUnavailable("store down")
		},
		Send: func(ctx context.Context, e domain.AudienceEntry) error { return nil },
	}
	good := Job{
		Name:     "purchase_confirm",
		Audience: func(ctx context.Context) ([]domain.AudienceEntry, error) { return entries("u1"), nil },
		Send:     func(ctx context.Context, e domain.AudienceEntry) error { return nil },
	}
	s.Register(bad, "09:00")
	s.Register(good, "11:00")

	s.runOnce(context.Background(), s.jobs[0])
	s.runOnce(context.Background(), s.jobs[1])

	status := s.Status()
	assert.Equal(t, "failed", status[0].LastOutcome)
	assert.Equal(t, "completed", status[1].LastOutcome)
}
