package campaign

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/shopsignal/engagement/internal/metrics"
)

// JobState is the per-job lifecycle. A job returns to Idle after every run.
type JobState string

const (
	StateIdle    JobState = "idle"
	StateRunning JobState = "running"
)

// JobStatus is a point-in-time snapshot of one scheduled job.
type JobStatus struct {
	Name        string     `json:"name"`
	At          string     `json:"at"`
	State       JobState   `json:"state"`
	LastRunAt   *time.Time `json:"last_run_at,omitempty"`
	LastOutcome string     `json:"last_outcome,omitempty"` // "completed" or "failed"
	LastError   string     `json:"last_error,omitempty"`
	NextRunAt   time.Time  `json:"next_run_at"`
}

type scheduledJob struct {
	job Job
	at  string // "15:04" wall clock

	mu          sync.Mutex
	state       JobState
	lastRunAt   *time.Time
	lastOutcome string
	lastErr     string
	nextRunAt   time.Time
}

// Scheduler fires each registered job once per day at its configured
// wall-clock time. Jobs are fully independent: each has its own goroutine,
// timer, and state.
type Scheduler struct {
	runner     *Runner
	clock      Clock
	runTimeout time.Duration

	mu   sync.Mutex
	jobs []*scheduledJob

	log zerolog.Logger
}

func NewScheduler(runner *Runner, clock Clock, runTimeout time.Duration, log zerolog.Logger) *Scheduler {
	if runTimeout <= 0 {
		runTimeout = 10 * time.Minute
	}
	return &Scheduler{
		runner:     runner,
		clock:      clock,
		runTimeout: runTimeout,
		log:        log.With().Str("component", "campaign_scheduler").Logger(),
	}
}

// Register adds a job with its daily trigger time ("HH:MM").
func (s *Scheduler) Register(job Job, at string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs = append(s.jobs, &scheduledJob{job: job, at: at, state: StateIdle})
}

// Start launches one loop per registered job. It returns immediately; loops
// stop when ctx is canceled.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, sj := range s.jobs {
		go s.loop(ctx, sj)
	}
}

func (s *Scheduler) loop(ctx context.Context, sj *scheduledJob) {
	log := s.log.With().Str("campaign", sj.job.Name).Str("at", sj.at).Logger()
	log.Info().Msg("campaign job scheduled")

	for {
		next := NextTrigger(s.clock.Now(), sj.at)
		sj.mu.Lock()
		sj.nextRunAt = next
		sj.mu.Unlock()

		timer := time.NewTimer(next.Sub(s.clock.Now()))
		select {
		case <-ctx.Done():
			timer.Stop()
			log.Info().Msg("campaign job stopped")
			return
		case <-timer.C:
		}

		s.runOnce(ctx, sj)
	}
}

func (s *Scheduler) runOnce(ctx context.Context, sj *scheduledJob) {
	log := s.log.With().Str("campaign", sj.job.Name).Logger()

	started := s.clock.Now()
	sj.mu.Lock()
	sj.state = StateRunning
	sj.lastRunAt = &started
	sj.mu.Unlock()

	runCtx, cancel := context.WithTimeout(ctx, s.runTimeout)
	err := s.runner.Run(runCtx, sj.job)
	cancel()

	sj.mu.Lock()
	sj.state = StateIdle
	if err != nil {
		sj.lastOutcome = "failed"
		sj.lastErr = err.Error()
	} else {
		sj.lastOutcome = "completed"
		sj.lastErr = ""
	}
	sj.mu.Unlock()

	if err != nil {
		// terminal for this run only; the next trigger retries the whole job
		metrics.RecordCampaignRun(sj.job.Name, "failed")
		log.Error().Err(err).Msg("campaign run failed")
		return
	}
	metrics.RecordCampaignRun(sj.job.Name, "completed")
}

// Status reports a snapshot of every registered job.
func (s *Scheduler) Status() []JobStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]JobStatus, 0, len(s.jobs))
	for _, sj := range s.jobs {
		sj.mu.Lock()
		out = append(out, JobStatus{
			Name:        sj.job.Name,
			At:          sj.at,
			State:       sj.state,
			LastRunAt:   sj.lastRunAt,
			LastOutcome: sj.lastOutcome,
			LastError:   sj.lastErr,
			NextRunAt:   sj.nextRunAt,
		})
		sj.mu.Unlock()
	}
	return out
}

// NextTrigger returns the next occurrence of the "HH:MM" wall-clock time
// strictly after now, in now's location.
func NextTrigger(now time.Time, at string) time.Time {
	t, err := time.Parse("15:04", at)
	if err != nil {
		// config validates the format; an unparseable value here means a
		// programming error, fall back to a daily cadence from now
		return now.Add(24 * time.Hour)
	}

	next := time.Date(now.Year(), now.Month(), now.Day(), t.Hour(), t.Minute(), 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}
