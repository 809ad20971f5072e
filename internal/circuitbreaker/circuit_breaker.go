package circuitbreaker

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrOpen is returned when the breaker rejects a call without running it.
var ErrOpen = errors.New("circuit breaker is open")

// ErrHalfOpenLimit is returned when the half-open probe quota is exhausted.
var ErrHalfOpenLimit = errors.New("circuit breaker half-open limit reached")

type State int

const (
	StateClosed   State = iota // requests pass through
	StateOpen                  // requests fail immediately
	StateHalfOpen              // a limited number of probe requests pass
)

// Breaker trips after maxFailures consecutive failures and stays open for
// resetTimeout, after which a bounded number of probe calls decide whether
// to close it again.
type Breaker struct {
	maxFailures   int
	resetTimeout  time.Duration
	halfOpenCalls int

	now func() time.Time

	mu       sync.RWMutex
	state    State
	failures int
	openedAt time.Time
	probes   int
}

func New(maxFailures int, resetTimeout time.Duration, halfOpenCalls int) *Breaker {
	return &Breaker{
		maxFailures:   maxFailures,
		resetTimeout:  resetTimeout,
		halfOpenCalls: halfOpenCalls,
		now:           time.Now,
		state:         StateClosed,
	}
}

// Call runs fn under breaker protection. If the breaker rejects the call,
// fn is never invoked and ErrOpen or ErrHalfOpenLimit is returned.
func (b *Breaker) Call(ctx context.Context, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	b.mu.Lock()
	b.transition()

	switch b.state {
	case StateOpen:
		b.mu.Unlock()
		return ErrOpen
	case StateHalfOpen:
		if b.probes >= b.halfOpenCalls {
			b.mu.Unlock()
			return ErrHalfOpenLimit
		}
		b.probes++
		b.mu.Unlock()
	default:
		b.mu.Unlock()
	}

	err := fn()

	b.mu.Lock()
	defer b.mu.Unlock()
	if err != nil {
		b.onFailure()
		return err
	}
	b.onSuccess()
	return nil
}

// transition applies time-based state changes. Caller holds b.mu.
func (b *Breaker) transition() {
	if b.state == StateOpen && b.now().Sub(b.openedAt) >= b.resetTimeout {
		b.state = StateHalfOpen
		b.probes = 0
	}
}

func (b *Breaker) onFailure() {
	b.failures++
	b.openedAt = b.now()

	if b.state == StateHalfOpen {
		b.state = StateOpen
		b.probes = 0
		return
	}
	if b.failures >= b.maxFailures {
		b.state = StateOpen
	}
}

func (b *Breaker) onSuccess() {
	b.failures = 0
	if b.state == StateHalfOpen {
		b.state = StateClosed
		b.probes = 0
	}
}

func (b *Breaker) State() State {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.state
}

func (b *Breaker) Failures() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.failures
}
