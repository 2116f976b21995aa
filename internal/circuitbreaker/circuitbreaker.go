// Package circuitbreaker guards calls to a flaky dependency, failing fast while it is unhealthy.
package circuitbreaker

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// ErrCircuitOpen is returned when the breaker rejects a call without running it.
var ErrCircuitOpen = errors.New("circuit breaker is open")

// State is the breaker position.
type State int

const (
	// StateClosed lets calls through and counts consecutive failures.
	StateClosed State = iota
	// StateOpen rejects calls until the cool-down elapses.
	StateOpen
	// StateHalfOpen lets probe calls through to decide whether to close again.
	StateHalfOpen
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// Config holds breaker tuning.
type Config struct {
	// FailureThreshold is the number of consecutive failures that opens the breaker.
	FailureThreshold int
	// SuccessThreshold is the number of half-open successes that closes it again.
	SuccessThreshold int
	// Timeout is how long the breaker stays open before probing.
	Timeout time.Duration
	// Name labels log lines and state-change callbacks.
	Name string
	// IsFailure classifies an error returned by the guarded call. Errors for which
	// it returns false are passed back to the caller but do not trip the breaker.
	// Nil means every non-nil error counts.
	IsFailure func(error) bool
	// OnStateChange is invoked, with the lock released, after every transition.
	OnStateChange func(name string, from, to State)
}

// DefaultConfig returns the defaults used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		FailureThreshold: 5,
		SuccessThreshold: 2,
		Timeout:          30 * time.Second,
		Name:             "circuit-breaker",
	}
}

// CircuitBreaker is safe for concurrent use.
type CircuitBreaker struct {
	config          Config
	state           State
	failureCount    int
	successCount    int
	lastFailureTime time.Time
	now             func() time.Time
	mu              sync.Mutex
}

// New creates a closed breaker.
func New(config Config) *CircuitBreaker {
	if config.FailureThreshold <= 0 {
		config.FailureThreshold = 1
	}
	if config.SuccessThreshold <= 0 {
		config.SuccessThreshold = 1
	}
	return &CircuitBreaker{
		config: config,
		state:  StateClosed,
		now:    time.Now,
	}
}

// Execute runs fn unless the breaker is open. A context that is already done
// short-circuits with its error and is not counted against the dependency.
func (cb *CircuitBreaker) Execute(ctx context.Context, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	cb.mu.Lock()
	var transition *[2]State
	if cb.state == StateOpen {
		if cb.now().Sub(cb.lastFailureTime) < cb.config.Timeout {
			cb.mu.Unlock()
			return ErrCircuitOpen
		}
		transition = cb.setState(StateHalfOpen)
		cb.successCount = 0
	}
	cb.mu.Unlock()
	cb.notify(transition)

	err := fn()

	cb.mu.Lock()
	switch {
	case err == nil:
		transition = cb.onSuccess()
	case errors.Is(err, context.Canceled):
		transition = nil
	case cb.countsAsFailure(err):
		transition = cb.onFailure()
	default:
		transition = cb.onSuccess()
	}
	cb.mu.Unlock()
	cb.notify(transition)

	return err
}

func (cb *CircuitBreaker) countsAsFailure(err error) bool {
	if cb.config.IsFailure == nil {
		return true
	}
	return cb.config.IsFailure(err)
}

func (cb *CircuitBreaker) onFailure() *[2]State {
	cb.failureCount++
	cb.lastFailureTime = cb.now()

	switch cb.state {
	case StateClosed:
		if cb.failureCount >= cb.config.FailureThreshold {
			log.Warn().
				Str("circuit_breaker", cb.config.Name).
				Int("failure_count", cb.failureCount).
				Msg("Circuit breaker opened")
			return cb.setState(StateOpen)
		}
	case StateHalfOpen:
		cb.failureCount = cb.config.FailureThreshold
		log.Warn().
			Str("circuit_breaker", cb.config.Name).
			Msg("Circuit breaker reopened after probe failure")
		return cb.setState(StateOpen)
	}
	return nil
}

func (cb *CircuitBreaker) onSuccess() *[2]State {
	cb.failureCount = 0

	if cb.state != StateHalfOpen {
		cb.successCount = 0
		return nil
	}
	cb.successCount++
	if cb.successCount < cb.config.SuccessThreshold {
		return nil
	}
	cb.successCount = 0
	log.Info().
		Str("circuit_breaker", cb.config.Name).
		Msg("Circuit breaker closed")
	return cb.setState(StateClosed)
}

// setState must be called with mu held.
func (cb *CircuitBreaker) setState(to State) *[2]State {
	from := cb.state
	if from == to {
		return nil
	}
	cb.state = to
	return &[2]State{from, to}
}

func (cb *CircuitBreaker) notify(t *[2]State) {
	if t == nil || cb.config.OnStateChange == nil {
		return
	}
	cb.config.OnStateChange(cb.config.Name, t[0], t[1])
}

// State returns the current position.
func (cb *CircuitBreaker) State() State {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state
}

// IsOpen reports whether calls are currently rejected.
func (cb *CircuitBreaker) IsOpen() bool {
	return cb.State() == StateOpen
}

// Name returns the configured label.
func (cb *CircuitBreaker) Name() string {
	return cb.config.Name
}

// Stats is a point-in-time view used by the readiness probe.
type Stats struct {
	Name         string    `json:"name"`
	State        string    `json:"state"`
	FailureCount int       `json:"failure_count"`
	SuccessCount int       `json:"success_count"`
	LastFailure  time.Time `json:"last_failure,omitempty"`
	IsHealthy    bool      `json:"healthy"`
}

// GetStats returns current breaker statistics.
func (cb *CircuitBreaker) GetStats() Stats {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	return Stats{
		Name:         cb.config.Name,
		State:        cb.state.String(),
		FailureCount: cb.failureCount,
		SuccessCount: cb.successCount,
		LastFailure:  cb.lastFailureTime,
		IsHealthy:    cb.state != StateOpen,
	}
}
