package repository

import (
	"context"
	"errors"

	"github.com/guttosm/package-form/internal/circuitbreaker"
)

// LogsRepositoryWithCircuitBreaker guards a logs repository with a circuit
// breaker. Writes are dropped while the breaker is open so that the audit log
// never holds up a form request. Reads report the open breaker.
type LogsRepositoryWithCircuitBreaker struct {
	repo           LogsRepositoryInterface
	circuitBreaker *circuitbreaker.CircuitBreaker
}

// NewLogsRepositoryWithCircuitBreaker wraps repo.
func NewLogsRepositoryWithCircuitBreaker(repo LogsRepositoryInterface, cb *circuitbreaker.CircuitBreaker) *LogsRepositoryWithCircuitBreaker {
	return &LogsRepositoryWithCircuitBreaker{repo: repo, circuitBreaker: cb}
}

func (r *LogsRepositoryWithCircuitBreaker) Create(ctx context.Context, entry *LogEntryDocument) error {
	return r.write(ctx, func() error { return r.repo.Create(ctx, entry) })
}

func (r *LogsRepositoryWithCircuitBreaker) CreateMany(ctx context.Context, entries []*LogEntryDocument) error {
	return r.write(ctx, func() error { return r.repo.CreateMany(ctx, entries) })
}

func (r *LogsRepositoryWithCircuitBreaker) Query(ctx context.Context, opts LogQueryOptions) ([]*LogEntryDocument, error) {
	return read(ctx, r.circuitBreaker, func() ([]*LogEntryDocument, error) { return r.repo.Query(ctx, opts) })
}

func (r *LogsRepositoryWithCircuitBreaker) Count(ctx context.Context, opts LogQueryOptions) (int64, error) {
	return read(ctx, r.circuitBreaker, func() (int64, error) { return r.repo.Count(ctx, opts) })
}

// GetCircuitBreaker returns the breaker for readiness reporting.
func (r *LogsRepositoryWithCircuitBreaker) GetCircuitBreaker() *circuitbreaker.CircuitBreaker {
	return r.circuitBreaker
}

func (r *LogsRepositoryWithCircuitBreaker) write(ctx context.Context, fn func() error) error {
	err := r.circuitBreaker.Execute(ctx, fn)
	if errors.Is(err, circuitbreaker.ErrCircuitOpen) {
		return nil
	}
	return err
}

func read[T any](ctx context.Context, cb *circuitbreaker.CircuitBreaker, fn func() (T, error)) (T, error) {
	var result T
	err := cb.Execute(ctx, func() error {
		var err error
		result, err = fn()
		return err
	})
	return result, err
}
