//go:build integration

package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/package-form/internal/circuitbreaker"
)

func TestLogsRepositoryWithCircuitBreaker_Integration(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	db := setupTestDB(t)

	cb := circuitbreaker.New(circuitbreaker.Config{
		FailureThreshold: 3,
		SuccessThreshold: 1,
		Timeout:          time.Second,
		Name:             "mongodb",
	})
	repo := NewLogsRepositoryWithCircuitBreaker(NewLogsRepository(db), cb)

	require.NoError(t, repo.Create(ctx, &LogEntryDocument{Level: "info", Message: "one", SessionID: "cb"}))
	require.NoError(t, repo.CreateMany(ctx, []*LogEntryDocument{
		{Level: "info", Message: "two", SessionID: "cb"},
		{Level: "info", Message: "three", SessionID: "cb"},
	}))

	count, err := repo.Count(ctx, LogQueryOptions{SessionID: "cb"})
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	entries, err := repo.Query(ctx, LogQueryOptions{SessionID: "cb", Limit: 2})
	require.NoError(t, err)
	assert.Len(t, entries, 2)
	assert.Equal(t, circuitbreaker.StateClosed, cb.State())
}
