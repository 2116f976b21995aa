package middleware

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/package-form/internal/domain/model"
	"github.com/guttosm/package-form/internal/mocks"
)

// collectingLoggingService records entries written by the async logger.
type collectingLoggingService struct {
	mocks.MockLoggingService
	mu      sync.Mutex
	entries []*model.LogEntry
	batches []int
	block   chan struct{}
}

func (s *collectingLoggingService) CreateLogs(ctx context.Context, entries []*model.LogEntry) error {
	if s.block != nil {
		<-s.block
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entries...)
	s.batches = append(s.batches, len(entries))
	return nil
}

func (s *collectingLoggingService) all() []*model.LogEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*model.LogEntry(nil), s.entries...)
}

func TestDefaultAsyncLoggerConfig(t *testing.T) {
	cfg := DefaultAsyncLoggerConfig()

	assert.Equal(t, 1000, cfg.BufferSize)
	assert.Equal(t, 4, cfg.NumWorkers)
	assert.Equal(t, 50, cfg.BatchSize)
	assert.Equal(t, 5*time.Second, cfg.WriteTimeout)
}

func TestNewAsyncLogger_NilService(t *testing.T) {
	al := NewAsyncLogger(nil, DefaultAsyncLoggerConfig())
	assert.Nil(t, al)

	// A nil logger is usable and drops everything.
	assert.False(t, al.Log(&model.LogEntry{}))
	assert.Equal(t, AsyncLoggerStats{}, al.Stats())
	al.Stop()
}

func TestAsyncLogger_WritesAndDrainsOnStop(t *testing.T) {
	svc := &collectingLoggingService{}
	al := NewAsyncLogger(svc, AsyncLoggerConfig{BufferSize: 10, NumWorkers: 2, WriteTimeout: time.Second})

	for i := 0; i < 5; i++ {
		require.True(t, al.Log(&model.LogEntry{Message: "entry"}))
	}
	al.Stop()

	assert.Len(t, svc.all(), 5)
	assert.Equal(t, AsyncLoggerStats{Enqueued: 5, Written: 5}, al.Stats())

	t.Run("log after stop is dropped", func(t *testing.T) {
		assert.False(t, al.Log(&model.LogEntry{}))
		assert.Equal(t, int64(1), al.Stats().Dropped)
	})

	t.Run("stop is idempotent", func(t *testing.T) {
		assert.NotPanics(t, al.Stop)
	})
}

func TestAsyncLogger_DropsWhenFull(t *testing.T) {
	svc := &collectingLoggingService{block: make(chan struct{})}
	al := NewAsyncLogger(svc, AsyncLoggerConfig{BufferSize: 1, NumWorkers: 1, WriteTimeout: time.Second})

	// The worker takes the first entry and blocks; the second fills the buffer.
	require.True(t, al.Log(&model.LogEntry{Message: "1"}))
	require.Eventually(t, func() bool { return len(al.entryCh) == 0 }, time.Second, time.Millisecond)
	require.True(t, al.Log(&model.LogEntry{Message: "2"}))
	assert.False(t, al.Log(&model.LogEntry{Message: "3"}))

	close(svc.block)
	al.Stop()

	stats := al.Stats()
	assert.Equal(t, int64(2), stats.Enqueued)
	assert.Equal(t, int64(1), stats.Dropped)
	assert.Equal(t, int64(2), stats.Written)
}

func TestAsyncLogger_ErrorsAreCounted(t *testing.T) {
	svc := new(mocks.MockLoggingService)
	svc.On("CreateLogs", mock.Anything, mock.Anything).Return(errors.New("mongo down"))

	al := NewAsyncLogger(svc, AsyncLoggerConfig{BufferSize: 4, NumWorkers: 1, WriteTimeout: time.Second})
	al.Log(&model.LogEntry{ActionType: model.ActionSubmitPackage})
	al.Stop()

	assert.Equal(t, int64(1), al.Stats().Errors)
	assert.Zero(t, al.Stats().Written)
	svc.AssertExpectations(t)
}

func TestAsyncLogger_BatchesQueuedEntries(t *testing.T) {
	svc := &collectingLoggingService{}
	al := &AsyncLogger{
		loggingService: svc,
		entryCh:        make(chan *model.LogEntry, 10),
		stopCh:         make(chan struct{}),
		batchSize:      3,
		writeTimeout:   time.Second,
	}
	for i := 0; i < 7; i++ {
		require.True(t, al.Log(&model.LogEntry{Message: "entry"}))
	}

	al.wg.Add(1)
	go al.worker()
	al.Stop()

	assert.Len(t, svc.all(), 7)
	assert.Equal(t, []int{3, 3, 1}, svc.batches)
	assert.Equal(t, AsyncLoggerStats{Enqueued: 7, Written: 7}, al.Stats())
}
