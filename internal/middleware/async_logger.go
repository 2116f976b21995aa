package middleware

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/guttosm/package-form/internal/domain/model"
	"github.com/guttosm/package-form/internal/logger"
	"github.com/guttosm/package-form/internal/service"
)

// AsyncLoggerConfig sizes the audit writer.
type AsyncLoggerConfig struct {
	BufferSize int
	NumWorkers int
	// BatchSize is the largest number of entries a worker writes at once.
	BatchSize    int
	WriteTimeout time.Duration
}

// DefaultAsyncLoggerConfig returns the settings used by the router.
func DefaultAsyncLoggerConfig() AsyncLoggerConfig {
	return AsyncLoggerConfig{
		BufferSize:   1000,
		NumWorkers:   4,
		BatchSize:    50,
		WriteTimeout: 5 * time.Second,
	}
}

// AsyncLoggerStats counts entries by outcome.
type AsyncLoggerStats struct {
	Enqueued int64 `json:"enqueued"`
	Dropped  int64 `json:"dropped"`
	Written  int64 `json:"written"`
	Errors   int64 `json:"errors"`
}

// AsyncLogger writes audit entries from a fixed pool of workers, so a form
// request never waits on the database. Each worker takes whatever is queued,
// up to BatchSize entries, and stores it in one bulk write.
// A nil *AsyncLogger drops everything.
type AsyncLogger struct {
	loggingService service.LoggingService
	entryCh        chan *model.LogEntry
	stopCh         chan struct{}
	stopOnce       sync.Once
	wg             sync.WaitGroup
	batchSize      int
	writeTimeout   time.Duration

	enqueued atomic.Int64
	dropped  atomic.Int64
	written  atomic.Int64
	errors   atomic.Int64
}

// NewAsyncLogger starts the workers. It returns nil for a nil loggingService.
func NewAsyncLogger(loggingService service.LoggingService, cfg AsyncLoggerConfig) *AsyncLogger {
	if loggingService == nil {
		return nil
	}
	defaults := DefaultAsyncLoggerConfig()
	if cfg.NumWorkers <= 0 {
		cfg.NumWorkers = 1
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = defaults.BatchSize
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = defaults.WriteTimeout
	}

	al := &AsyncLogger{
		loggingService: loggingService,
		entryCh:        make(chan *model.LogEntry, cfg.BufferSize),
		stopCh:         make(chan struct{}),
		batchSize:      cfg.BatchSize,
		writeTimeout:   cfg.WriteTimeout,
	}
	al.wg.Add(cfg.NumWorkers)
	for i := 0; i < cfg.NumWorkers; i++ {
		go al.worker()
	}
	return al
}

func (al *AsyncLogger) worker() {
	defer al.wg.Done()

	for {
		select {
		case entry := <-al.entryCh:
			al.write(al.fill([]*model.LogEntry{entry}))
		case <-al.stopCh:
			for {
				batch := al.fill(nil)
				if len(batch) == 0 {
					return
				}
				al.write(batch)
			}
		}
	}
}

// fill appends queued entries to batch without blocking.
func (al *AsyncLogger) fill(batch []*model.LogEntry) []*model.LogEntry {
	for len(batch) < al.batchSize {
		select {
		case entry := <-al.entryCh:
			batch = append(batch, entry)
		default:
			return batch
		}
	}
	return batch
}

func (al *AsyncLogger) write(batch []*model.LogEntry) {
	ctx, cancel := context.WithTimeout(context.Background(), al.writeTimeout)
	defer cancel()

	n := int64(len(batch))
	if err := al.loggingService.CreateLogs(ctx, batch); err != nil {
		al.errors.Add(n)
		log := logger.Logger()
		log.Warn().Err(err).Int64("entries", n).Msg("Failed to write audit log entries")
		return
	}
	al.written.Add(n)
}

// Log enqueues an entry. It reports false when the buffer is full or the
// logger is stopped or nil.
func (al *AsyncLogger) Log(entry *model.LogEntry) bool {
	if al == nil {
		return false
	}
	select {
	case <-al.stopCh:
		al.dropped.Add(1)
		return false
	default:
	}

	select {
	case al.entryCh <- entry:
		al.enqueued.Add(1)
		return true
	default:
		al.dropped.Add(1)
		return false
	}
}

// Stop writes the pending entries and waits for the workers. It is safe to
// call more than once.
func (al *AsyncLogger) Stop() {
	if al == nil {
		return
	}
	al.stopOnce.Do(func() {
		close(al.stopCh)
		al.wg.Wait()
	})
}

func (al *AsyncLogger) Stats() AsyncLoggerStats {
	if al == nil {
		return AsyncLoggerStats{}
	}
	return AsyncLoggerStats{
		Enqueued: al.enqueued.Load(),
		Dropped:  al.dropped.Load(),
		Written:  al.written.Load(),
		Errors:   al.errors.Load(),
	}
}
