package service

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/guttosm/package-form/internal/domain/model"
	"github.com/guttosm/package-form/internal/repository"
)

// defaultSubmissionsLimit caps Submissions when the caller passes no limit.
const defaultSubmissionsLimit = 20

// LoggingService stores and queries the audit log.
type LoggingService interface {
	CreateLog(ctx context.Context, entry *model.LogEntry) error
	CreateLogs(ctx context.Context, entries []*model.LogEntry) error

	// QueryLogs returns the entries matching opts, newest first.
	QueryLogs(ctx context.Context, opts model.LogQueryOptions) ([]model.LogEntry, error)
	CountLogs(ctx context.Context, opts model.LogQueryOptions) (int64, error)

	// Submissions returns the package submissions audited for a form session,
	// newest first.
	Submissions(ctx context.Context, sessionID string, limit int) ([]model.LogEntry, error)
}

// LoggingServiceImpl implements LoggingService on a logs repository.
type LoggingServiceImpl struct {
	repo repository.LogsRepositoryInterface
	now  func() time.Time
}

// NewLoggingService creates a logging service backed by repo.
func NewLoggingService(repo repository.LogsRepositoryInterface) LoggingService {
	return &LoggingServiceImpl{repo: repo, now: time.Now}
}

func (s *LoggingServiceImpl) CreateLog(ctx context.Context, entry *model.LogEntry) error {
	return s.repo.Create(ctx, s.document(entry))
}

// CreateLogs stores entries in one bulk write. An empty batch is a no-op.
func (s *LoggingServiceImpl) CreateLogs(ctx context.Context, entries []*model.LogEntry) error {
	if len(entries) == 0 {
		return nil
	}
	docs := make([]*repository.LogEntryDocument, 0, len(entries))
	for _, entry := range entries {
		docs = append(docs, s.document(entry))
	}
	return s.repo.CreateMany(ctx, docs)
}

func (s *LoggingServiceImpl) QueryLogs(ctx context.Context, opts model.LogQueryOptions) ([]model.LogEntry, error) {
	docs, err := s.repo.Query(ctx, repository.LogQueryOptions(opts))
	if err != nil {
		return nil, err
	}
	entries := make([]model.LogEntry, 0, len(docs))
	for _, doc := range docs {
		entries = append(entries, model.LogEntry(*doc))
	}
	return entries, nil
}

func (s *LoggingServiceImpl) CountLogs(ctx context.Context, opts model.LogQueryOptions) (int64, error) {
	return s.repo.Count(ctx, repository.LogQueryOptions(opts))
}

func (s *LoggingServiceImpl) Submissions(ctx context.Context, sessionID string, limit int) ([]model.LogEntry, error) {
	if limit <= 0 {
		limit = defaultSubmissionsLimit
	}
	return s.QueryLogs(ctx, model.LogQueryOptions{
		SessionID:  sessionID,
		ActionType: model.ActionSubmitPackage,
		Limit:      limit,
	})
}

// document stamps entry with an id and timestamp when missing and returns
// its storage form.
func (s *LoggingServiceImpl) document(entry *model.LogEntry) *repository.LogEntryDocument {
	if entry.ID.IsZero() {
		entry.ID = primitive.NewObjectID()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = s.now()
	}
	doc := repository.LogEntryDocument(*entry)
	return &doc
}
