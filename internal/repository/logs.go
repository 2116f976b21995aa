package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// LogEntryDocument is the stored form of an audit log entry.
type LogEntryDocument struct {
	ID         primitive.ObjectID     `bson:"_id,omitempty"`
	Timestamp  time.Time              `bson:"timestamp"`
	Level      string                 `bson:"level"`
	Message    string                 `bson:"message"`
	RequestID  string                 `bson:"request_id,omitempty"`
	SessionID  string                 `bson:"session_id,omitempty"`
	Method     string                 `bson:"method,omitempty"`
	Path       string                 `bson:"path,omitempty"`
	StatusCode int                    `bson:"status_code,omitempty"`
	Duration   int64                  `bson:"duration_ms,omitempty"`
	IP         string                 `bson:"ip,omitempty"`
	UserAgent  string                 `bson:"user_agent,omitempty"`
	Error      string                 `bson:"error,omitempty"`
	ActionType string                 `bson:"action_type,omitempty"`
	Fields     map[string]interface{} `bson:"fields,omitempty"`
}

// LogQueryOptions filters log queries. Zero values match everything.
type LogQueryOptions struct {
	RequestID  string
	SessionID  string
	ActionType string
	Level      string
	StartTime  *time.Time
	EndTime    *time.Time
	Limit      int
	Skip       int
}

// filter builds the MongoDB filter for opts.
func (opts LogQueryOptions) filter() bson.M {
	filter := bson.M{}
	if opts.RequestID != "" {
		filter["request_id"] = opts.RequestID
	}
	if opts.SessionID != "" {
		filter["session_id"] = opts.SessionID
	}
	if opts.ActionType != "" {
		filter["action_type"] = opts.ActionType
	}
	if opts.Level != "" {
		filter["level"] = opts.Level
	}
	if opts.StartTime != nil || opts.EndTime != nil {
		timeFilter := bson.M{}
		if opts.StartTime != nil {
			timeFilter["$gte"] = *opts.StartTime
		}
		if opts.EndTime != nil {
			timeFilter["$lte"] = *opts.EndTime
		}
		filter["timestamp"] = timeFilter
	}
	return filter
}

// LogsRepository reads and writes the logs collection.
type LogsRepository struct {
	collection *mongo.Collection
}

// NewLogsRepository creates a new logs repository.
func NewLogsRepository(db *MongoDB) *LogsRepository {
	return &LogsRepository{
		collection: db.Logs,
	}
}

func stamp(entry *LogEntryDocument) {
	if entry.ID.IsZero() {
		entry.ID = primitive.NewObjectID()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}
}

// Create inserts a new log entry document.
func (r *LogsRepository) Create(ctx context.Context, entry *LogEntryDocument) error {
	stamp(entry)
	_, err := r.collection.InsertOne(ctx, entry)
	return err
}

// CreateMany inserts entries in one unordered bulk write.
func (r *LogsRepository) CreateMany(ctx context.Context, entries []*LogEntryDocument) error {
	if len(entries) == 0 {
		return nil
	}

	docs := make([]interface{}, len(entries))
	for i, entry := range entries {
		stamp(entry)
		docs[i] = entry
	}

	_, err := r.collection.InsertMany(ctx, docs, options.InsertMany().SetOrdered(false))
	return err
}

// Query returns matching entries, newest first.
func (r *LogsRepository) Query(ctx context.Context, opts LogQueryOptions) ([]*LogEntryDocument, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})
	if opts.Limit > 0 {
		findOptions.SetLimit(int64(opts.Limit))
	}
	if opts.Skip > 0 {
		findOptions.SetSkip(int64(opts.Skip))
	}

	cursor, err := r.collection.Find(ctx, opts.filter(), findOptions)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var entries []*LogEntryDocument
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// Count returns the number of matching entries.
func (r *LogsRepository) Count(ctx context.Context, opts LogQueryOptions) (int64, error) {
	return r.collection.CountDocuments(ctx, opts.filter())
}
