// Package repository stores the audit log in MongoDB.
package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	// LogsCollection holds HTTP request and package submission entries.
	LogsCollection = "audit_log"

	// ttlIndexName is the name MongoDB gives the single-field timestamp index.
	ttlIndexName = "timestamp_1"

	// codeIndexNotFound is returned when dropping a missing index.
	codeIndexNotFound = 27

	healthCheckTimeout = 2 * time.Second
)

// MongoConfig sizes the connection pool and its timeouts.
type MongoConfig struct {
	MaxPoolSize            uint64
	MinPoolSize            uint64
	MaxConnIdleTime        time.Duration
	ConnectTimeout         time.Duration
	ServerSelectionTimeout time.Duration
	SocketTimeout          time.Duration
	EnableCompression      bool
}

// DefaultMongoConfig returns production settings. The audit log is
// write-mostly and low volume, so the pool stays small.
func DefaultMongoConfig() MongoConfig {
	return MongoConfig{
		MaxPoolSize:            20,
		MinPoolSize:            2,
		MaxConnIdleTime:        10 * time.Minute,
		ConnectTimeout:         10 * time.Second,
		ServerSelectionTimeout: 5 * time.Second,
		SocketTimeout:          30 * time.Second,
		EnableCompression:      true,
	}
}

func (cfg MongoConfig) clientOptions(uri string) *options.ClientOptions {
	opts := options.Client().
		ApplyURI(uri).
		SetMaxPoolSize(cfg.MaxPoolSize).
		SetMinPoolSize(cfg.MinPoolSize).
		SetMaxConnIdleTime(cfg.MaxConnIdleTime).
		SetConnectTimeout(cfg.ConnectTimeout).
		SetServerSelectionTimeout(cfg.ServerSelectionTimeout).
		SetSocketTimeout(cfg.SocketTimeout).
		SetRetryWrites(true).
		SetRetryReads(true)
	if cfg.EnableCompression {
		opts.SetCompressors([]string{"zstd", "snappy", "zlib"})
	}
	return opts
}

// MongoDB is a connected client and the audit log collection.
type MongoDB struct {
	Client   *mongo.Client
	Database *mongo.Database
	Logs     *mongo.Collection
}

// NewMongoDB connects with DefaultMongoConfig.
func NewMongoDB(uri, databaseName string) (*MongoDB, error) {
	return NewMongoDBWithConfig(uri, databaseName, DefaultMongoConfig())
}

// NewMongoDBWithConfig connects, pings the server and creates the lookup
// indexes. The client is disconnected again if any step fails.
func NewMongoDBWithConfig(uri, databaseName string, cfg MongoConfig) (*MongoDB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, cfg.clientOptions(uri))
	if err != nil {
		return nil, err
	}

	db := client.Database(databaseName)
	m := &MongoDB{Client: client, Database: db, Logs: db.Collection(LogsCollection)}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	if err := m.createIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return m, nil
}

// createIndexes backs the request, session and action lookups. The TTL index
// is owned by SetLogsTTL.
func (m *MongoDB) createIndexes(ctx context.Context) error {
	newestFirst := func(field string) mongo.IndexModel {
		return mongo.IndexModel{Keys: bson.D{{Key: field, Value: 1}, {Key: "timestamp", Value: -1}}}
	}
	_, err := m.Logs.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "request_id", Value: 1}}},
		newestFirst("session_id"),
		newestFirst("action_type"),
	})
	return err
}

// SetLogsTTL expires entries ttl after their timestamp, replacing any
// previous expiry.
func (m *MongoDB) SetLogsTTL(ctx context.Context, ttl time.Duration) error {
	var cmdErr mongo.CommandError
	if _, err := m.Logs.Indexes().DropOne(ctx, ttlIndexName); err != nil &&
		!(errors.As(err, &cmdErr) && cmdErr.Code == codeIndexNotFound) {
		return err
	}

	_, err := m.Logs.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "timestamp", Value: 1}},
		Options: options.Index().SetName(ttlIndexName).SetExpireAfterSeconds(int32(ttl.Seconds())),
	})
	return err
}

func (m *MongoDB) Close(ctx context.Context) error {
	return m.Client.Disconnect(ctx)
}

// HealthCheck pings the server. It backs the mongodb readiness check.
func (m *MongoDB) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
	defer cancel()
	return m.Client.Ping(ctx, nil)
}
