// Package app provides database initialization and setup.
package app

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/guttosm/package-form/config"
	"github.com/guttosm/package-form/internal/circuitbreaker"
	"github.com/guttosm/package-form/internal/repository"
	"github.com/guttosm/package-form/internal/service"
)

// DatabaseComponents holds database-related components.
type DatabaseComponents struct {
	DB                 *repository.MongoDB
	LoggingService     service.LoggingService
	LogsCircuitBreaker *circuitbreaker.CircuitBreaker
}

// InitializeDatabase connects to MongoDB for the audit log.
// Returns nil if the database is disabled or the connection fails.
func InitializeDatabase(cfg config.DatabaseConfig) *DatabaseComponents {
	if !cfg.Enabled {
		return nil
	}

	db, err := repository.NewMongoDB(cfg.URI, cfg.DatabaseName)
	if err != nil {
		log.Error().Err(err).Msg("Failed to connect to MongoDB - continuing without audit log")
		return nil
	}

	log.Info().Str("database", cfg.DatabaseName).Msg("Connected to MongoDB")

	if cfg.LogsTTL > 0 {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		err := db.SetLogsTTL(ctx, cfg.LogsTTL)
		cancel()
		if err != nil {
			log.Warn().Err(err).Dur("ttl", cfg.LogsTTL).Msg("Failed to set logs TTL index")
		}
	}

	logsCB := circuitbreaker.New(breakerConfig("mongodb-logs", cfg))
	logsRepo := repository.NewLogsRepositoryWithCircuitBreaker(repository.NewLogsRepository(db), logsCB)

	return &DatabaseComponents{
		DB:                 db,
		LoggingService:     service.NewLoggingService(logsRepo),
		LogsCircuitBreaker: logsCB,
	}
}

// Close disconnects from MongoDB.
func (d *DatabaseComponents) Close() {
	if d == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := d.DB.Close(ctx); err != nil {
		log.Warn().Err(err).Msg("Failed to disconnect from MongoDB")
	}
}
