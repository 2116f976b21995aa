// Package app provides application initialization and dependency injection.
package app

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/guttosm/package-form/config"
	"github.com/guttosm/package-form/internal/http"
)

// App is the wired service.
type App struct {
	Router *gin.Engine

	services *ServiceComponents
	database *DatabaseComponents
	router   *RouterComponents
}

// InitializeApp creates and wires all application dependencies.
func InitializeApp(cfg config.Config) *App {
	InitializeLogger(cfg.Log)

	services := InitializeServices(cfg)
	database := InitializeDatabase(cfg.Database)
	router := InitializeRouter(services, database, cfg)

	return &App{
		Router:   http.NewRouter(router.Handler, router.HealthHandler, router.Config),
		services: services,
		database: database,
		router:   router,
	}
}

// Close unmounts every form, flushes the audit log and disconnects from
// MongoDB. Call it after the HTTP server has stopped.
func (a *App) Close() {
	a.services.Forms.Close()
	a.router.Stop()
	a.database.Close()
	log.Info().Msg("Application stopped")
}
