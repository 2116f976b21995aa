// Package main is the entry point for the package form service.
//
// @title           Package Form API
// @version         1.0.0
// @description     Stores packages through a form of customer, warehouse and package type selects.
//
//	The option lists and the package itself live in the package API; this
//	service keeps one form per visitor session and relays its submissions.
//
// @contact.name   API Support
// @contact.email  support@example.com
// @contact.url    https://github.com/guttosm/package-form
//
// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT
//
// @host      localhost:8080
// @BasePath  /
//
// @tag.name        Form
// @tag.description Package form operations
//
// @tag.name        Health
// @tag.description Health check endpoints
package main

import (
	"github.com/rs/zerolog/log"

	_ "github.com/guttosm/package-form/docs" // swagger docs

	"github.com/guttosm/package-form/config"
	"github.com/guttosm/package-form/internal/app"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	application := app.InitializeApp(cfg)
	server := app.NewServer(application.Router, cfg.Server)

	err := server.Run()
	application.Close()
	if err != nil {
		log.Fatal().Err(err).Msg("Server error")
	}
}
