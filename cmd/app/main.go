package main

import (
	"corpbooking/config"
	"corpbooking/di"
	"corpbooking/helper"
	"corpbooking/shared/logger"

	"github.com/rs/zerolog/log"
)

// @title Corporate Booking API
// @version 1.0
// @description Booking of company vehicles, meeting rooms and the training center with admin approval.
// @BasePath /
// @securityDefinitions.apikey CookieAuth
// @in cookie
// @name admin_session
func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	if cfg.DB.Postgres.AutoMigrate {
		if err := helper.Up(cfg); err != nil {
			log.Fatal().Err(err).Msg("Failed to apply migrations")
		}
	}

	http := di.InitializeService()
	http.Serve()
}
