package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"corpbooking/config"
	"corpbooking/di"
	"corpbooking/shared/logger"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := di.InitializeWorker().Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("Booking audit worker failed")
	}
}
