package main

import (
	"context"
	"os"

	"corpbooking/config"
	"corpbooking/di"
	"corpbooking/helper"
	"corpbooking/shared/logger"

	"github.com/rs/zerolog/log"
)

const defaultFixture = "seed/fixtures.yaml"

func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	path := defaultFixture
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	file, err := os.Open(path)
	if err != nil {
		log.Fatal().Err(err).Str("path", path).Msg("Failed to open seed fixture")
	}
	defer file.Close()

	fixture, err := helper.ParseSeedFixture(file)
	if err != nil {
		log.Fatal().Err(err).Str("path", path).Msg("Failed to parse seed fixture")
	}

	res, err := di.InitializeSeeder().Seed(context.Background(), fixture)
	if err != nil {
		log.Fatal().Err(err).Msg("Seeding failed")
	}

	log.Info().Int("admins", res.Admins).Int("vehicles", res.Vehicles).Int("rooms", res.Rooms).Msg("Seeding completed")
}
