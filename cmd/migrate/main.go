package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/alertmgr/backend/internal/config"
	"github.com/alertmgr/backend/internal/infrastructure/database"
)

func main() {
	configPath := flag.String("config", os.Getenv("CONFIG_PATH"), "path to YAML config file")
	envFile := flag.String("env", ".env", "path to .env file")
	reset := flag.Bool("reset", false, "drop all alert tables before migrating")
	yes := flag.Bool("yes", false, "skip the confirmation prompt for -reset")
	flag.Parse()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()

	cfg, err := config.Load(*envFile, *configPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to load configuration")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	conn, err := database.Open(ctx, cfg.Database)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer conn.Close()

	if *reset {
		if !*yes {
			fmt.Printf("Drop every alert in %s database? Type 'yes' to continue: ", conn.Driver())
			var answer string
			_, _ = fmt.Scanln(&answer)
			if answer != "yes" {
				logger.Info().Msg("Aborted")
				return
			}
		}
		if err := conn.Reset(ctx); err != nil {
			logger.Fatal().Err(err).Msg("Reset failed")
		}
		logger.Warn().Msg("Alert tables dropped")
	}

	if err := conn.Migrate(ctx); err != nil {
		logger.Fatal().Err(err).Msg("Migration failed")
	}
	version, err := conn.SchemaVersion(ctx)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to read schema version")
	}
	logger.Info().Str("driver", conn.Driver()).Int("version", version).Msg("Schema up to date")
}
