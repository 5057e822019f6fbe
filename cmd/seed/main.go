// Command seed inserts the sample marketplace listings into the configured
// store. With -init it creates the Postgres schema first.
package main

import (
	"context"
	"errors"
	"flag"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/mcpsquare/marketplace-api/internal/config"
	"github.com/mcpsquare/marketplace-api/internal/repository"
	"github.com/mcpsquare/marketplace-api/internal/repository/postgres"
	"github.com/mcpsquare/marketplace-api/pkg/logger"
)

func main() {
	initSchema := flag.Bool("init", false, "create the services table before seeding")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	logger.Setup(cfg.Log.Level)

	if cfg.Store.Driver != config.StorePostgres {
		log.Fatal().Str("driver", cfg.Store.Driver).Msg("seeding requires the postgres store")
	}

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if *initSchema {
		if err := postgres.EnsureSchema(ctx, db); err != nil {
			log.Fatal().Err(err).Msg("failed to create schema")
		}
		log.Info().Msg("schema ready")
	}

	repo := postgres.NewServiceRepository(db)
	seeded := 0
	for _, svc := range repository.SeedServices() {
		if err := repo.Create(ctx, svc); err != nil {
			if errors.Is(err, repository.ErrDuplicateID) {
				log.Info().Str("title", svc.Title).Msg("already seeded, skipping")
				continue
			}
			log.Fatal().Err(err).Str("title", svc.Title).Msg("failed to seed service")
		}
		seeded++
	}

	log.Info().Int("seeded", seeded).Msg("seeding complete")
}
