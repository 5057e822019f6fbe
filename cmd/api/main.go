package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/mcpsquare/marketplace-api/internal/config"
	"github.com/mcpsquare/marketplace-api/internal/handler"
	"github.com/mcpsquare/marketplace-api/internal/handler/prometheus"
	serviceHandler "github.com/mcpsquare/marketplace-api/internal/handler/service"
	"github.com/mcpsquare/marketplace-api/internal/middleware"
	"github.com/mcpsquare/marketplace-api/internal/repository"
	"github.com/mcpsquare/marketplace-api/internal/repository/memory"
	"github.com/mcpsquare/marketplace-api/internal/repository/postgres"
	"github.com/mcpsquare/marketplace-api/internal/router"
	"github.com/mcpsquare/marketplace-api/internal/service/catalog"
	"github.com/mcpsquare/marketplace-api/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	logger.Setup(cfg.Log.Level)

	// Select the repository implementation at startup. The memory store is
	// a development placeholder; postgres is the production path.
	var (
		serviceRepo repository.ServiceRepository
		pinger      handler.Pinger
	)
	switch cfg.Store.Driver {
	case config.StoreMemory:
		serviceRepo = memory.NewServiceRepository()
		if cfg.Store.Seed {
			seedMemoryStore(serviceRepo)
		}
		log.Warn().Msg("using in-memory store; data will not survive a restart")
	default:
		db, err := postgres.NewDB(cfg.Database)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to database")
		}
		defer db.Close()
		serviceRepo = postgres.NewServiceRepository(db)
		pinger = db.DB
	}

	catalogSvc := catalog.NewService(serviceRepo)

	h := handler.NewHandler(pinger)
	serviceH := serviceHandler.NewHandler(catalogSvc)
	promH := prometheus.New()

	corsConfig := middleware.DefaultCORSConfig()
	if len(cfg.CORS.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.CORS.AllowedOrigins
	}

	routerConfig := router.Config{
		RequestTimeout: cfg.Server.RequestTimeout,
		CORSConfig:     corsConfig,
		MetricsEnabled: cfg.Metrics.Enabled,
	}
	if cfg.RateLimit.Enabled {
		routerConfig.RateLimit = rate.Limit(cfg.RateLimit.RequestsPerSecond)
		routerConfig.RateBurst = cfg.RateLimit.Burst
	}

	r := router.NewRouter(serviceH, h, promH, routerConfig)
	r.Setup()

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: r.Engine(),
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Str("store", cfg.Store.Driver).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server stopped")
}

func seedMemoryStore(repo repository.ServiceRepository) {
	ctx := context.Background()
	for _, svc := range repository.SeedServices() {
		if err := repo.Create(ctx, svc); err != nil {
			log.Warn().Err(err).Str("title", svc.Title).Msg("failed to seed service")
		}
	}
}
