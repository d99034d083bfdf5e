// Encontro is an event registration platform: users keep a wallet balance
// and enrolling in a paid event settles the price against it atomically.
//
// @title           Encontro API
// @version         1.0
// @description     Event registration platform with wallet-based enrollment settlement.
// @BasePath        /
//
// @securityDefinitions.apikey BearerAuth
// @in   header
// @name Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	mongodriver "go.mongodb.org/mongo-driver/mongo"

	"github.com/encontro-app/encontro/internal/api"
	"github.com/encontro-app/encontro/internal/infrastructure/db/mongo"
	"github.com/encontro-app/encontro/internal/infrastructure/db/redis"
	"github.com/encontro-app/encontro/internal/infrastructure/queue"
	"github.com/encontro-app/encontro/internal/pkg/config"
	"github.com/encontro-app/encontro/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET must be set")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Mongo ---
	mongoClient, db, err := mongo.Connect(ctx, mongo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("mongo disconnect failed")
		}
	}()

	ensureIndexes(ctx, db, log)

	// --- Redis ---
	rdb, err := redis.Connect(ctx, redis.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Error().Err(err).Msg("redis close failed")
		}
	}()

	// --- Async ledger writer ---
	ledgerRepo := mongo.NewLedgerRepository(db)
	dispatcher := queue.NewDispatcher(cfg.LedgerWorkers, ledgerRepo, log)
	dispatcher.Start(ctx)

	// --- HTTP server ---
	e := api.NewRouter(db, rdb, cfg.JWTSecret, dispatcher)

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

// ensureIndexes creates the collection indexes at startup. Failures are
// logged, not fatal: the app can run without them, only slower, and the
// unique constraints also have application-level checks.
func ensureIndexes(ctx context.Context, db *mongodriver.Database, log zerolog.Logger) {
	type indexer interface {
		EnsureIndexes(ctx context.Context) error
	}
	repos := map[string]indexer{
		"users":      mongo.NewUserRepository(db),
		"events":     mongo.NewEventRepository(db),
		"categories": mongo.NewCategoryRepository(db),
		"ledger":     mongo.NewLedgerRepository(db),
	}
	for name, repo := range repos {
		if err := repo.EnsureIndexes(ctx); err != nil {
			log.Warn().Err(err).Str("collection", name).Msg("index creation failed")
		}
	}
}
