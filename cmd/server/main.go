package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/gemlab/assessment-portal/internal/api"
	mongodb "github.com/gemlab/assessment-portal/internal/infrastructure/db/mongo"
	redisdb "github.com/gemlab/assessment-portal/internal/infrastructure/db/redis"
	"github.com/gemlab/assessment-portal/internal/pkg/config"
	"github.com/gemlab/assessment-portal/pkg/logger"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("mongodb disconnect failed")
		}
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() {
		_ = rdb.Close()
	}()

	if err := ensureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("index creation failed")
	}

	e, dispatcher := api.NewRouter(cfg, db, rdb, log)

	dispatcherCtx, stopDispatcher := context.WithCancel(context.Background())
	dispatcher.Start(dispatcherCtx)

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("assessment portal started")

	<-ctx.Done()
	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}

	// Stop the workers only after the server no longer accepts events.
	stopDispatcher()
	log.Info().Msg("assessment portal stopped")
}

// ensureIndexes creates the unique and query indexes each repository relies
// on. Index creation is idempotent, so running it on every boot is safe.
func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	indexCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	repos := []interface {
		EnsureIndexes(ctx context.Context) error
	}{
		mongodb.NewUserRepository(db),
		mongodb.NewOrderRepository(db),
		mongodb.NewAssessmentRepository(db),
		mongodb.NewCertificateRepository(db),
	}
	for _, r := range repos {
		if err := r.EnsureIndexes(indexCtx); err != nil {
			return err
		}
	}
	return nil
}
