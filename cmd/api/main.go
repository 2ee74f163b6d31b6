package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/marketsquare/marketplace-api/internal/api"
	"github.com/marketsquare/marketplace-api/internal/core/ports"
	"github.com/marketsquare/marketplace-api/internal/infrastructure/db/memory"
	mongodb "github.com/marketsquare/marketplace-api/internal/infrastructure/db/mongo"
	redisdb "github.com/marketsquare/marketplace-api/internal/infrastructure/db/redis"
	"github.com/marketsquare/marketplace-api/internal/infrastructure/hash"
	"github.com/marketsquare/marketplace-api/internal/infrastructure/queue"
	"github.com/marketsquare/marketplace-api/internal/infrastructure/token"
	"github.com/marketsquare/marketplace-api/internal/pkg/config"
	"github.com/marketsquare/marketplace-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// Logger is not up yet; nothing better than stderr here.
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx := context.Background()

	deps := api.Dependencies{
		Hasher: hash.NewBcryptHasher(0),
		Codec:  token.NewJWTCodec(cfg.JWTSecret, cfg.TokenTTL),
		Logger: log,
	}

	var recorder ports.AuditRecorder = queue.NewLogRecorder(log)

	switch cfg.StorageBackend {
	case "mongo":
		client, db, err := mongodb.Connect(ctx, mongodb.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to mongodb")
		}
		defer func() {
			_ = client.Disconnect(context.Background())
		}()

		deps.Users = mongodb.NewUserRepository(db)
		deps.Products = mongodb.NewProductRepository(db)
		deps.Mongo = db
		recorder = mongodb.NewAuditRepository(db)
		log.Info().Str("database", cfg.Mongo.Database).Msg("using mongodb storage")
	default:
		deps.Users = memory.NewUserRepository()
		deps.Products = memory.NewProductRepository()
		log.Info().Msg("using in-memory storage")
	}

	if cfg.CacheEnabled {
		rdb, err := redisdb.Connect(ctx, redisdb.Config{
			Addr: cfg.Redis.Addr,
			DB:   cfg.Redis.DB,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer func() {
			_ = rdb.Close()
		}()

		deps.Cache = redisdb.NewCatalogCache(rdb)
		deps.Redis = rdb
		log.Info().Str("addr", cfg.Redis.Addr).Msg("catalog cache enabled")
	}

	dispatcherCtx, stopDispatcher := context.WithCancel(ctx)
	defer stopDispatcher()

	dispatcher := queue.NewDispatcher(cfg.AuditWorkers, recorder, log)
	dispatcher.Start(dispatcherCtx)
	deps.Audit = dispatcher

	e := api.NewRouter(deps)

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	stopDispatcher()
}
