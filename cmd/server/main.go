package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/commerceos/customer-system/internal/api/rpc"
	"github.com/commerceos/customer-system/internal/core/service"
	"github.com/commerceos/customer-system/internal/infrastructure/config"
	mongodb "github.com/commerceos/customer-system/internal/infrastructure/db/mongo"
	redisdb "github.com/commerceos/customer-system/internal/infrastructure/db/redis"
	httpops "github.com/commerceos/customer-system/internal/infrastructure/http"
	natsinfra "github.com/commerceos/customer-system/internal/infrastructure/nats"
	"github.com/commerceos/customer-system/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- MongoDB ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		_ = mongoClient.Disconnect(context.Background())
	}()

	repo := mongodb.NewCustomerRepository(db)
	if err := repo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("mongodb index creation failed")
	}

	// --- Redis ---
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

	// --- NATS ---
	nc, err := natsinfra.Connect(natsinfra.Config{
		Servers: cfg.Nats.Servers,
		Name:    "customer-system",
	})
	if err != nil {
		log.Fatal().Err(err).Msg("nats connection failed")
	}
	defer nc.Close()

	// --- Wiring ---
	summaryCache := redisdb.NewSummaryCache(rdb, cfg.Redis.SummaryTTL)
	resolver := natsinfra.NewUserResolver(nc, summaryCache, cfg.Nats.ResolveTimeout,
		log.With().Str("component", "user_resolver").Logger())
	customers := service.NewCustomerService(repo, resolver,
		log.With().Str("component", "customer_service").Logger())

	endpoint := rpc.NewServer(nc, customers,
		log.With().Str("component", "rpc").Logger())
	if err := endpoint.Subscribe(); err != nil {
		log.Fatal().Err(err).Msg("rpc subscription failed")
	}

	// --- Ops HTTP listener (health + metrics only) ---
	ops := httpops.NewRouter(db, rdb, nc)
	go func() {
		if err := ops.Start(":" + cfg.OpsPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("ops listener failed")
		}
	}()

	log.Info().Str("ops_port", cfg.OpsPort).Strs("nats_servers", cfg.Nats.Servers).Msg("customer service started")

	<-ctx.Done()
	log.Info().Msg("shutting down")

	if err := endpoint.Drain(); err != nil {
		log.Error().Err(err).Msg("nats drain failed")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := ops.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("ops listener shutdown failed")
	}
}
