package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/angelmondragon/rentledger-backend/api/routes"
	"github.com/angelmondragon/rentledger-backend/internal/rent"
	"github.com/angelmondragon/rentledger-backend/internal/settlement"
	"github.com/angelmondragon/rentledger-backend/internal/stats"
	"github.com/angelmondragon/rentledger-backend/internal/whitelist"
	"github.com/angelmondragon/rentledger-backend/pkg/config"
	"github.com/angelmondragon/rentledger-backend/pkg/db"
	"github.com/angelmondragon/rentledger-backend/pkg/logger"
	"github.com/angelmondragon/rentledger-backend/pkg/metrics"
	"github.com/angelmondragon/rentledger-backend/pkg/migrate"
	"github.com/angelmondragon/rentledger-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	ledgerMetrics := metrics.NewLedgerMetrics(registry)

	gate := rent.NewGate(cfg.Ledger.AdminIdentity)

	whitelistRepo := whitelist.NewRepository(dbClient.DB())
	whitelistService, err := whitelist.NewService(whitelist.ServiceParams{
		Repo:  whitelistRepo,
		Admin: gate,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create whitelist service", err)
		os.Exit(1)
	}

	statsRepo := stats.NewRepository(dbClient.DB())

	rentService, err := rent.NewService(rent.ServiceParams{
		DB:        dbClient,
		Repo:      rent.NewRepository(dbClient.DB()),
		Whitelist: whitelistRepo,
		Stats:     statsRepo,
		Bridge:    settlement.NewJournal(dbClient.DB()),
		Metrics:   ledgerMetrics,
		Logger:    logg,
		Policy: rent.Policy{
			RequireWhitelist: cfg.Ledger.RequireWhitelist,
			StrictRefunds:    cfg.Ledger.StrictRefunds,
		},
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create ledger service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: routes.NewRouter(cfg, logg, dbClient, redisClient, registry, rentService, whitelistService, statsRepo),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
