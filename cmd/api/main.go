package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"

	"github.com/quotewise/rfq-backend/api/routes"
	"github.com/quotewise/rfq-backend/internal/catalog"
	"github.com/quotewise/rfq-backend/internal/extractor"
	"github.com/quotewise/rfq-backend/internal/matcher"
	"github.com/quotewise/rfq-backend/internal/pipeline"
	"github.com/quotewise/rfq-backend/internal/pricing"
	"github.com/quotewise/rfq-backend/internal/quotation"
	"github.com/quotewise/rfq-backend/pkg/config"
	"github.com/quotewise/rfq-backend/pkg/db"
	"github.com/quotewise/rfq-backend/pkg/logger"
	"github.com/quotewise/rfq-backend/pkg/metrics"
	"github.com/quotewise/rfq-backend/pkg/migrate"
	pkgredis "github.com/quotewise/rfq-backend/pkg/redis"
)

const shutdownTimeout = 15 * time.Second

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

	dbClient, err := db.New(context.Background(), cfg.DB, cfg.FeatureFlags, logg)
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

	var redisClient *pkgredis.Client
	if cfg.Redis.Enabled() {
		redisClient, err = pkgredis.New(context.Background(), cfg.Redis, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap redis", err)
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}()
	} else {
		logg.Warn(context.Background(), "redis not configured; duplicate detection disabled")
	}

	catalogRepo := catalog.NewRepository(dbClient.DB())
	quoteRepo := quotation.NewRepository(dbClient.DB())

	matcherService, err := matcher.NewService(catalogRepo, matcher.DefaultScoreWeights(), matcher.DefaultPriceTable())
	if err != nil {
		logg.Error(context.Background(), "failed to create matcher service", err)
		os.Exit(1)
	}

	var guard *quotation.DuplicateGuard
	if redisClient != nil {
		guard = quotation.NewDuplicateGuard(redisClient, cfg.Pipeline.DuplicateGuardTTL)
	}

	pipelineService, err := pipeline.NewService(
		extractor.New(extractor.DefaultTables()),
		matcherService,
		pricing.NewCalculator(pricing.DefaultSchedule()),
		quotation.NewAssembler(decimal.NewFromFloat(cfg.Pipeline.TaxRate)),
		quoteRepo,
		guard,
		logg,
		metrics.NewPipelineMetrics(prometheus.DefaultRegisterer),
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create pipeline service", err)
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

	var redisPinger pkgredis.Pinger
	if redisClient != nil {
		redisPinger = redisClient
	}

	server := &http.Server{
		Addr:    addr,
		Handler: routes.NewRouter(cfg, logg, dbClient, redisPinger, pipelineService, matcherService, quoteRepo),
	}

	shutdownCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		<-shutdownCtx.Done()
		timeoutCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(timeoutCtx); err != nil {
			logg.Error(ctx, "server shutdown failed", err)
		}
	}()

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
	logg.Info(ctx, "api server shut down gracefully")
}
