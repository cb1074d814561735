package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	goredis "github.com/redis/go-redis/v9"

	httpAdapter "github.com/dnoor/kasir/internal/adapter/http"
	"github.com/dnoor/kasir/internal/adapter/http/handler"
	"github.com/dnoor/kasir/internal/adapter/http/middleware"
	postgresRepo "github.com/dnoor/kasir/internal/adapter/repository/postgres"
	redisRepo "github.com/dnoor/kasir/internal/adapter/repository/redis"
	"github.com/dnoor/kasir/internal/infrastructure/config"
	"github.com/dnoor/kasir/internal/infrastructure/logger"
	"github.com/dnoor/kasir/internal/infrastructure/metrics"
	"github.com/dnoor/kasir/internal/infrastructure/postgres"
	"github.com/dnoor/kasir/internal/infrastructure/redis"
	"github.com/dnoor/kasir/internal/receipt"
	"github.com/dnoor/kasir/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Setup logger
	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})

	ctx := context.Background()

	// Connect to PostgreSQL
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	// Run migrations
	if err := postgres.RunMigrations(cfg.DatabaseURL, "migrations", log); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Connect to Redis (optional)
	var redisClient *goredis.Client
	if cfg.RedisURL != "" {
		redisClient, err = redis.NewClient(ctx, cfg.RedisURL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer redisClient.Close()
		log.Info().Msg("connected to redis")
	} else {
		log.Warn().Msg("redis disabled, running without cache and idempotency")
	}

	// Initialize repositories
	txManager := postgresRepo.NewTxManager(pool)
	dailyRepo := postgresRepo.NewDailyDataRepository(pool)
	auditRepo := postgresRepo.NewAuditRepository(pool)
	productRepo := postgresRepo.NewProductRepository(pool)
	idGen := postgresRepo.NewULIDGenerator()
	retrier := postgresRepo.NewRetrier(log)

	var (
		cache            usecase.Cache
		idempotencyStore usecase.IdempotencyStore
	)
	if redisClient != nil {
		cache = redisRepo.NewCache(redisClient)
		idempotencyStore = redisRepo.NewIdempotencyStore(redisClient)
	}

	// Metrics
	m := metrics.New()

	// Initialize use cases
	registerUC := usecase.NewRegisterUseCase(dailyRepo, auditRepo, txManager, idGen, retrier, cache, log, m)
	productUC := usecase.NewProductUseCase(productRepo, idGen)
	reportUC := usecase.NewReportUseCase(dailyRepo)
	exportUC := usecase.NewExportUseCase(dailyRepo, productRepo, auditRepo, reportUC)

	// Receipt settings
	receiptSettings := receipt.DefaultSettings()
	if cfg.ReceiptBusinessName != "" {
		receiptSettings.BusinessName = cfg.ReceiptBusinessName
	}
	if cfg.ReceiptFooterText != "" {
		receiptSettings.FooterText = cfg.ReceiptFooterText
	}
	if cfg.ReceiptPrefix != "" {
		receiptSettings.ReceiptNumberPrefix = cfg.ReceiptPrefix
	}

	// Initialize handlers
	registerHandler := handler.NewRegisterHandler(registerUC)
	transactionHandler := handler.NewTransactionHandler(registerUC, receiptSettings)
	balanceHandler := handler.NewBalanceHandler(registerUC)
	queueHandler := handler.NewQueueHandler(registerUC)
	productHandler := handler.NewProductHandler(productUC)
	reportHandler := handler.NewReportHandler(reportUC, exportUC)
	healthHandler := handler.NewHealthHandler(pool, redisClient)

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		RegisterHandler:    registerHandler,
		TransactionHandler: transactionHandler,
		BalanceHandler:     balanceHandler,
		QueueHandler:       queueHandler,
		ProductHandler:     productHandler,
		ReportHandler:      reportHandler,
		HealthHandler:      healthHandler,
		IdempotencyStore:   idempotencyStore,
		RateLimiter:        middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst),
		Logger:             log,
	})

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
