package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/prodsearch/internal/config"
	"github.com/kailas-cloud/prodsearch/internal/db"
	dbRedis "github.com/kailas-cloud/prodsearch/internal/db/redis"
	domintent "github.com/kailas-cloud/prodsearch/internal/domain/intent"
	logpkg "github.com/kailas-cloud/prodsearch/internal/logger"
	"github.com/kailas-cloud/prodsearch/internal/metrics"
	budgetrepo "github.com/kailas-cloud/prodsearch/internal/repository/budget"
	catalogrepo "github.com/kailas-cloud/prodsearch/internal/repository/catalog"
	"github.com/kailas-cloud/prodsearch/internal/repository/criteriacache"
	chiTransport "github.com/kailas-cloud/prodsearch/internal/transport/chi"
	openaiIntent "github.com/kailas-cloud/prodsearch/internal/transport/openai"
	healthuc "github.com/kailas-cloud/prodsearch/internal/usecase/health"
	intentuc "github.com/kailas-cloud/prodsearch/internal/usecase/intent"
	searchuc "github.com/kailas-cloud/prodsearch/internal/usecase/search"
	usageuc "github.com/kailas-cloud/prodsearch/internal/usecase/usage"
	"github.com/kailas-cloud/prodsearch/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting prodsearch API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("catalog", cfg.Catalog.Path),
		zap.Bool("cache_enabled", cfg.Cache.Enabled),
		zap.Bool("intent_enabled", cfg.Intent.Enabled()),
	)

	metrics.RegisterHTTPMetrics()
	metrics.RegisterIntentMetrics()
	metrics.RegisterSearchMetrics()

	cat, err := catalogrepo.LoadFile(cfg.Catalog.Path)
	if err != nil {
		logger.Fatal("Failed to load catalog", zap.Error(err))
	}
	metrics.CatalogProducts.Set(float64(cat.Len()))
	logger.Info("Catalog loaded", zap.Int("products", cat.Len()))

	ctx := context.Background()

	// Optional KV store: criteria cache + budget persistence.
	// redis and valkey speak the same protocol, one client serves both.
	var store db.Store
	if cfg.Cache.Enabled {
		store, err = dbRedis.NewStore(dbRedis.Config{
			Addrs:     cfg.Cache.Addrs,
			Username:  cfg.Cache.Username,
			Password:  cfg.Cache.Password,
			DB:        cfg.Cache.DB,
			KeyPrefix: cfg.Cache.KeyPrefix,
		})
		if err != nil {
			logger.Fatal("Failed to create cache store", zap.Error(err))
		}
		defer store.Close()

		if err := store.WaitForReady(ctx, time.Duration(cfg.Cache.ReadinessTimeout)*time.Second); err != nil {
			logger.Fatal("Cache not ready", zap.Error(err))
		}
		logger.Info("Connected to cache",
			zap.String("driver", cfg.Cache.Driver),
			zap.Strings("addrs", cfg.Cache.Addrs),
		)
	}

	var (
		extractor    searchuc.IntentExtractor
		intentHealth healthuc.IntentChecker
		budgetReader usageuc.BudgetReader
	)
	if cfg.Intent.Enabled() {
		budget := intentuc.NewBudgetTracker(
			cfg.Intent.Provider,
			cfg.Intent.Budget.DailyTokenLimit,
			cfg.Intent.Budget.MonthlyTokenLimit,
			intentuc.BudgetAction(cfg.Intent.Budget.Action),
			logger,
		)
		if store != nil {
			// Connect persistence store, loads current counters from DB.
			budget.WithStore(ctx, budgetrepo.New(store, 0, 0))
		}
		budgetReader = budget

		chain := buildExtractor(cfg.Intent, store, time.Duration(cfg.Cache.TTLSec)*time.Second, budget, logger)
		extractor = chain
		intentHealth = chain
		logger.Info("Intent extractor created",
			zap.String("provider", cfg.Intent.Provider),
			zap.String("model", cfg.Intent.Model),
		)
	} else {
		logger.Warn("intent.api_key is empty; POST /v1/search is disabled")
	}

	// Pass nil interface (not typed nil pointer) when the cache is off.
	var cachePinger healthuc.CachePinger
	if store != nil {
		cachePinger = store
	}

	searchSvc := searchuc.New(cat, extractor)
	usageSvc := usageuc.New(budgetReader)
	healthSvc := healthuc.New(cat, cachePinger, intentHealth)

	server := chiTransport.NewServer(searchSvc, usageSvc, healthSvc, logger)
	router := chiTransport.NewRouter(server, cfg.Auth.APIKeys, logger)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// intentChain is the assembled extractor; it also answers health checks.
type intentChain interface {
	domintent.Extractor
	HealthCheck(ctx context.Context) error
}

// buildExtractor assembles the decorator chain: OpenAI -> Cached -> Instrumented -> Normalized.
func buildExtractor(
	cfg config.IntentConfig,
	store db.Store,
	cacheTTL time.Duration,
	budget intentuc.BudgetChecker,
	logger *zap.Logger,
) intentChain {
	// Base provider (with transport metrics built-in)
	base := openaiIntent.NewExtractor(&openaiIntent.Config{
		APIKey:      cfg.APIKey,
		BaseURL:     cfg.BaseURL,
		Model:       cfg.Model,
		Temperature: cfg.Temperature,
		MaxQueryLen: cfg.MaxQueryLen,
		Timeout:     time.Duration(cfg.TimeoutSec) * time.Second,
		Provider:    cfg.Provider,
		Logger:      logger,
	})

	var extractor intentChain = base
	if store != nil {
		extractor = criteriacache.New(base, store, cfg.Model, cacheTTL, metrics.CriteriaCacheTotal, logger)
	}

	// Instrumented (budget + metrics); cache hits cost nothing.
	extractor = intentuc.NewInstrumentedExtractor(extractor, cfg.Provider, cfg.Model, budget, logger)

	// Normalization is outermost so equivalent queries share a cache key.
	return domintent.NewNormalizedExtractor(extractor)
}
