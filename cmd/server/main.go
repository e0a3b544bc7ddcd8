package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/souqlens/backend/config"
	"github.com/souqlens/backend/internal/classifier"
	httpDelivery "github.com/souqlens/backend/internal/delivery/http"
	"github.com/souqlens/backend/internal/domain"
	"github.com/souqlens/backend/internal/extractor"
	"github.com/souqlens/backend/internal/infrastructure/cache"
	"github.com/souqlens/backend/internal/infrastructure/llm"
	"github.com/souqlens/backend/internal/infrastructure/store"
	"github.com/souqlens/backend/internal/usecase"
)

const version = "1.0.0"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := initLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("starting souqlens backend",
		zap.String("version", version),
		zap.String("environment", cfg.Server.Environment),
		zap.String("port", cfg.Server.Port),
	)

	// Product store
	connectCtx, cancelConnect := context.WithTimeout(context.Background(), 10*time.Second)
	productStore, err := store.NewMongoStore(connectCtx, store.Config{
		URI:        cfg.Mongo.URI,
		Database:   cfg.Mongo.Database,
		Collection: cfg.Mongo.Collection,
	}, logger)
	cancelConnect()
	if err != nil {
		logger.Fatal("connecting to mongodb", zap.Error(err))
	}

	// The store works without indexes, just slower.
	indexCtx, cancelIndex := context.WithTimeout(context.Background(), 10*time.Second)
	if err := productStore.EnsureIndexes(indexCtx); err != nil {
		logger.Warn("creating mongodb indexes", zap.Error(err))
	}
	cancelIndex()

	cacheStore := newCache(cfg, logger)

	// Completion client is optional: without an API key the pipeline runs
	// every listing through the deterministic extractors only.
	var completer domain.TextCompleter
	llmClient, err := llm.NewClient(llm.Config{
		APIKey:  cfg.LLM.APIKey,
		BaseURL: cfg.LLM.BaseURL,
		Model:   cfg.LLM.Model,
	}, logger)
	switch {
	case err == nil:
		completer = llmClient
		logger.Info("llm completion configured",
			zap.String("base_url", cfg.LLM.BaseURL),
			zap.String("model", cfg.LLM.Model),
		)
	case errors.Is(err, domain.ErrLLMUnavailable):
		logger.Info("llm completion not configured, running deterministic-only",
			zap.Error(err))
	default:
		logger.Fatal("initializing llm client", zap.Error(err))
	}

	// Extraction and classification pipeline
	patterns := extractor.NewPatterns()
	engine := extractor.NewEngine(patterns, cfg.Pipeline.HomeCountry, cfg.Pipeline.Currency, logger)
	complexity := extractor.NewComplexityClassifier(patterns)

	var generative *extractor.GenerativeExtractor
	if completer != nil {
		generative = extractor.NewGenerativeExtractor(completer, cfg.Pipeline.Currency)
	}

	hybridExtractor := extractor.NewHybridExtractor(engine, generative, complexity, logger)
	hybridClassifier := classifier.NewHybrid(classifier.NewRuleBased(), completer, logger)
	pipeline := usecase.NewPipeline(hybridExtractor, hybridClassifier)

	// Usecase layer
	productService := usecase.NewProductService(
		pipeline,
		productStore,
		usecase.ProductServiceConfig{
			DataDirectory: cfg.Pipeline.DataDirectory,
			Workers:       cfg.Pipeline.Workers,
		},
		logger,
	)
	comparisonService := usecase.NewComparisonService(
		productStore,
		cacheStore,
		usecase.ComparisonServiceConfig{
			CacheTTL: cfg.Cache.TTL,
		},
		logger,
	)

	// HTTP delivery
	handler := httpDelivery.NewHandler(productService, comparisonService, logger)
	router := httpDelivery.SetupRouter(cfg, handler, logger)

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shut down", zap.Error(err))
	}
	if err := productStore.Close(shutdownCtx); err != nil {
		logger.Error("closing product store", zap.Error(err))
	}
	if err := cacheStore.Close(); err != nil {
		logger.Error("closing cache", zap.Error(err))
	}

	logger.Info("server stopped")
}

// newCache picks the cache backend from configuration. A redis that is
// unreachable at startup degrades to the in-memory cache so the API stays
// available.
func newCache(cfg *config.Config, logger *zap.Logger) domain.CacheRepository {
	if cfg.Cache.Type != "redis" {
		logger.Info("using in-memory cache", zap.Duration("ttl", cfg.Cache.TTL))
		return cache.NewMemoryCache()
	}

	redisCache, err := cache.NewRedisCache(cache.RedisConfig{
		Address:  cfg.Cache.RedisAddress,
		Password: cfg.Cache.RedisPassword,
		DB:       cfg.Cache.RedisDB,
	})
	if err != nil {
		logger.Warn("redis unavailable, falling back to in-memory cache", zap.Error(err))
		return cache.NewMemoryCache()
	}

	logger.Info("using redis cache",
		zap.String("address", cfg.Cache.RedisAddress),
		zap.Duration("ttl", cfg.Cache.TTL),
	)
	return redisCache
}

// initLogger builds the zap logger for the configured environment and level.
func initLogger(cfg *config.Config) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Logging.Level)
	if err != nil {
		return nil, fmt.Errorf("parsing log level %q: %w", cfg.Logging.Level, err)
	}

	zapCfg := zap.NewDevelopmentConfig()
	if cfg.Server.Environment == "production" {
		zapCfg = zap.NewProductionConfig()
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
