// cmd/worker-manager/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"automation-advisor/internal/analysis/jobparser"
	"automation-advisor/internal/analysis/pipeline"
	"automation-advisor/internal/common/cache"
	"automation-advisor/internal/common/camunda"
	"automation-advisor/internal/common/config"
	"automation-advisor/internal/common/database"
	"automation-advisor/internal/common/genai"
	"automation-advisor/internal/common/logger"
	"automation-advisor/internal/common/observability"
	"automation-advisor/internal/heuristics"
	"automation-advisor/internal/recommendation/service"
	"automation-advisor/internal/recommendation/store"

	aj "automation-advisor/internal/workers/analysis/analyze-job"
	rw "automation-advisor/internal/workers/recommendation/recommend-workflows"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.NewWithOutput(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)
	defer func() { _ = zapLog.Sync() }()

	log := logger.NewZapAdapter(zapLog).WithFields(map[string]interface{}{
		"app":     cfg.App.Name,
		"version": cfg.App.Version,
	})

	zapLog.Info("Starting worker manager...", zap.String("environment", cfg.App.Environment))

	ctx := context.Background()

	// --- Observability ---
	obs, err := observability.New(cfg.App.Name)
	if err != nil {
		zapLog.Fatal("observability init failed", zap.Error(err))
	}
	tracerProvider := observability.NewTracerProvider(cfg.Tracing)
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = tracerProvider.Shutdown(shutdownCtx)
		_ = obs.Shutdown(shutdownCtx)
	}()

	// --- Init Zeebe Client ---
	zeebe, err := camunda.NewClient(ctx, camunda.ConfigFrom(cfg.Camunda), log)
	if err != nil {
		zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
	}
	zapLog.Info("Zeebe client connected successfully")

	// --- Init PostgreSQL with retry ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		return pg.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "PostgreSQL connection")
	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()
	zapLog.Info("PostgreSQL connected successfully")

	// --- Init Redis with retry ---
	var rdb *database.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		rdb, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		return rdb.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")
	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer rdb.Close()
	zapLog.Info("Redis connected successfully")

	// --- Init Elasticsearch (legacy templates) with retry ---
	var legacyStore store.CandidateStore
	if cfg.Database.Elasticsearch.GetURL() != "" {
		// the index is optional unless the legacy strategy is active
		esAttempts := 3
		if !cfg.Recommendation.UnifiedEnabled {
			esAttempts = 15
		}
		var esClient *database.ElasticsearchClient
		err = retryWithBackoff(func() error {
			var err error
			esClient, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
			if err != nil {
				return err
			}
			return esClient.Ping(ctx)
		}, esAttempts, 2*time.Second, zapLog, "Elasticsearch connection")

		switch {
		case err == nil:
			legacyStore = store.NewLegacyStore(esClient.Client, cfg.Recommendation.LegacyIndex, log)
			zapLog.Info("Elasticsearch connected successfully")
		case !cfg.Recommendation.UnifiedEnabled:
			zapLog.Fatal("elasticsearch failed after retries", zap.Error(err))
		default:
			zapLog.Warn("elasticsearch unavailable, legacy templates disabled", zap.Error(err))
		}
	}

	// --- Cache: ristretto L1 in front of Redis ---
	l1, err := cache.NewMemoryCache(cfg.Cache.L1MaxCostBytes)
	if err != nil {
		zapLog.Fatal("l1 cache init failed", zap.Error(err))
	}
	defer l1.Close()
	recCache := cache.NewTiered(l1, cache.NewRedisCache(rdb.Client, cfg.App.Name+":"), config.GetDuration(cfg.Cache.L1TTL))

	// --- Analysis pipeline ---
	heur := heuristics.Default()
	genaiCfg := cfg.APIs.GenAI
	genaiCfg.Timeout = cfg.Analysis.CompletionTimeout
	completer := genai.NewClient(genaiCfg)
	if missing := completer.Missing(); len(missing) > 0 {
		zapLog.Warn("GenAI gateway not configured, analyze-job-text jobs will fail", zap.Strings("missing", missing))
	}

	observer := observability.MultiObserver{
		observability.NewTracingObserver(tracerProvider),
		observability.NewLoggingObserver(log),
		observability.NewMetricsObserver(),
	}
	analyzer := pipeline.New(jobparser.New(completer, heur, log), heur, observer, log, pipeline.WithTelemetry(obs))

	// --- Recommendation service ---
	strategy, err := service.NewStrategy(
		cfg.Recommendation,
		store.NewPostgresStore(pg.DB, cfg.Recommendation.VerificationStatuses, log),
		legacyStore,
		heur,
		log,
	)
	if err != nil {
		zapLog.Fatal("recommendation strategy init failed", zap.Error(err))
	}
	recommender := service.NewService(strategy, recCache, cfg.Recommendation, log, service.WithTelemetry(obs))
	zapLog.Info("Recommendation strategy selected", zap.String("strategy", recommender.StrategyName()))

	// --- Register workers ---
	registry := camunda.NewRegistry(zeebe.GetClient(), log)

	analyzeHandler := aj.NewHandler(aj.LoadConfig(cfg), analyzer, obs, log)
	registry.Start(aj.TaskType, config.GetWorkerConfig(cfg, aj.TaskType), analyzeHandler.Handle)

	recommendHandler := rw.NewHandler(rw.LoadConfig(cfg), recommender, obs, log)
	registry.Start(rw.TaskType, config.GetWorkerConfig(cfg, rw.TaskType), recommendHandler.Handle)

	zapLog.Info("Workers registered", zap.Strings("taskTypes", registry.Running()))

	// --- Health & Metrics Server ---
	mux := http.NewServeMux()
	mux.Handle("/health", newHealthHandler(map[string]healthCheck{
		"postgres": pg.Ping,
		"redis":    rdb.Ping,
		"zeebe":    zeebe.HealthCheck,
	}))
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              cfg.Server.MetricsAddress,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		zapLog.Info("Health/Metrics server listening", zap.String("address", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Error("Health/Metrics server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping workers...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	registry.Close()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error stopping health server", zap.Error(err))
	}
	if err := zeebe.Close(); err != nil {
		zapLog.Error("Error closing Zeebe client", zap.Error(err))
	}

	zapLog.Info("Worker manager stopped gracefully")
}
