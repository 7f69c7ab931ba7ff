package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/kailas-cloud/finrag/internal/config"
	"github.com/kailas-cloud/finrag/internal/db"
	"github.com/kailas-cloud/finrag/internal/db/memory"
	dbRedis "github.com/kailas-cloud/finrag/internal/db/redis"
	"github.com/kailas-cloud/finrag/internal/domain"
	logpkg "github.com/kailas-cloud/finrag/internal/logger"
	"github.com/kailas-cloud/finrag/internal/metrics"
	corpusrepo "github.com/kailas-cloud/finrag/internal/repository/corpus"
	"github.com/kailas-cloud/finrag/internal/repository/embcache"
	chiTransport "github.com/kailas-cloud/finrag/internal/transport/chi"
	openaiEmb "github.com/kailas-cloud/finrag/internal/transport/openai"
	embeddinguc "github.com/kailas-cloud/finrag/internal/usecase/embedding"
	healthuc "github.com/kailas-cloud/finrag/internal/usecase/health"
	retrievaluc "github.com/kailas-cloud/finrag/internal/usecase/retrieval"
	"github.com/kailas-cloud/finrag/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.New(logpkg.Options{
		Env:   env,
		Level: cfg.Logging.Level,
		File: logpkg.FileOptions{
			Path:       cfg.Logging.File.Path,
			MaxSizeMB:  cfg.Logging.File.MaxSizeMB,
			MaxBackups: cfg.Logging.File.MaxBackups,
			MaxAgeDays: cfg.Logging.File.MaxAgeDays,
			Compress:   cfg.Logging.File.Compress,
		},
	})
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting finrag API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("built", version.Date),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("embedding_provider", cfg.Embedding.Provider),
		zap.String("cache_driver", cfg.Embedding.Cache.Driver),
	)

	// Register metrics explicitly (no init())
	metrics.RegisterEmbeddingMetrics()
	metrics.RegisterRetrievalMetrics()
	metrics.RegisterHTTPMetrics()

	ctx := context.Background()

	// Cache store is optional
	store, err := openCacheStore(ctx, cfg.Embedding.Cache, logger)
	if err != nil {
		logger.Fatal("Failed to open embedding cache", zap.Error(err))
	}
	if store != nil {
		defer store.Close()
	}

	// Load the corpus: FAQs first, then funds
	loader := corpusrepo.NewLoader(corpusrepo.Config{
		FAQPath:  cfg.Data.FAQsPath,
		FundPath: cfg.Data.FundsPath,
		OnError:  corpusrepo.Policy(cfg.Data.OnLoadError),
	}, logger)
	corpus, err := loader.Load()
	if err != nil {
		logger.Fatal("Failed to load corpus", zap.Error(err))
	}

	base := buildBaseEmbedder(cfg.Embedding, logger)
	docEmbedder := buildEmbedder(base, cfg.Embedding, cfg.Embedding.DocumentInstruction, store, logger)
	queryEmbedder := buildEmbedder(base, cfg.Embedding, cfg.Embedding.QueryInstruction, store, logger)
	logger.Info("Embedders created",
		zap.String("provider", cfg.Embedding.Provider),
		zap.String("model", cfg.Embedding.Model),
		zap.Int("dimensions", cfg.Embedding.Dimensions),
	)

	// Build both indices; any failure here is fatal
	retrieval, err := retrievaluc.BuildWithDocumentEmbedder(ctx, corpus, docEmbedder, queryEmbedder, retrievaluc.Options{
		TopK:                cfg.Retrieval.TopK,
		SemanticWeight:      cfg.Retrieval.SemanticWeight,
		LexicalWeight:       cfg.Retrieval.LexicalWeight,
		CandidateMultiplier: cfg.Retrieval.CandidateMultiplier,
		MaxFeatures:         cfg.Retrieval.MaxFeatures,
		BatchSize:           cfg.Embedding.BatchSize,
		Name:                "api",
	}, logger)
	if err != nil {
		logger.Fatal("Failed to build retrieval indices", zap.Error(err))
	}

	// Health service: nil interfaces (not typed nil pointers) when a component is absent
	var cachePinger healthuc.CachePinger
	if store != nil {
		cachePinger = store
	}
	healthSvc := healthuc.New(cachePinger, newEmbeddingHealthChecker(base))

	server := chiTransport.NewServer(retrieval, healthSvc, chiTransport.Options{
		MaxTopK:      cfg.Retrieval.MaxTopK,
		QueryTimeout: time.Duration(cfg.Retrieval.QueryTimeoutSec) * time.Second,
	}, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	server.Routes(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
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

// openCacheStore connects the configured embedding cache. Returns nil for driver "none".
func openCacheStore(ctx context.Context, cfg config.CacheConfig, logger *zap.Logger) (db.Store, error) {
	switch cfg.Driver {
	case config.CacheMemory:
		logger.Info("Using in-process embedding cache")
		return memory.NewStore(), nil
	case config.CacheValkey, config.CacheRedis:
		store, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Addrs,
			Username: cfg.Username,
			Password: cfg.Password,
			DB:       cfg.DB,
		})
		if err != nil {
			return nil, fmt.Errorf("create %s store: %w", cfg.Driver, err)
		}
		if err := store.WaitForReady(ctx, time.Duration(cfg.ReadinessTimeout)*time.Second); err != nil {
			store.Close()
			return nil, fmt.Errorf("%s not ready: %w", cfg.Driver, err)
		}
		logger.Info("Connected to embedding cache", zap.String("driver", cfg.Driver), zap.Strings("addrs", cfg.Addrs))
		return store, nil
	default:
		return nil, nil
	}
}

// embeddingHealthChecker wraps domain.Embedder to implement health.EmbeddingChecker.
type embeddingHealthChecker struct {
	embedder domain.Embedder
}

func newEmbeddingHealthChecker(embedder domain.Embedder) *embeddingHealthChecker {
	return &embeddingHealthChecker{embedder: embedder}
}

func (h *embeddingHealthChecker) HealthCheck(ctx context.Context) error {
	if hc, ok := h.embedder.(domain.HealthChecker); ok {
		if err := hc.HealthCheck(ctx); err != nil {
			return fmt.Errorf("embedding health check: %w", err)
		}
	}
	return nil
}

// buildBaseEmbedder creates the provider with transport metrics built in.
func buildBaseEmbedder(cfg config.EmbeddingConfig, logger *zap.Logger) domain.Embedder {
	if cfg.Provider == config.ProviderHashing {
		return embeddinguc.NewHashingEmbedder(cfg.Dimensions)
	}
	return openaiEmb.NewEmbedder(&openaiEmb.Config{
		APIKey:     cfg.APIKey,
		BaseURL:    cfg.BaseURL,
		Model:      cfg.Model,
		Dimensions: cfg.Dimensions,
		User:       cfg.User,
		Provider:   config.ProviderOpenAI,
		Logger:     logger,
	})
}

// buildEmbedder assembles the decorator chain: provider -> cached -> instrumented -> normalized -> instruction
func buildEmbedder(
	base domain.Embedder,
	cfg config.EmbeddingConfig,
	instruction string,
	store db.KVStore,
	logger *zap.Logger,
) domain.Embedder {
	model := cfg.Model
	if cfg.Provider == config.ProviderHashing {
		model = embeddinguc.HashingModel
	}

	// Cached
	embedder := base
	if store != nil {
		embedder = embcache.New(base, store, embcache.Options{
			Model:      model,
			TTL:        time.Duration(cfg.Cache.TTLSec) * time.Second,
			CacheTotal: metrics.EmbeddingCacheTotal,
		}, logger)
	}

	// Instrumented (logging + provider-sized chunks)
	embedder = embeddinguc.NewInstrumentedEmbedder(embedder, cfg.Provider, model, cfg.BatchSize, logger)

	if cfg.Normalize {
		embedder = embeddinguc.NewNormalizedEmbedder(embedder)
	}

	// Instruction prefix (outermost, so the cache key includes the instruction)
	if instruction != "" {
		return domain.NewInstructionEmbedder(embedder, instruction)
	}

	return embedder
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(chiTransport.ErrorResponse{
						Code:    chiTransport.CodeInternalError,
						Message: "internal error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// chi.middleware.RequestID already placed request_id in context
			requestID := chiMiddleware.GetReqID(r.Context())
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			// Per-request logger with request_id
			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line, one per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.Int64("content_length", r.ContentLength),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
				zap.String("embedding_tokens", ww.Header().Get("X-Embedding-Tokens")),
			)
		})
	}
}
