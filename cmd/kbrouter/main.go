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

	"github.com/sodam-cloud/kbrouter/internal/config"
	dbRedis "github.com/sodam-cloud/kbrouter/internal/db/redis"
	"github.com/sodam-cloud/kbrouter/internal/domain"
	logpkg "github.com/sodam-cloud/kbrouter/internal/logger"
	"github.com/sodam-cloud/kbrouter/internal/metrics"
	docrepo "github.com/sodam-cloud/kbrouter/internal/repository/document"
	"github.com/sodam-cloud/kbrouter/internal/repository/embcache"
	vocabrepo "github.com/sodam-cloud/kbrouter/internal/repository/vocabulary"
	chiTransport "github.com/sodam-cloud/kbrouter/internal/transport/chi"
	openaiTransport "github.com/sodam-cloud/kbrouter/internal/transport/openai"
	extractoruc "github.com/sodam-cloud/kbrouter/internal/usecase/extractor"
	healthuc "github.com/sodam-cloud/kbrouter/internal/usecase/health"
	intentuc "github.com/sodam-cloud/kbrouter/internal/usecase/intentparser"
	keyworduc "github.com/sodam-cloud/kbrouter/internal/usecase/keywordindex"
	retrievaluc "github.com/sodam-cloud/kbrouter/internal/usecase/retrieval"
	"github.com/sodam-cloud/kbrouter/internal/usecase/router"
	semanticuc "github.com/sodam-cloud/kbrouter/internal/usecase/semanticindex"
	"github.com/sodam-cloud/kbrouter/internal/version"
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

	logger.Info("Starting kbrouter API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.Strings("db_addrs", cfg.Database.Addrs),
	)

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Database.Addrs,
		Username: cfg.Database.Username,
		Password: cfg.Database.Password,
		DB:       cfg.Database.DB,
	})
	if err != nil {
		logger.Fatal("Failed to create database store", zap.Error(err))
	}
	defer store.Close()

	// Wait for database to be ready
	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}
	logger.Info("Connected to database")

	// Register transport metrics explicitly (no init())
	metrics.RegisterEmbeddingMetrics()
	metrics.RegisterCompletionMetrics()

	// Build embedder chain: OpenAI -> Cached
	baseEmbedder := openaiTransport.NewEmbedder(&openaiTransport.EmbedderConfig{
		APIKey:     cfg.Embedding.APIKey,
		BaseURL:    cfg.Embedding.BaseURL,
		Model:      cfg.Embedding.Model,
		Dimensions: cfg.Embedding.Dimensions,
		Provider:   cfg.Embedding.Provider,
		Logger:     logger,
	})
	var embedder domain.Embedder = embcache.New(
		baseEmbedder, store,
		time.Duration(cfg.Embedding.CacheTTLSec)*time.Second,
		metrics.EmbeddingCacheTotal, logger,
	)
	logger.Info("Embedder created",
		zap.String("provider", cfg.Embedding.Provider),
		zap.String("model", cfg.Embedding.Model),
		zap.Int("dimensions", cfg.Embedding.Dimensions),
	)

	completer := openaiTransport.NewCompleter(&openaiTransport.CompleterConfig{
		APIKey:      cfg.Completion.APIKey,
		BaseURL:     cfg.Completion.BaseURL,
		Model:       cfg.Completion.Model,
		Temperature: cfg.Completion.Temperature,
		MaxTokens:   cfg.Completion.MaxTokens,
		Provider:    cfg.Completion.Provider,
		Logger:      logger,
	})

	// Create repositories
	vocabRepo := vocabrepo.New(store)
	docRepo := docrepo.New(store)

	// Create use case services
	keywordSvc := keyworduc.New(vocabRepo, logger)
	if err := keywordSvc.Init(ctx); err != nil {
		logger.Fatal("Failed to initialize keyword index", zap.Error(err))
	}
	defer keywordSvc.Close()

	semanticSvc := semanticuc.New(docRepo, embedder, cfg.Embedding.Dimensions, logger)

	classifier := router.NewClassifier()
	tunables := router.NewTunables(router.Config{
		VectorWeight:  cfg.Router.VectorWeight,
		KeywordWeight: cfg.Router.KeywordWeight,
		MaxResults:    cfg.Router.MaxResults,
		MinScore:      cfg.Router.MinScore,
	})

	intentSvc := intentuc.New(completer, logger)
	extractorSvc := extractoruc.New(completer, logger)

	retrievalSvc := retrievaluc.New(
		intentSvc, extractorSvc, keywordSvc, semanticSvc, classifier, tunables, logger,
	)

	healthSvc := healthuc.New(store, baseEmbedder, keywordSvc)

	// Create chi server
	server := chiTransport.NewServer(retrievalSvc, keywordSvc, semanticSvc, tunables, healthSvc, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	r.Mount("/", server.Routes())

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
					_ = json.NewEncoder(w).Encode(map[string]string{
						"code":    "internal_error",
						"message": "internal error",
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

			// Set X-Request-ID in response header
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			// Per-request logger with request_id
			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line — one line per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.Int64("content_length", r.ContentLength),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
