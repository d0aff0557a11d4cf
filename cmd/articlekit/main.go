package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/yazarlar/articlekit/internal/config"
	"github.com/yazarlar/articlekit/internal/db"
	dbFile "github.com/yazarlar/articlekit/internal/db/file"
	dbRedis "github.com/yazarlar/articlekit/internal/db/redis"
	"github.com/yazarlar/articlekit/internal/domain/category"
	"github.com/yazarlar/articlekit/internal/domain/popularity"
	logpkg "github.com/yazarlar/articlekit/internal/logger"
	"github.com/yazarlar/articlekit/internal/metrics"
	"github.com/yazarlar/articlekit/internal/repository/rescache"
	"github.com/yazarlar/articlekit/internal/stopwords"
	"github.com/yazarlar/articlekit/internal/text"
	chiTransport "github.com/yazarlar/articlekit/internal/transport/chi"
	"github.com/yazarlar/articlekit/internal/transport/fetch"
	categoryuc "github.com/yazarlar/articlekit/internal/usecase/category"
	healthuc "github.com/yazarlar/articlekit/internal/usecase/health"
	popularityuc "github.com/yazarlar/articlekit/internal/usecase/popularity"
	similarityuc "github.com/yazarlar/articlekit/internal/usecase/similarity"
	summaryuc "github.com/yazarlar/articlekit/internal/usecase/summary"
	"github.com/yazarlar/articlekit/internal/version"
)

func main() {
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()
	if *showVersion {
		fmt.Println(version.String())
		return
	}

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

	logger.Info("Starting articlekit API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("stopwords_language", cfg.Stopwords.Language),
		zap.String("cache_driver", cfg.Stopwords.Cache.Driver),
	)

	metrics.RegisterOperationMetrics()

	ctx := context.Background()

	store, err := openStore(ctx, cfg.Stopwords.Cache)
	if err != nil {
		logger.Fatal("Failed to open resource cache", zap.Error(err))
	}
	if store != nil {
		defer store.Close()
	}

	// Stopwords are loaded once, before serving; every source failing is fatal.
	loader := buildLoader(cfg.Stopwords, store, logger)
	stop, err := loader.Load(ctx, cfg.Stopwords.Language)
	if err != nil {
		logger.Fatal("Failed to load stopwords", zap.String("language", cfg.Stopwords.Language), zap.Error(err))
	}

	table, err := categoryTable(cfg.Categories)
	if err != nil {
		logger.Fatal("Invalid category table", zap.Error(err))
	}

	weights := popularity.Weights{Likes: *cfg.Ranking.LikesWeight, Views: *cfg.Ranking.ViewsWeight}
	if err := weights.Validate(); err != nil {
		logger.Fatal("Invalid popularity weights", zap.Error(err))
	}

	// Create use case services
	summarySvc := summaryuc.New(text.SentenceSplitter{}, logger).WithConfig(summaryuc.Config{
		MaxSentences:  cfg.Summary.MaxSentences,
		FallbackChars: cfg.Summary.FallbackChars,
		Marker:        cfg.Summary.Marker,
	})
	similaritySvc := similarityuc.New(similarityuc.NewTFIDF(stop), logger).WithConfig(similarityuc.Config{
		Threshold: *cfg.Ranking.SimilarityThreshold,
		TopN:      cfg.Ranking.DefaultTopN,
	})
	categorySvc := categoryuc.New(table)
	popularitySvc := popularityuc.New(weights, cfg.Ranking.TopLimit)

	// Pass nil interface (not typed nil pointer) when caching is disabled.
	var cachePinger healthuc.CachePinger
	if store != nil {
		cachePinger = store
	}
	healthSvc := healthuc.New(loader, cfg.Stopwords.Language, cachePinger)

	server := chiTransport.NewServer(chiTransport.Services{
		Summary:    summarySvc,
		Similarity: similaritySvc,
		Category:   categorySvc,
		Popularity: popularitySvc,
		Health:     healthSvc,
	}, cfg.HTTP.MaxBodyBytes, logger)

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

// openStore creates the resource cache backend. Driver "none" returns a nil store.
func openStore(ctx context.Context, cfg config.CacheConfig) (db.Store, error) {
	switch cfg.Driver {
	case config.CacheDriverFile:
		store, err := dbFile.NewStore(cfg.Dir)
		if err != nil {
			return nil, fmt.Errorf("file: %w", err)
		}
		return store, nil
	case config.CacheDriverRedis:
		store, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Addrs,
			Username: cfg.Username,
			Password: cfg.Password,
			DB:       cfg.DB,
		})
		if err != nil {
			return nil, fmt.Errorf("redis: %w", err)
		}
		if err := store.WaitForReady(ctx, time.Duration(cfg.ReadinessTimeout)*time.Second); err != nil {
			store.Close()
			return nil, fmt.Errorf("redis not ready: %w", err)
		}
		return store, nil
	case config.CacheDriverNone:
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown cache driver %q", cfg.Driver)
	}
}

// buildLoader wires the stopword sources: cache, bundled lists, remote fetch.
func buildLoader(cfg config.StopwordsConfig, store db.Store, logger *zap.Logger) *stopwords.Loader {
	var cache stopwords.Cache
	if store != nil {
		ttl := time.Duration(cfg.Cache.TTLHours) * time.Hour
		cache = rescache.New(store, ttl, metrics.ResourceCacheTotal)
	}

	var fetcher stopwords.Fetcher
	if !cfg.Source.DisableRemote && cfg.Source.URL != "" {
		fetcher = fetch.New(&fetch.Config{
			URLTemplate: cfg.Source.URL,
			Timeout:     time.Duration(cfg.Source.TimeoutSec) * time.Second,
			MaxRetries:  uint64(cfg.Source.MaxRetries),
			BaseBackoff: time.Duration(cfg.Source.BaseBackoffMS) * time.Millisecond,
			Logger:      logger,
		})
	}

	return stopwords.NewLoader(cache, fetcher, metrics.StopwordSourceTotal, logger)
}

// categoryTable builds the keyword table from config, or the built-in one.
func categoryTable(cfg config.CategoriesConfig) (category.Table, error) {
	if len(cfg.Entries) == 0 {
		return category.NewTable(category.DefaultEntries(), cfg.Fallback)
	}
	entries := make([]category.Entry, len(cfg.Entries))
	for i, e := range cfg.Entries {
		entries[i] = category.Entry{Label: e.Label, Keywords: e.Keywords}
	}
	return category.NewTable(entries, cfg.Fallback)
}
