// Package app builds the runtime components shared by the binaries from config.
package app

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"gamereviews/internal/cache"
	"gamereviews/internal/config"
	"gamereviews/internal/importer"
	"gamereviews/internal/ingestion/igdb"
	"gamereviews/internal/media"
	"gamereviews/internal/textgen"

	"gorm.io/gorm"
)

// NewLogger returns the process logger configured by LOG_LEVEL and LOG_FORMAT.
func NewLogger(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(cfg.LogLevel)}
	var h slog.Handler
	if strings.EqualFold(cfg.LogFormat, "text") {
		h = slog.NewTextHandler(os.Stdout, opts)
	} else {
		h = slog.NewJSONHandler(os.Stdout, opts)
	}
	return slog.New(h)
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewCache connects to Redis, or returns a NopStore when REDIS_URL is empty or unreachable.
func NewCache(ctx context.Context, cfg *config.Config, logger *slog.Logger) (cache.Store, func()) {
	if cfg.RedisURL == "" {
		logger.Info("cache_disabled")
		return cache.NopStore{}, func() {}
	}
	store, err := cache.NewRedisStore(ctx, cfg.RedisURL)
	if err != nil {
		logger.Warn("cache_unavailable", "error", err)
		return cache.NopStore{}, func() {}
	}
	logger.Info("cache_connected")
	return store, func() { _ = store.Close() }
}

// NewCatalog returns the IGDB searcher with breaker and cache in front, or nil without credentials.
func NewCatalog(cfg *config.Config, store cache.Store, logger *slog.Logger) igdb.Searcher {
	if !cfg.CatalogEnabled() {
		logger.Info("catalog_disabled")
		return nil
	}
	client, err := igdb.NewClient(igdb.Options{
		ClientID:     cfg.IGDBClientID,
		ClientSecret: cfg.IGDBClientSecret,
		BaseURL:      cfg.IGDBAPIURL,
		HTTPClient:   &http.Client{Timeout: 30 * time.Second},
		Logger:       logger,
	})
	if err != nil {
		logger.Warn("catalog_unavailable", "error", err)
		return nil
	}
	breaker := igdb.NewBreakerSearcher(client, logger)
	return igdb.NewCachedSearcher(breaker, store, cfg.CacheTTL, logger)
}

// NewMirror returns the S3 mirror, or a NopMirror when no bucket is configured.
func NewMirror(cfg *config.Config, logger *slog.Logger) media.Mirror {
	if !cfg.MirrorEnabled() {
		logger.Info("media_mirror_disabled")
		return media.NopMirror{}
	}
	opts := media.S3Options{
		Bucket:          cfg.MediaBucket,
		Region:          cfg.MediaRegion,
		Endpoint:        cfg.MediaEndpoint,
		AccessKeyID:     cfg.MediaAccessKeyID,
		SecretAccessKey: cfg.MediaSecretAccessKey,
		PublicURL:       cfg.MediaPublicURL,
		Prefix:          cfg.MediaPrefix,
	}
	return media.NewS3Mirror(media.NewS3Client(opts), opts, &http.Client{Timeout: 30 * time.Second}, logger)
}

// NewGenerator returns the OpenAI generator, or Disabled when it is switched off or has no key.
func NewGenerator(cfg *config.Config, logger *slog.Logger) textgen.Generator {
	if !cfg.TextgenConfigured() {
		logger.Info("textgen_disabled")
		return textgen.Disabled{}
	}
	return textgen.NewOpenAIGenerator(textgen.Options{
		APIKey:  cfg.OpenAIAPIKey,
		BaseURL: cfg.OpenAIBaseURL,
		Model:   cfg.OpenAIModel,
		Timeout: 60 * time.Second,
		Logger:  logger,
	})
}

// NewImporter wires the orchestrator over the database.
func NewImporter(db *gorm.DB, catalog igdb.Searcher, mirror media.Mirror, gen textgen.Generator, logger *slog.Logger) *importer.Orchestrator {
	return importer.New(importer.NewGormStore(db), catalog, mirror, gen, importer.WithLogger(logger))
}
