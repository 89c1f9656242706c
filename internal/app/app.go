package app

import (
	"context"
	"database/sql"
	"os"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"github.com/grvbrk/vidshelf/internal/config"
	"github.com/grvbrk/vidshelf/internal/extractor"
	"github.com/grvbrk/vidshelf/internal/handlers"
	"github.com/grvbrk/vidshelf/internal/middlewares"
	"github.com/grvbrk/vidshelf/internal/store"
	"github.com/grvbrk/vidshelf/migrations"
)

type Application struct {
	Config            config.Config
	Logger            *log.Logger
	RedisClient       *redis.Client
	db                *sql.DB
	MiddlewareHandler *middlewares.MiddlewareHandler
	PreviewHandler    *handlers.PreviewHandler
	VideoHandler      *handlers.VideoHandler
	HealthHandler     *handlers.HealthHandler
}

// NewLogger builds the process logger from cfg.
func NewLogger(cfg config.Config) *log.Logger {
	logger := log.New()
	logger.SetOutput(os.Stdout)
	if cfg.IsProduction() {
		logger.SetFormatter(&log.JSONFormatter{})
	} else {
		logger.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		logger.WithField("level", cfg.LogLevel).Warn("Unknown log level, using info")
		level = log.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}

// OpenStore opens the library database and brings its schema up to date.
func OpenStore(cfg config.Config, logger *log.Logger) (*sql.DB, error) {
	db, err := store.Open(cfg.StoreFile)
	if err != nil {
		return nil, err
	}

	store.SetMigrationLogger(logger)
	if err := store.MigrateFS(db, migrations.FS, "."); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "database migration failed")
	}
	return db, nil
}

func NewApplication(ctx context.Context, cfg config.Config, logger *log.Logger) (*Application, error) {
	if logger == nil {
		logger = NewLogger(cfg)
	}

	db, err := OpenStore(cfg, logger)
	if err != nil {
		logger.WithError(err).Error("Error opening store")
		return nil, err
	}
	logger.WithField("file", cfg.StoreFile).Info("Database migrated...")

	var enricher extractor.Enricher = extractor.NewVimeoClient(cfg.VimeoAPIURL, cfg.VimeoTimeout)

	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient, err = store.ConnectRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			// the cache is optional; run without it
			logger.WithError(err).Warn("Redis unavailable, enrichment cache disabled")
		} else {
			cache := store.NewRedisEnrichmentCache(redisClient, cfg.EnrichmentTTL)
			enricher = extractor.NewCachingEnricher(enricher, cache, logger)
			logger.WithField("addr", cfg.RedisAddr).Info("Enrichment cache enabled")
		}
	}

	ex := extractor.NewDefault(logger, enricher)
	videoStore := store.NewSQLiteVideoStore(db)

	app := &Application{
		Config:            cfg,
		Logger:            logger,
		RedisClient:       redisClient,
		db:                db,
		MiddlewareHandler: middlewares.NewMiddlewareHandler(logger, cfg.AllowedOrigins),
		PreviewHandler:    handlers.NewPreviewHandler(ex, logger),
		VideoHandler:      handlers.NewVideoHandler(videoStore, logger),
		HealthHandler:     handlers.NewHealthHandler(videoStore, logger),
	}

	return app, nil
}

func (a *Application) Close() error {
	if a.RedisClient != nil {
		if err := a.RedisClient.Close(); err != nil {
			a.Logger.WithError(err).Warn("Error closing redis")
		}
	}
	return a.db.Close()
}
