package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/ktgktg/blogsmith/internal/config"
	"github.com/ktgktg/blogsmith/internal/domain"
	"github.com/ktgktg/blogsmith/internal/generation"
	"github.com/ktgktg/blogsmith/internal/platform/notion"
	"github.com/ktgktg/blogsmith/internal/service"
	"github.com/ktgktg/blogsmith/internal/service/auth"
	"github.com/ktgktg/blogsmith/internal/store"
	"github.com/ktgktg/blogsmith/internal/task"
)

// drainTimeout bounds how long shutdown waits for queued archive tasks.
const drainTimeout = 30 * time.Second

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	pipeline    *generation.Pipeline
	credentials store.CredentialStore
	// articles is nil when no article database is configured
	articles *notion.ArticleStore

	jwtService  auth.JWTService
	authService *auth.Service
	generation  *service.GenerationService

	taskQueue  *task.TaskQueue
	workerPool *task.WorkerPool
}

// newApplication creates a new application instance with all dependencies initialized.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	users := notion.NewUserDirectory(notion.NewClient(cfg.Notion.APIKey, nil).Database, cfg.Notion.UserDatabaseID)
	app.authService = auth.NewService(users, app.jwtService,
		time.Duration(cfg.Auth.TokenLifetimeMinutes)*time.Minute)

	app.pipeline, err = setupPipeline(cfg, logger)
	if err != nil {
		return nil, err
	}

	app.credentials, app.db, err = setupCredentialStore(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	genCfg := service.GenerationServiceConfig{
		Generator:         app.pipeline,
		Credentials:       service.NewCredentialResolver(app.credentials, logger),
		SynthesisProvider: domain.Provider(cfg.LLM.SynthesisProvider),
		Logger:            logger.With("component", "generation_service"),
	}

	if cfg.Notion.ArticleDatabaseID != "" {
		client := notion.NewClient(cfg.Notion.ArticleToken(), nil)
		app.articles = notion.NewArticleStore(client.Database, client.Page, client.Block,
			cfg.Notion.ArticleDatabaseID, logger.With("component", "article_store"))

		app.taskQueue = task.NewTaskQueue(cfg.Archive.QueueSize, logger)
		app.workerPool = task.NewWorkerPool(app.taskQueue,
			task.WorkerPoolConfig{WorkerCount: cfg.Archive.WorkerCount},
			logger.With("component", "archive_workers"))
		app.workerPool.Start()

		genCfg.Archiver = task.NewArchiveQueue(app.taskQueue, app.articles, logger)
		genCfg.Articles = app.articles
	} else {
		logger.Warn("no article database configured, articles will not be archived")
	}

	app.generation, err = service.NewGenerationService(genCfg)
	if err != nil {
		app.cleanup()
		return nil, fmt.Errorf("failed to create generation service: %w", err)
	}

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters problems.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources. Queued
// archive tasks are given drainTimeout to finish.
func (app *application) cleanup() {
	if app.taskQueue != nil {
		app.taskQueue.Close()
	}
	if app.workerPool != nil {
		ctx, cancel := context.WithTimeout(context.Background(), drainTimeout)
		if err := app.workerPool.Drain(ctx); err != nil {
			app.logger.Warn("archive queue not fully drained", "error", err)
		}
		cancel()
	}

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}
