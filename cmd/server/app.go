package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/draftwise/draftwise-api/internal/config"
	"github.com/draftwise/draftwise-api/internal/events"
	"github.com/draftwise/draftwise-api/internal/generation"
	"github.com/draftwise/draftwise-api/internal/platform/gemini"
	"github.com/draftwise/draftwise-api/internal/platform/openai"
	"github.com/draftwise/draftwise-api/internal/platform/postgres"
	"github.com/draftwise/draftwise-api/internal/platform/slack"
	"github.com/draftwise/draftwise-api/internal/scraper"
	"github.com/draftwise/draftwise-api/internal/service"
	"github.com/draftwise/draftwise-api/internal/service/auth"
	"github.com/draftwise/draftwise-api/internal/store"
	"github.com/draftwise/draftwise-api/internal/task"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	// Stores (using interfaces for proper abstraction)
	userStore         store.UserStore
	articleStore      store.ArticleStore
	notificationStore store.NotificationStore
	slackStore        store.SlackIntegrationStore
	taskStore         task.TaskStore

	// Service interfaces
	jwtService          auth.JWTService
	passwordVerifier    auth.PasswordVerifier
	articleService      service.ArticleService
	notificationService service.NotificationService
	slackService        service.SlackService
	triggerService      service.TriggerService

	// Article body generation backend, used by background tasks
	articleWriter generation.ArticleGenerator

	pageScraper *scraper.Scraper

	// Event system
	eventEmitter events.EventEmitter

	// Task handling
	taskRunner *task.TaskRunner
}

// newApplication creates a new application instance with all dependencies
// initialized. It accepts core dependencies like configuration, logger, and
// database connection that must be established before application
// initialization.
func newApplication(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	db *sql.DB,
) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	app.passwordVerifier = auth.NewBcryptVerifier()

	// Initialize stores
	app.userStore = postgres.NewPostgresUserStore(db, cfg.Auth.BcryptCost, logger)
	app.articleStore = postgres.NewPostgresArticleStore(db, logger)
	app.notificationStore = postgres.NewPostgresNotificationStore(db, logger)
	app.slackStore = postgres.NewPostgresSlackStore(db, logger)
	app.taskStore = postgres.NewPostgresTaskStore(db)

	// Create the LLM backends: Gemini for research briefs, OpenAI for
	// article bodies.
	briefGenerator, err := gemini.NewBriefGenerator(
		ctx,
		logger.With("component", "brief_generator"),
		cfg.LLM,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize brief generator: %w", err)
	}

	app.articleWriter, err = openai.NewArticleGenerator(
		logger.With("component", "article_writer"),
		cfg.LLM,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize article writer: %w", err)
	}
	logger.Info("LLM generators initialized",
		"gemini_model", cfg.LLM.GeminiModel,
		"openai_model", cfg.LLM.OpenAIModel)

	// Build the quality-checked generation orchestrator
	orchestrator, err := setupOrchestrator(cfg.Generation, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to setup generation orchestrator: %w", err)
	}

	// Initialize event emitter
	app.eventEmitter = events.NewInMemoryEventEmitter(logger)

	// Initialize article service
	articleRepo := service.NewArticleRepositoryAdapter(app.articleStore, app.db)
	app.articleService, err = service.NewArticleService(
		articleRepo,
		orchestrator,
		briefGenerator,
		app.eventEmitter,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create article service: %w", err)
	}

	// Initialize Slack integration. With empty OAuth credentials the client
	// reports unconfigured and Slack endpoints respond 503; the rest of the
	// service runs normally.
	slackClient := slack.NewClient(
		cfg.Slack.ClientID,
		cfg.Slack.ClientSecret,
		nil,
		logger,
	)
	app.slackService, err = service.NewSlackService(app.slackStore, slackClient, cfg.Slack, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create slack service: %w", err)
	}

	app.notificationService, err = service.NewNotificationService(
		app.notificationStore,
		app.slackService,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create notification service: %w", err)
	}

	app.triggerService, err = service.NewTriggerService(app.notificationService, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create trigger service: %w", err)
	}

	app.pageScraper = scraper.New(nil, logger)

	// Initialize task runner
	app.taskRunner, err = setupTaskRunner(app)
	if err != nil {
		return nil, fmt.Errorf("failed to setup task runner: %w", err)
	}

	// Create task factory and register the event handler so article
	// generation requests become background tasks.
	taskFactory := task.NewArticleGenerationTaskFactory(
		app.articleService,
		app.articleWriter,
		generation.NewFallbackGenerator(),
		logger,
	)
	taskFactoryHandler := task.NewTaskFactoryEventHandler(
		taskFactory,
		app.taskRunner,
		logger,
	)

	if emitter, ok := app.eventEmitter.(*events.InMemoryEventEmitter); ok {
		emitter.RegisterHandler(taskFactoryHandler)
	} else {
		return nil, fmt.Errorf("unexpected event emitter type, cannot register task handler")
	}

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters problems.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	err := app.startHTTPServer(ctx, router)
	if err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// setupOrchestrator builds the retry orchestrator from the generation
// configuration. An explicit rule set file takes precedence over the
// built-in rules.
func setupOrchestrator(
	cfg config.GenerationConfig,
	logger *slog.Logger,
) (*generation.Orchestrator, error) {
	var ruleSet generation.RuleSet
	if cfg.RuleSetPath != "" {
		var err error
		ruleSet, err = generation.LoadRuleSetFile(cfg.RuleSetPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load quality rule set: %w", err)
		}
		logger.Info("Loaded quality rule set", "path", cfg.RuleSetPath)
	} else {
		ruleSet = generation.DefaultRuleSet(cfg.MinBriefLength)
	}

	return generation.NewOrchestrator(
		generation.RetryConfig{
			MaxRetries:        cfg.MaxRetries,
			ContentRetryDelay: cfg.ContentRetryDelay(),
			ErrorRetryDelay:   cfg.ErrorRetryDelay(),
		},
		generation.NewClassifier(ruleSet),
		generation.NewFallbackGenerator(),
		logger,
	)
}

// setupTaskRunner initializes and starts the background task processor.
// It uses the application struct to access required dependencies.
func setupTaskRunner(app *application) (*task.TaskRunner, error) {
	taskRunner := task.NewTaskRunner(app.taskStore, task.TaskRunnerConfig{
		QueueSize:    app.config.Task.QueueSize,
		WorkerCount:  app.config.Task.WorkerCount,
		StuckTaskAge: time.Duration(app.config.Task.StuckTaskAgeMinutes) * time.Minute,
	}, app.logger)

	if err := taskRunner.Start(); err != nil {
		return nil, fmt.Errorf("failed to start task runner: %w", err)
	}

	return taskRunner, nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.taskRunner != nil {
		app.taskRunner.Stop()
	}

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}
