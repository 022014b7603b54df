package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/glossa-api/internal/config"
	"github.com/phrazzld/glossa-api/internal/domain/srs"
	"github.com/phrazzld/glossa-api/internal/generation"
	"github.com/phrazzld/glossa-api/internal/platform/gemini"
	"github.com/phrazzld/glossa-api/internal/platform/postgres"
	"github.com/phrazzld/glossa-api/internal/service/auth"
	"github.com/phrazzld/glossa-api/internal/service/study"
	syncservice "github.com/phrazzld/glossa-api/internal/service/sync"
	"github.com/phrazzld/glossa-api/internal/store"
	"github.com/phrazzld/glossa-api/internal/task"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	cardStore store.CardStore

	jwtService   auth.JWTService
	srsService   srs.Service
	extractor    generation.Extractor
	studyService study.StudyService
	syncService  syncservice.SyncService

	taskRunner *task.Runner
}

// newApplication creates a new application instance with all
// dependencies initialized. Configuration, logging, and the database
// connection must already be established.
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

	app.cardStore = postgres.NewPostgresCardStore(db, logger)

	app.extractor, err = gemini.NewGeminiExtractor(
		ctx,
		logger.With("component", "extractor"),
		cfg.Extraction,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize extractor: %w", err)
	}
	logger.Info("Extraction pipeline initialized", "model", cfg.Extraction.ModelName)

	app.srsService = srs.NewDefaultService()

	studyRepo := study.NewCardRepositoryAdapter(app.cardStore, db)
	app.studyService = study.NewStudyService(studyRepo, app.srsService, logger)

	syncRepo := syncservice.NewCardRepositoryAdapter(app.cardStore, db)
	app.syncService = syncservice.NewSyncService(syncRepo, logger)

	app.taskRunner = task.NewRunner(task.DefaultRunnerConfig(), logger)
	app.taskRunner.Start()

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
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
