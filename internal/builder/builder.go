package builder

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/aprendis543/Modernize-your-code-solution-accelerator/internal/api"
	batchapi "github.com/aprendis543/Modernize-your-code-solution-accelerator/internal/api/batch"
	"github.com/aprendis543/Modernize-your-code-solution-accelerator/internal/config"
	"github.com/aprendis543/Modernize-your-code-solution-accelerator/internal/credential"
	"github.com/aprendis543/Modernize-your-code-solution-accelerator/internal/integration/aiproject"
	"github.com/aprendis543/Modernize-your-code-solution-accelerator/internal/lifecycle"
	"github.com/aprendis543/Modernize-your-code-solution-accelerator/internal/repository"
	"github.com/aprendis543/Modernize-your-code-solution-accelerator/internal/telemetry"
	batchuc "github.com/aprendis543/Modernize-your-code-solution-accelerator/internal/usecase/batch"
	"go.uber.org/zap"
)

func Build() (*App, error) {
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := setupLogger(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}

	logger.Info("Building application",
		zap.String("environment", cfg.Environment),
		zap.String("server_addr", cfg.ServerAddr),
	)

	// Telemetry is optional: a failed init logs and falls back to no-op tracing
	tracing, err := telemetry.Init(ctx, cfg.TelemetryCfg)
	if err != nil {
		logger.Warn("telemetry initialization failed, continuing without tracing", zap.Error(err))
	}

	// Setup database connection
	db, err := setupDatabase(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("setup database: %w", err)
	}

	// Run database migrations
	logger.Info("Running database migrations")
	if err := repository.RunMigrations(cfg.DatabaseURL); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	logger.Info("Database migrations completed successfully")

	// Initialize repositories
	batchRepo := repository.NewBatchPostgres(db)
	fileRepo := repository.NewFilePostgres(db)
	logger.Info("Repositories initialized")

	// Initialize external collaborators (with mock support)
	var provider credential.Provider
	var factory aiproject.Factory

	if cfg.EnableMocks {
		logger.Info("Using mock AI project client")
		provider = credential.NewStaticProvider("mock-token")
		factory = aiproject.NewMockFactory(logger)
	} else {
		provider = credential.NewProvider(cfg.CredentialCfg, logger)
		factory = aiproject.NewConnectorFactory(cfg.AIProjectCfg, logger)
	}

	// Lifecycle manager owns the agent set and client for the whole process
	lm := lifecycle.NewManager(
		cfg.CredentialCfg,
		cfg.AIProjectCfg,
		cfg.AgentCfg,
		provider,
		factory,
		logger,
	)

	// Initialize use cases
	batchUC := batchuc.NewUsecase(batchRepo, fileRepo, lm, cfg.FileUploadCfg, logger)
	logger.Info("Use cases initialized")

	// Setup API handlers and router
	batchHandler := batchapi.NewHandler(batchUC, lm, cfg.FileUploadCfg, cfg.AgentCfg)
	router := api.SetupRouter(batchHandler, tracing, logger)
	logger.Info("HTTP router configured")

	server := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("Application built successfully",
		zap.String("environment", cfg.Environment),
	)

	return &App{
		server:  server,
		db:      db,
		lm:      lm,
		tracing: tracing,
		logger:  logger,
	}, nil
}
