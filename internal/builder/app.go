package builder

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aprendis543/Modernize-your-code-solution-accelerator/internal/lifecycle"
	"github.com/aprendis543/Modernize-your-code-solution-accelerator/internal/telemetry"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// App represents the application with all its components
type App struct {
	server  *http.Server
	db      *pgxpool.Pool
	lm      *lifecycle.Manager
	tracing *telemetry.Tracing
	logger  *zap.Logger
}

// Run starts the application. Agent startup runs to completion (success or
// recorded failure) before the listener accepts the first request.
func (a *App) Run() error {
	a.lm.Startup(context.Background())

	errChan := make(chan error, 1)
	go func() {
		a.logger.Info("Starting HTTP server",
			zap.String("addr", a.server.Addr),
			zap.String("lifecycle_state", string(a.lm.State())),
		)
		if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	// Wait for interrupt signal or server error
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errChan:
		a.logger.Error("Server error", zap.Error(err))
		a.shutdown()
		return err
	case sig := <-sigChan:
		a.logger.Info("Received shutdown signal", zap.String("signal", sig.String()))
	}

	return a.shutdown()
}

// shutdown drains in-flight requests, then tears down agents, the database
// pool and the trace exporter. Cleanup failures are logged, never fatal.
func (a *App) shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	a.logger.Info("Shutting down server gracefully")

	if err := a.server.Shutdown(ctx); err != nil {
		a.logger.Error("Server shutdown error", zap.Error(err))
	}

	// Agents are deleted only after the listener stopped accepting requests
	a.lm.Shutdown(ctx)

	a.logger.Info("Closing database connections")
	if a.db != nil {
		a.db.Close()
	}

	if err := a.tracing.Shutdown(ctx); err != nil {
		a.logger.Warn("trace exporter shutdown error", zap.Error(err))
	}

	a.logger.Info("Application stopped gracefully")
	return nil
}
