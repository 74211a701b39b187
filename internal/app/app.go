package app

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"go.uber.org/zap"

	"github.com/smarthydra/hydrasvc/internal/database"
	"github.com/smarthydra/hydrasvc/internal/log"
	"github.com/smarthydra/hydrasvc/internal/server"
	"github.com/smarthydra/hydrasvc/internal/settings"
)

// App represents the main application
type App struct {
	settings *settings.Settings
	logger   *zap.SugaredLogger
}

// New creates a new application instance
func New(s *settings.Settings, logger *zap.SugaredLogger) *App {
	return &App{
		settings: s,
		logger:   logger,
	}
}

// Run starts the application and blocks until shutdown
func (a *App) Run(ctx context.Context) error {
	var wg sync.WaitGroup

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Connect to the database and create any missing tables before
	// accepting traffic
	db := database.NewClient(a.settings, a.logger)
	if err := db.Connect(); err != nil {
		return err
	}
	if err := db.Migrate(); err != nil {
		return err
	}

	// Initialize the API server controller
	ctrl, err := server.NewController(ctx, &wg, a.settings, db, a.logger)
	if err != nil {
		return err
	}
	if err := ctrl.StartController(); err != nil {
		return err
	}

	log.Info("Application started successfully")

	// Set up signal handling
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	// Wait for shutdown signal
	select {
	case <-sigs:
		log.Info("shutdown signal received, initiating graceful shutdown...")
	case <-ctx.Done():
		log.Info("context cancelled, shutting down...")
	}

	// Cancel context to signal all goroutines to stop
	cancel()

	// Wait for all workers to terminate
	log.Info("waiting for all workers to terminate...")
	wg.Wait()
	log.Info("shutdown complete")

	return nil
}
