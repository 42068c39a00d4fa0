// Package app wires configuration, transport, store, use cases and the
// HTTP server into one lifecycle.
package app

import (
	"context"
	"time"

	"github.com/minseokoh/debtwatch/internal/infrastructure/config"
	"github.com/minseokoh/debtwatch/internal/infrastructure/observability"
	"github.com/minseokoh/debtwatch/internal/infrastructure/persistence/memory"
	"github.com/minseokoh/debtwatch/internal/infrastructure/server"
	"github.com/minseokoh/debtwatch/internal/infrastructure/transport"
	alertUseCase "github.com/minseokoh/debtwatch/internal/usecase/alert"
	"github.com/minseokoh/debtwatch/internal/usecase/dashboard"
	"github.com/minseokoh/debtwatch/internal/usecase/notification"
)

// Version is stamped by the build; "dev" otherwise.
var Version = "dev"

// Application holds all application dependencies and lifecycle
type Application struct {
	config        *config.Config
	configManager *config.ConfigManager
	logger        *AtomicLogger
	telemetry     *observability.Telemetry

	// State
	store *memory.AlertStore

	// Transport
	transport transport.Adapter
	wsClient  *transport.WebSocketClient
	manual    *transport.ManualAdapter

	// Use cases
	controller *notification.Controller
	ingest     *alertUseCase.IngestAlertUseCase
	aggregator *dashboard.Aggregator

	// HTTP layer
	handlers *server.Handlers
	server   *server.Server
}

// New creates a new Application instance
func New(configPath string) (*Application, error) {
	app := &Application{}

	if err := app.bootstrap(configPath); err != nil {
		return nil, err
	}

	return app, nil
}

// Start runs the application until context is cancelled
func (app *Application) Start(ctx context.Context) error {
	app.logger.Get().Info("starting debtwatch",
		"port", app.config.Server.Port,
		"transport_mode", app.config.Transport.Mode,
	)

	if app.wsClient != nil {
		if err := app.wsClient.Connect(ctx); err != nil {
			// Degraded start: the console still serves state and the
			// manual trigger; connectivity shows false.
			app.logger.Get().Error("push transport unavailable at startup", "error", err)
		}
	}

	if app.configManager != nil {
		app.configManager.Watch()
	}

	return app.server.Run(ctx)
}

// Shutdown gracefully stops the application
func (app *Application) Shutdown() error {
	app.logger.Get().Info("shutting down debtwatch")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if app.transport != nil {
		app.transport.Disconnect()
	}

	if app.controller != nil {
		app.controller.Stop()
	}

	if app.telemetry != nil {
		if err := app.telemetry.Shutdown(ctx); err != nil {
			app.logger.Get().Error("failed to shutdown telemetry", "error", err)
		}
	}

	app.logger.Get().Info("debtwatch stopped")
	return nil
}
