package app

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/minseokoh/debtwatch/internal/adapter/dto"
	"github.com/minseokoh/debtwatch/internal/adapter/handler"
	"github.com/minseokoh/debtwatch/internal/infrastructure/config"
	"github.com/minseokoh/debtwatch/internal/infrastructure/observability"
	pdInfra "github.com/minseokoh/debtwatch/internal/infrastructure/pagerduty"
	"github.com/minseokoh/debtwatch/internal/infrastructure/persistence/memory"
	"github.com/minseokoh/debtwatch/internal/infrastructure/server"
	slackInfra "github.com/minseokoh/debtwatch/internal/infrastructure/slack"
	"github.com/minseokoh/debtwatch/internal/infrastructure/transport"
	alertUseCase "github.com/minseokoh/debtwatch/internal/usecase/alert"
	"github.com/minseokoh/debtwatch/internal/usecase/dashboard"
	"github.com/minseokoh/debtwatch/internal/usecase/notification"
)

func (app *Application) bootstrap(configPath string) error {
	// 1. Load configuration
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	app.config = cfg

	// 2. Setup logger
	app.logger = NewAtomicLogger(cfg.Logging.Level, cfg.Logging.Format)

	// 3. Setup telemetry (OpenTelemetry)
	if err := app.setupTelemetry(); err != nil {
		return fmt.Errorf("setting up telemetry: %w", err)
	}

	// 4. Initialize state and transport
	app.store = memory.NewAlertStore()
	if err := app.initializeTransport(); err != nil {
		return fmt.Errorf("initializing transport: %w", err)
	}

	// 5. Initialize use cases and subscribe to the transport
	app.initializeUseCases()

	// 6. Setup config manager with reload callback
	if err := app.setupConfigManager(configPath); err != nil {
		return fmt.Errorf("setting up config manager: %w", err)
	}

	// 7. Initialize HTTP handlers and server
	app.initializeServer()

	return nil
}

func (app *Application) setupTelemetry() error {
	telemetry, err := observability.NewTelemetry(observability.ServiceName, Version)
	if err != nil {
		return err
	}
	app.telemetry = telemetry
	return nil
}

func (app *Application) initializeTransport() error {
	logger := &slogAdapter{logger: app.logger}

	switch app.config.Transport.Mode {
	case "websocket":
		client, err := transport.NewWebSocketClient(transport.WebSocketConfig{
			URL:              app.config.Transport.URL,
			EventName:        app.config.Transport.EventName,
			HandshakeTimeout: app.config.Transport.HandshakeTimeout,
			Reconnect: transport.ReconnectionConfig{
				InitialBackoff:    app.config.Transport.Reconnect.InitialBackoff,
				MaxBackoff:        app.config.Transport.Reconnect.MaxBackoff,
				BackoffMultiplier: app.config.Transport.Reconnect.BackoffMultiplier,
				MaxFailures:       app.config.Transport.Reconnect.MaxFailures,
				OpenTimeout:       app.config.Transport.Reconnect.OpenTimeout,
			},
		}, logger, observability.NewRecorder(app.telemetry.Metrics))
		if err != nil {
			return err
		}
		app.wsClient = client
		app.transport = client
	default:
		// No live backend configured: degraded always-connected mode fed
		// by the manual trigger endpoint.
		app.manual = transport.NewManualAdapter(logger)
		app.transport = app.manual
	}

	return nil
}

func (app *Application) initializeUseCases() {
	logger := &slogAdapter{logger: app.logger}
	recorder := observability.NewRecorder(app.telemetry.Metrics)

	app.controller = notification.NewController(app.store, notification.Config{
		MaxVisible:   app.config.Notifications.MaxVisible,
		DismissDelay: app.config.Notifications.DismissDelay,
		AutoDismiss:  app.config.Notifications.AutoDismissEnabled(),
		QueueCap:     app.config.Notifications.QueueCap,
	}, logger, recorder)

	var notifiers []alertUseCase.Notifier
	if app.config.IsSlackEnabled() {
		notifiers = append(notifiers, slackInfra.NewNotifier(
			app.config.Slack.BotToken,
			app.config.Slack.ChannelID,
		))
		app.logger.Get().Info("Slack escalation enabled", "channel", app.config.Slack.ChannelID)
	}
	if app.config.IsPagerDutyEnabled() {
		notifiers = append(notifiers, pdInfra.NewNotifier(
			app.config.PagerDuty.RoutingKey,
			app.config.PagerDuty.Severity,
		))
		app.logger.Get().Info("PagerDuty escalation enabled")
	}

	app.ingest = alertUseCase.NewIngestAlertUseCase(app.store, app.controller, notifiers, logger, recorder)
	app.aggregator = dashboard.NewAggregator(app.store)

	// Event-driven admission: the intake use case is the transport's
	// sole listener.
	app.transport.Subscribe(func(event dto.DebtAlertEvent) {
		// Execute logs and counts rejections itself.
		_ = app.ingest.Execute(context.Background(), event)
	})
}

func (app *Application) setupConfigManager(configPath string) error {
	if configPath == "" {
		return nil
	}
	if _, err := os.Stat(configPath); err != nil {
		// Running on env vars only; nothing to watch.
		return nil
	}

	manager, err := config.NewConfigManager(configPath, &slogAdapter{logger: app.logger})
	if err != nil {
		return err
	}

	manager.OnReload(func(changes map[string]any) {
		for key, value := range changes {
			switch key {
			case "logging.level":
				if level, ok := value.(string); ok && config.ValidateLogLevel(level) == nil {
					app.logger.SetLevel(level)
				}
			case "logging.format":
				if format, ok := value.(string); ok && config.ValidateLogFormat(format) == nil {
					app.logger.SetFormat(format)
				}
			case "notifications.dismiss_delay":
				if d, ok := value.(time.Duration); ok {
					app.controller.SetDismissDelay(d)
				}
			case "notifications.max_visible":
				if n, ok := value.(int); ok {
					app.controller.SetMaxVisible(n)
				}
			}
		}
	})

	app.configManager = manager
	return nil
}

func (app *Application) initializeServer() {
	logger := &slogAdapter{logger: app.logger}
	connected := app.transport.Connected

	app.handlers = &server.Handlers{
		Alerts:        handler.NewAlertsHandler(app.store, app.controller, connected, logger),
		Notifications: handler.NewNotificationsHandler(app.controller, logger),
		Dashboard:     handler.NewDashboardHandler(app.aggregator),
		Trigger:       handler.NewTriggerHandler(app.ingest, logger),
		Health:        handler.NewHealthHandler(connected),
		Metrics:       handler.NewMetricsHandler(),
	}

	router := server.NewRouter(app.handlers, app.telemetry.Metrics, app.logger.Get())
	app.server = server.New(app.config.Server, router, app.logger.Get())
}
