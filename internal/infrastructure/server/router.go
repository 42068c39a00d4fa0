package server

import (
	"log/slog"
	"net/http"

	"github.com/minseokoh/debtwatch/internal/adapter/handler"
	"github.com/minseokoh/debtwatch/internal/adapter/handler/middleware"
	"github.com/minseokoh/debtwatch/internal/infrastructure/observability"
)

// Handlers holds all HTTP handlers.
type Handlers struct {
	Alerts        *handler.AlertsHandler
	Notifications *handler.NotificationsHandler
	Dashboard     *handler.DashboardHandler
	Trigger       *handler.TriggerHandler
	Health        *handler.HealthHandler
	Metrics       *handler.MetricsHandler
}

// NewRouter creates the HTTP router with all handlers.
func NewRouter(handlers *Handlers, metrics *observability.Metrics, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()

	// Health check endpoints
	mux.Handle("/health", handlers.Health)
	mux.Handle("/ready", handlers.Health)

	// Prometheus metrics
	if handlers.Metrics != nil {
		mux.Handle("/metrics", handlers.Metrics)
	}

	// Console read/control API
	mux.Handle("/api/v1/alerts", handlers.Alerts)
	mux.Handle("/api/v1/alerts/trigger", handlers.Trigger)
	mux.Handle("/api/v1/notifications", handlers.Notifications)
	mux.Handle("/api/v1/notifications/", handlers.Notifications)
	mux.Handle("/api/v1/dashboard", handlers.Dashboard)

	// Apply middleware stack
	var h http.Handler = mux
	if metrics != nil {
		h = middleware.Metrics(metrics)(h)
	}
	h = middleware.RequestID(h)
	h = middleware.Logging(logger)(h)
	h = middleware.Recovery(logger)(h)

	return h
}
