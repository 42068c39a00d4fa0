package handler

import (
	"net/http"

	"github.com/minseokoh/debtwatch/internal/adapter/presenter"
	"github.com/minseokoh/debtwatch/internal/domain/entity"
	"github.com/minseokoh/debtwatch/internal/domain/repository"
)

// ConnectionStatus reports push transport connectivity.
type ConnectionStatus func() bool

// Clearer drops all controller-tracked notifications; paired with the
// store clear on DELETE.
type Clearer interface {
	Clear()
}

// AlertsHandler exposes the alert store to the presentation layer.
type AlertsHandler struct {
	store     repository.AlertStore
	clearer   Clearer
	connected ConnectionStatus
	logger    Logger
}

// NewAlertsHandler creates the alerts handler.
func NewAlertsHandler(store repository.AlertStore, clearer Clearer, connected ConnectionStatus, logger Logger) *AlertsHandler {
	return &AlertsHandler{
		store:     store,
		clearer:   clearer,
		connected: connected,
		logger:    logger,
	}
}

// ServeHTTP handles GET and DELETE /api/v1/alerts.
//
// GET supports optional ?category= and ?urgency= filters; without filters
// the full list, counters and connectivity flag are returned.
func (h *AlertsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.list(w, r)
	case http.MethodDelete:
		h.clearAll(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *AlertsHandler) list(w http.ResponseWriter, r *http.Request) {
	var alerts []*entity.Alert

	switch {
	case r.URL.Query().Get("category") != "":
		category := entity.Category(r.URL.Query().Get("category"))
		if !category.IsValid() {
			writeError(w, http.StatusBadRequest, "unknown category")
			return
		}
		alerts = h.store.ByCategory(category)
	case r.URL.Query().Get("urgency") != "":
		urgency := entity.Urgency(r.URL.Query().Get("urgency"))
		if !urgency.IsValid() {
			writeError(w, http.StatusBadRequest, "unknown urgency")
			return
		}
		alerts = h.store.ByUrgency(urgency)
	default:
		alerts = h.store.All()
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"alerts":    presenter.NewAlertViews(alerts),
		"counters":  presenter.NewCountersView(h.store.Counters()),
		"connected": h.connected(),
	})
}

func (h *AlertsHandler) clearAll(w http.ResponseWriter, r *http.Request) {
	h.clearer.Clear()
	h.store.ClearAll()
	h.logger.Info("alert store cleared")
	writeJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}
