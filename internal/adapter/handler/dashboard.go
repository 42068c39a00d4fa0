package handler

import (
	"net/http"

	"github.com/minseokoh/debtwatch/internal/adapter/presenter"
	"github.com/minseokoh/debtwatch/internal/usecase/dashboard"
)

// DashboardHandler exposes the derived overdue/due-today buckets.
type DashboardHandler struct {
	aggregator *dashboard.Aggregator
}

// NewDashboardHandler creates the dashboard handler.
func NewDashboardHandler(aggregator *dashboard.Aggregator) *DashboardHandler {
	return &DashboardHandler{aggregator: aggregator}
}

// ServeHTTP handles GET /api/v1/dashboard.
func (h *DashboardHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"overdue":  presenter.NewAlertViews(h.aggregator.OverdueAlerts()),
		"dueToday": presenter.NewAlertViews(h.aggregator.DueTodayAlerts()),
	})
}
