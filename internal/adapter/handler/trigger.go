package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/minseokoh/debtwatch/internal/adapter/dto"
	"github.com/minseokoh/debtwatch/internal/domain/entity"
)

// Ingester processes one inbound alert event.
type Ingester interface {
	Execute(ctx context.Context, event dto.DebtAlertEvent) error
}

// TriggerHandler injects synthetic alerts, bypassing the network
// transport. The event runs through the same intake path as a real
// inbound event, so downstream behavior is identical.
type TriggerHandler struct {
	ingester Ingester
	logger   Logger
}

// NewTriggerHandler creates the manual trigger handler.
func NewTriggerHandler(ingester Ingester, logger Logger) *TriggerHandler {
	return &TriggerHandler{
		ingester: ingester,
		logger:   logger,
	}
}

// ServeHTTP handles POST /api/v1/alerts/trigger.
func (h *TriggerHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var event dto.DebtAlertEvent
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	if err := h.ingester.Execute(r.Context(), event); err != nil {
		if errors.Is(err, entity.ErrInvalidEvent) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("manual trigger failed", "alertID", event.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to process alert")
		return
	}

	writeJSON(w, http.StatusAccepted, map[string]string{"status": "accepted"})
}
