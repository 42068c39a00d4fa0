package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/minseokoh/debtwatch/internal/adapter/presenter"
	"github.com/minseokoh/debtwatch/internal/domain/entity"
)

// NotificationController is the queue controller surface the handler needs.
type NotificationController interface {
	VisibleAlerts() []*entity.Alert
	QueuedCount() int
	Dismiss(id int64) bool
}

// Logger is the structured logging contract for handlers.
type Logger interface {
	Debug(msg string, keysAndValues ...any)
	Info(msg string, keysAndValues ...any)
	Warn(msg string, keysAndValues ...any)
	Error(msg string, keysAndValues ...any)
}

// NotificationsHandler exposes the visible set and manual dismissal.
type NotificationsHandler struct {
	controller NotificationController
	logger     Logger
}

// NewNotificationsHandler creates the notifications handler.
func NewNotificationsHandler(controller NotificationController, logger Logger) *NotificationsHandler {
	return &NotificationsHandler{
		controller: controller,
		logger:     logger,
	}
}

// ServeHTTP handles GET /api/v1/notifications and
// POST /api/v1/notifications/{id}/dismiss.
func (h *NotificationsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/v1/notifications")

	switch {
	case r.Method == http.MethodGet && (path == "" || path == "/"):
		h.list(w, r)
	case r.Method == http.MethodPost && strings.HasSuffix(path, "/dismiss"):
		h.dismiss(w, r, path)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *NotificationsHandler) list(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"visible":     presenter.NewAlertViews(h.controller.VisibleAlerts()),
		"queuedCount": h.controller.QueuedCount(),
	})
}

func (h *NotificationsHandler) dismiss(w http.ResponseWriter, r *http.Request, path string) {
	idPart := strings.TrimSuffix(strings.Trim(path, "/"), "/dismiss")
	idPart = strings.Trim(idPart, "/")

	id, err := strconv.ParseInt(idPart, 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid alert id")
		return
	}

	if !h.controller.Dismiss(id) {
		writeError(w, http.StatusNotFound, "alert not tracked")
		return
	}

	h.logger.Info("alert dismissed", "alertID", id)
	writeJSON(w, http.StatusOK, map[string]string{"status": "dismissed"})
}
