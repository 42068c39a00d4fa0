package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minseokoh/debtwatch/internal/adapter/dto"
	"github.com/minseokoh/debtwatch/internal/domain/entity"
	"github.com/minseokoh/debtwatch/internal/infrastructure/persistence/memory"
)

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}

type fakeController struct {
	visible   []*entity.Alert
	queued    int
	dismissed []int64
	known     map[int64]bool
	cleared   bool
}

func (f *fakeController) VisibleAlerts() []*entity.Alert { return f.visible }
func (f *fakeController) QueuedCount() int               { return f.queued }
func (f *fakeController) Clear()                         { f.cleared = true }

func (f *fakeController) Dismiss(id int64) bool {
	if !f.known[id] {
		return false
	}
	f.dismissed = append(f.dismissed, id)
	return true
}

func handlerAlert(id int64, daysUntilDue int) *entity.Alert {
	return entity.NewAlert(id, entity.CategoryCustomer, id, "Acme Ltd", 300, time.Now().AddDate(0, 0, daysUntilDue), daysUntilDue)
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestAlertsHandlerList(t *testing.T) {
	store := memory.NewAlertStore()
	require.NoError(t, store.Add(handlerAlert(1, -2)))
	require.NoError(t, store.Add(handlerAlert(2, 3)))

	h := NewAlertsHandler(store, &fakeController{}, func() bool { return true }, nopLogger{})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/alerts", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Len(t, body["alerts"], 2)
	assert.Equal(t, true, body["connected"])

	counters := body["counters"].(map[string]any)
	assert.Equal(t, float64(2), counters["total"])
	assert.Equal(t, float64(1), counters["overdue"])
}

func TestAlertsHandlerFilters(t *testing.T) {
	store := memory.NewAlertStore()
	require.NoError(t, store.Add(handlerAlert(1, -2)))
	require.NoError(t, store.Add(entity.NewAlert(2, entity.CategorySupplier, 2, "Parts GmbH", 100, time.Now(), 3)))

	h := NewAlertsHandler(store, &fakeController{}, func() bool { return true }, nopLogger{})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/alerts?category=supplier", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeBody(t, rec)["alerts"], 1)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/alerts?urgency=overdue", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeBody(t, rec)["alerts"], 1)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/alerts?category=vendor", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/alerts?urgency=critical", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAlertsHandlerClearAll(t *testing.T) {
	store := memory.NewAlertStore()
	require.NoError(t, store.Add(handlerAlert(1, 3)))
	ctrl := &fakeController{}

	h := NewAlertsHandler(store, ctrl, func() bool { return true }, nopLogger{})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/v1/alerts", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0, store.Len())
	assert.True(t, ctrl.cleared)
}

func TestNotificationsHandlerList(t *testing.T) {
	ctrl := &fakeController{
		visible: []*entity.Alert{handlerAlert(1, 3), handlerAlert(2, 0)},
		queued:  5,
	}
	h := NewNotificationsHandler(ctrl, nopLogger{})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/notifications", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Len(t, body["visible"], 2)
	assert.Equal(t, float64(5), body["queuedCount"])
}

func TestNotificationsHandlerDismiss(t *testing.T) {
	ctrl := &fakeController{known: map[int64]bool{7: true}}
	h := NewNotificationsHandler(ctrl, nopLogger{})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/notifications/7/dismiss", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []int64{7}, ctrl.dismissed)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/notifications/99/dismiss", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/notifications/abc/dismiss", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

type fakeIngester struct {
	events []dto.DebtAlertEvent
	err    error
}

func (f *fakeIngester) Execute(_ context.Context, event dto.DebtAlertEvent) error {
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, event)
	return nil
}

func TestTriggerHandler(t *testing.T) {
	ing := &fakeIngester{}
	h := NewTriggerHandler(ing, nopLogger{})

	payload := `{"id":1,"type":"customer","entityId":1,"entityName":"Acme","amount":100,"dueDate":"2026-09-15","daysUntilDue":5,"alertType":"approaching"}`
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/alerts/trigger", strings.NewReader(payload)))

	require.Equal(t, http.StatusAccepted, rec.Code)
	require.Len(t, ing.events, 1)
	assert.Equal(t, int64(1), ing.events[0].ID)
}

func TestTriggerHandlerBadInput(t *testing.T) {
	h := NewTriggerHandler(&fakeIngester{}, nopLogger{})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/alerts/trigger", strings.NewReader("{not json")))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/alerts/trigger", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestTriggerHandlerInvalidEvent(t *testing.T) {
	ing := &fakeIngester{err: entity.ErrInvalidEvent}
	h := NewTriggerHandler(ing, nopLogger{})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/alerts/trigger", strings.NewReader(`{"id":0}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealthHandler(t *testing.T) {
	h := NewHealthHandler(func() bool { return false })

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, false, body["connected"])
}
