package alert

import (
	"context"
	"errors"
	"sync"
	"testing"

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

type fakeAdmitter struct {
	mu       sync.Mutex
	admitted []int64
}

func (f *fakeAdmitter) Admit(alert *entity.Alert) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.admitted = append(f.admitted, alert.ID)
}

type fakeNotifier struct {
	name string
	err  error
	sent []int64
}

func (f *fakeNotifier) Name() string { return f.name }

func (f *fakeNotifier) Notify(_ context.Context, alert *entity.Alert) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, alert.ID)
	return nil
}

func validEvent(id int64) dto.DebtAlertEvent {
	return dto.DebtAlertEvent{
		ID:           id,
		Type:         "customer",
		EntityID:     id,
		EntityName:   "Acme Ltd",
		Amount:       750,
		DueDate:      "2026-09-15",
		DaysUntilDue: 5,
		AlertType:    "approaching",
	}
}

func TestExecuteStoresAndAdmits(t *testing.T) {
	store := memory.NewAlertStore()
	admitter := &fakeAdmitter{}
	uc := NewIngestAlertUseCase(store, admitter, nil, nopLogger{}, NopRecorder{})

	require.NoError(t, uc.Execute(context.Background(), validEvent(1)))

	assert.True(t, store.Contains(1))
	assert.Equal(t, []int64{1}, admitter.admitted)
}

func TestExecuteRejectsMalformedEvent(t *testing.T) {
	store := memory.NewAlertStore()
	admitter := &fakeAdmitter{}
	uc := NewIngestAlertUseCase(store, admitter, nil, nopLogger{}, NopRecorder{})

	tests := []struct {
		name   string
		mutate func(*dto.DebtAlertEvent)
	}{
		{"zero id", func(e *dto.DebtAlertEvent) { e.ID = 0 }},
		{"unknown category", func(e *dto.DebtAlertEvent) { e.Type = "vendor" }},
		{"unknown urgency", func(e *dto.DebtAlertEvent) { e.AlertType = "critical" }},
		{"negative amount", func(e *dto.DebtAlertEvent) { e.Amount = -1 }},
		{"missing entity name", func(e *dto.DebtAlertEvent) { e.EntityName = "" }},
		{"missing due date", func(e *dto.DebtAlertEvent) { e.DueDate = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event := validEvent(1)
			tt.mutate(&event)

			err := uc.Execute(context.Background(), event)
			assert.ErrorIs(t, err, entity.ErrInvalidEvent)
		})
	}

	// Rejected events never reach the store or the controller.
	assert.Equal(t, 0, store.Len())
	assert.Empty(t, admitter.admitted)
}

func TestExecuteRejectsUnparsableDueDate(t *testing.T) {
	store := memory.NewAlertStore()
	uc := NewIngestAlertUseCase(store, &fakeAdmitter{}, nil, nopLogger{}, NopRecorder{})

	event := validEvent(1)
	event.DueDate = "someday"

	err := uc.Execute(context.Background(), event)
	assert.ErrorIs(t, err, entity.ErrInvalidEvent)
	assert.Equal(t, 0, store.Len())
}

func TestExecuteDuplicateDeliveryIsIdempotent(t *testing.T) {
	store := memory.NewAlertStore()
	admitter := &fakeAdmitter{}
	uc := NewIngestAlertUseCase(store, admitter, nil, nopLogger{}, NopRecorder{})

	require.NoError(t, uc.Execute(context.Background(), validEvent(1)))
	require.NoError(t, uc.Execute(context.Background(), validEvent(1)))

	assert.Equal(t, 1, store.Len())
	assert.Equal(t, []int64{1}, admitter.admitted)
}

func TestExecuteAcceptsInconsistentFields(t *testing.T) {
	store := memory.NewAlertStore()
	uc := NewIngestAlertUseCase(store, &fakeAdmitter{}, nil, nopLogger{}, NopRecorder{})

	// Producer says overdue but the offset is positive. Accepted verbatim.
	event := validEvent(1)
	event.IsOverdue = true
	event.AlertType = "overdue"

	require.NoError(t, uc.Execute(context.Background(), event))
	require.True(t, store.Contains(1))
	stored := store.All()[0]
	assert.True(t, stored.IsOverdue)
	assert.Equal(t, 5, stored.DaysUntilDue)
}

func TestExecuteEscalatesOverdueAlerts(t *testing.T) {
	store := memory.NewAlertStore()
	slack := &fakeNotifier{name: "slack"}
	pd := &fakeNotifier{name: "pagerduty"}
	uc := NewIngestAlertUseCase(store, &fakeAdmitter{}, []Notifier{slack, pd}, nopLogger{}, NopRecorder{})

	overdue := validEvent(1)
	overdue.DaysUntilDue = -3
	overdue.IsOverdue = true
	overdue.AlertType = "overdue"

	require.NoError(t, uc.Execute(context.Background(), overdue))
	assert.Equal(t, []int64{1}, slack.sent)
	assert.Equal(t, []int64{1}, pd.sent)

	// Non-overdue alerts are not escalated.
	require.NoError(t, uc.Execute(context.Background(), validEvent(2)))
	assert.Equal(t, []int64{1}, slack.sent)
}

func TestExecuteEscalationFailureDoesNotFailIntake(t *testing.T) {
	store := memory.NewAlertStore()
	failing := &fakeNotifier{name: "slack", err: errors.New("channel_not_found")}
	working := &fakeNotifier{name: "pagerduty"}
	uc := NewIngestAlertUseCase(store, &fakeAdmitter{}, []Notifier{failing, working}, nopLogger{}, NopRecorder{})

	overdue := validEvent(1)
	overdue.DaysUntilDue = -1
	overdue.IsOverdue = true
	overdue.AlertType = "overdue"

	require.NoError(t, uc.Execute(context.Background(), overdue))
	assert.True(t, store.Contains(1))

	// The failing notifier does not block the remaining channels.
	assert.Equal(t, []int64{1}, working.sent)
}
