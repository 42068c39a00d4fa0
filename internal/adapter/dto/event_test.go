package dto

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minseokoh/debtwatch/internal/domain/entity"
)

func TestToEntity(t *testing.T) {
	event := DebtAlertEvent{
		ID:           42,
		Type:         "supplier",
		EntityID:     7,
		EntityName:   "Parts GmbH",
		Amount:       1250.50,
		DueDate:      "2026-09-10",
		DaysUntilDue: -2,
		IsOverdue:    true,
		AlertType:    "overdue",
		Timestamp:    "2026-09-12T08:30:00Z",
		Description:  "invoice #118",
	}

	alert, err := event.ToEntity()
	require.NoError(t, err)

	assert.Equal(t, int64(42), alert.ID)
	assert.Equal(t, entity.CategorySupplier, alert.Category)
	assert.Equal(t, int64(7), alert.EntityID)
	assert.Equal(t, "Parts GmbH", alert.EntityName)
	assert.Equal(t, 1250.50, alert.Amount)
	assert.Equal(t, time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC), alert.DueDate)
	assert.Equal(t, -2, alert.DaysUntilDue)
	assert.True(t, alert.IsOverdue)
	assert.Equal(t, entity.UrgencyOverdue, alert.Urgency)
	assert.Equal(t, time.Date(2026, 9, 12, 8, 30, 0, 0, time.UTC), alert.CreatedAt)
	assert.Equal(t, "invoice #118", alert.Description)
}

func TestToEntityAcceptsRFC3339DueDate(t *testing.T) {
	event := DebtAlertEvent{
		ID:        1,
		Type:      "customer",
		DueDate:   "2026-09-10T00:00:00+09:00",
		AlertType: "approaching",
	}

	alert, err := event.ToEntity()
	require.NoError(t, err)
	assert.Equal(t, 2026, alert.DueDate.Year())
}

func TestToEntityDefaultsCreatedAt(t *testing.T) {
	event := DebtAlertEvent{
		ID:        1,
		Type:      "customer",
		DueDate:   "2026-09-10",
		AlertType: "due",
	}

	alert, err := event.ToEntity()
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().UTC(), alert.CreatedAt, time.Minute)
}

func TestToEntityRejectsBadDates(t *testing.T) {
	_, err := DebtAlertEvent{ID: 1, DueDate: "next tuesday"}.ToEntity()
	assert.Error(t, err)

	_, err = DebtAlertEvent{ID: 1, DueDate: "2026-09-10", Timestamp: "not-a-time"}.ToEntity()
	assert.Error(t, err)
}

// ToEntity does not repair inconsistent producer fields; they are carried
// over verbatim and flagged downstream.
func TestToEntityPreservesInconsistency(t *testing.T) {
	event := DebtAlertEvent{
		ID:           1,
		Type:         "customer",
		DueDate:      "2026-09-10",
		DaysUntilDue: 5,
		IsOverdue:    true,
		AlertType:    "overdue",
	}

	alert, err := event.ToEntity()
	require.NoError(t, err)
	assert.True(t, alert.IsOverdue)
	assert.Equal(t, 5, alert.DaysUntilDue)
	assert.Error(t, alert.CheckConsistency())
}
