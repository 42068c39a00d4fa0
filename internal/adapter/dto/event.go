// Package dto holds the wire representations crossing the service boundary.
package dto

import (
	"fmt"
	"time"

	"github.com/minseokoh/debtwatch/internal/domain/entity"
)

// DebtAlertEvent is the inbound push-messaging payload for a single debt
// notice. The wire format is owned by the external transport; this struct
// mirrors it verbatim. Validation tags enforce the reject-and-log policy
// for malformed payloads: events failing validation never reach the store.
type DebtAlertEvent struct {
	ID           int64   `json:"id" validate:"required,gt=0"`
	Type         string  `json:"type" validate:"required,oneof=customer supplier"`
	EntityID     int64   `json:"entityId" validate:"required,gt=0"`
	EntityName   string  `json:"entityName" validate:"required"`
	Amount       float64 `json:"amount" validate:"gte=0"`
	DueDate      string  `json:"dueDate" validate:"required"`
	DaysUntilDue int     `json:"daysUntilDue"`
	IsOverdue    bool    `json:"isOverdue"`
	AlertType    string  `json:"alertType" validate:"required,oneof=approaching due overdue"`
	Timestamp    string  `json:"timestamp"`
	Description  string  `json:"description"`
}

// ToEntity converts the wire payload into a domain alert. Fields are
// carried over as delivered; cross-field consistency is checked downstream,
// not repaired here.
func (e DebtAlertEvent) ToEntity() (*entity.Alert, error) {
	dueDate, err := parseDate(e.DueDate)
	if err != nil {
		return nil, fmt.Errorf("parsing dueDate: %w", err)
	}

	createdAt := time.Now().UTC()
	if e.Timestamp != "" {
		ts, err := time.Parse(time.RFC3339, e.Timestamp)
		if err != nil {
			return nil, fmt.Errorf("parsing timestamp: %w", err)
		}
		createdAt = ts
	}

	return &entity.Alert{
		ID:           e.ID,
		Category:     entity.Category(e.Type),
		EntityID:     e.EntityID,
		EntityName:   e.EntityName,
		Amount:       e.Amount,
		DueDate:      dueDate,
		DaysUntilDue: e.DaysUntilDue,
		IsOverdue:    e.IsOverdue,
		Urgency:      entity.Urgency(e.AlertType),
		CreatedAt:    createdAt,
		Description:  e.Description,
	}, nil
}

// parseDate accepts both full RFC 3339 timestamps and bare calendar dates,
// since the backend emits either depending on the endpoint.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}
