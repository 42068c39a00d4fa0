// Package presenter shapes domain state for the browser console.
package presenter

import (
	"time"

	"github.com/minseokoh/debtwatch/internal/domain/entity"
)

// AlertView is the JSON shape of a single alert as read by the
// presentation layer on every refresh cycle.
type AlertView struct {
	ID           int64   `json:"id"`
	Category     string  `json:"category"`
	EntityID     int64   `json:"entityId"`
	EntityName   string  `json:"entityName"`
	Amount       float64 `json:"amount"`
	DueDate      string  `json:"dueDate"`
	DaysUntilDue int     `json:"daysUntilDue"`
	IsOverdue    bool    `json:"isOverdue"`
	Urgency      string  `json:"urgency"`
	CreatedAt    string  `json:"createdAt"`
	Description  string  `json:"description,omitempty"`
}

// CountersView is the JSON shape of the aggregate counters.
type CountersView struct {
	Customer    int `json:"customer"`
	Supplier    int `json:"supplier"`
	Overdue     int `json:"overdue"`
	DueToday    int `json:"dueToday"`
	Approaching int `json:"approaching"`
	Total       int `json:"total"`
}

// NewAlertView converts a domain alert into its wire shape.
func NewAlertView(a *entity.Alert) AlertView {
	return AlertView{
		ID:           a.ID,
		Category:     string(a.Category),
		EntityID:     a.EntityID,
		EntityName:   a.EntityName,
		Amount:       a.Amount,
		DueDate:      a.DueDate.Format("2006-01-02"),
		DaysUntilDue: a.DaysUntilDue,
		IsOverdue:    a.IsOverdue,
		Urgency:      string(a.Urgency),
		CreatedAt:    a.CreatedAt.UTC().Format(time.RFC3339),
		Description:  a.Description,
	}
}

// NewAlertViews converts a list of domain alerts, preserving order.
func NewAlertViews(alerts []*entity.Alert) []AlertView {
	views := make([]AlertView, 0, len(alerts))
	for _, a := range alerts {
		views = append(views, NewAlertView(a))
	}
	return views
}

// NewCountersView converts domain counters into their wire shape.
func NewCountersView(c entity.Counters) CountersView {
	return CountersView{
		Customer:    c.Customer,
		Supplier:    c.Supplier,
		Overdue:     c.Overdue,
		DueToday:    c.DueToday,
		Approaching: c.Approaching,
		Total:       c.Total,
	}
}
