// Package pagerduty escalates overdue debt alerts via the Events API v2.
package pagerduty

import (
	"context"
	"fmt"

	"github.com/PagerDuty/go-pagerduty"

	"github.com/minseokoh/debtwatch/internal/domain/entity"
)

// Notifier triggers PagerDuty events for overdue debt alerts. Implements
// the intake use case's Notifier contract.
type Notifier struct {
	routingKey string
	severity   string
}

// NewNotifier creates a PagerDuty escalation notifier.
func NewNotifier(routingKey, severity string) *Notifier {
	if severity == "" {
		severity = "warning"
	}
	return &Notifier{
		routingKey: routingKey,
		severity:   severity,
	}
}

// Name identifies this notifier in logs and metrics.
func (n *Notifier) Name() string {
	return "pagerduty"
}

// Notify triggers a PagerDuty event for the alert. The alert ID doubles as
// the dedup key so re-delivered events do not open duplicate incidents.
func (n *Notifier) Notify(ctx context.Context, alert *entity.Alert) error {
	event := pagerduty.V2Event{
		RoutingKey: n.routingKey,
		Action:     "trigger",
		DedupKey:   fmt.Sprintf("debtwatch-%d", alert.ID),
		Payload: &pagerduty.V2Payload{
			Summary:   fmt.Sprintf("Overdue %s debt: %s (%.2f)", alert.Category, alert.EntityName, alert.Amount),
			Source:    "debtwatch",
			Severity:  n.severity,
			Timestamp: alert.CreatedAt.Format("2006-01-02T15:04:05.000Z0700"),
			Details: map[string]any{
				"entity_id":      alert.EntityID,
				"entity_name":    alert.EntityName,
				"amount":         alert.Amount,
				"due_date":       alert.DueDate.Format("2006-01-02"),
				"days_until_due": alert.DaysUntilDue,
				"description":    alert.Description,
			},
		},
	}

	if _, err := pagerduty.ManageEventWithContext(ctx, event); err != nil {
		return fmt.Errorf("triggering pagerduty event: %w", err)
	}

	return nil
}
