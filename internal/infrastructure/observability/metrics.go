package observability

import (
	"fmt"

	"go.opentelemetry.io/otel/metric"
)

// Metrics holds all application metrics.
type Metrics struct {
	meter metric.Meter

	// HTTP metrics
	HTTPRequestsTotal   metric.Int64Counter
	HTTPRequestDuration metric.Float64Histogram
	HTTPRequestsActive  metric.Int64UpDownCounter

	// Alert intake metrics
	AlertsReceivedTotal     metric.Int64Counter
	AlertsRejectedTotal     metric.Int64Counter
	AlertsInconsistentTotal metric.Int64Counter

	// Notification queue metrics
	AlertsDismissedTotal metric.Int64Counter
	AlertsPromotedTotal  metric.Int64Counter
	AlertsDroppedTotal   metric.Int64Counter
	VisibleAlerts        metric.Int64UpDownCounter
	QueuedAlerts         metric.Int64UpDownCounter

	// Escalation metrics
	EscalationsSentTotal  metric.Int64Counter
	EscalationErrorsTotal metric.Int64Counter

	// Transport metrics
	TransportReconnectsTotal metric.Int64Counter
}

// NewMetrics creates and registers all application metrics.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	m := &Metrics{meter: meter}

	var err error

	m.HTTPRequestsTotal, err = meter.Int64Counter(
		"http.server.requests.total",
		metric.WithDescription("Total number of HTTP requests"),
		metric.WithUnit("{requests}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating http_requests_total: %w", err)
	}

	m.HTTPRequestDuration, err = meter.Float64Histogram(
		"http.server.request.duration",
		metric.WithDescription("HTTP request duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating http_request_duration: %w", err)
	}

	m.HTTPRequestsActive, err = meter.Int64UpDownCounter(
		"http.server.requests.active",
		metric.WithDescription("Number of in-flight HTTP requests"),
		metric.WithUnit("{requests}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating http_requests_active: %w", err)
	}

	m.AlertsReceivedTotal, err = meter.Int64Counter(
		"debtwatch.alerts.received.total",
		metric.WithDescription("Total debt alerts accepted from the transport"),
		metric.WithUnit("{alerts}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating alerts_received_total: %w", err)
	}

	m.AlertsRejectedTotal, err = meter.Int64Counter(
		"debtwatch.alerts.rejected.total",
		metric.WithDescription("Total inbound events rejected as malformed"),
		metric.WithUnit("{alerts}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating alerts_rejected_total: %w", err)
	}

	m.AlertsInconsistentTotal, err = meter.Int64Counter(
		"debtwatch.alerts.inconsistent.total",
		metric.WithDescription("Total accepted alerts with inconsistent producer fields"),
		metric.WithUnit("{alerts}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating alerts_inconsistent_total: %w", err)
	}

	m.AlertsDismissedTotal, err = meter.Int64Counter(
		"debtwatch.alerts.dismissed.total",
		metric.WithDescription("Total notifications dismissed, by trigger"),
		metric.WithUnit("{alerts}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating alerts_dismissed_total: %w", err)
	}

	m.AlertsPromotedTotal, err = meter.Int64Counter(
		"debtwatch.alerts.promoted.total",
		metric.WithDescription("Total queued alerts promoted to a visible slot"),
		metric.WithUnit("{alerts}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating alerts_promoted_total: %w", err)
	}

	m.AlertsDroppedTotal, err = meter.Int64Counter(
		"debtwatch.alerts.dropped.total",
		metric.WithDescription("Total arrivals dropped because the wait queue was full"),
		metric.WithUnit("{alerts}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating alerts_dropped_total: %w", err)
	}

	m.VisibleAlerts, err = meter.Int64UpDownCounter(
		"debtwatch.notifications.visible",
		metric.WithDescription("Number of alerts currently occupying visible slots"),
		metric.WithUnit("{alerts}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating visible_alerts: %w", err)
	}

	m.QueuedAlerts, err = meter.Int64UpDownCounter(
		"debtwatch.notifications.queued",
		metric.WithDescription("Number of alerts waiting for a visible slot"),
		metric.WithUnit("{alerts}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating queued_alerts: %w", err)
	}

	m.EscalationsSentTotal, err = meter.Int64Counter(
		"debtwatch.escalations.sent.total",
		metric.WithDescription("Total overdue-alert escalations delivered"),
		metric.WithUnit("{escalations}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating escalations_sent_total: %w", err)
	}

	m.EscalationErrorsTotal, err = meter.Int64Counter(
		"debtwatch.escalations.errors.total",
		metric.WithDescription("Total overdue-alert escalation failures"),
		metric.WithUnit("{escalations}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating escalation_errors_total: %w", err)
	}

	m.TransportReconnectsTotal, err = meter.Int64Counter(
		"debtwatch.transport.reconnects.total",
		metric.WithDescription("Total push transport reconnection attempts"),
		metric.WithUnit("{attempts}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating transport_reconnects_total: %w", err)
	}

	return m, nil
}
