package observability

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Recorder adapts the metrics set to the per-use-case recorder contracts
// (alert.Recorder and notification.Recorder). Slot gauges are up/down
// counters, so the recorder tracks the last reported sizes and applies
// deltas.
type Recorder struct {
	m *Metrics

	mu          sync.Mutex
	lastVisible int
	lastQueued  int
}

// NewRecorder creates a recorder backed by the given metrics.
func NewRecorder(m *Metrics) *Recorder {
	return &Recorder{m: m}
}

// Received counts an accepted inbound alert.
func (r *Recorder) Received(category, urgency string) {
	r.m.AlertsReceivedTotal.Add(context.Background(), 1, metric.WithAttributes(
		attribute.String("category", category),
		attribute.String("urgency", urgency),
	))
}

// Rejected counts a malformed inbound event.
func (r *Recorder) Rejected(reason string) {
	r.m.AlertsRejectedTotal.Add(context.Background(), 1, metric.WithAttributes(
		attribute.String("reason", reason),
	))
}

// Inconsistent counts an accepted alert whose producer fields disagree.
func (r *Recorder) Inconsistent() {
	r.m.AlertsInconsistentTotal.Add(context.Background(), 1)
}

// EscalationSent counts a delivered escalation.
func (r *Recorder) EscalationSent(notifier string) {
	r.m.EscalationsSentTotal.Add(context.Background(), 1, metric.WithAttributes(
		attribute.String("notifier", notifier),
	))
}

// EscalationFailed counts a failed escalation.
func (r *Recorder) EscalationFailed(notifier string) {
	r.m.EscalationErrorsTotal.Add(context.Background(), 1, metric.WithAttributes(
		attribute.String("notifier", notifier),
	))
}

// Reconnected counts a push transport reconnection.
func (r *Recorder) Reconnected() {
	r.m.TransportReconnectsTotal.Add(context.Background(), 1)
}

// Dismissed counts a dismissed notification.
func (r *Recorder) Dismissed(auto bool) {
	trigger := "manual"
	if auto {
		trigger = "auto"
	}
	r.m.AlertsDismissedTotal.Add(context.Background(), 1, metric.WithAttributes(
		attribute.String("trigger", trigger),
	))
}

// Promoted counts a queue-to-visible promotion.
func (r *Recorder) Promoted() {
	r.m.AlertsPromotedTotal.Add(context.Background(), 1)
}

// Dropped counts an arrival rejected by the full wait queue.
func (r *Recorder) Dropped() {
	r.m.AlertsDroppedTotal.Add(context.Background(), 1)
}

// SlotCounts updates the visible/queued gauges.
func (r *Recorder) SlotCounts(visible, queued int) {
	r.mu.Lock()
	dv := int64(visible - r.lastVisible)
	dq := int64(queued - r.lastQueued)
	r.lastVisible = visible
	r.lastQueued = queued
	r.mu.Unlock()

	ctx := context.Background()
	if dv != 0 {
		r.m.VisibleAlerts.Add(ctx, dv)
	}
	if dq != 0 {
		r.m.QueuedAlerts.Add(ctx, dq)
	}
}
