package alert

import (
	"context"

	"github.com/minseokoh/debtwatch/internal/domain/entity"
)

// Admitter hands newly stored alerts to the notification controller.
type Admitter interface {
	Admit(alert *entity.Alert)
}

// Notifier forwards overdue alerts to an external escalation channel.
type Notifier interface {
	// Name identifies the notifier in logs and metrics.
	Name() string

	// Notify sends the alert. Failures are logged by the caller and
	// never propagate to the intake path.
	Notify(ctx context.Context, alert *entity.Alert) error
}

// Logger is the structured logging contract for the intake path.
type Logger interface {
	Debug(msg string, keysAndValues ...any)
	Info(msg string, keysAndValues ...any)
	Warn(msg string, keysAndValues ...any)
	Error(msg string, keysAndValues ...any)
}

// Recorder receives intake events for metrics.
type Recorder interface {
	Received(category, urgency string)
	Rejected(reason string)
	Inconsistent()
	EscalationSent(notifier string)
	EscalationFailed(notifier string)
}

// NopRecorder discards all intake events.
type NopRecorder struct{}

func (NopRecorder) Received(string, string) {}
func (NopRecorder) Rejected(string)         {}
func (NopRecorder) Inconsistent()           {}
func (NopRecorder) EscalationSent(string)   {}
func (NopRecorder) EscalationFailed(string) {}
