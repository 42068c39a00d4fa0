package transport

import "github.com/minseokoh/debtwatch/internal/adapter/dto"

// ManualAdapter is the degraded test-mode transport used when no live
// push-messaging backend is configured. It reports itself as always
// connected until disconnected, and events are injected by direct call
// instead of arriving over the wire. Downstream behavior is identical to
// the WebSocket adapter because both dispatch through the same fan-out.
type ManualAdapter struct {
	*Fanout
	disconnected bool
}

// NewManualAdapter creates a manual-trigger transport adapter.
func NewManualAdapter(logger Logger) *ManualAdapter {
	return &ManualAdapter{Fanout: NewFanout(logger)}
}

// Inject delivers a synthetic alert event to all listeners, bypassing the
// network transport. No-op after Disconnect.
func (m *ManualAdapter) Inject(event dto.DebtAlertEvent) {
	if m.disconnected {
		return
	}
	m.Dispatch(event)
}

// Connected reports true until Disconnect is called.
func (m *ManualAdapter) Connected() bool {
	return !m.disconnected
}

// Disconnect stops further deliveries.
func (m *ManualAdapter) Disconnect() {
	m.disconnected = true
}
