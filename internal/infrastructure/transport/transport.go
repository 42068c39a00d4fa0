// Package transport delivers inbound debt-alert events from the
// push-messaging backend to registered listeners.
package transport

import "github.com/minseokoh/debtwatch/internal/adapter/dto"

// Listener is invoked once per inbound alert event, in arrival order.
type Listener func(event dto.DebtAlertEvent)

// Subscription is an opaque handle identifying a registered listener.
type Subscription string

// Adapter is the push-messaging boundary the rest of the system consumes.
// Implementations deliver events one at a time: each listener invocation
// runs to completion before the next event is dispatched.
type Adapter interface {
	// Subscribe registers a listener and returns its handle.
	Subscribe(fn Listener) Subscription

	// Unsubscribe removes the listener. Unsubscribing an unknown or
	// already-removed handle is a no-op.
	Unsubscribe(sub Subscription)

	// Connected reports current transport connectivity.
	Connected() bool

	// Disconnect tears down the underlying connection and flips
	// connectivity to false. Further events are not delivered; a new
	// adapter instance must be constructed to reconnect.
	Disconnect()
}

// Recorder counts transport connection events for metrics.
type Recorder interface {
	Reconnected()
}

// NopRecorder discards all transport events.
type NopRecorder struct{}

func (NopRecorder) Reconnected() {}

// Logger is the structured logging contract for transport internals.
type Logger interface {
	Debug(msg string, keysAndValues ...any)
	Info(msg string, keysAndValues ...any)
	Warn(msg string, keysAndValues ...any)
	Error(msg string, keysAndValues ...any)
}
