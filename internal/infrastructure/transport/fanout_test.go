package transport

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minseokoh/debtwatch/internal/adapter/dto"
)

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}

func testEvent(id int64) dto.DebtAlertEvent {
	return dto.DebtAlertEvent{
		ID:         id,
		Type:       "customer",
		EntityID:   id,
		EntityName: "Acme",
		DueDate:    "2026-09-15",
		AlertType:  "approaching",
	}
}

func TestFanoutDeliversInSubscriptionOrder(t *testing.T) {
	f := NewFanout(nopLogger{})

	var calls []string
	f.Subscribe(func(dto.DebtAlertEvent) { calls = append(calls, "first") })
	f.Subscribe(func(dto.DebtAlertEvent) { calls = append(calls, "second") })
	f.Subscribe(func(dto.DebtAlertEvent) { calls = append(calls, "third") })

	f.Dispatch(testEvent(1))
	assert.Equal(t, []string{"first", "second", "third"}, calls)
}

func TestFanoutEventOrderPreserved(t *testing.T) {
	f := NewFanout(nopLogger{})

	var seen []int64
	f.Subscribe(func(e dto.DebtAlertEvent) { seen = append(seen, e.ID) })

	for id := int64(1); id <= 5; id++ {
		f.Dispatch(testEvent(id))
	}
	assert.Equal(t, []int64{1, 2, 3, 4, 5}, seen)
}

func TestFanoutUnsubscribe(t *testing.T) {
	f := NewFanout(nopLogger{})

	var first, second int
	sub := f.Subscribe(func(dto.DebtAlertEvent) { first++ })
	f.Subscribe(func(dto.DebtAlertEvent) { second++ })

	f.Dispatch(testEvent(1))
	f.Unsubscribe(sub)
	f.Dispatch(testEvent(2))

	assert.Equal(t, 1, first)
	assert.Equal(t, 2, second)

	// Idempotent: unknown and already-removed handles are no-ops.
	f.Unsubscribe(sub)
	f.Unsubscribe(Subscription("nonexistent"))
	f.Dispatch(testEvent(3))
	assert.Equal(t, 1, first)
	assert.Equal(t, 3, second)
}

func TestFanoutListenerPanicIsolated(t *testing.T) {
	f := NewFanout(nopLogger{})

	var delivered int
	f.Subscribe(func(dto.DebtAlertEvent) { panic("listener bug") })
	f.Subscribe(func(dto.DebtAlertEvent) { delivered++ })

	require.NotPanics(t, func() { f.Dispatch(testEvent(1)) })
	assert.Equal(t, 1, delivered)
}

func TestManualAdapterInject(t *testing.T) {
	m := NewManualAdapter(nopLogger{})
	require.True(t, m.Connected())

	var seen []int64
	m.Subscribe(func(e dto.DebtAlertEvent) { seen = append(seen, e.ID) })

	m.Inject(testEvent(1))
	m.Inject(testEvent(2))
	assert.Equal(t, []int64{1, 2}, seen)

	m.Disconnect()
	assert.False(t, m.Connected())
	m.Inject(testEvent(3))
	assert.Equal(t, []int64{1, 2}, seen)
}

func TestCalculateBackoff(t *testing.T) {
	cfg := ReconnectionConfig{
		InitialBackoff:    500 * time.Millisecond,
		MaxBackoff:        60 * time.Second,
		BackoffMultiplier: 1.5,
	}

	assert.Equal(t, 500*time.Millisecond, CalculateBackoff(cfg, 0))
	assert.Equal(t, 750*time.Millisecond, CalculateBackoff(cfg, 1))
	assert.Equal(t, 1125*time.Millisecond, CalculateBackoff(cfg, 2))

	// Large attempt numbers are capped.
	assert.Equal(t, 60*time.Second, CalculateBackoff(cfg, 50))
}
