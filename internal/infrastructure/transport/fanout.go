package transport

import (
	"sync"

	"github.com/google/uuid"

	"github.com/minseokoh/debtwatch/internal/adapter/dto"
)

// Fanout is the listener registry shared by every adapter implementation.
// Delivery is serialized: dispatch holds a dedicated mutex so two events
// are never handled concurrently, and listener panics are isolated so one
// failing callback cannot prevent delivery to the rest.
type Fanout struct {
	mu        sync.RWMutex
	order     []Subscription
	listeners map[Subscription]Listener

	deliverMu sync.Mutex
	logger    Logger
}

// NewFanout creates an empty listener registry.
func NewFanout(logger Logger) *Fanout {
	return &Fanout{
		listeners: make(map[Subscription]Listener),
		logger:    logger,
	}
}

// Subscribe registers a listener and returns its handle. Listeners are
// invoked in subscription order.
func (f *Fanout) Subscribe(fn Listener) Subscription {
	f.mu.Lock()
	defer f.mu.Unlock()

	sub := Subscription(uuid.New().String())
	f.order = append(f.order, sub)
	f.listeners[sub] = fn
	return sub
}

// Unsubscribe removes the listener. Idempotent: removing an unknown handle
// is a no-op.
func (f *Fanout) Unsubscribe(sub Subscription) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.listeners[sub]; !ok {
		return
	}

	delete(f.listeners, sub)
	for i, s := range f.order {
		if s == sub {
			f.order = append(f.order[:i], f.order[i+1:]...)
			break
		}
	}
}

// Dispatch delivers one event to every registered listener in subscription
// order. Each invocation is isolated: a panicking listener is logged and
// delivery continues with the remaining listeners.
func (f *Fanout) Dispatch(event dto.DebtAlertEvent) {
	f.mu.RLock()
	fns := make([]Listener, 0, len(f.order))
	for _, sub := range f.order {
		if fn, ok := f.listeners[sub]; ok {
			fns = append(fns, fn)
		}
	}
	f.mu.RUnlock()

	f.deliverMu.Lock()
	defer f.deliverMu.Unlock()

	for _, fn := range fns {
		f.deliver(fn, event)
	}
}

func (f *Fanout) deliver(fn Listener, event dto.DebtAlertEvent) {
	defer func() {
		if r := recover(); r != nil {
			f.logger.Error("alert listener panicked",
				"alertID", event.ID,
				"panic", r,
			)
		}
	}()

	fn(event)
}
