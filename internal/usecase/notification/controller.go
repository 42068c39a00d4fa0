// Package notification manages which alerts are presented to the user.
//
// The controller is a bounded-admission, timed-eviction scheduler over the
// alert store's stream of additions. Each alert moves through
// Received -> {Visible | Queued} -> Dismissed; Queued -> Visible is the
// only other transition, and Dismissed is terminal.
package notification

import (
	"sync"
	"time"

	"github.com/minseokoh/debtwatch/internal/domain/entity"
	"github.com/minseokoh/debtwatch/internal/domain/repository"
)

const (
	// DefaultMaxVisible is the default bound on concurrently shown alerts.
	DefaultMaxVisible = 4
	// DefaultDismissDelay is how long an alert stays visible before
	// auto-dismissal.
	DefaultDismissDelay = 8 * time.Second
	// DefaultQueueCap bounds the wait queue; arrivals beyond it are
	// dropped and counted.
	DefaultQueueCap = 64
)

// Config holds controller tuning knobs.
type Config struct {
	MaxVisible   int
	DismissDelay time.Duration
	AutoDismiss  bool
	QueueCap     int
}

// DefaultConfig returns the reference controller configuration.
func DefaultConfig() Config {
	return Config{
		MaxVisible:   DefaultMaxVisible,
		DismissDelay: DefaultDismissDelay,
		AutoDismiss:  true,
		QueueCap:     DefaultQueueCap,
	}
}

// Controller owns the visible set and wait queue. Invariants it maintains
// after every transition:
//
//   - len(visible) <= maxVisible
//   - the wait queue is non-empty only when every visible slot is taken
//   - an alert id occupies at most one slot across both collections
//
// Auto-dismiss timers are keyed by alert id, never by slot position, so a
// cancelled or stale timer can never evict an alert that was promoted into
// the same conceptual slot later.
type Controller struct {
	store    repository.AlertStore
	logger   Logger
	recorder Recorder

	mu           sync.Mutex
	maxVisible   int
	dismissDelay time.Duration
	autoDismiss  bool
	queueCap     int
	visible      []*entity.Alert
	queued       []*entity.Alert
	timers       map[int64]*time.Timer
	stopped      bool
}

// NewController creates a controller bound to the given store.
func NewController(store repository.AlertStore, cfg Config, logger Logger, recorder Recorder) *Controller {
	if cfg.MaxVisible <= 0 {
		cfg.MaxVisible = DefaultMaxVisible
	}
	if cfg.DismissDelay <= 0 {
		cfg.DismissDelay = DefaultDismissDelay
	}
	if cfg.QueueCap <= 0 {
		cfg.QueueCap = DefaultQueueCap
	}

	return &Controller{
		store:        store,
		logger:       logger,
		recorder:     recorder,
		maxVisible:   cfg.MaxVisible,
		dismissDelay: cfg.DismissDelay,
		autoDismiss:  cfg.AutoDismiss,
		queueCap:     cfg.QueueCap,
		timers:       make(map[int64]*time.Timer),
	}
}

// Admit places a newly arrived alert into a visible slot, or the wait
// queue when every slot is taken. Duplicate delivery of an id already
// tracked is a no-op, so re-delivered events never occupy two slots.
func (c *Controller) Admit(alert *entity.Alert) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.stopped {
		return
	}

	if c.trackedLocked(alert.ID) {
		c.logger.Debug("alert already tracked, skipping admission", "alertID", alert.ID)
		return
	}

	if len(c.visible) < c.maxVisible {
		c.showLocked(alert)
	} else if len(c.queued) < c.queueCap {
		c.queued = append(c.queued, alert)
	} else {
		c.logger.Warn("wait queue full, dropping alert",
			"alertID", alert.ID,
			"queueCap", c.queueCap,
		)
		c.recorder.Dropped()
	}

	c.recorder.SlotCounts(len(c.visible), len(c.queued))
}

// Dismiss removes the alert from whichever slot it occupies, cancels its
// timer, removes it from the store and promotes queued alerts into any
// freed slot. Returns false if the id was not tracked.
func (c *Controller) Dismiss(id int64) bool {
	return c.remove(id, false)
}

// VisibleAlerts returns the currently visible alerts in display order.
func (c *Controller) VisibleAlerts() []*entity.Alert {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]*entity.Alert, len(c.visible))
	copy(out, c.visible)
	return out
}

// QueuedCount returns the number of alerts waiting for a visible slot.
func (c *Controller) QueuedCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.queued)
}

// SetMaxVisible changes the visible-set bound and re-runs promotion
// against the new value. Shrinking below the current occupancy does not
// evict alerts that are already visible; the bound applies to admissions
// and promotions from then on.
func (c *Controller) SetMaxVisible(n int) {
	if n <= 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.maxVisible = n
	c.promoteLocked()
	c.recorder.SlotCounts(len(c.visible), len(c.queued))
}

// SetDismissDelay changes the auto-dismiss delay for alerts shown from now
// on. Running timers keep their original deadline.
func (c *Controller) SetDismissDelay(d time.Duration) {
	if d <= 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.dismissDelay = d
}

// Clear drops all tracked alerts and cancels every pending timer. The
// store is not touched; callers pairing this with AlertStore.ClearAll own
// that step.
func (c *Controller) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for id, t := range c.timers {
		t.Stop()
		delete(c.timers, id)
	}
	c.visible = nil
	c.queued = nil
	c.recorder.SlotCounts(0, 0)
}

// Stop cancels all timers and rejects further admissions. Terminal.
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for id, t := range c.timers {
		t.Stop()
		delete(c.timers, id)
	}
	c.stopped = true
}

// remove is the shared dismissal path for user actions and timer expiry.
func (c *Controller) remove(id int64, auto bool) bool {
	c.mu.Lock()

	if t, ok := c.timers[id]; ok {
		t.Stop()
		delete(c.timers, id)
	}

	removed := false
	for i, a := range c.visible {
		if a.ID == id {
			c.visible = append(c.visible[:i], c.visible[i+1:]...)
			removed = true
			break
		}
	}
	if !removed {
		for i, a := range c.queued {
			if a.ID == id {
				c.queued = append(c.queued[:i], c.queued[i+1:]...)
				removed = true
				break
			}
		}
	}

	if !removed {
		c.mu.Unlock()
		return false
	}

	c.promoteLocked()
	c.recorder.SlotCounts(len(c.visible), len(c.queued))
	c.mu.Unlock()

	c.store.Remove(id)
	c.recorder.Dismissed(auto)
	return true
}

// onTimerFired handles auto-dismiss expiry. The timer entry is the source
// of truth: if it is gone the alert was already dismissed manually and the
// firing is a no-op.
func (c *Controller) onTimerFired(id int64) {
	c.mu.Lock()
	_, pending := c.timers[id]
	c.mu.Unlock()

	if !pending {
		return
	}

	if c.remove(id, true) {
		c.logger.Debug("alert auto-dismissed", "alertID", id)
	}
}

// trackedLocked reports whether id occupies a visible or queued slot.
// Caller must hold the lock.
func (c *Controller) trackedLocked(id int64) bool {
	for _, a := range c.visible {
		if a.ID == id {
			return true
		}
	}
	for _, a := range c.queued {
		if a.ID == id {
			return true
		}
	}
	return false
}

// showLocked appends the alert to the visible set and starts its timer.
// Caller must hold the lock.
func (c *Controller) showLocked(alert *entity.Alert) {
	c.visible = append(c.visible, alert)

	if !c.autoDismiss {
		return
	}

	id := alert.ID
	c.timers[id] = time.AfterFunc(c.dismissDelay, func() { c.onTimerFired(id) })
}

// promoteLocked moves queued alerts into free visible slots, oldest first.
// Caller must hold the lock.
func (c *Controller) promoteLocked() {
	for len(c.visible) < c.maxVisible && len(c.queued) > 0 {
		next := c.queued[0]
		c.queued = c.queued[1:]
		c.showLocked(next)
		c.recorder.Promoted()
	}
}
