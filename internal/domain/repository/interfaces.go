// Package repository defines the storage contracts the use cases depend on.
package repository

import "github.com/minseokoh/debtwatch/internal/domain/entity"

// AlertStore is the process-wide reactive alert state. All operations are
// synchronous, in-memory and side-effect only; implementations must be safe
// for concurrent use and must keep the counters consistent with the list
// after every mutation.
type AlertStore interface {
	// Add prepends the alert (most-recent-first ordering) and updates the
	// counters incrementally.
	// Returns entity.ErrDuplicateAlert if an alert with the same ID is
	// already present; the list and counters are left unchanged.
	Add(alert *entity.Alert) error

	// Remove deletes the alert with the given ID if present and subtracts
	// its contribution from the counters. Removing an absent ID is a
	// no-op: it returns false and the counters do not change.
	Remove(id int64) bool

	// ClearAll empties the list and resets every counter to zero.
	ClearAll()

	// Contains reports whether an alert with the given ID is present.
	Contains(id int64) bool

	// All returns the current alert list in most-recent-first order.
	All() []*entity.Alert

	// ByCategory returns all alerts with the given category, preserving
	// list order.
	ByCategory(category entity.Category) []*entity.Alert

	// ByUrgency returns all alerts with the given urgency, preserving
	// list order.
	ByUrgency(urgency entity.Urgency) []*entity.Alert

	// Overdue returns all alerts flagged overdue, preserving list order.
	Overdue() []*entity.Alert

	// DueToday returns all alerts with urgency "due", preserving list
	// order.
	DueToday() []*entity.Alert

	// Counters returns a snapshot of the aggregate counters.
	Counters() entity.Counters

	// Len returns the number of alerts currently held.
	Len() int
}
