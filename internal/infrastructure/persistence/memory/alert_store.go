package memory

import (
	"sync"

	"github.com/minseokoh/debtwatch/internal/domain/entity"
)

// AlertStore provides the in-memory implementation of repository.AlertStore.
// Thread-safe for concurrent access. The counters are maintained
// incrementally on every mutation rather than recomputed from the list.
type AlertStore struct {
	mu       sync.RWMutex
	alerts   []*entity.Alert          // most-recent-first
	byID     map[int64]*entity.Alert  // id -> alert
	counters entity.Counters
}

// NewAlertStore creates an empty in-memory alert store.
func NewAlertStore() *AlertStore {
	return &AlertStore{
		byID: make(map[int64]*entity.Alert),
	}
}

// Add prepends the alert and updates the counters.
// Returns entity.ErrDuplicateAlert if the ID is already present.
func (s *AlertStore) Add(alert *entity.Alert) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byID[alert.ID]; exists {
		return entity.ErrDuplicateAlert
	}

	// Store a copy to prevent external mutations
	alertCopy := *alert
	s.alerts = append([]*entity.Alert{&alertCopy}, s.alerts...)
	s.byID[alert.ID] = &alertCopy
	s.counters.Add(&alertCopy)

	return nil
}

// Remove deletes the alert with the given ID if present. Removing an
// absent ID leaves the list and counters untouched.
func (s *AlertStore) Remove(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	alert, exists := s.byID[id]
	if !exists {
		return false
	}

	for i, a := range s.alerts {
		if a.ID == id {
			s.alerts = append(s.alerts[:i], s.alerts[i+1:]...)
			break
		}
	}

	delete(s.byID, id)
	s.counters.Subtract(alert)

	return true
}

// ClearAll empties the list and resets every counter.
func (s *AlertStore) ClearAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.alerts = nil
	s.byID = make(map[int64]*entity.Alert)
	s.counters.Reset()
}

// Contains reports whether an alert with the given ID is present.
func (s *AlertStore) Contains(id int64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.byID[id]
	return ok
}

// All returns a copy of the current alert list in most-recent-first order.
func (s *AlertStore) All() []*entity.Alert {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.copyFiltered(func(*entity.Alert) bool { return true })
}

// ByCategory returns all alerts with the given category, preserving order.
func (s *AlertStore) ByCategory(category entity.Category) []*entity.Alert {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.copyFiltered(func(a *entity.Alert) bool { return a.Category == category })
}

// ByUrgency returns all alerts with the given urgency, preserving order.
func (s *AlertStore) ByUrgency(urgency entity.Urgency) []*entity.Alert {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.copyFiltered(func(a *entity.Alert) bool { return a.Urgency == urgency })
}

// Overdue returns all alerts flagged overdue, preserving order.
func (s *AlertStore) Overdue() []*entity.Alert {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.copyFiltered(func(a *entity.Alert) bool { return a.IsOverdue })
}

// DueToday returns all alerts with urgency "due", preserving order.
func (s *AlertStore) DueToday() []*entity.Alert {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.copyFiltered(func(a *entity.Alert) bool { return a.Urgency == entity.UrgencyDue })
}

// Counters returns a snapshot of the aggregate counters.
func (s *AlertStore) Counters() entity.Counters {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.counters
}

// Len returns the number of alerts currently held.
func (s *AlertStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.alerts)
}

// copyFiltered returns copies of matching alerts. Caller must hold the lock.
func (s *AlertStore) copyFiltered(match func(*entity.Alert) bool) []*entity.Alert {
	out := make([]*entity.Alert, 0, len(s.alerts))
	for _, a := range s.alerts {
		if match(a) {
			alertCopy := *a
			out = append(out, &alertCopy)
		}
	}
	return out
}
