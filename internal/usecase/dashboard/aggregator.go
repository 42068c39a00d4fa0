// Package dashboard derives the debt dashboard buckets from the store.
package dashboard

import (
	"github.com/minseokoh/debtwatch/internal/domain/entity"
	"github.com/minseokoh/debtwatch/internal/domain/repository"
)

// Aggregator partitions the store's current alerts into the overdue and
// due-today buckets the dashboard renders. Purely derived: it holds no
// state of its own, so every call reflects the store's current contents.
type Aggregator struct {
	store repository.AlertStore
}

// NewAggregator creates an aggregator reading from the given store.
func NewAggregator(store repository.AlertStore) *Aggregator {
	return &Aggregator{store: store}
}

// OverdueAlerts returns the alerts flagged overdue, in list order.
func (a *Aggregator) OverdueAlerts() []*entity.Alert {
	return a.store.Overdue()
}

// DueTodayAlerts returns the alerts due today, in list order.
func (a *Aggregator) DueTodayAlerts() []*entity.Alert {
	return a.store.DueToday()
}
