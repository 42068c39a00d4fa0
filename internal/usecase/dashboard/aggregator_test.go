package dashboard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minseokoh/debtwatch/internal/domain/entity"
	"github.com/minseokoh/debtwatch/internal/infrastructure/persistence/memory"
)

func TestAggregatorBuckets(t *testing.T) {
	store := memory.NewAlertStore()
	agg := NewAggregator(store)

	assert.Empty(t, agg.OverdueAlerts())
	assert.Empty(t, agg.DueTodayAlerts())

	add := func(id int64, daysUntilDue int) {
		alert := entity.NewAlert(id, entity.CategoryCustomer, id, "Acme", 100, time.Now().AddDate(0, 0, daysUntilDue), daysUntilDue)
		require.NoError(t, store.Add(alert))
	}
	add(1, -5)
	add(2, 0)
	add(3, 4)
	add(4, -1)

	overdue := agg.OverdueAlerts()
	require.Len(t, overdue, 2)
	assert.Equal(t, int64(4), overdue[0].ID)
	assert.Equal(t, int64(1), overdue[1].ID)

	dueToday := agg.DueTodayAlerts()
	require.Len(t, dueToday, 1)
	assert.Equal(t, int64(2), dueToday[0].ID)
}

// The aggregator holds no state: removals are reflected immediately.
func TestAggregatorTracksStore(t *testing.T) {
	store := memory.NewAlertStore()
	agg := NewAggregator(store)

	alert := entity.NewAlert(1, entity.CategorySupplier, 1, "Parts GmbH", 100, time.Now(), -2)
	require.NoError(t, store.Add(alert))
	require.Len(t, agg.OverdueAlerts(), 1)

	store.Remove(1)
	assert.Empty(t, agg.OverdueAlerts())
}
