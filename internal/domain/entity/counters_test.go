package entity

import (
	"testing"
	"time"
)

func countersAlert(id int64, category Category, daysUntilDue int) *Alert {
	return NewAlert(id, category, id, "Acme", 100, time.Now(), daysUntilDue)
}

func TestCountersAddSubtractRoundTrip(t *testing.T) {
	alerts := []*Alert{
		countersAlert(1, CategoryCustomer, -2),
		countersAlert(2, CategoryCustomer, 0),
		countersAlert(3, CategorySupplier, 5),
	}

	var c Counters
	for _, a := range alerts {
		c.Add(a)
	}

	if c.Total != 3 || c.Customer != 2 || c.Supplier != 1 {
		t.Errorf("after adds: %+v", c)
	}
	if c.Overdue != 1 || c.DueToday != 1 || c.Approaching != 1 {
		t.Errorf("urgency tallies: %+v", c)
	}

	for _, a := range alerts {
		c.Subtract(a)
	}
	if c != (Counters{}) {
		t.Errorf("subtracting every alert must zero the counters, got %+v", c)
	}
}

func TestCountersReset(t *testing.T) {
	var c Counters
	c.Add(countersAlert(1, CategoryCustomer, 1))
	c.Reset()
	if c != (Counters{}) {
		t.Errorf("Reset() left %+v", c)
	}
}

func TestRecountMatchesIncremental(t *testing.T) {
	alerts := []*Alert{
		countersAlert(1, CategoryCustomer, -1),
		countersAlert(2, CategorySupplier, -4),
		countersAlert(3, CategorySupplier, 0),
		countersAlert(4, CategoryCustomer, 9),
	}

	var incremental Counters
	for _, a := range alerts {
		incremental.Add(a)
	}

	if got := Recount(alerts); got != incremental {
		t.Errorf("Recount() = %+v, incremental = %+v", got, incremental)
	}
}
