package entity

// Counters is the aggregate view over the store's current alert list.
// The store maintains it incrementally on every add/remove; Recount exists
// so tests can assert the increments never drift from a full recount.
type Counters struct {
	Customer    int
	Supplier    int
	Overdue     int
	DueToday    int
	Approaching int
	Total       int
}

// Add applies one alert's contribution to the counters.
func (c *Counters) Add(a *Alert) {
	c.apply(a, 1)
}

// Subtract removes one alert's contribution from the counters.
func (c *Counters) Subtract(a *Alert) {
	c.apply(a, -1)
}

// Reset zeroes every counter.
func (c *Counters) Reset() {
	*c = Counters{}
}

func (c *Counters) apply(a *Alert, delta int) {
	switch a.Category {
	case CategoryCustomer:
		c.Customer += delta
	case CategorySupplier:
		c.Supplier += delta
	}

	switch a.Urgency {
	case UrgencyOverdue:
		c.Overdue += delta
	case UrgencyDue:
		c.DueToday += delta
	case UrgencyApproaching:
		c.Approaching += delta
	}

	c.Total += delta
}

// Recount computes counters from scratch over the given alert list.
func Recount(alerts []*Alert) Counters {
	var c Counters
	for _, a := range alerts {
		c.Add(a)
	}
	return c
}
