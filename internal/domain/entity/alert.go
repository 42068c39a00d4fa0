package entity

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Category identifies which ledger a debt alert belongs to.
type Category string

const (
	// CategoryCustomer marks alerts about customer receivables.
	CategoryCustomer Category = "customer"
	// CategorySupplier marks alerts about supplier payables.
	CategorySupplier Category = "supplier"
)

// IsValid returns true if the category is a known value.
func (c Category) IsValid() bool {
	return c == CategoryCustomer || c == CategorySupplier
}

// Urgency classifies an alert's timing relative to its due date.
type Urgency string

const (
	// UrgencyApproaching means the due date is still in the future.
	UrgencyApproaching Urgency = "approaching"
	// UrgencyDue means the debt is due today.
	UrgencyDue Urgency = "due"
	// UrgencyOverdue means the due date has passed.
	UrgencyOverdue Urgency = "overdue"
)

// IsValid returns true if the urgency is a known value.
func (u Urgency) IsValid() bool {
	return u == UrgencyApproaching || u == UrgencyDue || u == UrgencyOverdue
}

// Alert is a single debt notice for a customer or supplier.
// Alerts are immutable after creation; removal from the store is the only
// state transition they undergo.
type Alert struct {
	// ID is unique within the current in-memory session.
	ID int64

	// Category is the ledger the debt belongs to.
	Category Category

	// EntityID references the customer or supplier record.
	EntityID int64

	// EntityName is the display name of the debtor/creditor.
	EntityName string

	// Amount is the outstanding monetary amount. Never negative.
	Amount float64

	// DueDate is the calendar date the debt falls due.
	DueDate time.Time

	// DaysUntilDue is the signed day offset from today to the due date.
	// Negative values mean the due date has passed.
	DaysUntilDue int

	// IsOverdue mirrors DaysUntilDue < 0. The transport payload sets both
	// fields independently, so consumers must not assume they agree; see
	// CheckConsistency.
	IsOverdue bool

	// Urgency is the producer-assigned timing classification.
	Urgency Urgency

	// CreatedAt is when the alert was produced.
	CreatedAt time.Time

	// Description is free-text context for the operator.
	Description string
}

// NewAlert creates an alert with the urgency derived from the day offset.
// Used by the manual trigger path and tests; the transport path builds
// alerts verbatim from the wire payload instead.
func NewAlert(id int64, category Category, entityID int64, entityName string, amount float64, dueDate time.Time, daysUntilDue int) *Alert {
	a := &Alert{
		ID:           id,
		Category:     category,
		EntityID:     entityID,
		EntityName:   entityName,
		Amount:       amount,
		DueDate:      dueDate,
		DaysUntilDue: daysUntilDue,
		IsOverdue:    daysUntilDue < 0,
		CreatedAt:    time.Now().UTC(),
	}

	switch {
	case daysUntilDue < 0:
		a.Urgency = UrgencyOverdue
	case daysUntilDue == 0:
		a.Urgency = UrgencyDue
	default:
		a.Urgency = UrgencyApproaching
	}

	return a
}

// CheckConsistency verifies the cross-field invariants the producer is
// supposed to maintain: IsOverdue iff DaysUntilDue < 0, urgency "overdue"
// implies IsOverdue, "due" implies a zero offset and "approaching" a
// positive one. Inconsistent alerts are accepted by the store; this check
// exists so the intake path can flag violations instead of silently
// trusting the producer.
func (a *Alert) CheckConsistency() error {
	var issues []string

	if a.IsOverdue != (a.DaysUntilDue < 0) {
		issues = append(issues, fmt.Sprintf("isOverdue=%v disagrees with daysUntilDue=%d", a.IsOverdue, a.DaysUntilDue))
	}

	switch a.Urgency {
	case UrgencyOverdue:
		if !a.IsOverdue {
			issues = append(issues, "urgency overdue but isOverdue=false")
		}
	case UrgencyDue:
		if a.DaysUntilDue != 0 {
			issues = append(issues, fmt.Sprintf("urgency due but daysUntilDue=%d", a.DaysUntilDue))
		}
	case UrgencyApproaching:
		if a.DaysUntilDue <= 0 {
			issues = append(issues, fmt.Sprintf("urgency approaching but daysUntilDue=%d", a.DaysUntilDue))
		}
	default:
		issues = append(issues, fmt.Sprintf("unknown urgency %q", a.Urgency))
	}

	if len(issues) == 0 {
		return nil
	}
	return errors.New(strings.Join(issues, "; "))
}
