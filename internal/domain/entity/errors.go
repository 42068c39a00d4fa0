package entity

import "errors"

var (
	// ErrDuplicateAlert is returned when an alert with the same ID is
	// added to the store twice.
	ErrDuplicateAlert = errors.New("alert with this ID already exists")

	// ErrInvalidEvent is returned when an inbound alert event fails
	// payload validation and is rejected before reaching the store.
	ErrInvalidEvent = errors.New("invalid alert event")
)
