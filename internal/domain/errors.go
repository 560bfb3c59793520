package domain

import (
	"fmt"
	"strings"
)

// ParseError reports a malformed raw input value. It is raised before any
// validation rule runs.
type ParseError struct {
	Field string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid %s: %v", e.Field, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ValidationError carries every violated date-window rule for one request.
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Violations, ", ")
}

// ReferenceError means a referenced user or vehicle does not exist.
type ReferenceError struct {
	Entity string
	ID     int64
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("%s with ID %d does not exist", e.Entity, e.ID)
}

// ConflictError covers overlapping bookings and forbidden cancellations.
// The caller is expected to correct the request and resubmit; nothing is
// retried server-side.
type ConflictError struct {
	Reason string
}

func (e *ConflictError) Error() string { return e.Reason }

var (
	ErrVehicleUnavailable = &ConflictError{Reason: "Vehicle not available for selected dates"}
	ErrActiveBooking      = &ConflictError{Reason: "Cannot delete an active booking"}
)
