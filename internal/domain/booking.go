package domain

import (
	"fmt"
	"time"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingActive    BookingStatus = "active"
	BookingCompleted BookingStatus = "completed"
	BookingCancelled BookingStatus = "cancelled"
)

func ParseBookingStatus(s string) (BookingStatus, error) {
	switch st := BookingStatus(s); st {
	case BookingPending, BookingActive, BookingCompleted, BookingCancelled:
		return st, nil
	}
	return "", fmt.Errorf("unknown booking status %q", s)
}

const (
	// MaxRentalDuration caps how long a single booking may run.
	MaxRentalDuration = 7 * 24 * time.Hour
	// MaxAdvanceWindow caps how far ahead of now a pickup may be.
	MaxAdvanceWindow = 7 * 24 * time.Hour
)

type Booking struct {
	ID         int64
	UserID     int64
	VehicleID  int64
	PickupDate time.Time
	ReturnDate time.Time
	TotalCost  float64
	Status     BookingStatus
	IsDeleted  bool
	CreatedAt  time.Time
}

// EffectiveStatus folds the soft-delete flag into the status: a soft-deleted
// booking reads as cancelled no matter what the status column still says.
// Reports and read paths must use this, not Status, when deciding whether a
// booking counts.
func (b *Booking) EffectiveStatus() BookingStatus {
	if b.IsDeleted {
		return BookingCancelled
	}
	return b.Status
}

// ValidateDates checks the booking window and returns every violated rule,
// not just the first. The caller samples now once so all rules compare
// against the same instant.
func (b *Booking) ValidateDates(now time.Time) []string {
	var errs []string

	if b.ReturnDate.Sub(b.PickupDate) > MaxRentalDuration {
		errs = append(errs, "Booking duration cannot exceed 7 days")
	}
	if b.PickupDate.Sub(now) > MaxAdvanceWindow {
		errs = append(errs, "Cannot book more than 7 days in advance")
	}
	if !b.PickupDate.Before(b.ReturnDate) {
		errs = append(errs, "Return date must be after pickup date")
	}
	if b.PickupDate.Before(now) {
		errs = append(errs, "Pickup date cannot be in the past")
	}

	return errs
}

// Overlaps reports whether two [pickup, return] windows collide. Endpoints
// are inclusive: handing a vehicle back at the exact instant the next renter
// picks it up still counts as a conflict.
func Overlaps(aPickup, aReturn, bPickup, bReturn time.Time) bool {
	return !aPickup.After(bReturn) && !aReturn.Before(bPickup)
}
