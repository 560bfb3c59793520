package domain

import "time"

type NotificationKind string

const (
	NotificationConfirmation NotificationKind = "confirmation"
	NotificationUpdate       NotificationKind = "update"
	NotificationInvoice      NotificationKind = "invoice"
	NotificationCancelled    NotificationKind = "cancelled"
)

// Normalize maps a kind onto the value actually stored. An update email is
// recorded as a confirmation; anything unrecognized falls back to the same.
func (k NotificationKind) Normalize() NotificationKind {
	switch k {
	case NotificationConfirmation, NotificationInvoice, NotificationCancelled:
		return k
	default:
		return NotificationConfirmation
	}
}

// EmailLog is the append-only audit of outbound notifications. No mail is
// actually sent; the row is the deliverable.
type EmailLog struct {
	ID        int64
	BookingID int64
	Kind      NotificationKind
	CreatedAt time.Time
}
