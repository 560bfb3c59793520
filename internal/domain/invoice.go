package domain

import (
	"fmt"
	"time"
)

// Invoice is the one-to-one billing record for a booking. It is only ever
// written inside the same transaction as its booking.
type Invoice struct {
	ID            int64
	BookingID     int64
	Amount        float64
	InvoiceNumber string
	CreatedAt     time.Time
}

// NewInvoiceNumber synthesizes the unique invoice reference for a booking,
// e.g. INV-42-20260830.
func NewInvoiceNumber(bookingID int64, createdAt time.Time) string {
	return fmt.Sprintf("INV-%d-%s", bookingID, createdAt.Format("20060102"))
}
