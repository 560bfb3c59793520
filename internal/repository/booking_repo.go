package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"vehiclerental/internal/domain"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// errBookingNotFound aborts a transaction for the "target absent" outcome.
// It never escapes the repository: callers see (false, nil).
var errBookingNotFound = errors.New("booking not found")

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

type bookingModel struct {
	ID         int64     `gorm:"column:booking_id;primaryKey"`
	UserID     int64     `gorm:"column:user_id;index"`
	VehicleID  int64     `gorm:"column:vehicle_id;index"`
	PickupDate time.Time `gorm:"column:pickup_date"`
	ReturnDate time.Time `gorm:"column:return_date"`
	TotalCost  float64   `gorm:"column:total_cost"`
	Status     string    `gorm:"column:status"`
	IsDeleted  bool      `gorm:"column:is_deleted"`
	CreatedAt  time.Time `gorm:"column:created_at"`
}

func (bookingModel) TableName() string { return "bookings" }

type invoiceModel struct {
	ID            int64     `gorm:"column:invoice_id;primaryKey"`
	BookingID     int64     `gorm:"column:booking_id;index"`
	Amount        float64   `gorm:"column:amount"`
	InvoiceNumber string    `gorm:"column:invoice_number;uniqueIndex"`
	CreatedAt     time.Time `gorm:"column:created_at"`
}

func (invoiceModel) TableName() string { return "invoices" }

type emailLogModel struct {
	ID        int64     `gorm:"column:email_id;primaryKey"`
	BookingID int64     `gorm:"column:booking_id;index"`
	EmailType string    `gorm:"column:email_type"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (emailLogModel) TableName() string { return "email_logs" }

func toDomainBooking(m bookingModel) *domain.Booking {
	return &domain.Booking{
		ID:         m.ID,
		UserID:     m.UserID,
		VehicleID:  m.VehicleID,
		PickupDate: m.PickupDate,
		ReturnDate: m.ReturnDate,
		TotalCost:  m.TotalCost,
		Status:     domain.BookingStatus(m.Status),
		IsDeleted:  m.IsDeleted,
		CreatedAt:  m.CreatedAt,
	}
}

// Create runs the whole create workflow as one transaction: reference checks,
// availability scan, booking insert, invoice insert, notification log. Any
// failure rolls the entire unit back; partial writes are never visible.
func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) (int64, error) {
	m := bookingModel{
		UserID:     b.UserID,
		VehicleID:  b.VehicleID,
		PickupDate: b.PickupDate,
		ReturnDate: b.ReturnDate,
		TotalCost:  b.TotalCost,
		Status:     string(domain.BookingPending),
		CreatedAt:  time.Now(),
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockVehicle(tx, b.VehicleID); err != nil {
			return err
		}
		if err := userExists(tx, b.UserID); err != nil {
			return err
		}

		free, err := isVehicleAvailable(tx, b.VehicleID, b.PickupDate, b.ReturnDate, 0)
		if err != nil {
			return err
		}
		if !free {
			return domain.ErrVehicleUnavailable
		}

		if err := tx.Create(&m).Error; err != nil {
			return referentialError(err, b.UserID, b.VehicleID)
		}
		if err := createInvoice(tx, m.ID, m.TotalCost, m.CreatedAt); err != nil {
			return err
		}
		return logEmail(tx, m.ID, domain.NotificationConfirmation)
	})
	if err != nil {
		return 0, err
	}

	b.ID = m.ID
	b.Status = domain.BookingPending
	b.CreatedAt = m.CreatedAt
	return m.ID, nil
}

// Update rewrites the mutable booking fields, syncs the invoice amount and
// appends an update notification, all in one transaction. A missing booking
// is reported as (false, nil), not as an error.
func (r *BookingRepository) Update(ctx context.Context, bookingID int64, b *domain.Booking) (bool, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockVehicle(tx, b.VehicleID); err != nil {
			return err
		}

		// Availability blocks updates exactly as it blocks creates; the
		// booking's own row is excluded from the conflict scan.
		free, err := isVehicleAvailable(tx, b.VehicleID, b.PickupDate, b.ReturnDate, bookingID)
		if err != nil {
			return err
		}
		if !free {
			return domain.ErrVehicleUnavailable
		}

		res := tx.Model(&bookingModel{}).Where("booking_id = ?", bookingID).Updates(map[string]any{
			"user_id":     b.UserID,
			"vehicle_id":  b.VehicleID,
			"pickup_date": b.PickupDate,
			"return_date": b.ReturnDate,
			"total_cost":  b.TotalCost,
			"status":      string(b.Status),
		})
		if res.Error != nil {
			return referentialError(res.Error, b.UserID, b.VehicleID)
		}
		if res.RowsAffected == 0 {
			return errBookingNotFound
		}

		if err := tx.Model(&invoiceModel{}).
			Where("booking_id = ?", bookingID).
			Update("amount", b.TotalCost).Error; err != nil {
			return err
		}
		return logEmail(tx, bookingID, domain.NotificationUpdate)
	})
	if errors.Is(err, errBookingNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Delete soft-deletes a booking: the row keeps its status and gains the
// is_deleted flag, the invoice is removed and a cancellation notification is
// logged. An active booking cannot be deleted. A booking that is missing or
// already soft-deleted yields (false, nil).
func (r *BookingRepository) Delete(ctx context.Context, bookingID int64) (bool, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m bookingModel
		err := tx.Select("status").
			Where("booking_id = ? AND is_deleted = ?", bookingID, false).
			Take(&m).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errBookingNotFound
		}
		if err != nil {
			return err
		}
		if m.Status == string(domain.BookingActive) {
			return domain.ErrActiveBooking
		}

		if err := tx.Model(&bookingModel{}).
			Where("booking_id = ?", bookingID).
			Update("is_deleted", true).Error; err != nil {
			return err
		}
		if err := tx.Where("booking_id = ?", bookingID).Delete(&invoiceModel{}).Error; err != nil {
			return err
		}
		return logEmail(tx, bookingID, domain.NotificationCancelled)
	})
	if errors.Is(err, errBookingNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var m bookingModel
	tx := r.db.WithContext(ctx).Where("booking_id = ?", id).Take(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainBooking(m), nil
}

type DailyReportRow struct {
	CategoryID   int64   `gorm:"column:category_id" json:"category_id"`
	CategoryName string  `gorm:"column:category_name" json:"category_name"`
	BookingCount int64   `gorm:"column:booking_count" json:"booking_count"`
	TotalRevenue float64 `gorm:"column:total_revenue" json:"total_revenue"`
}

// GetDailyReport aggregates non-deleted bookings that pick up or return on
// the given day, grouped by vehicle category.
func (r *BookingRepository) GetDailyReport(ctx context.Context, date time.Time, categoryID int64) ([]DailyReportRow, error) {
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	dayEnd := dayStart.Add(24 * time.Hour)

	q := `
SELECT v.category_id AS category_id,
       vc.name AS category_name,
       COUNT(b.booking_id) AS booking_count,
       COALESCE(SUM(b.total_cost), 0) AS total_revenue
FROM vehicles v
JOIN vehicle_categories vc ON vc.category_id = v.category_id
JOIN bookings b ON b.vehicle_id = v.vehicle_id
WHERE b.is_deleted = ?
  AND ((b.pickup_date >= ? AND b.pickup_date < ?)
    OR (b.return_date >= ? AND b.return_date < ?))
`
	args := []any{false, dayStart, dayEnd, dayStart, dayEnd}

	if categoryID != 0 {
		q += "  AND v.category_id = ?\n"
		args = append(args, categoryID)
	}
	q += "GROUP BY v.category_id, vc.name"

	var rows []DailyReportRow
	tx := r.db.WithContext(ctx).Raw(q, args...).Scan(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return rows, nil
}

// lockVehicle confirms the vehicle exists and, on Postgres, takes its row
// lock so concurrent availability checks for the same vehicle serialize
// against each other for the rest of the transaction.
func lockVehicle(tx *gorm.DB, vehicleID int64) error {
	q := tx.Select("vehicle_id").Where("vehicle_id = ?", vehicleID)
	if tx.Dialector.Name() == "postgres" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var m vehicleModel
	err := q.Take(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &domain.ReferenceError{Entity: "Vehicle", ID: vehicleID}
	}
	return err
}

func userExists(tx *gorm.DB, userID int64) error {
	var m userModel
	err := tx.Select("user_id").Where("user_id = ?", userID).Take(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &domain.ReferenceError{Entity: "User", ID: userID}
	}
	return err
}

// isVehicleAvailable runs the three-clause overlap scan over non-deleted
// pending/active bookings for the vehicle. BETWEEN keeps both endpoints
// inclusive, so windows touching at a single instant still conflict.
// excludeID > 0 leaves that booking's own row out of the scan (update path).
func isVehicleAvailable(tx *gorm.DB, vehicleID int64, pickup, ret time.Time, excludeID int64) (bool, error) {
	q := tx.Model(&bookingModel{}).
		Where("vehicle_id = ?", vehicleID).
		Where("is_deleted = ?", false).
		Where("status IN ?", []string{string(domain.BookingPending), string(domain.BookingActive)}).
		Where(`((pickup_date BETWEEN ? AND ?) OR (return_date BETWEEN ? AND ?) OR (pickup_date <= ? AND return_date >= ?))`,
			pickup, ret, pickup, ret, pickup, ret)
	if excludeID > 0 {
		q = q.Where("booking_id <> ?", excludeID)
	}

	var cnt int64
	if err := q.Count(&cnt).Error; err != nil {
		return false, err
	}
	return cnt == 0, nil
}

func createInvoice(tx *gorm.DB, bookingID int64, amount float64, createdAt time.Time) error {
	inv := invoiceModel{
		BookingID:     bookingID,
		Amount:        amount,
		InvoiceNumber: domain.NewInvoiceNumber(bookingID, createdAt),
		CreatedAt:     createdAt,
	}
	return tx.Create(&inv).Error
}

func logEmail(tx *gorm.DB, bookingID int64, kind domain.NotificationKind) error {
	entry := emailLogModel{
		BookingID: bookingID,
		EmailType: string(kind.Normalize()),
		CreatedAt: time.Now(),
	}
	return tx.Create(&entry).Error
}

// referentialError rewrites a Postgres foreign-key violation into the
// ReferenceError the caller expects. It is a backstop behind the explicit
// existence checks; anything else passes through untouched.
func referentialError(err error, userID, vehicleID int64) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23503" {
		if strings.Contains(pgErr.ConstraintName, "user") {
			return &domain.ReferenceError{Entity: "User", ID: userID}
		}
		return &domain.ReferenceError{Entity: "Vehicle", ID: vehicleID}
	}
	return err
}
