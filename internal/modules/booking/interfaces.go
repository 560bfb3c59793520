package booking

import (
	"context"
	"time"

	"vehiclerental/internal/domain"
	"vehiclerental/internal/repository"
)

// BookingRepository is the transactional persistence boundary for the
// booking workflow. Each write method executes as one atomic unit covering
// the booking row, its invoice and its notification-log entry.
type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) (int64, error)
	Update(ctx context.Context, bookingID int64, b *domain.Booking) (bool, error)
	Delete(ctx context.Context, bookingID int64) (bool, error)
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetDailyReport(ctx context.Context, date time.Time, categoryID int64) ([]repository.DailyReportRow, error)
}
