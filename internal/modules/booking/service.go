package booking

import (
	"context"
	"time"

	"vehiclerental/internal/domain"
	"vehiclerental/internal/repository"
)

// DateLayout is the wire format for booking instants: ISO 8601 local time,
// no offset.
const DateLayout = "2006-01-02T15:04:05"

type Service struct {
	bookings BookingRepository
}

func NewService(bookings BookingRepository) *Service {
	return &Service{bookings: bookings}
}

func (s *Service) parseBooking(req BookingRequest) (*domain.Booking, error) {
	pickup, err := time.Parse(DateLayout, req.PickupDate)
	if err != nil {
		return nil, &domain.ParseError{Field: "pickup_date", Err: err}
	}
	ret, err := time.Parse(DateLayout, req.ReturnDate)
	if err != nil {
		return nil, &domain.ParseError{Field: "return_date", Err: err}
	}

	status := domain.BookingPending
	if req.Status != "" {
		status, err = domain.ParseBookingStatus(req.Status)
		if err != nil {
			return nil, &domain.ParseError{Field: "status", Err: err}
		}
	}

	return &domain.Booking{
		UserID:     req.UserID,
		VehicleID:  req.VehicleID,
		PickupDate: pickup,
		ReturnDate: ret,
		TotalCost:  req.TotalCost,
		Status:     status,
	}, nil
}

// CreateBooking parses and validates the request, then hands it to the
// transactional workflow. No transaction is opened for invalid input.
func (s *Service) CreateBooking(ctx context.Context, req BookingRequest) (int64, error) {
	b, err := s.parseBooking(req)
	if err != nil {
		return 0, err
	}
	if violations := b.ValidateDates(time.Now()); len(violations) > 0 {
		return 0, &domain.ValidationError{Violations: violations}
	}
	return s.bookings.Create(ctx, b)
}

// UpdateBooking re-validates the new window and rewrites the booking. The
// false return means the booking id does not exist, which is an outcome,
// not an error.
func (s *Service) UpdateBooking(ctx context.Context, bookingID int64, req BookingRequest) (bool, error) {
	b, err := s.parseBooking(req)
	if err != nil {
		return false, err
	}
	if violations := b.ValidateDates(time.Now()); len(violations) > 0 {
		return false, &domain.ValidationError{Violations: violations}
	}
	return s.bookings.Update(ctx, bookingID, b)
}

func (s *Service) CancelBooking(ctx context.Context, bookingID int64) (bool, error) {
	return s.bookings.Delete(ctx, bookingID)
}

func (s *Service) GetBooking(ctx context.Context, bookingID int64) (*domain.Booking, error) {
	return s.bookings.GetByID(ctx, bookingID)
}

func (s *Service) GetDailyReport(ctx context.Context, dateStr string, categoryID int64) ([]repository.DailyReportRow, error) {
	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return nil, &domain.ParseError{Field: "date", Err: err}
	}
	return s.bookings.GetDailyReport(ctx, date, categoryID)
}
