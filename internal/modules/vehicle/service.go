package vehicle

import (
	"context"
	"time"

	"vehiclerental/internal/domain"
	"vehiclerental/internal/repository"
)

// availability queries take whole days, unlike booking instants
const dateOnlyLayout = "2006-01-02"

type Service struct {
	vehicles VehicleRepository
}

func NewService(vehicles VehicleRepository) *Service {
	return &Service{vehicles: vehicles}
}

func (s *Service) CreateVehicle(ctx context.Context, req CreateVehicleRequest) (int64, error) {
	status := domain.VehicleAvailable
	if req.Status != "" {
		var err error
		status, err = domain.ParseVehicleStatus(req.Status)
		if err != nil {
			return 0, &domain.ParseError{Field: "status", Err: err}
		}
	}

	v := &domain.Vehicle{
		CategoryID:         req.CategoryID,
		RegistrationNumber: req.RegistrationNumber,
		Model:              req.Model,
		Make:               req.Make,
		Year:               req.Year,
		Status:             status,
	}
	return s.vehicles.Create(ctx, v)
}

func (s *Service) GetVehicle(ctx context.Context, id int64) (*domain.Vehicle, error) {
	return s.vehicles.GetByID(ctx, id)
}

// CheckAvailability lists vehicles free for the whole [startDate, endDate]
// range, optionally narrowed to one category or one vehicle.
func (s *Service) CheckAvailability(ctx context.Context, startDate, endDate string, categoryID, vehicleID int64) ([]repository.AvailableVehicle, error) {
	start, err := time.Parse(dateOnlyLayout, startDate)
	if err != nil {
		return nil, &domain.ParseError{Field: "start_date", Err: err}
	}
	end, err := time.Parse(dateOnlyLayout, endDate)
	if err != nil {
		return nil, &domain.ParseError{Field: "end_date", Err: err}
	}

	return s.vehicles.GetAvailableVehicles(ctx, start, end, categoryID, vehicleID)
}

func (s *Service) UpdateStatus(ctx context.Context, vehicleID int64, rawStatus string) (bool, error) {
	status, err := domain.ParseVehicleStatus(rawStatus)
	if err != nil {
		return false, &domain.ParseError{Field: "status", Err: err}
	}
	return s.vehicles.UpdateStatus(ctx, vehicleID, status)
}

func (s *Service) UpdateMaintenance(ctx context.Context, vehicleID int64, rawDate string) (bool, error) {
	maintainedAt, err := time.Parse(dateOnlyLayout, rawDate)
	if err != nil {
		return false, &domain.ParseError{Field: "maintained_at", Err: err}
	}
	return s.vehicles.UpdateMaintenance(ctx, vehicleID, maintainedAt)
}
