package vehicle

import (
	"context"
	"time"

	"vehiclerental/internal/domain"
	"vehiclerental/internal/repository"
)

type VehicleRepository interface {
	Create(ctx context.Context, v *domain.Vehicle) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Vehicle, error)
	GetAvailableVehicles(ctx context.Context, start, end time.Time, categoryID, vehicleID int64) ([]repository.AvailableVehicle, error)
	UpdateStatus(ctx context.Context, vehicleID int64, status domain.VehicleStatus) (bool, error)
	UpdateMaintenance(ctx context.Context, vehicleID int64, maintainedAt time.Time) (bool, error)
}
