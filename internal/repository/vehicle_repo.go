package repository

import (
	"context"
	"time"

	"vehiclerental/internal/domain"

	"gorm.io/gorm"
)

type VehicleRepository struct {
	db *gorm.DB
}

func NewVehicleRepository(db *gorm.DB) *VehicleRepository {
	return &VehicleRepository{db: db}
}

type vehicleModel struct {
	ID                 int64      `gorm:"column:vehicle_id;primaryKey"`
	CategoryID         int64      `gorm:"column:category_id;index"`
	RegistrationNumber string     `gorm:"column:registration_number;uniqueIndex"`
	Model              string     `gorm:"column:model"`
	Make               string     `gorm:"column:make"`
	Year               int        `gorm:"column:year"`
	Status             string     `gorm:"column:status"`
	LastMaintenance    *time.Time `gorm:"column:last_maintenance"`
}

func (vehicleModel) TableName() string { return "vehicles" }

type vehicleCategoryModel struct {
	ID        int64   `gorm:"column:category_id;primaryKey"`
	Name      string  `gorm:"column:name"`
	DailyRate float64 `gorm:"column:daily_rate"`
}

func (vehicleCategoryModel) TableName() string { return "vehicle_categories" }

func toDomainVehicle(m vehicleModel) *domain.Vehicle {
	return &domain.Vehicle{
		ID:                 m.ID,
		CategoryID:         m.CategoryID,
		RegistrationNumber: m.RegistrationNumber,
		Model:              m.Model,
		Make:               m.Make,
		Year:               m.Year,
		Status:             domain.VehicleStatus(m.Status),
		LastMaintenance:    m.LastMaintenance,
	}
}

func (r *VehicleRepository) Create(ctx context.Context, v *domain.Vehicle) (int64, error) {
	m := vehicleModel{
		CategoryID:         v.CategoryID,
		RegistrationNumber: v.RegistrationNumber,
		Model:              v.Model,
		Make:               v.Make,
		Year:               v.Year,
		Status:             string(v.Status),
		LastMaintenance:    v.LastMaintenance,
	}
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return 0, tx.Error
	}
	v.ID = m.ID
	return m.ID, nil
}

func (r *VehicleRepository) GetByID(ctx context.Context, id int64) (*domain.Vehicle, error) {
	var m vehicleModel
	tx := r.db.WithContext(ctx).Where("vehicle_id = ?", id).Take(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainVehicle(m), nil
}

func (r *VehicleRepository) CreateCategory(ctx context.Context, c *domain.VehicleCategory) (int64, error) {
	m := vehicleCategoryModel{Name: c.Name, DailyRate: c.DailyRate}
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return 0, tx.Error
	}
	c.ID = m.ID
	return m.ID, nil
}

// AvailableVehicle is a vehicle joined with its category's daily rate, as
// returned by the availability listing.
type AvailableVehicle struct {
	domain.Vehicle
	DailyRate float64
}

type availableVehicleRow struct {
	vehicleModel
	DailyRate float64 `gorm:"column:daily_rate"`
}

// GetAvailableVehicles lists vehicles in 'available' status with no
// non-deleted pending/active booking overlapping [start, end]. The overlap
// test is the same three-clause scan the booking workflow uses. Category and
// vehicle filters are optional (zero disables them).
func (r *VehicleRepository) GetAvailableVehicles(ctx context.Context, start, end time.Time, categoryID, vehicleID int64) ([]AvailableVehicle, error) {
	q := `
SELECT v.vehicle_id, v.category_id, v.registration_number, v.model, v.make,
       v.year, v.status, v.last_maintenance, vc.daily_rate
FROM vehicles v
JOIN vehicle_categories vc ON vc.category_id = v.category_id
WHERE v.status = ?
  AND NOT EXISTS (
    SELECT 1 FROM bookings b
    WHERE b.vehicle_id = v.vehicle_id
      AND b.is_deleted = ?
      AND b.status IN (?, ?)
      AND ((b.pickup_date BETWEEN ? AND ?)
        OR (b.return_date BETWEEN ? AND ?)
        OR (b.pickup_date <= ? AND b.return_date >= ?))
  )
`
	args := []any{
		string(domain.VehicleAvailable), false,
		string(domain.BookingPending), string(domain.BookingActive),
		start, end, start, end, start, end,
	}

	if categoryID != 0 {
		q += "  AND v.category_id = ?\n"
		args = append(args, categoryID)
	}
	if vehicleID != 0 {
		q += "  AND v.vehicle_id = ?\n"
		args = append(args, vehicleID)
	}

	var rows []availableVehicleRow
	tx := r.db.WithContext(ctx).Raw(q, args...).Scan(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]AvailableVehicle, 0, len(rows))
	for _, row := range rows {
		out = append(out, AvailableVehicle{
			Vehicle:   *toDomainVehicle(row.vehicleModel),
			DailyRate: row.DailyRate,
		})
	}
	return out, nil
}

func (r *VehicleRepository) UpdateStatus(ctx context.Context, vehicleID int64, status domain.VehicleStatus) (bool, error) {
	tx := r.db.WithContext(ctx).Model(&vehicleModel{}).
		Where("vehicle_id = ?", vehicleID).
		Update("status", string(status))
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

func (r *VehicleRepository) UpdateMaintenance(ctx context.Context, vehicleID int64, maintainedAt time.Time) (bool, error) {
	tx := r.db.WithContext(ctx).Model(&vehicleModel{}).
		Where("vehicle_id = ?", vehicleID).
		Update("last_maintenance", maintainedAt)
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}
