package domain

import (
	"fmt"
	"time"
)

type VehicleStatus string

const (
	VehicleAvailable   VehicleStatus = "available"
	VehicleRented      VehicleStatus = "rented"
	VehicleMaintenance VehicleStatus = "maintenance"
)

func ParseVehicleStatus(s string) (VehicleStatus, error) {
	switch st := VehicleStatus(s); st {
	case VehicleAvailable, VehicleRented, VehicleMaintenance:
		return st, nil
	}
	return "", fmt.Errorf("unknown vehicle status %q", s)
}

// MaintenanceInterval is how long a vehicle may go without servicing.
const MaintenanceInterval = 30 * 24 * time.Hour

type Vehicle struct {
	ID                 int64
	CategoryID         int64
	RegistrationNumber string
	Model              string
	Make               string
	Year               int
	Status             VehicleStatus
	LastMaintenance    *time.Time
}

func (v *Vehicle) NeedsMaintenance(now time.Time) bool {
	if v.LastMaintenance == nil {
		return true
	}
	return now.Sub(*v.LastMaintenance) >= MaintenanceInterval
}

type VehicleCategory struct {
	ID        int64
	Name      string
	DailyRate float64
}
