package vehicle

type CreateVehicleRequest struct {
	CategoryID         int64  `json:"category_id" binding:"required"`
	RegistrationNumber string `json:"registration_number" binding:"required"`
	Model              string `json:"model" binding:"required"`
	Make               string `json:"make" binding:"required"`
	Year               int    `json:"year" binding:"required,gte=1980"`
	Status             string `json:"status"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type UpdateMaintenanceRequest struct {
	MaintainedAt string `json:"maintained_at" binding:"required"`
}

type VehicleResponse struct {
	ID                 int64   `json:"vehicle_id"`
	CategoryID         int64   `json:"category_id"`
	RegistrationNumber string  `json:"registration_number"`
	Model              string  `json:"model"`
	Make               string  `json:"make"`
	Year               int     `json:"year"`
	Status             string  `json:"status"`
	LastMaintenance    *string `json:"last_maintenance,omitempty"`
	NeedsMaintenance   bool    `json:"needs_maintenance"`
	DailyRate          float64 `json:"daily_rate,omitempty"`
}
