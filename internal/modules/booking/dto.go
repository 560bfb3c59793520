package booking

type BookingRequest struct {
	UserID     int64   `json:"user_id" binding:"required"`
	VehicleID  int64   `json:"vehicle_id" binding:"required"`
	PickupDate string  `json:"pickup_date" binding:"required"`
	ReturnDate string  `json:"return_date" binding:"required"`
	TotalCost  float64 `json:"total_cost" binding:"gte=0"`
	Status     string  `json:"status"`
}

type BookingResponse struct {
	ID         int64   `json:"booking_id"`
	UserID     int64   `json:"user_id"`
	VehicleID  int64   `json:"vehicle_id"`
	PickupDate string  `json:"pickup_date"`
	ReturnDate string  `json:"return_date"`
	TotalCost  float64 `json:"total_cost"`
	Status     string  `json:"status"`
}
