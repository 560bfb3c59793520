package booking

import (
	"errors"
	"net/http"
	"strconv"

	"vehiclerental/internal/domain"
	"vehiclerental/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/bookings", h.CreateBooking)
	rg.GET("/bookings/:id", h.GetBooking)
	rg.PUT("/bookings/:id", h.UpdateBooking)
	rg.DELETE("/bookings/:id", h.CancelBooking)
	rg.GET("/reports/daily", h.GetDailyReport)
}

func (h *Handler) CreateBooking(c *gin.Context) {
	var req BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	bookingID, err := h.service.CreateBooking(c.Request.Context(), req)
	if err != nil {
		respondBookingError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"booking_id": bookingID})
}

func (h *Handler) GetBooking(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	b, err := h.service.GetBooking(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Booking not found")
			return
		}
		respondBookingError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"booking": BookingResponse{
		ID:         b.ID,
		UserID:     b.UserID,
		VehicleID:  b.VehicleID,
		PickupDate: b.PickupDate.Format(DateLayout),
		ReturnDate: b.ReturnDate.Format(DateLayout),
		TotalCost:  b.TotalCost,
		Status:     string(b.EffectiveStatus()),
	}})
}

func (h *Handler) UpdateBooking(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	found, err := h.service.UpdateBooking(c.Request.Context(), id, req)
	if err != nil {
		respondBookingError(c, err)
		return
	}
	if !found {
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Booking not found")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"updated": true})
}

func (h *Handler) CancelBooking(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	found, err := h.service.CancelBooking(c.Request.Context(), id)
	if err != nil {
		respondBookingError(c, err)
		return
	}
	if !found {
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Booking not found")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"cancelled": true})
}

func (h *Handler) GetDailyReport(c *gin.Context) {
	dateStr := c.Query("date")
	if dateStr == "" {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "date query parameter is required")
		return
	}

	var categoryID int64
	if raw := c.Query("category_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid category_id")
			return
		}
		categoryID = id
	}

	rows, err := h.service.GetDailyReport(c.Request.Context(), dateStr, categoryID)
	if err != nil {
		respondBookingError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"report": rows})
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid booking id")
		return 0, false
	}
	return id, true
}

// respondBookingError translates workflow errors to transport outcomes:
// malformed or invalid input and dangling references are 400s, conflicts are
// 409s, everything else is a 500.
func respondBookingError(c *gin.Context, err error) {
	var (
		parseErr      *domain.ParseError
		validationErr *domain.ValidationError
		referenceErr  *domain.ReferenceError
		conflictErr   *domain.ConflictError
	)

	switch {
	case errors.As(err, &parseErr), errors.As(err, &validationErr):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.As(err, &referenceErr):
		response.Error(c, http.StatusBadRequest, "REFERENCE_ERROR", err.Error())
	case errors.As(err, &conflictErr):
		response.Error(c, http.StatusConflict, "BOOKING_CONFLICT", err.Error())
	default:
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to process booking")
	}
}
