package vehicle

import (
	"errors"
	"net/http"
	"strconv"
	"time"

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
	rg.POST("/vehicles", h.CreateVehicle)
	rg.GET("/vehicles/availability", h.CheckAvailability)
	rg.GET("/vehicles/:id", h.GetVehicle)
	rg.PUT("/vehicles/:id/status", h.UpdateStatus)
	rg.PUT("/vehicles/:id/maintenance", h.UpdateMaintenance)
}

func (h *Handler) CreateVehicle(c *gin.Context) {
	var req CreateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	id, err := h.service.CreateVehicle(c.Request.Context(), req)
	if err != nil {
		respondVehicleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"vehicle_id": id})
}

func (h *Handler) GetVehicle(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	v, err := h.service.GetVehicle(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Vehicle not found")
			return
		}
		respondVehicleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"vehicle": toVehicleResponse(v, 0)})
}

func (h *Handler) CheckAvailability(c *gin.Context) {
	startDate := c.Query("start_date")
	endDate := c.Query("end_date")
	if startDate == "" || endDate == "" {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "start_date and end_date are required")
		return
	}

	categoryID, ok := optionalID(c, "category_id")
	if !ok {
		return
	}
	vehicleID, ok := optionalID(c, "vehicle_id")
	if !ok {
		return
	}

	vehicles, err := h.service.CheckAvailability(c.Request.Context(), startDate, endDate, categoryID, vehicleID)
	if err != nil {
		respondVehicleError(c, err)
		return
	}

	out := make([]VehicleResponse, 0, len(vehicles))
	for i := range vehicles {
		out = append(out, toVehicleResponse(&vehicles[i].Vehicle, vehicles[i].DailyRate))
	}
	response.Success(c, http.StatusOK, gin.H{"vehicles": out})
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	found, err := h.service.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		respondVehicleError(c, err)
		return
	}
	if !found {
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Vehicle not found")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"updated": true})
}

func (h *Handler) UpdateMaintenance(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req UpdateMaintenanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	found, err := h.service.UpdateMaintenance(c.Request.Context(), id, req.MaintainedAt)
	if err != nil {
		respondVehicleError(c, err)
		return
	}
	if !found {
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Vehicle not found")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"updated": true})
}

func toVehicleResponse(v *domain.Vehicle, dailyRate float64) VehicleResponse {
	resp := VehicleResponse{
		ID:                 v.ID,
		CategoryID:         v.CategoryID,
		RegistrationNumber: v.RegistrationNumber,
		Model:              v.Model,
		Make:               v.Make,
		Year:               v.Year,
		Status:             string(v.Status),
		NeedsMaintenance:   v.NeedsMaintenance(time.Now()),
		DailyRate:          dailyRate,
	}
	if v.LastMaintenance != nil {
		s := v.LastMaintenance.Format("2006-01-02")
		resp.LastMaintenance = &s
	}
	return resp
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid vehicle id")
		return 0, false
	}
	return id, true
}

func optionalID(c *gin.Context, name string) (int64, bool) {
	raw := c.Query(name)
	if raw == "" {
		return 0, true
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid "+name)
		return 0, false
	}
	return id, true
}

func respondVehicleError(c *gin.Context, err error) {
	var parseErr *domain.ParseError
	if errors.As(err, &parseErr) {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	_ = c.Error(err)
	response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to process vehicle request")
}
