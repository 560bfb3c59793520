package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"vehiclerental/internal/database"
	"vehiclerental/internal/domain"
	"vehiclerental/internal/middleware"
	"vehiclerental/internal/modules/booking"
	"vehiclerental/internal/modules/user"
	"vehiclerental/internal/modules/vehicle"
	"vehiclerental/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type E2ETestSuite struct {
	router    *gin.Engine
	db        *gorm.DB
	userID    int64
	vehicleID int64
}

type TestResponse struct {
	Success bool                   `json:"success"`
	Data    map[string]interface{} `json:"data,omitempty"`
	Error   *ErrorDetail           `json:"error,omitempty"`
}

type ErrorDetail struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

func setupTestSuite(t *testing.T) *E2ETestSuite {
	gin.SetMode(gin.TestMode)

	db, err := database.Connect(":memory:")
	require.NoError(t, err, "Failed to connect to test database")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, repository.Migrate(db))

	userRepo := repository.NewUserRepository(db)
	vehicleRepo := repository.NewVehicleRepository(db)
	bookingRepo := repository.NewBookingRepository(db)

	userHandler := user.NewHandler(user.NewService(userRepo))
	vehicleHandler := vehicle.NewHandler(vehicle.NewService(vehicleRepo))
	bookingHandler := booking.NewHandler(booking.NewService(bookingRepo))

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS())
	router.Use(middleware.ErrorLogger())

	v1 := router.Group("/api/v1")
	userHandler.RegisterRoutes(v1)
	vehicleHandler.RegisterRoutes(v1)
	bookingHandler.RegisterRoutes(v1)

	suite := &E2ETestSuite{router: router, db: db}

	ctx := t.Context()
	suite.userID, err = userRepo.Create(ctx, &domain.User{
		Email:        "renter@example.com",
		FirstName:    "Rita",
		LastName:     "Renter",
		PasswordHash: "x",
	})
	require.NoError(t, err)

	catID, err := vehicleRepo.CreateCategory(ctx, &domain.VehicleCategory{Name: "Economy", DailyRate: 45})
	require.NoError(t, err)
	suite.vehicleID, err = vehicleRepo.Create(ctx, &domain.Vehicle{
		CategoryID:         catID,
		RegistrationNumber: "REG-1000",
		Model:              "Toyota Sedan",
		Make:               "Toyota",
		Year:               2024,
		Status:             domain.VehicleAvailable,
	})
	require.NoError(t, err)

	return suite
}

func (s *E2ETestSuite) request(t *testing.T, method, path string, body interface{}) (*httptest.ResponseRecorder, TestResponse) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var parsed TestResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &parsed), "body: %s", w.Body.String())
	return w, parsed
}

func bookingPayload(s *E2ETestSuite, pickupIn, returnIn time.Duration) map[string]interface{} {
	now := time.Now().UTC()
	return map[string]interface{}{
		"user_id":     s.userID,
		"vehicle_id":  s.vehicleID,
		"pickup_date": now.Add(pickupIn).Format(booking.DateLayout),
		"return_date": now.Add(returnIn).Format(booking.DateLayout),
		"total_cost":  100.0,
	}
}

func TestBookingLifecycle(t *testing.T) {
	s := setupTestSuite(t)

	w, resp := s.request(t, http.MethodPost, "/api/v1/bookings", bookingPayload(s, 24*time.Hour, 48*time.Hour))
	require.Equal(t, http.StatusCreated, w.Code, "body: %s", w.Body.String())
	require.True(t, resp.Success)
	bookingID := int64(resp.Data["booking_id"].(float64))

	w, resp = s.request(t, http.MethodGet, fmt.Sprintf("/api/v1/bookings/%d", bookingID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	b := resp.Data["booking"].(map[string]interface{})
	assert.Equal(t, "pending", b["status"])
	assert.Equal(t, 100.0, b["total_cost"])

	payload := bookingPayload(s, 36*time.Hour, 60*time.Hour)
	payload["total_cost"] = 150.0
	w, resp = s.request(t, http.MethodPut, fmt.Sprintf("/api/v1/bookings/%d", bookingID), payload)
	require.Equal(t, http.StatusOK, w.Code, "body: %s", w.Body.String())
	assert.Equal(t, true, resp.Data["updated"])

	w, resp = s.request(t, http.MethodDelete, fmt.Sprintf("/api/v1/bookings/%d", bookingID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, resp.Data["cancelled"])

	// the record survives as cancelled
	w, resp = s.request(t, http.MethodGet, fmt.Sprintf("/api/v1/bookings/%d", bookingID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	b = resp.Data["booking"].(map[string]interface{})
	assert.Equal(t, "cancelled", b["status"])
}

func TestOverlappingBookingIsRejected(t *testing.T) {
	s := setupTestSuite(t)

	w, _ := s.request(t, http.MethodPost, "/api/v1/bookings", bookingPayload(s, 24*time.Hour, 72*time.Hour))
	require.Equal(t, http.StatusCreated, w.Code, "body: %s", w.Body.String())

	w, resp := s.request(t, http.MethodPost, "/api/v1/bookings", bookingPayload(s, 48*time.Hour, 96*time.Hour))
	assert.Equal(t, http.StatusConflict, w.Code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "BOOKING_CONFLICT", resp.Error.Code)
	assert.Equal(t, "Vehicle not available for selected dates", resp.Error.Message)

	var cnt int64
	s.db.Table("bookings").Count(&cnt)
	assert.Equal(t, int64(1), cnt, "the rejected booking must leave no rows")
}

func TestZeroLengthWindowIsRejected(t *testing.T) {
	s := setupTestSuite(t)

	payload := bookingPayload(s, 24*time.Hour, 24*time.Hour)
	w, resp := s.request(t, http.MethodPost, "/api/v1/bookings", payload)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
	assert.Contains(t, resp.Error.Message, "Return date must be after pickup date")
}

func TestBookingTooFarInAdvanceIsRejected(t *testing.T) {
	s := setupTestSuite(t)

	w, resp := s.request(t, http.MethodPost, "/api/v1/bookings",
		bookingPayload(s, 9*24*time.Hour, 10*24*time.Hour))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.NotNil(t, resp.Error)
	assert.Contains(t, resp.Error.Message, "Cannot book more than 7 days in advance")
}

func TestCancellingActiveBookingIsRejected(t *testing.T) {
	s := setupTestSuite(t)

	w, resp := s.request(t, http.MethodPost, "/api/v1/bookings", bookingPayload(s, 24*time.Hour, 48*time.Hour))
	require.Equal(t, http.StatusCreated, w.Code)
	bookingID := int64(resp.Data["booking_id"].(float64))

	require.NoError(t, s.db.Exec("UPDATE bookings SET status = 'active' WHERE booking_id = ?", bookingID).Error)

	w, resp = s.request(t, http.MethodDelete, fmt.Sprintf("/api/v1/bookings/%d", bookingID), nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "BOOKING_CONFLICT", resp.Error.Code)
	assert.Equal(t, "Cannot delete an active booking", resp.Error.Message)

	var cnt int64
	s.db.Table("invoices").Where("booking_id = ?", bookingID).Count(&cnt)
	assert.Equal(t, int64(1), cnt, "the invoice must survive a rejected cancel")
}

func TestConcurrentBookingsOnlyOneSucceeds(t *testing.T) {
	s := setupTestSuite(t)

	payloads := []map[string]interface{}{
		bookingPayload(s, 24*time.Hour, 72*time.Hour),
		bookingPayload(s, 48*time.Hour, 96*time.Hour),
	}

	codes := make([]int, len(payloads))
	var wg sync.WaitGroup
	for i, p := range payloads {
		wg.Add(1)
		go func(i int, p map[string]interface{}) {
			defer wg.Done()

			var buf bytes.Buffer
			if err := json.NewEncoder(&buf).Encode(p); err != nil {
				return
			}
			req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", &buf)
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			s.router.ServeHTTP(w, req)
			codes[i] = w.Code
		}(i, p)
	}
	wg.Wait()

	created, conflicted := 0, 0
	for _, code := range codes {
		switch code {
		case http.StatusCreated:
			created++
		case http.StatusConflict:
			conflicted++
		default:
			t.Fatalf("unexpected status %d", code)
		}
	}
	assert.Equal(t, 1, created)
	assert.Equal(t, 1, conflicted)

	var cnt int64
	s.db.Table("bookings").Where("is_deleted = ?", false).Count(&cnt)
	assert.Equal(t, int64(1), cnt)
}

func TestBookingUnknownUserIsReferenceError(t *testing.T) {
	s := setupTestSuite(t)

	payload := bookingPayload(s, 24*time.Hour, 48*time.Hour)
	payload["user_id"] = 9999
	w, resp := s.request(t, http.MethodPost, "/api/v1/bookings", payload)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "REFERENCE_ERROR", resp.Error.Code)
	assert.Equal(t, "User with ID 9999 does not exist", resp.Error.Message)
}

func TestBookingNotFoundPaths(t *testing.T) {
	s := setupTestSuite(t)

	w, resp := s.request(t, http.MethodGet, "/api/v1/bookings/4242", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "NOT_FOUND", resp.Error.Code)

	w, _ = s.request(t, http.MethodPut, "/api/v1/bookings/4242", bookingPayload(s, 24*time.Hour, 48*time.Hour))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = s.request(t, http.MethodDelete, "/api/v1/bookings/4242", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = s.request(t, http.MethodGet, "/api/v1/bookings/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestVehicleAvailabilityListing(t *testing.T) {
	s := setupTestSuite(t)

	w, resp := s.request(t, http.MethodPost, "/api/v1/bookings", bookingPayload(s, 24*time.Hour, 72*time.Hour))
	require.Equal(t, http.StatusCreated, w.Code)

	now := time.Now().UTC()
	start := now.Add(24 * time.Hour).Format("2006-01-02")
	end := now.Add(48 * time.Hour).Format("2006-01-02")

	w, resp = s.request(t, http.MethodGet,
		fmt.Sprintf("/api/v1/vehicles/availability?start_date=%s&end_date=%s", start, end), nil)
	require.Equal(t, http.StatusOK, w.Code, "body: %s", w.Body.String())
	vehicles := resp.Data["vehicles"].([]interface{})
	assert.Empty(t, vehicles, "the only vehicle is booked over that window")

	farStart := now.Add(30 * 24 * time.Hour).Format("2006-01-02")
	farEnd := now.Add(32 * 24 * time.Hour).Format("2006-01-02")
	w, resp = s.request(t, http.MethodGet,
		fmt.Sprintf("/api/v1/vehicles/availability?start_date=%s&end_date=%s", farStart, farEnd), nil)
	require.Equal(t, http.StatusOK, w.Code)
	vehicles = resp.Data["vehicles"].([]interface{})
	assert.Len(t, vehicles, 1)
}

func TestUserCRUD(t *testing.T) {
	s := setupTestSuite(t)

	w, resp := s.request(t, http.MethodPost, "/api/v1/users", map[string]interface{}{
		"email":      "short@example.com",
		"first_name": "Short",
		"last_name":  "Password",
		"password":   "nope",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)

	w, resp = s.request(t, http.MethodPost, "/api/v1/users", map[string]interface{}{
		"email":      "new@example.com",
		"first_name": "New",
		"last_name":  "Person",
		"password":   "demo1234",
	})
	require.Equal(t, http.StatusCreated, w.Code, "body: %s", w.Body.String())
	userID := int64(resp.Data["user_id"].(float64))

	w, resp = s.request(t, http.MethodGet, fmt.Sprintf("/api/v1/users/%d", userID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	u := resp.Data["user"].(map[string]interface{})
	assert.Equal(t, "new@example.com", u["email"])
	assert.Equal(t, "New Person", u["full_name"])

	w, _ = s.request(t, http.MethodPut, fmt.Sprintf("/api/v1/users/%d", userID), map[string]interface{}{
		"email":      "renamed@example.com",
		"first_name": "Renamed",
		"last_name":  "Person",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = s.request(t, http.MethodDelete, fmt.Sprintf("/api/v1/users/%d", userID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = s.request(t, http.MethodGet, fmt.Sprintf("/api/v1/users/%d", userID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDailyReportEndpoint(t *testing.T) {
	s := setupTestSuite(t)

	w, _ := s.request(t, http.MethodPost, "/api/v1/bookings", bookingPayload(s, 24*time.Hour, 48*time.Hour))
	require.Equal(t, http.StatusCreated, w.Code)

	day := time.Now().UTC().Add(24 * time.Hour).Format("2006-01-02")
	w, resp := s.request(t, http.MethodGet, "/api/v1/reports/daily?date="+day, nil)
	require.Equal(t, http.StatusOK, w.Code, "body: %s", w.Body.String())

	report := resp.Data["report"].([]interface{})
	require.Len(t, report, 1)
	row := report[0].(map[string]interface{})
	assert.Equal(t, "Economy", row["category_name"])
	assert.Equal(t, 1.0, row["booking_count"])
	assert.Equal(t, 100.0, row["total_revenue"])

	w, resp = s.request(t, http.MethodGet, "/api/v1/reports/daily", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
