package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"vehiclerental/internal/config"
	"vehiclerental/internal/database"
	"vehiclerental/internal/middleware"
	"vehiclerental/internal/modules/booking"
	"vehiclerental/internal/modules/user"
	"vehiclerental/internal/modules/vehicle"
	"vehiclerental/internal/repository"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	cfg := config.Load()

	db, err := database.Connect(cfg.DatabaseDSN)
	if err != nil {
		log.Fatal(err)
	}

	userRepo := repository.NewUserRepository(db)
	vehicleRepo := repository.NewVehicleRepository(db)
	bookingRepo := repository.NewBookingRepository(db)

	userService := user.NewService(userRepo)
	userHandler := user.NewHandler(userService)

	vehicleService := vehicle.NewService(vehicleRepo)
	vehicleHandler := vehicle.NewHandler(vehicleService)

	bookingService := booking.NewService(bookingRepo)
	bookingHandler := booking.NewHandler(bookingService)

	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorLogger())

	v1 := r.Group("/api/v1")
	{
		userHandler.RegisterRoutes(v1)
		vehicleHandler.RegisterRoutes(v1)
		bookingHandler.RegisterRoutes(v1)
	}

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
