package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"vehiclerental/internal/config"
	"vehiclerental/internal/database"
	"vehiclerental/internal/domain"
	"vehiclerental/internal/repository"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	cfg := config.Load()

	db, err := database.Connect(cfg.DatabaseDSN)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running migrations...")
	if err := repository.Migrate(db); err != nil {
		log.Fatal("Migrate failed:", err)
	}

	// Cleanup old data (children first so foreign keys don't complain)
	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM email_logs")
	db.Exec("DELETE FROM invoices")
	db.Exec("DELETE FROM bookings")
	db.Exec("DELETE FROM vehicles")
	db.Exec("DELETE FROM vehicle_categories")
	db.Exec("DELETE FROM users")

	ctx := context.Background()
	userRepo := repository.NewUserRepository(db)
	vehicleRepo := repository.NewVehicleRepository(db)

	log.Println("Creating users...")
	hash, _ := bcrypt.GenerateFromPassword([]byte("demo1234"), bcrypt.DefaultCost)
	for i := 1; i <= 10; i++ {
		u := domain.User{
			Email:        fmt.Sprintf("user%d@example.com", i),
			FirstName:    fmt.Sprintf("User%d", i),
			LastName:     fmt.Sprintf("Test%d", i),
			PasswordHash: string(hash),
		}
		if _, err := userRepo.Create(ctx, &u); err != nil {
			log.Fatal("user seed failed:", err)
		}
	}

	log.Println("Creating vehicle categories...")
	categories := []domain.VehicleCategory{
		{Name: "Economy", DailyRate: 45.0},
		{Name: "Standard", DailyRate: 75.0},
		{Name: "Premium", DailyRate: 130.0},
	}
	categoryIDs := make([]int64, 0, len(categories))
	for i := range categories {
		id, err := vehicleRepo.CreateCategory(ctx, &categories[i])
		if err != nil {
			log.Fatal("category seed failed:", err)
		}
		categoryIDs = append(categoryIDs, id)
	}

	log.Println("Creating vehicles...")
	makes := []string{"Toyota", "Honda", "Ford", "Chevrolet", "Nissan"}
	models := []string{"Sedan", "SUV", "Truck", "Compact", "Luxury"}
	currentYear := time.Now().Year()

	for i := 0; i < 15; i++ {
		maintained := time.Now().AddDate(0, 0, -rand.Intn(365)-1)
		v := domain.Vehicle{
			CategoryID:         categoryIDs[i%len(categoryIDs)],
			RegistrationNumber: fmt.Sprintf("REG-%d", 1000+i),
			Model:              fmt.Sprintf("%s %s", makes[i%len(makes)], models[i%len(models)]),
			Make:               makes[i%len(makes)],
			Year:               currentYear - rand.Intn(6),
			Status:             domain.VehicleAvailable,
			LastMaintenance:    &maintained,
		}
		if _, err := vehicleRepo.Create(ctx, &v); err != nil {
			log.Fatal("vehicle seed failed:", err)
		}
	}

	log.Println("Seed complete: 10 users, 3 categories, 15 vehicles")
}
