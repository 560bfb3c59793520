package repository

import "gorm.io/gorm"

// Migrate creates or updates the schema for every table the repositories own.
// Referenced tables come first so foreign keys resolve.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&userModel{},
		&vehicleCategoryModel{},
		&vehicleModel{},
		&bookingModel{},
		&invoiceModel{},
		&emailLogModel{},
	)
}
