package postgres

import (
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Open(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(dsn), &gorm.Config{})
}

// Migrate creates or updates the schema. Idempotent.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&flowerRow{},
		&cartItemRow{},
		&addressRow{},
		&voucherGrantRow{},
		&orderRow{},
		&orderDetailRow{},
	)
}
