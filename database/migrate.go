package database

import (
	"fmt"

	"ehandout_backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Connect opens a GORM connection to Postgres. TranslateError turns
// driver unique-index violations into gorm.ErrDuplicatedKey so services
// can map them to a conflict.
func Connect(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// AutoMigrate migrates all models.
func AutoMigrate(db *gorm.DB) error {
	// uuid_generate_v4 defaults need the extension in place first.
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
		return fmt.Errorf("failed to create uuid extension: %w", err)
	}

	return db.AutoMigrate(
		&models.Vendor{},
		&models.User{},
		&models.InvalidatedToken{},
		&models.Manager{},
		&models.Contact{},
	)
}
