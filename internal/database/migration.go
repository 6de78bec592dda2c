package database

import (
	"fmt"

	"github.com/Adrixx117/Investments/internal/models"

	"gorm.io/gorm"
)

// AutoMigrate runs database schema migrations for all models.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Document{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
