package database

import (
	"github.com/s/courseEnrollment/internal/models"
	"gorm.io/gorm"
)

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.TableLine{},
	)
}
