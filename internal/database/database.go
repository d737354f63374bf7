package database

import (
	"guidehub_backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Connect(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(dsn), &gorm.Config{})
}

// Migrate creates or updates the schema for every model.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Subscription{},
		&models.Guide{},
		&models.Comment{},
		&models.Rating{},
		&models.Notification{},
		&models.NewsletterSubscriber{},
		&models.Announcement{},
		&models.Setting{},
	)
}
