package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/evergreenwebsolutions/onboarding/internal/models"
)

// Open connects to Postgres and migrates the schema. The returned
// handle owns its connection pool; it is created once at process start
// and passed into each repository explicitly.
func Open(dsn string) (*gorm.DB, error) {
	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("db: connect: %w", err)
	}
	if err := gdb.AutoMigrate(
		&models.User{},
		&models.Submission{},
		&models.FileMeta{},
		&models.Notification{},
	); err != nil {
		return nil, fmt.Errorf("db: migrate: %w", err)
	}
	return gdb, nil
}
