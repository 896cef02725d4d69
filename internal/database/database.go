package database

import (
	"mmry/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// InitDB opens the user database at path and runs migrations.
// Only operator accounts live here; cache contents are never persisted.
func InitDB(path string, level logger.LogLevel) error {
	// glebarez/sqlite is a pure Go implementation (no CGO required)
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(level),
	})
	if err != nil {
		return err
	}

	if err := db.AutoMigrate(&models.User{}); err != nil {
		return err
	}

	DB = db
	return nil
}

// GetDB returns the database connection
func GetDB() *gorm.DB {
	return DB
}
