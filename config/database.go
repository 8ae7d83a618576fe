package config

import (
	"fmt"
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/andrewpaige1/kanadeck-api/models"
)

// Connect opens postgres when DB_URL is set and a local sqlite file otherwise,
// then migrates the schema.
func Connect(env Environment) (*gorm.DB, error) {
	var dialector gorm.Dialector
	if env.DatabaseURL != "" {
		dialector = postgres.Open(env.DatabaseURL)
	} else {
		log.Printf("Connect: DB_URL not set, using sqlite database %s", env.SQLitePath)
		dialector = sqlite.Open(env.SQLitePath)
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(&models.User{}, &models.SavedDeck{}, &models.Setting{}, &models.ReviewResult{})
	if err != nil {
		return fmt.Errorf("failed to auto migrate database: %w", err)
	}
	return nil
}
