package config

import (
	"path/filepath"
	"testing"

	"github.com/andrewpaige1/kanadeck-api/models"
)

func TestConnectSQLite(t *testing.T) {
	env := Environment{SQLitePath: filepath.Join(t.TempDir(), "kanadeck.db")}

	db, err := Connect(env)
	if err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	for _, model := range []interface{}{&models.User{}, &models.SavedDeck{}, &models.Setting{}, &models.ReviewResult{}} {
		if !db.Migrator().HasTable(model) {
			t.Errorf("table for %T not migrated", model)
		}
	}
}
