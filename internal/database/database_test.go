package database

import (
	"path/filepath"
	"testing"

	"github.com/xelth-com/linerecords/internal/config"
	"github.com/xelth-com/linerecords/internal/models"
)

func TestConnectSQLiteAndMigrate(t *testing.T) {
	db, err := Connect(config.DatabaseConfig{
		Driver:     "sqlite",
		SQLitePath: filepath.Join(t.TempDir(), "migrate_test.db"),
		Quiet:      true,
	})
	if err != nil {
		t.Fatalf("Connect failed: %v", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		t.Fatalf("Migrate failed: %v", err)
	}
	// second run must be a no-op
	if err := db.Migrate(); err != nil {
		t.Fatalf("Second Migrate failed: %v", err)
	}

	for _, m := range models.All() {
		if !db.Migrator().HasTable(m) {
			t.Errorf("Expected table for %T", m)
		}
	}
}

func TestConnectRejectsDriver(t *testing.T) {
	if _, err := Connect(config.DatabaseConfig{Driver: "oracle"}); err == nil {
		t.Error("Expected error for unsupported driver")
	}
}
