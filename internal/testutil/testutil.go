// Package testutil provides a migrated throwaway database for tests.
package testutil

import (
	"path/filepath"
	"testing"

	"github.com/xelth-com/linerecords/internal/database"
	"gorm.io/gorm"
)

// NewDB opens a migrated SQLite database in a per-test temp directory
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.OpenSQLite(filepath.Join(t.TempDir(), "linerecords_test.db"), true)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}
