package config

import (
	"testing"

	"github.com/spf13/viper"
)

func newViper(values map[string]interface{}) *viper.Viper {
	v := viper.New()
	setDefaults(v)
	for k, val := range values {
		v.Set(k, val)
	}
	return v
}

func TestFromViperDefaults(t *testing.T) {
	cfg, err := FromViper(newViper(nil))
	if err != nil {
		t.Fatalf("FromViper failed: %v", err)
	}
	if cfg.Port != "3001" {
		t.Errorf("Expected default port 3001, got %s", cfg.Port)
	}
	if cfg.Database.Driver != "postgres" || cfg.Database.Database != "linerecords" {
		t.Errorf("Unexpected database defaults: %+v", cfg.Database)
	}
	if cfg.Storage.UseMinio() {
		t.Error("MinIO should be disabled without an endpoint")
	}
}

func TestFromViperOverrides(t *testing.T) {
	cfg, err := FromViper(newViper(map[string]interface{}{
		"DB_DRIVER":          "SQLite",
		"SQLITE_PATH":        "/tmp/x.db",
		"MINIO_ENDPOINT":     "minio:9000",
		"STORAGE_PUBLIC_URL": "https://cdn.local/",
	}))
	if err != nil {
		t.Fatalf("FromViper failed: %v", err)
	}
	if cfg.Database.Driver != "sqlite" || cfg.Database.SQLitePath != "/tmp/x.db" {
		t.Errorf("Unexpected database config: %+v", cfg.Database)
	}
	if !cfg.Storage.UseMinio() {
		t.Error("MinIO should be enabled")
	}
	if cfg.Storage.PublicURL != "https://cdn.local" {
		t.Errorf("Expected trailing slash trimmed, got %s", cfg.Storage.PublicURL)
	}
}

func TestFromViperRejectsDriver(t *testing.T) {
	if _, err := FromViper(newViper(map[string]interface{}{"DB_DRIVER": "mysql"})); err == nil {
		t.Error("Expected error for unsupported driver")
	}
}
