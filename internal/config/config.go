package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Port        string
	SeedOnStart bool
	LabelSuffix string
	JWTSecret   string // enables write protection when set
	Database    DatabaseConfig
	Log         LogConfig
	Storage     StorageConfig
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Driver     string // postgres or sqlite
	Host       string
	Port       string
	Username   string
	Password   string
	Database   string
	SQLitePath string
	Quiet      bool
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string
	Format string // text or json
	File   string
}

// StorageConfig selects where uploaded photos and BOM images go.
// MinIO is used when an endpoint is set, the local directory otherwise.
type StorageConfig struct {
	Dir            string
	PublicURL      string // prefix of served upload URLs
	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioUseSSL    bool
}

// UseMinio reports whether object storage is configured
func (s StorageConfig) UseMinio() bool {
	return s.MinioEndpoint != ""
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "3001")
	v.SetDefault("SEED_ON_START", true)
	v.SetDefault("LABEL_SUFFIX", "")
	v.SetDefault("JWT_SECRET", "")

	v.SetDefault("DB_DRIVER", "postgres")
	v.SetDefault("PG_HOST", "localhost")
	v.SetDefault("PG_PORT", "5432")
	v.SetDefault("PG_USERNAME", "postgres")
	v.SetDefault("PG_PASSWORD", "")
	v.SetDefault("PG_DATABASE", "linerecords")
	v.SetDefault("SQLITE_PATH", "linerecords.db")
	v.SetDefault("DB_QUIET", false)

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
	v.SetDefault("LOG_FILE", "")

	v.SetDefault("STORAGE_DIR", "./uploads")
	v.SetDefault("STORAGE_PUBLIC_URL", "/uploads")
	v.SetDefault("MINIO_ENDPOINT", "")
	v.SetDefault("MINIO_ACCESS_KEY", "")
	v.SetDefault("MINIO_SECRET_KEY", "")
	v.SetDefault("MINIO_BUCKET", "linerecords")
	v.SetDefault("MINIO_USE_SSL", false)
}

// Load loads configuration from .env, an optional config.yaml and the environment.
// Environment variables win over the file.
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")
	setDefaults(v)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	return FromViper(v)
}

// FromViper builds a Config from an already populated viper instance
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Port:        v.GetString("PORT"),
		SeedOnStart: v.GetBool("SEED_ON_START"),
		LabelSuffix: v.GetString("LABEL_SUFFIX"),
		JWTSecret:   v.GetString("JWT_SECRET"),
		Database: DatabaseConfig{
			Driver:     strings.ToLower(v.GetString("DB_DRIVER")),
			Host:       v.GetString("PG_HOST"),
			Port:       v.GetString("PG_PORT"),
			Username:   v.GetString("PG_USERNAME"),
			Password:   v.GetString("PG_PASSWORD"),
			Database:   v.GetString("PG_DATABASE"),
			SQLitePath: v.GetString("SQLITE_PATH"),
			Quiet:      v.GetBool("DB_QUIET"),
		},
		Log: LogConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
			File:   v.GetString("LOG_FILE"),
		},
		Storage: StorageConfig{
			Dir:            v.GetString("STORAGE_DIR"),
			PublicURL:      strings.TrimRight(v.GetString("STORAGE_PUBLIC_URL"), "/"),
			MinioEndpoint:  v.GetString("MINIO_ENDPOINT"),
			MinioAccessKey: v.GetString("MINIO_ACCESS_KEY"),
			MinioSecretKey: v.GetString("MINIO_SECRET_KEY"),
			MinioBucket:    v.GetString("MINIO_BUCKET"),
			MinioUseSSL:    v.GetBool("MINIO_USE_SSL"),
		},
	}

	switch cfg.Database.Driver {
	case "postgres", "sqlite":
	default:
		return nil, fmt.Errorf("DB_DRIVER must be postgres or sqlite, got %q", cfg.Database.Driver)
	}
	if cfg.Port == "" {
		return nil, fmt.Errorf("PORT is required")
	}

	return cfg, nil
}
