package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Store drivers accepted by STORE_DRIVER.
const (
	DriverPostgres = "postgres"
	DriverMongoDB  = "mongodb"
	DriverMemory   = "memory"
)

// Config represents the full application configuration surface.
type Config struct {
	Server   ServerConfig
	Log      LogConfig
	Store    StoreConfig
	Postgres PostgresConfig
	MongoDB  MongoDBConfig
	Auth     AuthConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port string
}

// LogConfig selects the zap level.
type LogConfig struct {
	Level string
}

// StoreConfig picks the persistence backend.
type StoreConfig struct {
	Driver string
}

// PostgresConfig holds settings for the relational store.
type PostgresConfig struct {
	DSN         string
	AutoMigrate bool
}

// MongoDBConfig holds settings for MongoDB.
type MongoDBConfig struct {
	URI    string
	DBName string
}

// AuthConfig configures token verification and the identity service.
type AuthConfig struct {
	JWTSecret      string
	JWTIssuer      string
	ServiceURL     string
	ServiceTimeout time.Duration
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// Ignore the returned error here; missing .env files are acceptable when
		// configuration comes from the environment directly.
		_ = godotenv.Load()
	}

	autoMigrate, err := strconv.ParseBool(getenvWithDefault("DB_AUTO_MIGRATE", "true"))
	if err != nil {
		return nil, fmt.Errorf("DB_AUTO_MIGRATE: %w", err)
	}
	timeout, err := time.ParseDuration(getenvWithDefault("AUTH_SERVICE_TIMEOUT", "15s"))
	if err != nil {
		return nil, fmt.Errorf("AUTH_SERVICE_TIMEOUT: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getenvWithDefault("APP_PORT", "8080"),
		},
		Log: LogConfig{
			Level: getenvWithDefault("LOG_LEVEL", "info"),
		},
		Store: StoreConfig{
			Driver: strings.ToLower(getenvWithDefault("STORE_DRIVER", DriverPostgres)),
		},
		Postgres: PostgresConfig{
			DSN:         os.Getenv("DATABASE_URL"),
			AutoMigrate: autoMigrate,
		},
		MongoDB: MongoDBConfig{
			URI:    os.Getenv("MONGODB_URI"),
			DBName: getenvWithDefault("MONGODB_DB_NAME", "leafline"),
		},
		Auth: AuthConfig{
			JWTSecret:      os.Getenv("AUTH_JWT_SECRET"),
			JWTIssuer:      os.Getenv("AUTH_JWT_ISSUER"),
			ServiceURL:     os.Getenv("AUTH_SERVICE_URL"),
			ServiceTimeout: timeout,
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}

	switch c.Store.Driver {
	case DriverPostgres:
		if c.Postgres.DSN == "" {
			return errors.New("DATABASE_URL must be provided when STORE_DRIVER=postgres")
		}
	case DriverMongoDB:
		if c.MongoDB.URI == "" {
			return errors.New("MONGODB_URI must be provided when STORE_DRIVER=mongodb")
		}
		if c.MongoDB.DBName == "" {
			return errors.New("MONGODB_DB_NAME must not be empty")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("STORE_DRIVER %q is not one of postgres, mongodb, memory", c.Store.Driver)
	}

	if c.Auth.JWTSecret == "" && c.Auth.ServiceURL == "" {
		return errors.New("AUTH_JWT_SECRET or AUTH_SERVICE_URL must be provided")
	}

	return nil
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
