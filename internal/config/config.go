package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/s/courseEnrollment/internal/auth"
)

// Storage drivers.
const (
	DriverFile     = "file"
	DriverPostgres = "postgres"
)

const defaultSessionKey = "super-secret-default-key"

type Config struct {
	Port           string
	DataDir        string
	StorageDriver  string
	DatabaseURL    string
	SessionKey     string
	CookieSecure   bool
	AllowedOrigin  string
	PasswordScheme string
}

// Load reads .env (if present) and the environment. A missing .env is not an error.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("failed to load .env: %w", err)
	}
	return FromEnv()
}

// FromEnv builds the configuration from environment variables only.
func FromEnv() (Config, error) {
	cfg := Config{
		Port:           getEnv("PORT", "8080"),
		DataDir:        getEnv("DATA_DIR", "data"),
		StorageDriver:  getEnv("STORAGE_DRIVER", DriverFile),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		SessionKey:     os.Getenv("SESSION_KEY"),
		AllowedOrigin:  getEnv("ALLOWED_ORIGIN", "*"),
		PasswordScheme: getEnv("PASSWORD_SCHEME", auth.SchemePlain),
	}

	secure, err := strconv.ParseBool(getEnv("COOKIE_SECURE", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid COOKIE_SECURE: %w", err)
	}
	cfg.CookieSecure = secure

	switch cfg.StorageDriver {
	case DriverFile:
	case DriverPostgres:
		if cfg.DatabaseURL == "" {
			return Config{}, fmt.Errorf("DATABASE_URL is required when STORAGE_DRIVER=%s", DriverPostgres)
		}
	default:
		return Config{}, fmt.Errorf("unknown STORAGE_DRIVER %q", cfg.StorageDriver)
	}

	if _, err := auth.NewPasswordHasher(cfg.PasswordScheme); err != nil {
		return Config{}, fmt.Errorf("invalid PASSWORD_SCHEME: %w", err)
	}

	if cfg.SessionKey == "" {
		cfg.SessionKey = defaultSessionKey // только для разработки
		log.Println("Warning: SESSION_KEY is not set, using the development default.")
	}

	return cfg, nil
}

// TablePath returns the file of a table under DataDir.
func (c Config) TablePath(table string) string {
	return filepath.Join(c.DataDir, table+".txt")
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
