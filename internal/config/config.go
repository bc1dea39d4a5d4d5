package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
// It is loaded once at startup and passed to each component.
type Config struct {
	// Server configuration
	Port         string
	Env          string
	CORSOrigins  string
	ExposeErrors bool

	// Database configuration
	DBType            string // mysql, postgres, sqlite, sqlserver, etc.
	DBHost            string
	DBPort            string
	DBDatabase        string
	DBUser            string
	DBPassword        string
	DBConnectionLimit int
	DBLogLevel        string

	// Auth configuration
	JWTSecret  string
	TokenTTL   time.Duration
	BcryptCost int

	// Upload configuration
	UploadsDir     string
	UploadsPrefix  string
	MaxUploadBytes int64
}

// IsProduction reports whether ENV is production
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

// defaultDBPorts are used when DB_PORT is not set
var defaultDBPorts = map[string]string{
	"mysql":      "3306",
	"mariadb":    "3306",
	"postgres":   "5432",
	"postgresql": "5432",
	"sqlserver":  "1433",
	"mssql":      "1433",
}

// Load loads configuration from an optional .env file and environment variables
func Load() (*Config, error) {
	envFile := viper.New()
	envFile.AutomaticEnv()
	envFile.SetDefault("ENV_FILE", ".env")
	if err := godotenv.Load(envFile.GetString("ENV_FILE")); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load env file: %w", err)
	}

	return FromViper(newViper())
}

// newViper builds a viper instance bound to the environment with defaults
func newViper() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", "3001")
	v.SetDefault("ENV", "development")
	v.SetDefault("CORS_ORIGINS", "*")
	v.SetDefault("EXPOSE_ERRORS", false)

	v.SetDefault("DB_TYPE", "sqlite")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_DATABASE", "recipes.db")
	v.SetDefault("DB_CONNECTION_LIMIT", 10)
	v.SetDefault("DB_LOG_LEVEL", "warn")

	v.SetDefault("TOKEN_TTL", "168h")
	v.SetDefault("BCRYPT_COST", 12)

	v.SetDefault("UPLOADS_DIR", "uploads")
	v.SetDefault("UPLOADS_PREFIX", "/uploads")
	v.SetDefault("MAX_UPLOAD_BYTES", 10*1024*1024)

	return v
}

// FromViper builds and validates a Config from v
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Port:              v.GetString("PORT"),
		Env:               v.GetString("ENV"),
		CORSOrigins:       v.GetString("CORS_ORIGINS"),
		ExposeErrors:      v.GetBool("EXPOSE_ERRORS"),
		DBType:            strings.ToLower(v.GetString("DB_TYPE")),
		DBHost:            v.GetString("DB_HOST"),
		DBPort:            v.GetString("DB_PORT"),
		DBDatabase:        v.GetString("DB_DATABASE"),
		DBUser:            v.GetString("DB_USER"),
		DBPassword:        v.GetString("DB_PASSWORD"),
		DBConnectionLimit: v.GetInt("DB_CONNECTION_LIMIT"),
		DBLogLevel:        strings.ToLower(v.GetString("DB_LOG_LEVEL")),
		JWTSecret:         v.GetString("JWT_SECRET"),
		TokenTTL:          v.GetDuration("TOKEN_TTL"),
		BcryptCost:        v.GetInt("BCRYPT_COST"),
		UploadsDir:        v.GetString("UPLOADS_DIR"),
		UploadsPrefix:     strings.TrimRight(v.GetString("UPLOADS_PREFIX"), "/"),
		MaxUploadBytes:    v.GetInt64("MAX_UPLOAD_BYTES"),
	}

	if cfg.DBPort == "" {
		cfg.DBPort = defaultDBPorts[cfg.DBType]
	}

	// Validate required fields
	if cfg.DBDatabase == "" {
		return nil, fmt.Errorf("DB_DATABASE is required")
	}
	if _, network := defaultDBPorts[cfg.DBType]; network && cfg.DBUser == "" {
		return nil, fmt.Errorf("DB_USER is required for DB_TYPE %s", cfg.DBType)
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.TokenTTL <= 0 {
		return nil, fmt.Errorf("TOKEN_TTL must be positive")
	}
	if cfg.MaxUploadBytes <= 0 {
		return nil, fmt.Errorf("MAX_UPLOAD_BYTES must be positive")
	}
	if cfg.UploadsPrefix == "" || !strings.HasPrefix(cfg.UploadsPrefix, "/") {
		return nil, fmt.Errorf("UPLOADS_PREFIX must be an absolute path, got %q", cfg.UploadsPrefix)
	}
	if cfg.DBConnectionLimit < 1 {
		cfg.DBConnectionLimit = 1
	}

	return cfg, nil
}
