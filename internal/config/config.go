package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Environment
	GoEnv string `env:"GO_ENV" default:"development"`

	HTTPPort int `env:"HTTP_PORT" default:"8080"`

	// Database
	DatabaseURL string `env:"DATABASE_URL" required:"true"`

	// Authentication
	JWTSecret string        `env:"JWT_SECRET"`
	JWTExpiry time.Duration `env:"JWT_EXPIRY" default:"24h"`

	// Redis Cache (empty URL disables caching)
	RedisURL string        `env:"REDIS_URL" default:"redis://redis:6379"`
	CacheTTL time.Duration `env:"CACHE_TTL" default:"10m"`

	// IGDB catalog
	IGDBClientID     string `env:"IGDB_CLIENT_ID"`
	IGDBClientSecret string `env:"IGDB_CLIENT_SECRET"`
	IGDBAPIURL       string `env:"IGDB_API_URL" default:"https://api.igdb.com/v4"`

	// Media mirror (S3 compatible). No bucket means no mirroring.
	MediaBucket          string `env:"MEDIA_BUCKET"`
	MediaRegion          string `env:"MEDIA_REGION" default:"auto"`
	MediaEndpoint        string `env:"MEDIA_ENDPOINT"`
	MediaAccessKeyID     string `env:"MEDIA_ACCESS_KEY_ID"`
	MediaSecretAccessKey string `env:"MEDIA_SECRET_ACCESS_KEY"`
	MediaPublicURL       string `env:"MEDIA_PUBLIC_URL"`
	MediaPrefix          string `env:"MEDIA_PREFIX" default:"gamereviews"`

	// Review text generation
	OpenAIAPIKey   string `env:"OPENAI_API_KEY"`
	OpenAIBaseURL  string `env:"OPENAI_BASE_URL"`
	OpenAIModel    string `env:"OPENAI_MODEL" default:"gpt-4o-mini"`
	TextgenEnabled bool   `env:"TEXTGEN_ENABLED" default:"true"`

	// Monitoring
	PrometheusEnabled bool `env:"PROMETHEUS_ENABLED" default:"true"`

	// Development
	LogLevel    string   `env:"LOG_LEVEL" default:"info"`
	LogFormat   string   `env:"LOG_FORMAT" default:"json"`
	CORSOrigins []string `env:"CORS_ORIGINS" default:"http://localhost:3000"`
}

// LoadConfig loads configuration from environment variables, reading .env first when present.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil && !os.IsNotExist(err) {
		fmt.Printf("Warning: could not read .env file: %v\n", err)
	}

	config := &Config{}

	loadEnvString(&config.GoEnv, "GO_ENV", "development")
	if err := loadEnvInt(&config.HTTPPort, "HTTP_PORT", 8080); err != nil {
		return nil, err
	}

	if err := loadEnvStringRequired(&config.DatabaseURL, "DATABASE_URL"); err != nil {
		return nil, err
	}

	// Authentication, checked by Validate since only the API server signs tokens
	loadEnvString(&config.JWTSecret, "JWT_SECRET", "")
	if err := loadEnvDuration(&config.JWTExpiry, "JWT_EXPIRY", 24*time.Hour); err != nil {
		return nil, err
	}

	// Redis
	loadEnvString(&config.RedisURL, "REDIS_URL", "redis://redis:6379")
	if err := loadEnvDuration(&config.CacheTTL, "CACHE_TTL", 10*time.Minute); err != nil {
		return nil, err
	}

	// IGDB
	loadEnvString(&config.IGDBClientID, "IGDB_CLIENT_ID", "")
	loadEnvString(&config.IGDBClientSecret, "IGDB_CLIENT_SECRET", "")
	loadEnvString(&config.IGDBAPIURL, "IGDB_API_URL", "https://api.igdb.com/v4")

	// Media
	loadEnvString(&config.MediaBucket, "MEDIA_BUCKET", "")
	loadEnvString(&config.MediaRegion, "MEDIA_REGION", "auto")
	loadEnvString(&config.MediaEndpoint, "MEDIA_ENDPOINT", "")
	loadEnvString(&config.MediaAccessKeyID, "MEDIA_ACCESS_KEY_ID", "")
	loadEnvString(&config.MediaSecretAccessKey, "MEDIA_SECRET_ACCESS_KEY", "")
	loadEnvString(&config.MediaPublicURL, "MEDIA_PUBLIC_URL", "")
	loadEnvString(&config.MediaPrefix, "MEDIA_PREFIX", "gamereviews")

	// Text generation
	loadEnvString(&config.OpenAIAPIKey, "OPENAI_API_KEY", "")
	loadEnvString(&config.OpenAIBaseURL, "OPENAI_BASE_URL", "")
	loadEnvString(&config.OpenAIModel, "OPENAI_MODEL", "gpt-4o-mini")
	if err := loadEnvBool(&config.TextgenEnabled, "TEXTGEN_ENABLED", true); err != nil {
		return nil, err
	}

	// Monitoring
	if err := loadEnvBool(&config.PrometheusEnabled, "PROMETHEUS_ENABLED", true); err != nil {
		return nil, err
	}

	// Development
	loadEnvString(&config.LogLevel, "LOG_LEVEL", "info")
	loadEnvString(&config.LogFormat, "LOG_FORMAT", "json")
	loadEnvStringSlice(&config.CORSOrigins, "CORS_ORIGINS", []string{"http://localhost:3000"})

	return config, nil
}

func loadEnvString(target *string, key, defaultValue string) {
	if value := os.Getenv(key); value != "" {
		*target = value
	} else {
		*target = defaultValue
	}
}

func loadEnvStringRequired(target *string, key string) error {
	value := os.Getenv(key)
	if value == "" {
		return fmt.Errorf("required environment variable %s is not set", key)
	}
	*target = value
	return nil
}

func loadEnvInt(target *int, key string, defaultValue int) error {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer value for %s: %v", key, err)
		}
		*target = parsed
	} else {
		*target = defaultValue
	}
	return nil
}

func loadEnvBool(target *bool, key string, defaultValue bool) error {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean value for %s: %v", key, err)
		}
		*target = parsed
	} else {
		*target = defaultValue
	}
	return nil
}

func loadEnvDuration(target *time.Duration, key string, defaultValue time.Duration) error {
	if value := os.Getenv(key); value != "" {
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid duration value for %s: %v", key, err)
		}
		*target = parsed
	} else {
		*target = defaultValue
	}
	return nil
}

func loadEnvStringSlice(target *[]string, key string, defaultValue []string) {
	if value := os.Getenv(key); value != "" {
		*target = strings.Split(value, ",")
		for i, v := range *target {
			(*target)[i] = strings.TrimSpace(v)
		}
	} else {
		*target = defaultValue
	}
}

// Validate performs validation on the loaded configuration for the API server.
func (c *Config) Validate() error {
	return c.validate(true)
}

// ValidateImporter checks what the command-line importer needs; JWT settings are ignored.
func (c *Config) ValidateImporter() error {
	return c.validate(false)
}

func (c *Config) validate(server bool) error {
	var errs []string

	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		errs = append(errs, "HTTP_PORT must be between 1 and 65535")
	}

	validLogLevels := []string{"debug", "info", "warn", "error"}
	if !contains(validLogLevels, c.LogLevel) {
		errs = append(errs, fmt.Sprintf("LOG_LEVEL must be one of: %s", strings.Join(validLogLevels, ", ")))
	}

	validLogFormats := []string{"text", "json"}
	if !contains(validLogFormats, c.LogFormat) {
		errs = append(errs, fmt.Sprintf("LOG_FORMAT must be one of: %s", strings.Join(validLogFormats, ", ")))
	}

	if server {
		switch {
		case c.JWTSecret == "":
			errs = append(errs, "JWT_SECRET is required")
		case len(c.JWTSecret) < 32:
			errs = append(errs, "JWT_SECRET should be at least 32 characters long")
		}
	}

	if (c.IGDBClientID == "") != (c.IGDBClientSecret == "") {
		errs = append(errs, "IGDB_CLIENT_ID and IGDB_CLIENT_SECRET must be set together")
	}

	if c.MediaBucket != "" && c.MediaPublicURL == "" {
		errs = append(errs, "MEDIA_PUBLIC_URL is required when MEDIA_BUCKET is set")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

// IsDevelopment returns true if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.GoEnv == "development"
}

// IsProduction returns true if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.GoEnv == "production"
}

// CatalogEnabled reports whether IGDB credentials were supplied.
func (c *Config) CatalogEnabled() bool {
	return c.IGDBClientID != "" && c.IGDBClientSecret != ""
}

// MirrorEnabled reports whether a media bucket was configured.
func (c *Config) MirrorEnabled() bool {
	return c.MediaBucket != ""
}

// TextgenConfigured reports whether review text generation can run.
func (c *Config) TextgenConfigured() bool {
	return c.TextgenEnabled && c.OpenAIAPIKey != ""
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
