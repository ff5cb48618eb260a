package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config structure represents the application configuration
type Config struct {
	Server struct {
		Port string `yaml:"port" env:"SERVER_PORT"`
		Mode string `yaml:"mode" env:"SERVER_MODE"`
	} `yaml:"server"`

	Database struct {
		Host            string `yaml:"host" env:"DB_HOST"`
		Port            string `yaml:"port" env:"DB_PORT"`
		User            string `yaml:"user" env:"DB_USER"`
		Password        string `yaml:"password" env:"DB_PASSWORD"`
		DBName          string `yaml:"dbname" env:"DB_NAME"`
		SSLMode         string `yaml:"sslmode" env:"DB_SSLMODE"`
		MaxIdleConns    int    `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS"`
		MaxOpenConns    int    `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS"`
		ConnMaxLifetime string `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"`
	} `yaml:"database"`

	JWT struct {
		Secret          string `yaml:"secret" env:"JWT_SECRET"`
		TokenExpiration string `yaml:"token_expiration" env:"JWT_TOKEN_EXPIRATION"`
		Issuer          string `yaml:"issuer" env:"JWT_ISSUER"`
	} `yaml:"jwt"`

	Media struct {
		// Backend is "postgres" (inline base64 rows) or "minio"
		Backend string `yaml:"backend" env:"MEDIA_BACKEND"`

		Minio struct {
			Endpoint  string `yaml:"endpoint" env:"MINIO_ENDPOINT"`
			AccessKey string `yaml:"access_key" env:"MINIO_ACCESS_KEY"`
			SecretKey string `yaml:"secret_key" env:"MINIO_SECRET_KEY"`
			Bucket    string `yaml:"bucket" env:"MINIO_BUCKET"`
			UseSSL    bool   `yaml:"use_ssl" env:"MINIO_USE_SSL"`
		} `yaml:"minio"`
	} `yaml:"media"`

	CORS struct {
		// AllowedOrigins is a comma-separated origin list; "*" allows all
		AllowedOrigins string `yaml:"allowed_origins" env:"CORS_ALLOWED_ORIGINS"`
	} `yaml:"cors"`

	Seed struct {
		AdminEmail    string `yaml:"admin_email" env:"SEED_ADMIN_EMAIL"`
		AdminPassword string `yaml:"admin_password" env:"SEED_ADMIN_PASSWORD"`
		SampleData    bool   `yaml:"sample_data" env:"SEED_SAMPLE_DATA"`
	} `yaml:"seed"`

	Logging struct {
		Level      string `yaml:"level" env:"LOG_LEVEL"`
		Format     string `yaml:"format" env:"LOG_FORMAT"`
		File       string `yaml:"file" env:"LOG_FILE"`
		MaxSizeMB  int    `yaml:"max_size_mb" env:"LOG_MAX_SIZE_MB"`
		MaxBackups int    `yaml:"max_backups" env:"LOG_MAX_BACKUPS"`
	} `yaml:"logging"`
}

// LoadConfig loads configuration from a file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}
	setDefaults(config)

	// Config file is optional; env vars alone can configure the app
	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	// Environment variables override file values
	if err := processStructFields(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	config.Server.Port = "8080"
	config.Server.Mode = "development"

	config.Database.Host = "localhost"
	config.Database.Port = "5432"
	config.Database.User = "postgres"
	config.Database.Password = "postgres"
	config.Database.DBName = "alumnihub"
	config.Database.SSLMode = "disable"
	config.Database.MaxIdleConns = 5
	config.Database.MaxOpenConns = 20
	config.Database.ConnMaxLifetime = "1h"

	// Sessions last 30 days
	config.JWT.TokenExpiration = "720h"
	config.JWT.Issuer = "alumnihub.app"

	config.Media.Backend = "postgres"
	config.Media.Minio.Bucket = "alumnihub-media"

	config.CORS.AllowedOrigins = "*"

	config.Seed.AdminEmail = "admin@alumnihub.app"
	config.Seed.AdminPassword = "admin123"

	config.Logging.Level = "info"
	config.Logging.Format = "json"
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	if config.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}

	if config.JWT.Secret == "" {
		return fmt.Errorf("JWT secret is required")
	}

	if _, err := time.ParseDuration(config.JWT.TokenExpiration); err != nil {
		return fmt.Errorf("invalid JWT token expiration format: %w", err)
	}

	switch config.Media.Backend {
	case "postgres":
	case "minio":
		if config.Media.Minio.Endpoint == "" {
			return fmt.Errorf("minio endpoint is required when media backend is minio")
		}
	default:
		return fmt.Errorf("unknown media backend: %s", config.Media.Backend)
	}

	return nil
}

// GetPostgresConnectionString returns postgres connection string
func (c *Config) GetPostgresConnectionString() string {
	sslMode := c.Database.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.DBName,
		sslMode,
	)
}

// AllowedOriginList splits the configured CORS origins
func (c *Config) AllowedOriginList() []string {
	parts := strings.Split(c.CORS.AllowedOrigins, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		if origin := strings.TrimSpace(part); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}
