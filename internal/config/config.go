package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration
type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Storage  StorageConfig
	SMTP     SMTPConfig
	CORS     CORSConfig
	Upload   UploadConfig
}

type AppConfig struct {
	Name            string
	Env             string
	Port            string
	Version         string
	CopyrightHolder string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
	MaxConns int32
	MinConns int32
}

type RedisConfig struct {
	Host     string
	Password string
	DB       int
}

type StorageConfig struct {
	Endpoint      string
	AccessKey     string
	SecretKey     string
	Bucket        string
	UseSSL        bool
	PublicBaseURL string
}

type SMTPConfig struct {
	Host       string
	Port       string
	From       string
	Recipients []string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type UploadConfig struct {
	MaxFileSize   int64
	PresignExpiry time.Duration
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		App: AppConfig{
			Name:            getEnv("APP_NAME", "portfolio-backend"),
			Env:             getEnv("APP_ENV", "development"),
			Port:            getEnv("PORT", "8080"),
			Version:         getEnv("APP_VERSION", "1.0.0"),
			CopyrightHolder: getEnv("COPYRIGHT_HOLDER", "Cindy Ashley"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			Name:     getEnv("DB_NAME", "portfolio"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
			MaxConns: int32(getEnvInt("DB_MAX_CONNS", 10)),
			MinConns: int32(getEnvInt("DB_MIN_CONNS", 2)),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Storage: StorageConfig{
			Endpoint:      getEnv("STORAGE_ENDPOINT", "localhost:9000"),
			AccessKey:     getEnv("STORAGE_ACCESS_KEY", "minioadmin"),
			SecretKey:     getEnv("STORAGE_SECRET_KEY", "minioadmin"),
			Bucket:        getEnv("STORAGE_BUCKET", "portfolio-photos"),
			UseSSL:        getEnvBool("STORAGE_USE_SSL", false),
			PublicBaseURL: getEnv("STORAGE_PUBLIC_URL", ""),
		},
		SMTP: SMTPConfig{
			Host:       getEnv("SMTP_HOST", ""),
			Port:       getEnv("SMTP_PORT", "587"),
			From:       getEnv("SMTP_FROM", ""),
			Recipients: splitList(getEnv("CONTACT_RECIPIENTS", "")),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(getEnv("ALLOWED_ORIGINS", "http://localhost:3000")),
		},
		Upload: UploadConfig{
			MaxFileSize:   getEnvInt64("UPLOAD_MAX_FILE_SIZE", 10*1024*1024),
			PresignExpiry: time.Duration(getEnvInt("UPLOAD_PRESIGN_EXPIRY", 300)) * time.Second,
		},
	}
}

// Validate catches configuration that must not ship to production
func (c *Config) Validate() error {
	if c.App.Env == "production" {
		if c.Database.Password == "postgres" {
			return fmt.Errorf("default database password is not allowed in production")
		}
		if c.Storage.SecretKey == "minioadmin" {
			return fmt.Errorf("default storage credentials are not allowed in production")
		}
		if len(c.CORS.AllowedOrigins) == 0 {
			return fmt.Errorf("ALLOWED_ORIGINS must be set in production")
		}
	}
	return nil
}

// ContactConfigured reports whether the contact form can send email.
func (c *Config) ContactConfigured() bool {
	return c.SMTP.Host != "" && c.SMTP.From != "" && len(c.SMTP.Recipients) > 0
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.ParseInt(value, 10, 64); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func splitList(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
