package config

import (
	"os"
	"strconv"
)

// Config holds application configuration
type Config struct {
	ServerPort     string
	DatabaseType   string // sqlite, postgres or mysql
	DatabasePath   string // sqlite only
	DatabaseURL    string // postgres/mysql only
	MigrationsPath string

	// Blob storage for log photos
	BlobBackend string // "fs" or "s3"
	BlobDir     string // fs backend: local directory
	BlobBaseURL string // fs backend: public base URL for stored objects
	S3Bucket    string
	AWSRegion   string

	// Invite mail (SES). Empty from-address disables the mailer.
	SESFromEmail string
	SESFromName  string

	// Identity
	SessionSecret string

	// Maximum accepted inline photo size after decoding
	PhotoMaxSize int64
}

// Load reads configuration from environment variables with sensible defaults
func Load() *Config {
	return &Config{
		ServerPort:     getEnv("PORT", "8080"),
		DatabaseType:   getEnv("DB_TYPE", "sqlite"),
		DatabasePath:   getEnv("DB_PATH", "./famboard.db"),
		DatabaseURL:    getEnv("DB_URL", ""),
		MigrationsPath: getEnv("MIGRATIONS_PATH", "./migrations"),
		BlobBackend:    getEnv("BLOB_BACKEND", "fs"),
		BlobDir:        getEnv("BLOB_DIR", "./photos"),
		BlobBaseURL:    getEnv("BLOB_BASE_URL", "http://localhost:8080/photos"),
		S3Bucket:       getEnv("S3_BUCKET", ""),
		AWSRegion:      getEnv("AWS_REGION", "us-east-1"),
		SESFromEmail:   getEnv("SES_FROM_EMAIL", ""),
		SESFromName:    getEnv("SES_FROM_NAME", "Famboard"),
		SessionSecret:  getEnv("SESSION_SECRET", ""),
		PhotoMaxSize:   getEnvInt64("PHOTO_MAX_SIZE", 5*1024*1024), // 5MB
	}
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt64 reads an integer environment variable or returns a default value
func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.ParseInt(value, 10, 64); err == nil {
			return n
		}
	}
	return defaultValue
}
