package config

import (
	"os"
	"time"

	"github.com/saransh1220/limbgen/internal/shared/infrastructure/database"
)

// Config holds all configuration for the limbgen toolkit
type Config struct {
	Server      ServerConfig
	Gateway     GatewayConfig
	Viewer      ViewerConfig
	Redis       database.RedisConfig
	FileStorage FileStorageConfig
}

// ServerConfig describes the inference server the upload client talks to
type ServerConfig struct {
	BaseURL string
	Timeout time.Duration
}

// GatewayConfig holds configuration for the local volume host
type GatewayConfig struct {
	Port           string
	AllowedOrigins string
}

// ViewerConfig holds configuration for the browser volume viewer
type ViewerConfig struct {
	PageURL string
	Param   string
}

// FileStorageConfig holds volume storage configuration
type FileStorageConfig struct {
	UseS3            bool
	S3Region         string
	S3Endpoint       string
	S3PublicEndpoint string
	S3AccessKey      string
	S3SecretKey      string
	S3BucketName     string
	S3UseSSL         bool
	LocalPath        string
	LocalURL         string
	PresignExpiry    time.Duration
}

// Load reads configuration from environment variables
func Load() Config {
	return Config{
		Server: ServerConfig{
			BaseURL: getEnv("LIMBGEN_SERVER_URL", "http://localhost:8000"),
			Timeout: parseDuration(getEnv("LIMBGEN_HTTP_TIMEOUT", "0s"), 0),
		},
		Gateway: GatewayConfig{
			Port:           getEnv("PORT", "8080"),
			AllowedOrigins: getEnv("ALLOWED_ORIGINS", "http://localhost:5173"),
		},
		Viewer: ViewerConfig{
			PageURL: getEnv("VIEWER_URL", "http://localhost:5173/viewer"),
			Param:   getEnv("VIEWER_PARAM", "url"),
		},
		Redis: database.RedisConfig{
			Host:     getEnv("REDIS_HOST", ""),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       0,
		},
		FileStorage: FileStorageConfig{
			UseS3:            getEnv("USE_S3", "false") == "true",
			S3Region:         getEnv("S3_REGION", "us-east-1"),
			S3Endpoint:       getEnv("S3_ENDPOINT", ""),
			S3PublicEndpoint: getEnv("S3_PUBLIC_ENDPOINT", getEnv("S3_ENDPOINT", "")),
			S3AccessKey:      getEnv("S3_ACCESS_KEY", ""),
			S3SecretKey:      getEnv("S3_SECRET_KEY", ""),
			S3BucketName:     getEnv("S3_BUCKET", ""),
			S3UseSSL:         getEnv("S3_USE_SSL", "true") == "true",
			LocalPath:        getEnv("LOCAL_STORAGE_PATH", "./volumes"),
			LocalURL:         getEnv("LOCAL_STORAGE_URL", "http://localhost:8080/volumes"),
			PresignExpiry:    parseDuration(getEnv("PRESIGN_EXPIRY", "1h"), time.Hour),
		},
	}
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// parseDuration parses a duration string or returns a default value
func parseDuration(value string, defaultValue time.Duration) time.Duration {
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}
	return defaultValue
}
