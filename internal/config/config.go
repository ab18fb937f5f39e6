package config

import (
	"os"
	"strconv"
)

// MongoConfig holds metadata store connection settings.
// The URI is an opaque credential supplied via environment; never hardcode it.
type MongoConfig struct {
	URI               string
	Database          string
	ConnectTimeoutSec int
}

// UploadConfig holds blob storage settings.
// Dir is the flat content directory used by the filesystem driver; PublicPath
// is the URL path prefix blobs are served under.
type UploadConfig struct {
	Dir        string
	PublicPath string
	Driver     string // "fs" or "minio"
}

// MinIOConfig holds object storage settings for the MinIO blob driver.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables.
type AppConfig struct {
	Port   string
	Mongo  MongoConfig
	Upload UploadConfig
	MinIO  MinIOConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	return &AppConfig{
		Port: getEnv("PORT", "3001"),
		Mongo: MongoConfig{
			URI:               getEnv("MONGO_URI", "mongodb://localhost:27017"),
			Database:          getEnv("MONGO_DB", "jotter"),
			ConnectTimeoutSec: getEnvInt("MONGO_CONNECT_TIMEOUT_SEC", 10),
		},
		Upload: UploadConfig{
			Dir:        getEnv("UPLOAD_DIR", "uploads"),
			PublicPath: getEnv("UPLOAD_PUBLIC_PATH", "/uploads"),
			Driver:     getEnv("STORAGE_DRIVER", "fs"),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", ""),
			AccessKey: getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey: getEnv("MINIO_SECRET_KEY", ""),
			Bucket:    getEnv("MINIO_BUCKET", ""),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
		},
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}
