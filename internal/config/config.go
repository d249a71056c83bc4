package config

import (
	"os"
	"strconv"
	"time"

	"github.com/Emil0510/learn-ai/internal/domain"
)

// AppConfig implements the domain.Config interface
type AppConfig struct {
	ServerPort         string
	LogLevel           string
	SupabaseURL        string
	SupabaseKey        string
	SupabaseServiceKey string
	StorageBucket      string
	VertexProjectID    string
	VertexLocation     string
	MaxUploadSize      int64
	MaxPages           int
	RasterScale        float64
	GenerationTimeout  time.Duration
}

// NewConfig creates a new configuration instance with default values
func NewConfig() domain.Config {
	return &AppConfig{
		// Cloud Run (and many PaaS) provide the listening port via PORT.
		// Keep SERVER_PORT for local/dev compatibility.
		ServerPort:         getEnvOrDefault("PORT", getEnvOrDefault("SERVER_PORT", "8080")),
		LogLevel:           getEnvOrDefault("LOG_LEVEL", "info"),
		SupabaseURL:        getEnvOrDefault("SUPABASE_URL", ""),
		SupabaseKey:        getEnvOrDefault("SUPABASE_ANON_KEY", ""),
		SupabaseServiceKey: getEnvOrDefault("SUPABASE_SERVICE_ROLE_KEY", ""),
		StorageBucket:      getEnvOrDefault("STORAGE_BUCKET", "pdfs"),
		VertexProjectID:    getEnvOrDefault("VERTEX_PROJECT_ID", ""),
		VertexLocation:     getEnvOrDefault("VERTEX_LOCATION", "us-central1"),
		MaxUploadSize:      getEnvInt64OrDefault("MAX_UPLOAD_SIZE", 10*1024*1024), // 10MiB
		MaxPages:           getEnvIntOrDefault("MAX_PAGES", 10),
		RasterScale:        getEnvFloatOrDefault("RASTER_SCALE", 1.0),
		GenerationTimeout:  time.Duration(getEnvIntOrDefault("GENERATION_TIMEOUT_SECONDS", 60)) * time.Second,
	}
}

// GetServerPort returns the server port
func (c *AppConfig) GetServerPort() string {
	return c.ServerPort
}

// GetLogLevel returns the logging level
func (c *AppConfig) GetLogLevel() string {
	return c.LogLevel
}

// GetSupabaseURL returns the Supabase URL
func (c *AppConfig) GetSupabaseURL() string {
	return c.SupabaseURL
}

// GetSupabaseKey returns the Supabase anon key
func (c *AppConfig) GetSupabaseKey() string {
	return c.SupabaseKey
}

// GetSupabaseServiceKey returns the Supabase service-role key
func (c *AppConfig) GetSupabaseServiceKey() string {
	return c.SupabaseServiceKey
}

// GetStorageBucket returns the storage bucket for uploaded PDFs
func (c *AppConfig) GetStorageBucket() string {
	return c.StorageBucket
}

// GetVertexProjectID returns the Vertex AI project ID
func (c *AppConfig) GetVertexProjectID() string {
	return c.VertexProjectID
}

// GetVertexLocation returns the Vertex AI location
func (c *AppConfig) GetVertexLocation() string {
	return c.VertexLocation
}

// GetMaxUploadSize returns the maximum allowed upload size in bytes
func (c *AppConfig) GetMaxUploadSize() int64 {
	return c.MaxUploadSize
}

// GetMaxPages returns the page cap for rasterization
func (c *AppConfig) GetMaxPages() int {
	return c.MaxPages
}

// GetRasterScale returns the rasterization scale factor
func (c *AppConfig) GetRasterScale() float64 {
	return c.RasterScale
}

// GetGenerationTimeout returns the ceiling for one generation request
func (c *AppConfig) GetGenerationTimeout() time.Duration {
	return c.GenerationTimeout
}

// Helper functions for environment variable handling
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64OrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
