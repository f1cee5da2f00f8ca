package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	ServerAddress string
	Environment   string

	// AWS configuration
	AWSRegion     string
	DynamoDBTable string
	IndexName     string // GSI ordering items by (indexKey, SK)
	ImageBucket   string
	ImageBaseURL  string

	// Video platform configuration
	VimeoBaseURL      string
	VimeoToken        string
	VimeoPreset       string
	VimeoEmbedDomains []string

	// Logging
	LogLevel string

	EnableCORS bool
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{
		ServerAddress: getEnv("SERVER_ADDRESS", ":8080"),
		Environment:   getEnv("ENVIRONMENT", "development"),
		AWSRegion:     getEnv("AWS_REGION", "ap-northeast-1"),
		DynamoDBTable: getEnv("TABLE_NAME", "primary_table"),
		IndexName:     getEnv("INDEX_NAME", "GSI-1-SK"),
		ImageBucket:   getEnv("IMAGE_BUCKET", "studio-banner-images"),
		ImageBaseURL:  getEnv("IMAGE_BASE_URL", ""),

		VimeoBaseURL:      getEnv("VIMEO_BASE_URL", "https://api.vimeo.com"),
		VimeoToken:        getEnv("VIMEO_TOKEN", ""),
		VimeoPreset:       getEnv("VIMEO_EMBED_PRESET", ""),
		VimeoEmbedDomains: getEnvList("VIMEO_EMBED_DOMAINS"),

		LogLevel:   getEnv("LOG_LEVEL", "info"),
		EnableCORS: getEnvBool("ENABLE_CORS", true),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if all required configuration is present
func (c *Config) Validate() error {
	if c.DynamoDBTable == "" {
		return fmt.Errorf("TABLE_NAME is required")
	}
	if c.IndexName == "" {
		return fmt.Errorf("INDEX_NAME is required")
	}
	if c.Environment == "production" && c.VimeoToken == "" {
		return fmt.Errorf("VIMEO_TOKEN is required in production")
	}
	if c.ImageBaseURL == "" {
		c.ImageBaseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", c.ImageBucket, c.AWSRegion)
	}
	return nil
}

// IsDevelopment returns true in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvList(key string) []string {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
