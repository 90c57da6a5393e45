package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Upstream UpstreamConfig
	Vendor   VendorConfig
	Bulk     BulkConfig
	Logging  LoggingConfig
}

type ServerConfig struct {
	Host         string
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	MaxBodyBytes int64
}

type UpstreamConfig struct {
	// Timeout of zero leaves the transport default in place.
	Timeout          time.Duration
	// BreakerThreshold of zero disables the per-host breaker, so every call
	// reaches the vendor.
	BreakerThreshold int
	BreakerCooldown  time.Duration
}

type VendorConfig struct {
	ProductPath   string
	InventoryPath string
	ReasonID      string
}

type BulkConfig struct {
	// RateLimit is vendor calls per second during a bulk run; zero is unlimited.
	RateLimit float64
}

type LoggingConfig struct {
	Level  string
	Format string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (ignore error if file doesn't exist)
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Host:         getEnvWithDefault("SERVER_HOST", "0.0.0.0"),
			Port:         getEnvWithDefault("SERVER_PORT", "3001"),
			ReadTimeout:  getDurationFromEnv("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout: getDurationFromEnv("SERVER_WRITE_TIMEOUT", 0),
			MaxBodyBytes: int64(getIntFromEnv("MAX_BODY_BYTES", 50*1024*1024)),
		},
		Upstream: UpstreamConfig{
			Timeout:          getDurationFromEnv("UPSTREAM_TIMEOUT", 0),
			BreakerThreshold: getIntFromEnv("UPSTREAM_BREAKER_THRESHOLD", 0),
			BreakerCooldown:  getDurationFromEnv("UPSTREAM_BREAKER_COOLDOWN", 30*time.Second),
		},
		Vendor: VendorConfig{
			ProductPath:   getEnvWithDefault("VENDOR_PRODUCT_PATH", "/products/products?api-version=3.0"),
			InventoryPath: os.Getenv("VENDOR_INVENTORY_PATH"),
			ReasonID:      getEnvWithDefault("VENDOR_REASON_ID", "5"),
		},
		Bulk: BulkConfig{
			RateLimit: getFloatFromEnv("BULK_RATE_LIMIT", 0),
		},
		Logging: LoggingConfig{
			Level:  getEnvWithDefault("LOG_LEVEL", "info"),
			Format: getEnvWithDefault("LOG_FORMAT", "json"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate rejects settings the service cannot run with
func (c *Config) Validate() error {
	port, err := strconv.Atoi(c.Server.Port)
	if err != nil || port <= 0 || port > 65535 {
		return fmt.Errorf("invalid SERVER_PORT %q", c.Server.Port)
	}
	if c.Server.MaxBodyBytes <= 0 {
		return fmt.Errorf("MAX_BODY_BYTES must be positive")
	}
	if c.Upstream.Timeout < 0 {
		return fmt.Errorf("UPSTREAM_TIMEOUT must not be negative")
	}
	if c.Upstream.BreakerThreshold < 0 {
		return fmt.Errorf("UPSTREAM_BREAKER_THRESHOLD must not be negative")
	}
	if c.Bulk.RateLimit < 0 {
		return fmt.Errorf("BULK_RATE_LIMIT must not be negative")
	}
	if c.Vendor.ReasonID == "" {
		return fmt.Errorf("VENDOR_REASON_ID must not be empty")
	}
	return nil
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntFromEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getFloatFromEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getDurationFromEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
