package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// ServerConfig holds settings for the HTTP service
type ServerConfig struct {
	Port          string
	Env           string
	LocationsFile string
	TaxRulesFile  string
	Redis         RedisConfig
	CORS          CORSConfig
}

// RedisConfig holds persona store connection settings. An empty Addr
// selects the in-memory store.
type RedisConfig struct {
	Addr       string
	Password   string
	DB         int
	SessionTTL time.Duration
}

// CORSConfig holds CORS configuration
type CORSConfig struct {
	Origins []string
}

// LoadServer reads service configuration from environment variables
func LoadServer() (*ServerConfig, error) {
	v := viper.New()

	v.SetDefault("PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOCATIONS_FILE", "")
	v.SetDefault("TAX_RULES_FILE", "")
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("SESSION_TTL", "720h")
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")

	v.AutomaticEnv()

	cfg := &ServerConfig{
		Port:          v.GetString("PORT"),
		Env:           v.GetString("ENV"),
		LocationsFile: v.GetString("LOCATIONS_FILE"),
		TaxRulesFile:  v.GetString("TAX_RULES_FILE"),
		Redis: RedisConfig{
			Addr:       v.GetString("REDIS_ADDR"),
			Password:   v.GetString("REDIS_PASSWORD"),
			DB:         v.GetInt("REDIS_DB"),
			SessionTTL: v.GetDuration("SESSION_TTL"),
		},
		CORS: CORSConfig{
			Origins: parseOrigins(v.GetString("CORS_ORIGINS")),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that required configuration is present and valid
func (c *ServerConfig) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT is required")
	}
	switch c.Env {
	case "development", "production", "test":
	default:
		return fmt.Errorf("ENV must be development, production or test, got %q", c.Env)
	}
	if c.Redis.DB < 0 {
		return fmt.Errorf("REDIS_DB must be non-negative")
	}
	if c.Redis.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive")
	}
	if len(c.CORS.Origins) == 0 {
		return fmt.Errorf("CORS_ORIGINS is required")
	}
	return nil
}

// IsProduction reports whether the service runs in production mode
func (c *ServerConfig) IsProduction() bool {
	return c.Env == "production"
}

// parseOrigins splits a comma-separated string of origins into a slice
func parseOrigins(origins string) []string {
	if origins == "" {
		return []string{}
	}

	parts := strings.Split(origins, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
