package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds runtime configuration values for the API service.
type Config struct {
	AppName          string
	AppEnv           string
	AppPort          string
	DatabaseURL      string
	RedisURL         string
	JWTSecret        string
	TokenTTL         time.Duration
	RoleplayBaseURL  string
	RoleplayAPIKey   string
	RoleplayTimeout  time.Duration
	ProgressCacheTTL time.Duration
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// Load reads configuration values from environment variables and an optional
// .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("PRAXIS")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "Praxis API")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")
	v.SetDefault("token.ttl", "24h")
	v.SetDefault("roleplay.timeout", "10s")
	v.SetDefault("progress.cache_ttl", "5m")

	tokenTTL, err := time.ParseDuration(v.GetString("token.ttl"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid token ttl: %w", err)
	}

	roleplayTimeout, err := time.ParseDuration(v.GetString("roleplay.timeout"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid roleplay timeout: %w", err)
	}

	progressTTL, err := time.ParseDuration(v.GetString("progress.cache_ttl"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid progress cache ttl: %w", err)
	}

	cfg := Config{
		AppName:          v.GetString("app.name"),
		AppEnv:           v.GetString("app.env"),
		AppPort:          v.GetString("app.port"),
		DatabaseURL:      v.GetString("database.url"),
		RedisURL:         v.GetString("redis.url"),
		JWTSecret:        v.GetString("jwt.secret"),
		TokenTTL:         tokenTTL,
		RoleplayBaseURL:  v.GetString("roleplay.base_url"),
		RoleplayAPIKey:   v.GetString("roleplay.api_key"),
		RoleplayTimeout:  roleplayTimeout,
		ProgressCacheTTL: progressTTL,
	}

	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("jwt secret must be provided")
	}

	if cfg.RoleplayBaseURL == "" || cfg.RoleplayAPIKey == "" {
		return Config{}, fmt.Errorf("roleplay provider credentials must be provided")
	}

	return cfg, nil
}
