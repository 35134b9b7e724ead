package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
)

// Config holds the application configuration.
type Config struct {
	// Database connection string (DSN). Postgres or SQLite.
	DatabaseURL string

	// Server bind address (host:port)
	ServerAddr string

	// HMAC secret for signing access and refresh tokens
	JWTSecret string

	// Access token lifetime
	AccessTokenTTL time.Duration

	// Refresh token lifetime
	RefreshTokenTTL time.Duration

	// bcrypt work factor for password hashing
	BcryptCost int

	// Maximum database connection pool size
	MaxDBConnections int

	// Enable debug logging
	Debug bool
}

// Load reads configuration from TASKAPI_ prefixed environment
// variables, layered over an optional config file already read into
// viper, with fallback defaults. The JWT secret and database URL have
// no default: a deployment must supply them.
func Load() (*Config, error) {
	viper.SetEnvPrefix("TASKAPI")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("server_addr", "localhost:8080")
	viper.SetDefault("access_token_ttl", 15*time.Minute)
	viper.SetDefault("refresh_token_ttl", 7*24*time.Hour)
	viper.SetDefault("bcrypt_cost", bcrypt.DefaultCost)
	viper.SetDefault("max_db_connections", 25)
	viper.SetDefault("debug", false)

	cfg := &Config{
		DatabaseURL:      viper.GetString("database_url"),
		ServerAddr:       viper.GetString("server_addr"),
		JWTSecret:        viper.GetString("jwt_secret"),
		AccessTokenTTL:   viper.GetDuration("access_token_ttl"),
		RefreshTokenTTL:  viper.GetDuration("refresh_token_ttl"),
		BcryptCost:       viper.GetInt("bcrypt_cost"),
		MaxDBConnections: viper.GetInt("max_db_connections"),
		Debug:            viper.GetBool("debug"),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("database_url is required (TASKAPI_DATABASE_URL)")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("jwt_secret is required (TASKAPI_JWT_SECRET)")
	}
	if cfg.AccessTokenTTL <= 0 {
		return nil, fmt.Errorf("access_token_ttl must be positive")
	}
	if cfg.RefreshTokenTTL <= cfg.AccessTokenTTL {
		return nil, fmt.Errorf("refresh_token_ttl must exceed access_token_ttl")
	}
	if cfg.BcryptCost < bcrypt.MinCost || cfg.BcryptCost > bcrypt.MaxCost {
		return nil, fmt.Errorf("bcrypt_cost %d out of range [%d, %d]", cfg.BcryptCost, bcrypt.MinCost, bcrypt.MaxCost)
	}

	return cfg, nil
}
