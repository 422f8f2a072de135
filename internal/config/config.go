// Package config loads process settings from the environment and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v4"
	"github.com/joho/godotenv"

	"github.com/mcoot/chessclub/internal/factory"
	redisstorage "github.com/mcoot/chessclub/internal/storage/redis"
	"github.com/mcoot/chessclub/internal/storage/supabase"
)

// Environment variable names
const (
	EnvStoreType       = "STORE_TYPE"
	EnvSupabaseURL     = "SUPABASE_URL"
	EnvSupabaseAnonKey = "SUPABASE_ANON_KEY"
	EnvSupabaseSchema  = "SUPABASE_SCHEMA"
	EnvDatabaseURL     = "DATABASE_URL"
	EnvRedisURL        = "REDIS_URL"
	EnvPort            = "PORT"
	EnvCORSOrigins     = "CORS_ORIGINS"
	EnvLogLevel        = "LOG_LEVEL"
)

const (
	defaultPort = 8080

	roleServiceRole = "service_role"

	// Opaque key formats issued alongside the legacy JWT keys
	publishableKeyPrefix = "sb_publishable_"
	secretKeyPrefix      = "sb_secret_"
)

// Config holds all process settings
type Config struct {
	StoreType string

	SupabaseURL     string
	SupabaseAnonKey string
	SupabaseSchema  string
	// KeyRole is the role the anon key grants, e.g. "anon" or "service_role"
	KeyRole string

	DatabaseURL string
	RedisURL    string

	Port        int
	CORSOrigins []string
	LogLevel    slog.Level
}

// Load reads .env if present, then the environment
func Load() (*Config, error) {
	// A missing .env is normal outside local development
	_ = godotenv.Load()
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from getenv and validates it for the selected store
func FromEnv(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		StoreType:       strings.ToLower(strings.TrimSpace(getenv(EnvStoreType))),
		SupabaseURL:     strings.TrimRight(strings.TrimSpace(getenv(EnvSupabaseURL)), "/"),
		SupabaseAnonKey: strings.TrimSpace(getenv(EnvSupabaseAnonKey)),
		SupabaseSchema:  strings.TrimSpace(getenv(EnvSupabaseSchema)),
		DatabaseURL:     strings.TrimSpace(getenv(EnvDatabaseURL)),
		RedisURL:        strings.TrimSpace(getenv(EnvRedisURL)),
		Port:            defaultPort,
		LogLevel:        slog.LevelInfo,
	}
	if cfg.StoreType == "" {
		cfg.StoreType = factory.StoreTypeSupabase
	}

	if portStr := getenv(EnvPort); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", EnvPort, err)
		}
		if port <= 0 || port > 65535 {
			return nil, fmt.Errorf("%s must be between 1 and 65535, got %d", EnvPort, port)
		}
		cfg.Port = port
	}

	if origins := getenv(EnvCORSOrigins); origins != "" {
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.CORSOrigins = append(cfg.CORSOrigins, o)
			}
		}
	}

	if level := getenv(EnvLogLevel); level != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(level)); err != nil {
			return nil, fmt.Errorf("invalid %s: %w", EnvLogLevel, err)
		}
	}

	if err := cfg.validateStore(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validateStore() error {
	switch c.StoreType {
	case factory.StoreTypeSupabase:
		if c.SupabaseURL == "" || c.SupabaseAnonKey == "" {
			return fmt.Errorf("%s and %s must be set", EnvSupabaseURL, EnvSupabaseAnonKey)
		}
		role, err := inspectKey(c.SupabaseAnonKey)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvSupabaseAnonKey, err)
		}
		c.KeyRole = role
	case factory.StoreTypePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("%s must be set when %s=%s", EnvDatabaseURL, EnvStoreType, c.StoreType)
		}
	case factory.StoreTypeRedis:
		if c.RedisURL == "" {
			return fmt.Errorf("%s must be set when %s=%s", EnvRedisURL, EnvStoreType, c.StoreType)
		}
	case factory.StoreTypeMemory:
	default:
		return fmt.Errorf("unknown %s %q", EnvStoreType, c.StoreType)
	}
	return nil
}

// inspectKey reads the role out of an API key without verifying it.
// The signature is the store's business; this only catches pasted garbage
// and keys that bypass row-level security.
func inspectKey(key string) (string, error) {
	switch {
	case strings.HasPrefix(key, publishableKeyPrefix):
		return "anon", nil
	case strings.HasPrefix(key, secretKeyPrefix):
		return roleServiceRole, nil
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(key, claims); err != nil {
		return "", err
	}
	role, _ := claims["role"].(string)
	if role == "" {
		return "", errors.New("key has no role claim")
	}
	return role, nil
}

// IsServiceRoleKey reports a key that ignores row-level security
func (c *Config) IsServiceRoleKey() bool {
	return c.KeyRole == roleServiceRole
}

// Addr is the listen address for the HTTP server
func (c *Config) Addr() string {
	return net.JoinHostPort("", strconv.Itoa(c.Port))
}

// Factory converts the settings into application factory config
func (c *Config) Factory(logger *slog.Logger) factory.Config {
	fc := factory.Config{
		Logger:      logger,
		StoreType:   c.StoreType,
		DatabaseURL: c.DatabaseURL,
	}
	switch c.StoreType {
	case factory.StoreTypeSupabase:
		fc.Supabase = &supabase.Config{
			URL:    c.SupabaseURL,
			APIKey: c.SupabaseAnonKey,
			Schema: c.SupabaseSchema,
		}
	case factory.StoreTypeRedis:
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = c.RedisURL
		fc.Redis = &redisCfg
	}
	return fc
}
