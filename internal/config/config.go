package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Database  DatabaseConfig
	GRPC      GRPCConfig
	Auth      AuthConfig
	Directory DirectoryConfig
	Log       LogConfig
}

// DatabaseConfig contains database-related settings.
type DatabaseConfig struct {
	Path string // SQLite database file path
}

// GRPCConfig contains gRPC server settings.
type GRPCConfig struct {
	Address string // gRPC server listen address (e.g., ":50051")
}

// AuthConfig contains authentication settings.
type AuthConfig struct {
	JWTSecret string // JWT signing secret
}

// DirectoryConfig tells the console where to mirror user changes.
// An empty Address keeps the console purely local.
type DirectoryConfig struct {
	Address string
	Token   string
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level string
}

// Load loads configuration from environment variables with sensible defaults.
func Load() (*Config, error) {
	cfg := load("")
	if cfg.Auth.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is not set; required for production")
	}
	return cfg, nil
}

// LoadWithDefaults is like Load but uses a safe default for JWT_SECRET in development.
// WARNING: Only use in development! Use Load() in production.
func LoadWithDefaults() (*Config, error) {
	return load("dev-secret-change-me"), nil
}

func load(defaultSecret string) *Config {
	v := viper.New()
	v.SetDefault("db_path", "directory.db")
	v.SetDefault("grpc_address", ":50051")
	v.SetDefault("jwt_secret", defaultSecret)
	v.SetDefault("directory_addr", "")
	v.SetDefault("directory_token", "")
	v.SetDefault("log_level", "info")
	v.AutomaticEnv()

	return &Config{
		Database:  DatabaseConfig{Path: v.GetString("db_path")},
		GRPC:      GRPCConfig{Address: v.GetString("grpc_address")},
		Auth:      AuthConfig{JWTSecret: v.GetString("jwt_secret")},
		Directory: DirectoryConfig{Address: strings.TrimSpace(v.GetString("directory_addr")), Token: v.GetString("directory_token")},
		Log:       LogConfig{Level: v.GetString("log_level")},
	}
}

// String returns a string representation of the config (sensitive values are masked).
func (c *Config) String() string {
	dir := c.Directory.Address
	if dir == "" {
		dir = "local"
	}
	return fmt.Sprintf("Config{DB: %s, gRPC: %s, Directory: %s, Log: %s, Auth: *** (masked) ***}", c.Database.Path, c.GRPC.Address, dir, c.Log.Level)
}
