// Package config loads the server configuration from a YAML file with
// TASKFLOW_* environment overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config is the top-level server configuration.
type Config struct {
	// ListenAddr is the address the HTTP server binds to.
	ListenAddr string `mapstructure:"listen_addr" yaml:"listen_addr"`

	// DatabasePath is the SQLite database file location.
	DatabasePath string `mapstructure:"database_path" yaml:"database_path"`

	// JWTSecret signs bearer tokens. Must be set in production; the
	// default exists only so a fresh checkout runs.
	JWTSecret string `mapstructure:"jwt_secret" yaml:"jwt_secret"`

	// TokenTTLHours is how long issued tokens stay valid.
	TokenTTLHours int `mapstructure:"token_ttl_hours" yaml:"token_ttl_hours"`
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/taskflow/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "taskflow", "config.yaml")
}

// DefaultDatabasePath returns the default SQLite database location,
// ~/.local/share/taskflow/taskflow.db.
func DefaultDatabasePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "taskflow.db")
	}
	return filepath.Join(home, ".local", "share", "taskflow", "taskflow.db")
}

func defaultConfig() *Config {
	return &Config{
		ListenAddr:    ":5000",
		DatabasePath:  DefaultDatabasePath(),
		JWTSecret:     "dev-secret-change-me",
		TokenTTLHours: 24 * 30,
	}
}

// Load reads configuration from the given YAML file path using Viper.
// Environment variables prefixed with TASKFLOW_ override file values
// (e.g. TASKFLOW_JWT_SECRET). A missing file yields the defaults.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetDefault("listen_addr", ":5000")
	v.SetDefault("database_path", DefaultDatabasePath())
	v.SetDefault("jwt_secret", "dev-secret-change-me")
	v.SetDefault("token_ttl_hours", 24*30)

	v.SetEnvPrefix("TASKFLOW")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(*os.PathError); ok {
			return unmarshalEnvOnly(v)
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return unmarshalEnvOnly(v)
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := defaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// unmarshalEnvOnly resolves config purely from defaults and environment when
// no file exists.
func unmarshalEnvOnly(v *viper.Viper) (*Config, error) {
	cfg := defaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("resolving config from environment: %w", err)
	}
	return cfg, nil
}
