// Package config loads tipsplit configuration from an optional YAML file,
// TIPSPLIT_* environment variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/mmynk/tipsplit/internal/models"
)

// EnvPrefix is prepended to every environment override, e.g. TIPSPLIT_SERVER_ADDR.
const EnvPrefix = "TIPSPLIT"

// Configuration holds all configuration for tipsplit.
type Configuration struct {
	Presets PresetsConfig `mapstructure:"presets"`
	Logging LoggingConfig `mapstructure:"logging"`
	Server  ServerConfig  `mapstructure:"server"`
	Auth    AuthConfig    `mapstructure:"auth"`
}

// PresetsConfig selects where the preset set comes from.
type PresetsConfig struct {
	Percents     []float64     `mapstructure:"percents"`
	ServerURL    string        `mapstructure:"server_url"`    // optional preset server
	FetchTimeout time.Duration `mapstructure:"fetch_timeout"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level string `mapstructure:"level"` // debug, info, warn, error
}

// ServerConfig configures the preset server.
type ServerConfig struct {
	Addr   string `mapstructure:"addr"`
	DBPath string `mapstructure:"db_path"`
}

// AuthConfig configures operator access to the preset server.
type AuthConfig struct {
	JWTSecret            string        `mapstructure:"jwt_secret"`
	TokenTTL             time.Duration `mapstructure:"token_ttl"`
	OperatorEmail        string        `mapstructure:"operator_email"`
	OperatorPasswordHash string        `mapstructure:"operator_password_hash"`
}

// flagKeys maps command-line flag names to configuration keys.
var flagKeys = map[string]string{
	"log-level":  "logging.level",
	"preset-url": "presets.server_url",
	"addr":       "server.addr",
	"db":         "server.db_path",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("presets.percents", models.DefaultPercents)
	v.SetDefault("presets.server_url", "")
	v.SetDefault("presets.fetch_timeout", 3*time.Second)
	v.SetDefault("logging.level", "info")
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.db_path", "./data/presets.db")
	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.token_ttl", 12*time.Hour)
	v.SetDefault("auth.operator_email", "")
	v.SetDefault("auth.operator_password_hash", "")
}

// Load reads the configuration. configPath may be empty; flags may be nil.
// Precedence, highest first: flags that were set, environment, file, defaults.
func Load(configPath string, flags *pflag.FlagSet) (*Configuration, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg Configuration
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the settings every command depends on.
func (c *Configuration) Validate() error {
	if err := models.ValidatePresets(models.NewPresets(c.Presets.Percents)); err != nil {
		return fmt.Errorf("presets.percents: %w", err)
	}
	if c.Presets.FetchTimeout < 0 {
		return errors.New("presets.fetch_timeout must not be negative")
	}
	return nil
}

// ValidateServer checks the settings the preset server needs on top of Validate.
func (c *Configuration) ValidateServer() error {
	if c.Server.Addr == "" {
		return errors.New("server.addr is required")
	}
	if c.Server.DBPath == "" {
		return errors.New("server.db_path is required")
	}
	if c.Auth.JWTSecret == "" {
		return errors.New("auth.jwt_secret is required to serve presets")
	}
	if c.Auth.TokenTTL <= 0 {
		return errors.New("auth.token_ttl must be positive")
	}
	return nil
}

// Operator returns the configured operator account.
func (c *Configuration) Operator() models.Operator {
	return models.Operator{
		Email:        c.Auth.OperatorEmail,
		PasswordHash: c.Auth.OperatorPasswordHash,
	}
}
