// Package config loads simulator configuration from YAML files and
// environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the root configuration for the simulator server.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Database DatabaseConfig `mapstructure:"database"`
	Sim      SimConfig      `mapstructure:"sim"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Address         string        `mapstructure:"address"`
	DeckDir         string        `mapstructure:"deck_dir"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// LoggingConfig holds logger settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// DatabaseConfig holds match history database settings. An empty DSN
// disables match history persistence.
type DatabaseConfig struct {
	DSN      string `mapstructure:"dsn"`
	MaxConns int32  `mapstructure:"max_conns"`
}

// SimConfig holds per-session simulation defaults.
type SimConfig struct {
	StartingLife    int `mapstructure:"starting_life"`
	OpeningHandSize int `mapstructure:"opening_hand_size"`
	MaxLogEntries   int `mapstructure:"max_log_entries"`
}

// Load reads configuration from the given file path, applying defaults
// and MTGSIM_* environment variable overrides. A missing config file is
// not an error; defaults and environment apply.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.deck_dir", "decks")
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("database.dsn", "")
	v.SetDefault("database.max_conns", 4)
	v.SetDefault("sim.starting_life", 20)
	v.SetDefault("sim.opening_hand_size", 7)
	v.SetDefault("sim.max_log_entries", 50)

	v.SetEnvPrefix("MTGSIM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !os.IsNotExist(err) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Sim.StartingLife < 1 {
		return fmt.Errorf("sim.starting_life must be positive, got %d", c.Sim.StartingLife)
	}
	if c.Sim.OpeningHandSize < 0 {
		return fmt.Errorf("sim.opening_hand_size must not be negative, got %d", c.Sim.OpeningHandSize)
	}
	if c.Sim.MaxLogEntries < 1 {
		return fmt.Errorf("sim.max_log_entries must be positive, got %d", c.Sim.MaxLogEntries)
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("logging.format must be json or console, got %q", c.Logging.Format)
	}
	return nil
}
