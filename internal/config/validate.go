package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateDatabase(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	if c.Housekeeping.CooldownMinutes < 0 {
		return errors.New("housekeeping.cooldown_minutes must not be negative")
	}
	return nil
}

func (c *Config) validateDatabase() error {
	if c.Database.Offline {
		return nil
	}
	if c.Database.DSN == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = "~/.config/turndown/config.toml"
		}
		return fmt.Errorf("database.dsn is required. Set TURNDOWN_DSN env var or edit %s (create with 'turndown config init'), or set database.offline = true for demonstration mode", defaultPath)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}
