package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeDatabase()
	c.normalizeFacility()
	c.normalizeHousekeeping()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		c.Paths.DataDir = defaultDataDir
	}
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeDatabase() {
	c.Database.DSN = strings.TrimSpace(c.Database.DSN)
	if c.Database.DSN == "" {
		if value, ok := os.LookupEnv("TURNDOWN_DSN"); ok {
			c.Database.DSN = strings.TrimSpace(value)
		}
	}
	if c.Database.ConnectAttempts <= 0 {
		c.Database.ConnectAttempts = defaultConnectAttempts
	}
	if c.Database.ConnectBackoff <= 0 {
		c.Database.ConnectBackoff = defaultConnectBackoffMS
	}
}

func (c *Config) normalizeFacility() {
	c.Facility.Code = strings.TrimSpace(c.Facility.Code)
	if c.Facility.Code == "" {
		c.Facility.Code = defaultFacilityCode
	}
	c.Facility.Operator = strings.TrimSpace(c.Facility.Operator)
	if c.Facility.Operator == "" {
		if value, ok := os.LookupEnv("USER"); ok {
			c.Facility.Operator = value
		}
	}
}

func (c *Config) normalizeHousekeeping() {
	if c.Housekeeping.CooldownMinutes <= 0 {
		c.Housekeeping.CooldownMinutes = defaultCooldownMinutes
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
