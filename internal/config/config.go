// Package config provides YAML-based configuration loading for Prodline.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Database drivers.
const (
	DriverSQLite = "sqlite"
	DriverMySQL  = "mysql"
)

// Config is the top-level Prodline configuration, loaded from config.yaml.
type Config struct {
	Owner    string         `yaml:"owner"`
	Database DatabaseConfig `yaml:"database"`
	Server   ServerConfig   `yaml:"server"`
}

// DatabaseConfig holds backing-store connection settings.
type DatabaseConfig struct {
	Driver string `yaml:"driver"`
	Path   string `yaml:"path"` // sqlite
	Host   string `yaml:"host"` // mysql
	Port   int    `yaml:"port"`
	Name   string `yaml:"name"`
}

// ServerConfig holds API server settings. DigestCron is an optional 5-field
// cron expression scheduling the pending-review digest log line.
type ServerConfig struct {
	Port       int    `yaml:"port"`
	DigestCron string `yaml:"digest_cron"`
}

// Load reads a YAML config file from path and returns a validated Config.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse unmarshals YAML bytes into a validated Config.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the configuration used when no config file exists: a local
// SQLite store and the default server port.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// applyDefaults fills in derived and default values.
func (c *Config) applyDefaults() {
	if c.Database.Driver == "" {
		c.Database.Driver = DriverSQLite
	}
	if c.Database.Path == "" {
		c.Database.Path = "prodline.db"
	}
	if c.Database.Host == "" {
		c.Database.Host = "127.0.0.1"
	}
	if c.Database.Port == 0 {
		c.Database.Port = 3306
	}
	if c.Database.Name == "" {
		if c.Owner != "" {
			c.Database.Name = "prodline_" + c.Owner
		} else {
			c.Database.Name = "prodline"
		}
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
}

// validate checks that all required fields are present and consistent.
func (c *Config) validate() error {
	var errs []string
	if c.Database.Driver != DriverSQLite && c.Database.Driver != DriverMySQL {
		errs = append(errs, fmt.Sprintf("database.driver must be %q or %q", DriverSQLite, DriverMySQL))
	}
	if c.Database.Driver == DriverMySQL && c.Owner == "" {
		errs = append(errs, "owner is required for the mysql driver")
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		errs = append(errs, "server.port must be a valid TCP port")
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}
