package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jgoulah/gascalc/pkg/models"
)

// Config holds the application configuration
type Config struct {
	FractionMode  bool       `yaml:"fraction_mode"`
	NoAmbientMode bool       `yaml:"no_ambient_mode"`    // Only honored with fraction_mode
	Timezone      string     `yaml:"timezone,omitempty"` // IANA name, default local time
	Year          int        `yaml:"year,omitempty"`     // Month entries fall in (default: current)
	Month         int        `yaml:"month,omitempty"`    // 1-12
	Database      string     `yaml:"database,omitempty"` // Report archive path
	MQTT          MQTTConfig `yaml:"mqtt,omitempty"`
	HomeAssistant HAConfig   `yaml:"home_assistant,omitempty"`
}

// MQTTConfig holds MQTT broker settings for publishing daily totals
type MQTTConfig struct {
	Enabled     bool   `yaml:"enabled"`
	Broker      string `yaml:"broker"` // host:port
	Username    string `yaml:"username,omitempty"`
	Password    string `yaml:"password,omitempty"`
	TopicPrefix string `yaml:"topic_prefix,omitempty"` // default "gascalc"
}

// HAConfig holds Home Assistant HTTP API configuration
type HAConfig struct {
	Enabled  bool   `yaml:"enabled"`
	URL      string `yaml:"url"`       // e.g., "http://homeassistant.local:8123"
	Token    string `yaml:"token"`     // Long-lived access token
	EntityID string `yaml:"entity_id"` // e.g., "sensor.ward_oxygen_liters"
}

// Load reads the config file
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			// Return empty config if file doesn't exist
			return &Config{}, nil
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if cfg.Month < 0 || cfg.Month > 12 {
		return nil, fmt.Errorf("month %d out of range", cfg.Month)
	}

	return &cfg, nil
}

// Save writes the config to file
func Save(configPath string, cfg *Config) error {
	// Ensure directory exists
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// DefaultConfigPath returns the default config file path (local directory)
func DefaultConfigPath() string {
	return "config.yaml"
}

// DefaultDatabasePath returns the default report archive path (local directory)
func DefaultDatabasePath() string {
	return "reports.db"
}

// Mode returns the configured calculation mode
func (c *Config) Mode() models.Mode {
	return models.Mode{Fraction: c.FractionMode, NoAmbient: c.NoAmbientMode}.Normalize()
}

// Location returns the configured timezone, falling back to local time
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("loading timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// GetDatabasePath returns the archive path with a default of reports.db
func (c *Config) GetDatabasePath() string {
	if c.Database == "" {
		return DefaultDatabasePath()
	}
	return c.Database
}

// GetTopicPrefix returns the MQTT topic prefix with a default of "gascalc"
func (m MQTTConfig) GetTopicPrefix() string {
	if m.TopicPrefix == "" {
		return "gascalc"
	}
	return m.TopicPrefix
}

// HasMonth reports whether both year and month are pinned
func (c *Config) HasMonth() bool {
	return c.Year > 0 && c.Month > 0
}
