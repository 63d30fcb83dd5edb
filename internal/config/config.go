// Package config handles configuration loading from files, defaults, and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config holds the application configuration.
type Config struct {
	Calendar CalendarConfig `toml:"calendar"`
	User     UserConfig     `toml:"user"`
	Storage  StorageConfig  `toml:"storage"`
	UI       UIConfig       `toml:"ui"`
}

// CalendarConfig holds calendar view and selection settings.
type CalendarConfig struct {
	WeekStart            string `toml:"week_start"`              // e.g., "monday"
	SlotMinutes          int    `toml:"slot_minutes"`            // drag granularity, e.g., 30
	DefaultView          string `toml:"default_view"`            // "day", "week", "month"
	AllowSlotSelection   bool   `toml:"allow_slot_selection"`    // enable drag-to-create
	AllowMultiplePerCell bool   `toml:"allow_multiple_per_cell"` // skip conflict checks
	HighlightMine        bool   `toml:"highlight_mine"`          // highlight the current user's reservations
}

// UserConfig identifies the current user for ownership highlighting.
type UserConfig struct {
	Name  string `toml:"name"`
	Email string `toml:"email"`
}

// StorageConfig holds database settings.
type StorageConfig struct {
	DBPath string `toml:"db_path"`
}

// UIConfig holds TUI settings.
type UIConfig struct {
	Theme string `toml:"theme"` // "mocha", "macchiato", "frappe", "latte"
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Calendar: CalendarConfig{
			WeekStart:            "monday",
			SlotMinutes:          30,
			DefaultView:          "month",
			AllowSlotSelection:   true,
			AllowMultiplePerCell: false,
			HighlightMine:        true,
		},
		Storage: StorageConfig{
			DBPath: defaultDBPath(),
		},
		UI: UIConfig{
			Theme: "frappe",
		},
	}
}

// defaultDBPath returns the default database path.
func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "rezcal.db"
	}
	return filepath.Join(home, ".local", "share", "rezcal", "rezcal.db")
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "rezcal", "config.toml")
}

// Load loads configuration from the default path, merging with defaults and env vars.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigPath())
}

// LoadFrom loads configuration from the specified path.
// It starts with defaults, overlays file config if it exists, then applies env overrides.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	// Try to load from file (not an error if it doesn't exist)
	if err := loadFromFile(path, cfg); err != nil {
		return nil, err
	}

	// Apply environment variable overrides
	applyEnvOverrides(cfg)

	// Expand paths
	cfg.Storage.DBPath = expandPath(cfg.Storage.DBPath)

	// Validate
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// loadFromFile loads config from a file if it exists.
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // File doesn't exist, use defaults
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
// Environment variables take precedence over file config.
func applyEnvOverrides(cfg *Config) {
	// Calendar overrides
	if v := os.Getenv("REZCAL_WEEK_START"); v != "" {
		cfg.Calendar.WeekStart = v
	}
	if v := os.Getenv("REZCAL_DEFAULT_VIEW"); v != "" {
		cfg.Calendar.DefaultView = v
	}
	if v := os.Getenv("REZCAL_SLOT_MINUTES"); v != "" {
		var n int
		if _, err := fmt.Sscanf(v, "%d", &n); err == nil {
			cfg.Calendar.SlotMinutes = n
		}
	}

	// User overrides
	if v := os.Getenv("REZCAL_USER_NAME"); v != "" {
		cfg.User.Name = v
	}
	if v := os.Getenv("REZCAL_USER_EMAIL"); v != "" {
		cfg.User.Email = v
	}

	// Storage overrides
	if v := os.Getenv("REZCAL_DB_PATH"); v != "" {
		cfg.Storage.DBPath = v
	}

	// UI overrides
	if v := os.Getenv("REZCAL_UI_THEME"); v != "" {
		cfg.UI.Theme = v
	}
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if _, ok := weekdayNames[strings.ToLower(c.Calendar.WeekStart)]; !ok {
		return fmt.Errorf("invalid week_start: %s", c.Calendar.WeekStart)
	}
	if c.Calendar.SlotMinutes <= 0 || c.Calendar.SlotMinutes > 24*60 {
		return fmt.Errorf("slot_minutes must be between 1 and 1440, got %d", c.Calendar.SlotMinutes)
	}
	switch strings.ToLower(c.Calendar.DefaultView) {
	case "day", "week", "month":
	default:
		return fmt.Errorf("invalid default_view: %s", c.Calendar.DefaultView)
	}
	if c.Storage.DBPath == "" {
		return errors.New("db_path must be set")
	}
	return nil
}

var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// WeekStartDay returns the configured first day of the week.
// Call Validate first; unknown names fall back to Monday.
func (c *Config) WeekStartDay() time.Weekday {
	if d, ok := weekdayNames[strings.ToLower(c.Calendar.WeekStart)]; ok {
		return d
	}
	return time.Monday
}

// HasUser returns true if the current user identity is configured.
func (c *Config) HasUser() bool {
	return c.User.Name != "" || c.User.Email != ""
}

// Save writes the configuration to the default path.
func (c *Config) Save() error {
	return c.SaveTo(DefaultConfigPath())
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
