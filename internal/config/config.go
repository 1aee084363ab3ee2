// Package config handles configuration loading from files, defaults, and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

// EnvPrefix prefixes every environment variable override.
const EnvPrefix = "GLOWBOARD_"

// Config holds the application configuration.
type Config struct {
	Board   BoardConfig   `toml:"board"`
	Storage StorageConfig `toml:"storage"`
	UI      UIConfig      `toml:"ui"`
	Logging LoggingConfig `toml:"logging"`
}

// BoardConfig holds the weekly board settings.
type BoardConfig struct {
	FirstHour    int    `toml:"first_hour"`    // first bookable hour, e.g. 8
	LastHour     int    `toml:"last_hour"`     // closing hour, e.g. 20
	DefaultColor string `toml:"default_color"` // e.g. "#f8c8dc"
	Currency     string `toml:"currency"`      // e.g. "€"
}

// StorageConfig holds database settings.
type StorageConfig struct {
	DBPath string `toml:"db_path"`
}

// UIConfig holds TUI settings.
type UIConfig struct {
	Theme string `toml:"theme"` // "rose", "mint", "night"
}

// LoggingConfig holds logger settings.
type LoggingConfig struct {
	Level    string `toml:"level"`     // "debug", "info", "warn", "error"
	Format   string `toml:"format"`    // "console" or "json"
	Output   string `toml:"output"`    // "stderr", "stdout" or "file"
	FilePath string `toml:"file_path"` // used when output is "file"
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Board: BoardConfig{
			FirstHour:    8,
			LastHour:     20,
			DefaultColor: "#f8c8dc",
			Currency:     "€",
		},
		Storage: StorageConfig{
			DBPath: defaultDBPath(),
		},
		UI: UIConfig{
			Theme: "rose",
		},
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "console",
			Output: "stderr",
		},
	}
}

// defaultDBPath returns the default database path.
func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "glowboard.db"
	}
	return filepath.Join(home, ".local", "share", "glowboard", "glowboard.db")
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "glowboard", "config.toml")
}

// Load loads configuration from the default path, merging with defaults and env vars.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigPath())
}

// LoadFrom loads configuration from the specified path.
// It starts with defaults, overlays the file if it exists, then applies
// overrides from a .env file (next to the config or in the working directory)
// and finally from the process environment.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if err := loadFromFile(path, cfg); err != nil {
		return nil, err
	}

	dotenv, err := readDotEnv(filepath.Join(filepath.Dir(path), ".env"), ".env")
	if err != nil {
		return nil, err
	}

	lookup := func(key string) string {
		if v, ok := os.LookupEnv(key); ok {
			return v
		}
		return dotenv[key]
	}
	if err := applyEnvOverrides(cfg, lookup); err != nil {
		return nil, err
	}

	cfg.Storage.DBPath = expandPath(cfg.Storage.DBPath)
	cfg.Logging.FilePath = expandPath(cfg.Logging.FilePath)

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
			return nil
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}

// readDotEnv merges the variables of every existing .env file, earlier files winning.
// The process environment is left untouched.
func readDotEnv(paths ...string) (map[string]string, error) {
	vars := make(map[string]string)
	for _, p := range paths {
		m, err := godotenv.Read(p)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("reading %s: %w", p, err)
		}
		for k, v := range m {
			if _, ok := vars[k]; !ok {
				vars[k] = v
			}
		}
	}
	return vars, nil
}

// applyEnvOverrides applies GLOWBOARD_* overrides to the config.
// Environment variables take precedence over file config.
func applyEnvOverrides(cfg *Config, getenv func(string) string) error {
	// Board overrides
	if v := getenv(EnvPrefix + "FIRST_HOUR"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%sFIRST_HOUR: %w", EnvPrefix, err)
		}
		cfg.Board.FirstHour = n
	}
	if v := getenv(EnvPrefix + "LAST_HOUR"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%sLAST_HOUR: %w", EnvPrefix, err)
		}
		cfg.Board.LastHour = n
	}
	if v := getenv(EnvPrefix + "DEFAULT_COLOR"); v != "" {
		cfg.Board.DefaultColor = v
	}
	if v := getenv(EnvPrefix + "CURRENCY"); v != "" {
		cfg.Board.Currency = v
	}

	// Storage overrides
	if v := getenv(EnvPrefix + "DB_PATH"); v != "" {
		cfg.Storage.DBPath = v
	}

	// UI overrides
	if v := getenv(EnvPrefix + "UI_THEME"); v != "" {
		cfg.UI.Theme = v
	}

	// Logging overrides
	if v := getenv(EnvPrefix + "LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := getenv(EnvPrefix + "LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
	if v := getenv(EnvPrefix + "LOG_OUTPUT"); v != "" {
		cfg.Logging.Output = v
	}
	if v := getenv(EnvPrefix + "LOG_FILE"); v != "" {
		cfg.Logging.FilePath = v
	}

	return nil
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
	if c.Board.FirstHour < 0 || c.Board.LastHour > 24 {
		return errors.New("first_hour and last_hour must be between 0 and 24")
	}
	if c.Board.FirstHour >= c.Board.LastHour {
		return errors.New("first_hour must be before last_hour")
	}
	if !isHexColor(c.Board.DefaultColor) {
		return fmt.Errorf("default_color must be in #rrggbb format, got %q", c.Board.DefaultColor)
	}
	if c.Storage.DBPath == "" {
		return errors.New("db_path must be set")
	}
	if !validLevels[strings.ToLower(c.Logging.Level)] {
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("invalid log format: %s", c.Logging.Format)
	}
	switch c.Logging.Output {
	case "stderr", "stdout":
	case "file":
		if c.Logging.FilePath == "" {
			return errors.New("file_path must be set when log output is file")
		}
	default:
		return fmt.Errorf("invalid log output: %s", c.Logging.Output)
	}
	return nil
}

var validLevels = map[string]bool{
	"trace":    true,
	"debug":    true,
	"info":     true,
	"warn":     true,
	"error":    true,
	"disabled": true,
}

func isHexColor(s string) bool {
	if len(s) != 7 || s[0] != '#' {
		return false
	}
	for _, c := range strings.ToLower(s[1:]) {
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}

// DayStart returns the opening time as "HH:MM".
func (c *Config) DayStart() string {
	return fmt.Sprintf("%02d:00", c.Board.FirstHour)
}

// DayEnd returns the closing time as "HH:MM".
func (c *Config) DayEnd() string {
	return fmt.Sprintf("%02d:00", c.Board.LastHour)
}

// Save writes the configuration to the default path.
func (c *Config) Save() error {
	return c.SaveTo(DefaultConfigPath())
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
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
