package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Board.FirstHour != 8 {
		t.Errorf("expected first_hour 8, got %d", cfg.Board.FirstHour)
	}
	if cfg.Board.LastHour != 20 {
		t.Errorf("expected last_hour 20, got %d", cfg.Board.LastHour)
	}
	if cfg.Board.DefaultColor != "#f8c8dc" {
		t.Errorf("expected default_color #f8c8dc, got %s", cfg.Board.DefaultColor)
	}
	if cfg.UI.Theme != "rose" {
		t.Errorf("expected theme rose, got %s", cfg.UI.Theme)
	}
	if cfg.Logging.Level != "warn" || cfg.Logging.Output != "stderr" {
		t.Errorf("unexpected logging defaults: %+v", cfg.Logging)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
}

func TestLoadFrom_FileNotExists(t *testing.T) {
	cfg, err := LoadFrom("/nonexistent/path/config.toml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Board.FirstHour != 8 {
		t.Errorf("expected default first_hour, got %d", cfg.Board.FirstHour)
	}
}

func TestLoadFrom_ValidFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")

	content := `
[board]
first_hour = 9
last_hour = 19
default_color = "#aabbcc"
currency = "$"

[storage]
db_path = "/tmp/test.db"

[ui]
theme = "mint"

[logging]
level = "debug"
format = "json"
`
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Board.FirstHour != 9 || cfg.Board.LastHour != 19 {
		t.Errorf("expected window 9-19, got %d-%d", cfg.Board.FirstHour, cfg.Board.LastHour)
	}
	if cfg.Board.DefaultColor != "#aabbcc" {
		t.Errorf("expected default_color #aabbcc, got %s", cfg.Board.DefaultColor)
	}
	if cfg.Board.Currency != "$" {
		t.Errorf("expected currency $, got %s", cfg.Board.Currency)
	}
	if cfg.Storage.DBPath != "/tmp/test.db" {
		t.Errorf("expected db_path /tmp/test.db, got %s", cfg.Storage.DBPath)
	}
	if cfg.UI.Theme != "mint" {
		t.Errorf("expected theme mint, got %s", cfg.UI.Theme)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "json" {
		t.Errorf("unexpected logging: %+v", cfg.Logging)
	}
	// Unset keys keep their defaults
	if cfg.Logging.Output != "stderr" {
		t.Errorf("expected default output stderr, got %s", cfg.Logging.Output)
	}
}

func TestLoadFrom_InvalidFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(configPath, []byte("[board\nfirst_hour = "), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	if _, err := LoadFrom(configPath); err == nil {
		t.Error("expected parse error")
	}
}

func TestLoadFrom_EnvOverrides(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")

	content := `
[board]
first_hour = 9
last_hour = 18

[storage]
db_path = "/tmp/test.db"
`
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	t.Setenv("GLOWBOARD_FIRST_HOUR", "10")
	t.Setenv("GLOWBOARD_UI_THEME", "night")
	t.Setenv("GLOWBOARD_LOG_LEVEL", "info")

	cfg, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Env should override file
	if cfg.Board.FirstHour != 10 {
		t.Errorf("expected first_hour 10 from env, got %d", cfg.Board.FirstHour)
	}
	// File value should be kept when no env override
	if cfg.Board.LastHour != 18 {
		t.Errorf("expected last_hour 18 from file, got %d", cfg.Board.LastHour)
	}
	// Env should override default
	if cfg.UI.Theme != "night" {
		t.Errorf("expected theme night from env, got %s", cfg.UI.Theme)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected level info from env, got %s", cfg.Logging.Level)
	}
}

func TestLoadFrom_InvalidEnvHour(t *testing.T) {
	t.Setenv("GLOWBOARD_LAST_HOUR", "late")

	if _, err := LoadFrom(filepath.Join(t.TempDir(), "config.toml")); err == nil {
		t.Error("expected error for non-numeric GLOWBOARD_LAST_HOUR")
	}
}

func TestLoadFrom_DotEnv(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")

	dotenv := "GLOWBOARD_CURRENCY=£\nGLOWBOARD_DB_PATH=/tmp/from-dotenv.db\n"
	if err := os.WriteFile(filepath.Join(tmpDir, ".env"), []byte(dotenv), 0o644); err != nil {
		t.Fatalf("failed to write .env: %v", err)
	}

	// Process environment beats .env
	t.Setenv("GLOWBOARD_DB_PATH", "/tmp/from-env.db")

	cfg, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Board.Currency != "£" {
		t.Errorf("expected currency from .env, got %s", cfg.Board.Currency)
	}
	if cfg.Storage.DBPath != "/tmp/from-env.db" {
		t.Errorf("expected db_path from env, got %s", cfg.Storage.DBPath)
	}
	if _, ok := os.LookupEnv("GLOWBOARD_CURRENCY"); ok {
		t.Error(".env values must not leak into the process environment")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(*Config) {}, wantErr: false},
		{name: "full day", mutate: func(c *Config) { c.Board.FirstHour, c.Board.LastHour = 0, 24 }, wantErr: false},
		{name: "first after last", mutate: func(c *Config) { c.Board.FirstHour, c.Board.LastHour = 18, 9 }, wantErr: true},
		{name: "first equals last", mutate: func(c *Config) { c.Board.FirstHour, c.Board.LastHour = 9, 9 }, wantErr: true},
		{name: "negative first", mutate: func(c *Config) { c.Board.FirstHour = -1 }, wantErr: true},
		{name: "last past midnight", mutate: func(c *Config) { c.Board.LastHour = 25 }, wantErr: true},
		{name: "bad color", mutate: func(c *Config) { c.Board.DefaultColor = "pink" }, wantErr: true},
		{name: "short color", mutate: func(c *Config) { c.Board.DefaultColor = "#fff" }, wantErr: true},
		{name: "empty db path", mutate: func(c *Config) { c.Storage.DBPath = "" }, wantErr: true},
		{name: "bad level", mutate: func(c *Config) { c.Logging.Level = "loud" }, wantErr: true},
		{name: "bad format", mutate: func(c *Config) { c.Logging.Format = "xml" }, wantErr: true},
		{name: "bad output", mutate: func(c *Config) { c.Logging.Output = "syslog" }, wantErr: true},
		{name: "file output without path", mutate: func(c *Config) { c.Logging.Output = "file" }, wantErr: true},
		{name: "file output with path", mutate: func(c *Config) {
			c.Logging.Output = "file"
			c.Logging.FilePath = "/tmp/glowboard.log"
		}, wantErr: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestDayStartEnd(t *testing.T) {
	cfg := Default()
	if cfg.DayStart() != "08:00" || cfg.DayEnd() != "20:00" {
		t.Errorf("got %s-%s", cfg.DayStart(), cfg.DayEnd())
	}
}

func TestExpandPath(t *testing.T) {
	home, _ := os.UserHomeDir()

	tests := []struct {
		input string
		want  string
	}{
		{"~/test.db", filepath.Join(home, "test.db")},
		{"/absolute/path.db", "/absolute/path.db"},
		{"relative/path.db", "relative/path.db"},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			got := expandPath(tc.input)
			if got != tc.want {
				t.Errorf("expandPath(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestSaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "nested", "config.toml")

	cfg := Default()
	cfg.Board.FirstHour = 7
	cfg.Board.LastHour = 21
	cfg.UI.Theme = "night"

	if err := cfg.SaveTo(configPath); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	loaded, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if loaded.Board.FirstHour != 7 || loaded.Board.LastHour != 21 {
		t.Errorf("expected window 7-21, got %d-%d", loaded.Board.FirstHour, loaded.Board.LastHour)
	}
	if loaded.UI.Theme != "night" {
		t.Errorf("expected theme night, got %s", loaded.UI.Theme)
	}
}
