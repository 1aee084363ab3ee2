package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/glowboard/internal/config"
	"github.com/javiermolinar/glowboard/internal/tui/theme"
)

func (a *App) configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "View or edit configuration",
		Long: `Interactive configuration management.

If no config file exists, creates one with default values.
Otherwise, displays current config and allows editing.

Every setting can also be overridden with a GLOWBOARD_* environment
variable or a .env file, e.g. GLOWBOARD_DB_PATH or GLOWBOARD_LOG_LEVEL.

Example:
  glowboard config`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigInteractive(cmd.OutOrStdout(), os.Stdin)
		},
	}
}

func runConfigInteractive(out io.Writer, in io.Reader) error {
	configPath := config.DefaultConfigPath()
	fmt.Fprintf(out, "Config file: %s\n\n", configPath)

	// Load existing config or create defaults
	cfg, err := config.LoadFrom(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	_, fileErr := os.Stat(configPath)
	if os.IsNotExist(fileErr) {
		fmt.Fprintln(out, "No config file found. Creating with default values...")
		if err := cfg.Save(); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		fmt.Fprintf(out, "Created %s\n\n", configPath)
	}

	printConfig(out, cfg)

	reader := bufio.NewReader(in)
	if !promptYesNo(out, reader, "\nWould you like to edit the configuration?") {
		return nil
	}

	editConfig(out, reader, cfg)

	// Validate before saving
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	if err := cfg.Save(); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Fprintln(out, "\nConfiguration saved!")
	return nil
}

func editConfig(out io.Writer, reader *bufio.Reader, cfg *config.Config) {
	cfg.Board.FirstHour = promptInt(out, reader, "First hour", cfg.Board.FirstHour)
	cfg.Board.LastHour = promptInt(out, reader, "Closing hour", cfg.Board.LastHour)
	cfg.Board.DefaultColor = promptValue(out, reader, "Default color", cfg.Board.DefaultColor)
	cfg.Board.Currency = promptValue(out, reader, "Currency symbol", cfg.Board.Currency)
	cfg.Storage.DBPath = promptValue(out, reader, "Database path", cfg.Storage.DBPath)
	cfg.UI.Theme = promptTheme(out, reader, cfg.UI.Theme)
	cfg.Logging.Level = promptValue(out, reader, "Log level (debug, info, warn, error)", cfg.Logging.Level)
}

func printConfig(out io.Writer, cfg *config.Config) {
	fmt.Fprintln(out, "Current configuration:")
	fmt.Fprintln(out, "──────────────────────")
	fmt.Fprintln(out, "[board]")
	fmt.Fprintf(out, "  first_hour       = %d\n", cfg.Board.FirstHour)
	fmt.Fprintf(out, "  last_hour        = %d\n", cfg.Board.LastHour)
	fmt.Fprintf(out, "  default_color    = %s\n", cfg.Board.DefaultColor)
	fmt.Fprintf(out, "  currency         = %s\n", cfg.Board.Currency)
	fmt.Fprintln(out, "\n[storage]")
	fmt.Fprintf(out, "  db_path          = %s\n", cfg.Storage.DBPath)
	fmt.Fprintln(out, "\n[ui]")
	fmt.Fprintf(out, "  theme            = %s\n", cfg.UI.Theme)
	fmt.Fprintln(out, "\n[logging]")
	fmt.Fprintf(out, "  level            = %s\n", cfg.Logging.Level)
	fmt.Fprintf(out, "  format           = %s\n", cfg.Logging.Format)
	fmt.Fprintf(out, "  output           = %s\n", cfg.Logging.Output)
	if cfg.Logging.FilePath != "" {
		fmt.Fprintf(out, "  file_path        = %s\n", cfg.Logging.FilePath)
	}
}

func promptYesNo(out io.Writer, reader *bufio.Reader, question string) bool {
	fmt.Fprintf(out, "%s [y/N]: ", question)
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(strings.ToLower(input))
	return input == "y" || input == "yes"
}

func promptValue(out io.Writer, reader *bufio.Reader, label, current string) string {
	if current == "" {
		fmt.Fprintf(out, "  %s: ", label)
	} else {
		fmt.Fprintf(out, "  %s [%s]: ", label, current)
	}
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(input)
	if input == "" {
		return current
	}
	return input
}

func promptInt(out io.Writer, reader *bufio.Reader, label string, current int) int {
	for {
		value := promptValue(out, reader, label, strconv.Itoa(current))
		n, err := strconv.Atoi(value)
		if err == nil {
			return n
		}
		fmt.Fprintf(out, "  Invalid number %q\n", value)
	}
}

func promptTheme(out io.Writer, reader *bufio.Reader, current string) string {
	options := strings.Join(theme.Available(), ", ")
	label := fmt.Sprintf("UI theme (%s)", options)
	for {
		value := strings.ToLower(promptValue(out, reader, label, current))
		if theme.IsAvailable(value) {
			return value
		}
		fmt.Fprintf(out, "  Invalid theme %q. Available: %s\n", value, options)
	}
}
