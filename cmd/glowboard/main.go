package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/javiermolinar/glowboard/internal/config"
	"github.com/javiermolinar/glowboard/internal/ui"
)

func main() {
	if err := run(); err != nil {
		// Refused submissions already explained themselves
		if !errors.Is(err, ui.ErrNotSaved) {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	app := ui.NewApp(nil, cfg)
	defer func() { _ = app.Close() }()
	return app.Execute()
}
