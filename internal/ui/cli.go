package ui

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/javiermolinar/glowboard/internal/board"
	"github.com/javiermolinar/glowboard/internal/booking"
	"github.com/javiermolinar/glowboard/internal/config"
	"github.com/javiermolinar/glowboard/internal/db"
	"github.com/javiermolinar/glowboard/internal/logging"
	"github.com/javiermolinar/glowboard/internal/metrics"
	"github.com/javiermolinar/glowboard/internal/tui"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// App holds the CLI application state.
type App struct {
	store     booking.Store
	ownsStore bool
	board     *board.Service
	config    *config.Config
	metrics   *metrics.Metrics
	logger    *zerolog.Logger
	logCloser io.Closer
	root      *cobra.Command
	debug     bool // Enable debug logging
}

// NewApp creates a new CLI application. A nil store is opened lazily from
// the configured database path.
func NewApp(store booking.Store, cfg *config.Config) *App {
	a := &App{
		store:   store,
		config:  cfg,
		metrics: metrics.New(),
		logger:  logging.Nop(),
	}

	a.root = &cobra.Command{
		Use:   "glowboard",
		Short: "A weekly appointment board for beauty salons",
		Long: `Glowboard keeps a salon's appointments on a weekly board.

Book services for clients, reuse service templates for color and price,
and see the week laid out from 08:00 to 20:00. Overlapping bookings
are refused.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// The board owns the terminal, so it only logs to the debug file.
			if cmd == a.root {
				return nil
			}
			return a.setupLogger()
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			return a.runBoard()
		},
	}

	a.root.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug logging")

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.configCmd())
	a.root.AddCommand(a.addCmd())
	a.root.AddCommand(a.editCmd())
	a.root.AddCommand(a.deleteCmd())
	a.root.AddCommand(a.listCmd())
	a.root.AddCommand(a.showCmd())
	a.root.AddCommand(a.weekCmd())
	a.root.AddCommand(a.checkCmd())
	a.root.AddCommand(a.templateCmd())
	a.root.AddCommand(a.exportCmd())
	a.root.AddCommand(a.importCmd())
	a.root.AddCommand(a.metricsCmd())

	return a
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "glowboard %s (commit: %s)\n", Version, Commit)
		},
	}
}

func (a *App) setupLogger() error {
	cfg := a.config.Logging
	if a.debug {
		cfg.Level = "debug"
	}
	logger, closer, err := logging.New(cfg, Version)
	if err != nil {
		return fmt.Errorf("setting up logging: %w", err)
	}
	a.logger = logger
	a.logCloser = closer
	return nil
}

func (a *App) runBoard() error {
	logger := logging.Nop()
	if a.debug {
		l, closer, err := logging.NewDebugFile(logging.DebugLogFile, Version)
		if err != nil {
			return err
		}
		defer func() { _ = closer.Close() }()
		logger = l
	}
	a.logger = logger

	var svc *board.Service
	if a.store != nil {
		svc = a.newBoard(a.store)
	}
	return tui.Run(svc, a.config, tui.Options{
		Logger:   logger,
		NewBoard: a.newBoard,
	})
}

// ensureRepo opens the configured database on first use.
func (a *App) ensureRepo() error {
	if a.board != nil {
		return nil
	}
	if a.store == nil {
		store, err := db.New(a.config.Storage.DBPath)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		a.store = store
		a.ownsStore = true
	}
	a.board = a.newBoard(a.store)
	return nil
}

func (a *App) newBoard(store booking.Store) *board.Service {
	return board.New(store,
		board.WithWindow(a.config.Board.FirstHour, a.config.Board.LastHour),
		board.WithDefaultColor(a.config.Board.DefaultColor),
		board.WithLogger(a.logger),
		board.WithMetrics(a.metrics),
	)
}

// SetArgs overrides the command line arguments.
func (a *App) SetArgs(args []string) {
	a.root.SetArgs(args)
}

// SetOutput redirects command output.
func (a *App) SetOutput(w io.Writer) {
	a.root.SetOut(w)
	a.root.SetErr(w)
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.root.Execute()
}

// Close releases the database and log file opened by the app.
func (a *App) Close() error {
	var err error
	if a.ownsStore && a.store != nil {
		err = a.store.Close()
	}
	if a.logCloser != nil {
		_ = a.logCloser.Close()
	}
	return err
}
