package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/glowboard/internal/board"
	"github.com/javiermolinar/glowboard/internal/export"
)

func (a *App) importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import appointments from a file",
		Long: `Import appointments from an iCalendar feed or a JSON backup.

Every imported appointment goes through the same conflict check as a new
booking: appointments overlapping one already on the board, or one
imported earlier from the same file, are skipped and reported.`,
	}

	cmd.AddCommand(a.importICSCmd())
	cmd.AddCommand(a.importJSONCmd())
	return cmd
}

func (a *App) importICSCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "ics [file]",
		Short:   "Import appointments from an iCalendar file",
		Example: `  glowboard import ics calendar.ics`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			f, err := openInput(args[0])
			if err != nil {
				return err
			}
			defer func() { _ = f.Close() }()

			events, skipped, err := export.ReadICS(f)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, s := range skipped {
				fmt.Fprintf(out, "  %s %s: %v\n", formatWarn("skipped"), s.Summary, s.Err)
			}

			res, err := a.board.ImportEvents(context.Background(), events)
			if err != nil {
				return err
			}
			printImportResult(out, res)
			return nil
		},
	}
}

func (a *App) importJSONCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "json [file]",
		Short:   "Import appointments and templates from a JSON backup",
		Example: `  glowboard import json backup.json`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			f, err := openInput(args[0])
			if err != nil {
				return err
			}
			defer func() { _ = f.Close() }()

			backup, err := export.ReadBackup(f)
			if err != nil {
				return err
			}
			templates, err := backup.BookingTemplates()
			if err != nil {
				return err
			}
			events, err := backup.BookingEvents()
			if err != nil {
				return err
			}

			ctx := context.Background()
			n, err := a.board.ImportTemplates(ctx, templates)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Imported %d templates\n", n)

			res, err := a.board.ImportEvents(ctx, events)
			if err != nil {
				return err
			}
			printImportResult(out, res)
			return nil
		},
	}
}

func printImportResult(w io.Writer, res *board.ImportResult) {
	for _, s := range res.Skipped {
		fmt.Fprintf(w, "  %s %s %s-%s %s (%s): %v\n",
			formatWarn("skipped"), s.Event.DateKey(), s.Event.Start, s.Event.End,
			s.Event.Service, s.Event.Client, s.Err)
	}
	fmt.Fprintf(w, "Imported %d appointments, skipped %d\n", res.Imported, len(res.Skipped))
}

func openInput(path string) (*os.File, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(resolved)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("file does not exist: %s", resolved)
		}
		return nil, fmt.Errorf("checking file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("path is a directory: %s", resolved)
	}

	f, err := os.Open(resolved)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", resolved, err)
	}
	return f, nil
}

func resolvePath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", fmt.Errorf("empty path")
	}

	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving home directory: %w", err)
		}
		path = filepath.Join(home, path[2:])
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	return absPath, nil
}
