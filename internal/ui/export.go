package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/glowboard/internal/booking"
	"github.com/javiermolinar/glowboard/internal/dateutil"
	"github.com/javiermolinar/glowboard/internal/export"
)

func (a *App) exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export appointments to a file",
		Long: `Export appointments as an iCalendar feed, a week workbook, or a JSON
backup that 'glowboard import json' reads back.`,
	}

	cmd.AddCommand(a.exportICSCmd())
	cmd.AddCommand(a.exportXLSXCmd())
	cmd.AddCommand(a.exportJSONCmd())
	return cmd
}

func (a *App) exportICSCmd() *cobra.Command {
	var startDate, endDate, out string

	cmd := &cobra.Command{
		Use:     "ics",
		Short:   "Export appointments as iCalendar",
		Example: `  glowboard export ics --start=2024-05-06 --end=2024-05-12 --out=week.ics`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			ctx := context.Background()
			var (
				events []*booking.Event
				err    error
			)
			if startDate == "" && endDate == "" {
				events, err = a.store.ListEvents(ctx)
			} else {
				var r *dateutil.DateRange
				r, err = dateutil.NewDateRange(startDate, endDate)
				if err != nil {
					return err
				}
				events, err = a.store.ListEventsByDateRange(ctx, r.Start, r.End)
			}
			if err != nil {
				return fmt.Errorf("fetching appointments: %w", err)
			}

			return writeOutput(cmd, out, func(w io.Writer) error {
				return export.WriteICS(w, events, a.config.Board.Currency, time.Now())
			}, fmt.Sprintf("Exported %d appointments", len(events)))
		},
	}

	cmd.Flags().StringVar(&startDate, "start", "", "Start date (YYYY-MM-DD, default: everything)")
	cmd.Flags().StringVar(&endDate, "end", "", "End date (YYYY-MM-DD, defaults to start date)")
	cmd.Flags().StringVarP(&out, "out", "o", "-", "Output file, - for stdout")
	return cmd
}

func (a *App) exportXLSXCmd() *cobra.Command {
	var date, out string

	cmd := &cobra.Command{
		Use:     "xlsx",
		Short:   "Export a week as a spreadsheet",
		Example: `  glowboard export xlsx --date=2024-05-06 --out=week.xlsx`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			day, err := resolveDate(date, time.Now())
			if err != nil {
				return err
			}
			ref, err := dateutil.ParseDate(day)
			if err != nil {
				return err
			}

			wb, err := a.board.Week(context.Background(), ref)
			if err != nil {
				return fmt.Errorf("building week: %w", err)
			}

			if out == "" {
				out = fmt.Sprintf("glowboard_%s.xlsx", dateutil.FormatDate(wb.Monday()))
			}
			return writeOutput(cmd, out, func(w io.Writer) error {
				return export.WriteWeekXLSX(w, wb, a.board.Mapper(), a.config.Board.Currency)
			}, fmt.Sprintf("Exported week of %s", dateutil.FormatDate(wb.Monday())))
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Any day of the week (default: today)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (default: glowboard_<monday>.xlsx)")
	return cmd
}

func (a *App) exportJSONCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "json",
		Short: "Export all appointments and templates as a JSON backup",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			ctx := context.Background()
			events, err := a.store.ListEvents(ctx)
			if err != nil {
				return fmt.Errorf("fetching appointments: %w", err)
			}
			templates, err := a.store.ListTemplates(ctx)
			if err != nil {
				return fmt.Errorf("fetching templates: %w", err)
			}

			return writeOutput(cmd, out, func(w io.Writer) error {
				return export.NewBackup(events, templates).WriteJSON(w)
			}, fmt.Sprintf("Exported %d appointments and %d templates", len(events), len(templates)))
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "-", "Output file, - for stdout")
	return cmd
}

// writeOutput runs write against stdout or the named file and reports done
// on stderr when writing to a file.
func writeOutput(cmd *cobra.Command, path string, write func(io.Writer) error, done string) error {
	if path == "-" {
		return write(cmd.OutOrStdout())
	}

	resolved, err := resolvePath(path)
	if err != nil {
		return err
	}
	f, err := os.Create(resolved)
	if err != nil {
		return fmt.Errorf("creating %s: %w", resolved, err)
	}
	if err := write(f); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", resolved, err)
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "%s to %s\n", done, resolved)
	return nil
}
