package ui

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/javiermolinar/glowboard/internal/board"
	"github.com/javiermolinar/glowboard/internal/dateutil"
)

func (a *App) weekCmd() *cobra.Command {
	var (
		date     string
		showGrid bool
		copyText bool
		verbose  bool
		noColor  bool
	)

	cmd := &cobra.Command{
		Use:   "week",
		Short: "Show a week of appointments",
		Long: `Display Monday through Sunday of the week containing --date (default
today), with totals and a per-service breakdown.

With --grid the week is drawn as the board: one row per hour from opening
to closing, one column per day. Appointments that cannot be placed on the
board, e.g. starting at or after closing time, are listed separately.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if noColor {
				DisableColor()
			}
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

			out := cmd.OutOrStdout()
			currency := a.config.Board.Currency

			if copyText {
				if err := clipboard.WriteAll(wb.Summary.Text(currency)); err != nil {
					return fmt.Errorf("copying to clipboard: %w", err)
				}
				fmt.Fprintln(out, "Week summary copied to clipboard.")
				return nil
			}

			sum := wb.Summary
			header := fmt.Sprintf("WEEK: %s - %s", sum.Start.Format("Mon Jan 2"), sum.End.Format("Mon Jan 2, 2006"))
			fmt.Fprintf(out, "\n  %s\n", formatHeader(header))
			fmt.Fprintln(out, strings.Repeat("─", 74))

			switch {
			case showGrid:
				RenderGrid(out, wb, a.board.Mapper(), gridColumnWidth())
			case len(sum.Events) == 0:
				fmt.Fprintln(out, "  No appointments this week.")
			default:
				opts := PrintOpts{Currency: currency, Verbose: verbose}
				printEventsByDay(out, sum.Events, opts, opts.CalcMaxNameWidth(24))
			}

			printSkipped(out, wb)

			fmt.Fprintln(out, strings.Repeat("─", 74))
			PrintWeekStats(out, sum.Stats, currency)
			if len(sum.Services) > 0 {
				fmt.Fprintln(out)
				PrintServiceStats(out, sum.Services, currency)
			}
			fmt.Fprintln(out)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Any day of the week to show (default: today)")
	cmd.Flags().BoolVar(&showGrid, "grid", false, "Draw the week as a board")
	cmd.Flags().BoolVar(&copyText, "copy", false, "Copy a plain text summary to the clipboard")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Show full service names")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable color output")
	return cmd
}

func printSkipped(w io.Writer, wb *board.WeekBoard) {
	if len(wb.Layout.Skipped) == 0 {
		return
	}
	fmt.Fprintf(w, "\n  %s\n", formatWarn("Outside the board:"))
	for _, s := range wb.Layout.Skipped {
		fmt.Fprintf(w, "  %s %s-%s %s (%s)\n", s.Event.DateKey(), s.Event.Start, s.Event.End, s.Event.Service, s.Event.Client)
	}
}
