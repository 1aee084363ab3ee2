package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/glowboard/internal/booking"
	"github.com/javiermolinar/glowboard/internal/dateutil"
	"github.com/javiermolinar/glowboard/internal/summary"
)

func (a *App) showCmd() *cobra.Command {
	var (
		verbose bool
		noColor bool
		showIDs bool
	)

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show today's appointments",
		Long: `Display today's appointments and the free gaps between them.

Use 'glowboard week' for the whole week.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if noColor {
				DisableColor()
			}
			if err := a.ensureRepo(); err != nil {
				return err
			}

			ctx := context.Background()
			today := dateutil.TruncateToDay(time.Now())
			out := cmd.OutOrStdout()

			events, err := a.store.ListEventsByDateRange(ctx, today, today)
			if err != nil {
				return fmt.Errorf("fetching appointments: %w", err)
			}

			fmt.Fprintf(out, "=== %s ===\n\n", formatHeader(today.Format("Monday, January 2, 2006")))

			if len(events) == 0 {
				fmt.Fprintln(out, "No appointments today.")
				return nil
			}

			opts := PrintOpts{Currency: a.config.Board.Currency, Verbose: verbose, ShowID: showIDs}
			maxNameWidth := opts.CalcMaxNameWidth(24)
			day := booking.NewDay(today)
			for _, e := range events {
				PrintEventRow(out, e, opts, maxNameWidth)
				day.Add(e)
			}

			stats := day.Stats()
			fmt.Fprintf(out, "\n  Appointments: %d   Booked: %s   Revenue: %s\n",
				stats.Appointments,
				summary.FormatMinutes(stats.BookedMinutes),
				formatStats(stats.Revenue.Format(a.config.Board.Currency)),
			)

			slots, err := a.board.FreeSlots(ctx, today)
			if err != nil {
				return err
			}
			if len(slots) > 0 {
				fmt.Fprintf(out, "  %s", formatMuted("Free:"))
				for _, s := range slots {
					fmt.Fprintf(out, " %s-%s", s.Start, s.End)
				}
				fmt.Fprintln(out)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Show full service names")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable color output")
	cmd.Flags().BoolVar(&showIDs, "ids", false, "Show appointment IDs")
	return cmd
}
