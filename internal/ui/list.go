package ui

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/glowboard/internal/dateutil"
)

func (a *App) listCmd() *cobra.Command {
	var (
		startDate string
		endDate   string
		showIDs   bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List appointments in a date range",
		Long: `List all appointments within a date range.

If no dates are specified, lists today's appointments.
If only --start is specified, lists appointments for that single day.
If both --start and --end are specified, lists appointments in that range (inclusive).`,
		Example: `  glowboard list
  glowboard list --start=2024-05-06
  glowboard list --start=2024-05-06 --end=2024-05-12 --ids`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			dateRange, err := dateutil.NewDateRange(startDate, endDate)
			if err != nil {
				return err
			}

			events, err := a.store.ListEventsByDateRange(context.Background(), dateRange.Start, dateRange.End)
			if err != nil {
				return fmt.Errorf("listing appointments: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(events) == 0 {
				fmt.Fprintln(out, "No appointments found in the specified date range.")
				return nil
			}

			opts := PrintOpts{Currency: a.config.Board.Currency, ShowID: showIDs}
			printEventsByDay(out, events, opts, opts.CalcMaxNameWidth(24))
			return nil
		},
	}

	cmd.Flags().StringVar(&startDate, "start", "", "Start date (YYYY-MM-DD, defaults to today)")
	cmd.Flags().StringVar(&endDate, "end", "", "End date (YYYY-MM-DD, defaults to start date)")
	cmd.Flags().BoolVar(&showIDs, "ids", false, "Show appointment IDs")

	return cmd
}
