package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/glowboard/internal/booking"
	"github.com/javiermolinar/glowboard/internal/dateutil"
	"github.com/javiermolinar/glowboard/internal/scheduler"
)

func (a *App) checkCmd() *cobra.Command {
	var (
		date    string
		start   string
		end     string
		exclude string
	)

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check whether a time slot is free",
		Long: `Check a time slot against the appointments of that day.

Intervals are half-open: an appointment ending at 10:00 does not block
one starting at 10:00. Use --exclude with an appointment ID to ignore
it, as when moving that appointment.`,
		Example: `  glowboard check --date=2024-05-06 --start=09:30 --end=10:30`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			for _, t := range []string{start, end} {
				if err := booking.ValidateTimeFormat(t); err != nil {
					return fmt.Errorf("%w, got %q", err, t)
				}
			}

			day, err := resolveDate(date, time.Now())
			if err != nil {
				return err
			}
			ref, err := dateutil.ParseDate(day)
			if err != nil {
				return err
			}

			ctx := context.Background()
			events, err := a.store.ListEventsByDateRange(ctx, ref, ref)
			if err != nil {
				return fmt.Errorf("fetching appointments: %w", err)
			}

			out := cmd.OutOrStdout()
			conflict := scheduler.FindConflict(events, ref, start, end, exclude)
			if conflict == nil {
				fmt.Fprintf(out, "%s %s %s-%s\n", formatStats("Free:"), day, start, end)
				if msg := a.board.Scheduler().ValidateTimeSlot(start, end); msg != "" {
					fmt.Fprintf(out, "%s %s\n", formatWarn("Note:"), msg)
				}
				return nil
			}

			fmt.Fprintf(out, "%s %s %s-%s overlaps %s-%s %s (%s)\n",
				formatWarn("Taken:"), day, start, end,
				conflict.Start, conflict.End, conflict.Service, conflict.Client)

			dur := booking.TimeToMinutes(end) - booking.TimeToMinutes(start)
			if slot, ok := a.board.Scheduler().NextFreeSlot(events, ref, dur, start, exclude); ok {
				fmt.Fprintf(out, "Next free slot: %s\n", slot)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Date (default: today)")
	cmd.Flags().StringVar(&start, "start", "", "Start time (HH:MM, required)")
	cmd.Flags().StringVar(&end, "end", "", "End time (HH:MM, required)")
	cmd.Flags().StringVar(&exclude, "exclude", "", "Appointment ID to ignore")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")

	return cmd
}
