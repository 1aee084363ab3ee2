package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/glowboard/internal/board"
	"github.com/javiermolinar/glowboard/internal/booking"
	"github.com/javiermolinar/glowboard/internal/dateutil"
)

// eventFlags are the form fields shared by add and edit.
type eventFlags struct {
	client string
	date   string
	start  string
	end    string
	price  string
	color  string
}

func (f *eventFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.client, "client", "", "Client name")
	cmd.Flags().StringVar(&f.date, "date", "", "Date (YYYY-MM-DD, today, tomorrow or a weekday)")
	cmd.Flags().StringVar(&f.start, "start", "", "Start time (HH:MM)")
	cmd.Flags().StringVar(&f.end, "end", "", "End time (HH:MM)")
	cmd.Flags().StringVar(&f.price, "price", "", "Price (defaults to the template price)")
	cmd.Flags().StringVar(&f.color, "color", "", "Block color (#rrggbb, ignored when a template matches)")
}

// resolveDate accepts YYYY-MM-DD or a relative date and returns YYYY-MM-DD.
func resolveDate(s string, now time.Time) (string, error) {
	if s == "" {
		return dateutil.FormatDate(now), nil
	}
	d, err := dateutil.ParseRelativeDate(s, now)
	if err != nil {
		return "", err
	}
	return dateutil.FormatDate(d), nil
}

func (a *App) addCmd() *cobra.Command {
	var flags eventFlags

	cmd := &cobra.Command{
		Use:   "add [service]",
		Short: "Book an appointment",
		Long: `Book an appointment on the board.

When the service matches a template, its color is used and its price
fills in a missing --price. The booking is refused when it overlaps
another appointment on the same day.`,
		Example: `  glowboard add "Manicure" --client=Ana --date=2024-05-06 --start=09:00 --end=10:00
  glowboard add "Color" --client=Bea --date=friday --start=16:00 --end=18:00 --price=60`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			date, err := resolveDate(flags.date, time.Now())
			if err != nil {
				return err
			}

			e, err := a.board.SubmitEvent(context.Background(), board.EventSession{}, board.EventForm{
				Service: args[0],
				Client:  flags.client,
				Color:   flags.color,
				Price:   flags.price,
				Date:    date,
				Start:   flags.start,
				End:     flags.end,
			})
			if err != nil {
				PrintSubmitError(cmd.ErrOrStderr(), err)
				return fmt.Errorf("%w: %w", ErrNotSaved, err)
			}

			printSaved(cmd, "Booked", e, a.config.Board.Currency)
			return nil
		},
	}

	flags.register(cmd)
	_ = cmd.MarkFlagRequired("client")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")

	return cmd
}

func printSaved(cmd *cobra.Command, verb string, e *booking.Event, currency string) {
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s for %s on %s %s-%s (%s) [%s]\n",
		verb,
		e.Service,
		e.Client,
		e.DateKey(),
		e.Start,
		e.End,
		e.Price.Format(currency),
		e.ID,
	)
}
