package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/glowboard/internal/board"
)

func (a *App) editCmd() *cobra.Command {
	var (
		flags   eventFlags
		service string
	)

	cmd := &cobra.Command{
		Use:   "edit [event-id]",
		Short: "Change an appointment",
		Long: `Change an appointment. Fields without a flag keep their current value.

The new slot is checked against every other appointment, so moving an
appointment within its own time range is always allowed.`,
		Example: `  glowboard edit 3f2a... --start=10:00 --end=11:00
  glowboard edit 3f2a... --client="Ana Ruiz"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			ctx := context.Background()
			current, err := a.board.Event(ctx, args[0])
			if err != nil {
				return err
			}

			form := board.FormFromEvent(current)
			set := func(name string, dst *string, value string) {
				if cmd.Flags().Changed(name) {
					*dst = value
				}
			}
			set("service", &form.Service, service)
			set("client", &form.Client, flags.client)
			set("start", &form.Start, flags.start)
			set("end", &form.End, flags.end)
			set("price", &form.Price, flags.price)
			set("color", &form.Color, flags.color)
			if cmd.Flags().Changed("date") {
				form.Date, err = resolveDate(flags.date, time.Now())
				if err != nil {
					return err
				}
			}

			e, err := a.board.SubmitEvent(ctx, board.EventSession{EventID: current.ID}, form)
			if err != nil {
				PrintSubmitError(cmd.ErrOrStderr(), err)
				return fmt.Errorf("%w: %w", ErrNotSaved, err)
			}

			printSaved(cmd, "Updated", e, a.config.Board.Currency)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&service, "service", "", "Service name")

	return cmd
}
