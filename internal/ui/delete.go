package ui

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func (a *App) deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "delete [event-id]",
		Aliases: []string{"rm"},
		Short:   "Delete an appointment",
		Long: `Delete an appointment by its ID.

Example:
  glowboard delete 3f2a...`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			ok, err := a.board.DeleteEvent(context.Background(), args[0])
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("no appointment with ID %s", args[0])
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Deleted appointment %s\n", args[0])
			return nil
		},
	}
}
