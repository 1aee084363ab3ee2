package ui

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/glowboard/internal/board"
)

func (a *App) templateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "template",
		Aliases: []string{"tpl"},
		Short:   "Manage service templates",
		Long: `Service templates hold the default color and price of a service.

Booking a service whose name matches a template, ignoring case, uses the
template color and fills in the price when none is given.`,
	}

	cmd.AddCommand(a.templateAddCmd())
	cmd.AddCommand(a.templateEditCmd())
	cmd.AddCommand(a.templateDeleteCmd())
	cmd.AddCommand(a.templateListCmd())
	return cmd
}

func (a *App) templateAddCmd() *cobra.Command {
	var color, price string

	cmd := &cobra.Command{
		Use:     "add [name]",
		Short:   "Create a service template",
		Example: `  glowboard template add "Manicure" --price=15 --color=#f8c8dc`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			t, err := a.board.SubmitTemplate(context.Background(), board.TemplateSession{}, board.TemplateForm{
				Name:  args[0],
				Color: color,
				Price: price,
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created template %s %s %s [%s]\n",
				swatch(t.Color), t.Name, t.Price.Format(a.config.Board.Currency), t.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&color, "color", "", "Block color (#rrggbb, default from config)")
	cmd.Flags().StringVar(&price, "price", "", "Default price (required)")
	_ = cmd.MarkFlagRequired("price")
	return cmd
}

func (a *App) templateEditCmd() *cobra.Command {
	var name, color, price string

	cmd := &cobra.Command{
		Use:   "edit [template-id]",
		Short: "Change a service template",
		Long: `Change a service template. Fields without a flag keep their current value.
Appointments already booked keep their color and price.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			ctx := context.Background()
			current, err := a.board.Template(ctx, args[0])
			if err != nil {
				return err
			}

			form := board.FormFromTemplate(current)
			if cmd.Flags().Changed("name") {
				form.Name = name
			}
			if cmd.Flags().Changed("color") {
				form.Color = color
			}
			if cmd.Flags().Changed("price") {
				form.Price = price
			}

			t, err := a.board.SubmitTemplate(ctx, board.TemplateSession{TemplateID: current.ID}, form)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Updated template %s %s %s\n",
				swatch(t.Color), t.Name, t.Price.Format(a.config.Board.Currency))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Service name")
	cmd.Flags().StringVar(&color, "color", "", "Block color (#rrggbb)")
	cmd.Flags().StringVar(&price, "price", "", "Default price")
	return cmd
}

func (a *App) templateDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "delete [template-id]",
		Aliases: []string{"rm"},
		Short:   "Delete a service template",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			ok, err := a.board.DeleteTemplate(context.Background(), args[0])
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("no template with ID %s", args[0])
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Deleted template %s\n", args[0])
			return nil
		},
	}
}

func (a *App) templateListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List service templates",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			templates, err := a.board.Templates(context.Background())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(templates) == 0 {
				fmt.Fprintln(out, "No templates yet. Create one with 'glowboard template add'.")
				return nil
			}
			for _, t := range templates {
				fmt.Fprintf(out, "  %s %-24s %10s  %s\n",
					swatch(t.Color),
					truncate(t.Name, 24),
					t.Price.Format(a.config.Board.Currency),
					formatMuted(t.ID),
				)
			}
			return nil
		},
	}
}
