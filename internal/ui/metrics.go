package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"

	"github.com/javiermolinar/glowboard/internal/dateutil"
)

func (a *App) metricsCmd() *cobra.Command {
	var date, textfile string

	cmd := &cobra.Command{
		Use:   "metrics",
		Short: "Print the week's figures as Prometheus metrics",
		Long: `Compute the figures of the week containing --date and print them in the
Prometheus text format. With --textfile they are written atomically to a
file for the node_exporter textfile collector, e.g. from cron.`,
		Example: `  glowboard metrics
  glowboard metrics --textfile=/var/lib/node_exporter/glowboard.prom`,
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

			if _, err := a.board.Week(context.Background(), ref); err != nil {
				return err
			}

			if textfile != "" {
				path, err := resolvePath(textfile)
				if err != nil {
					return err
				}
				if err := a.metrics.WriteTextfile(path); err != nil {
					return err
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "Wrote metrics to %s\n", path)
				return nil
			}

			families, err := a.metrics.Gatherer().Gather()
			if err != nil {
				return fmt.Errorf("gathering metrics: %w", err)
			}
			enc := expfmt.NewEncoder(cmd.OutOrStdout(), expfmt.NewFormat(expfmt.TypeTextPlain))
			for _, mf := range families {
				if err := enc.Encode(mf); err != nil {
					return fmt.Errorf("encoding metrics: %w", err)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Any day of the week (default: today)")
	cmd.Flags().StringVar(&textfile, "textfile", "", "Write to this file instead of stdout")
	return cmd
}
