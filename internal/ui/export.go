package ui

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rezcal/rezcal/internal/ics"
)

func (a *App) exportCmd() *cobra.Command {
	var (
		fromDate string
		toDate   string
		output   string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export reservations as iCalendar",
		Long: `Export reservations in a date range as an iCalendar (.ics) file.

Writes to stdout unless --output is given. Other calendar applications
can subscribe to or import the resulting file.`,
		Example: `  rezcal export --from=2025-06-01 --to=2025-06-30 --output=june.ics
  rezcal export > today.ics`,
		RunE: func(c *cobra.Command, _ []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			within, err := buildRange(fromDate, toDate)
			if err != nil {
				return err
			}

			items, err := a.repo.ListItems(context.Background(), within)
			if err != nil {
				return fmt.Errorf("listing reservations: %w", err)
			}

			payload, err := ics.Export(items)
			if err != nil {
				return fmt.Errorf("exporting calendar: %w", err)
			}

			if output == "" {
				fmt.Print(payload)
				return nil
			}

			if err := os.WriteFile(output, []byte(payload), 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", output, err)
			}
			fmt.Fprintf(c.ErrOrStderr(), "Exported %d reservations to %s\n", len(items), output)
			return nil
		},
	}

	cmd.Flags().StringVar(&fromDate, "from", "", "Start date (YYYY-MM-DD or relative, default: today)")
	cmd.Flags().StringVar(&toDate, "to", "", "End date (YYYY-MM-DD or relative, default: from date)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to file instead of stdout")

	return cmd
}
