package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rezcal/rezcal/internal/calendar"
	"github.com/rezcal/rezcal/internal/dateutil"
	"github.com/rezcal/rezcal/internal/interval"
)

func (a *App) listCmd() *cobra.Command {
	var (
		fromDate string
		toDate   string
		noColor  bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List reservations in a date range",
		Long: `List all reservations within a date range.

If no dates are specified, lists today's reservations.
If only --from is specified, lists reservations for that single day.
If both --from and --to are specified, lists the range (inclusive).`,
		Example: `  rezcal list
  rezcal list --from=2025-06-10
  rezcal list --from=monday --to=friday`,
		RunE: func(_ *cobra.Command, _ []string) error {
			if noColor {
				DisableColor()
			}
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

			if len(items) == 0 {
				fmt.Println("No reservations found in the specified range.")
				return nil
			}

			opts := PrintOpts{ShowOwner: true, ShowResource: true}
			if a.config.HasUser() {
				opts.Owner = &calendar.EventOwner{
					Name:  a.config.User.Name,
					Email: a.config.User.Email,
				}
			}
			maxTitleWidth := opts.CalcMaxTitleWidth(40)
			printItemTable(items, opts, maxTitleWidth)

			return nil
		},
	}

	cmd.Flags().StringVar(&fromDate, "from", "", "Start date (YYYY-MM-DD or relative, default: today)")
	cmd.Flags().StringVar(&toDate, "to", "", "End date (YYYY-MM-DD or relative, default: from date)")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable color output")

	return cmd
}

// buildRange turns two date strings into a half-open interval covering the
// named days in full. An empty from defaults to today; an empty to defaults
// to the from day.
func buildRange(from, to string) (interval.Interval, error) {
	now := time.Now()

	start, err := dateutil.ParseRelativeDate(from, now)
	if err != nil {
		return interval.Interval{}, fmt.Errorf("invalid --from date: %w", err)
	}

	end := start
	if to != "" {
		end, err = dateutil.ParseRelativeDate(to, now)
		if err != nil {
			return interval.Interval{}, fmt.Errorf("invalid --to date: %w", err)
		}
	}
	if end.Before(start) {
		return interval.Interval{}, fmt.Errorf("--to date is before --from date")
	}

	return interval.New(dateutil.StartOfDay(start), dateutil.StartOfDay(end).AddDate(0, 0, 1))
}
