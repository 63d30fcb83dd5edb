package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rezcal/rezcal/internal/calendar"
	"github.com/rezcal/rezcal/internal/dateutil"
	"github.com/rezcal/rezcal/internal/interval"
	"github.com/rezcal/rezcal/internal/store"
)

func (a *App) addCmd() *cobra.Command {
	var (
		date         string
		start        string
		end          string
		resourceID   string
		resourceName string
	)

	cmd := &cobra.Command{
		Use:   "add [title]",
		Short: "Add a new reservation",
		Long: `Add a new reservation to the calendar.

The date accepts YYYY-MM-DD as well as relative forms such as "today",
"tomorrow", "friday" or "next-monday".

Example:
  rezcal add "Team standup" --date=tomorrow --start=09:00 --end=09:30 --resource=room-a`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			slot, err := buildSlot(date, start, end)
			if err != nil {
				return err
			}

			item := &calendar.CalendarItem{
				Slot:  slot,
				Title: args[0],
			}
			if a.config.HasUser() {
				item.Owner = calendar.EventOwner{
					Name:  a.config.User.Name,
					Email: a.config.User.Email,
				}
			}
			if resourceID != "" {
				name := resourceName
				if name == "" {
					name = resourceID
				}
				item.Resource = &calendar.Resource{ID: resourceID, Name: name}
			}

			if err := a.repo.CreateItem(context.Background(), item); err != nil {
				return fmt.Errorf("creating reservation: %w", err)
			}

			fmt.Printf("Created reservation #%d: %s %s %s-%s\n",
				store.ItemID(item),
				item.Title,
				slot.Start.Format("2006-01-02"),
				slot.Start.Format("15:04"),
				slot.End.Format("15:04"),
			)

			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Date (YYYY-MM-DD or relative, default: today)")
	cmd.Flags().StringVar(&start, "start", "", "Start time (HH:MM, required)")
	cmd.Flags().StringVar(&end, "end", "", "End time (HH:MM, required)")
	cmd.Flags().StringVar(&resourceID, "resource", "", "Resource ID the reservation occupies")
	cmd.Flags().StringVar(&resourceName, "resource-name", "", "Display name for the resource")

	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")

	return cmd
}

// buildSlot combines a date and two wall-clock times into an interval.
func buildSlot(date, start, end string) (interval.Interval, error) {
	day, err := dateutil.ParseRelativeDate(date, time.Now())
	if err != nil {
		return interval.Interval{}, err
	}

	startAt, err := atTime(day, start)
	if err != nil {
		return interval.Interval{}, fmt.Errorf("invalid start time %q: %w", start, err)
	}
	endAt, err := atTime(day, end)
	if err != nil {
		return interval.Interval{}, fmt.Errorf("invalid end time %q: %w", end, err)
	}

	return interval.New(startAt, endAt)
}

func atTime(day time.Time, hhmm string) (time.Time, error) {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(day.Year(), day.Month(), day.Day(),
		t.Hour(), t.Minute(), 0, 0, day.Location()), nil
}
