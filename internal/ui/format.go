package ui

import (
	"fmt"

	"github.com/rezcal/rezcal/internal/calendar"
	"github.com/rezcal/rezcal/internal/store"
)

// PrintOpts configures reservation printing behavior.
type PrintOpts struct {
	Owner         *calendar.EventOwner // Highlight reservations owned by this user
	ShowOwner     bool                 // Show owner column
	ShowResource  bool                 // Show resource column
	Verbose       bool                 // Use the full terminal width for titles
	MaxTitleWidth int                  // Maximum title width (0 = auto)
}

// CalcMaxTitleWidth calculates the maximum title width based on options.
func (o PrintOpts) CalcMaxTitleWidth(defaultWidth int) int {
	if o.MaxTitleWidth > 0 {
		return o.MaxTitleWidth
	}
	if !o.Verbose {
		return defaultWidth
	}
	tw := termWidth()
	// Base: "  #NNN  HH:MM-HH:MM  " plus the duration suffix
	overhead := 28
	if o.ShowResource {
		overhead += 16
	}
	available := tw - overhead
	if available > defaultWidth {
		return available
	}
	return defaultWidth
}

// printItemTable prints reservations grouped by day.
func printItemTable(items []*calendar.CalendarItem, opts PrintOpts, maxTitleWidth int) {
	var currentDate string
	for _, item := range items {
		date := item.Slot.Start.Format("2006-01-02")
		dayName := item.Slot.Start.Format("Mon Jan 2")

		if date != currentDate {
			if currentDate != "" {
				fmt.Println()
			}
			fmt.Printf("  %s\n", formatHeader(dayName))
			currentDate = date
		}

		PrintItemRow(item, opts, maxTitleWidth)
	}
}

// PrintItemRow prints a single reservation row with consistent formatting.
func PrintItemRow(item *calendar.CalendarItem, opts PrintOpts, maxTitleWidth int) {
	title := item.Title
	if len(title) > maxTitleWidth {
		title = title[:maxTitleWidth-3] + "..."
	}
	if opts.Owner != nil && item.Owner.Matches(*opts.Owner) {
		title = formatOwned(title)
	}

	id := ""
	if store.ItemID(item) != 0 {
		id = formatMuted(fmt.Sprintf("#%d", store.ItemID(item)))
	}

	duration := formatMuted(FormatDuration(int(item.Slot.Duration().Minutes())))

	suffix := ""
	if opts.ShowResource && item.Resource != nil {
		suffix += "  " + formatResource("("+item.Resource.Name+")")
	}
	if opts.ShowOwner && item.Owner.Name != "" {
		suffix += "  " + formatMuted("— "+item.Owner.Name)
	}

	fmt.Printf("  %4s  %s-%s  %-*s  %s%s\n",
		id,
		item.Slot.Start.Format("15:04"),
		item.Slot.End.Format("15:04"),
		maxTitleWidth, title,
		duration,
		suffix,
	)
}

// FormatDuration formats minutes as a human-readable duration.
func FormatDuration(minutes int) string {
	if minutes == 0 {
		return "0m"
	}
	hours := minutes / 60
	mins := minutes % 60
	if hours == 0 {
		return fmt.Sprintf("%dm", mins)
	}
	if mins == 0 {
		return fmt.Sprintf("%dh", hours)
	}
	return fmt.Sprintf("%dh%dm", hours, mins)
}
