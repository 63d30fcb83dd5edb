package calendar

import (
	"errors"
	"strings"
	"time"

	"github.com/rezcal/rezcal/internal/dateutil"
	"github.com/rezcal/rezcal/internal/interval"
)

// ErrInvalidViewMode is returned when parsing an unrecognized view name.
var ErrInvalidViewMode = errors.New("view must be one of: day, week, month")

// ViewMode selects the span of the visible interval.
type ViewMode int

// Available view modes.
const (
	ViewDay ViewMode = iota
	ViewWeek
	ViewMonth
)

// String returns the lowercase view name.
func (v ViewMode) String() string {
	switch v {
	case ViewDay:
		return "day"
	case ViewWeek:
		return "week"
	case ViewMonth:
		return "month"
	default:
		return "unknown"
	}
}

// ParseViewMode parses a view name, case-insensitively.
func ParseViewMode(s string) (ViewMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "day":
		return ViewDay, nil
	case "week":
		return ViewWeek, nil
	case "month":
		return ViewMonth, nil
	default:
		return ViewDay, ErrInvalidViewMode
	}
}

// VisibleInterval computes the date range a view displays for the given
// anchor date.
//
// Day spans the anchor's day, week the anchor's week. Month is padded to
// whole weeks: it runs from the start of the week containing the 1st to
// the end of the week containing the last day of the month, so it always
// fully contains the anchor's calendar month and usually bleeds into the
// neighboring months.
func VisibleInterval(anchor time.Time, mode ViewMode, weekStart time.Weekday) interval.Interval {
	switch mode {
	case ViewDay:
		return interval.Interval{
			Start: dateutil.StartOfDay(anchor),
			End:   dateutil.EndOfDay(anchor),
		}
	case ViewWeek:
		return interval.Interval{
			Start: dateutil.StartOfWeek(anchor, weekStart),
			End:   dateutil.EndOfWeek(anchor, weekStart),
		}
	default:
		return interval.Interval{
			Start: dateutil.StartOfWeek(dateutil.StartOfMonth(anchor), weekStart),
			End:   dateutil.EndOfWeek(dateutil.EndOfMonth(anchor), weekStart),
		}
	}
}
