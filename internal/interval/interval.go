// Package interval provides the closed time range type and the overlap,
// containment and snapping primitives the calendar engine is built on.
package interval

import (
	"errors"
	"fmt"
	"time"
)

// ErrEndBeforeStart is returned when constructing an interval whose end
// precedes its start.
var ErrEndBeforeStart = errors.New("interval end must be on or after start")

// Interval is a closed time range [Start, End] with Start <= End.
// Values are treated as immutable; operations return new intervals.
type Interval struct {
	Start time.Time
	End   time.Time
}

// New creates an Interval, validating that end is not before start.
func New(start, end time.Time) (Interval, error) {
	if end.Before(start) {
		return Interval{}, ErrEndBeforeStart
	}
	return Interval{Start: start, End: end}, nil
}

// Contains reports whether sub lies fully within i. The comparison is
// closed and non-strict on both ends, so an interval contains itself.
func (i Interval) Contains(sub Interval) bool {
	return !sub.Start.Before(i.Start) && !sub.End.After(i.End)
}

// Overlaps reports whether two intervals intersect under half-open
// semantics: a range ending exactly when another begins does not overlap
// it. The check is symmetric.
func (i Interval) Overlaps(other Interval) bool {
	return i.Start.Before(other.End) && other.Start.Before(i.End)
}

// Duration returns the length of the interval.
func (i Interval) Duration() time.Duration {
	return i.End.Sub(i.Start)
}

// IsZero reports whether both bounds are the zero time.
func (i Interval) IsZero() bool {
	return i.Start.IsZero() && i.End.IsZero()
}

// String returns a compact representation for logs and errors.
func (i Interval) String() string {
	return fmt.Sprintf("[%s, %s]", i.Start.Format(time.RFC3339), i.End.Format(time.RFC3339))
}

// CeilToNearest rounds amount up to the nearest multiple of precision.
// Returns amount unchanged when precision is not positive.
func CeilToNearest(amount, precision int) int {
	if precision <= 0 {
		return amount
	}
	q := amount / precision
	if amount%precision != 0 && amount > 0 {
		q++
	}
	return q * precision
}

// FloorToNearest rounds amount down to the nearest multiple of precision.
// Returns amount unchanged when precision is not positive.
func FloorToNearest(amount, precision int) int {
	if precision <= 0 {
		return amount
	}
	q := amount / precision
	if amount%precision != 0 && amount < 0 {
		q--
	}
	return q * precision
}
