// Package calendar implements the reservation calendar engine: the visible
// interval calculation, the fetch-cache guard, the conflict validator and
// the drag-to-create interaction, together with the host notification
// surface that ties them together.
package calendar

import (
	"context"

	"github.com/rezcal/rezcal/internal/interval"
)

// EventOwner identifies the person a reservation belongs to.
// Owners are compared by the (Name, Email) pair.
type EventOwner struct {
	Name  string
	Email string
}

// Matches reports whether two owners identify the same person.
// Both name and email must match.
func (o EventOwner) Matches(other EventOwner) bool {
	return o.Name == other.Name && o.Email == other.Email
}

// Resource is the bookable entity a reservation occupies (e.g. a room).
// Conflict checks are scoped per resource ID.
type Resource struct {
	ID   string
	Name string
}

// CalendarItem is one externally supplied reservation. The engine treats
// items as read-only input and never clones or mutates them; identity for
// comparison purposes is pointer identity, not field equality.
type CalendarItem struct {
	Slot     interval.Interval
	Owner    EventOwner
	Title    string
	Resource *Resource
	Data     map[string]any
}

// ResourceID returns the item's resource ID, or "" when no resource is set.
func (c *CalendarItem) ResourceID() string {
	if c.Resource == nil {
		return ""
	}
	return c.Resource.ID
}

// Repository abstracts host-side reservation storage. The engine itself
// never touches storage; the host fetches items in response to LoadData
// notifications and re-supplies them via SetItems.
type Repository interface {
	// ListItems returns all reservations intersecting the given interval,
	// ordered by start time.
	ListItems(ctx context.Context, within interval.Interval) ([]*CalendarItem, error)
	// CreateItem persists a new reservation.
	CreateItem(ctx context.Context, item *CalendarItem) error
}
