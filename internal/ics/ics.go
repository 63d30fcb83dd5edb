// Package ics converts reservations to and from iCalendar payloads.
package ics

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/google/uuid"

	"github.com/rezcal/rezcal/internal/calendar"
	"github.com/rezcal/rezcal/internal/interval"
)

const (
	productID = "-//rezcal//reservation calendar//EN"

	// Custom property carrying the resource identifier; LOCATION only
	// holds the human-readable resource name.
	propResourceID = ical.ComponentProperty("X-REZCAL-RESOURCE-ID")
)

// ErrEmptyCalendar is returned when an imported payload contains no events.
var ErrEmptyCalendar = errors.New("calendar contains no events")

// Export serializes reservations as an iCalendar document.
func Export(items []*calendar.CalendarItem) (string, error) {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(productID)

	now := time.Now().UTC()
	for _, item := range items {
		ev := cal.AddEvent(uuid.NewString() + "@rezcal")
		ev.SetDtStampTime(now)
		ev.SetStartAt(item.Slot.Start.UTC())
		ev.SetEndAt(item.Slot.End.UTC())
		ev.SetSummary(item.Title)

		if item.Owner.Email != "" || item.Owner.Name != "" {
			ev.SetOrganizer("mailto:"+item.Owner.Email, ical.WithCN(item.Owner.Name))
		}
		if item.Resource != nil {
			if item.Resource.Name != "" {
				ev.SetLocation(item.Resource.Name)
			}
			ev.SetProperty(propResourceID, item.Resource.ID)
		}
	}

	return cal.Serialize(), nil
}

// Import parses an iCalendar document into reservations.
// Events without a valid start/end pair are skipped.
func Import(r io.Reader) ([]*calendar.CalendarItem, error) {
	cal, err := ical.ParseCalendar(r)
	if err != nil {
		return nil, fmt.Errorf("parsing calendar: %w", err)
	}

	events := cal.Events()
	if len(events) == 0 {
		return nil, ErrEmptyCalendar
	}

	var items []*calendar.CalendarItem
	for _, ev := range events {
		item, err := parseEvent(ev)
		if err != nil {
			continue
		}
		items = append(items, item)
	}

	if len(items) == 0 {
		return nil, ErrEmptyCalendar
	}
	return items, nil
}

func parseEvent(ev *ical.VEvent) (*calendar.CalendarItem, error) {
	start, err := ev.GetStartAt()
	if err != nil {
		return nil, fmt.Errorf("missing start: %w", err)
	}
	end, err := ev.GetEndAt()
	if err != nil {
		return nil, fmt.Errorf("missing end: %w", err)
	}

	slot, err := interval.New(start, end)
	if err != nil {
		return nil, err
	}

	item := &calendar.CalendarItem{Slot: slot}

	if p := ev.GetProperty(ical.ComponentPropertySummary); p != nil {
		item.Title = p.Value
	}

	if p := ev.GetProperty(ical.ComponentPropertyOrganizer); p != nil {
		item.Owner.Email = strings.TrimPrefix(p.Value, "mailto:")
		if cns, ok := p.ICalParameters[string(ical.ParameterCn)]; ok && len(cns) > 0 {
			item.Owner.Name = cns[0]
		}
	}

	var resourceID, resourceName string
	if p := ev.GetProperty(propResourceID); p != nil {
		resourceID = p.Value
	}
	if p := ev.GetProperty(ical.ComponentPropertyLocation); p != nil {
		resourceName = p.Value
	}
	if resourceID != "" || resourceName != "" {
		if resourceID == "" {
			resourceID = resourceName
		}
		item.Resource = &calendar.Resource{ID: resourceID, Name: resourceName}
	}

	return item, nil
}
