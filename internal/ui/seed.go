package ui

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rezcal/rezcal/internal/calendar"
	"github.com/rezcal/rezcal/internal/interval"
)

// seedFile is the YAML document accepted by the seed command.
type seedFile struct {
	Reservations []seedReservation `yaml:"reservations"`
}

type seedReservation struct {
	Title    string        `yaml:"title"`
	Start    time.Time     `yaml:"start"`
	End      time.Time     `yaml:"end"`
	Owner    seedOwner     `yaml:"owner"`
	Resource *seedResource `yaml:"resource"`
}

type seedOwner struct {
	Name  string `yaml:"name"`
	Email string `yaml:"email"`
}

type seedResource struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
}

func (a *App) seedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed [file.yaml]",
		Short: "Load reservations from a YAML file",
		Long: `Load reservations from a YAML seed file.

The file lists reservations with RFC 3339 start and end timestamps:

  reservations:
    - title: Team standup
      start: 2025-06-10T09:00:00Z
      end: 2025-06-10T09:30:00Z
      owner:
        name: Jane Doe
        email: jane@example.com
      resource:
        id: room-a
        name: Room A

The load is atomic: if any entry is invalid or conflicts with an
existing reservation on the same resource, nothing is loaded.`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			path, err := resolvePath(args[0])
			if err != nil {
				return err
			}

			count, err := seedReservations(context.Background(), a.repo, path)
			if err != nil {
				return err
			}

			fmt.Printf("Loaded %d reservations from %s\n", count, path)
			return nil
		},
	}

	return cmd
}

func seedReservations(ctx context.Context, dest itemCreator, path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, fmt.Errorf("seed file does not exist: %s", path)
		}
		return 0, fmt.Errorf("reading seed file: %w", err)
	}

	var doc seedFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return 0, fmt.Errorf("parsing seed file: %w", err)
	}

	items := make([]*calendar.CalendarItem, 0, len(doc.Reservations))
	for i, r := range doc.Reservations {
		slot, err := interval.New(r.Start, r.End)
		if err != nil {
			return 0, fmt.Errorf("reservation %d (%q): %w", i+1, r.Title, err)
		}
		item := &calendar.CalendarItem{
			Slot:  slot,
			Title: r.Title,
			Owner: calendar.EventOwner{Name: r.Owner.Name, Email: r.Owner.Email},
		}
		if r.Resource != nil {
			item.Resource = &calendar.Resource{ID: r.Resource.ID, Name: r.Resource.Name}
		}
		items = append(items, item)
	}

	if len(items) == 0 {
		return 0, nil
	}
	if err := dest.CreateItems(ctx, items); err != nil {
		return 0, fmt.Errorf("loading reservations: %w", err)
	}

	return len(items), nil
}
