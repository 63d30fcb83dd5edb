package ui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rezcal/rezcal/internal/calendar"
	"github.com/rezcal/rezcal/internal/ics"
)

func (a *App) importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import [file.ics]",
		Short: "Import reservations from an iCalendar file",
		Long: `Import all events from an iCalendar (.ics) file as reservations.

The import is atomic: if any event conflicts with an existing
reservation on the same resource, nothing is imported.

Example:
  rezcal import bookings.ics`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			path, err := resolvePath(args[0])
			if err != nil {
				return err
			}

			count, err := importCalendar(context.Background(), a.repo, path)
			if err != nil {
				return err
			}

			fmt.Printf("Imported %d reservations from %s\n", count, path)
			return nil
		},
	}

	return cmd
}

// itemCreator is the subset of the store the import needs.
type itemCreator interface {
	CreateItems(ctx context.Context, items []*calendar.CalendarItem) error
}

func importCalendar(ctx context.Context, dest itemCreator, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, fmt.Errorf("calendar file does not exist: %s", path)
		}
		return 0, fmt.Errorf("opening calendar file: %w", err)
	}
	defer func() { _ = f.Close() }()

	items, err := ics.Import(f)
	if err != nil {
		return 0, fmt.Errorf("parsing calendar: %w", err)
	}
	if len(items) == 0 {
		return 0, nil
	}

	if err := dest.CreateItems(ctx, items); err != nil {
		return 0, fmt.Errorf("importing reservations: %w", err)
	}

	return len(items), nil
}

func resolvePath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", fmt.Errorf("empty path")
	}

	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving home directory: %w", err)
		}
		path = filepath.Join(home, path[2:])
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	return absPath, nil
}
