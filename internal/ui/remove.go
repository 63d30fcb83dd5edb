package ui

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func (a *App) removeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove [id]",
		Short: "Remove a reservation",
		Long: `Remove a reservation by its ID, as shown by the list command.

Example:
  rezcal remove 42`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid reservation ID %q", args[0])
			}

			ctx := context.Background()
			item, err := a.repo.GetItem(ctx, id)
			if err != nil {
				return fmt.Errorf("looking up reservation: %w", err)
			}
			if item == nil {
				return fmt.Errorf("no reservation with ID %d", id)
			}

			if err := a.repo.DeleteItem(ctx, id); err != nil {
				return fmt.Errorf("removing reservation: %w", err)
			}

			fmt.Printf("Removed reservation #%d: %s %s\n", id, item.Title, item.Slot)
			return nil
		},
	}
}
