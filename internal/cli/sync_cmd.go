package cli

import (
	"context"
	"fmt"

	"github.com/jordanmvolk/marquee/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newUnitSlotCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "slot ID",
		Short: "Show the earliest free calendar slot for a subtask",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			planID, err := planFromFlags(ctx, app, cmd)
			if err != nil {
				return err
			}
			unitID, err := resolveUnitID(ctx, app, planID, args[0])
			if err != nil {
				return err
			}
			slot, err := app.Schedule.PlanSlot(ctx, unitID)
			if err != nil {
				return err
			}
			fmt.Printf("%s\n", formatter.FormatSlot(slot))
			return nil
		},
	}
}

func newUnitSyncCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "sync ID",
		Short: "Book the subtask's earliest free slot on the calendar",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			planID, err := planFromFlags(ctx, app, cmd)
			if err != nil {
				return err
			}
			unitID, err := resolveUnitID(ctx, app, planID, args[0])
			if err != nil {
				return err
			}
			slot, err := app.Schedule.SyncToCalendar(ctx, unitID)
			if err != nil {
				return err
			}
			fmt.Printf("Booked %s\n", formatter.FormatSlot(slot))
			return nil
		},
	}
}

func newUnitUnsyncCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "unsync ID",
		Short: "Remove the subtask's calendar event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			planID, err := planFromFlags(ctx, app, cmd)
			if err != nil {
				return err
			}
			unitID, err := resolveUnitID(ctx, app, planID, args[0])
			if err != nil {
				return err
			}
			if err := app.Schedule.Unsync(ctx, unitID); err != nil {
				return err
			}
			fmt.Printf("Removed calendar event for unit %s\n", unitID)
			return nil
		},
	}
}
