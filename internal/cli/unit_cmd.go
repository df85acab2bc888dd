package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/jordanmvolk/marquee/internal/cli/formatter"
	"github.com/jordanmvolk/marquee/internal/domain"
	"github.com/jordanmvolk/marquee/internal/service"
	"github.com/spf13/cobra"
)

func newUnitCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "unit",
		Short: "Manage schedulable units (activities and subtasks)",
	}

	cmd.PersistentFlags().String("plan", "", "Plan ID or ID prefix")
	_ = cmd.MarkPersistentFlagRequired("plan")

	cmd.AddCommand(
		newUnitAddCmd(app),
		newUnitListCmd(app),
		newUnitInspectCmd(app),
		newUnitUpdateCmd(app),
		newUnitRemoveCmd(app),
		newUnitStatusCmd(app, "start", domain.UnitInProgress),
		newUnitStatusCmd(app, "done", domain.UnitDone),
		newUnitStatusCmd(app, "cancel", domain.UnitCancelled),
		newUnitSlotCmd(app),
		newUnitSyncCmd(app),
		newUnitUnsyncCmd(app),
	)

	return cmd
}

func planFromFlags(ctx context.Context, app *App, cmd *cobra.Command) (string, error) {
	input, _ := cmd.Flags().GetString("plan")
	return resolvePlanID(ctx, app, input)
}

func newUnitAddCmd(app *App) *cobra.Command {
	var title, parent, start string
	var duration int
	var dependsOn []string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create an activity, or a subtask with --parent",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			planID, err := planFromFlags(ctx, app, cmd)
			if err != nil {
				return err
			}

			// With no title on an interactive terminal, collect fields
			// through a form instead.
			if title == "" && app.IsInteractive != nil && app.IsInteractive() {
				return runUnitAddForm(ctx, app, planID)
			}
			if title == "" {
				return fmt.Errorf("--title is required")
			}

			u := &domain.Unit{
				PlanID:       planID,
				Title:        title,
				Kind:         domain.KindActivity,
				Duration:     duration,
				Dependencies: dependsOn,
			}
			if parent != "" {
				parentID, err := resolveUnitID(ctx, app, planID, parent)
				if err != nil {
					return err
				}
				u.Kind = domain.KindSubtask
				u.ParentID = &parentID
			}
			if start != "" {
				startDate, err := time.Parse("2006-01-02", start)
				if err != nil {
					return fmt.Errorf("invalid start date %q: %w", start, err)
				}
				u.StartDate = startDate
			}
			for i, dep := range dependsOn {
				depID, err := resolveUnitID(ctx, app, planID, dep)
				if err != nil {
					return err
				}
				u.Dependencies[i] = depID
			}

			if err := app.Units.Create(ctx, u); err != nil {
				return err
			}

			fmt.Printf("Created %s %s [%s], scheduled %s → %s\n",
				u.Kind, u.Title, u.DisplayID(),
				u.StartDate.Format("2006-01-02"), u.DueDate.Format("2006-01-02"))
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Unit title")
	cmd.Flags().StringVar(&parent, "parent", "", "Parent activity ID (creates a subtask)")
	cmd.Flags().IntVar(&duration, "duration", 1, "Duration: calendar days for activities, minutes for subtasks")
	cmd.Flags().StringVar(&start, "start", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringArrayVar(&dependsOn, "depends-on", nil, "Dependency unit ID (repeatable)")

	return cmd
}

func newUnitListCmd(app *App) *cobra.Command {
	var parent string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a plan's activities, or an activity's subtasks with --parent",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			planID, err := planFromFlags(ctx, app, cmd)
			if err != nil {
				return err
			}

			var view *service.ScheduleView
			if parent != "" {
				parentID, err := resolveUnitID(ctx, app, planID, parent)
				if err != nil {
					return err
				}
				view, err = app.Schedule.ActivityView(ctx, parentID)
				if err != nil {
					return err
				}
			} else {
				view, err = app.Schedule.PlanView(ctx, planID)
				if err != nil {
					return err
				}
			}

			if len(view.Units) == 0 {
				fmt.Println("No units found.")
				return nil
			}

			fmt.Printf("%s\n", formatter.FormatUnitList(view.Units, view.Readiness))
			return nil
		},
	}

	cmd.Flags().StringVar(&parent, "parent", "", "Parent activity ID")

	return cmd
}

func newUnitInspectCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect ID",
		Short: "Show unit details",
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
			u, err := app.Units.GetByID(ctx, unitID)
			if err != nil {
				return err
			}

			fmt.Printf("%s\n", formatter.FormatUnitInspect(u))
			return nil
		},
	}
}

func newUnitUpdateCmd(app *App) *cobra.Command {
	var title, start, due string
	var duration int
	var dependsOn []string

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update a unit; date edits cascade to dependents",
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

			if cmd.Flags().Changed("title") {
				u, err := app.Units.GetByID(ctx, unitID)
				if err != nil {
					return err
				}
				u.Title = title
				if err := app.Units.Update(ctx, u); err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("start") {
				startDate, err := time.Parse("2006-01-02", start)
				if err != nil {
					return fmt.Errorf("invalid start date %q: %w", start, err)
				}
				if err := app.Units.SetStart(ctx, unitID, startDate); err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("due") {
				dueDate, err := time.Parse("2006-01-02", due)
				if err != nil {
					return fmt.Errorf("invalid due date %q: %w", due, err)
				}
				if err := app.Units.SetDueDate(ctx, unitID, dueDate); err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("duration") {
				if err := app.Units.SetDuration(ctx, unitID, duration); err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("depends-on") {
				resolved := make([]string, len(dependsOn))
				for i, dep := range dependsOn {
					depID, err := resolveUnitID(ctx, app, planID, dep)
					if err != nil {
						return err
					}
					resolved[i] = depID
				}
				if err := app.Units.SetDependencies(ctx, unitID, resolved); err != nil {
					return err
				}
			}

			u, err := app.Units.GetByID(ctx, unitID)
			if err != nil {
				return err
			}
			fmt.Printf("Updated %s [%s], scheduled %s → %s\n",
				u.Title, u.DisplayID(),
				u.StartDate.Format("2006-01-02"), u.DueDate.Format("2006-01-02"))
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Unit title")
	cmd.Flags().StringVar(&start, "start", "", "Start date (YYYY-MM-DD, only without dependencies)")
	cmd.Flags().StringVar(&due, "due", "", "Due date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&duration, "duration", 0, "Duration: calendar days for activities, minutes for subtasks")
	cmd.Flags().StringArrayVar(&dependsOn, "depends-on", nil, "Replace the dependency set (repeatable)")

	return cmd
}

func newUnitRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove ID",
		Short: "Remove a unit",
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
			if err := app.Units.Delete(ctx, unitID); err != nil {
				return err
			}
			fmt.Printf("Removed unit %s\n", unitID)
			return nil
		},
	}
}

func newUnitStatusCmd(app *App, verb string, status domain.UnitStatus) *cobra.Command {
	short := map[string]string{
		"start":  "Mark a unit in progress",
		"done":   "Mark a unit done",
		"cancel": "Cancel a unit",
	}[verb]

	return &cobra.Command{
		Use:   verb + " ID",
		Short: short,
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
			if err := app.Units.SetStatus(ctx, unitID, status); err != nil {
				return err
			}
			fmt.Printf("Unit %s is now %s\n", unitID, status)
			return nil
		},
	}
}
