package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/jordanmvolk/marquee/internal/cli/formatter"
	"github.com/jordanmvolk/marquee/internal/domain"
	"github.com/spf13/cobra"
)

func newPlanCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Manage marketing plans",
	}

	cmd.AddCommand(
		newPlanAddCmd(app),
		newPlanListCmd(app),
		newPlanInspectCmd(app),
		newPlanUpdateCmd(app),
		newPlanGraphCmd(app),
		newPlanArchiveCmd(app),
		newPlanRemoveCmd(app),
	)

	return cmd
}

func newPlanAddCmd(app *App) *cobra.Command {
	var name, channel, start, notes string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a new plan",
		RunE: func(cmd *cobra.Command, args []string) error {
			p := &domain.Plan{
				Name:    name,
				Channel: channel,
				Notes:   notes,
			}
			if start != "" {
				startDate, err := time.Parse("2006-01-02", start)
				if err != nil {
					return fmt.Errorf("invalid start date %q: %w", start, err)
				}
				p.StartDate = startDate
			}

			if err := app.Plans.Create(context.Background(), p); err != nil {
				return err
			}

			fmt.Printf("Created plan %s [%s]\n", p.Name, p.DisplayID())
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Plan name")
	cmd.Flags().StringVar(&channel, "channel", "", "Marketing channel (email|social|events|content|paid|web|generic)")
	cmd.Flags().StringVar(&start, "start", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&notes, "notes", "", "Free-form notes")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newPlanListCmd(app *App) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List plans",
		RunE: func(cmd *cobra.Command, args []string) error {
			plans, err := app.Plans.List(context.Background(), all)
			if err != nil {
				return err
			}

			if len(plans) == 0 {
				fmt.Println("No plans found.")
				return nil
			}

			fmt.Printf("%s\n", formatter.FormatPlanList(plans))
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Include archived plans")

	return cmd
}

func newPlanInspectCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect ID",
		Short: "Show plan details with its activities",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			planID, err := resolvePlanID(ctx, app, args[0])
			if err != nil {
				return err
			}
			p, err := app.Plans.GetByID(ctx, planID)
			if err != nil {
				return err
			}
			view, err := app.Schedule.PlanView(ctx, planID)
			if err != nil {
				return err
			}

			fmt.Printf("%s\n", formatter.FormatPlanInspect(p, view.Units, view.Readiness))
			return nil
		},
	}
}

func newPlanUpdateCmd(app *App) *cobra.Command {
	var name, channel, status, notes string

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update a plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			planID, err := resolvePlanID(ctx, app, args[0])
			if err != nil {
				return err
			}
			p, err := app.Plans.GetByID(ctx, planID)
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("name") {
				p.Name = name
			}
			if cmd.Flags().Changed("channel") {
				p.Channel = channel
			}
			if cmd.Flags().Changed("status") {
				p.Status = domain.PlanStatus(status)
			}
			if cmd.Flags().Changed("notes") {
				p.Notes = notes
			}

			if err := app.Plans.Update(ctx, p); err != nil {
				return err
			}

			fmt.Printf("Updated plan %s [%s]\n", p.Name, p.DisplayID())
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Plan name")
	cmd.Flags().StringVar(&channel, "channel", "", "Marketing channel")
	cmd.Flags().StringVar(&status, "status", "", "Plan status (active|paused|done)")
	cmd.Flags().StringVar(&notes, "notes", "", "Free-form notes")

	return cmd
}

func newPlanGraphCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "graph ID",
		Short: "Show the plan's dependency graph as level buckets",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			planID, err := resolvePlanID(ctx, app, args[0])
			if err != nil {
				return err
			}
			view, err := app.Schedule.PlanView(ctx, planID)
			if err != nil {
				return err
			}

			fmt.Printf("%s\n", formatter.FormatGraph(view.Units, view.Levels, view.Readiness))
			return nil
		},
	}
}

func newPlanArchiveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "archive ID",
		Short: "Archive a plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			planID, err := resolvePlanID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Plans.Archive(ctx, planID); err != nil {
				return err
			}
			fmt.Printf("Archived plan %s\n", planID)
			return nil
		},
	}
}

func newPlanRemoveCmd(app *App) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "remove ID",
		Short: "Remove a plan and all of its units",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			planID, err := resolvePlanID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Plans.Delete(ctx, planID, force); err != nil {
				return err
			}
			fmt.Printf("Removed plan %s\n", planID)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Remove even if the plan is not archived")

	return cmd
}
