package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newDepCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dep",
		Short: "Manage dependencies between units",
	}

	cmd.PersistentFlags().String("plan", "", "Plan ID or ID prefix")
	_ = cmd.MarkPersistentFlagRequired("plan")

	cmd.AddCommand(
		newDepAddCmd(app),
		newDepRemoveCmd(app),
		newDepListCmd(app),
	)

	return cmd
}

func newDepAddCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add UNIT DEPENDS_ON",
		Short: "Add a dependency edge",
		Args:  cobra.ExactArgs(2),
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
			depID, err := resolveUnitID(ctx, app, planID, args[1])
			if err != nil {
				return err
			}

			u, err := app.Units.GetByID(ctx, unitID)
			if err != nil {
				return err
			}
			if u.DependsOn(depID) {
				fmt.Printf("Unit %s already depends on %s\n", args[0], args[1])
				return nil
			}
			deps := append(append([]string{}, u.Dependencies...), depID)
			if err := app.Units.SetDependencies(ctx, unitID, deps); err != nil {
				return err
			}

			fmt.Printf("Unit %s now depends on %s\n", args[0], args[1])
			return nil
		},
	}
}

func newDepRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove UNIT DEPENDS_ON",
		Short: "Remove a dependency edge",
		Args:  cobra.ExactArgs(2),
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
			depID, err := resolveUnitID(ctx, app, planID, args[1])
			if err != nil {
				return err
			}

			u, err := app.Units.GetByID(ctx, unitID)
			if err != nil {
				return err
			}
			var deps []string
			for _, d := range u.Dependencies {
				if d != depID {
					deps = append(deps, d)
				}
			}
			if err := app.Units.SetDependencies(ctx, unitID, deps); err != nil {
				return err
			}

			fmt.Printf("Unit %s no longer depends on %s\n", args[0], args[1])
			return nil
		},
	}
}

func newDepListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list UNIT",
		Short: "List a unit's dependencies",
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

			if len(u.Dependencies) == 0 {
				fmt.Println("No dependencies.")
				return nil
			}
			for _, depID := range u.Dependencies {
				dep, err := app.Units.GetByID(ctx, depID)
				if err != nil {
					// Dangling reference: the target was deleted.
					fmt.Printf("%s (missing)\n", depID)
					continue
				}
				fmt.Printf("%s  %s [%s]\n", dep.DisplayID(), dep.Title, dep.Status)
			}
			return nil
		},
	}
}
