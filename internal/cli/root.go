package cli

import (
	"strings"

	"github.com/jordanmvolk/marquee/internal/service"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Plans    service.PlanService
	Units    service.UnitService
	Schedule service.ScheduleService

	// IsInteractive reports whether stdin is a terminal; interactive forms
	// are only offered when it returns true.
	IsInteractive func() bool
}

// NewRootCmd creates the top-level "marquee" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "marquee",
		Short: "Dependency-aware marketing activity scheduler",
	}

	// Accept snake_case spellings of multi-word flags.
	root.PersistentFlags().SetNormalizeFunc(func(f *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	root.AddCommand(
		newPlanCmd(app),
		newUnitCmd(app),
		newDepCmd(app),
	)

	return root
}
