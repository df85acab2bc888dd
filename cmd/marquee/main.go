package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jordanmvolk/marquee/internal/calendar"
	"github.com/jordanmvolk/marquee/internal/cli"
	"github.com/jordanmvolk/marquee/internal/db"
	"github.com/jordanmvolk/marquee/internal/domain"
	"github.com/jordanmvolk/marquee/internal/repository"
	"github.com/jordanmvolk/marquee/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Determine DB path: env var or default ~/.marquee/marquee.db
	dbPath := os.Getenv("MARQUEE_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".marquee", "marquee.db")
	}

	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	planRepo := repository.NewSQLitePlanRepo(database)
	unitRepo := repository.NewSQLiteUnitRepo(database)
	depRepo := repository.NewSQLiteDependencyRepo(database)

	// Wire unit of work for transactional cascade writes
	uow := db.NewSQLiteUnitOfWork(database)

	// Calendar target. Provider network transport is not wired; the
	// in-memory provider backs the offline slot-planning path.
	source := domain.CalendarProvider(os.Getenv("MARQUEE_CALENDAR"))
	if source == "" {
		source = domain.ProviderGoogle
	}
	provider := calendar.NewStaticProvider()

	app := &cli.App{
		Plans:    service.NewPlanService(planRepo),
		Units:    service.NewUnitService(unitRepo, depRepo, uow),
		Schedule: service.NewScheduleService(unitRepo, depRepo, provider, source),
	}

	// Detect interactive terminal for form-based entry.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
