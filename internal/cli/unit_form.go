package cli

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/jordanmvolk/marquee/internal/cli/formatter"
	"github.com/jordanmvolk/marquee/internal/domain"
)

// marqueeHuhTheme returns a custom huh theme using the existing Gruvbox palette.
func marqueeHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// validateOptionalDate accepts empty or a YYYY-MM-DD date.
func validateOptionalDate(s string) error {
	if s == "" {
		return nil
	}
	if _, err := time.Parse("2006-01-02", s); err != nil {
		return fmt.Errorf("use YYYY-MM-DD")
	}
	return nil
}

// validatePositiveInt accepts empty or a positive integer.
func validatePositiveInt(s string) error {
	if s == "" {
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil || v <= 0 {
		return fmt.Errorf("enter a positive number")
	}
	return nil
}

// runUnitAddForm collects the fields of a new unit interactively and
// creates it.
func runUnitAddForm(ctx context.Context, app *App, planID string) error {
	var title, kind, parentID, durationStr, start string

	activities, err := app.Units.ListActivities(ctx, planID)
	if err != nil {
		return err
	}

	kindOptions := []huh.Option[string]{
		huh.NewOption("Activity (scheduled by date window)", string(domain.KindActivity)),
	}
	if len(activities) > 0 {
		kindOptions = append(kindOptions,
			huh.NewOption("Subtask (booked as a calendar slot)", string(domain.KindSubtask)))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Placeholder("Write launch brief").
				Value(&title).
				Validate(func(s string) error {
					if s == "" {
						return fmt.Errorf("title is required")
					}
					return nil
				}),
			huh.NewSelect[string]().
				Title("Kind").
				Options(kindOptions...).
				Value(&kind),
			huh.NewInput().
				Title("Duration (days for activities, minutes for subtasks)").
				Placeholder("1").
				Value(&durationStr).
				Validate(validatePositiveInt),
			huh.NewInput().
				Title("Start date (YYYY-MM-DD, blank for today)").
				Placeholder("2025-06-30").
				Value(&start).
				Validate(validateOptionalDate),
		),
	).WithTheme(marqueeHuhTheme()).WithShowHelp(false)

	if err := form.Run(); err != nil {
		return err
	}

	if kind == string(domain.KindSubtask) {
		options := make([]huh.Option[string], 0, len(activities))
		for _, a := range activities {
			options = append(options, huh.NewOption(fmt.Sprintf("%s — %s", a.DisplayID(), a.Title), a.ID))
		}
		parentForm := huh.NewForm(
			huh.NewGroup(
				huh.NewSelect[string]().
					Title("Parent activity").
					Options(options...).
					Value(&parentID),
			),
		).WithTheme(marqueeHuhTheme()).WithShowHelp(false)
		if err := parentForm.Run(); err != nil {
			return err
		}
	}

	u := &domain.Unit{
		PlanID:   planID,
		Title:    title,
		Kind:     domain.UnitKind(kind),
		Duration: parsePositiveInt(durationStr, 1),
	}
	if parentID != "" {
		u.ParentID = &parentID
	}
	if start != "" {
		startDate, err := time.Parse("2006-01-02", start)
		if err != nil {
			return fmt.Errorf("invalid start date %q: %w", start, err)
		}
		u.StartDate = startDate
	}

	if err := app.Units.Create(ctx, u); err != nil {
		return err
	}

	fmt.Printf("Created %s %s [%s], scheduled %s → %s\n",
		u.Kind, u.Title, u.DisplayID(),
		u.StartDate.Format("2006-01-02"), u.DueDate.Format("2006-01-02"))
	return nil
}

// parsePositiveInt parses s as a positive integer, returning fallback when
// the form left it empty.
func parsePositiveInt(s string, fallback int) int {
	v, err := strconv.Atoi(s)
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}
