package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/jordanmvolk/marquee/internal/domain"
)

func resolvePlanID(ctx context.Context, app *App, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("plan ID is required")
	}

	plans, err := app.Plans.List(ctx, true)
	if err != nil {
		return "", err
	}

	for _, p := range plans {
		if p.ID == input {
			return p.ID, nil
		}
	}

	var matches []string
	for _, p := range plans {
		if strings.HasPrefix(p.ID, input) {
			matches = append(matches, p.ID)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("plan not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("plan ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}

// resolveUnitID matches a unit by id or id prefix across the given plan's
// activities and their subtasks.
func resolveUnitID(ctx context.Context, app *App, planID, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("unit ID is required")
	}

	activities, err := app.Units.ListActivities(ctx, planID)
	if err != nil {
		return "", err
	}
	units := make([]*domain.Unit, 0, len(activities))
	units = append(units, activities...)
	for _, a := range activities {
		subs, err := app.Units.ListSubtasks(ctx, a.ID)
		if err != nil {
			return "", err
		}
		units = append(units, subs...)
	}

	for _, u := range units {
		if u.ID == input {
			return u.ID, nil
		}
	}

	var matches []string
	for _, u := range units {
		if strings.HasPrefix(u.ID, input) {
			matches = append(matches, u.ID)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("unit not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("unit ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}
