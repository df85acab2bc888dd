package formatter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jordanmvolk/marquee/internal/domain"
	"github.com/jordanmvolk/marquee/internal/scheduler"
)

// FormatUnitList renders units as a table with their windows and readiness.
func FormatUnitList(units []*domain.Unit, readiness map[string]bool) string {
	rows := make([][]string, 0, len(units))
	for _, u := range units {
		rows = append(rows, []string{
			u.DisplayID(),
			u.Title,
			StatusBadge(u.Status),
			formatDuration(u),
			u.StartDate.Format("2006-01-02"),
			u.DueDate.Format("2006-01-02"),
			ReadyBadge(readiness[u.ID]),
		})
	}
	return RenderTable([]string{"ID", "Title", "Status", "Duration", "Start", "Due", "Readiness"}, rows)
}

// FormatUnitInspect renders a single unit's details.
func FormatUnitInspect(u *domain.Unit) string {
	var b strings.Builder

	b.WriteString(Header(u.Title))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s %s\n", Dim("ID:"), u.ID))
	b.WriteString(fmt.Sprintf("%s %s\n", Dim("Kind:"), u.Kind))
	b.WriteString(fmt.Sprintf("%s %s\n", Dim("Status:"), StatusBadge(u.Status)))
	b.WriteString(fmt.Sprintf("%s %s\n", Dim("Duration:"), formatDuration(u)))
	b.WriteString(fmt.Sprintf("%s %s → %s\n", Dim("Window:"),
		u.StartDate.Format("2006-01-02"), u.DueDate.Format("2006-01-02")))
	if len(u.Dependencies) > 0 {
		short := make([]string, len(u.Dependencies))
		for i, dep := range u.Dependencies {
			if len(dep) >= 8 {
				short[i] = dep[:8]
			} else {
				short[i] = dep
			}
		}
		b.WriteString(fmt.Sprintf("%s %s\n", Dim("Depends on:"), strings.Join(short, ", ")))
	}
	if u.CalendarSynced {
		b.WriteString(fmt.Sprintf("%s %s (%s)\n", Dim("Calendar:"), u.CalendarEventID, u.CalendarProvider))
	}

	return b.String()
}

// FormatGraph renders units bucketed by topological level, one column of
// the dependency graph per bucket.
func FormatGraph(units []*domain.Unit, levels map[string]int, readiness map[string]bool) string {
	if len(units) == 0 {
		return Dim("No units.")
	}

	byID := make(map[string]*domain.Unit, len(units))
	maxLevel := 0
	for _, u := range units {
		byID[u.ID] = u
		if levels[u.ID] > maxLevel {
			maxLevel = levels[u.ID]
		}
	}

	var b strings.Builder
	for lvl := 0; lvl <= maxLevel; lvl++ {
		var bucket []*domain.Unit
		for _, u := range units {
			if levels[u.ID] == lvl {
				bucket = append(bucket, u)
			}
		}
		sort.Slice(bucket, func(i, j int) bool { return bucket[i].Title < bucket[j].Title })

		b.WriteString(Header(fmt.Sprintf("Level %d", lvl)))
		b.WriteString("\n")
		for _, u := range bucket {
			b.WriteString(fmt.Sprintf("  %s %s  %s  %s\n",
				Dim(u.DisplayID()), Bold(u.Title), StatusBadge(u.Status), ReadyBadge(readiness[u.ID])))
		}
		if lvl < maxLevel {
			b.WriteString("\n")
		}
	}

	return b.String()
}

// FormatSlot renders a proposed calendar slot.
func FormatSlot(slot scheduler.Interval) string {
	return fmt.Sprintf("%s %s → %s",
		slot.Start.Format("2006-01-02"),
		Bold(slot.Start.Format("15:04")),
		Bold(slot.End.Format("15:04")))
}

func formatDuration(u *domain.Unit) string {
	if u.Kind == domain.KindSubtask {
		return fmt.Sprintf("%dm", u.Duration)
	}
	return fmt.Sprintf("%dd", u.Duration)
}
