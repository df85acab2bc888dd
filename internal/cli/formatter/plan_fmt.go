package formatter

import (
	"fmt"
	"strings"

	"github.com/jordanmvolk/marquee/internal/domain"
)

// FormatPlanList renders plans as a table.
func FormatPlanList(plans []*domain.Plan) string {
	rows := make([][]string, 0, len(plans))
	for _, p := range plans {
		rows = append(rows, []string{
			p.DisplayID(),
			p.Name,
			p.Channel,
			planStatusBadge(p.Status),
			p.StartDate.Format("2006-01-02"),
		})
	}
	return RenderTable([]string{"ID", "Name", "Channel", "Status", "Start"}, rows)
}

// FormatPlanInspect renders a plan header followed by its activity table
// with readiness.
func FormatPlanInspect(p *domain.Plan, units []*domain.Unit, readiness map[string]bool) string {
	var b strings.Builder

	b.WriteString(Header(p.Name))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s %s\n", Dim("ID:"), p.ID))
	b.WriteString(fmt.Sprintf("%s %s\n", Dim("Channel:"), p.Channel))
	b.WriteString(fmt.Sprintf("%s %s\n", Dim("Status:"), planStatusBadge(p.Status)))
	b.WriteString(fmt.Sprintf("%s %s\n", Dim("Start:"), p.StartDate.Format("2006-01-02")))
	if p.Notes != "" {
		b.WriteString(fmt.Sprintf("%s %s\n", Dim("Notes:"), p.Notes))
	}

	if len(units) > 0 {
		b.WriteString("\n")
		b.WriteString(FormatUnitList(units, readiness))
	}

	return b.String()
}

func planStatusBadge(status domain.PlanStatus) string {
	switch status {
	case domain.PlanDone:
		return StyleGreen.Render(string(status))
	case domain.PlanPaused:
		return StyleYellow.Render(string(status))
	case domain.PlanArchived:
		return StyleDim.Render(string(status))
	default:
		return StyleBlue.Render(string(status))
	}
}
