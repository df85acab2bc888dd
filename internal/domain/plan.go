package domain

import "time"

// Plan is one marketing plan: the root planning context that activities
// (and, through them, subtasks) belong to.
type Plan struct {
	ID         string
	Name       string
	Channel    string
	Notes      string
	StartDate  time.Time
	Status     PlanStatus
	ArchivedAt *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// DisplayID returns a short identifier for display, truncating the UUID
// to 8 characters.
func (p *Plan) DisplayID() string {
	if len(p.ID) >= 8 {
		return p.ID[:8]
	}
	return p.ID
}
