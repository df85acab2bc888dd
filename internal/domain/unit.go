package domain

import "time"

// Unit is a schedulable unit of marketing work: an activity within a plan,
// or a subtask within an activity. Dependencies are ids of other units of
// the same kind that must be done before this unit may begin.
type Unit struct {
	ID       string
	PlanID   string
	ParentID *string
	Title    string
	Kind     UnitKind
	Status   UnitStatus

	// Duration is a count of calendar days for activities, or execution
	// minutes for subtasks. Zero-duration units are instantaneous.
	Duration int

	StartDate time.Time
	DueDate   time.Time

	Dependencies []string

	// Calendar mirror state, owned by the external provider and passed
	// through unchanged.
	CalendarSynced   bool
	CalendarEventID  string
	CalendarProvider CalendarProvider

	CreatedAt time.Time
	UpdatedAt time.Time
}

// DurationDays returns the unit's window length in calendar days.
// Subtask durations are execution minutes and do not extend the window.
func (u *Unit) DurationDays() int {
	if u.Kind == KindActivity {
		return u.Duration
	}
	return 0
}

// ExecutionMinutes returns the minutes needed to execute the unit within a
// calendar slot. Only subtasks carry an execution duration.
func (u *Unit) ExecutionMinutes() int {
	if u.Kind == KindSubtask {
		return u.Duration
	}
	return 0
}

// IsDone reports whether the unit has reached the terminal done status.
// Cancelled is terminal but not done.
func (u *Unit) IsDone() bool {
	return u.Status == UnitDone
}

// DependsOn reports whether id is in the unit's declared dependency set.
func (u *Unit) DependsOn(id string) bool {
	for _, d := range u.Dependencies {
		if d == id {
			return true
		}
	}
	return false
}

// NormalizeWindow enforces DueDate >= StartDate by clamping the due date
// forward. An inverted window is never stored.
func (u *Unit) NormalizeWindow() {
	if u.DueDate.Before(u.StartDate) {
		u.DueDate = u.StartDate
	}
}

// DisplayID returns a short identifier for display, truncating the UUID
// to 8 characters.
func (u *Unit) DisplayID() string {
	if len(u.ID) >= 8 {
		return u.ID[:8]
	}
	return u.ID
}
