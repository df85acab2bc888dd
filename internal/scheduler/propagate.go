package scheduler

import (
	"errors"
	"time"

	"github.com/jordanmvolk/marquee/internal/domain"
)

// ErrDueBeforeStart is returned when a direct due-date edit lands before
// the unit's current start date. The edit is rejected outright; the caller
// must move the start date first.
var ErrDueBeforeStart = errors.New("due date is before start date")

// PropagateDates recomputes the date window of the unit with the given id
// and of every transitive dependent, and returns the units whose dates
// changed, in recomputation order.
//
// Per unit, the window derives from its dependencies: with none, the start
// date stays where the user put it (or defaults to today for a fresh unit)
// and the due date is start plus duration; with one or more, the start
// moves to the day after the latest dependency due date. Dangling
// dependency ids contribute nothing, so a unit whose declared set is
// entirely dangling behaves as if it had no dependencies.
//
// Downstream recomputation is a breadth-first worklist seeded with the
// edited unit: each dependent is enqueued and processed at most once per
// batch, so a change cascades the whole chain without revisiting shared
// ancestors.
func PropagateDates(g *Graph, id string, now time.Time) []*domain.Unit {
	root, ok := g.Lookup(id)
	if !ok {
		return nil
	}

	var changed []*domain.Unit
	seen := map[string]bool{root.ID: true}
	queue := []*domain.Unit{root}

	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]

		if recomputeWindow(g, u, now) {
			changed = append(changed, u)
		}

		for _, dep := range g.Dependents(u) {
			if !seen[dep.ID] {
				seen[dep.ID] = true
				queue = append(queue, dep)
			}
		}
	}
	return changed
}

// recomputeWindow applies the date rule to a single unit and reports
// whether its window moved. Activity windows span their duration in days;
// subtask windows keep whatever day span they already had (usually zero),
// since subtask durations are execution minutes, not days.
func recomputeWindow(g *Graph, u *domain.Unit, now time.Time) bool {
	prevStart, prevDue := u.StartDate, u.DueDate

	span := u.DurationDays()
	if u.Kind == domain.KindSubtask && !prevDue.IsZero() && !prevDue.Before(prevStart) {
		span = daysBetween(prevStart, prevDue)
	}

	deps := g.Dependencies(u)
	if len(deps) == 0 {
		if u.StartDate.IsZero() {
			u.StartDate = DayOf(now)
		}
	} else {
		latestEnd := deps[0].DueDate
		for _, dep := range deps[1:] {
			if dep.DueDate.After(latestEnd) {
				latestEnd = dep.DueDate
			}
		}
		u.StartDate = latestEnd.AddDate(0, 0, 1)
	}

	u.DueDate = u.StartDate.AddDate(0, 0, span)
	u.NormalizeWindow()

	return !u.StartDate.Equal(prevStart) || !u.DueDate.Equal(prevDue)
}

// ApplyDueDate sets the unit's due date directly. For activities the
// duration is re-derived as the day count between start and due; subtask
// durations are execution minutes and are left alone. A due date earlier
// than the current start is rejected, not clamped.
func ApplyDueDate(u *domain.Unit, due time.Time) error {
	if due.Before(u.StartDate) {
		return ErrDueBeforeStart
	}
	u.DueDate = due
	if u.Kind == domain.KindActivity {
		u.Duration = daysBetween(u.StartDate, due)
	}
	return nil
}

// ApplyDuration sets the unit's duration directly. For activities the due
// date is re-derived keeping the start fixed; subtask windows are not
// driven by their minute duration, so the due date stays where it is.
func ApplyDuration(u *domain.Unit, duration int) {
	u.Duration = duration
	if u.Kind != domain.KindActivity {
		return
	}
	u.DueDate = u.StartDate.AddDate(0, 0, u.DurationDays())
	u.NormalizeWindow()
}

// DayOf truncates a timestamp to calendar-day granularity in its location.
func DayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// daysBetween counts whole calendar days from a to b (b >= a).
func daysBetween(a, b time.Time) int {
	return int(DayOf(b).Sub(DayOf(a)) / (24 * time.Hour))
}
