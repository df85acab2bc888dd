package scheduler

import "time"

// Interval is a half-open [Start, End) span of time. Busy periods reported
// by a calendar provider and proposed slots are both intervals.
type Interval struct {
	Start time.Time
	End   time.Time
}

// Overlaps reports whether two half-open intervals intersect.
func (iv Interval) Overlaps(other Interval) bool {
	return iv.Start.Before(other.End) && other.Start.Before(iv.End)
}

// Duration returns the interval's length.
func (iv Interval) Duration() time.Duration {
	return iv.End.Sub(iv.Start)
}

// IsZero reports whether the interval is the zero value.
func (iv Interval) IsZero() bool {
	return iv.Start.IsZero() && iv.End.IsZero()
}

// WorkingHours is a recurring daily interval during which calendar slots
// may be placed. Days are not filtered: every calendar day opens at the
// same local time.
type WorkingHours struct {
	OpenHour  int
	OpenMin   int
	CloseHour int
	CloseMin  int
}

// DefaultWorkingHours returns the standard 09:00-17:00 rule.
func DefaultWorkingHours() WorkingHours {
	return WorkingHours{OpenHour: 9, CloseHour: 17}
}

// OpenOn returns the opening instant on the calendar day containing t.
func (w WorkingHours) OpenOn(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, w.OpenHour, w.OpenMin, 0, 0, t.Location())
}

// CloseOn returns the closing instant on the calendar day containing t.
func (w WorkingHours) CloseOn(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, w.CloseHour, w.CloseMin, 0, 0, t.Location())
}
