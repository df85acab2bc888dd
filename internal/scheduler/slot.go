package scheduler

import "time"

// SearchStepMin is the slot-search granularity: candidate starts advance
// in fixed steps from the window start.
const SearchStepMin = 30

// FindSlot returns the earliest interval of durationMin minutes inside the
// window that lies entirely within working hours on a single day and
// overlaps no busy interval. Busy intervals are assumed to already be
// restricted to the window by the caller.
//
// Candidates advance in SearchStepMin steps; a candidate outside working
// hours jumps to the next opening. The result is the earliest slot
// reachable by the stepped search, which is not necessarily the globally
// earliest feasible start. When the search passes the window end without
// finding a slot it returns the zero Interval and false.
func FindSlot(window Interval, durationMin int, hours WorkingHours, busy []Interval) (Interval, bool) {
	need := time.Duration(durationMin) * time.Minute
	step := SearchStepMin * time.Minute

	cand := window.Start
	for cand.Before(window.End) {
		open := hours.OpenOn(cand)
		close := hours.CloseOn(cand)

		if cand.Before(open) {
			cand = open
			continue
		}
		if cand.Add(need).After(close) {
			cand = hours.OpenOn(cand.AddDate(0, 0, 1))
			continue
		}
		if cand.Add(need).After(window.End) {
			cand = cand.Add(step)
			continue
		}

		slot := Interval{Start: cand, End: cand.Add(need)}
		if !overlapsAny(slot, busy) {
			return slot, true
		}
		cand = cand.Add(step)
	}
	return Interval{}, false
}

func overlapsAny(slot Interval, busy []Interval) bool {
	for _, b := range busy {
		if slot.Overlaps(b) {
			return true
		}
	}
	return false
}
