package scheduler

import (
	"fmt"

	"github.com/jordanmvolk/marquee/internal/domain"
)

// CycleError reports a dependency cycle discovered while leveling.
// Cycles indicate corrupted dependency data; they cannot be produced
// through the service layer, which rejects cycle-introducing edits.
type CycleError struct {
	UnitID string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("dependency cycle through unit %s", e.UnitID)
}

// Levels assigns each unit its topological level: 0 for units with no
// resolvable dependencies, otherwise one more than the deepest dependency.
// The level map is used to bucket units into columns for dependency-graph
// layout and never drives date computation.
//
// Levels memoizes per invocation and marks units on the current descent
// path, so the walk is linear and a cycle surfaces as a *CycleError
// instead of hanging or being silently truncated.
func Levels(g *Graph) (map[string]int, error) {
	levels := make(map[string]int, len(g.Units()))
	visiting := make(map[string]bool)

	var walk func(u *domain.Unit) (int, error)
	walk = func(u *domain.Unit) (int, error) {
		if lvl, ok := levels[u.ID]; ok {
			return lvl, nil
		}
		if visiting[u.ID] {
			return 0, &CycleError{UnitID: u.ID}
		}
		visiting[u.ID] = true
		defer delete(visiting, u.ID)

		lvl := 0
		for _, dep := range g.Dependencies(u) {
			depLvl, err := walk(dep)
			if err != nil {
				return 0, err
			}
			if depLvl+1 > lvl {
				lvl = depLvl + 1
			}
		}
		levels[u.ID] = lvl
		return lvl, nil
	}

	for _, u := range g.Units() {
		if _, err := walk(u); err != nil {
			return nil, err
		}
	}
	return levels, nil
}
