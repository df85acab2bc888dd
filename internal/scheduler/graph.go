package scheduler

import "github.com/jordanmvolk/marquee/internal/domain"

// Graph is a read-only dependency view over one planning context's units
// (a plan's activities, or an activity's subtasks). It is rebuilt from the
// unit collection on every query; the units remain the source of truth and
// the graph carries no lifecycle of its own.
//
// Edges point from dependent to dependency. Dependency ids that do not
// resolve to a unit in the collection are ignored: a deleted unit leaves
// dangling references behind, and those contribute nothing to leveling,
// dates, or readiness.
type Graph struct {
	units []*domain.Unit
	byID  map[string]*domain.Unit
}

// NewGraph builds a graph view over the given unit collection.
func NewGraph(units []*domain.Unit) *Graph {
	byID := make(map[string]*domain.Unit, len(units))
	for _, u := range units {
		byID[u.ID] = u
	}
	return &Graph{units: units, byID: byID}
}

// Lookup returns the unit with the given id, if present.
func (g *Graph) Lookup(id string) (*domain.Unit, bool) {
	u, ok := g.byID[id]
	return u, ok
}

// Units returns the underlying unit collection.
func (g *Graph) Units() []*domain.Unit {
	return g.units
}

// Dependencies returns the resolvable direct dependencies of the unit,
// in declaration order. Dangling ids are dropped.
func (g *Graph) Dependencies(u *domain.Unit) []*domain.Unit {
	var deps []*domain.Unit
	for _, id := range u.Dependencies {
		if dep, ok := g.byID[id]; ok {
			deps = append(deps, dep)
		}
	}
	return deps
}

// Dependents returns every unit whose dependency set contains the given
// unit's id. This scans the whole collection; planning contexts are
// human-sized, so the linear cost is acceptable.
func (g *Graph) Dependents(u *domain.Unit) []*domain.Unit {
	var out []*domain.Unit
	for _, other := range g.units {
		if other.ID == u.ID {
			continue
		}
		if other.DependsOn(u.ID) {
			out = append(out, other)
		}
	}
	return out
}
