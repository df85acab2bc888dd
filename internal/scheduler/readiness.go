package scheduler

import "github.com/jordanmvolk/marquee/internal/domain"

// CanBegin reports whether every resolvable dependency of the unit has
// reached the done status. Units with no resolvable dependencies can
// always begin. Cancelled dependencies block: cancelled is terminal but
// not done.
func CanBegin(g *Graph, u *domain.Unit) bool {
	for _, dep := range g.Dependencies(u) {
		if !dep.IsDone() {
			return false
		}
	}
	return true
}

// Readiness returns CanBegin for every unit in the graph, keyed by id.
func Readiness(g *Graph) map[string]bool {
	out := make(map[string]bool, len(g.Units()))
	for _, u := range g.Units() {
		out[u.ID] = CanBegin(g, u)
	}
	return out
}
