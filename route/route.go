package route

import (
	"sort"
	"strings"

	"github.com/katalvlaran/routes18xx/board"
	"github.com/katalvlaran/routes18xx/hexgrid"
)

// Edge is an unordered pair of adjacent cells, stored lowest cell first.
type Edge [2]hexgrid.Cell

// NewEdge normalises the pair so that (a, b) and (b, a) compare equal.
func NewEdge(a, b hexgrid.Cell) Edge {
	if b.Less(a) {
		a, b = b, a
	}

	return Edge{a, b}
}

// Route is an ordered path of board spaces.
type Route struct {
	path  []*board.Space
	key   string
	edges []Edge
}

// New builds a route over the given spaces. The slice is copied.
func New(path ...*board.Space) *Route {
	r := &Route{path: append([]*board.Space(nil), path...)}
	cells := make([]string, len(r.path))
	for i, s := range r.path {
		cells[i] = s.Cell.String()
		if i > 0 {
			r.edges = append(r.edges, NewEdge(r.path[i-1].Cell, s.Cell))
		}
	}
	sort.Strings(cells)
	r.key = strings.Join(cells, ",")

	return r
}

// Empty returns a route with no spaces.
func Empty() *Route { return New() }

// Key identifies the route by its set of cells.
func (r *Route) Key() string { return r.key }

// Len returns the number of spaces on the route.
func (r *Route) Len() int { return len(r.path) }

// IsEmpty reports whether the route has no spaces.
func (r *Route) IsEmpty() bool { return len(r.path) == 0 }

// Spaces returns the path in travel order.
func (r *Route) Spaces() []*board.Space { return append([]*board.Space(nil), r.path...) }

// Edges returns the traversed cell pairs in travel order.
func (r *Route) Edges() []Edge { return append([]Edge(nil), r.edges...) }

// Stops returns the towns, cities and termini on the route in travel order.
func (r *Route) Stops() []*board.Space {
	var out []*board.Space
	for _, s := range r.path {
		if s.IsStop() {
			out = append(out, s)
		}
	}

	return out
}

// Cities returns the stops that can hold stations.
func (r *Route) Cities() []*board.Space {
	var out []*board.Space
	for _, s := range r.path {
		if s.IsCity() {
			out = append(out, s)
		}
	}

	return out
}

// Equal reports whether both routes visit the same cells.
func (r *Route) Equal(o *Route) bool { return r.key == o.key }

// Merge returns r followed by o.
func (r *Route) Merge(o *Route) *Route {
	path := make([]*board.Space, 0, len(r.path)+len(o.path))
	path = append(path, r.path...)

	return New(append(path, o.path...)...)
}

// Overlap reports whether the routes share any edge.
func (r *Route) Overlap(o *Route) bool {
	if len(r.edges) == 0 || len(o.edges) == 0 {
		return false
	}
	seen := make(map[Edge]struct{}, len(r.edges))
	for _, e := range r.edges {
		seen[e] = struct{}{}
	}
	for _, e := range o.edges {
		if _, ok := seen[e]; ok {
			return true
		}
	}

	return false
}

// ContainsCell reports whether the route visits c.
func (r *Route) ContainsCell(c hexgrid.Cell) bool { return r.index(c) >= 0 }

func (r *Route) index(c hexgrid.Cell) int {
	for i, s := range r.path {
		if s.Cell == c {
			return i
		}
	}

	return -1
}

// ContainsStation reports whether the route uses st. On a split city the
// route must also arrive and leave through the station's branch.
func (r *Route) ContainsStation(st *board.Station) bool {
	i := r.index(st.Cell)
	if i < 0 {
		return false
	}
	if st.Branch == nil {
		return true
	}
	branch, err := r.path[i].StationBranch(st)
	if err != nil {
		return false
	}
	allowed := make(map[hexgrid.Cell]bool)
	for _, c := range branch.Cells() {
		allowed[c] = true
	}
	if i > 0 && !allowed[r.path[i-1].Cell] {
		return false
	}
	if i < len(r.path)-1 && !allowed[r.path[i+1].Cell] {
		return false
	}

	return true
}

// Subroutes trims the route to every prefix ending at start and every suffix
// beginning at it, keeping those that touch at least two stops. Each result
// is anchored at start; duplicates by Key are dropped.
func (r *Route) Subroutes(start hexgrid.Cell) []*Route {
	at := r.index(start)
	if at < 0 {
		return nil
	}
	seen := make(map[string]bool)
	var out []*Route
	add := func(sub *Route) {
		if seen[sub.key] || len(sub.Stops()) < 2 {
			return
		}
		seen[sub.key] = true
		out = append(out, sub)
	}
	for i := at; i >= 0; i-- {
		add(New(r.path[i : at+1]...))
	}
	for j := at + 1; j <= len(r.path); j++ {
		add(New(r.path[at:j]...))
	}

	return out
}

// String lists the route's cells, e.g. "A1, A3, A5".
func (r *Route) String() string {
	parts := make([]string, len(r.path))
	for i, s := range r.path {
		parts[i] = s.Cell.String()
	}

	return strings.Join(parts, ", ")
}
