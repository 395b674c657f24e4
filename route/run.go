package route

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/katalvlaran/routes18xx/board"
	"github.com/katalvlaran/routes18xx/game"
)

// ErrNoStation indicates a route valued for a railroad with no station on it.
var ErrNoStation = errors.New("route: no station of the railroad on the route")

// Stop is one collected stop of a run. Index is the stop's position on the
// route's path, so a space visited twice is tracked twice.
type Stop struct {
	Space *board.Space
	Index int
	Value int
}

// Run is a route valued for one train.
type Run struct {
	Route *Route
	Train game.Train
	// Stops are the collected stops in travel order.
	Stops []Stop
	Value int
	// EastToWest is set when the run collects the east/west bonus.
	EastToWest bool
}

// Overlap reports whether the two runs share track.
func (r *Run) Overlap(o *Run) bool { return r.Route.Overlap(o.Route) }

// String renders "<stop> [<value>] -> ..." over the collected stops.
func (r *Run) String() string {
	parts := make([]string, len(r.Stops))
	for i, s := range r.Stops {
		parts[i] = fmt.Sprintf("%s [%d]", s.Space.Name, s.Value)
	}

	return strings.Join(parts, " -> ")
}

// Evaluate values r for rr's train on b in the game's current phase.
//
// The station stop with the highest value is always collected. If the game
// exempts towns from the limit, every town is collected too and does not use
// up the limit. The remaining stops are taken by descending value, earlier
// stops first on ties. A route whose two ends are an east and a west
// terminus is also valued with both termini forced and their bonus added;
// the better of the two valuations wins, the bonus one on a tie.
func Evaluate(r *Route, b *board.Board, rr *game.Railroad, train game.Train) (*Run, error) {
	if err := rr.CheckActive(); err != nil {
		return nil, fmt.Errorf("value %s: %w", r, err)
	}
	g := b.Game()

	var stops []Stop
	for i, s := range r.path {
		if !s.IsStop() {
			continue
		}
		v, err := s.Value(g, rr, train)
		if err != nil {
			return nil, fmt.Errorf("value %s: %w", r, err)
		}
		stops = append(stops, Stop{Space: s, Index: i, Value: v})
	}

	station := -1
	for k, st := range stops {
		if !st.Space.HasStation(rr.Name) {
			continue
		}
		if station < 0 || st.Value > stops[station].Value {
			station = k
		}
	}
	if station < 0 {
		return nil, fmt.Errorf("%w: %s on %s", ErrNoStation, rr.Name, r)
	}

	townsExempt := g.Rules.TownsOmitFromLimit
	best := collect(r, train, stops, []int{station}, townsExempt)

	first, last := r.path[0], r.path[len(r.path)-1]
	if !crossesMap(first, last) {
		return best, nil
	}
	bonus := append([]Stop(nil), stops...)
	forced := []int{station}
	for k := range bonus {
		if bonus[k].Index == 0 || bonus[k].Index == len(r.path)-1 {
			bonus[k].Value += bonus[k].Space.E2WBonus()
			if k != station {
				forced = append(forced, k)
			}
		}
	}
	if !train.UnlimitedCollect() && len(forced) > train.Collect {
		return best, nil
	}
	e2w := collect(r, train, bonus, forced, townsExempt)
	e2w.EastToWest = true
	if e2w.Value >= best.Value {
		return e2w, nil
	}

	return best, nil
}

func crossesMap(a, b *board.Space) bool {
	return (a.Terminal == board.East && b.Terminal == board.West) ||
		(a.Terminal == board.West && b.Terminal == board.East)
}

// collect picks the paid stops. forced holds indexes into stops.
func collect(r *Route, train game.Train, stops []Stop, forced []int, townsExempt bool) *Run {
	take := make([]bool, len(stops))
	for _, k := range forced {
		take[k] = true
	}
	residual := train.Collect - len(forced)
	if townsExempt {
		for k, s := range stops {
			if s.Space.Kind == board.Town {
				take[k] = true
			}
		}
	}

	var rest []int
	for k := range stops {
		if !take[k] {
			rest = append(rest, k)
		}
	}
	sort.SliceStable(rest, func(i, j int) bool { return stops[rest[i]].Value > stops[rest[j]].Value })
	if !train.UnlimitedCollect() && residual < len(rest) {
		if residual < 0 {
			residual = 0
		}
		rest = rest[:residual]
	}
	for _, k := range rest {
		take[k] = true
	}

	run := &Run{Route: r, Train: train}
	for k, s := range stops {
		if take[k] {
			run.Stops = append(run.Stops, s)
			run.Value += s.Value
		}
	}

	return run
}
