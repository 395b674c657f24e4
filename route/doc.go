// Package route holds the paths a train can run and what they are worth.
//
// What:
//
//   - Route is an immutable, cycle-free sequence of board spaces. Two routes
//     are the same route when they visit the same set of cells, so a route
//     and its reverse share one Key.
//   - Edges are unordered pairs of adjacent cells; two routes Overlap when
//     they share any edge.
//   - Evaluate values a route for one train: the railroad's best station
//     stop is always collected, the rest are chosen by value up to the
//     train's collection limit. Routes between an east and a west terminus
//     are also tried with both termini forced and their bonus added.
//   - Run is a valued route; Set is one final answer, one run per train.
//
// Complexity:
//
//   - New:        O(L log L) for a path of L spaces (key construction).
//   - Overlap:    O(E1 + E2).
//   - Subroutes:  O(L²).
//   - Evaluate:   O(S log S) for S stops.
//
// Errors:
//
//   - ErrNoStation: the railroad has no station on the route.
//   - game.ErrRemovedRailroad: valuation was requested for a removed railroad.
//   - board.ErrNoValue: a stop has no value in the current phase.
package route
