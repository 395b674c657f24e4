// Package search enumerates every route a railroad's train can run.
//
// What:
//
//   - Walk is a depth-first traversal of the board from one cell, bounded by
//     a visit limit. A traversal node is (cell, entered-from, remaining
//     visits, visited cells). Stops consume a visit unless the game exempts
//     towns; a city that is full for the railroad ends the route there.
//   - FindRoutes runs Walk from each of the railroad's stations, widens to
//     routes that pass through a station by also walking from every city
//     reachable within the visit limit, adds every subroute anchored at a
//     station, and keeps routes that touch two or more stops including one
//     of the railroad's own stations. A game-specific Filter runs last.
//   - FindAll does this for every train, reusing results between trains
//     with the same limits.
//
// Routes are deduplicated by route.Route.Key, so a path found from both
// ends is kept once.
//
// Complexity:
//
//   - Walk: exponential in the visit limit in the worst case; O(P·L) for P
//     distinct paths of length L on typical boards.
//
// Options:
//
//   - WithContext(ctx)   cancellation, checked every few thousand steps.
//   - WithLogger(l)      slog logger; debug level lists every route.
//   - WithFilter(f)      game rule filter applied after the structural one.
//
// Errors:
//
//   - game.ErrRemovedRailroad   the railroad is removed.
//   - context.Canceled          ctx was cancelled.
//   - any error returned by the Filter.
package search
