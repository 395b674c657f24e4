// Package finder is the entry point of the route engine: given a board and
// the railroads in play, it returns the best set of runs for one railroad.
//
// What:
//
//	FindBestRoutes captures the game phase from every railroad's trains,
//	enumerates candidate routes per train (package search), values each
//	one for its train (package route) and picks the best non-overlapping
//	set (package optimize). The game's rule hooks filter routes and adjust
//	set values.
//
// Options:
//
//   - WithHooks:      game rule hooks; defaults to rules.Default.
//   - WithLogger:     slog logger; every call logs under a fresh run id.
//   - WithWorkers, WithTimeLimit, WithNodeLimit: passed to the optimizer.
//
// A railroad without trains gets an empty set, not an error. Concurrent
// calls on one board must pass the same railroads: each call stores the
// captured phase on the board's game.
//
// Errors:
//
//   - game.ErrRemovedRailroad if the active railroad has been removed.
//   - any error from the hooks, the search or the optimizer, and the
//     context's error on cancellation.
package finder
