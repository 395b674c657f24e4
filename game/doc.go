// Package game holds the per-game static data the route engine consumes:
// the ordered phase list, rule switches, train definitions and railroads.
//
// A Game is loaded once; CapturePhase (or SetPhase) fixes the current phase
// before any board values are computed. After that a Game is read-only and
// safe for concurrent use.
//
// Removed railroads are a terminal state: they own no trains, cannot take
// private companies and cannot run routes. Operations that would act on a
// removed railroad fail with ErrRemovedRailroad rather than doing nothing.
package game
