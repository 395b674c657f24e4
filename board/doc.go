// Package board models the spaces of an 18xx map and the tiles laid on them.
//
// What:
//
//   - Space is a tagged variant over a closed set of kinds (Track, Town, City,
//     Terminus). Connectivity, passability, station capacity and revenue are
//     answered by one dispatch on Kind rather than by a type hierarchy.
//   - Split cities carry Branches: subsets of the tile's path pairs, each with
//     its own station capacity.
//   - Board owns the pre-printed spaces and the tiles placed over them, and
//     checks placement legality as tiles, stations and tokens are added.
//
// Paths:
//
//	A space's paths map an entry cell (the neighbor a route arrives from) to
//	the exit cells reachable through the tile. An entry with no exits is a
//	stub: a route may start there or end there but never pass through.
//
// Lifecycle:
//
//	Placing a tile replaces the space at that cell with a new one, carrying
//	forward stations, bonus tokens, home/reserved railroads and per-cell
//	properties. Spaces are replaced, never deleted. After any placement error
//	the Board must be discarded.
//
// Concurrency:
//
//	A Board is built single-threaded and is read-only during route search.
//
// Errors:
//
//   - ErrIllegalPlacement: a tile or token cannot go where it was asked to.
//   - ErrCapacity, ErrDuplicateStation, ErrReservedSpace, ErrNoSuchBranch,
//     ErrNotACity, ErrSplitCity: station placement failures.
//   - ErrNoValue: a city has no value for the current phase or train.
//   - ErrInvalidBoard: global validation failed (see Board.Validate).
package board
