// Package rules holds the game-specific hooks the route engine calls into.
//
// A Variant bundles three hooks with the game's private companies:
//
//   - FilterInvalidRoutes drops routes the game forbids (1846: no route may
//     run from an eastern terminus to another).
//   - RouteSetValues adjusts run values once a whole set is fixed (1846 Mail
//     Contract, 18AL Memphis and Charleston RR).
//   - RouteMaxValue bounds what RouteSetValues could ever give a run, for
//     pruning.
//   - PrivateCompanies maps company names to handlers that apply ownership
//     to the board and railroads (bonus tokens, independent home stations).
//
// Variants are registered by game name. "default", "1846" and "18AL" are
// built in; Register adds more.
//
// Errors:
//
//   - ErrUnknownGame:    no variant registered under the name.
//   - ErrUnknownPrivate: a private company the game does not have.
//   - ErrDuplicatePrivate, ErrUnknownOwner, ErrTokenPlacement: bad private
//     company assignments.
package rules
