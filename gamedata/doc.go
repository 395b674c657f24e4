// Package gamedata loads a game's static definition files and a table's
// current state.
//
// A game directory holds five YAML files:
//
//	game.yaml       phases, upgrade phases, private company closings, rules
//	board.yaml      grid (orientation, boundaries, impassable borders) and
//	                pre-printed spaces (tracks, towns, cities, termini)
//	tiles.yaml      the placeable tile catalog
//	trains.yaml     train definitions and per-phase train limits
//	railroads.yaml  home city, nicknames and removability per railroad
//
// Table state comes as ';'-separated CSV:
//
//	board state     coord; tile_id; orientation
//	railroads       name; trains | removed; stations; branch map...
//	private         name; owner; coord
//
// Tiles are placed in ascending upgrade level, so a board state may list an
// upgrade chain in any order. Railroads are read in full before any station
// is placed so that the game phase is known when reservations are checked.
//
// Errors:
//
//   - ErrInvalidData:       malformed file or row.
//   - ErrUnknownTile:       a board state row names a tile not in the catalog.
//   - ErrUnknownRailroad:   a railroad the game does not define.
//   - ErrDuplicateRailroad: a railroad listed twice.
//   - ErrNotRemovable:      a railroad marked removed that may not close.
package gamedata
