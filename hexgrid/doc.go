// Package hexgrid models the hex map of an 18xx board as a fixed set of
// cells with up to six neighbors each.
//
// What:
//
//   - Cell is an immutable (row letter, column number) coordinate, e.g. "C15".
//   - Grid is built once from a Definition and answers neighbor lookups by side.
//   - Two hex orientations are supported: Flat and Pointed.
//   - Two coordinate styles are supported: LetterNumber (rows are letters) and
//     NumberLetter (the board is printed with numbered rows; coordinates are
//     still written letter first, and the flipped offset table is used).
//
// Sides:
//
//	Sides are numbered 0..5. The offset of each side is fixed per orientation;
//	a side whose neighbor is off-board, or whose border is listed as impassable,
//	has no neighbor.
//
// Complexity:
//
//   - New:      O(C) for C cells, Memory: O(C).
//   - Neighbor: O(1).
//   - Cell:     O(len(coord)).
//
// Errors:
//
//   - ErrUnknownOrientation: orientation is neither "flat" nor "pointed".
//   - ErrUnknownCoordStyle:  coordinate style is not recognised.
//   - ErrInvalidCoord:       a coordinate string cannot be parsed.
//   - ErrCellNotFound:       a coordinate is well-formed but not on the board.
package hexgrid
