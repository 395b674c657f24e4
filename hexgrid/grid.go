package hexgrid

import (
	"fmt"
	"sort"
	"strconv"
)

// Grid is an immutable set of cells with precomputed neighbor links.
// It is safe for concurrent readers once built.
type Grid struct {
	orientation Orientation
	neighbors   map[Cell]*[Sides]link
	order       []Cell // sorted by Cell.Less
}

// link is one side of a cell; ok is false when the side has no neighbor.
type link struct {
	cell Cell
	ok   bool
}

// New builds a Grid from a Definition.
// Returns ErrUnknownOrientation, ErrUnknownCoordStyle or ErrInvalidCoord
// (wrapped with the offending value) on malformed input.
// Complexity: O(C) for C cells.
func New(def Definition) (*Grid, error) {
	if _, ok := offsets[def.Orientation]; !ok {
		return nil, fmt.Errorf("%w: %q (want %q or %q)", ErrUnknownOrientation, def.Orientation, Flat, Pointed)
	}
	style := def.Coords
	if style == "" {
		style = LetterNumber
	}

	var (
		cells []Cell
		table [Sides][2]int
		err   error
	)
	switch style {
	case LetterNumber:
		cells, err = letterNumberCells(def.Boundaries)
		table = offsets[def.Orientation]
	case NumberLetter:
		cells, err = numberLetterCells(def.Boundaries)
		table = flippedOffsets(def.Orientation)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCoordStyle, style)
	}
	if err != nil {
		return nil, err
	}

	g := &Grid{
		orientation: def.Orientation,
		neighbors:   make(map[Cell]*[Sides]link, len(cells)),
	}
	for _, c := range cells {
		g.neighbors[c] = &[Sides]link{}
	}

	blocked := make(map[[2]Cell]bool, 2*len(def.Impassable))
	for _, pair := range def.Impassable {
		a, err := ParseCell(pair[0])
		if err != nil {
			return nil, err
		}
		b, err := ParseCell(pair[1])
		if err != nil {
			return nil, err
		}
		blocked[[2]Cell{a, b}] = true
		blocked[[2]Cell{b, a}] = true
	}

	for c, sides := range g.neighbors {
		for side, d := range table {
			n := Cell{Row: byte(int(c.Row) + d[0]), Col: c.Col + d[1]}
			if _, on := g.neighbors[n]; !on || blocked[[2]Cell{c, n}] {
				continue
			}
			sides[side] = link{cell: n, ok: true}
		}
	}

	g.order = make([]Cell, 0, len(g.neighbors))
	for c := range g.neighbors {
		g.order = append(g.order, c)
	}
	sort.Slice(g.order, func(i, j int) bool { return g.order[i].Less(g.order[j]) })

	return g, nil
}

// letterNumberCells expands boundaries keyed by row letter with numeric spans.
func letterNumberCells(boundaries map[string][]Span) ([]Cell, error) {
	var cells []Cell
	for row, spans := range boundaries {
		if len(row) != 1 {
			return nil, fmt.Errorf("%w: row %q", ErrInvalidCoord, row)
		}
		for _, s := range spans {
			from, err1 := strconv.Atoi(s.From)
			to, err2 := strconv.Atoi(s.To)
			if err1 != nil || err2 != nil {
				return nil, fmt.Errorf("%w: row %s span [%s, %s]", ErrInvalidCoord, row, s.From, s.To)
			}
			for col := from; col <= to; col += 2 {
				cells = append(cells, Cell{Row: row[0], Col: col})
			}
		}
	}

	return cells, nil
}

// numberLetterCells expands boundaries keyed by number with lettered spans.
func numberLetterCells(boundaries map[string][]Span) ([]Cell, error) {
	var cells []Cell
	for key, spans := range boundaries {
		col, err := strconv.Atoi(key)
		if err != nil {
			return nil, fmt.Errorf("%w: row %q", ErrInvalidCoord, key)
		}
		for _, s := range spans {
			if len(s.From) != 1 || len(s.To) != 1 {
				return nil, fmt.Errorf("%w: row %s span [%s, %s]", ErrInvalidCoord, key, s.From, s.To)
			}
			for row := int(s.From[0]); row <= int(s.To[0]); row += 2 {
				cells = append(cells, Cell{Row: byte(row), Col: col})
			}
		}
	}

	return cells, nil
}

// Orientation reports the hex orientation the grid was built with.
func (g *Grid) Orientation() Orientation { return g.orientation }

// Contains reports whether c is on the board.
func (g *Grid) Contains(c Cell) bool {
	_, ok := g.neighbors[c]

	return ok
}

// Cell resolves a coordinate string to a cell on this board.
// Returns ErrInvalidCoord for malformed input and ErrCellNotFound for a
// well-formed coordinate outside the board.
func (g *Grid) Cell(coord string) (Cell, error) {
	c, err := ParseCell(coord)
	if err != nil {
		return Cell{}, err
	}
	if !g.Contains(c) {
		return Cell{}, fmt.Errorf("%w: %s", ErrCellNotFound, coord)
	}

	return c, nil
}

// Neighbor returns the cell across the given side of c.
// ok is false if c is off-board, side is out of range, the neighbor is
// off-board, or the border is impassable.
func (g *Grid) Neighbor(c Cell, side int) (Cell, bool) {
	sides, on := g.neighbors[c]
	if !on || side < 0 || side >= Sides {
		return Cell{}, false
	}
	l := sides[side]

	return l.cell, l.ok
}

// Neighbors returns the existing neighbors of c in side order.
func (g *Grid) Neighbors(c Cell) []Cell {
	sides, on := g.neighbors[c]
	if !on {
		return nil
	}
	out := make([]Cell, 0, Sides)
	for _, l := range sides {
		if l.ok {
			out = append(out, l.cell)
		}
	}

	return out
}

// Cells returns all cells in row, column order. The slice is a copy.
func (g *Grid) Cells() []Cell {
	out := make([]Cell, len(g.order))
	copy(out, g.order)

	return out
}
