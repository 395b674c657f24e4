package hexgrid

import (
	"errors"
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Sentinel errors for hexgrid operations.
var (
	// ErrUnknownOrientation indicates an orientation other than Flat or Pointed.
	ErrUnknownOrientation = errors.New("hexgrid: unknown orientation")
	// ErrUnknownCoordStyle indicates a coordinate style other than LetterNumber or NumberLetter.
	ErrUnknownCoordStyle = errors.New("hexgrid: unknown coordinate style")
	// ErrInvalidCoord indicates a malformed coordinate string.
	ErrInvalidCoord = errors.New("hexgrid: invalid coordinate")
	// ErrCellNotFound indicates a coordinate that is not part of the board.
	ErrCellNotFound = errors.New("hexgrid: cell not on board")
)

// Sides is the number of sides of a hex.
const Sides = 6

// Orientation selects how hexes are drawn, which fixes the neighbor offsets.
type Orientation string

const (
	// Flat hexes have a flat top edge.
	Flat Orientation = "flat"
	// Pointed hexes have a pointed top vertex.
	Pointed Orientation = "pointed"
)

// CoordStyle selects how boundary rows and columns are written.
type CoordStyle string

const (
	// LetterNumber boards are keyed by row letter with numbered columns.
	LetterNumber CoordStyle = "letter-number"
	// NumberLetter boards are keyed by number with lettered columns.
	NumberLetter CoordStyle = "number-letter"
)

// offsets maps each side to a (row letter delta, column delta) pair.
var offsets = map[Orientation][Sides][2]int{
	Flat:    {{1, -1}, {-1, -1}, {-2, 0}, {-1, 1}, {1, 1}, {2, 0}},
	Pointed: {{1, -1}, {0, -2}, {-1, -1}, {-1, 1}, {0, 2}, {1, 1}},
}

// flippedOffsets returns the offset table with both deltas swapped, used by
// NumberLetter boards.
func flippedOffsets(o Orientation) [Sides][2]int {
	var out [Sides][2]int
	for side, d := range offsets[o] {
		out[side] = [2]int{d[1], d[0]}
	}

	return out
}

// Cell identifies one hex by row letter and column number.
// Cells are comparable and may be used as map keys.
type Cell struct {
	Row byte
	Col int
}

// String renders the cell as its board coordinate, e.g. "C15".
func (c Cell) String() string {
	return fmt.Sprintf("%c%d", c.Row, c.Col)
}

// Less orders cells by row, then column.
func (c Cell) Less(o Cell) bool {
	if c.Row == o.Row {
		return c.Col < o.Col
	}

	return c.Row < o.Row
}

// ParseCell parses a coordinate such as "C15". It does not check that the
// cell is on any particular board; use Grid.Cell for that.
func ParseCell(coord string) (Cell, error) {
	if len(coord) < 2 || len(coord) > 3 {
		return Cell{}, fmt.Errorf("%w: %q", ErrInvalidCoord, coord)
	}
	row := coord[0]
	if row < 'A' || row > 'Z' {
		return Cell{}, fmt.Errorf("%w: %q", ErrInvalidCoord, coord)
	}
	col, err := strconv.Atoi(coord[1:])
	if err != nil || col < 0 {
		return Cell{}, fmt.Errorf("%w: %q", ErrInvalidCoord, coord)
	}

	return Cell{Row: row, Col: col}, nil
}

// Span is one entry of a boundary row: either a single position (From == To)
// or an inclusive range stepping by 2. Values are kept as written and are
// interpreted according to the board's CoordStyle.
type Span struct {
	From, To string
}

// UnmarshalYAML accepts either a scalar ("15", "C") or a two-element sequence.
func (s *Span) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		s.From, s.To = node.Value, node.Value

		return nil
	case yaml.SequenceNode:
		if len(node.Content) != 2 {
			return fmt.Errorf("hexgrid: span at line %d must have 2 elements, got %d", node.Line, len(node.Content))
		}
		s.From, s.To = node.Content[0].Value, node.Content[1].Value

		return nil
	default:
		return fmt.Errorf("hexgrid: span at line %d must be a scalar or a sequence", node.Line)
	}
}

// Definition is the static description of a board's hex layout.
type Definition struct {
	Orientation Orientation       `yaml:"orientation"`
	Coords      CoordStyle        `yaml:"coords"`
	Boundaries  map[string][]Span `yaml:"boundaries"`
	// Impassable lists pairs of adjacent coordinates whose shared border
	// cannot be crossed (rivers, mountains printed as walls).
	Impassable [][2]string `yaml:"impassable"`
}
