package hexgrid_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/routes18xx/hexgrid"
)

// smallPointed builds a two-row pointed board:
//
//	A1  A3  A5
//	  B2  B4
func smallPointed(t *testing.T, impassable ...[2]string) *hexgrid.Grid {
	t.Helper()
	g, err := hexgrid.New(hexgrid.Definition{
		Orientation: hexgrid.Pointed,
		Boundaries: map[string][]hexgrid.Span{
			"A": {{From: "1", To: "5"}},
			"B": {{From: "2", To: "2"}, {From: "4", To: "4"}},
		},
		Impassable: impassable,
	})
	require.NoError(t, err)

	return g
}

func TestNew_PointedNeighbors(t *testing.T) {
	g := smallPointed(t)
	a3, err := g.Cell("A3")
	require.NoError(t, err)

	want := map[int]string{0: "B2", 1: "A1", 4: "A5", 5: "B4"}
	for side := 0; side < hexgrid.Sides; side++ {
		n, ok := g.Neighbor(a3, side)
		if coord, exists := want[side]; exists {
			require.True(t, ok, "side %d", side)
			assert.Equal(t, coord, n.String())
		} else {
			assert.False(t, ok, "side %d should be off-board", side)
		}
	}
}

func TestNew_NeighborsAreSymmetric(t *testing.T) {
	for _, o := range []hexgrid.Orientation{hexgrid.Flat, hexgrid.Pointed} {
		g, err := hexgrid.New(hexgrid.Definition{
			Orientation: o,
			Boundaries: map[string][]hexgrid.Span{
				"A": {{From: "1", To: "9"}},
				"B": {{From: "2", To: "10"}},
				"C": {{From: "1", To: "9"}},
				"D": {{From: "2", To: "10"}},
			},
		})
		require.NoError(t, err)
		for _, c := range g.Cells() {
			for side := 0; side < hexgrid.Sides; side++ {
				n, ok := g.Neighbor(c, side)
				if !ok {
					continue
				}
				back, ok := g.Neighbor(n, (side+3)%hexgrid.Sides)
				require.True(t, ok, "%s: %s side %d -> %s has no way back", o, c, side, n)
				assert.Equal(t, c, back)
			}
		}
	}
}

func TestNew_ImpassableBlocksBothDirections(t *testing.T) {
	g := smallPointed(t, [2]string{"A1", "A3"})
	a1, _ := g.Cell("A1")
	a3, _ := g.Cell("A3")

	assert.NotContains(t, g.Neighbors(a1), a3)
	assert.NotContains(t, g.Neighbors(a3), a1)
}

func TestNew_NumberLetterUsesFlippedOffsets(t *testing.T) {
	g, err := hexgrid.New(hexgrid.Definition{
		Orientation: hexgrid.Flat,
		Coords:      hexgrid.NumberLetter,
		Boundaries: map[string][]hexgrid.Span{
			"1": {{From: "A", To: "E"}},
			"2": {{From: "B", To: "D"}},
		},
	})
	require.NoError(t, err)

	c1, err := g.Cell("C1")
	require.NoError(t, err)
	// Flat side 5 is (+2, 0); flipped it becomes (0, +2), i.e. C3, off-board.
	_, ok := g.Neighbor(c1, 5)
	assert.False(t, ok)
	// Flat side 4 is (+1, +1), flipped to (+1 letter, +1 column): D2.
	n, ok := g.Neighbor(c1, 4)
	require.True(t, ok)
	assert.Equal(t, "D2", n.String())
}

func TestNew_Errors(t *testing.T) {
	_, err := hexgrid.New(hexgrid.Definition{Orientation: "round"})
	require.ErrorIs(t, err, hexgrid.ErrUnknownOrientation)

	_, err = hexgrid.New(hexgrid.Definition{Orientation: hexgrid.Flat, Coords: "polar"})
	require.ErrorIs(t, err, hexgrid.ErrUnknownCoordStyle)

	_, err = hexgrid.New(hexgrid.Definition{
		Orientation: hexgrid.Flat,
		Boundaries:  map[string][]hexgrid.Span{"A": {{From: "x", To: "3"}}},
	})
	require.ErrorIs(t, err, hexgrid.ErrInvalidCoord)
}

func TestGrid_Cell(t *testing.T) {
	g := smallPointed(t)

	c, err := g.Cell("B4")
	require.NoError(t, err)
	assert.Equal(t, hexgrid.Cell{Row: 'B', Col: 4}, c)

	_, err = g.Cell("B3")
	require.ErrorIs(t, err, hexgrid.ErrCellNotFound)

	for _, bad := range []string{"", "A", "1A", "A1234", "a1"} {
		_, err = g.Cell(bad)
		require.ErrorIs(t, err, hexgrid.ErrInvalidCoord, bad)
	}
}

func TestGrid_CellsOrdered(t *testing.T) {
	g := smallPointed(t)
	var got []string
	for _, c := range g.Cells() {
		got = append(got, c.String())
	}
	assert.Equal(t, []string{"A1", "A3", "A5", "B2", "B4"}, got)
}

func TestSpan_UnmarshalYAML(t *testing.T) {
	var def hexgrid.Definition
	src := `
orientation: pointed
boundaries:
  A: [1, [5, 9]]
impassable:
  - [A5, A7]
`
	require.NoError(t, yaml.Unmarshal([]byte(src), &def))
	assert.Equal(t, []hexgrid.Span{{From: "1", To: "1"}, {From: "5", To: "9"}}, def.Boundaries["A"])

	g, err := hexgrid.New(def)
	require.NoError(t, err)
	assert.Len(t, g.Cells(), 4)

	require.Error(t, yaml.Unmarshal([]byte("boundaries: {A: [[1, 2, 3]]}"), &def))
}
