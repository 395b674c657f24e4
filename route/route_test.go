package route_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/routes18xx/board"
	"github.com/katalvlaran/routes18xx/game"
	"github.com/katalvlaran/routes18xx/hexgrid"
	"github.com/katalvlaran/routes18xx/route"
)

func newGame(t *testing.T, rules game.Rules) *game.Game {
	t.Helper()
	g, err := game.New(game.Definition{Name: "test", Phases: []string{"2"}, UpgradePhases: map[int]string{0: "2"}, Rules: rules})
	require.NoError(t, err)
	require.NoError(t, g.SetPhase("2"))

	return g
}

func newGrid(t *testing.T) *hexgrid.Grid {
	t.Helper()
	grid, err := hexgrid.New(hexgrid.Definition{
		Orientation: hexgrid.Pointed,
		Boundaries: map[string][]hexgrid.Span{
			"A": {{From: "1", To: "9"}},
			"B": {{From: "2", To: "8"}},
			"C": {{From: "1", To: "9"}},
		},
	})
	require.NoError(t, err)

	return grid
}

// lineBoard: A1 city 10, A3 town 5, A5 track, A7 city 20, joined left to right.
func lineBoard(t *testing.T, rules game.Rules) *board.Board {
	t.Helper()
	b, err := board.New(newGame(t, rules), newGrid(t), board.BaseDefinition{
		Cities: map[string]board.SpaceDefinition{
			"A1": {Name: "Ten", Edges: []board.EdgeGroup{{4}}, Value: board.Value{Fixed: 10}, Capacity: board.Capacity{Slots: 1}},
			"A7": {Name: "Twenty", Edges: []board.EdgeGroup{{1}}, Value: board.Value{Fixed: 20}, Capacity: board.Capacity{Slots: 1}},
		},
		Towns: map[string]board.SpaceDefinition{
			"A3": {Name: "Five", Edges: []board.EdgeGroup{{1, 4}}, Value: board.Value{Fixed: 5}},
		},
		Tracks: map[string]board.SpaceDefinition{
			"A5": {Edges: []board.EdgeGroup{{1, 4}}},
		},
	})
	require.NoError(t, err)

	return b
}

func spaces(t *testing.T, b *board.Board, coords ...string) []*board.Space {
	t.Helper()
	out := make([]*board.Space, len(coords))
	for i, c := range coords {
		s, err := b.SpaceAt(c)
		require.NoError(t, err)
		require.NotNil(t, s, c)
		out[i] = s
	}

	return out
}

func TestRoute_IdentityIsVertexSet(t *testing.T) {
	b := lineBoard(t, game.Rules{})
	fwd := route.New(spaces(t, b, "A1", "A3", "A5")...)
	rev := route.New(spaces(t, b, "A5", "A3", "A1")...)

	assert.Equal(t, fwd.Key(), rev.Key())
	assert.True(t, fwd.Equal(rev))
	assert.Equal(t, "A1, A3, A5", fwd.String())
	assert.Equal(t, "A5, A3, A1", rev.String())
	assert.Len(t, fwd.Stops(), 2)
	assert.Len(t, fwd.Cities(), 1)
	assert.True(t, route.Empty().IsEmpty())
}

func TestRoute_Overlap(t *testing.T) {
	b := lineBoard(t, game.Rules{})
	left := route.New(spaces(t, b, "A1", "A3")...)
	right := route.New(spaces(t, b, "A3", "A5", "A7")...)
	whole := route.New(spaces(t, b, "A7", "A5", "A3", "A1")...)

	assert.False(t, left.Overlap(right), "sharing a stop is not sharing track")
	assert.True(t, whole.Overlap(left))
	assert.True(t, right.Overlap(whole))
	assert.False(t, route.Empty().Overlap(whole))
}

func TestRoute_Merge(t *testing.T) {
	b := lineBoard(t, game.Rules{})
	merged := route.New(spaces(t, b, "A1")...).Merge(route.New(spaces(t, b, "A3", "A5")...))

	assert.Equal(t, 3, merged.Len())
	assert.Equal(t, "A1, A3, A5", merged.String())
	assert.Len(t, merged.Edges(), 2)
}

func TestRoute_Subroutes(t *testing.T) {
	b := lineBoard(t, game.Rules{})
	r := route.New(spaces(t, b, "A1", "A3", "A5", "A7")...)
	a3, _ := b.Cell("A3")

	subs := r.Subroutes(a3)
	keys := make([]string, len(subs))
	for i, s := range subs {
		keys[i] = s.Key()
	}
	assert.ElementsMatch(t, []string{"A1,A3", "A3,A5,A7"}, keys)

	b2, _ := b.Cell("B2")
	assert.Empty(t, r.Subroutes(b2))
}

func TestEvaluate_TownExemption(t *testing.T) {
	twoThree := game.NewTrain(game.TrainDefinition{Collect: 2, Visit: 3})
	cases := []struct {
		name   string
		rules  game.Rules
		want   int
		nStops int
	}{
		{"towns count", game.Rules{}, 30, 2},
		{"towns exempt", game.Rules{TownsOmitFromLimit: true}, 35, 3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := lineBoard(t, tc.rules)
			rr := game.NewRailroad("B&O", []game.Train{twoThree})
			require.NoError(t, b.PlaceStation("A1", rr))

			run, err := route.Evaluate(route.New(spaces(t, b, "A1", "A3", "A5", "A7")...), b, rr, twoThree)
			require.NoError(t, err)
			assert.Equal(t, tc.want, run.Value)
			assert.Len(t, run.Stops, tc.nStops)
			assert.Equal(t, "Ten [10]", run.String()[:len("Ten [10]")])
		})
	}
}

func TestEvaluate_LimitsAndErrors(t *testing.T) {
	b := lineBoard(t, game.Rules{})
	rr := game.NewRailroad("B&O", nil)
	require.NoError(t, b.PlaceStation("A7", rr))
	r := route.New(spaces(t, b, "A1", "A3", "A5", "A7")...)

	one := game.NewTrain(game.TrainDefinition{Collect: 1, Visit: 3})
	run, err := route.Evaluate(r, b, rr, one)
	require.NoError(t, err)
	assert.Equal(t, 20, run.Value, "the station stop is always collected")
	require.Len(t, run.Stops, 1)
	assert.Equal(t, 3, run.Stops[0].Index)

	diesel := game.NewTrain(game.TrainDefinition{})
	run, err = route.Evaluate(r, b, rr, diesel)
	require.NoError(t, err)
	assert.Equal(t, 35, run.Value)

	_, err = route.Evaluate(r, b, game.NewRailroad("PRR", nil), one)
	require.ErrorIs(t, err, route.ErrNoStation)

	_, err = route.Evaluate(r, b, game.NewRemovedRailroad("NYC"), one)
	require.ErrorIs(t, err, game.ErrRemovedRailroad)
}

func TestEvaluate_Idempotent(t *testing.T) {
	b := lineBoard(t, game.Rules{})
	rr := game.NewRailroad("B&O", nil)
	require.NoError(t, b.PlaceStation("A1", rr))
	r := route.New(spaces(t, b, "A1", "A3", "A5", "A7")...)
	train := game.NewTrain(game.TrainDefinition{Collect: 2})

	first, err := route.Evaluate(r, b, rr, train)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := route.Evaluate(r, b, rr, train)
		require.NoError(t, err)
		assert.Equal(t, first.Value, again.Value)
		assert.Equal(t, first.Stops, again.Stops)
	}
}

// crossBoard: west terminus A1 (10, bonus 20), track A3, city A5 (20),
// track A7, east terminus A9 (30, bonus 20).
func crossBoard(t *testing.T) *board.Board {
	t.Helper()
	b, err := board.New(newGame(t, game.Rules{}), newGrid(t), board.BaseDefinition{
		Termini: map[string]board.SpaceDefinition{
			"A1": {Name: "West", Edges: []board.EdgeGroup{{4}}, Value: board.Value{Fixed: 10, E2WBonus: 20}, West: true},
			"A9": {Name: "East", Edges: []board.EdgeGroup{{1}}, Value: board.Value{Fixed: 30, E2WBonus: 20}, East: true},
		},
		Cities: map[string]board.SpaceDefinition{
			"A5": {Edges: []board.EdgeGroup{{1, 4}}, Value: board.Value{Fixed: 20}, Capacity: board.Capacity{Slots: 1}},
		},
		Tracks: map[string]board.SpaceDefinition{
			"A3": {Edges: []board.EdgeGroup{{1, 4}}},
			"A7": {Edges: []board.EdgeGroup{{1, 4}}},
		},
	})
	require.NoError(t, err)

	return b
}

func TestEvaluate_EastToWest(t *testing.T) {
	b := crossBoard(t)
	rr := game.NewRailroad("B&O", nil)
	require.NoError(t, b.PlaceStation("A5", rr))
	r := route.New(spaces(t, b, "A1", "A3", "A5", "A7", "A9")...)

	three := game.NewTrain(game.TrainDefinition{Collect: 3})
	run, err := route.Evaluate(r, b, rr, three)
	require.NoError(t, err)
	assert.True(t, run.EastToWest)
	assert.Equal(t, 100, run.Value)

	// Station plus both termini do not fit in two stops; the plain valuation stands.
	two := game.NewTrain(game.TrainDefinition{Collect: 2})
	run, err = route.Evaluate(r, b, rr, two)
	require.NoError(t, err)
	assert.False(t, run.EastToWest)
	assert.Equal(t, 50, run.Value)
	assert.LessOrEqual(t, len(run.Stops), two.Collect)

	half := route.New(spaces(t, b, "A1", "A3", "A5")...)
	run, err = route.Evaluate(half, b, rr, three)
	require.NoError(t, err)
	assert.False(t, run.EastToWest)
	assert.Equal(t, 30, run.Value)
}

func TestRoute_ContainsStationOnBranch(t *testing.T) {
	b, err := board.New(newGame(t, game.Rules{}), newGrid(t), board.BaseDefinition{
		Cities: map[string]board.SpaceDefinition{
			"B4": {
				Edges: []board.EdgeGroup{{1, 4}, {2, 5}},
				Value: board.Value{Fixed: 40},
				Capacity: board.Capacity{Branches: []board.BranchDefinition{
					{Edges: []board.EdgeGroup{{1, 4}}, Slots: 1},
					{Edges: []board.EdgeGroup{{2, 5}}, Slots: 1},
				}},
			},
		},
		Tracks: map[string]board.SpaceDefinition{
			"B2": {Edges: []board.EdgeGroup{{4}}},
			"B6": {Edges: []board.EdgeGroup{{1}}},
			"A3": {Edges: []board.EdgeGroup{{5}}},
			"C5": {Edges: []board.EdgeGroup{{2}}},
		},
	})
	require.NoError(t, err)
	rr := game.NewRailroad("B&O", nil)
	require.NoError(t, b.PlaceSplitStation("B4", rr, []string{"B2"}))
	hub, err := b.SpaceAt("B4")
	require.NoError(t, err)
	st := hub.Station("B&O")
	require.NotNil(t, st)

	assert.True(t, route.New(spaces(t, b, "B2", "B4", "B6")...).ContainsStation(st))
	assert.True(t, route.New(spaces(t, b, "B4", "B6")...).ContainsStation(st))
	assert.False(t, route.New(spaces(t, b, "A3", "B4", "C5")...).ContainsStation(st))
	assert.False(t, route.New(spaces(t, b, "A3")...).ContainsStation(st))
}

func TestSet(t *testing.T) {
	b := lineBoard(t, game.Rules{})
	rr := game.NewRailroad("B&O", nil)
	require.NoError(t, b.PlaceStation("A1", rr))
	require.NoError(t, b.PlaceStation("A7", rr))
	train := game.NewTrain(game.TrainDefinition{Collect: 2})

	left, err := route.Evaluate(route.New(spaces(t, b, "A1", "A3")...), b, rr, train)
	require.NoError(t, err)
	right, err := route.Evaluate(route.New(spaces(t, b, "A3", "A5", "A7")...), b, rr, train)
	require.NoError(t, err)

	s := route.NewSet([]*route.Run{left, right}, nil)
	assert.True(t, s.Disjoint())
	assert.Equal(t, 15+25, s.Value)
	assert.Equal(t, 2, s.Len())

	adjusted := route.NewSet([]*route.Run{left, right}, []int{15, 45})
	assert.Equal(t, 60, adjusted.Value)
}
