package search_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/routes18xx/board"
	"github.com/katalvlaran/routes18xx/game"
	"github.com/katalvlaran/routes18xx/hexgrid"
	"github.com/katalvlaran/routes18xx/route"
	"github.com/katalvlaran/routes18xx/search"
)

func train(collect, visit int) game.Train {
	return game.NewTrain(game.TrainDefinition{Collect: collect, Visit: visit})
}

// lineBoard lays the given spaces along row A of a pointed grid. Every space
// joins its west (side 1) and east (side 4) neighbors except at the ends.
func lineBoard(t *testing.T, rules game.Rules, def board.BaseDefinition) *board.Board {
	t.Helper()
	g, err := game.New(game.Definition{Name: "test", Phases: []string{"2"}, Rules: rules})
	require.NoError(t, err)
	require.NoError(t, g.SetPhase("2"))
	grid, err := hexgrid.New(hexgrid.Definition{
		Orientation: hexgrid.Pointed,
		Boundaries: map[string][]hexgrid.Span{
			"A": {{From: "1", To: "11"}},
			"B": {{From: "2", To: "10"}},
		},
	})
	require.NoError(t, err)
	b, err := board.New(g, grid, def)
	require.NoError(t, err)

	return b
}

var (
	toEast  = []board.EdgeGroup{{4}}
	toWest  = []board.EdgeGroup{{1}}
	through = []board.EdgeGroup{{1, 4}}
)

func city(edges []board.EdgeGroup, value int) board.SpaceDefinition {
	return board.SpaceDefinition{Edges: edges, Value: board.Value{Fixed: value}, Capacity: board.Capacity{Slots: 1}}
}

func keys(routes []*route.Route) []string {
	out := make([]string, len(routes))
	for i, r := range routes {
		out[i] = r.Key()
	}

	return out
}

func toyBoard(t *testing.T) *board.Board {
	return lineBoard(t, game.Rules{}, board.BaseDefinition{
		Cities: map[string]board.SpaceDefinition{"A1": city(toEast, 10), "A5": city(toWest, 20)},
		Tracks: map[string]board.SpaceDefinition{"A3": {Edges: through}},
	})
}

func TestFindRoutes_Toy(t *testing.T) {
	b := toyBoard(t)
	rr := game.NewRailroad("B&O", []game.Train{train(2, 2)})
	require.NoError(t, b.PlaceStation("A1", rr))

	routes, err := search.FindRoutes(b, rr, rr.Trains[0])
	require.NoError(t, err)
	assert.Equal(t, []string{"A1,A3,A5"}, keys(routes))
}

func TestWalk_Symmetric(t *testing.T) {
	b := lineBoard(t, game.Rules{}, board.BaseDefinition{
		Cities: map[string]board.SpaceDefinition{"A1": city(toEast, 10), "A5": city(through, 20), "A9": city(toWest, 30)},
		Towns:  map[string]board.SpaceDefinition{"A7": {Edges: through, Value: board.Value{Fixed: 10}}},
		Tracks: map[string]board.SpaceDefinition{"A3": {Edges: through}},
	})
	rr := game.NewRailroad("B&O", nil)
	a1, _ := b.Cell("A1")
	a9, _ := b.Cell("A9")

	for visit := 2; visit <= 4; visit++ {
		fromWest, err := search.Walk(b, rr, a1, visit)
		require.NoError(t, err)
		fromEast, err := search.Walk(b, rr, a9, visit)
		require.NoError(t, err)
		if visit == 4 {
			assert.ElementsMatch(t, keys(fromWest), keys(fromEast), "visit %d", visit)
		}
		for _, r := range fromWest {
			assert.LessOrEqual(t, len(r.Stops()), visit)
		}
	}
}

func TestFindRoutes_FullCityBlocks(t *testing.T) {
	b := lineBoard(t, game.Rules{}, board.BaseDefinition{
		Cities: map[string]board.SpaceDefinition{"A1": city(toEast, 10), "A5": city(through, 20), "A9": city(toWest, 30)},
		Tracks: map[string]board.SpaceDefinition{"A3": {Edges: through}, "A7": {Edges: through}},
	})
	boa := game.NewRailroad("B&O", []game.Train{train(3, 3)})
	prr := game.NewRailroad("PRR", []game.Train{train(3, 3)})
	require.NoError(t, b.PlaceStation("A1", boa))
	require.NoError(t, b.PlaceStation("A5", prr))

	routes, err := search.FindRoutes(b, boa, boa.Trains[0])
	require.NoError(t, err)
	assert.Equal(t, []string{"A1,A3,A5"}, keys(routes))

	routes, err = search.FindRoutes(b, prr, prr.Trains[0])
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"A1,A3,A5", "A5,A7,A9", "A1,A3,A5,A7,A9"}, keys(routes))
}

func TestFindRoutes_TownsExemptFromVisits(t *testing.T) {
	def := board.BaseDefinition{
		Cities: map[string]board.SpaceDefinition{"A1": city(toEast, 10), "A5": city(toWest, 20)},
		Towns:  map[string]board.SpaceDefinition{"A3": {Edges: through, Value: board.Value{Fixed: 5}}},
	}
	cases := []struct {
		rules game.Rules
		want  []string
	}{
		{game.Rules{}, []string{"A1,A3"}},
		{game.Rules{TownsOmitFromLimit: true}, []string{"A1,A3,A5", "A1,A3"}},
	}
	for _, tc := range cases {
		b := lineBoard(t, tc.rules, def)
		rr := game.NewRailroad("B&O", []game.Train{train(2, 2)})
		require.NoError(t, b.PlaceStation("A1", rr))

		routes, err := search.FindRoutes(b, rr, rr.Trains[0])
		require.NoError(t, err)
		assert.ElementsMatch(t, tc.want, keys(routes), "towns exempt: %v", tc.rules.TownsOmitFromLimit)
	}
}

func TestFindRoutes_PassThroughStation(t *testing.T) {
	b := lineBoard(t, game.Rules{}, board.BaseDefinition{
		Cities: map[string]board.SpaceDefinition{"A1": city(toEast, 10), "A5": city(through, 20), "A9": city(toWest, 30)},
		Tracks: map[string]board.SpaceDefinition{"A3": {Edges: through}, "A7": {Edges: through}},
	})
	rr := game.NewRailroad("B&O", []game.Train{train(3, 3)})
	require.NoError(t, b.PlaceStation("A5", rr))

	routes, err := search.FindRoutes(b, rr, rr.Trains[0])
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"A1,A3,A5", "A5,A7,A9", "A1,A3,A5,A7,A9"}, keys(routes))
}

func TestFindRoutes_OtherRailroadIsolated(t *testing.T) {
	b := lineBoard(t, game.Rules{}, board.BaseDefinition{
		Cities: map[string]board.SpaceDefinition{
			"A1": city(toEast, 10), "A5": city(toWest, 20),
			"B6":  {Edges: []board.EdgeGroup{{4}}, Value: board.Value{Fixed: 30}, Capacity: board.Capacity{Slots: 1}},
			"B10": {Edges: []board.EdgeGroup{{1}}, Value: board.Value{Fixed: 40}, Capacity: board.Capacity{Slots: 1}},
		},
		Tracks: map[string]board.SpaceDefinition{"A3": {Edges: through}, "B8": {Edges: through}},
	})
	boa := game.NewRailroad("B&O", []game.Train{train(2, 2)})
	prr := game.NewRailroad("PRR", []game.Train{train(2, 2)})
	require.NoError(t, b.PlaceStation("A1", boa))
	require.NoError(t, b.PlaceStation("B6", prr))

	routes, err := search.FindRoutes(b, boa, boa.Trains[0])
	require.NoError(t, err)
	assert.Equal(t, []string{"A1,A3,A5"}, keys(routes))

	routes, err = search.FindRoutes(b, prr, prr.Trains[0])
	require.NoError(t, err)
	assert.Equal(t, []string{"B10,B6,B8"}, keys(routes))
}

type rejectAll struct{ err error }

func (f rejectAll) FilterInvalidRoutes(_ []*route.Route, _ *board.Board, _ *game.Railroad) ([]*route.Route, error) {
	return nil, f.err
}

func TestFindRoutes_FilterAndErrors(t *testing.T) {
	b := toyBoard(t)
	rr := game.NewRailroad("B&O", []game.Train{train(2, 2), train(2, 2), train(3, 3)})
	require.NoError(t, b.PlaceStation("A1", rr))

	routes, err := search.FindRoutes(b, rr, rr.Trains[0], search.WithFilter(rejectAll{}))
	require.NoError(t, err)
	assert.Empty(t, routes)

	boom := errors.New("boom")
	_, err = search.FindRoutes(b, rr, rr.Trains[0], search.WithFilter(rejectAll{err: boom}))
	require.ErrorIs(t, err, boom)

	_, err = search.FindRoutes(b, game.NewRemovedRailroad("NYC"), rr.Trains[0])
	require.ErrorIs(t, err, game.ErrRemovedRailroad)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = search.FindRoutes(b, rr, rr.Trains[0], search.WithContext(ctx))
	require.ErrorIs(t, err, context.Canceled)

	all, err := search.FindAll(b, rr)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, keys(all[0]), keys(all[1]))
	assert.Equal(t, []string{"A1,A3,A5"}, keys(all[2]))
}
