package game_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/routes18xx/game"
)

func newGame(t *testing.T) *game.Game {
	t.Helper()
	g, err := game.New(game.Definition{
		Name:          "toy",
		Phases:        []string{"2", "3", "4", "6"},
		UpgradePhases: map[int]string{1: "2", 2: "3", 3: "6"},
		PrivatesClose: map[string]string{"Steamboat Company": "4"},
		Rules:         game.Rules{StationsReservedUntil: "3"},
	})
	require.NoError(t, err)

	return g
}

func TestNew_Validation(t *testing.T) {
	_, err := game.New(game.Definition{Name: "x"})
	require.ErrorIs(t, err, game.ErrInvalidDefinition)

	_, err = game.New(game.Definition{Name: "x", Phases: []string{"2", "2"}})
	require.ErrorIs(t, err, game.ErrInvalidDefinition)

	_, err = game.New(game.Definition{Name: "x", Phases: []string{"2"}, UpgradePhases: map[int]string{1: "5"}})
	require.ErrorIs(t, err, game.ErrUnknownPhase)

	_, err = game.New(game.Definition{Name: "x", Phases: []string{"2"}, Rules: game.Rules{StationsReservedUntil: "9"}})
	require.ErrorIs(t, err, game.ErrUnknownPhase)
}

func TestGame_CapturePhase(t *testing.T) {
	g := newGame(t)
	assert.Equal(t, "2", g.CapturePhase(nil))

	rrs := []*game.Railroad{
		game.NewRailroad("PRR", []game.Train{{Name: "2", Collect: 2, Visit: 2, Phase: "2"}}),
		game.NewRailroad("B&O", []game.Train{{Name: "4", Collect: 4, Visit: 4, Phase: "4"}}),
		game.NewRemovedRailroad("NYC"),
	}
	assert.Equal(t, "4", g.CapturePhase(rrs))
	assert.Equal(t, "4", g.Phase())
}

func TestGame_ComparePhase(t *testing.T) {
	g := newGame(t)
	_, err := g.ComparePhase("3")
	require.ErrorIs(t, err, game.ErrPhaseNotSet)

	require.NoError(t, g.SetPhase("3"))
	for p, want := range map[string]int{"2": 1, "3": 0, "4": -1} {
		got, err := g.ComparePhase(p)
		require.NoError(t, err)
		assert.Equal(t, want, got, p)
	}
	_, err = g.ComparePhase("8")
	require.ErrorIs(t, err, game.ErrUnknownPhase)
	require.ErrorIs(t, g.SetPhase("8"), game.ErrUnknownPhase)
}

func TestGame_PrivatesAndReservations(t *testing.T) {
	g := newGame(t)
	require.NoError(t, g.SetPhase("2"))
	assert.False(t, g.PrivateIsClosed("Steamboat Company"))
	assert.False(t, g.PrivateIsClosed("Mail Contract"))
	assert.True(t, g.ReservationsActive())

	require.NoError(t, g.SetPhase("4"))
	assert.True(t, g.PrivateIsClosed("Steamboat Company"))
	assert.False(t, g.ReservationsActive())
}

func TestRailroad_Removed(t *testing.T) {
	rr := game.NewRemovedRailroad("Erie")
	assert.True(t, rr.Removed())
	require.ErrorIs(t, rr.CheckActive(), game.ErrRemovedRailroad)
	require.ErrorIs(t, rr.AddPrivateCompany("Mail Contract"), game.ErrRemovedRailroad)
	assert.False(t, rr.HasPrivateCompany("Mail Contract"))

	active := game.NewRailroad("PRR", nil)
	require.NoError(t, active.AddPrivateCompany("Mail Contract"))
	require.NoError(t, active.AddPrivateCompany("Big 4"))
	assert.True(t, active.HasPrivateCompany("Mail Contract"))
	assert.Equal(t, []string{"Big 4", "Mail Contract"}, active.PrivateCompanies())
}
