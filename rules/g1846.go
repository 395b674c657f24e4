package rules

import (
	"github.com/katalvlaran/routes18xx/board"
	"github.com/katalvlaran/routes18xx/game"
	"github.com/katalvlaran/routes18xx/route"
)

// 1846 private company names.
const (
	Steamboat        = "Steamboat Company"
	MeatPacking      = "Meat Packing Company"
	MailContract     = "Mail Contract"
	Big4             = "Big 4"
	MichiganSouthern = "Michigan Southern"
)

// mailBonus is paid per stop on the Mail Contract run.
const mailBonus = 10

// G1846 implements 1846.
type G1846 struct{}

// FilterInvalidRoutes drops routes that start and end on eastern termini.
func (G1846) FilterInvalidRoutes(routes []*route.Route, _ *board.Board, _ *game.Railroad) ([]*route.Route, error) {
	out := routes[:0:0]
	for _, r := range routes {
		stops := r.Stops()
		if len(stops) > 0 && stops[0].Terminal == board.East && stops[len(stops)-1].Terminal == board.East {
			continue
		}
		out = append(out, r)
	}

	return out, nil
}

// RouteSetValues pays the Mail Contract on the run whose route has the most
// stops, the earliest such run on ties.
func (g G1846) RouteSetValues(runs []*route.Run, rr *game.Railroad) ([]int, error) {
	out, _ := Default{}.RouteSetValues(runs, rr)
	if !rr.HasPrivateCompany(MailContract) || len(runs) == 0 {
		return out, nil
	}
	longest := 0
	for i, r := range runs {
		if len(r.Route.Stops()) > len(runs[longest].Route.Stops()) {
			longest = i
		}
	}
	out[longest] = g.RouteMaxValue(runs[longest], rr)

	return out, nil
}

// RouteMaxValue is the run's value plus the Mail Contract, if owned. The
// contract pays for every stop on the route, collected or not.
func (G1846) RouteMaxValue(run *route.Run, rr *game.Railroad) int {
	v := run.Value
	if rr.HasPrivateCompany(MailContract) {
		v += mailBonus * len(run.Route.Stops())
	}

	return v
}

// PrivateCompanies returns the 1846 private companies.
func (G1846) PrivateCompanies() map[string]PrivateCompany {
	return map[string]PrivateCompany{
		Steamboat:        tokenCompany("port_value", "B8", "C5", "D14", "G19", "I1"),
		MeatPacking:      tokenCompany("meat_value", "D6", "I1"),
		MailContract:     ownership,
		Big4:             independentRailroad("G9", "3"),
		MichiganSouthern: independentRailroad("C15", "3"),
	}
}
