package rules

import (
	"github.com/katalvlaran/routes18xx/board"
	"github.com/katalvlaran/routes18xx/game"
	"github.com/katalvlaran/routes18xx/route"
)

// 18AL private company names.
const (
	SouthAndNorthAlabama = "South and North Alabama RR"
	MemphisAndCharleston = "Memphis and Charleston RR"
)

// mcrrBonus is one Memphis and Charleston RR bonus: a run touching both
// cells earns the amount once per set.
type mcrrBonus struct {
	a, b   string
	amount int
}

var mcrrBonuses = []mcrrBonus{
	{a: "G8", b: "G4", amount: 20}, // Atlanta - Birmingham
	{a: "A4", b: "Q2", amount: 40}, // Nashville - Mobile
}

func (m mcrrBonus) applies(r *route.Route) bool {
	var hasA, hasB bool
	for _, s := range r.Spaces() {
		switch s.Cell.String() {
		case m.a:
			hasA = true
		case m.b:
			hasB = true
		}
	}

	return hasA && hasB
}

// G18AL implements 18AL.
type G18AL struct{}

// FilterInvalidRoutes keeps every route.
func (G18AL) FilterInvalidRoutes(routes []*route.Route, b *board.Board, rr *game.Railroad) ([]*route.Route, error) {
	return Default{}.FilterInvalidRoutes(routes, b, rr)
}

// RouteSetValues pays each Memphis and Charleston RR bonus to the first run
// that earns it.
func (G18AL) RouteSetValues(runs []*route.Run, rr *game.Railroad) ([]int, error) {
	out, _ := Default{}.RouteSetValues(runs, rr)
	if !rr.HasPrivateCompany(MemphisAndCharleston) {
		return out, nil
	}
	for _, bonus := range mcrrBonuses {
		for i, r := range runs {
			if bonus.applies(r.Route) {
				out[i] += bonus.amount
				break
			}
		}
	}

	return out, nil
}

// RouteMaxValue adds every Memphis and Charleston RR bonus the run could earn.
func (G18AL) RouteMaxValue(run *route.Run, rr *game.Railroad) int {
	v := run.Value
	if !rr.HasPrivateCompany(MemphisAndCharleston) {
		return v
	}
	for _, bonus := range mcrrBonuses {
		if bonus.applies(run.Route) {
			v += bonus.amount
		}
	}

	return v
}

// PrivateCompanies returns the 18AL private companies.
func (G18AL) PrivateCompanies() map[string]PrivateCompany {
	return map[string]PrivateCompany{
		SouthAndNorthAlabama: tokenCompany("sna_value", "E6", "G4", "G6", "H3", "H5"),
		MemphisAndCharleston: ownership,
	}
}
