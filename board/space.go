package board

import (
	"fmt"
	"sort"
	"strings"

	"github.com/katalvlaran/routes18xx/game"
	"github.com/katalvlaran/routes18xx/hexgrid"
)

// Station is a railroad's permanent token in a city. Branch is set only on
// split cities and holds the cells that named the branch when it was placed.
type Station struct {
	Cell     hexgrid.Cell
	Railroad string
	Branch   []hexgrid.Cell
}

// String renders "C15", "C15:B14" or "C15:[B14 D14]".
func (s *Station) String() string {
	switch len(s.Branch) {
	case 0:
		return s.Cell.String()
	case 1:
		return s.Cell.String() + ":" + s.Branch[0].String()
	default:
		parts := make([]string, len(s.Branch))
		for i, c := range s.Branch {
			parts[i] = c.String()
		}

		return s.Cell.String() + ":[" + strings.Join(parts, " ") + "]"
	}
}

// Branch is one independently-capped section of a split city.
// Pairs are the directed entry/exit cells it covers; Stubs are single
// cells that identify the branch on their own.
type Branch struct {
	Pairs    [][2]hexgrid.Cell
	Stubs    []hexgrid.Cell
	Capacity int

	stations []*Station
}

// Cells returns every neighbor cell the branch touches, sorted.
func (b *Branch) Cells() []hexgrid.Cell {
	seen := make(map[hexgrid.Cell]bool)
	for _, p := range b.Pairs {
		seen[p[0]] = true
		seen[p[1]] = true
	}
	for _, s := range b.Stubs {
		seen[s] = true
	}
	out := make([]hexgrid.Cell, 0, len(seen))
	for c := range seen {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })

	return out
}

// Has reports whether the branch covers travel from one cell to another.
func (b *Branch) Has(from, to hexgrid.Cell) bool {
	for _, p := range b.Pairs {
		if p[0] == from && p[1] == to {
			return true
		}
	}

	return false
}

// Matches reports whether key names this branch: a single unique cell or an
// entry/exit pair.
func (b *Branch) Matches(key []hexgrid.Cell) bool {
	switch len(key) {
	case 1:
		return b.hasStub(key[0])
	case 2:
		return b.Has(key[0], key[1])
	default:
		return false
	}
}

// Stations returns the stations placed on this branch.
func (b *Branch) Stations() []*Station { return append([]*Station(nil), b.stations...) }

func (b *Branch) hasStub(c hexgrid.Cell) bool {
	for _, s := range b.Stubs {
		if s == c {
			return true
		}
	}

	return false
}

func (b *Branch) holds(rr string) bool {
	for _, st := range b.stations {
		if st.Railroad == rr {
			return true
		}
	}

	return false
}

// BonusToken is a private company's token on a stop. It pays Bonus to the
// owning railroad until the company closes.
type BonusToken struct {
	Company  string
	Railroad string
	Bonus    int
}

// Value is the token's contribution to a route run by rr.
func (t *BonusToken) Value(g *game.Game, rr *game.Railroad) int {
	if rr == nil || t.Railroad != rr.Name || g.PrivateIsClosed(t.Company) {
		return 0
	}

	return t.Bonus
}

// Space is whatever occupies one cell: a pre-printed space or a placed tile.
type Space struct {
	Name     string
	Nickname string
	Cell     hexgrid.Cell
	Kind     Kind
	Terminal Terminal
	// TileID is empty for pre-printed spaces.
	TileID      string
	Orientation int
	// UpgradeAttrs lists the accepted attribute sets of an upgrade tile.
	UpgradeAttrs [][]string
	// Properties are permanent per-cell numbers carried across upgrades.
	Properties map[string]int

	tile         *Tile
	upgradeLevel int
	upgradable   bool
	value        Value
	paths        *pathTable
	slots        int
	branches     []*Branch
	stations     []*Station
	tokens       []*BonusToken
	home         []string
	reserved     []string
}

// UpgradeLevel returns the space's level and whether it may be upgraded at all.
func (s *Space) UpgradeLevel() (int, bool) { return s.upgradeLevel, s.upgradable }

// IsStop reports whether the space is a town, city or terminus.
func (s *Space) IsStop() bool { return s.Kind != Track }

// IsCity reports whether the space can hold stations (city or terminus).
func (s *Space) IsCity() bool { return s.Kind == City || s.Kind == Terminus }

// IsSplit reports whether the space is a split city.
func (s *Space) IsSplit() bool { return len(s.branches) > 0 }

// Placed reports whether the space is a tile laid over the pre-printed map.
func (s *Space) Placed() bool { return s.tile != nil }

// Tile returns the catalog tile laid here, or nil for a pre-printed space.
func (s *Space) Tile() *Tile { return s.tile }

// Paths returns the exits reachable when entering from enter, or every path
// endpoint when enter is nil. The result is a fresh slice in tile order.
func (s *Space) Paths(enter *hexgrid.Cell) []hexgrid.Cell {
	if enter == nil {
		return append([]hexgrid.Cell(nil), s.paths.entries...)
	}

	return append([]hexgrid.Cell(nil), s.paths.exits[*enter]...)
}

// PathsFor is Paths on behalf of a railroad; removed railroads cannot run.
func (s *Space) PathsFor(enter *hexgrid.Cell, rr *game.Railroad) ([]hexgrid.Cell, error) {
	if err := rr.CheckActive(); err != nil {
		return nil, err
	}

	return s.Paths(enter), nil
}

// Enterable reports whether a route arriving from c may enter the space.
func (s *Space) Enterable(c hexgrid.Cell) bool {
	_, ok := s.paths.exits[c]

	return ok
}

// Connects reports whether the tile links from to to.
func (s *Space) Connects(from, to hexgrid.Cell) bool { return s.paths.has(from, to) }

// Passable reports whether a route run by rr may continue through the space
// from enter to exit. A nil enter means the route starts here, which is
// always legal.
func (s *Space) Passable(enter *hexgrid.Cell, exit hexgrid.Cell, rr *game.Railroad) bool {
	if enter == nil {
		return true
	}
	switch s.Kind {
	case Track, Town:
		return true
	case Terminus:
		return false
	}
	if !s.IsSplit() {
		return s.slots-len(s.stations) > 0 || s.HasStation(rr.Name)
	}
	for _, b := range s.branches {
		if !b.Has(*enter, exit) {
			continue
		}
		if len(b.stations) < b.Capacity || b.holds(rr.Name) {
			return true
		}
	}

	return false
}

// Value returns the revenue the stop pays rr's train. Per-train values win
// over per-phase values, which use the latest phase reached. Bonus tokens
// owned by rr are added on top.
func (s *Space) Value(g *game.Game, rr *game.Railroad, train game.Train) (int, error) {
	if s.Kind == Track {
		return 0, nil
	}
	base, err := s.baseValue(g, train)
	if err != nil {
		return 0, err
	}
	for _, t := range s.tokens {
		base += t.Value(g, rr)
	}

	return base, nil
}

func (s *Space) baseValue(g *game.Game, train game.Train) (int, error) {
	if v, ok := s.value.ByTrain[train.Name]; ok {
		return v, nil
	}
	if len(s.value.ByPhase) == 0 {
		return s.value.Fixed, nil
	}
	for i := len(g.Phases) - 1; i >= 0; i-- {
		p := g.Phases[i]
		if v, ok := s.value.ByPhase[p]; ok && g.Reached(p) {
			return v, nil
		}
	}

	return 0, fmt.Errorf("%w: %s (%s) in phase %q", ErrNoValue, s.Name, s.Cell, g.Phase())
}

// E2WBonus returns the extra value an east/west terminus pays when a route
// runs across the map. Other spaces return 0.
func (s *Space) E2WBonus() int {
	if s.Terminal == NotTerminal {
		return 0
	}

	return s.value.E2WBonus
}

// Capacity returns the total number of station slots.
func (s *Space) Capacity() int {
	if !s.IsSplit() {
		return s.slots
	}
	n := 0
	for _, b := range s.branches {
		n += b.Capacity
	}

	return n
}

// Branches returns the split-city branches, or nil.
func (s *Space) Branches() []*Branch { return append([]*Branch(nil), s.branches...) }

// Stations returns the stations in placement order.
func (s *Space) Stations() []*Station { return append([]*Station(nil), s.stations...) }

// Station returns rr's station here, or nil.
func (s *Space) Station(rr string) *Station {
	for _, st := range s.stations {
		if st.Railroad == rr {
			return st
		}
	}

	return nil
}

// HasStation reports whether rr holds a station here.
func (s *Space) HasStation(rr string) bool { return s.Station(rr) != nil }

// StationBranch returns the split-city branch that holds st.
func (s *Space) StationBranch(st *Station) (*Branch, error) {
	for _, b := range s.branches {
		for _, held := range b.stations {
			if held == st {
				return b, nil
			}
		}
	}

	return nil, fmt.Errorf("%w: station %s not found on a branch", ErrNoSuchBranch, st)
}

// Tokens returns the bonus tokens placed here.
func (s *Space) Tokens() []*BonusToken { return append([]*BonusToken(nil), s.tokens...) }

// Home returns the railroads whose home station is here.
func (s *Space) Home() []string { return append([]string(nil), s.home...) }

// Reserved returns the railroads holding a reservation here.
func (s *Space) Reserved() []string { return append([]string(nil), s.reserved...) }

// String returns "Name (cell)".
func (s *Space) String() string { return fmt.Sprintf("%s (%s)", s.Name, s.Cell) }

func (s *Space) addStation(g *game.Game, rr *game.Railroad, branch []hexgrid.Cell) (*Station, error) {
	if !s.IsCity() {
		return nil, fmt.Errorf("%w: %s", ErrNotACity, s)
	}
	if s.HasStation(rr.Name) {
		return nil, fmt.Errorf("%w: %s in %s", ErrDuplicateStation, rr.Name, s)
	}
	if !s.IsSplit() {
		if branch != nil {
			return nil, fmt.Errorf("%w: %s is not a split city", ErrNoSuchBranch, s)
		}
		if len(s.stations) >= s.slots {
			return nil, fmt.Errorf("%w: %s", ErrCapacity, s)
		}
		if err := s.preservesReservations(g, rr); err != nil {
			return nil, err
		}
		st := &Station{Cell: s.Cell, Railroad: rr.Name}
		s.stations = append(s.stations, st)

		return st, nil
	}

	if branch == nil {
		return nil, fmt.Errorf("%w: %s", ErrSplitCity, s)
	}
	var target *Branch
	for _, b := range s.branches {
		if b.Matches(branch) {
			target = b

			break
		}
	}
	if target == nil {
		return nil, fmt.Errorf("%w: %v on %s", ErrNoSuchBranch, branch, s)
	}
	if len(target.stations) >= target.Capacity {
		return nil, fmt.Errorf("%w: branch %v of %s", ErrCapacity, branch, s)
	}
	st := &Station{Cell: s.Cell, Railroad: rr.Name, Branch: append([]hexgrid.Cell(nil), branch...)}
	s.stations = append(s.stations, st)
	target.stations = append(target.stations, st)

	return st, nil
}

// preservesReservations keeps enough free slots for home railroads and, while
// reservations hold, reserved railroads that have not placed yet.
func (s *Space) preservesReservations(g *game.Game, rr *game.Railroad) error {
	check := func(reservations []string) []string {
		var unclaimed []string
		for _, name := range reservations {
			if name == rr.Name {
				return nil
			}
			if !s.HasStation(name) {
				unclaimed = append(unclaimed, name)
			}
		}
		if len(s.stations)+len(unclaimed)+1 <= s.slots {
			return nil
		}

		return unclaimed
	}

	reservations := append([]string(nil), s.home...)
	if g.ReservationsActive() {
		reservations = append(reservations, s.reserved...)
	}
	blocked := check(reservations)
	if len(blocked) == 0 {
		return nil
	}
	if home := check(s.home); len(home) > 0 {
		return fmt.Errorf("%w: %s must leave space for home railroad(s) %s",
			ErrReservedSpace, s, strings.Join(home, ", "))
	}

	return fmt.Errorf("%w: %s must leave space for reservation(s) %s",
		ErrReservedSpace, s, strings.Join(blocked, ", "))
}
