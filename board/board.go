package board

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/routes18xx/game"
	"github.com/katalvlaran/routes18xx/hexgrid"
)

// Board maps every cell to the space currently occupying it: a placed tile
// if one was laid, otherwise the pre-printed space, otherwise nothing.
type Board struct {
	game   *game.Game
	grid   *hexgrid.Grid
	base   map[hexgrid.Cell]*Space
	placed map[hexgrid.Cell]*Space
}

// New builds a board from the grid and the game's pre-printed spaces.
func New(g *game.Game, grid *hexgrid.Grid, def BaseDefinition) (*Board, error) {
	b := &Board{
		game:   g,
		grid:   grid,
		base:   make(map[hexgrid.Cell]*Space),
		placed: make(map[hexgrid.Cell]*Space),
	}
	groups := []struct {
		kind Kind
		defs map[string]SpaceDefinition
	}{
		{Track, def.Tracks},
		{Town, def.Towns},
		{City, def.Cities},
		{Terminus, def.Termini},
	}
	for _, grp := range groups {
		coords := make([]string, 0, len(grp.defs))
		for coord := range grp.defs {
			coords = append(coords, coord)
		}
		sort.Strings(coords)
		for _, coord := range coords {
			cell, err := grid.Cell(coord)
			if err != nil {
				return nil, fmt.Errorf("%s %s: %w", grp.kind, coord, err)
			}
			if _, dup := b.base[cell]; dup {
				return nil, fmt.Errorf("%w: %s defined twice", ErrInvalidBoard, coord)
			}
			s, err := b.newBaseSpace(cell, grp.kind, grp.defs[coord])
			if err != nil {
				return nil, fmt.Errorf("%s %s: %w", grp.kind, coord, err)
			}
			b.base[cell] = s
		}
	}

	return b, nil
}

func (b *Board) newBaseSpace(cell hexgrid.Cell, kind Kind, d SpaceDefinition) (*Space, error) {
	resolve := func(side int) (hexgrid.Cell, bool) { return b.grid.Neighbor(cell, side) }

	edges := d.Edges
	if kind == Terminus {
		edges = nil
		for _, g := range d.Edges {
			for _, side := range g {
				edges = append(edges, EdgeGroup{side})
			}
		}
	}
	paths, err := buildPaths(edges, resolve, false)
	if err != nil {
		return nil, err
	}
	branches, err := buildBranches(d.Capacity.Branches, resolve, false)
	if err != nil {
		return nil, err
	}

	s := &Space{
		Name:       d.Name,
		Nickname:   d.Nickname,
		Cell:       cell,
		Kind:       kind,
		Properties: copyProperties(d.Properties),
		value:      d.Value,
		paths:      paths,
		slots:      d.Capacity.Slots,
		branches:   branches,
		home:       append([]string(nil), d.Home...),
		reserved:   append([]string(nil), d.Reserved...),
	}
	if s.Name == "" {
		s.Name = cell.String()
	}
	if s.Nickname == "" {
		s.Nickname = s.Name
	}
	switch {
	case kind == Terminus && d.East:
		s.Terminal = East
	case kind == Terminus && d.West:
		s.Terminal = West
	}
	if (kind == Town || kind == City) && !d.Gray {
		s.upgradable = true
		if d.UpgradeLevel != nil {
			s.upgradeLevel = *d.UpgradeLevel
		}
	}
	for _, a := range d.UpgradeAttrs {
		s.UpgradeAttrs = append(s.UpgradeAttrs, append([]string(nil), a...))
	}
	if len(s.UpgradeAttrs) == 0 {
		s.UpgradeAttrs = [][]string{{}}
	}

	return s, nil
}

func copyProperties(p map[string]int) map[string]int {
	out := make(map[string]int, len(p))
	for k, v := range p {
		out[k] = v
	}

	return out
}

// Game returns the game the board belongs to.
func (b *Board) Game() *game.Game { return b.game }

// Grid returns the board's hex grid.
func (b *Board) Grid() *hexgrid.Grid { return b.grid }

// Cell resolves a coordinate such as "C15".
func (b *Board) Cell(coord string) (hexgrid.Cell, error) { return b.grid.Cell(coord) }

// Space returns the space at c, or nil for an empty cell.
func (b *Board) Space(c hexgrid.Cell) *Space {
	if s, ok := b.placed[c]; ok {
		return s
	}

	return b.base[c]
}

// SpaceAt is Space by coordinate.
func (b *Board) SpaceAt(coord string) (*Space, error) {
	c, err := b.grid.Cell(coord)
	if err != nil {
		return nil, err
	}

	return b.Space(c), nil
}

// Spaces returns every occupied cell's space in cell order.
func (b *Board) Spaces() []*Space {
	cells := make([]hexgrid.Cell, 0, len(b.base)+len(b.placed))
	for c := range b.base {
		cells = append(cells, c)
	}
	for c := range b.placed {
		if _, ok := b.base[c]; !ok {
			cells = append(cells, c)
		}
	}
	sort.Slice(cells, func(i, j int) bool { return cells[i].Less(cells[j]) })
	out := make([]*Space, len(cells))
	for i, c := range cells {
		out[i] = b.Space(c)
	}

	return out
}

// PlacedTiles returns the laid tiles in cell order.
func (b *Board) PlacedTiles() []*Space {
	out := make([]*Space, 0, len(b.placed))
	for _, s := range b.placed {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Cell.Less(out[j].Cell) })

	return out
}

// Stations returns rr's stations in cell order. An empty rr lists every
// station on the board.
func (b *Board) Stations(rr string) []*Station {
	var out []*Station
	for _, s := range b.Spaces() {
		for _, st := range s.stations {
			if rr == "" || st.Railroad == rr {
				out = append(out, st)
			}
		}
	}

	return out
}

// PlaceTile lays t at coord rotated by orientation steps (0-5). The tile
// must match the space's stop kind, must not run into the blank side of a
// gray space or terminus and, on an upgrade, must keep every old path.
func (b *Board) PlaceTile(coord string, t *Tile, orientation int) error {
	cell, err := b.grid.Cell(coord)
	if err != nil {
		return err
	}
	if orientation < 0 || orientation >= hexgrid.Sides {
		return fmt.Errorf("%w: orientation %d out of range 0-5", ErrIllegalPlacement, orientation)
	}

	old := b.Space(cell)
	if err := checkSpaceKind(old, t); err != nil {
		return fmt.Errorf("%s at %s: %w", t.ID, coord, err)
	}

	resolve := func(side int) (hexgrid.Cell, bool) { return b.grid.Neighbor(cell, rotate(side, orientation)) }
	paths, err := buildPaths(t.Edges, resolve, true)
	if err != nil {
		return fmt.Errorf("%w: tile %s at %s orientation %d: %v", ErrIllegalPlacement, t.ID, coord, orientation, err)
	}
	for _, n := range paths.entries {
		ns := b.Space(n)
		if ns != nil && !ns.upgradable && !ns.Enterable(cell) {
			return fmt.Errorf("%w: tile %s at %s orientation %d runs into the side of %s",
				ErrIllegalPlacement, t.ID, coord, orientation, ns)
		}
	}
	if old != nil {
		if err := checkUpgrade(old, t, paths); err != nil {
			return fmt.Errorf("%s at %s: %w", t.ID, coord, err)
		}
	}
	branches, err := buildBranches(t.Capacity.Branches, resolve, true)
	if err != nil {
		return fmt.Errorf("%w: tile %s at %s: %v", ErrIllegalPlacement, t.ID, coord, err)
	}

	s := &Space{
		Name:         cell.String(),
		Cell:         cell,
		Kind:         t.Kind,
		TileID:       t.ID,
		Orientation:  orientation,
		UpgradeAttrs: [][]string{append([]string(nil), t.UpgradeAttrs...)},
		Properties:   map[string]int{},
		upgradeLevel: t.UpgradeLevel,
		upgradable:   true,
		value:        Value{Fixed: t.Value},
		paths:        paths,
		slots:        t.Capacity.Slots,
		branches:     branches,
		tile:         t,
	}
	s.Nickname = s.Name
	if old != nil {
		if err := s.carryOver(old); err != nil {
			return fmt.Errorf("%s at %s: %w", t.ID, coord, err)
		}
	}
	b.placed[cell] = s

	return nil
}

func checkSpaceKind(old *Space, t *Tile) error {
	if old == nil {
		if t.IsStop() {
			return fmt.Errorf("%w: %s tile on an empty space", ErrIllegalPlacement, t.Kind)
		}

		return nil
	}
	switch {
	case old.Kind == Terminus:
		return fmt.Errorf("%w: cannot upgrade a terminus", ErrIllegalPlacement)
	case old.Kind != t.Kind:
		return fmt.Errorf("%w: %s tile on a %s space", ErrIllegalPlacement, t.Kind, old.Kind)
	}
	for _, attrs := range old.UpgradeAttrs {
		if t.UpgradeAttrs.equal(attrs) {
			return nil
		}
	}

	return fmt.Errorf("%w: upgrade attributes %v do not match %v", ErrIllegalPlacement, []string(t.UpgradeAttrs), old.UpgradeAttrs)
}

func checkUpgrade(old *Space, t *Tile, paths *pathTable) error {
	if !old.upgradable {
		return fmt.Errorf("%w: %s cannot be upgraded", ErrIllegalPlacement, old)
	}
	if old.upgradeLevel >= t.UpgradeLevel {
		return fmt.Errorf("%w: level %d to %d is not an upgrade", ErrIllegalPlacement, old.upgradeLevel, t.UpgradeLevel)
	}
	for _, from := range old.paths.entries {
		for _, to := range old.paths.exits[from] {
			if !paths.has(from, to) {
				return fmt.Errorf("%w: path %s-%s is not preserved", ErrIllegalPlacement, from, to)
			}
		}
	}

	return nil
}

// carryOver moves everything that belongs to the cell rather than the tile.
func (s *Space) carryOver(old *Space) error {
	s.Name, s.Nickname = old.Name, old.Nickname
	s.Properties = copyProperties(old.Properties)
	s.tokens = append([]*BonusToken(nil), old.tokens...)
	s.home = append([]string(nil), old.home...)
	s.reserved = append([]string(nil), old.reserved...)
	for _, st := range old.stations {
		if !s.IsSplit() {
			if len(s.stations) >= s.slots {
				return fmt.Errorf("%w: %s cannot keep the station of %s", ErrCapacity, s, st.Railroad)
			}
			s.stations = append(s.stations, &Station{Cell: s.Cell, Railroad: st.Railroad})

			continue
		}
		var target *Branch
		for _, b := range s.branches {
			if st.Branch != nil && b.Matches(st.Branch) {
				target = b

				break
			}
		}
		if target == nil {
			return fmt.Errorf("%w: station %s has no branch on the new tile", ErrNoSuchBranch, st)
		}
		if len(target.stations) >= target.Capacity {
			return fmt.Errorf("%w: branch of %s cannot keep the station of %s", ErrCapacity, s, st.Railroad)
		}
		moved := &Station{Cell: s.Cell, Railroad: st.Railroad, Branch: st.Branch}
		s.stations = append(s.stations, moved)
		target.stations = append(target.stations, moved)
	}

	return nil
}

// PlaceStation adds rr's station to the (non-split) city at coord.
func (b *Board) PlaceStation(coord string, rr *game.Railroad) error {
	s, err := b.stationSpace(coord, rr)
	if err != nil {
		return err
	}
	if s.IsSplit() {
		return fmt.Errorf("%w: %s", ErrSplitCity, s)
	}
	_, err = s.addStation(b.game, rr, nil)

	return err
}

// PlaceSplitStation adds rr's station to the branch of the split city at
// coord named by one unique exit coordinate or an entry/exit pair.
func (b *Board) PlaceSplitStation(coord string, rr *game.Railroad, branch []string) error {
	s, err := b.stationSpace(coord, rr)
	if err != nil {
		return err
	}
	if len(branch) == 0 {
		return fmt.Errorf("%w: empty branch for %s", ErrNoSuchBranch, s)
	}
	cells := make([]hexgrid.Cell, len(branch))
	for i, c := range branch {
		if cells[i], err = b.grid.Cell(c); err != nil {
			return fmt.Errorf("branch of %s: %w", s, err)
		}
	}
	_, err = s.addStation(b.game, rr, cells)

	return err
}

func (b *Board) stationSpace(coord string, rr *game.Railroad) (*Space, error) {
	if err := rr.CheckActive(); err != nil {
		return nil, fmt.Errorf("station at %s: %w", coord, err)
	}
	cell, err := b.grid.Cell(coord)
	if err != nil {
		return nil, err
	}
	s := b.Space(cell)
	if s == nil || !s.IsCity() {
		return nil, fmt.Errorf("%w: %s", ErrNotACity, coord)
	}

	return s, nil
}

// PlaceToken lays a private company's bonus token for rr at coord. The
// bonus is read from the cell's property of the given name.
func (b *Board) PlaceToken(coord string, rr *game.Railroad, company, property string) error {
	if err := rr.CheckActive(); err != nil {
		return fmt.Errorf("%s token: %w", company, err)
	}
	s, err := b.SpaceAt(coord)
	if err != nil {
		return err
	}
	if s == nil {
		return fmt.Errorf("%w: %s token on empty cell %s", ErrIllegalPlacement, company, coord)
	}
	bonus := s.Properties[property]
	if bonus == 0 {
		return fmt.Errorf("%w: %s does not define %s", ErrIllegalPlacement, coord, property)
	}
	s.tokens = append(s.tokens, &BonusToken{Company: company, Railroad: rr.Name, Bonus: bonus})

	return nil
}
