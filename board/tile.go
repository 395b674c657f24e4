package board

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/routes18xx/hexgrid"
)

// Tile is a placeable tile from the game's tile catalog, in unrotated
// tile-side terms.
type Tile struct {
	ID           string      `yaml:"id"`
	Kind         Kind        `yaml:"kind"`
	Edges        []EdgeGroup `yaml:"edges"`
	Value        int         `yaml:"value"`
	Capacity     Capacity    `yaml:"capacity"`
	UpgradeLevel int         `yaml:"upgrade_level"`
	UpgradeAttrs AttrSet     `yaml:"upgrade_attrs"`
	// Quantity is the number of copies printed; zero means unlimited.
	Quantity int `yaml:"quantity"`
}

// IsStop reports whether the tile carries a town, city or terminus.
func (t *Tile) IsStop() bool { return t.Kind != Track }

// rotate turns a tile side by orientation steps.
func rotate(side, orientation int) int {
	return (side + orientation) % hexgrid.Sides
}

// pathTable is an ordered entry→exits mapping.
type pathTable struct {
	entries []hexgrid.Cell
	exits   map[hexgrid.Cell][]hexgrid.Cell
}

func newPathTable() *pathTable {
	return &pathTable{exits: make(map[hexgrid.Cell][]hexgrid.Cell)}
}

func (p *pathTable) touch(c hexgrid.Cell) {
	if _, ok := p.exits[c]; !ok {
		p.entries = append(p.entries, c)
		p.exits[c] = nil
	}
}

func (p *pathTable) add(from, to hexgrid.Cell) {
	p.touch(from)
	for _, e := range p.exits[from] {
		if e == to {
			return
		}
	}
	p.exits[from] = append(p.exits[from], to)
}

func (p *pathTable) has(from, to hexgrid.Cell) bool {
	for _, e := range p.exits[from] {
		if e == to {
			return true
		}
	}

	return false
}

// sideResolver turns a tile side into the neighboring cell.
type sideResolver func(side int) (hexgrid.Cell, bool)

// buildPaths expands edge groups into every ordered pair within each group.
// With strict set, a side leading off-board is an error; otherwise it is
// dropped (pre-printed spaces on the map edge).
func buildPaths(groups []EdgeGroup, resolve sideResolver, strict bool) (*pathTable, error) {
	p := newPathTable()
	for _, g := range groups {
		cells := make([]hexgrid.Cell, 0, len(g))
		for _, side := range g {
			c, ok := resolve(side)
			if !ok {
				if strict {
					return nil, fmt.Errorf("side %d leads off the map", side)
				}
				continue
			}
			cells = append(cells, c)
		}
		if len(g) == 1 {
			for _, c := range cells {
				p.touch(c)
			}
			continue
		}
		for i, a := range cells {
			for j, b := range cells {
				if i != j {
					p.add(a, b)
				}
			}
		}
	}

	return p, nil
}

// buildBranches converts split capacity into cell-level branches. Each
// branch also accepts any exit cell that belongs to no other branch as a
// one-cell key, so a station can be named by a single unique exit.
func buildBranches(defs []BranchDefinition, resolve sideResolver, strict bool) ([]*Branch, error) {
	branches := make([]*Branch, 0, len(defs))
	for _, d := range defs {
		p, err := buildPaths(d.Edges, resolve, strict)
		if err != nil {
			return nil, err
		}
		b := &Branch{Capacity: d.Slots}
		for _, from := range p.entries {
			if len(p.exits[from]) == 0 {
				b.Stubs = append(b.Stubs, from)
				continue
			}
			for _, to := range p.exits[from] {
				b.Pairs = append(b.Pairs, [2]hexgrid.Cell{from, to})
			}
		}
		branches = append(branches, b)
	}

	for i, b := range branches {
		others := make(map[hexgrid.Cell]bool)
		for j, o := range branches {
			if i != j {
				for _, c := range o.Cells() {
					others[c] = true
				}
			}
		}
		for _, c := range b.Cells() {
			if !others[c] && !b.hasStub(c) {
				b.Stubs = append(b.Stubs, c)
			}
		}
		sort.Slice(b.Stubs, func(x, y int) bool { return b.Stubs[x].Less(b.Stubs[y]) })
	}

	return branches, nil
}
