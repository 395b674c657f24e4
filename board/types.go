package board

import (
	"errors"
	"fmt"
	"sort"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Sentinel errors for board operations.
var (
	// ErrIllegalPlacement indicates a tile or token placement that breaks board rules.
	ErrIllegalPlacement = errors.New("board: illegal placement")
	// ErrCapacity indicates a city (or city branch) with no free station slot.
	ErrCapacity = errors.New("board: no station capacity left")
	// ErrDuplicateStation indicates a railroad already holds a station on the space.
	ErrDuplicateStation = errors.New("board: railroad already has a station here")
	// ErrReservedSpace indicates the last free slots are held for other railroads.
	ErrReservedSpace = errors.New("board: slot reserved for another railroad")
	// ErrNoSuchBranch indicates a split-city branch that does not exist.
	ErrNoSuchBranch = errors.New("board: no such split city branch")
	// ErrNotACity indicates a station request on a space that cannot hold stations.
	ErrNotACity = errors.New("board: space cannot hold stations")
	// ErrSplitCity indicates a plain station request on a split city.
	ErrSplitCity = errors.New("board: split city requires a branch")
	// ErrNoValue indicates a stop with no revenue defined for the current phase or train.
	ErrNoValue = errors.New("board: no value for current phase")
	// ErrInvalidBoard indicates the board failed global validation.
	ErrInvalidBoard = errors.New("board: invalid board")
)

// Kind is the closed set of space variants.
type Kind int

const (
	// Track is a pure connector: no stop, zero value.
	Track Kind = iota
	// Town is a small stop; always passable.
	Town
	// City is a stop with station slots.
	City
	// Terminus is an off-board stop: routes may start there but never pass through.
	Terminus
)

var kindNames = map[Kind]string{Track: "track", Town: "town", City: "city", Terminus: "terminus"}

// String returns the lower-case kind name.
func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}

	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// UnmarshalText parses "track", "town", "city" or "terminus".
func (k *Kind) UnmarshalText(text []byte) error {
	for kind, name := range kindNames {
		if name == string(text) {
			*k = kind

			return nil
		}
	}

	return fmt.Errorf("board: unknown space kind %q", text)
}

// Terminal marks a terminus as belonging to the east or west map edge.
type Terminal int

const (
	// NotTerminal is every space that is not an east/west terminus.
	NotTerminal Terminal = iota
	// East terminus.
	East
	// West terminus.
	West
)

// EdgeGroup is a set of tile sides that are all connected to each other.
// A group with a single side is a stub.
type EdgeGroup []int

// UnmarshalYAML accepts a single side or a list of sides.
func (e *EdgeGroup) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		var side int
		if err := node.Decode(&side); err != nil {
			return err
		}
		*e = EdgeGroup{side}

		return nil
	}
	var sides []int
	if err := node.Decode(&sides); err != nil {
		return err
	}
	*e = sides

	return nil
}

// AttrSet is one alternative of upgrade attributes, kept sorted.
type AttrSet []string

// UnmarshalYAML accepts a single attribute or a list of attributes.
func (a *AttrSet) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		*a = AttrSet{node.Value}

		return nil
	}
	var attrs []string
	if err := node.Decode(&attrs); err != nil {
		return err
	}
	sort.Strings(attrs)
	*a = attrs

	return nil
}

func (a AttrSet) equal(b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}

// Value is the revenue definition of a stop. Exactly one of Fixed, ByPhase or
// ByTrain normally applies; ByTrain wins over ByPhase for listed trains.
type Value struct {
	Fixed   int
	ByPhase map[string]int
	ByTrain map[string]int
	// E2WBonus is paid on top when an east/west terminus ends a route that
	// runs to the opposite edge.
	E2WBonus int
}

// UnmarshalYAML accepts a bare integer or a mapping with phase, train and
// e2w-bonus keys.
func (v *Value) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		return node.Decode(&v.Fixed)
	}
	var raw struct {
		Fixed    int            `yaml:"fixed"`
		Phase    map[string]int `yaml:"phase"`
		Train    map[string]int `yaml:"train"`
		E2WBonus int            `yaml:"e2w-bonus"`
	}
	if err := node.Decode(&raw); err != nil {
		return err
	}
	*v = Value{Fixed: raw.Fixed, ByPhase: raw.Phase, ByTrain: raw.Train, E2WBonus: raw.E2WBonus}

	return nil
}

// BranchDefinition is one branch of a split city in tile-side terms.
type BranchDefinition struct {
	Edges []EdgeGroup `yaml:"edges"`
	Slots int         `yaml:"slots"`
}

// Capacity is either a plain slot count or a list of split-city branches.
type Capacity struct {
	Slots    int
	Branches []BranchDefinition
}

// UnmarshalYAML accepts a bare integer or a list of branch definitions.
func (c *Capacity) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		return node.Decode(&c.Slots)
	}

	return node.Decode(&c.Branches)
}

// Split reports whether the capacity describes a split city.
func (c Capacity) Split() bool { return len(c.Branches) > 0 }

// SpaceDefinition describes one pre-printed space in tile-side terms.
type SpaceDefinition struct {
	Name     string      `yaml:"name"`
	Nickname string      `yaml:"nickname"`
	Edges    []EdgeGroup `yaml:"edges"`
	Value    Value       `yaml:"value"`
	Capacity Capacity    `yaml:"capacity"`
	// UpgradeLevel defaults to 0 for towns and cities. Pre-printed track
	// and termini are never upgradable, and neither is a Gray space.
	UpgradeLevel *int      `yaml:"upgrade_level"`
	Gray         bool      `yaml:"gray"`
	UpgradeAttrs []AttrSet `yaml:"upgrade_attrs"`
	// Properties are permanent per-cell numbers, e.g. private company bonuses.
	Properties map[string]int `yaml:"properties"`
	Home       []string       `yaml:"home"`
	Reserved   []string       `yaml:"reserved"`
	East       bool           `yaml:"is_east"`
	West       bool           `yaml:"is_west"`
}

// BaseDefinition lists a game's pre-printed spaces by coordinate.
type BaseDefinition struct {
	Tracks  map[string]SpaceDefinition `yaml:"tracks"`
	Towns   map[string]SpaceDefinition `yaml:"towns"`
	Cities  map[string]SpaceDefinition `yaml:"cities"`
	Termini map[string]SpaceDefinition `yaml:"termini"`
}
