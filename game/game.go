package game

import (
	"errors"
	"fmt"
	"sync"
)

// Sentinel errors for game operations.
var (
	// ErrRemovedRailroad indicates an operation on a railroad that has been removed from play.
	ErrRemovedRailroad = errors.New("game: railroad is removed")
	// ErrUnknownPhase indicates a phase name that the game does not define.
	ErrUnknownPhase = errors.New("game: unknown phase")
	// ErrPhaseNotSet indicates a phase comparison before the current phase was captured.
	ErrPhaseNotSet = errors.New("game: current phase not set")
	// ErrInvalidDefinition indicates malformed game data.
	ErrInvalidDefinition = errors.New("game: invalid definition")
)

// Rules are the variant switches consumed by the route engine.
type Rules struct {
	// TownsOmitFromLimit exempts towns from both the visit and collection limits.
	TownsOmitFromLimit bool `yaml:"towns_omit_from_limit"`
	// StationsReservedUntil is the phase at which reserved city slots are released.
	// Empty means reservations never expire.
	StationsReservedUntil string `yaml:"stations_reserved_until"`
	// RailroadsCanClose allows railroads to be marked removed.
	RailroadsCanClose bool `yaml:"railroads_can_close"`
}

// Definition is the static, serialisable description of a game.
type Definition struct {
	Name   string   `yaml:"name"`
	Phases []string `yaml:"phases"`
	// UpgradePhases maps a tile upgrade level to the first phase it may be laid in.
	UpgradePhases map[int]string `yaml:"upgrade_phases"`
	// PrivatesClose maps a private company name to the phase it closes in.
	PrivatesClose map[string]string `yaml:"privates_close"`
	Rules         Rules             `yaml:"rules"`
}

// Game is a loaded game definition plus the current phase. The phase is
// safe for concurrent use; the definition fields are read-only after New.
type Game struct {
	Name          string
	Phases        []string
	UpgradePhases map[int]string
	PrivatesClose map[string]string
	Rules         Rules

	phaseIndex map[string]int

	mu      sync.RWMutex
	current string
}

// New validates def and returns a Game with no current phase.
// Every phase referenced by UpgradePhases, PrivatesClose and
// Rules.StationsReservedUntil must appear in Phases.
func New(def Definition) (*Game, error) {
	if def.Name == "" {
		return nil, fmt.Errorf("%w: missing name", ErrInvalidDefinition)
	}
	if len(def.Phases) == 0 {
		return nil, fmt.Errorf("%w: %s defines no phases", ErrInvalidDefinition, def.Name)
	}

	g := &Game{
		Name:          def.Name,
		Phases:        append([]string(nil), def.Phases...),
		UpgradePhases: make(map[int]string, len(def.UpgradePhases)),
		PrivatesClose: make(map[string]string, len(def.PrivatesClose)),
		Rules:         def.Rules,
		phaseIndex:    make(map[string]int, len(def.Phases)),
	}
	for i, p := range def.Phases {
		if _, dup := g.phaseIndex[p]; dup {
			return nil, fmt.Errorf("%w: phase %q listed twice", ErrInvalidDefinition, p)
		}
		g.phaseIndex[p] = i
	}
	for level, p := range def.UpgradePhases {
		if !g.HasPhase(p) {
			return nil, fmt.Errorf("%w: upgrade level %d: %q", ErrUnknownPhase, level, p)
		}
		g.UpgradePhases[level] = p
	}
	for name, p := range def.PrivatesClose {
		if !g.HasPhase(p) {
			return nil, fmt.Errorf("%w: private company %s closes in %q", ErrUnknownPhase, name, p)
		}
		g.PrivatesClose[name] = p
	}
	if p := def.Rules.StationsReservedUntil; p != "" && !g.HasPhase(p) {
		return nil, fmt.Errorf("%w: stations reserved until %q", ErrUnknownPhase, p)
	}

	return g, nil
}

// HasPhase reports whether p is one of the game's phases.
func (g *Game) HasPhase(p string) bool {
	_, ok := g.phaseIndex[p]

	return ok
}

// Phase returns the current phase, or "" if none has been set.
func (g *Game) Phase() string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.current
}

// SetPhase fixes the current phase explicitly.
func (g *Game) SetPhase(p string) error {
	if !g.HasPhase(p) {
		return fmt.Errorf("%w: %q", ErrUnknownPhase, p)
	}
	g.mu.Lock()
	g.current = p
	g.mu.Unlock()

	return nil
}

// DetectPhase returns the latest phase among all trains owned by the given
// railroads, or the first phase if nobody owns a train.
func (g *Game) DetectPhase(railroads []*Railroad) string {
	best := -1
	for _, rr := range railroads {
		for _, t := range rr.Trains {
			if i, ok := g.phaseIndex[t.Phase]; ok && i > best {
				best = i
			}
		}
	}
	if best < 0 {
		return g.Phases[0]
	}

	return g.Phases[best]
}

// CapturePhase detects and stores the current phase. See DetectPhase.
func (g *Game) CapturePhase(railroads []*Railroad) string {
	p := g.DetectPhase(railroads)
	g.mu.Lock()
	g.current = p
	g.mu.Unlock()

	return p
}

// ComparePhase compares the current phase with other and returns
// 1 if the current phase is later, -1 if it is earlier and 0 if equal.
func (g *Game) ComparePhase(other string) (int, error) {
	current := g.Phase()
	if current == "" {
		return 0, ErrPhaseNotSet
	}
	o, ok := g.phaseIndex[other]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownPhase, other)
	}
	c := g.phaseIndex[current]
	switch {
	case c > o:
		return 1, nil
	case c < o:
		return -1, nil
	default:
		return 0, nil
	}
}

// Reached reports whether the current phase is p or later.
// An unset current phase or an unknown p reports false.
func (g *Game) Reached(p string) bool {
	cmp, err := g.ComparePhase(p)

	return err == nil && cmp >= 0
}

// PrivateIsClosed reports whether the named private company has closed in
// the current phase. Companies without a close phase never close.
func (g *Game) PrivateIsClosed(name string) bool {
	p, ok := g.PrivatesClose[name]
	if !ok {
		return false
	}

	return g.Reached(p)
}

// ReservationsActive reports whether reserved city slots still hold.
func (g *Game) ReservationsActive() bool {
	p := g.Rules.StationsReservedUntil

	return p != "" && !g.Reached(p)
}
