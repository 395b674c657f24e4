package rules

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/katalvlaran/routes18xx/board"
	"github.com/katalvlaran/routes18xx/game"
	"github.com/katalvlaran/routes18xx/route"
)

// Sentinel errors for rules lookups and private company assignment.
var (
	// ErrUnknownGame indicates a game name with no registered variant.
	ErrUnknownGame = errors.New("rules: unknown game")
	// ErrUnknownPrivate indicates a private company the game does not define.
	ErrUnknownPrivate = errors.New("rules: unknown private company")
	// ErrDuplicatePrivate indicates a private company assigned more than once.
	ErrDuplicatePrivate = errors.New("rules: private company listed twice")
	// ErrUnknownOwner indicates a private company owned by an unknown railroad.
	ErrUnknownOwner = errors.New("rules: unknown owning railroad")
	// ErrTokenPlacement indicates a private company token on a space it may not use.
	ErrTokenPlacement = errors.New("rules: illegal private company token")
)

// Hooks are the callbacks the route engine consumes.
type Hooks interface {
	FilterInvalidRoutes(routes []*route.Route, b *board.Board, rr *game.Railroad) ([]*route.Route, error)
	RouteSetValues(runs []*route.Run, rr *game.Railroad) ([]int, error)
	RouteMaxValue(run *route.Run, rr *game.Railroad) int
}

// Variant is one game's hooks plus its private companies.
type Variant interface {
	Hooks
	PrivateCompanies() map[string]PrivateCompany
}

var (
	mu       sync.RWMutex
	registry = map[string]func() Variant{
		"default": func() Variant { return Default{} },
		"1846":    func() Variant { return G1846{} },
		"18AL":    func() Variant { return G18AL{} },
	}
)

// Register makes a variant available under name, replacing any previous one.
func Register(name string, factory func() Variant) {
	mu.Lock()
	defer mu.Unlock()
	registry[name] = factory
}

// Lookup returns the variant registered under name.
func Lookup(name string) (Variant, error) {
	mu.RLock()
	defer mu.RUnlock()
	factory, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownGame, name)
	}

	return factory(), nil
}

// Games lists the registered names in order.
func Games() []string {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]string, 0, len(registry))
	for name := range registry {
		out = append(out, name)
	}
	sort.Strings(out)

	return out
}

// Default is the variant with no extra rules.
type Default struct{}

// FilterInvalidRoutes keeps every route.
func (Default) FilterInvalidRoutes(routes []*route.Route, _ *board.Board, _ *game.Railroad) ([]*route.Route, error) {
	return routes, nil
}

// RouteSetValues returns each run's own value.
func (Default) RouteSetValues(runs []*route.Run, _ *game.Railroad) ([]int, error) {
	out := make([]int, len(runs))
	for i, r := range runs {
		out[i] = r.Value
	}

	return out, nil
}

// RouteMaxValue returns the run's own value.
func (Default) RouteMaxValue(run *route.Run, _ *game.Railroad) int { return run.Value }

// PrivateCompanies returns no companies.
func (Default) PrivateCompanies() map[string]PrivateCompany { return nil }
