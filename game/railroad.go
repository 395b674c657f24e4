package game

import (
	"fmt"
	"sort"
)

// Railroad is a company that owns trains, stations (tracked by the board)
// and private companies.
type Railroad struct {
	Name   string
	Trains []Train

	removed  bool
	privates map[string]bool
}

// NewRailroad returns an active railroad owning trains.
func NewRailroad(name string, trains []Train) *Railroad {
	return &Railroad{
		Name:     name,
		Trains:   append([]Train(nil), trains...),
		privates: make(map[string]bool),
	}
}

// NewRemovedRailroad returns a railroad in the removed terminal state.
func NewRemovedRailroad(name string) *Railroad {
	return &Railroad{Name: name, removed: true, privates: make(map[string]bool)}
}

// Removed reports whether the railroad has been removed from play.
func (r *Railroad) Removed() bool { return r.removed }

// CheckActive returns ErrRemovedRailroad (naming the railroad) if r is removed.
func (r *Railroad) CheckActive() error {
	if r.removed {
		return fmt.Errorf("%w: %s", ErrRemovedRailroad, r.Name)
	}

	return nil
}

// AddPrivateCompany records ownership of a private company.
func (r *Railroad) AddPrivateCompany(name string) error {
	if err := r.CheckActive(); err != nil {
		return fmt.Errorf("cannot assign %s: %w", name, err)
	}
	r.privates[name] = true

	return nil
}

// HasPrivateCompany reports whether r owns the named private company.
func (r *Railroad) HasPrivateCompany(name string) bool { return r.privates[name] }

// PrivateCompanies lists owned private companies in name order.
func (r *Railroad) PrivateCompanies() []string {
	out := make([]string, 0, len(r.privates))
	for name := range r.privates {
		out = append(out, name)
	}
	sort.Strings(out)

	return out
}

// String returns the railroad name.
func (r *Railroad) String() string { return r.Name }
