package rules

import (
	"fmt"
	"slices"

	"github.com/katalvlaran/routes18xx/board"
	"github.com/katalvlaran/routes18xx/game"
)

// Assignment is one private company row: who owns it and, for token
// companies, where the token sits. Owner and Coord may be empty.
type Assignment struct {
	Name  string
	Owner string
	Coord string
}

// PrivateCompany applies one assignment to the board and railroads.
type PrivateCompany func(b *board.Board, railroads map[string]*game.Railroad, a Assignment) error

// ApplyPrivates runs v's handler for each assignment in order.
// Each company may appear once, and every company must belong to the game.
func ApplyPrivates(v Variant, b *board.Board, railroads map[string]*game.Railroad, assignments []Assignment) error {
	seen := make(map[string]bool, len(assignments))
	for _, a := range assignments {
		if seen[a.Name] {
			return fmt.Errorf("%w: %s", ErrDuplicatePrivate, a.Name)
		}
		seen[a.Name] = true
	}

	companies := v.PrivateCompanies()
	for _, a := range assignments {
		handle, ok := companies[a.Name]
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownPrivate, a.Name)
		}
		if err := handle(b, railroads, a); err != nil {
			return fmt.Errorf("private company %s: %w", a.Name, err)
		}
	}

	return nil
}

func owner(railroads map[string]*game.Railroad, a Assignment) (*game.Railroad, error) {
	rr, ok := railroads[a.Owner]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownOwner, a.Owner)
	}

	return rr, nil
}

// ownership handles companies whose only effect is being owned.
func ownership(_ *board.Board, railroads map[string]*game.Railroad, a Assignment) error {
	if a.Owner == "" {
		return nil
	}
	rr, err := owner(railroads, a)
	if err != nil {
		return err
	}

	return rr.AddPrivateCompany(a.Name)
}

// tokenCompany handles companies that lay a bonus token on one of coords.
// The bonus comes from the space's property of the given name.
func tokenCompany(property string, coords ...string) PrivateCompany {
	return func(b *board.Board, railroads map[string]*game.Railroad, a Assignment) error {
		if a.Owner == "" || a.Coord == "" {
			return nil
		}
		rr, err := owner(railroads, a)
		if err != nil {
			return err
		}
		if err := rr.CheckActive(); err != nil {
			return err
		}
		if !slices.Contains(coords, a.Coord) {
			return fmt.Errorf("%w: %s may not be placed on %s", ErrTokenPlacement, a.Name, a.Coord)
		}
		if err := b.PlaceToken(a.Coord, rr, a.Name, property); err != nil {
			return err
		}

		return rr.AddPrivateCompany(a.Name)
	}
}

// independentRailroad handles a private company with its own home station.
// An owner takes the station over; an owner already there gains nothing.
// Unowned, the company keeps its own station until the given phase.
func independentRailroad(home, until string) PrivateCompany {
	return func(b *board.Board, railroads map[string]*game.Railroad, a Assignment) error {
		if a.Owner == "" {
			cmp, err := b.Game().ComparePhase(until)
			if err != nil {
				return err
			}
			if cmp >= 0 {
				return nil
			}

			return b.PlaceStation(home, game.NewRailroad(a.Name, nil))
		}

		rr, err := owner(railroads, a)
		if err != nil {
			return err
		}
		if err := rr.CheckActive(); err != nil {
			return err
		}
		s, err := b.SpaceAt(home)
		if err != nil {
			return err
		}
		if s != nil && s.HasStation(rr.Name) {
			return nil
		}
		if err := b.PlaceStation(home, rr); err != nil {
			return err
		}

		return rr.AddPrivateCompany(a.Name)
	}
}
