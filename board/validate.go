package board

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Validate checks the whole board after every placement: laid tiles without
// a station must connect to a neighbor, every tile's upgrade level must be
// unlocked by the current phase, and no tile may be laid more often than it
// was printed. All failures are reported together under ErrInvalidBoard.
func (b *Board) Validate() error {
	placed := b.PlacedTiles()
	err := errors.Join(
		b.validateConnected(placed),
		b.validateUpgradeLevels(placed),
		validateQuantities(placed),
	)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidBoard, err)
	}

	return nil
}

func (b *Board) validateConnected(placed []*Space) error {
	var invalid []string
	for _, s := range placed {
		if len(s.stations) > 0 {
			continue
		}
		connected := false
		for _, n := range s.paths.entries {
			if ns := b.Space(n); ns != nil && ns.Enterable(s.Cell) {
				connected = true

				break
			}
		}
		if !connected {
			invalid = append(invalid, s.Cell.String())
		}
	}
	if len(invalid) > 0 {
		return fmt.Errorf("tiles with no neighbors and no stations: %s", strings.Join(invalid, ", "))
	}

	return nil
}

func (b *Board) validateUpgradeLevels(placed []*Space) error {
	var invalid []string
	for _, s := range placed {
		p, ok := b.game.UpgradePhases[s.upgradeLevel]
		if !ok || !b.game.Reached(p) {
			invalid = append(invalid, s.Cell.String())
		}
	}
	if len(invalid) > 0 {
		return fmt.Errorf("tiles not yet available in phase %q: %s", b.game.Phase(), strings.Join(invalid, ", "))
	}

	return nil
}

func validateQuantities(placed []*Space) error {
	counts := make(map[string]int)
	limits := make(map[string]int)
	for _, s := range placed {
		counts[s.tile.ID]++
		limits[s.tile.ID] = s.tile.Quantity
	}
	var invalid []string
	for id, n := range counts {
		if q := limits[id]; q > 0 && n > q {
			invalid = append(invalid, fmt.Sprintf("%s (%d > %d)", id, n, q))
		}
	}
	if len(invalid) > 0 {
		sort.Strings(invalid)

		return fmt.Errorf("too many copies of tiles: %s", strings.Join(invalid, ", "))
	}

	return nil
}
