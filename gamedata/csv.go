package gamedata

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/katalvlaran/routes18xx/board"
	"github.com/katalvlaran/routes18xx/game"
	"github.com/katalvlaran/routes18xx/rules"
)

// removedMarker in the trains column marks a railroad removed from play.
const removedMarker = "removed"

func newReader(r io.Reader) *csv.Reader {
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.Comment = '#'
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	return cr
}

// readRows returns the non-empty rows of r with every field trimmed.
func readRows(r io.Reader, name string) ([][]string, error) {
	rows, err := newReader(r).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidData, name, err)
	}
	out := rows[:0]
	for _, row := range rows {
		for i := range row {
			row[i] = strings.TrimSpace(row[i])
		}
		if len(row) == 1 && row[0] == "" {
			continue
		}
		out = append(out, row)
	}

	return out, nil
}

type placement struct {
	coord       string
	tile        *board.Tile
	orientation int
}

// LoadBoardState builds a board and lays the tiles listed in r, one
// "coord; tile_id; orientation" row per tile.
func (d *Data) LoadBoardState(r io.Reader) (*board.Board, error) {
	rows, err := readRows(r, "board state")
	if err != nil {
		return nil, err
	}
	placements := make([]placement, 0, len(rows))
	for i, row := range rows {
		if len(row) != 3 {
			return nil, fmt.Errorf("%w: board state row %d: want coord; tile_id; orientation, got %q", ErrInvalidData, i+1, row)
		}
		t, ok := d.Tiles[row[1]]
		if !ok {
			return nil, fmt.Errorf("%w: %q at %s", ErrUnknownTile, row[1], row[0])
		}
		orientation, err := strconv.Atoi(row[2])
		if err != nil {
			return nil, fmt.Errorf("%w: board state row %d: orientation %q", ErrInvalidData, i+1, row[2])
		}
		placements = append(placements, placement{coord: row[0], tile: t, orientation: orientation})
	}
	sort.SliceStable(placements, func(i, j int) bool {
		return placements[i].tile.UpgradeLevel < placements[j].tile.UpgradeLevel
	})

	b, err := d.NewBoard()
	if err != nil {
		return nil, err
	}
	for _, p := range placements {
		if err := b.PlaceTile(p.coord, p.tile, p.orientation); err != nil {
			return nil, fmt.Errorf("tile %s at %s: %w", p.tile.ID, p.coord, err)
		}
	}

	return b, nil
}

// Railroads are the railroads in play keyed by name and every nickname.
type Railroads map[string]*game.Railroad

// List returns each railroad once, by name.
func (rs Railroads) List() []*game.Railroad {
	seen := make(map[*game.Railroad]bool, len(rs))
	out := make([]*game.Railroad, 0, len(rs))
	for _, rr := range rs {
		if !seen[rr] {
			seen[rr] = true
			out = append(out, rr)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })

	return out
}

type railroadRow struct {
	rr       *game.Railroad
	info     RailroadInfo
	stations []string
	branches map[string][]string
}

// LoadRailroads reads "name; trains; stations; branch..." rows from r.
//
// Trains is a comma-separated train list, or "removed". Stations is a
// comma-separated coordinate list; the home station is always placed and
// need not be listed. Each trailing column gives the branch of a station in
// a split city as "coord: cell [cell]", naming the branch by its exits.
//
// The game phase is captured from the loaded railroads and train limits are
// checked before any station is placed on b.
func (d *Data) LoadRailroads(b *board.Board, r io.Reader) (Railroads, error) {
	rows, err := readRows(r, "railroads")
	if err != nil {
		return nil, err
	}
	parsed := make([]railroadRow, 0, len(rows))
	seen := make(map[string]bool, len(rows))
	for _, row := range rows {
		rr, err := d.parseRailroad(row)
		if err != nil {
			return nil, err
		}
		if seen[rr.rr.Name] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateRailroad, rr.rr.Name)
		}
		seen[rr.rr.Name] = true
		parsed = append(parsed, rr)
	}

	all := make([]*game.Railroad, len(parsed))
	for i, p := range parsed {
		all[i] = p.rr
	}
	d.Game.CapturePhase(all)
	if d.Limits != nil {
		for _, rr := range all {
			if err := d.Limits.Validate(d.Game, rr); err != nil {
				return nil, err
			}
		}
	}

	out := make(Railroads, len(parsed))
	for _, p := range parsed {
		if err := placeStations(b, p); err != nil {
			return nil, err
		}
		out[p.rr.Name] = p.rr
		for _, nick := range p.info.Nicknames {
			out[nick] = p.rr
		}
	}

	return out, nil
}

func (d *Data) parseRailroad(row []string) (railroadRow, error) {
	if len(row) < 2 {
		return railroadRow{}, fmt.Errorf("%w: railroads row %q: want name; trains", ErrInvalidData, row)
	}
	name := row[0]
	info, ok := d.Railroads[name]
	if !ok {
		return railroadRow{}, fmt.Errorf("%w: %q", ErrUnknownRailroad, name)
	}

	if strings.EqualFold(row[1], removedMarker) {
		if !d.Game.Rules.RailroadsCanClose || !info.Removable {
			return railroadRow{}, fmt.Errorf("%w: %s", ErrNotRemovable, name)
		}

		return railroadRow{rr: game.NewRemovedRailroad(name), info: info}, nil
	}
	trains, err := d.Trains.Parse(row[1])
	if err != nil {
		return railroadRow{}, fmt.Errorf("railroad %s: %w", name, err)
	}

	out := railroadRow{rr: game.NewRailroad(name, trains), info: info, branches: make(map[string][]string)}
	if len(row) > 2 {
		for _, coord := range strings.Split(row[2], ",") {
			if coord = strings.TrimSpace(coord); coord != "" && coord != info.Home {
				out.stations = append(out.stations, coord)
			}
		}
	}
	for _, col := range row[min(len(row), 3):] {
		if col == "" {
			continue
		}
		coord, exits, ok := strings.Cut(col, ":")
		fields := strings.Fields(exits)
		if !ok || len(fields) == 0 {
			return railroadRow{}, fmt.Errorf("%w: railroad %s: branch %q, want \"coord: cell [cell]\"", ErrInvalidData, name, col)
		}
		out.branches[strings.TrimSpace(coord)] = fields
	}

	return out, nil
}

// placeStations lays the home station, then the listed ones. Removed
// railroads have no stations.
func placeStations(b *board.Board, p railroadRow) error {
	if p.rr.Removed() {
		return nil
	}
	for _, coord := range append([]string{p.info.Home}, p.stations...) {
		var err error
		if branch, ok := p.branches[coord]; ok {
			err = b.PlaceSplitStation(coord, p.rr, branch)
		} else {
			err = b.PlaceStation(coord, p.rr)
		}
		if err != nil {
			return fmt.Errorf("railroad %s: %w", p.rr.Name, err)
		}
	}

	return nil
}

// LoadPrivates reads "name; owner; coord" rows from r. Owner and coord may
// be empty.
func LoadPrivates(r io.Reader) ([]rules.Assignment, error) {
	rows, err := readRows(r, "private companies")
	if err != nil {
		return nil, err
	}
	out := make([]rules.Assignment, 0, len(rows))
	for i, row := range rows {
		if len(row) > 3 || row[0] == "" {
			return nil, fmt.Errorf("%w: private companies row %d: want name; owner; coord, got %q", ErrInvalidData, i+1, row)
		}
		a := rules.Assignment{Name: row[0]}
		if len(row) > 1 {
			a.Owner = row[1]
		}
		if len(row) > 2 {
			a.Coord = row[2]
		}
		out = append(out, a)
	}

	return out, nil
}

