package gamedata

import (
	"errors"
	"fmt"
	"io/fs"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/routes18xx/board"
	"github.com/katalvlaran/routes18xx/game"
	"github.com/katalvlaran/routes18xx/hexgrid"
)

// File names inside a game directory.
const (
	GameFile      = "game.yaml"
	BoardFile     = "board.yaml"
	TilesFile     = "tiles.yaml"
	TrainsFile    = "trains.yaml"
	RailroadsFile = "railroads.yaml"
)

// Sentinel errors for data loading.
var (
	// ErrInvalidData indicates a malformed file or row.
	ErrInvalidData = errors.New("gamedata: invalid data")
	// ErrUnknownTile indicates a tile id missing from the catalog.
	ErrUnknownTile = errors.New("gamedata: unknown tile")
	// ErrUnknownRailroad indicates a railroad the game does not define.
	ErrUnknownRailroad = errors.New("gamedata: unknown railroad")
	// ErrDuplicateRailroad indicates a railroad listed more than once.
	ErrDuplicateRailroad = errors.New("gamedata: railroad listed twice")
	// ErrNotRemovable indicates a removed railroad that is not allowed to close.
	ErrNotRemovable = errors.New("gamedata: railroad cannot be removed")
)

// RailroadInfo is the static data of one railroad.
type RailroadInfo struct {
	Home      string   `yaml:"home"`
	Nicknames []string `yaml:"nicknames"`
	Removable bool     `yaml:"removable"`
}

type boardFile struct {
	Grid   hexgrid.Definition   `yaml:"grid"`
	Spaces board.BaseDefinition `yaml:"spaces"`
}

type tilesFile struct {
	Tiles []*board.Tile `yaml:"tiles"`
}

type trainsFile struct {
	Trains []game.TrainDefinition `yaml:"trains"`
	Limits game.TrainLimits       `yaml:"limits"`
}

// Data is everything a game directory defines.
type Data struct {
	Game      *game.Game
	Grid      *hexgrid.Grid
	Base      board.BaseDefinition
	Tiles     map[string]*board.Tile
	Trains    game.TrainCatalog
	Limits    game.TrainLimits
	Railroads map[string]RailroadInfo
}

// Load reads the game files at the root of fsys.
func Load(fsys fs.FS) (*Data, error) {
	var def game.Definition
	if err := decode(fsys, GameFile, &def); err != nil {
		return nil, err
	}
	g, err := game.New(def)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", GameFile, err)
	}

	var bf boardFile
	if err := decode(fsys, BoardFile, &bf); err != nil {
		return nil, err
	}
	grid, err := hexgrid.New(bf.Grid)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", BoardFile, err)
	}

	var tf tilesFile
	if err := decode(fsys, TilesFile, &tf); err != nil {
		return nil, err
	}
	tiles := make(map[string]*board.Tile, len(tf.Tiles))
	for _, t := range tf.Tiles {
		if t == nil || t.ID == "" {
			return nil, fmt.Errorf("%w: %s: tile without id", ErrInvalidData, TilesFile)
		}
		if _, dup := tiles[t.ID]; dup {
			return nil, fmt.Errorf("%w: %s: tile %s listed twice", ErrInvalidData, TilesFile, t.ID)
		}
		tiles[t.ID] = t
	}

	var trf trainsFile
	if err := decode(fsys, TrainsFile, &trf); err != nil {
		return nil, err
	}
	catalog := make(game.TrainCatalog, 0, len(trf.Trains))
	for _, td := range trf.Trains {
		if td.Phase != "" && !g.HasPhase(td.Phase) {
			return nil, fmt.Errorf("%s: train %s: %w: %q", TrainsFile, td.Name, game.ErrUnknownPhase, td.Phase)
		}
		catalog = append(catalog, game.NewTrain(td))
	}

	railroads := make(map[string]RailroadInfo)
	if err := decode(fsys, RailroadsFile, &railroads); err != nil {
		return nil, err
	}
	for name, info := range railroads {
		if _, err := grid.Cell(info.Home); err != nil {
			return nil, fmt.Errorf("%s: %s home: %w", RailroadsFile, name, err)
		}
	}

	return &Data{
		Game:      g,
		Grid:      grid,
		Base:      bf.Spaces,
		Tiles:     tiles,
		Trains:    catalog,
		Limits:    trf.Limits,
		Railroads: railroads,
	}, nil
}

func decode(fsys fs.FS, name string, v any) error {
	raw, err := fs.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	if err := yaml.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrInvalidData, name, err)
	}

	return nil
}

// NewBoard returns an empty board: only the pre-printed spaces.
func (d *Data) NewBoard() (*board.Board, error) {
	return board.New(d.Game, d.Grid, d.Base)
}

// RailroadNames lists the defined railroads in order.
func (d *Data) RailroadNames() []string {
	out := make([]string, 0, len(d.Railroads))
	for name := range d.Railroads {
		out = append(out, name)
	}
	sort.Strings(out)

	return out
}
