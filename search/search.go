package search

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/routes18xx/board"
	"github.com/katalvlaran/routes18xx/game"
	"github.com/katalvlaran/routes18xx/hexgrid"
	"github.com/katalvlaran/routes18xx/route"
)

// ctxCheckEvery is how many walk steps pass between cancellation checks.
const ctxCheckEvery = 4096

// walker holds the state of one traversal.
type walker struct {
	board       *board.Board
	rr          *game.Railroad
	opts        Options
	townsExempt bool
	visited     map[hexgrid.Cell]bool
	steps       int
}

func newWalker(b *board.Board, rr *game.Railroad, opts Options) *walker {
	return &walker{
		board:       b,
		rr:          rr,
		opts:        opts,
		townsExempt: b.Game().Rules.TownsOmitFromLimit,
		visited:     make(map[hexgrid.Cell]bool),
	}
}

func applyOptions(opts []Option) Options {
	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}

	return o
}

// Walk returns every maximal route starting at start that visits at most
// visit stops, deduplicated by vertex set.
func Walk(b *board.Board, rr *game.Railroad, start hexgrid.Cell, visit int, opts ...Option) ([]*route.Route, error) {
	if err := rr.CheckActive(); err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	return newWalker(b, rr, applyOptions(opts)).walk(nil, start, visit)
}

// walk explores from cell having arrived from enter (nil at the start).
// It returns nil when the cell is empty, cannot be entered from enter or
// was already visited on this path.
func (w *walker) walk(enter *hexgrid.Cell, cell hexgrid.Cell, length int) ([]*route.Route, error) {
	w.steps++
	if w.steps%ctxCheckEvery == 0 {
		if err := w.opts.Ctx.Err(); err != nil {
			return nil, err
		}
	}

	s := w.board.Space(cell)
	if s == nil || w.visited[cell] || (enter != nil && !s.Enterable(*enter)) {
		return nil, nil
	}

	remaining := length
	if s.IsStop() && !(w.townsExempt && s.Kind == board.Town) {
		if length-1 <= 0 {
			return []*route.Route{route.New(s)}, nil
		}
		remaining = length - 1
	}

	exits, err := s.PathsFor(enter, w.rr)
	if err != nil {
		return nil, err
	}

	w.visited[cell] = true
	defer delete(w.visited, cell)

	var routes []*route.Route
	seen := make(map[string]bool)
	for _, next := range exits {
		if !s.Passable(enter, next, w.rr) {
			continue
		}
		tails, err := w.walk(&cell, next, remaining)
		if err != nil {
			return nil, err
		}
		for _, tail := range tails {
			r := route.New(s).Merge(tail)
			if !seen[r.Key()] {
				seen[r.Key()] = true
				routes = append(routes, r)
			}
		}
	}
	if len(routes) == 0 && s.IsStop() {
		routes = append(routes, route.New(s))
	}

	return routes, nil
}

// routeSet collects routes once each, in discovery order.
type routeSet struct {
	keys   map[string]bool
	routes []*route.Route
}

func (rs *routeSet) add(routes ...*route.Route) {
	for _, r := range routes {
		if !rs.keys[r.Key()] {
			rs.keys[r.Key()] = true
			rs.routes = append(rs.routes, r)
		}
	}
}

// FindRoutes returns the candidate routes for one train of rr.
func FindRoutes(b *board.Board, rr *game.Railroad, train game.Train, opts ...Option) ([]*route.Route, error) {
	if err := rr.CheckActive(); err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	o := applyOptions(opts)
	if err := o.Ctx.Err(); err != nil {
		return nil, err
	}
	w := newWalker(b, rr, o)
	log := o.Logger.With("railroad", rr.Name, "train", train.Name)

	stations := b.Stations(rr.Name)
	found := &routeSet{keys: make(map[string]bool)}
	for _, st := range stations {
		log.Debug("walking from station", "station", st.String())
		routes, err := w.walk(nil, st.Cell, train.Visit)
		if err != nil {
			return nil, err
		}
		found.add(routes...)

		connected, err := w.connectedCities(st.Cell, train.Visit-1)
		if err != nil {
			return nil, err
		}
		for _, c := range connected {
			routes, err := w.walk(nil, c, train.Visit)
			if err != nil {
				return nil, err
			}
			found.add(routes...)
		}
		log.Debug("station done", "station", st.String(), "connected", len(connected), "routes", len(found.routes))
	}

	walked := append([]*route.Route(nil), found.routes...)
	for _, r := range walked {
		for _, st := range stations {
			found.add(r.Subroutes(st.Cell)...)
		}
	}

	valid := make([]*route.Route, 0, len(found.routes))
	for _, r := range found.routes {
		if len(r.Stops()) < 2 {
			continue
		}
		for _, st := range stations {
			if r.ContainsStation(st) {
				valid = append(valid, r)

				break
			}
		}
	}
	if o.Filter != nil {
		var err error
		if valid, err = o.Filter.FilterInvalidRoutes(valid, b, rr); err != nil {
			return nil, fmt.Errorf("search: filter routes for %s: %w", rr.Name, err)
		}
	}
	for _, r := range valid {
		log.Debug("route", "cells", r.String())
	}

	return valid, nil
}

// connectedCities lists the cities and termini reachable from cell within
// dist stops, excluding cell itself, in cell order.
func (w *walker) connectedCities(cell hexgrid.Cell, dist int) ([]hexgrid.Cell, error) {
	if dist <= 0 {
		return nil, nil
	}
	routes, err := w.walk(nil, cell, dist)
	if err != nil {
		return nil, err
	}
	seen := make(map[hexgrid.Cell]bool)
	var out []hexgrid.Cell
	for _, r := range routes {
		for _, s := range r.Spaces() {
			if s.IsCity() && s.Cell != cell && !seen[s.Cell] {
				seen[s.Cell] = true
				out = append(out, s.Cell)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })

	return out, nil
}

// FindAll returns candidate routes for each of rr's trains, indexed like
// rr.Trains. Trains with equal limits share one result slice.
func FindAll(b *board.Board, rr *game.Railroad, opts ...Option) ([][]*route.Route, error) {
	if err := rr.CheckActive(); err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	o := applyOptions(opts)
	o.Logger.Info("finding routes", "railroad", rr.Name, "trains", len(rr.Trains))

	out := make([][]*route.Route, len(rr.Trains))
	total := 0
	for i, train := range rr.Trains {
		reused := false
		for j := 0; j < i; j++ {
			if rr.Trains[j].Same(train) {
				out[i] = out[j]
				reused = true

				break
			}
		}
		if !reused {
			routes, err := FindRoutes(b, rr, train, opts...)
			if err != nil {
				return nil, err
			}
			out[i] = routes
		}
		total += len(out[i])
	}
	o.Logger.Info("found routes", "railroad", rr.Name, "routes", total)

	return out, nil
}
