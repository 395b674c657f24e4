package optimize

import (
	"context"
	"fmt"
	"sort"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/routes18xx/game"
	"github.com/katalvlaran/routes18xx/route"
)

// checkEvery is how many nodes pass between context, deadline and shared
// node-count checks.
const checkEvery = 4096

// candidate is one choice for a train. A nil run is the "no route" choice.
type candidate struct {
	run   *route.Run
	max   int
	edges []uint64
}

// shared is the state every worker reads and writes.
type shared struct {
	best      atomic.Int64
	nodes     atomic.Int64
	truncated atomic.Bool
}

// raise lifts the shared best to v unless it is already at least v.
func (s *shared) raise(v int64) {
	for {
		cur := s.best.Load()
		if v <= cur || s.best.CompareAndSwap(cur, v) {
			return
		}
	}
}

// engine is one worker's search over a chunk of the first train's choices.
type engine struct {
	ctx    context.Context
	rr     *game.Railroad
	valuer Valuer
	trains [][]candidate
	// rest[i] is the sum of the best upper bounds of trains i and later.
	rest []int
	sh   *shared

	nodeLimit   int64
	useDeadline bool
	deadline    time.Time
	local       int64

	used   []uint64
	chosen []*candidate

	found      bool
	bestRuns   []*route.Run
	bestValues []int
	bestTotal  int

	stop bool
	err  error
}

// tick counts a node and reports whether the search must stop.
func (e *engine) tick() bool {
	if e.stop {
		return true
	}
	e.local++
	if e.nodeLimit > 0 && e.sh.nodes.Load()+e.local >= e.nodeLimit {
		e.halt(nil)

		return true
	}
	if e.local%checkEvery != 0 {
		return false
	}
	e.sh.nodes.Add(e.local)
	e.local = 0

	return e.check()
}

// check tests the context and the deadline.
func (e *engine) check() bool {
	if err := e.ctx.Err(); err != nil {
		e.halt(err)

		return true
	}
	if e.useDeadline && !time.Now().Before(e.deadline) {
		e.halt(nil)

		return true
	}

	return false
}

// halt stops the search. A nil err means a limit was reached.
func (e *engine) halt(err error) {
	e.stop = true
	if err != nil {
		e.err = err

		return
	}
	e.sh.truncated.Store(true)
}

func (e *engine) flush() {
	e.sh.nodes.Add(e.local)
	e.local = 0
}

func overlaps(used, edges []uint64) bool {
	for i, w := range edges {
		if used[i]&w != 0 {
			return true
		}
	}

	return false
}

func toggle(used, edges []uint64) {
	for i, w := range edges {
		used[i] ^= w
	}
}

// dfs assigns train depth from cands given the upper bounds chosen so far.
func (e *engine) dfs(depth, sum int, cands []candidate) {
	if e.tick() {
		return
	}
	if depth == len(e.trains) {
		e.leaf()

		return
	}
	for i := range cands {
		c := &cands[i]
		bound := sum + c.max + e.rest[depth+1]
		if int64(bound) <= e.sh.best.Load() {
			// Candidates are sorted, so no later sibling can do better.
			return
		}
		if c.run != nil && overlaps(e.used, c.edges) {
			continue
		}
		toggle(e.used, c.edges)
		e.chosen[depth] = c
		var next []candidate
		if depth+1 < len(e.trains) {
			next = e.trains[depth+1]
		}
		e.dfs(depth+1, sum+c.max, next)
		e.chosen[depth] = nil
		toggle(e.used, c.edges)
		if e.stop {
			return
		}
	}
}

// leaf values a complete assignment with the game's set rules.
func (e *engine) leaf() {
	var runs []*route.Run
	for _, c := range e.chosen {
		if c.run != nil {
			runs = append(runs, c.run)
		}
	}
	var values []int
	if len(runs) > 0 {
		var err error
		if values, err = e.valuer.RouteSetValues(runs, e.rr); err != nil {
			e.halt(fmt.Errorf("optimize: route set values: %w", err))

			return
		}
		if len(values) != len(runs) {
			e.halt(fmt.Errorf("optimize: route set values: got %d values for %d runs", len(values), len(runs)))

			return
		}
	}
	total := 0
	for _, v := range values {
		total += v
	}
	if !e.found || total > e.bestTotal {
		e.found = true
		e.bestRuns = runs
		e.bestValues = values
		e.bestTotal = total
	}
	e.sh.raise(int64(total))
}

// prepare sorts each train's candidates by upper bound, appends the "no
// route" choice and builds the edge bitsets.
func prepare(candidates [][]*route.Run, v Valuer, rr *game.Railroad) ([][]candidate, []int, int) {
	index := make(map[route.Edge]int)
	for _, runs := range candidates {
		for _, run := range runs {
			for _, edge := range run.Route.Edges() {
				if _, ok := index[edge]; !ok {
					index[edge] = len(index)
				}
			}
		}
	}
	words := (len(index) + 63) / 64

	trains := make([][]candidate, len(candidates))
	for t, runs := range candidates {
		cs := make([]candidate, 0, len(runs)+1)
		for _, run := range runs {
			bits := make([]uint64, words)
			for _, edge := range run.Route.Edges() {
				i := index[edge]
				bits[i/64] |= 1 << (uint(i) % 64)
			}
			cs = append(cs, candidate{run: run, max: v.RouteMaxValue(run, rr), edges: bits})
		}
		sort.SliceStable(cs, func(i, j int) bool { return cs[i].max > cs[j].max })
		trains[t] = append(cs, candidate{})
	}

	rest := make([]int, len(trains)+1)
	for t := len(trains) - 1; t >= 0; t-- {
		best := trains[t][0].max
		if best < 0 {
			best = 0
		}
		rest[t] = rest[t+1] + best
	}

	return trains, rest, words
}

// chunk cuts n root choices into at most parts contiguous ranges.
func chunk(n, parts int) [][2]int {
	if parts < 1 {
		parts = 1
	}
	size := (n + parts - 1) / parts
	var out [][2]int
	for lo := 0; lo < n; lo += size {
		out = append(out, [2]int{lo, min(lo+size, n)})
	}

	return out
}

// Optimize returns the best non-overlapping set of runs, at most one per
// train, where candidates[i] holds the valued routes of the i-th train.
// A train with no candidates simply runs nothing.
func Optimize(rr *game.Railroad, candidates [][]*route.Run, v Valuer, opts ...Option) (*Result, error) {
	if len(candidates) == 0 {
		return nil, ErrNoTrains
	}
	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}
	if err := o.Ctx.Err(); err != nil {
		return nil, err
	}
	started := time.Now()

	trains, rest, words := prepare(candidates, v, rr)
	chunks := chunk(len(trains[0]), o.Workers*o.ChunksPerWorker)
	o.Logger.Info("optimizing route sets",
		"railroad", rr.Name, "trains", len(trains), "root_choices", len(trains[0]),
		"workers", o.Workers, "chunks", len(chunks))

	sh := &shared{}
	engines := make([]*engine, len(chunks))
	g, ctx := errgroup.WithContext(o.Ctx)
	g.SetLimit(o.Workers)
	for i, span := range chunks {
		e := &engine{
			ctx:       ctx,
			rr:        rr,
			valuer:    v,
			trains:    trains,
			rest:      rest,
			sh:        sh,
			nodeLimit: o.NodeLimit,
			used:      make([]uint64, words),
			chosen:    make([]*candidate, len(trains)),
		}
		if o.TimeLimit > 0 {
			e.useDeadline = true
			e.deadline = started.Add(o.TimeLimit)
		}
		engines[i] = e
		root := trains[0][span[0]:span[1]]
		g.Go(func() error {
			defer e.flush()
			if e.check() {
				return e.err
			}
			e.dfs(0, 0, root)
			o.Logger.Debug("chunk done", "chunk", i, "found", e.found, "value", e.bestTotal)

			return e.err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var winner *engine
	for _, e := range engines {
		if e.found && (winner == nil || e.bestTotal > winner.bestTotal) {
			winner = e
		}
	}
	res := &Result{Exhaustive: !sh.truncated.Load(), Nodes: sh.nodes.Load()}
	if winner != nil {
		res.Set = route.NewSet(winner.bestRuns, winner.bestValues)
	} else {
		res.Set = route.NewSet(nil, nil)
	}
	o.Logger.Info("optimized route sets",
		"railroad", rr.Name, "value", res.Set.Value, "nodes", res.Nodes,
		"exhaustive", res.Exhaustive, "elapsed", time.Since(started))

	return res, nil
}
