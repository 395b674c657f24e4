package finder

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/katalvlaran/routes18xx/board"
	"github.com/katalvlaran/routes18xx/game"
	"github.com/katalvlaran/routes18xx/optimize"
	"github.com/katalvlaran/routes18xx/route"
	"github.com/katalvlaran/routes18xx/rules"
	"github.com/katalvlaran/routes18xx/search"
)

// Option configures FindBestRoutes.
type Option func(*Options)

// Options holds the finder configuration.
type Options struct {
	Hooks  rules.Hooks
	Logger *slog.Logger
	// Optimize is passed through to optimize.Optimize.
	Optimize []optimize.Option
}

// DefaultOptions returns the default rules and a silent logger.
func DefaultOptions() Options {
	return Options{
		Hooks:  rules.Default{},
		Logger: slog.New(slog.DiscardHandler),
	}
}

// WithHooks sets the game rule hooks. Nil is ignored.
func WithHooks(h rules.Hooks) Option {
	return func(o *Options) {
		if h != nil {
			o.Hooks = h
		}
	}
}

// WithLogger sets the logger. Nil is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithWorkers sets the optimizer's worker count.
func WithWorkers(n int) Option {
	return func(o *Options) { o.Optimize = append(o.Optimize, optimize.WithWorkers(n)) }
}

// WithTimeLimit caps the optimizer's running time.
func WithTimeLimit(d time.Duration) Option {
	return func(o *Options) { o.Optimize = append(o.Optimize, optimize.WithTimeLimit(d)) }
}

// WithNodeLimit caps the optimizer's search nodes.
func WithNodeLimit(n int64) Option {
	return func(o *Options) { o.Optimize = append(o.Optimize, optimize.WithNodeLimit(n)) }
}

// Result is the answer for one railroad.
type Result struct {
	// RunID tags every log line of the call.
	RunID string
	// Phase is the game phase the routes were valued in.
	Phase string
	Set   *route.Set
	// Routes is the number of candidate routes over all trains.
	Routes int
	// Exhaustive is false when an optimizer limit cut the search short.
	Exhaustive bool
	Nodes      int64
	Elapsed    time.Duration
}

// FindBestRoutes returns active's best set of runs on b. railroads are all
// the railroads in play, used to set the game phase. A railroad without
// trains gets an empty set.
//
// Calls sharing a board may run concurrently as long as they pass the same
// railroads, since each one stores the phase on the board's game.
func FindBestRoutes(ctx context.Context, b *board.Board, railroads []*game.Railroad, active *game.Railroad, opts ...Option) (*Result, error) {
	if err := active.CheckActive(); err != nil {
		return nil, fmt.Errorf("find routes: %w", err)
	}
	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}
	started := time.Now()
	res := &Result{RunID: uuid.NewString()}
	log := o.Logger.With("run", res.RunID)

	res.Phase = b.Game().CapturePhase(railroads)
	log.Info("finding best routes", "railroad", active.Name, "phase", res.Phase)
	if len(active.Trains) == 0 {
		res.Set = route.NewSet(nil, nil)
		res.Exhaustive = true
		res.Elapsed = time.Since(started)
		log.Info("railroad has no trains", "railroad", active.Name)

		return res, nil
	}

	routes, err := search.FindAll(b, active,
		search.WithContext(ctx), search.WithLogger(log), search.WithFilter(o.Hooks))
	if err != nil {
		return nil, err
	}

	candidates := make([][]*route.Run, len(routes))
	for i, rs := range routes {
		train := active.Trains[i]
		candidates[i] = make([]*route.Run, 0, len(rs))
		for _, r := range rs {
			run, err := route.Evaluate(r, b, active, train)
			if err != nil {
				return nil, err
			}
			candidates[i] = append(candidates[i], run)
		}
		res.Routes += len(rs)
		log.Debug("valued routes", "train", train.Name, "routes", len(rs))
	}

	optOpts := append([]optimize.Option{optimize.WithContext(ctx), optimize.WithLogger(log)}, o.Optimize...)
	best, err := optimize.Optimize(active, candidates, o.Hooks, optOpts...)
	if err != nil {
		return nil, err
	}
	res.Set = best.Set
	res.Exhaustive = best.Exhaustive
	res.Nodes = best.Nodes
	res.Elapsed = time.Since(started)
	log.Info("best routes found", "railroad", active.Name, "value", res.Set.Value, "elapsed", res.Elapsed)

	return res, nil
}
