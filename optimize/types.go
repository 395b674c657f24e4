package optimize

import (
	"context"
	"errors"
	"log/slog"
	"runtime"
	"time"

	"github.com/katalvlaran/routes18xx/game"
	"github.com/katalvlaran/routes18xx/route"
)

// ErrNoTrains indicates an optimization request without any train.
var ErrNoTrains = errors.New("optimize: no trains to assign")

// Valuer applies the game's combination rules.
//
// RouteMaxValue must never be lower than any value RouteSetValues could give
// the same run in some set.
type Valuer interface {
	RouteSetValues(runs []*route.Run, rr *game.Railroad) ([]int, error)
	RouteMaxValue(run *route.Run, rr *game.Railroad) int
}

// Option configures Optimize.
type Option func(*Options)

// Options holds the optimizer configuration.
type Options struct {
	// Ctx cancels the search; defaults to context.Background().
	Ctx context.Context
	// Workers is the number of concurrent searches; defaults to half the CPUs.
	Workers int
	// ChunksPerWorker splits the first train's choices this many times per worker.
	ChunksPerWorker int
	// TimeLimit stops the search after this long; 0 means no limit.
	TimeLimit time.Duration
	// NodeLimit stops the search after this many nodes; 0 means no limit.
	NodeLimit int64
	// Logger receives progress; defaults to a discarding logger.
	Logger *slog.Logger
}

// Result is the best set found and how the search ended.
type Result struct {
	Set *route.Set
	// Exhaustive is false when a time or node limit cut the search short.
	Exhaustive bool
	// Nodes is the number of search nodes expanded.
	Nodes int64
}

// DefaultOptions returns max(1, NumCPU/2) workers, one chunk per worker and
// no limits.
func DefaultOptions() Options {
	return Options{
		Ctx:             context.Background(),
		Workers:         max(1, runtime.NumCPU()/2),
		ChunksPerWorker: 1,
		Logger:          slog.New(slog.DiscardHandler),
	}
}

// WithContext sets the cancellation context. A nil ctx is ignored.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithWorkers sets the worker count. Values below 1 are ignored.
func WithWorkers(n int) Option {
	return func(o *Options) {
		if n >= 1 {
			o.Workers = n
		}
	}
}

// WithChunksPerWorker sets how finely the first train's choices are split.
// Values below 1 are ignored.
func WithChunksPerWorker(n int) Option {
	return func(o *Options) {
		if n >= 1 {
			o.ChunksPerWorker = n
		}
	}
}

// WithTimeLimit bounds the wall-clock time of the search.
func WithTimeLimit(d time.Duration) Option {
	return func(o *Options) {
		o.TimeLimit = d
	}
}

// WithNodeLimit bounds the number of expanded search nodes.
func WithNodeLimit(n int64) Option {
	return func(o *Options) {
		o.NodeLimit = n
	}
}

// WithLogger sets the logger. A nil logger is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}
