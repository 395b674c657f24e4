package search

import (
	"context"
	"log/slog"

	"github.com/katalvlaran/routes18xx/board"
	"github.com/katalvlaran/routes18xx/game"
	"github.com/katalvlaran/routes18xx/route"
)

// Filter rejects routes that break a game's own rules.
type Filter interface {
	FilterInvalidRoutes(routes []*route.Route, b *board.Board, rr *game.Railroad) ([]*route.Route, error)
}

// Option configures FindRoutes, FindAll and Walk.
type Option func(*Options)

// Options holds the search configuration.
type Options struct {
	// Ctx allows cancellation; defaults to context.Background().
	Ctx context.Context
	// Logger receives progress; defaults to a discarding logger.
	Logger *slog.Logger
	// Filter, if non-nil, runs after the structural filter.
	Filter Filter
}

// DefaultOptions returns a background context, a silent logger and no filter.
func DefaultOptions() Options {
	return Options{
		Ctx:    context.Background(),
		Logger: slog.New(slog.DiscardHandler),
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

// WithLogger sets the logger. A nil logger is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithFilter installs a game rule filter.
func WithFilter(f Filter) Option {
	return func(o *Options) {
		o.Filter = f
	}
}
