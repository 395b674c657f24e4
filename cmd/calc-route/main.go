// Command calc-route prints a railroad's best routes for a table state.
//
// Usage:
//
//	calc-route [flags] <game> <railroad> <board.csv> <railroads.csv>
//
// Board state rows are "coord; tile_id; orientation". Railroad rows are
// "name; trains; stations; branch..." with trains "removed" for a closed
// railroad. Private company rows (-p) are "name; owner; coord".
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/katalvlaran/routes18xx/finder"
	"github.com/katalvlaran/routes18xx/gamedata"
	"github.com/katalvlaran/routes18xx/rules"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "calc-route:", err)
		os.Exit(1)
	}
}

type config struct {
	verbose   bool
	privates  string
	dataDir   string
	workers   int
	timeLimit time.Duration
	nodeLimit int64

	game, railroad, boardState, railroads string
}

func parseArgs(args []string, stderr io.Writer) (*config, error) {
	fs := flag.NewFlagSet("calc-route", flag.ContinueOnError)
	fs.SetOutput(stderr)
	cfg := &config{}
	fs.BoolVar(&cfg.verbose, "v", false, "log every route searched")
	fs.StringVar(&cfg.privates, "p", "", "private companies CSV: name; owner; coord")
	fs.StringVar(&cfg.dataDir, "data", "data", "directory holding one sub-directory of YAML files per game")
	fs.IntVar(&cfg.workers, "workers", 0, "optimizer workers (0: half the CPUs)")
	fs.DurationVar(&cfg.timeLimit, "timeout", 0, "stop optimizing after this long and print the best found (0: none)")
	fs.Int64Var(&cfg.nodeLimit, "nodes", 0, "stop optimizing after this many search nodes (0: none)")
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "usage: calc-route [flags] <game> <railroad> <board.csv> <railroads.csv>")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 4 {
		fs.Usage()

		return nil, fmt.Errorf("want 4 arguments, got %d", fs.NArg())
	}
	cfg.game, cfg.railroad, cfg.boardState, cfg.railroads = fs.Arg(0), fs.Arg(1), fs.Arg(2), fs.Arg(3)

	return cfg, nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cfg, err := parseArgs(args, stderr)
	if err != nil {
		return err
	}
	level := slog.LevelInfo
	if cfg.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	variant, err := rules.Lookup(cfg.game)
	if errors.Is(err, rules.ErrUnknownGame) {
		logger.Warn("no game rules registered, using defaults", "game", cfg.game)
		variant, err = rules.Lookup("default")
	}
	if err != nil {
		return err
	}

	data, err := gamedata.Load(os.DirFS(filepath.Join(cfg.dataDir, cfg.game)))
	if err != nil {
		return fmt.Errorf("game %s: %w", cfg.game, err)
	}
	b, err := withFile(cfg.boardState, data.LoadBoardState)
	if err != nil {
		return err
	}
	rrs, err := withFile(cfg.railroads, func(r io.Reader) (gamedata.Railroads, error) {
		return data.LoadRailroads(b, r)
	})
	if err != nil {
		return err
	}
	if cfg.privates != "" {
		assignments, err := withFile(cfg.privates, gamedata.LoadPrivates)
		if err != nil {
			return err
		}
		if err := rules.ApplyPrivates(variant, b, rrs, assignments); err != nil {
			return err
		}
	}
	if err := b.Validate(); err != nil {
		return err
	}

	active, ok := rrs[cfg.railroad]
	if !ok {
		return fmt.Errorf("%w: %q is not in %s", gamedata.ErrUnknownRailroad, cfg.railroad, cfg.railroads)
	}
	opts := []finder.Option{
		finder.WithHooks(variant),
		finder.WithLogger(logger),
		finder.WithTimeLimit(cfg.timeLimit),
		finder.WithNodeLimit(cfg.nodeLimit),
	}
	if cfg.workers > 0 {
		opts = append(opts, finder.WithWorkers(cfg.workers))
	}
	res, err := finder.FindBestRoutes(ctx, b, rrs.List(), active, opts...)
	if err != nil {
		return err
	}
	printResult(stdout, res)

	return nil
}

func withFile[T any](path string, load func(io.Reader) (T, error)) (T, error) {
	var zero T
	f, err := os.Open(path)
	if err != nil {
		return zero, err
	}
	defer f.Close()
	v, err := load(f)
	if err != nil {
		return zero, fmt.Errorf("%s: %w", path, err)
	}

	return v, nil
}

func printResult(w io.Writer, res *finder.Result) {
	fmt.Fprintln(w, "RESULT")
	for i, run := range res.Set.Runs {
		fmt.Fprintf(w, "%s: %s = %d (%s)\n", run.Train, run.Route, res.Set.Values[i], run)
	}
	var notes []string
	if !res.Exhaustive {
		notes = append(notes, "search cut short")
	}
	fmt.Fprintf(w, "total %d from %s routes, %s nodes in %s%s\n",
		res.Set.Value,
		humanize.Comma(int64(res.Routes)),
		humanize.Comma(res.Nodes),
		res.Elapsed.Round(time.Millisecond),
		strings.Join(append([]string{""}, notes...), ", "))
}
