package game

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrTrainLimit indicates a railroad holds trains the current phase does not allow.
var ErrTrainLimit = errors.New("game: train limit exceeded")

// TrainLimit caps how many trains of a category a railroad may hold.
// A limit either lists train names directly or nests sub-categories.
type TrainLimit struct {
	Trains     []string     `yaml:"trains"`
	Categories []TrainLimit `yaml:"categories"`
	// Total is the cap for the whole category; zero means no cap.
	Total int `yaml:"total"`
}

// TrainLimits maps a phase to the limit in force during that phase.
type TrainLimits map[string]TrainLimit

// names returns every canonical train name covered by l.
func (l TrainLimit) names() (map[string]bool, error) {
	out := make(map[string]bool)
	for _, s := range l.Trains {
		name, err := NormalizeTrainName(s)
		if err != nil {
			return nil, err
		}
		out[name] = true
	}
	for _, sub := range l.Categories {
		names, err := sub.names()
		if err != nil {
			return nil, err
		}
		for n := range names {
			out[n] = true
		}
	}

	return out, nil
}

func (l TrainLimit) validate(rr *Railroad) error {
	names, err := l.names()
	if err != nil {
		return err
	}
	var held []string
	for _, t := range rr.Trains {
		if names[t.Name] {
			held = append(held, t.Name)
		}
	}
	if l.Total > 0 && len(held) > l.Total {
		category := make([]string, 0, len(names))
		for n := range names {
			category = append(category, n)
		}
		sort.Strings(category)
		sort.Strings(held)

		return fmt.Errorf("%w: max %d trains of %s; %s has %d: %s",
			ErrTrainLimit, l.Total, strings.Join(category, ", "), rr.Name, len(held), strings.Join(held, ", "))
	}
	for _, sub := range l.Categories {
		if err := sub.validate(rr); err != nil {
			return err
		}
	}

	return nil
}

// Validate checks rr's trains against the limit of the game's current phase:
// every train must be legal in the phase and no category may be over its total.
// Phases without a limit entry accept anything.
func (ls TrainLimits) Validate(g *Game, rr *Railroad) error {
	if g.Phase() == "" {
		return ErrPhaseNotSet
	}
	limit, ok := ls[g.Phase()]
	if !ok {
		return nil
	}
	names, err := limit.names()
	if err != nil {
		return err
	}
	var invalid []string
	for _, t := range rr.Trains {
		if !names[t.Name] {
			invalid = append(invalid, t.Name)
		}
	}
	if len(invalid) > 0 {
		sort.Strings(invalid)

		return fmt.Errorf("%w: %s has invalid trains for phase %s: %s",
			ErrTrainLimit, rr.Name, g.Phase(), strings.Join(invalid, ", "))
	}

	return limit.validate(rr)
}
