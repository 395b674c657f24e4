package game

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrUnknownTrain indicates a train name that the game does not define.
var ErrUnknownTrain = errors.New("game: unknown train")

// Unlimited is the visit or collection limit of trains that have none.
const Unlimited = math.MaxInt32

// Train is a railroad asset that runs one route per operating round.
//
// Visit is the maximum number of stops a route may touch; Collect is the
// maximum number of those stops whose value counts. A "4/6" train visits up
// to 6 stops and is paid for the best 4. Trains compare equal by limits.
type Train struct {
	Name    string
	Collect int
	Visit   int
	// Phase is the game phase the train's appearance starts.
	Phase string
}

// TrainDefinition is the serialisable form of a Train. Zero Collect means
// unlimited; zero Visit means "same as Collect".
type TrainDefinition struct {
	Name    string `yaml:"name"`
	Collect int    `yaml:"collect"`
	Visit   int    `yaml:"visit"`
	Phase   string `yaml:"phase"`
}

// NewTrain builds a Train, applying the defaults described on TrainDefinition.
func NewTrain(def TrainDefinition) Train {
	collect := def.Collect
	if collect <= 0 {
		collect = Unlimited
	}
	visit := def.Visit
	if visit <= 0 {
		visit = collect
	}
	name := def.Name
	if name == "" {
		name = trainName(collect, visit)
	}

	return Train{Name: name, Collect: collect, Visit: visit, Phase: def.Phase}
}

func trainName(collect, visit int) string {
	switch {
	case collect == Unlimited:
		return "diesel"
	case collect == visit:
		return strconv.Itoa(collect)
	default:
		return fmt.Sprintf("%d / %d", collect, visit)
	}
}

// NormalizeTrainName maps user spellings ("4/6", "4 / 6", "D", "diesel", "2")
// to the canonical train name.
func NormalizeTrainName(s string) (string, error) {
	parts := strings.Split(s, "/")
	if len(parts) > 2 || strings.TrimSpace(parts[0]) == "" {
		return "", fmt.Errorf("%w: %q", ErrUnknownTrain, s)
	}
	collect, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		collect = Unlimited
	}
	visit := collect
	if len(parts) == 2 {
		if visit, err = strconv.Atoi(strings.TrimSpace(parts[1])); err != nil {
			return "", fmt.Errorf("%w: %q", ErrUnknownTrain, s)
		}
	}

	return trainName(collect, visit), nil
}

// String returns the train name.
func (t Train) String() string { return t.Name }

// Same reports whether two trains have the same limits.
func (t Train) Same(o Train) bool {
	return t.Collect == o.Collect && t.Visit == o.Visit
}

// UnlimitedCollect reports whether every visited stop counts.
func (t Train) UnlimitedCollect() bool { return t.Collect == Unlimited }

// TrainCatalog is the list of trains a game defines.
type TrainCatalog []Train

// Lookup resolves a single train by any accepted spelling.
func (c TrainCatalog) Lookup(s string) (Train, error) {
	name, err := NormalizeTrainName(s)
	if err != nil {
		return Train{}, err
	}
	for _, t := range c {
		if t.Name == name {
			return t, nil
		}
	}

	return Train{}, fmt.Errorf("%w: %q", ErrUnknownTrain, s)
}

// Parse resolves a comma-separated train list. Blank entries are skipped.
func (c TrainCatalog) Parse(list string) ([]Train, error) {
	var out []Train
	for _, s := range strings.Split(list, ",") {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		t, err := c.Lookup(s)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}

	return out, nil
}
