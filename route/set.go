package route

// Set is one candidate answer: at most one run per train, pairwise
// non-overlapping. Values holds each run's value after combination bonuses
// and Value is their sum.
type Set struct {
	Runs   []*Run
	Values []int
	Value  int
}

// NewSet pairs runs with their adjusted values. A nil values slice means
// every run keeps its own value.
func NewSet(runs []*Run, values []int) *Set {
	s := &Set{Runs: append([]*Run(nil), runs...), Values: make([]int, len(runs))}
	for i, run := range runs {
		v := run.Value
		if values != nil {
			v = values[i]
		}
		s.Values[i] = v
		s.Value += v
	}

	return s
}

// Disjoint reports whether no two runs share an edge.
func (s *Set) Disjoint() bool {
	for i := range s.Runs {
		for j := i + 1; j < len(s.Runs); j++ {
			if s.Runs[i].Overlap(s.Runs[j]) {
				return false
			}
		}
	}

	return true
}

// Len returns the number of runs.
func (s *Set) Len() int { return len(s.Runs) }
