package solver

import "github.com/chrjabs/fazer/pkg/instance"

// StubBackend is a brute-force reference implementation: it enumerates
// every assignment and keeps the non-dominated cost vectors. It exists so
// `evaluate`/`fuzz` have something runnable without a real external
// solver engine wired in; it is only tractable for small instances (a
// few dozen variables at most), far smaller than most instances the
// generator's default configuration produces.
type StubBackend struct{}

// Run implements Backend.
func (s *StubBackend) Run(inst *instance.Instance) (ParetoFront, error) {
	n := inst.NumVars
	assignment := make([]bool, n)

	var front []Point
	total := uint64(1) << uint(n)
	for bits := uint64(0); bits < total; bits++ {
		for i := 0; i < n; i++ {
			assignment[i] = bits&(1<<uint(i)) != 0
		}
		costs, ok := inst.Evaluate(assignment)
		if !ok {
			continue
		}
		front = insertNonDominated(front, costs, assignment)
	}
	return ParetoFront{Points: front}, nil
}

// insertNonDominated folds one (costs, witness) pair into front, keeping
// only non-dominated points and merging witnesses of equal-cost points.
func insertNonDominated(front []Point, costs []uint64, assignment []bool) []Point {
	witness := append([]bool(nil), assignment...)

	out := front[:0:0]
	dominated := false
	equalIdx := -1
	for i, p := range front {
		switch dominance(costs, p.Costs) {
		case relSecondDominates: // existing point dominates the new one
			dominated = true
			out = append(out, p)
		case relFirstDominates: // new point dominates the existing one
			continue
		case relEqual:
			equalIdx = i
			out = append(out, p)
		default:
			out = append(out, p)
		}
	}
	if dominated {
		return out
	}
	if equalIdx >= 0 {
		for i := range out {
			if equal(out[i].Costs, costs) {
				out[i].Witnesses = append(out[i].Witnesses, witness)
				return out
			}
		}
	}
	out = append(out, Point{Costs: costs, Witnesses: [][]bool{witness}})
	return out
}

type relation int

const (
	relIncomparable relation = iota
	relFirstDominates
	relSecondDominates
	relEqual
)

func dominance(a, b []uint64) relation {
	aLE, bLE := true, true
	for i := range a {
		if a[i] > b[i] {
			aLE = false
		}
		if b[i] > a[i] {
			bLE = false
		}
	}
	switch {
	case aLE && bLE:
		return relEqual
	case aLE:
		return relFirstDominates
	case bLE:
		return relSecondDominates
	default:
		return relIncomparable
	}
}

func equal(a, b []uint64) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
