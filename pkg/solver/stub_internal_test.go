package solver

import "testing"

func costsEqual(a, b []uint64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func containsCosts(front []Point, costs []uint64) bool {
	for _, p := range front {
		if costsEqual(p.Costs, costs) {
			return true
		}
	}
	return false
}

// TestInsertNonDominatedKeepsDominatingIncumbent guards against dropping an
// existing front point when it turns out to dominate a later-arriving one:
// the incumbent must survive, only the new (dominated) point is discarded.
func TestInsertNonDominatedKeepsDominatingIncumbent(t *testing.T) {
	var front []Point
	front = insertNonDominated(front, []uint64{0, 5, 5}, []bool{false, false})
	front = insertNonDominated(front, []uint64{5, 0, 5}, []bool{true, false})
	front = insertNonDominated(front, []uint64{5, 5, 0}, []bool{false, true})
	// Dominated by {0,5,5} in every coordinate; must be discarded, and
	// {0,5,5} itself must remain in the front.
	front = insertNonDominated(front, []uint64{1, 6, 6}, []bool{true, true})

	if len(front) != 3 {
		t.Fatalf("expected 3 surviving points, got %d: %+v", len(front), front)
	}
	for _, want := range [][]uint64{{0, 5, 5}, {5, 0, 5}, {5, 5, 0}} {
		if !containsCosts(front, want) {
			t.Fatalf("front %+v missing expected point %v", front, want)
		}
	}
	if containsCosts(front, []uint64{1, 6, 6}) {
		t.Fatalf("front %+v should not contain the dominated point", front)
	}
}
