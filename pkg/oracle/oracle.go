package oracle

import (
	"fmt"
	"sort"

	"github.com/chrjabs/fazer/pkg/instance"
	"github.com/chrjabs/fazer/pkg/solver"
)

type survivor struct {
	id    string
	front solver.ParetoFront
}

// Compare runs every solver in solvers against inst via sched, self-checks
// each returned front, and cross-checks the survivors against each other.
// It is a six-stage pipeline: fan-out, self-check, length filter, joint
// non-dominated set construction, dedup, final cross-check.
func Compare(inst *instance.Instance, solvers map[string]solver.Backend, sched *Scheduler) []Finding {
	ids := make([]string, 0, len(solvers))
	for id := range solvers {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	// Stage 1: fan-out.
	fronts := make([]solver.ParetoFront, len(ids))
	panics := make([]bool, len(ids))
	jobs := make([]func(), len(ids))
	for i, id := range ids {
		i, id := i, id
		jobs[i] = func() {
			front, ok := runIsolated(solvers[id], inst)
			if !ok {
				panics[i] = true
				return
			}
			fronts[i] = front
		}
	}
	sched.Run(jobs)

	var findings []Finding
	survivors := make([]survivor, 0, len(ids))
	for i, id := range ids {
		if panics[i] {
			findings = append(findings, Finding{SolverID: id, Problem: newProblem(Panic)})
			continue
		}
		survivors = append(survivors, survivor{id: id, front: fronts[i]})
	}

	// Stage 2: per-front self-check.
	survivors, selfFindings := selfCheck(inst, survivors)
	findings = append(findings, selfFindings...)

	// Stage 3: length filter.
	survivors, lenFindings := lengthFilter(survivors)
	findings = append(findings, lenFindings...)
	if len(survivors) <= 1 {
		return findings
	}
	if len(survivors[0].front.Points) == 0 {
		return findings
	}

	// Stage 4: joint non-dominated set construction.
	nonDom, crossFindings, remaining := buildJointSet(survivors)
	findings = append(findings, crossFindings...)
	if len(remaining) <= 1 {
		return findings
	}

	// Stage 5: dedup.
	nonDom = dedup(nonDom)

	// Stage 6: final cross-check.
	findings = append(findings, finalCrossCheck(remaining, nonDom)...)

	return findings
}

// runIsolated calls backend.Run under a recover boundary so an abnormal
// termination surfaces as ok==false instead of unwinding the caller.
func runIsolated(backend solver.Backend, inst *instance.Instance) (front solver.ParetoFront, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			ok = false
		}
	}()
	f, err := backend.Run(inst)
	if err != nil {
		return solver.ParetoFront{}, false
	}
	return f, true
}

func selfCheck(inst *instance.Instance, in []survivor) ([]survivor, []Finding) {
	var findings []Finding
	out := make([]survivor, 0, len(in))

front:
	for _, s := range in {
		pts := s.front.Points
		for idx, p := range pts {
			if len(p.Costs) != inst.NumObjectives {
				findings = append(findings, Finding{SolverID: s.id, Problem: Problem{Kind: WrongDimension, NdomIdx: idx, SolIdx: -1}})
				continue front
			}
		}
		for idx, p := range pts {
			for solIdx, witness := range p.Witnesses {
				costs, ok := inst.Evaluate(witness)
				if !ok {
					findings = append(findings, Finding{SolverID: s.id, Problem: Problem{Kind: UnsatSol, NdomIdx: idx, SolIdx: solIdx}})
					continue front
				}
				if !equalCosts(costs, p.Costs) {
					findings = append(findings, Finding{SolverID: s.id, Problem: Problem{Kind: CostMismatch, NdomIdx: idx, SolIdx: solIdx}})
					continue front
				}
			}
		}
		for i := 0; i < len(pts); i++ {
			problemFound := false
			for j := i + 1; j < len(pts); j++ {
				switch dominance(pts[i].Costs, pts[j].Costs) {
				case relEqual:
					findings = append(findings, Finding{SolverID: s.id, Problem: Problem{Kind: Repeated, NdomIdx: i, SolIdx: j}})
					problemFound = true
				case relFirstDominates:
					findings = append(findings, Finding{SolverID: s.id, Problem: Problem{Kind: SelfDominated, NdomIdx: j, SolIdx: -1}})
					problemFound = true
				case relSecondDominates:
					findings = append(findings, Finding{SolverID: s.id, Problem: Problem{Kind: SelfDominated, NdomIdx: i, SolIdx: -1}})
					problemFound = true
				}
				if problemFound {
					break
				}
			}
			if problemFound {
				continue front
			}
		}
		out = append(out, s)
	}
	return out, findings
}

func lengthFilter(in []survivor) ([]survivor, []Finding) {
	max := 0
	for _, s := range in {
		if len(s.front.Points) > max {
			max = len(s.front.Points)
		}
	}
	var findings []Finding
	out := make([]survivor, 0, len(in))
	for _, s := range in {
		if len(s.front.Points) < max {
			findings = append(findings, Finding{SolverID: s.id, Problem: newProblem(Short)})
			continue
		}
		out = append(out, s)
	}
	return out, findings
}

func buildJointSet(in []survivor) ([][]uint64, []Finding, []survivor) {
	first := in[0]
	nonDom := make([][]uint64, len(first.front.Points))
	for i, p := range first.front.Points {
		nonDom[i] = append([]uint64(nil), p.Costs...)
	}

	var findings []Finding
	remaining := []survivor{first}

survivorLoop:
	for _, s := range in[1:] {
		for pIdx, p := range s.front.Points {
			appendRow := true
			for r := range nonDom {
				switch dominance(p.Costs, nonDom[r]) {
				case relIncomparable:
					continue
				case relFirstDominates:
					nonDom[r] = append([]uint64(nil), p.Costs...)
					appendRow = false
				case relSecondDominates:
					findings = append(findings, Finding{SolverID: s.id, Problem: Problem{Kind: OtherDominated, NdomIdx: pIdx, SolIdx: -1}})
					continue survivorLoop
				case relEqual:
					appendRow = false
				}
			}
			if appendRow {
				nonDom = append(nonDom, append([]uint64(nil), p.Costs...))
			}
		}
		remaining = append(remaining, s)
	}

	return nonDom, findings, remaining
}

func dedup(rows [][]uint64) [][]uint64 {
	out := rows[:0:0]
	for _, r := range rows {
		dup := false
		for _, o := range out {
			if equalCosts(r, o) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, r)
		}
	}
	return out
}

func finalCrossCheck(survivors []survivor, nonDom [][]uint64) []Finding {
	var findings []Finding
	for _, s := range survivors {
	points:
		for pIdx, p := range s.front.Points {
			for _, row := range nonDom {
				switch dominance(p.Costs, row) {
				case relFirstDominates:
					panic(fmt.Sprintf("oracle: internal invariant violated, %v dominates final non-dominated row %v", p.Costs, row))
				case relSecondDominates:
					findings = append(findings, Finding{SolverID: s.id, Problem: Problem{Kind: OtherDominated, NdomIdx: pIdx, SolIdx: -1}})
					continue points
				}
			}
		}
	}
	return findings
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

func equalCosts(a, b []uint64) bool {
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
