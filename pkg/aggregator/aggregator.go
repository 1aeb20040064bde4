// Package aggregator keeps the bidirectional instance-seed <-> solver
// index of fuzzing findings, mirroring the upstream fuzzer's FuzzResult.
package aggregator

import "github.com/chrjabs/fazer/pkg/oracle"

// Results is an append-only, bidirectional index of findings collected
// over a fuzz run.
type Results struct {
	seen       map[uint64]bool
	byInstance map[uint64][]oracle.Finding
	bySolver   map[string][]InstanceProblem
}

// InstanceProblem pairs a problem with the seed of the instance it was
// found in, for the by-solver index.
type InstanceProblem struct {
	Seed    uint64
	Problem oracle.Problem
}

// New builds an empty Results.
func New() *Results {
	return &Results{
		seen:       make(map[uint64]bool),
		byInstance: make(map[uint64][]oracle.Finding),
		bySolver:   make(map[string][]InstanceProblem),
	}
}

// Seen reports whether seed has already been tested, used by the fuzz
// driver to reject duplicate instance seeds regardless of whether that
// instance turned up a problem.
func (r *Results) Seen(seed uint64) bool {
	return r.seen[seed]
}

// Record marks seed as tested and appends its findings to both indexes.
func (r *Results) Record(seed uint64, findings []oracle.Finding) {
	r.seen[seed] = true
	for _, f := range findings {
		r.bySolver[f.SolverID] = append(r.bySolver[f.SolverID], InstanceProblem{Seed: seed, Problem: f.Problem})
	}
	if len(findings) > 0 {
		r.byInstance[seed] = append(r.byInstance[seed], findings...)
	}
}

// NProblems returns the total number of findings recorded.
func (r *Results) NProblems() int {
	n := 0
	for _, fs := range r.byInstance {
		n += len(fs)
	}
	return n
}

// NSolverProblems returns the number of findings recorded against solver.
func (r *Results) NSolverProblems(solver string) int {
	return len(r.bySolver[solver])
}

// NInstanceProblems returns the number of findings recorded for instance
// seed.
func (r *Results) NInstanceProblems(seed uint64) int {
	return len(r.byInstance[seed])
}

// InstanceProblems iterates the by-instance index.
func (r *Results) InstanceProblems(fn func(seed uint64, findings []oracle.Finding)) {
	for seed, findings := range r.byInstance {
		fn(seed, findings)
	}
}

// SolverProblems iterates the by-solver index.
func (r *Results) SolverProblems(fn func(solver string, problems []InstanceProblem)) {
	for solver, problems := range r.bySolver {
		fn(solver, problems)
	}
}
