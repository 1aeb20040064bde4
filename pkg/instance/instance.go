// Package instance defines the Boolean variable/literal/clause data model
// and the multi-objective weighted-CNF instance it assembles into.
package instance

import (
	"fmt"
	"strings"
)

// Var is a zero-based Boolean variable index.
type Var uint32

// Lit is a (variable, negated?) pair.
type Lit struct {
	V   Var
	Neg bool
}

// NewLit builds a literal over v with the given polarity.
func NewLit(v Var, neg bool) Lit {
	return Lit{V: v, Neg: neg}
}

// Negate returns the complementary literal.
func (l Lit) Negate() Lit {
	return Lit{V: l.V, Neg: !l.Neg}
}

// Eval reports the truth value of l under an assignment that maps l.V to a
// Boolean.
func (l Lit) Eval(value bool) bool {
	if l.Neg {
		return !value
	}
	return value
}

// String renders the literal in DIMACS-like notation, 1-indexed.
func (l Lit) String() string {
	if l.Neg {
		return fmt.Sprintf("-%d", l.V+1)
	}
	return fmt.Sprintf("%d", l.V+1)
}

// Clause is an ordered sequence of literals. The type does not reject a
// repeated variable; HasVar lets a builder check before appending.
type Clause []Lit

// HasVar reports whether v already appears in c, regardless of polarity.
func (c Clause) HasVar(v Var) bool {
	for _, l := range c {
		if l.V == v {
			return true
		}
	}
	return false
}

// Satisfied reports whether c is satisfied by assignment, a dense slice
// indexed by Var.
func (c Clause) Satisfied(assignment []bool) bool {
	for _, l := range c {
		if l.Eval(assignment[l.V]) {
			return true
		}
	}
	return false
}

func (c Clause) String() string {
	parts := make([]string, len(c))
	for i, l := range c {
		parts[i] = l.String()
	}
	return strings.Join(parts, " ")
}

// SoftClause is a clause annotated with the objective it contributes to and
// its positive integer weight.
type SoftClause struct {
	Clause Clause
	Weight uint64
}

// Instance is a set of hard clauses plus O objective lists of weighted soft
// clauses.
type Instance struct {
	NumVars       int
	NumObjectives int
	Hard          []Clause
	Soft          [][]SoftClause // len == NumObjectives
}

// New builds an empty instance ready to be populated incrementally (used by
// both the generator and the mcnf reader).
func New(numVars, numObjectives int) *Instance {
	return &Instance{
		NumVars:       numVars,
		NumObjectives: numObjectives,
		Soft:          make([][]SoftClause, numObjectives),
	}
}

// HardClauses returns the instance's hard-clause set.
func (inst *Instance) HardClauses() []Clause {
	return inst.Hard
}

// Objectives returns the per-objective soft-clause lists.
func (inst *Instance) Objectives() [][]SoftClause {
	return inst.Soft
}

// AddHard appends a hard clause.
func (inst *Instance) AddHard(c Clause) {
	inst.Hard = append(inst.Hard, c)
	inst.growTo(c)
}

// AddSoft appends a soft clause under objective o.
func (inst *Instance) AddSoft(o int, c Clause, weight uint64) {
	for len(inst.Soft) <= o {
		inst.Soft = append(inst.Soft, nil)
	}
	inst.Soft[o] = append(inst.Soft[o], SoftClause{Clause: c, Weight: weight})
	if o+1 > inst.NumObjectives {
		inst.NumObjectives = o + 1
	}
	inst.growTo(c)
}

func (inst *Instance) growTo(c Clause) {
	for _, l := range c {
		if int(l.V)+1 > inst.NumVars {
			inst.NumVars = int(l.V) + 1
		}
	}
}

// Evaluate computes the per-objective cost vector of assignment, a dense
// slice indexed by Var with len == NumVars. It returns ok == false if any
// hard clause is falsified.
func (inst *Instance) Evaluate(assignment []bool) (costs []uint64, ok bool) {
	for _, c := range inst.Hard {
		if !c.Satisfied(assignment) {
			return nil, false
		}
	}
	costs = make([]uint64, inst.NumObjectives)
	for o, softs := range inst.Soft {
		var sum uint64
		for _, sc := range softs {
			if !sc.Clause.Satisfied(assignment) {
				sum += sc.Weight
			}
		}
		costs[o] = sum
	}
	return costs, true
}
