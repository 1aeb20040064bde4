package generator

import (
	"github.com/chrjabs/fazer/pkg/instance"
	"github.com/chrjabs/fazer/pkg/random"
)

// weight draws a bounded weight for objective o, clamping near the 2^64-1
// envelope and collapsing the future weight range once clamped.
func (g *Generator) weight(o int) uint64 {
	g.nSoftLeft[o]--

	w := g.rng.Uint64Range(g.weightMin, g.weightMax)

	ceiling := ^uint64(0) - g.weightSum // (2^64 - 1) - weight_sum
	if w+g.nSoftLeft[o] >= ceiling {
		w = (^uint64(0) - 1) - g.weightSum - g.nSoftLeft[o]
		g.weightMin, g.weightMax = 1, 1
	}
	g.weightSum += w
	return w
}

// downwardLayer performs the "start at home, walk down with probability
// 1/2" layer selection used by layer-clause literal draws.
func (g *Generator) downwardLayer(home int) int {
	l := home
	for l > 0 && g.rng.Bool(0.5) {
		l--
	}
	return l
}

// drawLiteral draws one layer-clause literal: layer l's unused pool if
// non-empty, else a fresh random variable and polarity within the
// layer's range. Layer clauses are the only draws that consume the pool.
func (g *Generator) drawLiteral(l int) instance.Lit {
	ly := &g.layers[l]
	if len(ly.unused) > 0 {
		var lit instance.Lit
		lit, ly.unused = random.PopLit(g.rng, ly.unused)
		return lit
	}
	v := instance.Var(g.rng.IntRange(int(ly.lo), int(ly.hi)-1))
	return instance.NewLit(v, g.rng.Bool(0.5))
}

// layerClause draws one clause homed at layer lidx.
func (g *Generator) layerClause(lidx int) Line {
	ly := &g.layers[lidx]
	length := 3
	for length < MaxClauseLen && length < int(ly.hi) && g.rng.Bool(2.0/3.0) {
		length++
	}

	var weight uint64
	if ly.soft {
		weight = g.weight(ly.objective)
	}

	mark := make(map[instance.Var]bool, length)
	cl := make(instance.Clause, 0, length)
	for len(cl) < length {
		home := g.downwardLayer(lidx)
		lit := g.drawLiteral(home)
		if mark[lit.V] {
			continue
		}
		mark[lit.V] = true
		cl = append(cl, lit)
	}

	if ly.soft {
		return Line{Kind: LineSoft, Clause: cl, Objective: ly.objective, Weight: weight}
	}
	return Line{Kind: LineHard, Clause: cl}
}

// gadgetLit draws one literal for a gadget: a uniformly random layer, a
// random variable in its range, a random polarity. Gadget draws never
// consume a layer's unused pool; only layer clauses bias first-occurrence
// coverage.
func (g *Generator) gadgetLit() instance.Lit {
	ly := &g.layers[g.rng.IntRange(0, len(g.layers)-1)]
	v := instance.Var(g.rng.IntRange(int(ly.lo), int(ly.hi)-1))
	return instance.NewLit(v, g.rng.Bool(0.5))
}

// distinctLits draws n gadget literals whose variables are pairwise
// distinct.
func (g *Generator) distinctLits(n int) []instance.Lit {
	mark := make(map[instance.Var]bool, n)
	out := make([]instance.Lit, 0, n)
	for len(out) < n {
		lit := g.gadgetLit()
		if mark[lit.V] {
			continue
		}
		mark[lit.V] = true
		out = append(out, lit)
	}
	return out
}

func (g *Generator) freshBlockingLit() instance.Lit {
	v := g.nextFreeVar
	g.nextFreeVar++
	return instance.NewLit(v, false)
}

// eqClauses builds the (x ≡ y) gadget.
func (g *Generator) eqClauses(idx int) []Line {
	lits := g.distinctLits(2)
	v1, v2 := lits[0], lits[1]
	soft := g.gadgetSoft[g.eqOffset()+idx]

	if soft == 0 {
		return []Line{
			{Kind: LineHard, Clause: instance.Clause{v1, v2}},
			{Kind: LineHard, Clause: instance.Clause{v1.Negate(), v2.Negate()}},
		}
	}
	o := soft - 1
	b := g.freshBlockingLit()
	w := g.weight(o)
	return []Line{
		{Kind: LineHard, Clause: instance.Clause{b, v1, v2}},
		{Kind: LineHard, Clause: instance.Clause{b, v1.Negate(), v2.Negate()}},
		{Kind: LineSoft, Clause: instance.Clause{b.Negate()}, Objective: o, Weight: w},
	}
}

// andClauses builds the (lhs ↔ ⋀ rhs_i) gadget with the configured arity.
func (g *Generator) andClauses(idx int) []Line {
	arity := g.andArity[idx]
	lhsAndRhs := g.distinctLits(arity + 1)
	lhs := lhsAndRhs[0]
	rhs := lhsAndRhs[1:]
	soft := g.gadgetSoft[g.andOffset()+idx]

	long := make(instance.Clause, 0, arity+2)
	long = append(long, lhs)

	lines := make([]Line, 0, arity+2)
	if soft == 0 {
		long = append(long, rhs...)
		lines = append(lines, Line{Kind: LineHard, Clause: long})
		for _, r := range rhs {
			lines = append(lines, Line{Kind: LineHard, Clause: instance.Clause{lhs.Negate(), r.Negate()}})
		}
		return lines
	}

	o := soft - 1
	b := g.freshBlockingLit()
	w := g.weight(o)
	long = append(long, b)
	long = append(long, rhs...)
	lines = append(lines, Line{Kind: LineHard, Clause: long})
	for _, r := range rhs {
		lines = append(lines, Line{Kind: LineHard, Clause: instance.Clause{lhs.Negate(), r.Negate()}})
	}
	lines = append(lines, Line{Kind: LineSoft, Clause: instance.Clause{b.Negate()}, Objective: o, Weight: w})
	return lines
}

// xorParity3 returns the four clauses of the l0⊕l1⊕l2=1 parity constraint
// (each clause excludes one even-parity assignment), each optionally
// prefixed with a blocking literal.
func xorParity3(l0, l1, l2 instance.Lit, b *instance.Lit) []instance.Clause {
	base := [][3]instance.Lit{
		{l0, l1, l2},
		{l0, l1.Negate(), l2.Negate()},
		{l0.Negate(), l1, l2.Negate()},
		{l0.Negate(), l1.Negate(), l2},
	}
	out := make([]instance.Clause, len(base))
	for i, trio := range base {
		if b != nil {
			out[i] = instance.Clause{*b, trio[0], trio[1], trio[2]}
		} else {
			out[i] = instance.Clause{trio[0], trio[1], trio[2]}
		}
	}
	return out
}

// xor3Clauses builds the XOR3 gadget.
func (g *Generator) xor3Clauses(idx int) []Line {
	lits := g.freeLits(3)
	soft := g.gadgetSoft[g.xor3Offset()+idx]

	if soft == 0 {
		clauses := xorParity3(lits[0], lits[1], lits[2], nil)
		return clausesToLines(clauses)
	}
	o := soft - 1
	b := g.freshBlockingLit()
	w := g.weight(o)
	clauses := xorParity3(lits[0], lits[1], lits[2], &b)
	lines := clausesToLines(clauses)
	lines = append(lines, Line{Kind: LineSoft, Clause: instance.Clause{b.Negate()}, Objective: o, Weight: w})
	return lines
}

// xorParity4 returns the eight clauses of the l0⊕l1⊕l2⊕l3=1 parity
// constraint (each clause excludes one even-parity assignment), each
// optionally prefixed with a blocking literal. This
// corrects the upstream generator's hard-variant bug (see DESIGN.md):
// the hard case now emits the full 4-parity encoding instead of
// reusing the 3-literal XOR3 clauses.
func xorParity4(l0, l1, l2, l3 instance.Lit, b *instance.Lit) []instance.Clause {
	base := [][4]instance.Lit{
		{l0, l1, l2, l3},
		{l0, l1, l2.Negate(), l3.Negate()},
		{l0, l1.Negate(), l2, l3.Negate()},
		{l0, l1.Negate(), l2.Negate(), l3},
		{l0.Negate(), l1, l2, l3.Negate()},
		{l0.Negate(), l1, l2.Negate(), l3},
		{l0.Negate(), l1.Negate(), l2, l3},
		{l0.Negate(), l1.Negate(), l2.Negate(), l3.Negate()},
	}
	out := make([]instance.Clause, len(base))
	for i, quad := range base {
		if b != nil {
			out[i] = instance.Clause{*b, quad[0], quad[1], quad[2], quad[3]}
		} else {
			out[i] = instance.Clause{quad[0], quad[1], quad[2], quad[3]}
		}
	}
	return out
}

// xor4Clauses builds the XOR4 gadget.
func (g *Generator) xor4Clauses(idx int) []Line {
	lits := g.freeLits(4)
	soft := g.gadgetSoft[g.xor4Offset()+idx]

	if soft == 0 {
		clauses := xorParity4(lits[0], lits[1], lits[2], lits[3], nil)
		return clausesToLines(clauses)
	}
	o := soft - 1
	b := g.freshBlockingLit()
	w := g.weight(o)
	clauses := xorParity4(lits[0], lits[1], lits[2], lits[3], &b)
	lines := clausesToLines(clauses)
	lines = append(lines, Line{Kind: LineSoft, Clause: instance.Clause{b.Negate()}, Objective: o, Weight: w})
	return lines
}

// freeLits draws n gadget literals; unlike distinctLits, variables may
// coincide (XOR gadgets tolerate repeated variables).
func (g *Generator) freeLits(n int) []instance.Lit {
	out := make([]instance.Lit, n)
	for i := range out {
		out[i] = g.gadgetLit()
	}
	return out
}

func clausesToLines(cs []instance.Clause) []Line {
	lines := make([]Line, len(cs))
	for i, c := range cs {
		lines[i] = Line{Kind: LineHard, Clause: c}
	}
	return lines
}

func (g *Generator) eqOffset() int   { return 0 }
func (g *Generator) andOffset() int  { return g.numEq }
func (g *Generator) xor3Offset() int { return g.numEq + g.numAnd }
func (g *Generator) xor4Offset() int { return g.numEq + g.numAnd + g.numXor3 }
