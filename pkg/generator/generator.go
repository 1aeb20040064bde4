// Package generator streams a layered, gadget-structured multi-objective
// weighted-CNF instance from a seeded random source. It is a pull iterator:
// the caller drives it one Line at a time, the way the chaos fuzzer's
// sampler/runner pair drives one round at a time, except here a single
// "round" is one instance's entire clause stream.
package generator

import (
	"fmt"

	"github.com/chrjabs/fazer/pkg/config"
	"github.com/chrjabs/fazer/pkg/instance"
	"github.com/chrjabs/fazer/pkg/random"
)

// MaxClauseLen bounds both layer-clause growth and AND-gadget arity.
const MaxClauseLen = 20

// LineKind tags the shape of one emitted Line.
type LineKind int

const (
	LineComment LineKind = iota
	LineHard
	LineSoft
)

// Line is one element of the generator's output stream.
type Line struct {
	Kind      LineKind
	Comment   string
	Clause    instance.Clause
	Objective int
	Weight    uint64
}

func (l Line) String() string {
	switch l.Kind {
	case LineComment:
		return "c " + l.Comment
	case LineHard:
		return "h " + l.Clause.String() + " 0"
	case LineSoft:
		return fmt.Sprintf("o%d %d %s 0", l.Objective+1, l.Weight, l.Clause.String())
	default:
		return ""
	}
}

type layerT struct {
	lo, hi    instance.Var // half-open range
	nClauses  int
	soft      bool
	objective int
	unused    []instance.Lit
}

func (ly *layerT) width() int {
	return int(ly.hi - ly.lo)
}

type state int

const (
	stHeader state = iota
	stLayerDesc
	stLayerClause
	stEq
	stAnd
	stXor3
	stXor4
	stDone
)

// Generator is a streaming, single-pass line producer: Next() pulls one
// MCNF line at a time without ever materializing the whole instance.
type Generator struct {
	rng     *random.Source
	seed    uint64
	hasSeed bool

	numObjectives int
	layers        []layerT

	numEq, numAnd, numXor3, numXor4 int
	andArity                        []int
	// gadgetSoft[i] is 0 for hard, else (objective index + 1).
	gadgetSoft []int

	weightVariant int
	weightMin     uint64
	weightMax     uint64
	weightSum     uint64
	nSoftLeft     []uint64

	nextFreeVar instance.Var

	totalClauses  int
	softPerObjHdr []int

	st           state
	headerIdx    int
	layerDescIdx int
	layerIdx     int
	clauseIdx    int
	eqIdx        int
	andIdx       int
	xor3Idx      int
	xor4Idx      int
	buffer       []Line
}

// New builds a Generator from cfg, seeded either by seed (if non-nil) or by
// system entropy.
func New(cfg *config.InstanceConfig, seed *uint64) (*Generator, error) {
	var rng *random.Source
	var hasSeed bool
	var seedVal uint64
	if seed != nil {
		rng = random.NewSeeded(*seed)
		seedVal, hasSeed = *seed, true
	} else {
		rng = random.NewEntropy()
		seedVal, hasSeed = rng.Seed(), false
	}

	g := &Generator{rng: rng, seed: seedVal, hasSeed: hasSeed}
	if err := g.init(cfg); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Generator) init(cfg *config.InstanceConfig) error {
	minO, maxO := cfg.Objs()
	if maxO < minO || minO < 0 {
		return fmt.Errorf("generator: invalid objectives range [%d,%d]", minO, maxO)
	}
	g.numObjectives = g.rng.IntRange(minO, maxO)

	minL, maxL := cfg.LayerRange()
	if maxL < minL || minL < 1 {
		return fmt.Errorf("generator: invalid layers range [%d,%d]", minL, maxL)
	}
	numLayers := g.rng.IntRange(minL, maxL)

	minMaxW, maxMaxW := cfg.MaxLayerWidthRange()
	if maxMaxW < minMaxW {
		return fmt.Errorf("generator: invalid layer_width.max range")
	}
	maxWidth := g.rng.IntRange(minMaxW, maxMaxW)
	minWidth := cfg.MinLayerWidth()
	if minWidth < 1 {
		minWidth = 1
	}
	if minWidth > maxWidth {
		maxWidth = minWidth
	}

	lcMin, lcMax, lcDiv := cfg.LayerClausesRange()
	if lcDiv < 1 {
		lcDiv = 1
	}

	g.layers = make([]layerT, numLayers)
	var prevEnd instance.Var
	prevWidth := 0
	for i := 0; i < numLayers; i++ {
		width := g.rng.IntRange(minWidth, maxWidth)
		lo := prevEnd
		hi := lo + instance.Var(width) + 1
		widthPlusLast := width
		if i > 0 {
			widthPlusLast += prevWidth
		}

		mult := g.rng.IntRange(lcMin, lcMax)
		nClauses := (mult * widthPlusLast) / lcDiv

		ly := layerT{lo: lo, hi: hi, nClauses: nClauses}
		if g.numObjectives > 0 && nClauses > 4*widthPlusLast {
			ly.soft = true
			ly.objective = g.rng.IntRange(0, g.numObjectives-1)
		}
		ly.unused = make([]instance.Lit, 0, 2*width+2)
		for v := lo; v < hi; v++ {
			ly.unused = append(ly.unused, instance.NewLit(v, false), instance.NewLit(v, true))
		}

		g.layers[i] = ly
		prevEnd = hi
		prevWidth = width
	}
	g.nextFreeVar = prevEnd

	g.numEq = gadgetCount(g.rng, cfg.Equalities)
	g.numAnd = gadgetCount(g.rng, cfg.Ands)
	g.numXor3 = gadgetCount(g.rng, cfg.Xors3)
	g.numXor4 = gadgetCount(g.rng, cfg.Xors4)

	if len(cfg.MaxWeight) == 0 {
		return fmt.Errorf("generator: no max_weight variants configured")
	}
	g.weightVariant = g.rng.IntRange(0, len(cfg.MaxWeight)-1)
	wv := cfg.MaxWeight[g.weightVariant]
	g.weightMin, g.weightMax = wv.Min, wv.Max
	if g.weightMin < 1 {
		g.weightMin = 1
	}

	combinedWidth := 0
	if numLayers >= 2 {
		combinedWidth = g.layers[numLayers-1].width() + g.layers[numLayers-2].width()
	} else if numLayers == 1 {
		combinedWidth = g.layers[0].width()
	}
	maxArity := combinedWidth / 2
	if maxArity > MaxClauseLen {
		maxArity = MaxClauseLen
	}
	if maxArity < 2 {
		maxArity = 2
	}
	g.andArity = make([]int, g.numAnd)
	for i := range g.andArity {
		g.andArity[i] = g.rng.IntRange(2, maxArity)
	}

	numGadgets := g.numEq + g.numAnd + g.numXor3 + g.numXor4
	g.gadgetSoft = make([]int, numGadgets)
	allSoft := g.numObjectives > 0 && g.rng.Bool(0.1)
	for i := 0; i < numGadgets; i++ {
		soft := g.numObjectives > 0 && (allSoft || g.rng.Bool(0.2))
		if soft {
			g.gadgetSoft[i] = g.rng.IntRange(0, g.numObjectives-1) + 1
		}
	}

	g.nSoftLeft = make([]uint64, g.numObjectives)
	g.softPerObjHdr = make([]int, g.numObjectives)
	for _, ly := range g.layers {
		if ly.soft {
			g.nSoftLeft[ly.objective] += uint64(ly.nClauses)
			g.softPerObjHdr[ly.objective] += ly.nClauses
		}
	}
	for _, s := range g.gadgetSoft {
		if s > 0 {
			o := s - 1
			g.nSoftLeft[o]++
			g.softPerObjHdr[o]++
		}
	}

	g.totalClauses = 0
	for _, ly := range g.layers {
		g.totalClauses += ly.nClauses
	}
	for i := 0; i < g.numAnd; i++ {
		g.totalClauses += g.andArity[i] + 1
	}
	for _, s := range g.gadgetSoft {
		if s > 0 {
			g.totalClauses++
		}
	}
	g.totalClauses += 2 * g.numEq
	g.totalClauses += 4 * g.numXor3
	g.totalClauses += 8 * g.numXor4

	return nil
}

func gadgetCount(rng *random.Source, r config.U8ProbRange) int {
	nonzeroProb, min, max := config.GadgetRange(r)
	if !rng.Bool(nonzeroProb) {
		return 0
	}
	if max < min {
		max = min
	}
	return rng.IntRange(min, max)
}

// Next pulls the next line from the stream. ok is false once the stream is
// exhausted.
func (g *Generator) Next() (Line, bool) {
	if len(g.buffer) > 0 {
		l := g.buffer[0]
		g.buffer = g.buffer[1:]
		return l, true
	}

	for {
		switch g.st {
		case stHeader:
			if g.headerIdx >= 10 {
				g.st = stLayerDesc
				continue
			}
			l := Line{Kind: LineComment, Comment: g.headerLine(g.headerIdx)}
			g.headerIdx++
			return l, true

		case stLayerDesc:
			if g.layerDescIdx >= len(g.layers) {
				g.st = stLayerClause
				continue
			}
			l := Line{Kind: LineComment, Comment: g.layerDescLine(g.layerDescIdx)}
			g.layerDescIdx++
			return l, true

		case stLayerClause:
			if g.layerIdx >= len(g.layers) {
				g.st = stEq
				continue
			}
			if g.clauseIdx >= g.layers[g.layerIdx].nClauses {
				g.layerIdx++
				g.clauseIdx = 0
				continue
			}
			l := g.layerClause(g.layerIdx)
			g.clauseIdx++
			return l, true

		case stEq:
			if g.eqIdx >= g.numEq {
				g.st = stAnd
				continue
			}
			batch := g.eqClauses(g.eqIdx)
			g.eqIdx++
			return g.emitBatch(batch)

		case stAnd:
			if g.andIdx >= g.numAnd {
				g.st = stXor3
				continue
			}
			batch := g.andClauses(g.andIdx)
			g.andIdx++
			return g.emitBatch(batch)

		case stXor3:
			if g.xor3Idx >= g.numXor3 {
				g.st = stXor4
				continue
			}
			batch := g.xor3Clauses(g.xor3Idx)
			g.xor3Idx++
			return g.emitBatch(batch)

		case stXor4:
			if g.xor4Idx >= g.numXor4 {
				g.st = stDone
				continue
			}
			batch := g.xor4Clauses(g.xor4Idx)
			g.xor4Idx++
			return g.emitBatch(batch)

		default:
			return Line{}, false
		}
	}
}

// emitBatch returns the batch's last element immediately and queues the
// rest, in their original order, for subsequent Next calls.
func (g *Generator) emitBatch(batch []Line) (Line, bool) {
	if len(batch) == 0 {
		return Line{}, false
	}
	last := batch[len(batch)-1]
	if len(batch) > 1 {
		g.buffer = append(g.buffer, batch[:len(batch)-1]...)
	}
	return last, true
}

func (g *Generator) headerLine(idx int) string {
	switch idx {
	case 0:
		return "generated by fazer"
	case 1:
		if g.hasSeed {
			return fmt.Sprintf("seed: %d", g.seed)
		}
		return "seeded by entropy"
	case 2:
		return fmt.Sprintf("objectives: %d", g.numObjectives)
	case 3:
		return fmt.Sprintf("weight range: [%d, %d] (variant %d)", g.weightMin, g.weightMax, g.weightVariant)
	case 4:
		return fmt.Sprintf("clauses: %d", g.totalClauses)
	case 5:
		return fmt.Sprintf("soft clauses per objective: %v", g.softPerObjHdr)
	case 6:
		return fmt.Sprintf("equalities: %d", g.numEq)
	case 7:
		return fmt.Sprintf("ands: %d", g.numAnd)
	case 8:
		return fmt.Sprintf("xor3: %d", g.numXor3)
	case 9:
		return fmt.Sprintf("xor4: %d", g.numXor4)
	default:
		return ""
	}
}

func (g *Generator) layerDescLine(idx int) string {
	ly := g.layers[idx]
	return fmt.Sprintf("layer[%d] = [%d, %d) n_cl=%d", idx, ly.lo, ly.hi, ly.nClauses)
}

// NumVars reports one past the highest variable index allocated so far.
// Before the stream is drained that covers the layer variables only; each
// soft gadget emitted since then has added one blocking variable.
func (g *Generator) NumVars() int {
	return int(g.nextFreeVar)
}

// NumObjectives reports the drawn objective count for this instance.
func (g *Generator) NumObjectives() int {
	return g.numObjectives
}

// Seed reports the seed this generator was constructed from.
func (g *Generator) Seed() uint64 {
	return g.seed
}
