package generator

import "github.com/chrjabs/fazer/pkg/instance"

// Collect drains g entirely, returning every emitted Line in stream order.
// Used when the full line stream (including header/layer comments) needs
// to be persisted, e.g. by the mcnf writer.
func Collect(g *Generator) []Line {
	var lines []Line
	for {
		l, ok := g.Next()
		if !ok {
			break
		}
		lines = append(lines, l)
	}
	return lines
}

// BuildInstance drains g and assembles the resulting hard/soft clauses into
// an instance.Instance, discarding comment lines.
func BuildInstance(g *Generator) *instance.Instance {
	inst := instance.New(g.NumVars(), g.NumObjectives())
	for {
		l, ok := g.Next()
		if !ok {
			break
		}
		switch l.Kind {
		case LineHard:
			inst.AddHard(l.Clause)
		case LineSoft:
			inst.AddSoft(l.Objective, l.Clause, l.Weight)
		}
	}
	return inst
}

// LinesToInstance assembles an already-collected line stream into an
// instance, for callers that need both the raw stream (to persist) and the
// instance (to evaluate) without draining the generator twice.
func LinesToInstance(numVars, numObjectives int, lines []Line) *instance.Instance {
	inst := instance.New(numVars, numObjectives)
	for _, l := range lines {
		switch l.Kind {
		case LineHard:
			inst.AddHard(l.Clause)
		case LineSoft:
			inst.AddSoft(l.Objective, l.Clause, l.Weight)
		}
	}
	return inst
}
