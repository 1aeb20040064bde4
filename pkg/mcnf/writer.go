// Package mcnf turns the generator's abstract Line stream into Extended
// DIMACS MCNF bytes, and parses that grammar back for evaluate/minimize.
// Its own byte-level grammar is not itself a correctness subject of this
// fuzzer; it just needs to round-trip what the generator produced.
package mcnf

import (
	"bufio"
	"io"

	"github.com/chrjabs/fazer/pkg/generator"
)

// WriteLines streams lines to w as Extended DIMACS MCNF: `c ` comments,
// `h <lits> 0` hard clauses, `o<obj> <weight> <lits> 0` soft clauses.
func WriteLines(w io.Writer, lines []generator.Line) error {
	bw := bufio.NewWriter(w)
	for _, l := range lines {
		if _, err := bw.WriteString(l.String()); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteGenerator drains g and writes its full line stream to w, returning
// the collected lines so the caller can also build an instance.Instance
// from them without redriving the generator.
func WriteGenerator(w io.Writer, g *generator.Generator) ([]generator.Line, error) {
	lines := generator.Collect(g)
	if err := WriteLines(w, lines); err != nil {
		return nil, err
	}
	return lines, nil
}
