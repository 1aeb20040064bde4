package mcnf

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chrjabs/fazer/pkg/instance"
)

// ReadPath opens path, decompresses it if its extension names a supported
// compression, and parses it as either Extended DIMACS MCNF or
// multi-objective OPB depending on extension. firstVarIdx is only
// consulted for OPB input.
func ReadPath(path string, firstVarIdx int) (*instance.Instance, error) {
	f, kind, err := openDecompressed(path)
	if err != nil {
		return nil, fmt.Errorf("mcnf: opening %s: %w", path, err)
	}
	defer f.Close()

	switch kind {
	case formatOPB:
		return ParseOPB(f, firstVarIdx)
	default:
		return ParseDIMACS(f)
	}
}

// ParseDIMACS parses Extended DIMACS MCNF: `h <lits> 0` hard clauses and
// `o<obj> <weight> <lits> 0` soft clauses, `c`-prefixed comments ignored.
func ParseDIMACS(r io.Reader) (*instance.Instance, error) {
	inst := instance.New(0, 0)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "c") || strings.HasPrefix(line, "p") {
			continue
		}

		if strings.HasPrefix(line, "h") {
			cl, err := parseLits(strings.TrimSpace(line[1:]))
			if err != nil {
				return nil, fmt.Errorf("mcnf: line %d: %w", lineNo, err)
			}
			inst.AddHard(cl)
			continue
		}

		if strings.HasPrefix(line, "o") {
			rest := line[1:]
			fields := strings.Fields(rest)
			if len(fields) < 3 {
				return nil, fmt.Errorf("mcnf: line %d: malformed soft clause", lineNo)
			}
			objStr := ""
			i := 0
			for i < len(rest) && rest[i] >= '0' && rest[i] <= '9' {
				objStr += string(rest[i])
				i++
			}
			obj, err := strconv.Atoi(objStr)
			if err != nil || obj < 1 {
				return nil, fmt.Errorf("mcnf: line %d: invalid objective index", lineNo)
			}
			weight, err := strconv.ParseUint(fields[1], 10, 64)
			if err != nil {
				return nil, fmt.Errorf("mcnf: line %d: invalid weight: %w", lineNo, err)
			}
			cl, err := parseLits(strings.Join(fields[2:], " "))
			if err != nil {
				return nil, fmt.Errorf("mcnf: line %d: %w", lineNo, err)
			}
			inst.AddSoft(obj-1, cl, weight)
			continue
		}

		return nil, fmt.Errorf("mcnf: line %d: unrecognized line kind %q", lineNo, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return inst, nil
}

// ParseOPB parses multi-objective pseudo-Boolean input with a
// configurable first-variable index offset. Only a small subset of OPB is
// supported: each `min:` line becomes one objective whose `+w x` terms are
// unit soft clauses of weight w (terms with a negative coefficient are
// skipped), and every other `;`-terminated line is read as a hard clause
// over its literals, with coefficients and the bound ignored.
func ParseOPB(r io.Reader, firstVarIdx int) (*instance.Instance, error) {
	inst := instance.New(0, 0)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "*") {
			continue
		}
		// Constraints of the form "+1 x1 +1 x2 >= 1;" are hard clauses in
		// disguise for the 0/1 linear subset this fuzzer generates.
		if !strings.HasSuffix(line, ";") {
			continue
		}
		body := strings.TrimSuffix(line, ";")
		if strings.HasPrefix(body, "min:") {
			obj := inst.NumObjectives
			terms := strings.Fields(strings.TrimPrefix(body, "min:"))
			for i := 0; i+1 < len(terms); i += 2 {
				w, werr := strconv.ParseUint(strings.TrimPrefix(terms[i], "+"), 10, 64)
				neg := strings.HasPrefix(terms[i+1], "~")
				idx, ierr := strconv.Atoi(strings.TrimPrefix(strings.TrimPrefix(terms[i+1], "~"), "x"))
				if werr != nil || ierr != nil {
					continue
				}
				// w·x costs w when x is true, so the soft clause is ¬x.
				inst.AddSoft(obj, instance.Clause{instance.NewLit(instance.Var(idx-firstVarIdx), !neg)}, w)
			}
			continue
		}
		cl, err := parseOPBClause(body, firstVarIdx)
		if err != nil {
			return nil, err
		}
		inst.AddHard(cl)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return inst, nil
}

func parseOPBClause(body string, firstVarIdx int) (instance.Clause, error) {
	fields := strings.Fields(body)
	var cl instance.Clause
	for i := 0; i+1 < len(fields); i += 2 {
		if isOPBRelOp(fields[i]) {
			// Reached "op rhs": the rest of the line is the bound, not
			// another coefficient/variable term.
			break
		}
		tok := fields[i+1]
		neg := strings.HasPrefix(tok, "~")
		tok = strings.TrimPrefix(tok, "~x")
		tok = strings.TrimPrefix(tok, "x")
		idx, err := strconv.Atoi(tok)
		if err != nil {
			continue
		}
		cl = append(cl, instance.NewLit(instance.Var(idx-firstVarIdx), neg))
	}
	return cl, nil
}

func isOPBRelOp(tok string) bool {
	switch tok {
	case ">=", "<=", "=":
		return true
	default:
		return false
	}
}

func parseLits(s string) (instance.Clause, error) {
	fields := strings.Fields(s)
	var cl instance.Clause
	for _, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("invalid literal %q: %w", f, err)
		}
		if n == 0 {
			break
		}
		if n > 0 {
			cl = append(cl, instance.NewLit(instance.Var(n-1), false))
		} else {
			cl = append(cl, instance.NewLit(instance.Var(-n-1), true))
		}
	}
	return cl, nil
}
