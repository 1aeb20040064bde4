// Package minimizer reserves the delta-debug reduction surface over a
// failing instance. It is deliberately unwired: the axes below document
// the intended shape without an implementation.
package minimizer

import (
	"errors"

	"github.com/chrjabs/fazer/pkg/instance"
)

// Mode names one delta-debug reduction axis a minimizer pass could apply.
type Mode string

const (
	// MinClauses drops clauses while the instance still reproduces.
	MinClauses Mode = "min_clauses"
	// MinLits drops literals from surviving clauses.
	MinLits Mode = "min_lits"
	// MinVars renames variables to shrink the active range.
	MinVars Mode = "min_vars"
	// Soft2Hard turns soft clauses into hard ones where that still
	// reproduces the finding.
	Soft2Hard Mode = "soft_to_hard"
	// Weight2One collapses soft-clause weights toward 1.
	Weight2One Mode = "weight_to_one"
	// WeightBinary binary-searches weights down toward a minimal value.
	WeightBinary Mode = "weight_binary_search"
)

// ErrNotImplemented is returned by Minimize; the reduction passes above
// are reserved, not built.
var ErrNotImplemented = errors.New("minimizer: not yet implemented")

// Minimize would reduce inst, applying modes in order, while a
// reproduction check (supplied by the caller, e.g. re-running the oracle)
// still reports a problem. It is a placeholder.
func Minimize(inst *instance.Instance, modes []Mode, reproduces func(*instance.Instance) bool) (*instance.Instance, error) {
	return nil, ErrNotImplemented
}
