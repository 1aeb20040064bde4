// Package solver models the uniform "run -> Pareto front" capability every
// back-end exposes, as a closed tagged variant over five algorithm kinds,
// mirroring the upstream project's scuttle.rs (one wrapper struct per
// algorithm, each only a thin adapter around a single Run call).
package solver

import (
	"fmt"

	"github.com/chrjabs/fazer/pkg/instance"
)

// BackendKind names one of the five closed solver-algorithm variants.
type BackendKind string

const (
	PMinimal            BackendKind = "p_minimal"
	CoreBoostedPMinimal BackendKind = "core_boosted_p_minimal"
	BiOptSatGte         BackendKind = "bi_opt_sat_gte"
	BiOptSatDpw         BackendKind = "bi_opt_sat_dpw"
	LowerBounding       BackendKind = "lower_bounding"
)

// Point is one element of a Pareto front: a cost vector and the witness
// assignments that attain it.
type Point struct {
	Costs    []uint64
	Witnesses [][]bool
}

// ParetoFront is the set of points a Backend returns for one instance.
type ParetoFront struct {
	Points []Point
}

// Backend is the uniform capability every configured solver exposes.
// Implementations are expected to be constructed fresh per instance (the
// adapter is not required to be reusable across calls).
type Backend interface {
	Run(inst *instance.Instance) (ParetoFront, error)
}

// Factory builds a Backend for kind, with backend-specific options.
type Factory func(options map[string]interface{}) (Backend, error)

// Registry maps backend kinds to factories. The zero value is usable; call
// RegisterDefaults to populate it with the reference stub.
type Registry struct {
	factories map[BackendKind]Factory
}

// NewRegistry builds an empty Registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[BackendKind]Factory)}
}

// Register installs factory under kind, overwriting any prior registration.
func (r *Registry) Register(kind BackendKind, factory Factory) {
	if r.factories == nil {
		r.factories = make(map[BackendKind]Factory)
	}
	r.factories[kind] = factory
}

// Build constructs a Backend of the named kind.
func (r *Registry) Build(kind BackendKind, options map[string]interface{}) (Backend, error) {
	factory, ok := r.factories[kind]
	if !ok {
		return nil, fmt.Errorf("solver: no factory registered for kind %q", kind)
	}
	return factory(options)
}

// RegisterDefaults registers the built-in stub backend under all five
// closed variants. Real engines are expected to call Register themselves
// with production factories; the stub keeps `evaluate`/`fuzz` runnable
// without one.
func RegisterDefaults(r *Registry) {
	for _, kind := range []BackendKind{PMinimal, CoreBoostedPMinimal, BiOptSatGte, BiOptSatDpw, LowerBounding} {
		r.Register(kind, func(map[string]interface{}) (Backend, error) {
			return &StubBackend{}, nil
		})
	}
}
