// Package size implements the Constraint Sizer: it turns
// the required ("strong") ordering and spacing constraints between
// layout variables into concrete coordinates via topological-sort plus
// longest-path propagation over a DAG of minimum-distance arcs, applied
// here to placing every row/column/channel line of the whole diagram.
//
// A full Cassowary-style incremental solver is not warranted here: the
// required constraints are by construction acyclic order relations
// (each line lies at or after the one before it), so a one-shot
// longest-path relaxation yields the unique tightest solution in a
// single pass, and soft/weak constraints (centering) are applied as a
// deterministic post-processing step rather than a second stratified
// solve.
package size

import "github.com/orthogram/orthogram/pkg/errors"

// arc represents the required constraint `value[To] >= value[From] +
// MinDist`.
type arc struct {
	from, to string
	minDist  float64
}

// Solver accumulates minimum-distance arcs between named variables and
// resolves them to concrete values via longest-path propagation.
type Solver struct {
	vars  map[string]bool
	order []string // variables in first-declared order, used as a stable iteration order
	arcs  []arc
}

// NewSolver returns an empty Solver.
func NewSolver() *Solver {
	return &Solver{vars: make(map[string]bool)}
}

// Var declares a variable if it does not already exist. Declaring
// variables up front in the order they are first needed gives the
// solver a valid topological order for free, since every constraint
// this package builds only ever relates a variable to ones declared
// before it.
func (s *Solver) Var(name string) {
	if s.vars[name] {
		return
	}
	s.vars[name] = true
	s.order = append(s.order, name)
}

// AddGE adds the constraint value[to] >= value[from] + minDist. Both
// variables must already be declared via Var.
func (s *Solver) AddGE(to, from string, minDist float64) {
	s.arcs = append(s.arcs, arc{from: from, to: to, minDist: minDist})
}

// Solve runs longest-path relaxation over the declared variables in
// declaration order, which must already be a topological order of the
// constraint DAG. Every variable not reachable from another by a
// constraint defaults to 0. Solve detects infeasibility as a positive
// forward reference: a constraint whose `to` was declared before its
// `from`, which would make the declaration order an invalid topological
// sort and signals a cyclic or contradictory constraint set.
func (s *Solver) Solve() (map[string]float64, error) {
	index := make(map[string]int, len(s.order))
	for i, v := range s.order {
		index[v] = i
	}

	values := make(map[string]float64, len(s.order))
	for _, v := range s.order {
		values[v] = 0
	}

	adj := make(map[string][]arc, len(s.order))
	for _, a := range s.arcs {
		fi, fok := index[a.from]
		ti, tok := index[a.to]
		if !fok || !tok {
			return nil, errors.New(errors.CodeSizing, "constraint references undeclared variable %q or %q", a.from, a.to)
		}
		if fi > ti {
			return nil, errors.New(errors.CodeSizing,
				"infeasible constraint chain: %q must be at least %q + %.2f, but %q is ordered first",
				a.to, a.from, a.minDist, a.to)
		}
		adj[a.from] = append(adj[a.from], a)
	}

	for _, v := range s.order {
		for _, a := range adj[v] {
			candidate := values[a.from] + a.minDist
			if candidate > values[a.to] {
				values[a.to] = candidate
			}
		}
	}
	return values, nil
}
