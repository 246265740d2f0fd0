// Package idl implements a small QF_IDL (quantifier-free integer
// difference logic) decision procedure: a CDCL-style Boolean skeleton
// search plus a difference-constraint consistency check used as its
// theory. No third-party IDL/SMT library ships a pure-Go QF_IDL solver
// (see DESIGN.md); this package is the one core component built
// directly on algorithms rather than an imported decision procedure.
package idl

// Atom is the elementary QF_IDL predicate S[A] - S[B] >= C over the
// solver's integer variables (identified by small integer indices, one
// per job's start time).
type Atom struct {
	A, B, C int
}

// Negate returns the atom equivalent to ¬a. Over the integers,
// ¬(x >= c) is x <= c-1, i.e. -x >= 1-c, i.e. swapping the two sides of
// the difference and flipping the bound.
func (a Atom) Negate() Atom {
	return Atom{A: a.B, B: a.A, C: 1 - a.C}
}

// TheoryLit links one Boolean skeleton variable to the atom it
// controls: whenever the variable is assigned true the atom must hold,
// and whenever it is assigned false the atom's negation must hold.
// Built by the SMT-variant precedence encoder, consumed by Solver.
type TheoryLit struct {
	Var  int
	Atom Atom
}
