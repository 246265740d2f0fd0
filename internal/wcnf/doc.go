// Package wcnf writes the "maxsat" subcommand's formula as a weighted
// DIMACS CNF file for an external MaxSAT solver to consume, and decodes
// the model line such a solver prints back into a checked schedule.
//
// The file format this package writes is a weighted partial MAXSAT
// instance (WP-MAXSAT): some clauses are *hard* and must be satisfied,
// others are *soft* and carry a cost for leaving them unsatisfied.
// Every clause produced by this encoding is hard — the precedence and
// resource clauses derived from the project network admit no partial
// satisfaction — so the format's weight field is set to one fixed
// value (hardWeight) throughout and no soft clause is ever written.
package wcnf
