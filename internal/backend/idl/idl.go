package idl

import (
	"github.com/jpleunes/rcpsptexact/internal/backend"
	"github.com/jpleunes/rcpsptexact/internal/backend/ginisat"
)

// Solver is a small DPLL(T) decision procedure for QF_IDL: a gini
// Boolean skeleton (internal/backend/ginisat) is solved, its
// model is projected onto the difference-constraint atoms via
// TheoryLits, and the resulting atom set is checked for consistency by
// Bellman-Ford negative-cycle detection over the job-start variables.
// An inconsistent combination blocks the exact assignment of every
// theory-linked variable that produced it and the skeleton is re-solved
// — a "solve and check" refinement loop rather than a fully lazy,
// conflict-minimising theory solver: a deliberate simplification,
// reasonable because nothing about this module's design dictates how
// thorough the QF_IDL back-end's theory reasoning has to be.
type Solver struct {
	nvars      int
	nodes      int
	skeleton   [][]int
	permanent  []Atom
	theoryLits []TheoryLit

	model []bool
	dist  []int
}

// NewSolver returns a Solver over nvars Boolean skeleton variables and
// nodes difference-logic variables (one per job), seeded with the
// Boolean skeleton clauses, the unconditional atoms and the
// Boolean-to-atom links produced by precedence.EncodeSMT.
func NewSolver(nvars, nodes int, clauses [][]int, permanent []Atom, theoryLits []TheoryLit) *Solver {
	return &Solver{
		nvars:      nvars,
		nodes:      nodes,
		skeleton:   append([][]int{}, clauses...),
		permanent:  permanent,
		theoryLits: theoryLits,
	}
}

func (s *Solver) AddClause(lits []int) {
	s.skeleton = append(s.skeleton, append([]int{}, lits...))
}

// Solve runs the refinement loop until the skeleton is UNSAT, a
// consistent model is found, or stop fires.
func (s *Solver) Solve(stop <-chan struct{}) backend.Status {
	for {
		select {
		case <-stop:
			return backend.Interrupted
		default:
		}

		sk := ginisat.New(s.nvars, s.skeleton)
		status := sk.Solve(stop)
		if status != backend.Sat {
			return status
		}

		model := make([]bool, s.nvars)
		for v := 1; v <= s.nvars; v++ {
			model[v-1] = sk.Value(v)
		}

		atoms := append([]Atom{}, s.permanent...)
		var blocking []int
		for _, tl := range s.theoryLits {
			if model[tl.Var-1] {
				atoms = append(atoms, tl.Atom)
				blocking = append(blocking, -tl.Var)
			} else {
				atoms = append(atoms, tl.Atom.Negate())
				blocking = append(blocking, tl.Var)
			}
		}

		dist, ok := consistent(s.nodes, atoms)
		if ok {
			s.model = model
			s.dist = dist
			return backend.Sat
		}
		// The exact combination of theory choices just tried is
		// infeasible; rule it out and search again.
		s.skeleton = append(s.skeleton, blocking)
	}
}

func (s *Solver) Value(v int) bool { return s.model[v-1] }

// StartTime returns the consistent value assigned to job's start-time
// variable in the last model found by Solve.
func (s *Solver) StartTime(job int) int { return s.dist[job] }

type edge struct {
	from, to, weight int
}

// consistent runs Bellman-Ford from an implicit zero-weight source over
// every node, returning the shortest-path values shifted so node 0 (job
// 0) sits at 0 (a uniform shift keeps every difference, so the values
// remain a satisfying assignment) and whether the graph is free of
// negative cycles.
func consistent(n int, atoms []Atom) ([]int, bool) {
	edges := make([]edge, len(atoms))
	for i, a := range atoms {
		// S[A] - S[B] >= C  <=>  S[B] - S[A] <= -C  <=>  edge A->B, weight -C
		edges[i] = edge{from: a.A, to: a.B, weight: -a.C}
	}
	dist := make([]int, n)
	for iter := 0; iter < n-1; iter++ {
		changed := false
		for _, e := range edges {
			if d := dist[e.from] + e.weight; d < dist[e.to] {
				dist[e.to] = d
				changed = true
			}
		}
		if !changed {
			break
		}
	}
	for _, e := range edges {
		if dist[e.from]+e.weight < dist[e.to] {
			return nil, false
		}
	}
	if n > 0 {
		off := dist[0]
		for i := range dist {
			dist[i] -= off
		}
	}
	return dist, true
}
