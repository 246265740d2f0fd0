// Package formula assembles the precedence and resource halves of the
// encoding into one formula ready for a decision backend, tracking the
// variable counts a result line reports.
package formula

import (
	"github.com/jpleunes/rcpsptexact/internal/backend/idl"
	"github.com/jpleunes/rcpsptexact/internal/bdd"
	"github.com/jpleunes/rcpsptexact/internal/pbconstr"
	"github.com/jpleunes/rcpsptexact/internal/precedence"
	"github.com/jpleunes/rcpsptexact/internal/problem"
	"github.com/jpleunes/rcpsptexact/internal/resource"
	"github.com/jpleunes/rcpsptexact/internal/timewindows"
)

// varCounter is the single allocator shared by the precedence encoder
// and every PB constraint's BDD compilation, so every Boolean variable
// across the whole formula gets a distinct, contiguous, 1-based id.
type varCounter struct{ next int }

func (c *varCounter) NewVar() int {
	c.next++
	return c.next
}

// SAT is the fully assembled SAT-path formula: one flat CNF plus the
// variable tables needed to read a model back into a schedule and to
// tighten the upper bound during optimization.
type SAT struct {
	Clauses [][]int
	Y       precedence.YTable
	X       precedence.YTable
	NVars   int

	// SinkY/SinkES let the optimization loop build ¬y[sink,t] clauses
	// without re-deriving the sink's window from the instance.
	SinkY  []int
	SinkES int
}

// AssembleSAT builds the SAT-path formula for inst at the given upper
// bound. If resource preprocessing makes some PB constraint
// unsatisfiable outright, Clauses contains a single empty clause (the
// same "p wcnf 1 1 1 / 1 -1 0" trick the WCNF path uses) so every
// downstream consumer sees the formula as UNSAT without special-casing
// infeasibility.
func AssembleSAT(inst *problem.Instance, w *timewindows.Windows, ub int) *SAT {
	counter := &varCounter{}
	pre := precedence.EncodeSAT(inst, w, counter)
	selLit := func(v pbconstr.Var) int { return pre.Y[v.Job][v.Offset] }

	clauses := append([][]int{}, pre.Clauses...)
	for _, c := range resource.BuildPBConstraints(inst, w, ub) {
		arena, root := bdd.Compile(c)
		cls, _, infeasible := bdd.EmitClauses(arena, root, selLit, counter.NewVar)
		if infeasible {
			return &SAT{Clauses: [][]int{{}}, NVars: counter.next}
		}
		clauses = append(clauses, cls...)
	}

	n := inst.NJobs
	return &SAT{
		Clauses: clauses,
		Y:       pre.Y,
		X:       pre.X,
		NVars:   counter.next,
		SinkY:   pre.Y[n-1],
		SinkES:  w.ES[n-1],
	}
}

// SMT is the fully assembled SMT-path formula: a Boolean skeleton plus
// the theory atoms the backend/idl decision procedure must keep
// consistent.
type SMT struct {
	Clauses        [][]int
	TheoryLits     []idl.TheoryLit
	PermanentAtoms []idl.Atom
	Y              precedence.YTable
	NVars          int

	SinkY  []int
	SinkES int
}

// AssembleSMT builds the SMT-path formula for inst at the given upper
// bound, using the extended-precedence time windows.
func AssembleSMT(inst *problem.Instance, ext *timewindows.ExtendedPrecedence, ub int) *SMT {
	counter := &varCounter{}
	pre := precedence.EncodeSMT(inst, ext, counter)
	selLit := func(v pbconstr.Var) int { return pre.Y[v.Job][v.Offset] }

	clauses := append([][]int{}, pre.Clauses...)
	for _, c := range resource.BuildPBConstraints(inst, ext.Windows, ub) {
		arena, root := bdd.Compile(c)
		cls, _, infeasible := bdd.EmitClauses(arena, root, selLit, counter.NewVar)
		if infeasible {
			return &SMT{Clauses: [][]int{{}}, NVars: counter.next}
		}
		clauses = append(clauses, cls...)
	}

	n := inst.NJobs
	return &SMT{
		Clauses:        clauses,
		TheoryLits:     pre.TheoryLits,
		PermanentAtoms: pre.PermanentAtoms,
		Y:              pre.Y,
		NVars:          counter.next,
		SinkY:          pre.Y[n-1],
		SinkES:         ext.Windows.ES[n-1],
	}
}
