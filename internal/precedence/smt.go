package precedence

import (
	"github.com/jpleunes/rcpsptexact/internal/backend/idl"
	"github.com/jpleunes/rcpsptexact/internal/problem"
	"github.com/jpleunes/rcpsptexact/internal/timewindows"
)

// SMTResult is the QF_IDL half of the SAT+theory encoding (the SMT
// variant): a Boolean skeleton over y plus a set of unconditional
// ("permanent") difference atoms and a set of atoms gated by a Boolean.
//
// There is no per-job integer variable S[i] in this representation:
// job 0 (the dummy source) is the reference point, so every other
// job's absolute bound and precedence distance is expressed as a
// difference against job 0 — S[A] - S[0] >= c — and job 0's own
// atoms (S[0] - S[0] compared with t) hold together only for t = 0. The backend's
// consistency graph is built directly over job indices.
type SMTResult struct {
	Clauses        [][]int
	Y              YTable
	PermanentAtoms []idl.Atom
	TheoryLits     []idl.TheoryLit
}

// EncodeSMT builds the precedence constraints for the SMT variant,
// following M. Bofill et al. (2020): S[i] bounds, extended precedence
// distances, and the y[i,t] <=> S[i]=t
// biconditional, decomposed into two one-sided atoms so every atom
// stays a plain difference constraint.
func EncodeSMT(inst *problem.Instance, ext *timewindows.ExtendedPrecedence, alloc VarAlloc) SMTResult {
	n := inst.NJobs
	w := ext.Windows
	y := make(YTable, n)
	for i := 0; i < n; i++ {
		y[i] = make([]int, w.LS[i]-w.ES[i]+1)
		for t := range y[i] {
			y[i][t] = alloc.NewVar()
		}
	}

	var permanent []idl.Atom
	for i := 0; i < n; i++ {
		permanent = append(permanent, idl.Atom{A: i, B: 0, C: w.ES[i]})
		permanent = append(permanent, idl.Atom{A: 0, B: i, C: -w.LS[i]})
	}
	for i := 0; i < n; i++ {
		for _, j := range ext.Estar[i] {
			if i == j {
				continue
			}
			permanent = append(permanent, idl.Atom{A: j, B: i, C: ext.Lag(i, j)})
		}
	}

	var clauses [][]int
	var theoryLits []idl.TheoryLit
	for i := 0; i < n; i++ {
		es, ls := w.ES[i], w.LS[i]
		for t := es; t <= ls; t++ {
			yLit := y[i][t-es]
			geVar := alloc.NewVar() // S[i] >= t
			leVar := alloc.NewVar() // S[i] <= t
			theoryLits = append(theoryLits,
				idl.TheoryLit{Var: geVar, Atom: idl.Atom{A: i, B: 0, C: t}},
				idl.TheoryLit{Var: leVar, Atom: idl.Atom{A: 0, B: i, C: -t}},
			)
			clauses = append(clauses, []int{-yLit, geVar})
			clauses = append(clauses, []int{-yLit, leVar})
			clauses = append(clauses, []int{-geVar, -leVar, yLit})
		}
	}

	return SMTResult{Clauses: clauses, Y: y, PermanentAtoms: permanent, TheoryLits: theoryLits}
}
