package precedence

import (
	"github.com/jpleunes/rcpsptexact/internal/problem"
	"github.com/jpleunes/rcpsptexact/internal/timewindows"
)

// SATResult is the CNF half of the SAT-path encoding: one clause list
// over the y (start-indicator) and x (processing-indicator) variable
// families this function allocates.
type SATResult struct {
	Clauses [][]int
	Y       YTable
	X       YTable
}

// EncodeSAT builds the precedence clauses for the SAT variant,
// following the CNF scheme of Horbach (2010) as adapted for RCPSP/t: a
// job's run is "consistent" with its chosen start, the source starts at
// time 0, a job's run begins only after each predecessor has finished,
// every job starts at least once in its window (no at-most-one clause
// is emitted), and one redundant clause per processing tick links
// consecutive processing indicators to speed up search.
func EncodeSAT(inst *problem.Instance, w *timewindows.Windows, alloc VarAlloc) SATResult {
	n := inst.NJobs
	y := make(YTable, n)
	x := make(YTable, n)
	for i := 0; i < n; i++ {
		es, ls, lc := w.ES[i], w.LS[i], w.LC[i]
		y[i] = make([]int, ls-es+1)
		for t := range y[i] {
			y[i][t] = alloc.NewVar()
		}
		x[i] = make([]int, lc-es+1)
		for t := range x[i] {
			x[i][t] = alloc.NewVar()
		}
	}

	var clauses [][]int

	// Consistency: choosing start s implies processing every unit of
	// [s, s+duration).
	for i := 0; i < n; i++ {
		es, ls := w.ES[i], w.LS[i]
		for s := es; s <= ls; s++ {
			for t := s; t < s+inst.Durations[i]; t++ {
				clauses = append(clauses, []int{-y[i][s-es], x[i][t-es]})
			}
		}
	}

	// Source pinned at time 0.
	clauses = append(clauses, []int{y[0][0]})

	// Precedence: if i starts at s, each predecessor j must have started
	// no later than s-durations[j] (one clause per predecessor and s).
	for i := 1; i < n; i++ {
		for _, j := range inst.Predecessors[i] {
			esI, lsI := w.ES[i], w.LS[i]
			esJ, lsJ := w.ES[j], w.LS[j]
			for s := esI; s <= lsI; s++ {
				clause := []int{-y[i][s-esI]}
				limit := s - inst.Durations[j]
				if lsJ < limit {
					limit = lsJ
				}
				for t := esJ; t <= limit; t++ {
					clause = append(clause, y[j][t-esJ])
				}
				clauses = append(clauses, clause)
			}
		}
	}

	// Every job (but the source, already pinned) must start somewhere in
	// its window.
	for i := 1; i < n; i++ {
		es, ls := w.ES[i], w.LS[i]
		clause := make([]int, 0, ls-es+1)
		for s := es; s <= ls; s++ {
			clause = append(clause, y[i][s-es])
		}
		clauses = append(clauses, clause)
	}

	// Redundant clauses: if c is processed but c+1 is not, the run must
	// have started exactly durations[i]-1 units before c+1.
	for i := 0; i < n; i++ {
		es := w.ES[i]
		for c := w.EC[i]; c < w.LC[i]; c++ {
			clauses = append(clauses, []int{-x[i][c-es], x[i][c+1-es], y[i][c-inst.Durations[i]+1-es]})
		}
	}

	return SATResult{Clauses: clauses, Y: y, X: x}
}
