package ginisat

import (
	"testing"
	"time"

	"github.com/jpleunes/rcpsptexact/internal/backend"
)

func TestSolveSatisfiableFormula(t *testing.T) {
	// (x1 or x2) and (not x1 or x2) and (x1 or not x2): the only model is
	// x1=true, x2=true.
	clauses := [][]int{{1, 2}, {-1, 2}, {1, -2}}
	b := New(2, clauses)

	if status := b.Solve(nil); status != backend.Sat {
		t.Fatalf("Solve() = %v, want Sat", status)
	}
	if !b.Value(1) || !b.Value(2) {
		t.Fatalf("Value(1)=%v Value(2)=%v, want true,true", b.Value(1), b.Value(2))
	}
}

func TestSolveUnsatisfiableFormula(t *testing.T) {
	clauses := [][]int{{1}, {-1}}
	b := New(1, clauses)

	if status := b.Solve(nil); status != backend.Unsat {
		t.Fatalf("Solve() = %v, want Unsat", status)
	}
}

func TestAddClauseAfterConstruction(t *testing.T) {
	b := New(2, [][]int{{1, 2}})
	if status := b.Solve(nil); status != backend.Sat {
		t.Fatalf("Solve() = %v, want Sat", status)
	}

	b.AddClause([]int{-1})
	b.AddClause([]int{-2})
	if status := b.Solve(nil); status != backend.Unsat {
		t.Fatalf("after forcing both literals false, Solve() = %v, want Unsat", status)
	}
}

// pigeonhole returns the classic p-pigeons-into-h-holes unsatisfiable
// CNF: every pigeon is in some hole, no hole holds two pigeons. With
// p > h it has no model, and takes genuine search to refute.
func pigeonhole(pigeons, holes int) (nvars int, clauses [][]int) {
	v := func(i, j int) int { return i*holes + j + 1 }
	nvars = pigeons * holes
	for i := 0; i < pigeons; i++ {
		cl := make([]int, holes)
		for j := 0; j < holes; j++ {
			cl[j] = v(i, j)
		}
		clauses = append(clauses, cl)
	}
	for j := 0; j < holes; j++ {
		for i1 := 0; i1 < pigeons; i1++ {
			for i2 := i1 + 1; i2 < pigeons; i2++ {
				clauses = append(clauses, []int{-v(i1, j), -v(i2, j)})
			}
		}
	}
	return
}

// Closing stop mid-search on a moderately-sized instance must make
// Solve give up and report Interrupted rather than running the
// pigeonhole refutation to completion.
func TestSolveReportsInterruptedWhenStopClosesMidSearch(t *testing.T) {
	nvars, clauses := pigeonhole(8, 7)
	b := New(nvars, clauses)

	stop := make(chan struct{})
	done := make(chan backend.Status, 1)
	go func() { done <- b.Solve(stop) }()

	time.Sleep(2 * time.Millisecond)
	close(stop)

	status := <-done
	if status != backend.Interrupted {
		t.Fatalf("Solve() = %v, want Interrupted", status)
	}
}
