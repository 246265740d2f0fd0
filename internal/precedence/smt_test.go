package precedence

import (
	"testing"

	"github.com/jpleunes/rcpsptexact/internal/backend/idl"
	"github.com/jpleunes/rcpsptexact/internal/timewindows"
)

func TestEncodeSMTBuildsWindowedYTableAndAtoms(t *testing.T) {
	inst := buildChain()
	ext := timewindows.ComputeExtendedPrecedence(inst, 5)

	alloc := &counter{}
	res := EncodeSMT(inst, ext, alloc)

	wantWidth := []int{4, 4, 4} // LS-ES+1 for ES=[0,0,2], LS=[3,3,5]
	for i, w := range wantWidth {
		if got := len(res.Y[i]); got != w {
			t.Fatalf("len(Y[%d]) = %d, want %d", i, got, w)
		}
	}

	// Two window-bound atoms per job plus one extended-precedence edge
	// for each non-self pair in Estar: (0,1) and (0,2) from job 0,
	// (1,2) from job 1, none from job 2.
	if got := len(res.PermanentAtoms); got != 9 {
		t.Fatalf("len(PermanentAtoms) = %d, want 9", got)
	}

	// Two theory literals and three clauses per (job, time) pair, summed
	// over each job's window width (4+4+4 = 12 pairs).
	if got := len(res.TheoryLits); got != 24 {
		t.Fatalf("len(TheoryLits) = %d, want 24", got)
	}
	if got := len(res.Clauses); got != 36 {
		t.Fatalf("len(Clauses) = %d, want 36", got)
	}
}

func TestEncodeSMTTheoryLitsMatchTheirBoundaryTime(t *testing.T) {
	inst := buildChain()
	ext := timewindows.ComputeExtendedPrecedence(inst, 5)

	alloc := &counter{}
	res := EncodeSMT(inst, ext, alloc)

	// The first pair of theory literals encodes job 0's t=ES[0]=0 atoms:
	// S0-S0>=0 and S0-S0<=0.
	ge, le := res.TheoryLits[0], res.TheoryLits[1]
	if ge.Atom != (idl.Atom{A: 0, B: 0, C: 0}) {
		t.Fatalf("ge atom = %+v, want S0-S0>=0", ge.Atom)
	}
	if le.Atom != (idl.Atom{A: 0, B: 0, C: 0}) {
		t.Fatalf("le atom = %+v, want S0-S0<=0", le.Atom)
	}

	// Each y indicator biconditional contributes exactly 3 clauses, in
	// order: [-y,ge], [-y,le], [-ge,-le,y].
	yLit := res.Y[0][0]
	c0, c1, c2 := res.Clauses[0], res.Clauses[1], res.Clauses[2]
	if len(c0) != 2 || c0[0] != -yLit || c0[1] != ge.Var {
		t.Fatalf("clause 0 = %v, want [-%d %d]", c0, yLit, ge.Var)
	}
	if len(c1) != 2 || c1[0] != -yLit || c1[1] != le.Var {
		t.Fatalf("clause 1 = %v, want [-%d %d]", c1, yLit, le.Var)
	}
	if len(c2) != 3 || c2[0] != -ge.Var || c2[1] != -le.Var || c2[2] != yLit {
		t.Fatalf("clause 2 = %v, want [-%d -%d %d]", c2, ge.Var, le.Var, yLit)
	}
}
