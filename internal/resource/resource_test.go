package resource

import (
	"testing"

	"github.com/jpleunes/rcpsptexact/internal/pbconstr"
	"github.com/jpleunes/rcpsptexact/internal/problem"
	"github.com/jpleunes/rcpsptexact/internal/timewindows"
)

// With job 1's start pinned to time 0 (ES=LS=0), each tick it occupies
// has exactly one contributing term: offset 0 into its own window.
func buildPinnedInstance() (*problem.Instance, *timewindows.Windows) {
	inst := problem.NewInstance(3, 4, 1)
	inst.Successors[0] = []int{1}
	inst.Successors[1] = []int{2}
	inst.Predecessors[1] = []int{0}
	inst.Predecessors[2] = []int{1}
	inst.Durations = []int{0, 2, 0}
	inst.Requests[0][0] = []int{}
	inst.Requests[1][0] = []int{3, 4}
	inst.Requests[2][0] = []int{}
	inst.Capacities[0] = []int{5, 5, 5, 5}

	w := &timewindows.Windows{
		ES: []int{0, 0, 2},
		EC: []int{0, 2, 2},
		LS: []int{0, 0, 2},
		LC: []int{0, 2, 2},
	}
	return inst, w
}

func TestBuildPBConstraintsPinnedSchedule(t *testing.T) {
	inst, w := buildPinnedInstance()
	constrs := BuildPBConstraints(inst, w, 2)

	if len(constrs) != 2 {
		t.Fatalf("got %d constraints, want 2 (one per occupied tick)", len(constrs))
	}

	c0 := constrs[0]
	if c0.K != 5 || c0.NTerms() != 1 || c0.Coeff(0) != 3 || c0.Var(0) != (pbconstr.Var{Job: 1, Offset: 0}) {
		t.Fatalf("tick 0 constraint malformed: K=%d terms=%d coeff=%d var=%+v", c0.K, c0.NTerms(), c0.Coeff(0), c0.Var(0))
	}
	c1 := constrs[1]
	if c1.K != 5 || c1.NTerms() != 1 || c1.Coeff(0) != 4 {
		t.Fatalf("tick 1 constraint malformed: K=%d terms=%d coeff=%d", c1.K, c1.NTerms(), c1.Coeff(0))
	}
}

func TestBuildPBConstraintsDropsEmpty(t *testing.T) {
	inst, w := buildPinnedInstance()
	// Tick 3 is past job 1's run-time window and job 0/2 have zero
	// duration, so no job can contribute a term there.
	constrs := BuildPBConstraints(inst, w, 4)
	for _, c := range constrs {
		if c.NTerms() == 0 {
			t.Fatal("expected BuildPBConstraints to drop empty constraints")
		}
	}
}
