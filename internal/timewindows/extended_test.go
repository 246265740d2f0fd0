package timewindows

import (
	"testing"

	"github.com/jpleunes/rcpsptexact/internal/problem"
)

func TestComputeExtendedPrecedenceNoContention(t *testing.T) {
	inst := buildChain()
	ext := ComputeExtendedPrecedence(inst, 5)
	if ext.Lag(0, 2) != 2 {
		t.Fatalf("Lag(0,2) = %d, want 2", ext.Lag(0, 2))
	}
	if ext.Windows.ES[1] != 0 || ext.Windows.LS[1] != 3 {
		t.Fatalf("job 1 window = [%d,%d], want [0,3]", ext.Windows.ES[1], ext.Windows.LS[1])
	}
}

// Two parallel jobs of duration 2 that together exceed a shared
// resource's capacity of 1 cannot run concurrently, so the lag from
// source to sink must be tightened past the naive longest-path value
// of 2 (either branch alone) to 4 (both branches end to end).
func TestComputeExtendedPrecedenceTightensUnderContention(t *testing.T) {
	inst := problem.NewInstance(4, 10, 1)
	inst.Successors[0] = []int{1, 2}
	inst.Successors[1] = []int{3}
	inst.Successors[2] = []int{3}
	inst.Predecessors[1] = []int{0}
	inst.Predecessors[2] = []int{0}
	inst.Predecessors[3] = []int{1, 2}
	inst.Durations = []int{0, 2, 2, 0}
	inst.Requests[0][0] = []int{}
	inst.Requests[1][0] = []int{1, 1}
	inst.Requests[2][0] = []int{1, 1}
	inst.Requests[3][0] = []int{}
	caps := make([]int, 10)
	for i := range caps {
		caps[i] = 1
	}
	inst.Capacities[0] = caps

	ext := ComputeExtendedPrecedence(inst, 10)
	if got := ext.Lag(0, 3); got != 4 {
		t.Fatalf("Lag(0,3) = %d, want 4 (resource contention must force serialization)", got)
	}
}
