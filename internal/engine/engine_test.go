package engine

import (
	"strings"
	"testing"

	"github.com/jpleunes/rcpsptexact/internal/problem"
	"github.com/jpleunes/rcpsptexact/internal/validity"
)

func buildContention() *problem.Instance {
	inst := problem.NewInstance(4, 10, 1)
	inst.Successors[0] = []int{1, 2}
	inst.Successors[1] = []int{3}
	inst.Successors[2] = []int{3}
	inst.Predecessors[1] = []int{0}
	inst.Predecessors[2] = []int{0}
	inst.Predecessors[3] = []int{1, 2}
	inst.Durations = []int{0, 3, 3, 0}
	inst.Requests[0][0] = []int{}
	inst.Requests[1][0] = []int{1, 1, 1}
	inst.Requests[2][0] = []int{1, 1, 1}
	inst.Requests[3][0] = []int{}
	caps := make([]int, 10)
	for i := range caps {
		caps[i] = 1
	}
	inst.Capacities[0] = caps
	return inst
}

// Two duration-3 jobs sharing a capacity-1 resource must serialize, so
// the whole SAT pipeline (heuristic bounds, time windows, formula
// assembly, gini search, and destructive-upper-bound tightening) must
// converge on makespan 6.
func TestSolveSATFindsTheOptimalMakespan(t *testing.T) {
	inst := buildContention()
	m := SolveSAT(inst, "contention.rcp")

	if !m.Certified {
		t.Fatal("expected the result to be certified optimal")
	}
	if got := m.Makespan(); got != 6 {
		t.Fatalf("Makespan() = %d, want 6", got)
	}
	if !validity.Check(inst, m.Schedule) {
		t.Fatalf("schedule %v is not valid", m.Schedule)
	}
}

func TestSolveSMTFindsTheOptimalMakespan(t *testing.T) {
	inst := buildContention()
	m := SolveSMT(inst, "contention.rcp")

	if !m.Certified {
		t.Fatal("expected the result to be certified optimal")
	}
	if got := m.Makespan(); got != 6 {
		t.Fatalf("Makespan() = %d, want 6", got)
	}
	if !validity.Check(inst, m.Schedule) {
		t.Fatalf("schedule %v is not valid", m.Schedule)
	}
}

func TestResultLineFormatsAllFields(t *testing.T) {
	inst := buildContention()
	m := SolveSAT(inst, "contention.rcp")

	line := ResultLineChecked(m, inst)
	if line == "" {
		t.Fatal("expected a non-empty result line")
	}
	if fields := strings.Split(line, ", "); len(fields) != 11 {
		t.Fatalf("result line %q has %d fields, want 11", line, len(fields))
	}
}
