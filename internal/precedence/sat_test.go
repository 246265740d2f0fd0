package precedence

import (
	"testing"

	"github.com/jpleunes/rcpsptexact/internal/problem"
	"github.com/jpleunes/rcpsptexact/internal/timewindows"
)

type counter struct{ next int }

func (c *counter) NewVar() int {
	c.next++
	return c.next
}

func buildChain() *problem.Instance {
	inst := problem.NewInstance(3, 5, 1)
	inst.Successors[0] = []int{1}
	inst.Successors[1] = []int{2}
	inst.Predecessors[1] = []int{0}
	inst.Predecessors[2] = []int{1}
	inst.Durations = []int{0, 2, 0}
	inst.Requests[0][0] = []int{}
	inst.Requests[1][0] = []int{1, 1}
	inst.Requests[2][0] = []int{}
	inst.Capacities[0] = []int{5, 5, 5, 5, 5}
	return inst
}

func evalAssign(clauses [][]int, assign map[int]bool) (bool, int) {
	for idx, cl := range clauses {
		sat := false
		for _, lit := range cl {
			v := lit
			neg := v < 0
			if neg {
				v = -v
			}
			val := assign[v]
			if neg {
				val = !val
			}
			if val {
				sat = true
				break
			}
		}
		if !sat {
			return false, idx
		}
	}
	return true, -1
}

func TestEncodeSATAcceptsTheFeasibleSchedule(t *testing.T) {
	inst := buildChain()
	w, ok := timewindows.ResourceAware(inst, 5)
	if !ok {
		t.Fatal("expected feasible windows")
	}
	alloc := &counter{}
	res := EncodeSAT(inst, w, alloc)

	schedule := []int{0, 0, 2}
	assign := make(map[int]bool)
	for i := 0; i < inst.NJobs; i++ {
		es := w.ES[i]
		s := schedule[i]
		assign[res.Y[i][s-es]] = true
		for t := s; t < s+inst.Durations[i]; t++ {
			assign[res.X[i][t-es]] = true
		}
	}

	ok2, idx := evalAssign(res.Clauses, assign)
	if !ok2 {
		t.Fatalf("feasible schedule violates clause %d: %v", idx, res.Clauses[idx])
	}
}

func TestEncodeSATRejectsAPrecedenceViolation(t *testing.T) {
	inst := buildChain()
	w, ok := timewindows.ResourceAware(inst, 5)
	if !ok {
		t.Fatal("expected feasible windows")
	}
	alloc := &counter{}
	res := EncodeSAT(inst, w, alloc)

	// Job 2 (the sink) cannot start at its own earliest time while job 1
	// (its predecessor) starts at time 1: job 1 would still be running.
	schedule := []int{0, 1, w.ES[2]}
	assign := make(map[int]bool)
	for i := 0; i < inst.NJobs; i++ {
		es := w.ES[i]
		s := schedule[i]
		assign[res.Y[i][s-es]] = true
		for t := s; t < s+inst.Durations[i]; t++ {
			assign[res.X[i][t-es]] = true
		}
	}

	if ok2, _ := evalAssign(res.Clauses, assign); ok2 {
		t.Fatal("expected the precedence clauses to reject job 2 starting before job 1 finishes")
	}
}

func TestEncodeSATPinsSourceAtZero(t *testing.T) {
	inst := buildChain()
	w, ok := timewindows.ResourceAware(inst, 5)
	if !ok {
		t.Fatal("expected feasible windows")
	}
	alloc := &counter{}
	res := EncodeSAT(inst, w, alloc)

	found := false
	for _, cl := range res.Clauses {
		if len(cl) == 1 && cl[0] == res.Y[0][0] {
			found = true
			break
		}
	}
	if !found {
		t.Fatal("expected a unit clause pinning the source's start indicator")
	}
}
