// Package heuristic provides the resource-aware priority-rule bounder
// the core treats as an opaque external collaborator: given a Problem
// it produces an initial (LB, UB) and, when it manages
// to build one, a feasible seed schedule.
//
// The algorithm is a serial schedule-generation scheme (SGS): jobs are
// scheduled one at a time in a fixed, deterministic order (topological,
// ties broken by job index), each job getting the earliest time at or
// after its predecessors' finish times at which every resource it
// needs is actually available for its whole duration. This is
// deterministic by construction, satisfying the reproducibility
// requirement the core's contract places on any bounder.
package heuristic

import "github.com/jpleunes/rcpsptexact/internal/problem"

// Result is what the core's contract requires from a bounder: bounds
// to seed the optimisation loop with, and — if the SGS managed to
// place every job within the horizon — a feasible schedule.
type Result struct {
	LB, UB   int
	Schedule []int // nil if no feasible schedule was found
}

// Run computes deterministic bounds for inst. LB is the length of the
// longest path through the precedence DAG by duration (a resource-blind
// critical path, always a valid lower bound); UB is the sink's start
// time in the serial-SGS schedule, or inst.Horizon if the SGS could not
// place every job within it.
func Run(inst *problem.Instance) Result {
	order := topologicalOrder(inst)
	lb := criticalPathLB(inst, order)

	schedule, ok := serialSGS(inst, order)
	if !ok {
		return Result{LB: lb, UB: inst.Horizon}
	}
	return Result{LB: lb, UB: schedule[inst.NJobs-1], Schedule: schedule}
}

// topologicalOrder returns job indices in a fixed topological order:
// Kahn's algorithm with ties broken by ascending job index, so the
// order (and everything derived from it) is reproducible.
func topologicalOrder(inst *problem.Instance) []int {
	n := inst.NJobs
	indeg := make([]int, n)
	for i := 0; i < n; i++ {
		indeg[i] = len(inst.Predecessors[i])
	}
	ready := make([]int, 0, n)
	for i := 0; i < n; i++ {
		if indeg[i] == 0 {
			ready = append(ready, i)
		}
	}
	order := make([]int, 0, n)
	for len(ready) > 0 {
		// ready is kept small; a linear scan for the minimum index
		// keeps the order deterministic without a heap.
		minPos := 0
		for i := 1; i < len(ready); i++ {
			if ready[i] < ready[minPos] {
				minPos = i
			}
		}
		j := ready[minPos]
		ready = append(ready[:minPos], ready[minPos+1:]...)
		order = append(order, j)
		for _, s := range inst.Successors[j] {
			indeg[s]--
			if indeg[s] == 0 {
				ready = append(ready, s)
			}
		}
	}
	return order
}

// criticalPathLB is the longest duration-weighted path from the source
// to the sink, ignoring resource contention: a sound lower bound on
// the makespan under any resource-feasible schedule.
func criticalPathLB(inst *problem.Instance, order []int) int {
	ec := make([]int, inst.NJobs)
	for _, j := range order {
		for _, p := range inst.Predecessors[j] {
			if c := ec[p] + inst.Durations[j]; c > ec[j] {
				ec[j] = c
			}
		}
	}
	return ec[inst.NJobs-1]
}

// serialSGS places every job, in order, at the earliest time no
// earlier than every predecessor's finish and at which every resource
// tick it needs is actually available, returning false if any job
// cannot be placed within the horizon.
func serialSGS(inst *problem.Instance, order []int) ([]int, bool) {
	n := inst.NJobs
	schedule := make([]int, n)
	remaining := make([][]int, inst.NResources)
	for k := range remaining {
		remaining[k] = append([]int{}, inst.Capacities[k]...)
	}

	for _, j := range order {
		earliest := 0
		for _, p := range inst.Predecessors[j] {
			if f := schedule[p] + inst.Durations[p]; f > earliest {
				earliest = f
			}
		}
		start, ok := firstFeasibleStart(inst, remaining, j, earliest)
		if !ok {
			return nil, false
		}
		schedule[j] = start
		for k := 0; k < inst.NResources; k++ {
			for e := 0; e < inst.Durations[j]; e++ {
				remaining[k][start+e] -= inst.Requests[j][k][e]
			}
		}
	}
	return schedule, true
}

func firstFeasibleStart(inst *problem.Instance, remaining [][]int, job, earliest int) (int, bool) {
	dur := inst.Durations[job]
	for s := earliest; s+dur <= inst.Horizon; s++ {
		feasible := true
		for k := 0; k < inst.NResources && feasible; k++ {
			for e := 0; e < dur; e++ {
				if remaining[k][s+e] < inst.Requests[job][k][e] {
					feasible = false
					break
				}
			}
		}
		if feasible {
			return s, true
		}
	}
	return 0, false
}
