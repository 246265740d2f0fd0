// Package problem defines the input data model for the RCPSP/t: activities,
// their precedence relations, durations, time-dependent resource requests
// and time-dependent resource capacities.
package problem

import "fmt"

// An Instance describes one RCPSP/t problem. Job 0 is the dummy source and
// job NJobs-1 the dummy sink; both have zero duration and zero requests.
// Instances are immutable once built: nothing in this package mutates an
// Instance after NewInstance returns.
type Instance struct {
	NJobs       int // N
	Horizon     int // T
	NResources  int // R
	Successors  [][]int
	Predecessors [][]int
	Durations   []int
	// Requests[i][k][e] is the demand of job i on resource k at execution
	// tick e, for e in [0, Durations[i]).
	Requests [][][]int
	// Capacities[k][t] is the capacity of resource k at time t, for
	// t in [0, Horizon).
	Capacities [][]int
}

// NewInstance allocates an Instance with the given dimensions and
// zero-valued slices ready to be filled in by a parser.
func NewInstance(njobs, horizon, nresources int) *Instance {
	inst := &Instance{
		NJobs:        njobs,
		Horizon:      horizon,
		NResources:   nresources,
		Successors:   make([][]int, njobs),
		Predecessors: make([][]int, njobs),
		Durations:    make([]int, 0, njobs),
		Requests:     make([][][]int, njobs),
		Capacities:   make([][]int, nresources),
	}
	for i := range inst.Requests {
		inst.Requests[i] = make([][]int, nresources)
	}
	return inst
}

// Validate checks the data model's invariants: non-negative values, an
// acyclic precedence graph reachable from job 0 and reaching job N-1, and
// requests indexed only inside each activity's duration.
func (inst *Instance) Validate() error {
	n := inst.NJobs
	if n < 2 {
		return fmt.Errorf("problem: need at least 2 jobs (source and sink), got %d", n)
	}
	if len(inst.Durations) != n {
		return fmt.Errorf("problem: expected %d durations, got %d", n, len(inst.Durations))
	}
	if inst.Durations[0] != 0 || inst.Durations[n-1] != 0 {
		return fmt.Errorf("problem: dummy source/sink must have zero duration")
	}
	for i, d := range inst.Durations {
		if d < 0 {
			return fmt.Errorf("problem: job %d has negative duration %d", i, d)
		}
		for k := 0; k < inst.NResources; k++ {
			if len(inst.Requests[i][k]) != d {
				return fmt.Errorf("problem: job %d resource %d has %d request ticks, want %d", i, k, len(inst.Requests[i][k]), d)
			}
			for _, q := range inst.Requests[i][k] {
				if q < 0 {
					return fmt.Errorf("problem: job %d resource %d has negative request %d", i, k, q)
				}
			}
		}
	}
	for k := 0; k < inst.NResources; k++ {
		if len(inst.Capacities[k]) != inst.Horizon {
			return fmt.Errorf("problem: resource %d has %d capacity entries, want horizon %d", k, len(inst.Capacities[k]), inst.Horizon)
		}
		for _, c := range inst.Capacities[k] {
			if c < 0 {
				return fmt.Errorf("problem: resource %d has negative capacity %d", k, c)
			}
		}
	}
	if err := inst.checkAcyclicAndReachable(); err != nil {
		return err
	}
	return nil
}

func (inst *Instance) checkAcyclicAndReachable() error {
	n := inst.NJobs
	const (
		white = 0
		gray  = 1
		black = 2
	)
	color := make([]byte, n)
	var visit func(j int) error
	visit = func(j int) error {
		color[j] = gray
		for _, s := range inst.Successors[j] {
			switch color[s] {
			case gray:
				return fmt.Errorf("problem: precedence cycle detected at job %d", s)
			case white:
				if err := visit(s); err != nil {
					return err
				}
			}
		}
		color[j] = black
		return nil
	}
	if err := visit(0); err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		if color[i] == white {
			return fmt.Errorf("problem: job %d is not reachable from the source", i)
		}
	}
	reached := make([]bool, n)
	reached[n-1] = true
	queue := []int{n - 1}
	for len(queue) > 0 {
		j := queue[len(queue)-1]
		queue = queue[:len(queue)-1]
		for _, p := range inst.Predecessors[j] {
			if !reached[p] {
				reached[p] = true
				queue = append(queue, p)
			}
		}
	}
	for i := 0; i < n; i++ {
		if !reached[i] {
			return fmt.Errorf("problem: job %d does not reach the sink", i)
		}
	}
	return nil
}

// Bounds is the seeded (LB, UB) pair the driver optimises between.
type Bounds struct {
	LB int
	UB int
}
