// Package timewindows computes per-activity start/close time windows.
// Two independent algorithms are provided: a
// resource-aware forward/backward critical-path sweep (for the SAT and
// WCNF paths) and an extended-precedence graph with energetic time lags
// closed by repeated Floyd-Warshall (for the SMT path).
package timewindows

import "github.com/jpleunes/rcpsptexact/internal/problem"

// Windows holds the four per-activity time vectors.
// ES[i]+Durations[i]=EC[i], LS[i]+Durations[i]=LC[i], ES[i] <= LS[i].
type Windows struct {
	ES, EC, LS, LC []int
}

// STW returns the start-time window [ES[i], LS[i]] of job i.
func (w *Windows) STW(i int) (lo, hi int) { return w.ES[i], w.LS[i] }

// RTW returns the run-time window [ES[i], LC[i]) of job i.
func (w *Windows) RTW(i int) (lo, hi int) { return w.ES[i], w.LC[i] }

func newWindows(n int) *Windows {
	return &Windows{
		ES: make([]int, n),
		EC: make([]int, n),
		LS: make([]int, n),
		LC: make([]int, n),
	}
}

// ResourceAware computes time windows via the forward/backward
// resource-aware critical path sweep. It returns false
// if the instance is infeasible at the given upper bound (some EC
// overshoots ub, or some LS goes negative).
func ResourceAware(inst *problem.Instance, ub int) (*Windows, bool) {
	n := inst.NJobs
	w := newWindows(n)

	// Forward sweep: earliest feasible close times.
	queue := make([]int, 0, n)
	queue = append(queue, 0)
	for len(queue) > 0 {
		job := queue[0]
		queue = queue[1:]
		dur := inst.Durations[job]
		for {
			feasible := true
		resourceLoop:
			for k := 0; k < inst.NResources; k++ {
				for t := dur - 1; t >= 0; t-- {
					if inst.Requests[job][k][t] > inst.Capacities[k][w.EC[job]-dur+t] {
						feasible = false
						w.EC[job]++
						break resourceLoop
					}
				}
			}
			if feasible {
				break
			}
			if w.EC[job] > ub {
				return nil, false
			}
		}
		for _, s := range inst.Successors[job] {
			c := w.EC[job] + inst.Durations[s]
			if c > w.EC[s] {
				w.EC[s] = c
			}
			queue = append(queue, s)
		}
	}

	// Backward sweep: latest feasible start times.
	for i := range w.LS {
		w.LS[i] = ub
	}
	queue = append(queue, n-1)
	for len(queue) > 0 {
		job := queue[0]
		queue = queue[1:]
		dur := inst.Durations[job]
		for {
			feasible := true
		resourceLoop2:
			for k := 0; k < inst.NResources; k++ {
				for t := 0; t < dur; t++ {
					if inst.Requests[job][k][t] > inst.Capacities[k][w.LS[job]+t] {
						feasible = false
						w.LS[job]--
						break resourceLoop2
					}
				}
			}
			if feasible {
				break
			}
			if w.LS[job] < 0 {
				return nil, false
			}
		}
		for _, p := range inst.Predecessors[job] {
			s := w.LS[job] - inst.Durations[p]
			if s < w.LS[p] {
				w.LS[p] = s
			}
			queue = append(queue, p)
		}
	}

	for i := 0; i < n; i++ {
		w.ES[i] = w.EC[i] - inst.Durations[i]
		w.LC[i] = w.LS[i] + inst.Durations[i]
	}
	return w, true
}
