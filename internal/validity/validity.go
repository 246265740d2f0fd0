// Package validity checks a candidate schedule against an instance's
// precedence and resource constraints, independent of whichever
// encoder produced it. Used by the WCNF path's model-decoding step,
// and available to any other caller that holds a plain []int
// schedule.
package validity

import "github.com/jpleunes/rcpsptexact/internal/problem"

// Check reports whether schedule (one start time per job, indexed like
// inst.Durations) respects every precedence and resource constraint.
//
// Remaining resource availability is tracked in one flat buffer indexed
// (k,t) -> k*horizon+t instead of a manually allocated [][]int.
func Check(inst *problem.Instance, schedule []int) bool {
	for job := 0; job < inst.NJobs; job++ {
		for _, pred := range inst.Predecessors[job] {
			if schedule[job] < schedule[pred]+inst.Durations[pred] {
				return false
			}
		}
	}

	available := make([]int, inst.NResources*inst.Horizon)
	for k := 0; k < inst.NResources; k++ {
		copy(available[k*inst.Horizon:(k+1)*inst.Horizon], inst.Capacities[k])
	}

	for job := 0; job < inst.NJobs; job++ {
		for k := 0; k < inst.NResources; k++ {
			for t := 0; t < inst.Durations[job]; t++ {
				curr := schedule[job] + t
				idx := k*inst.Horizon + curr
				available[idx] -= inst.Requests[job][k][t]
				if available[idx] < 0 {
					return false
				}
			}
		}
	}
	return true
}
