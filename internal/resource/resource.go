// Package resource builds the pseudo-boolean resource-capacity
// constraints: one Σ qᵢyᵢ ≤ capacity(k,t) inequality per
// (resource, time-unit) pair, in terms of the same y[job,offset]
// variables the precedence encoder allocates.
package resource

import (
	"github.com/jpleunes/rcpsptexact/internal/pbconstr"
	"github.com/jpleunes/rcpsptexact/internal/problem"
	"github.com/jpleunes/rcpsptexact/internal/timewindows"
)

// BuildPBConstraints returns one constraint per (k,t) with k in
// [0,NResources) and t in [0,ub) that has at least one nonzero term.
// Empty constraints (no job can possibly be mid-execution at t) are
// dropped.
//
// A job i contributes a term for time t if t falls in its run-time
// window RTW(i)=[ES[i],LC[i]) and there is some execution offset e in
// [0,durations[i]) with start time t-e inside its start-time window
// STW(i)=[ES[i],LS[i]] and a nonzero request requests[i][k][e].
func BuildPBConstraints(inst *problem.Instance, w *timewindows.Windows, ub int) []*pbconstr.Constraint {
	var constrs []*pbconstr.Constraint
	for k := 0; k < inst.NResources; k++ {
		for t := 0; t < ub; t++ {
			c := pbconstr.New(inst.Capacities[k][t])
			for i := 0; i < inst.NJobs; i++ {
				es, ls, lc := w.ES[i], w.LS[i], w.LC[i]
				if t < es || t >= lc {
					continue
				}
				for e := 0; e < inst.Durations[i]; e++ {
					s := t - e
					if s < es || s > ls {
						continue
					}
					q := inst.Requests[i][k][e]
					if q == 0 {
						continue
					}
					c.AddTerm(q, pbconstr.Var{Job: i, Offset: s - es})
				}
			}
			if c.NTerms() > 0 {
				constrs = append(constrs, c)
			}
		}
	}
	return constrs
}
