package timewindows

import "github.com/jpleunes/rcpsptexact/internal/problem"

// infLag is the "unreachable" sentinel for the distance matrix: big
// enough that summing two of them never overflows a Go int on any
// supported platform.
const infLag = 1 << 30

// ExtendedPrecedence holds the minimum
// start-to-start distance matrix l[i][j], the extended successor sets
// Estar[i] = {j : l[i][j] < infinity}, and the time windows derived from
// them (ES[i]=l[0][i], LS[i]=UB-l[i][N-1]).
type ExtendedPrecedence struct {
	Windows *Windows
	L       [][]int
	Estar   [][]int
}

// Lag returns l[i][j], or infLag if j is not reachable from i in the
// extended precedence graph.
func (e *ExtendedPrecedence) Lag(i, j int) int { return e.L[i][j] }

// ComputeExtendedPrecedence runs a Floyd-Warshall closure of
// the direct-successor distances, followed by energetic-reasoning
// tightening of each (i,j) pair with j in Estar[i], re-closing the matrix
// whenever a lag is tightened, until a fixed point is reached.
func ComputeExtendedPrecedence(inst *problem.Instance, ub int) *ExtendedPrecedence {
	n := inst.NJobs
	l := make([][]int, n)
	for i := range l {
		l[i] = make([]int, n)
		for j := range l[i] {
			l[i][j] = infLag
		}
		l[i][i] = 0
	}
	for i := 0; i < n; i++ {
		for _, j := range inst.Successors[i] {
			l[i][j] = inst.Durations[i]
		}
	}

	floydWarshall(l)

	estar := extendedSuccessors(l)

	maxCapacities := make([]int, inst.NResources)
	for k := 0; k < inst.NResources; k++ {
		for t := 0; t < inst.Horizon; t++ {
			if inst.Capacities[k][t] > maxCapacities[k] {
				maxCapacities[k] = inst.Capacities[k][t]
			}
		}
	}

	for i := 0; i < n; i++ {
		for _, j := range estar[i] {
			if i == j {
				continue
			}
			maxRlb := -1
			for k := 0; k < inst.NResources; k++ {
				rlb := 0
				for _, a := range estar[i] {
					if a == j || l[a][j] >= infLag {
						continue
					}
					for t := 0; t < inst.Durations[a]; t++ {
						rlb += inst.Requests[a][k][t]
					}
				}
				// Floor division: ceiling would overstate the extra lag this
				// bound forces, so floor is the only choice that keeps it a
				// sound lower bound.
				if maxCapacities[k] > 0 {
					rlb /= maxCapacities[k]
				} else {
					rlb = 0
				}
				if rlb > maxRlb {
					maxRlb = rlb
				}
			}
			if maxRlb > l[i][j] {
				l[i][j] = maxRlb
				floydWarshall(l)
				estar = extendedSuccessors(l)
			}
		}
	}

	w := newWindows(n)
	for i := 0; i < n; i++ {
		w.ES[i] = l[0][i]
		w.EC[i] = l[0][i] + inst.Durations[i]
		w.LS[i] = ub - l[i][n-1]
		w.LC[i] = ub - l[i][n-1] + inst.Durations[i]
	}

	return &ExtendedPrecedence{Windows: w, L: l, Estar: estar}
}

func floydWarshall(l [][]int) {
	n := len(l)
	for k := 0; k < n; k++ {
		for i := 0; i < n; i++ {
			lik := l[i][k]
			if lik >= infLag {
				continue
			}
			for j := 0; j < n; j++ {
				lkj := l[k][j]
				if lkj >= infLag {
					continue
				}
				// Keep the longest known distance: a lag is a lower bound on
				// S[j]-S[i], so every path through k must be respected.
				if l[i][j] >= infLag || lik+lkj > l[i][j] {
					l[i][j] = lik + lkj
				}
			}
		}
	}
}

func extendedSuccessors(l [][]int) [][]int {
	n := len(l)
	estar := make([][]int, n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if l[i][j] < infLag {
				estar[i] = append(estar[i], j)
			}
		}
	}
	return estar
}
