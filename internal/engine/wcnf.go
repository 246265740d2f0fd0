package engine

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jpleunes/rcpsptexact/internal/formula"
	"github.com/jpleunes/rcpsptexact/internal/heuristic"
	"github.com/jpleunes/rcpsptexact/internal/problem"
	"github.com/jpleunes/rcpsptexact/internal/timewindows"
	"github.com/jpleunes/rcpsptexact/internal/wcnf"
)

// EncodeMaxSAT runs the SAT-path encoding and writes it to out as a
// WCNF file, returning the total encode time. An instance already
// infeasible at preprocessing gets the one-contradictory-clause file
// instead of a full encoding.
func EncodeMaxSAT(inst *problem.Instance, out io.Writer) (time.Duration, error) {
	start := time.Now()
	bounds := heuristic.Run(inst)
	w, ok := timewindows.ResourceAware(inst, bounds.UB)
	if !ok {
		if err := wcnf.WriteInfeasible(out); err != nil {
			return time.Since(start), err
		}
		return time.Since(start), nil
	}
	f := formula.AssembleSAT(inst, w, bounds.UB)
	if err := wcnf.Write(out, f, w); err != nil {
		return time.Since(start), err
	}
	return time.Since(start), nil
}

// DecodeMaxSAT is the "mod2sol" subcommand's core: it rebuilds the same
// formula an earlier EncodeMaxSAT call produced for inst and maps an
// external solver's model line back into a schedule, formatted as
// "<file>, <makespan>, <valid>, <schedule>" with the schedule's start
// times joined by '.'.
func DecodeMaxSAT(inst *problem.Instance, path, model string) string {
	bounds := heuristic.Run(inst)
	w, ok := timewindows.ResourceAware(inst, bounds.UB)
	if !ok {
		return fmt.Sprintf("%s, -1, 1, ", path)
	}
	f := formula.AssembleSAT(inst, w, bounds.UB)
	preprocessingInfeasible := len(f.Clauses) == 1 && len(f.Clauses[0]) == 0
	schedule, makespan, valid := wcnf.DecodeModel(model, f, w, inst, preprocessingInfeasible)

	validFlag := 0
	if valid {
		validFlag = 1
	}
	parts := make([]string, len(schedule))
	for i, s := range schedule {
		parts[i] = fmt.Sprintf("%d", s)
	}
	return fmt.Sprintf("%s, %d, %d, %s", path, makespan, validFlag, strings.Join(parts, "."))
}
