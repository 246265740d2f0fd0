// Package engine wires the solver pipeline together: it takes bounds
// from the heuristic bounder, drives time-window computation and
// formula assembly, hands the result to a SolverDriver, and turns
// whatever comes back into a Measurements record and a result line.
package engine

import (
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/jpleunes/rcpsptexact/internal/backend"
	"github.com/jpleunes/rcpsptexact/internal/backend/ginisat"
	"github.com/jpleunes/rcpsptexact/internal/backend/idl"
	"github.com/jpleunes/rcpsptexact/internal/driver"
	"github.com/jpleunes/rcpsptexact/internal/formula"
	"github.com/jpleunes/rcpsptexact/internal/heuristic"
	"github.com/jpleunes/rcpsptexact/internal/problem"
	"github.com/jpleunes/rcpsptexact/internal/timewindows"
	"github.com/jpleunes/rcpsptexact/internal/validity"
)

// SolveSAT runs the SAT-path pipeline: resource-aware time windows,
// formula assembly, and the destructive-upper-bound optimisation loop,
// against the go-air/gini backend.
func SolveSAT(inst *problem.Instance, path string) *problem.Measurements {
	m := &problem.Measurements{InputPath: path}
	bounds := heuristic.Run(inst)

	encStart := time.Now()
	w, ok := timewindows.ResourceAware(inst, bounds.UB)
	if !ok {
		log.WithField("file", path).Info("resource-aware preprocessing proved infeasibility")
		m.Certified = true
		m.EncodeTime = time.Since(encStart)
		return m
	}

	f := formula.AssembleSAT(inst, w, bounds.UB)
	m.EncodeTime = time.Since(encStart)
	m.NBoolVars = f.NVars
	m.NClauses = len(f.Clauses)

	if len(f.Clauses) == 1 && len(f.Clauses[0]) == 0 {
		m.Certified = true
		return m
	}

	var be backend.Backend = ginisat.New(f.NVars, f.Clauses)

	searchStart := time.Now()
	d := driver.New(be, f.Y, esOf(w, inst.NJobs), bounds.LB, bounds.UB)
	res := d.Run()
	m.SearchTime = time.Since(searchStart)

	applyResult(m, res)
	return m
}

// SolveSMT runs the SMT-path pipeline: extended-precedence
// time windows with energetic lags, formula assembly over the
// Boolean-skeleton-plus-theory-atoms encoding, and the same
// destructive-upper-bound loop against the from-scratch QF_IDL solver.
func SolveSMT(inst *problem.Instance, path string) *problem.Measurements {
	m := &problem.Measurements{InputPath: path}
	bounds := heuristic.Run(inst)

	encStart := time.Now()
	ext := timewindows.ComputeExtendedPrecedence(inst, bounds.UB)
	f := formula.AssembleSMT(inst, ext, bounds.UB)
	m.EncodeTime = time.Since(encStart)
	m.NBoolVars = f.NVars
	m.NIntVars = inst.NJobs
	m.NClauses = len(f.Clauses)

	if len(f.Clauses) == 1 && len(f.Clauses[0]) == 0 {
		m.Certified = true
		return m
	}

	sv := idl.NewSolver(f.NVars, inst.NJobs, f.Clauses, f.PermanentAtoms, f.TheoryLits)

	searchStart := time.Now()
	d := driver.New(sv, f.Y, esOf(ext.Windows, inst.NJobs), bounds.LB, bounds.UB)
	res := d.Run()
	m.SearchTime = time.Since(searchStart)

	applyResult(m, res)
	return m
}

func esOf(w *timewindows.Windows, n int) []int {
	es := make([]int, n)
	copy(es, w.ES)
	return es
}

func applyResult(m *problem.Measurements, res driver.Result) {
	switch res.Kind {
	case driver.Infeasible:
		m.Certified = true
	case driver.Optimal:
		m.Certified = true
		m.Schedule = res.Schedule
	case driver.Interrupted:
		m.Certified = false
		m.Schedule = res.Schedule
		log.Warn("search interrupted, reporting best schedule found so far")
	}
}

// ResultLine formats m as a single comma-separated stdout line
// reporting every measurement a caller needs to judge a run.
func ResultLine(m *problem.Measurements) string {
	valid := 0
	if len(m.Schedule) > 0 {
		// Validity is only meaningful once there is a schedule to check;
		// the instance this schedule belongs to is not available here,
		// so callers that can supply it should prefer ResultLineChecked.
		valid = 1
	}
	return formatLine(m, valid)
}

// ResultLineChecked is ResultLine but re-validates the schedule against
// inst before reporting the valid flag, so a WCNF round-trip is checked
// to actually reproduce a valid schedule rather than just a non-empty one.
func ResultLineChecked(m *problem.Measurements, inst *problem.Instance) string {
	valid := 0
	if len(m.Schedule) > 0 && validity.Check(inst, m.Schedule) {
		valid = 1
	}
	return formatLine(m, valid)
}

func formatLine(m *problem.Measurements, valid int) string {
	certified := 0
	if m.Certified {
		certified = 1
	}
	schedule := make([]string, len(m.Schedule))
	for i, s := range m.Schedule {
		schedule[i] = fmt.Sprintf("%d", s)
	}
	return fmt.Sprintf("%s, %d, %d, %d, %d, %d, %d, %d, %d, %d, %s",
		m.InputPath,
		m.NBoolVars,
		m.NIntVars,
		m.NClauses,
		m.EncodeTime.Milliseconds(),
		m.SearchTime.Milliseconds(),
		m.TotalTime().Milliseconds(),
		m.Makespan(),
		valid,
		certified,
		strings.Join(schedule, "."),
	)
}
