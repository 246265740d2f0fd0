// Package wcnf writes the SAT-path formula as a weighted DIMACS CNF
// file for an external MaxSAT solver and decodes the model line such a
// solver prints back into a checked schedule (the "maxsat" and
// "mod2sol" subcommands). Every clause this package writes is hard:
// the file format reserves room for soft clauses the encoder never
// actually emits, and Lit/Constr in constr.go documents that room without
// wiring it to anything, since nothing in this encoding produces a
// soft clause yet.
package wcnf

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jpleunes/rcpsptexact/internal/formula"
	"github.com/jpleunes/rcpsptexact/internal/precedence"
	"github.com/jpleunes/rcpsptexact/internal/problem"
	"github.com/jpleunes/rcpsptexact/internal/timewindows"
	"github.com/jpleunes/rcpsptexact/internal/validity"
)

// hardWeight is the weight assigned to every clause this package
// writes, chosen so it can never be outweighed by any combination of
// soft clauses a future extension might add.
const hardWeight = (1<<31 - 1) / 2

// Write emits f as a WCNF file: a comment header recording the y/x
// variable counts and each job's start-time window, followed by the
// standard "p wcnf nbvar nbclauses top" line and the clauses themselves.
func Write(w io.Writer, f *formula.SAT, win *timewindows.Windows) error {
	bw := bufio.NewWriter(w)

	ny := countVars(f.Y)
	nx := countVars(f.X)
	fmt.Fprintf(bw, "c %d %d\n", ny, nx)
	fmt.Fprintln(bw, "c")
	for i := range f.Y {
		fmt.Fprintf(bw, "c %d %d %d\n", i+1, win.ES[i], win.LS[i])
	}
	fmt.Fprintln(bw, "c")

	fmt.Fprintf(bw, "p wcnf %d %d %d\n", f.NVars, len(f.Clauses), hardWeight)
	for _, clause := range f.Clauses {
		fmt.Fprint(bw, hardWeight)
		for _, lit := range clause {
			fmt.Fprintf(bw, " %d", lit)
		}
		fmt.Fprintln(bw, " 0")
	}
	return bw.Flush()
}

// WriteInfeasible emits the single-contradictory-clause WCNF file that
// stands in for a formula preprocessing has already proven UNSAT,
// sparing every consumer downstream a separate infeasibility signal.
func WriteInfeasible(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "p wcnf 1 1 1")
	fmt.Fprintln(bw, "1 -1 0")
	return bw.Flush()
}

func countVars(t precedence.YTable) int {
	n := 0
	for _, row := range t {
		n += len(row)
	}
	return n
}

// DecodeModel parses the space-separated literal line an external
// MaxSAT solver prints for f, recovers each job's start time from the
// y variables using the same windows Write's header recorded, and
// validates the resulting schedule against inst. preprocessingInfeasible
// bypasses parsing entirely, mirroring the short-circuit a caller must
// take for a WriteInfeasible file, which has no model to read.
func DecodeModel(model string, f *formula.SAT, win *timewindows.Windows, inst *problem.Instance, preprocessingInfeasible bool) (schedule []int, makespan int, valid bool) {
	if preprocessingInfeasible {
		return nil, -1, true
	}

	set := make(map[int]bool)
	for _, tok := range strings.Fields(model) {
		lit, err := strconv.Atoi(tok)
		if err != nil {
			continue
		}
		if lit > 0 {
			set[lit] = true
		} else {
			set[-lit] = false
		}
	}

	n := len(f.Y)
	schedule = make([]int, n)
	for i := 0; i < n; i++ {
		schedule[i] = -1
		for offset, v := range f.Y[i] {
			if set[v] {
				schedule[i] = win.ES[i] + offset
				break
			}
		}
	}
	return schedule, schedule[n-1], validity.Check(inst, schedule)
}
