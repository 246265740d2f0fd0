// Package ginisat adapts github.com/go-air/gini into the
// backend.Backend contract: it is the SAT engine for the `sat` CLI
// path (the `maxsat` path only writes a file for an external solver),
// and the Boolean-skeleton search
// internal/backend/idl's QF_IDL solver refines against.
package ginisat

import (
	"time"

	"github.com/go-air/gini"
	"github.com/go-air/gini/z"
	"github.com/jpleunes/rcpsptexact/internal/backend"
)

type giniBackend struct {
	g    *gini.Gini
	vars []z.Lit // vars[v-1] is the positive literal for 1-based variable v
}

// New returns a Backend wrapping a fresh gini instance over nvars
// variables, initialised with clauses.
func New(nvars int, clauses [][]int) backend.Backend {
	g := gini.New()
	vars := make([]z.Lit, nvars)
	for i := range vars {
		vars[i] = g.Lit()
	}
	b := &giniBackend{g: g, vars: vars}
	for _, c := range clauses {
		b.AddClause(c)
	}
	return b
}

func (b *giniBackend) litOf(v int) z.Lit {
	if v < 0 {
		return b.vars[-v-1].Not()
	}
	return b.vars[v-1]
}

func (b *giniBackend) AddClause(lits []int) {
	for _, l := range lits {
		b.g.Add(b.litOf(l))
	}
	b.g.Add(z.LitNull)
}

// Solve runs gini's solver in the background so stop can cancel it
// cooperatively: gini's own Try/Stop protocol is the cooperative
// interrupt mechanism here, matching the Backend contract's Solve
// semantics.
func (b *giniBackend) Solve(stop <-chan struct{}) backend.Status {
	solve := b.g.GoSolve()
	if stop != nil {
		go func() {
			<-stop
			solve.Stop()
		}()
	}
	switch solve.Try(24 * time.Hour) {
	case 1:
		return backend.Sat
	case -1:
		return backend.Unsat
	default:
		return backend.Interrupted
	}
}

func (b *giniBackend) Value(v int) bool {
	return b.g.Value(b.litOf(v))
}
