// Package driver implements the destructive-upper-bound optimization
// loop against a decision backend (internal/backend), with cooperative
// interruption and a small explicit state machine.
package driver

import (
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/jpleunes/rcpsptexact/internal/backend"
	"github.com/jpleunes/rcpsptexact/internal/precedence"
)

// State is the driver's lifecycle.
type State int

const (
	Idle State = iota
	Encoding
	Searching
	HoldingModel
	DoneOptimal
	DoneInfeasible
	InterruptedState
)

// Driver owns one decision backend and the variable table needed to
// read a model back into a schedule. It is built already encoded
// (Encoding is a state of the caller's formula-assembly step, recorded
// here only for State's sake); constructing a Driver moves it to Idle.
type Driver struct {
	mu    sync.Mutex
	state State

	be  backend.Backend
	y   precedence.YTable
	es  []int
	sinkOffset int // index of the sink job's Y slice, i.e. len(y)-1

	lb, ub int
	best   []int

	stopOnce sync.Once
	stop     chan struct{}
}

// New returns a Driver ready to run against an already-assembled
// formula: y/es describe every job's start-indicator variables and the
// offset they are relative to, lb/ub the bounds to search between.
func New(be backend.Backend, y precedence.YTable, es []int, lb, ub int) *Driver {
	return &Driver{
		be:         be,
		y:          y,
		es:         es,
		sinkOffset: len(y) - 1,
		lb:         lb,
		ub:         ub,
		stop:       make(chan struct{}),
		state:      Idle,
	}
}

// State reports the driver's current lifecycle state.
func (d *Driver) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

func (d *Driver) setState(s State) {
	d.mu.Lock()
	d.state = s
	d.mu.Unlock()
}

// requestStop cooperatively asks the in-progress (or next) Solve call
// to abandon the search. Idempotent: a second signal while one is
// already pending is a no-op.
func (d *Driver) requestStop() {
	d.stopOnce.Do(func() { close(d.stop) })
}

// Run executes the destructive-upper-bound loop: solve at
// the current bound, and on every Sat result tighten ub to (makespan-1)
// by blocking every sink start time above it, until the backend reports
// Unsat (the previous model was optimal) or ub drops below lb.
//
// Run registers the Driver in the single OS-signal slot for its
// duration, so a SIGINT arriving mid-search calls requestStop
// instead of leaving no one able to receive it.
func (d *Driver) Run() Result {
	deregister := register(d)
	defer deregister()

	d.setState(Searching)
	status := d.be.Solve(d.stop)
	switch status {
	case backend.Unsat:
		d.setState(DoneInfeasible)
		return Result{Kind: Infeasible}
	case backend.Interrupted:
		d.setState(InterruptedState)
		return Result{Kind: Interrupted}
	}

	d.setState(HoldingModel)
	d.best = d.extractSchedule()
	ubOld := d.ub
	d.ub = d.best[len(d.best)-1] - 1

	for d.ub >= d.lb {
		for t := d.ub; t < ubOld; t++ {
			d.be.AddClause([]int{-d.sinkLit(t + 1)})
		}

		d.setState(Searching)
		status = d.be.Solve(d.stop)
		switch status {
		case backend.Sat:
			d.setState(HoldingModel)
			d.best = d.extractSchedule()
			ubOld = d.ub
			d.ub = d.best[len(d.best)-1] - 1
		case backend.Unsat:
			d.setState(DoneOptimal)
			return Result{Kind: Optimal, Schedule: d.best}
		default:
			d.setState(InterruptedState)
			return Result{Kind: Interrupted, Schedule: d.best}
		}
	}

	d.setState(DoneOptimal)
	return Result{Kind: Optimal, Schedule: d.best}
}

// printCurrentResult logs the best schedule found so far, for a signal
// handler that caught the Driver outside the Searching state (nothing
// left to cooperatively stop) and is about to terminate the process.
func (d *Driver) printCurrentResult() {
	d.mu.Lock()
	best := d.best
	d.mu.Unlock()
	if len(best) == 0 {
		log.Warn("interrupted before any schedule was found")
		return
	}
	log.WithField("makespan", best[len(best)-1]).Warn("interrupted, reporting best schedule found so far")
}

// sinkLit returns the sink job's start-indicator variable for time t.
func (d *Driver) sinkLit(t int) int {
	return d.y[d.sinkOffset][t-d.es[d.sinkOffset]]
}

func (d *Driver) extractSchedule() []int {
	n := len(d.y)
	sched := make([]int, n)
	for i := 0; i < n; i++ {
		sched[i] = -1
		for offset, v := range d.y[i] {
			if d.be.Value(v) {
				sched[i] = d.es[i] + offset
				break
			}
		}
	}
	return sched
}
