// Package instance parses a PSPLIB-style project file into an
// internal/problem.Instance. This, per the core's own reckoning, is an
// external collaborator: the core only ever consumes an already-built
// Instance, never a byte stream.
//
// The file format is a sequence of sections separated by lines made
// entirely of '*'. A minimal file looks like:
//
//	***************************************************************
//	jobs:  4
//	horizon: 10
//	2 resources
//	***************************************************************
//	PRECEDENCE RELATIONS:
//	jobnr.    #successors   successors
//	1         2              2   3
//	2         1              4
//	3         1              4
//	4         0
//	***************************************************************
//	REQUESTS/DURATIONS:
//	jobnr.  resource  duration  demands
//	1       1         0
//	1       2
//	2       1         3         1 1 1
//	2       2                   0 1 0
//	3       1         2         1 1
//	3       2                   1 0
//	4       1         0
//	4       2
//
// The duration column appears only on a job's first resource line; the
// lines for its other resources carry the per-tick demands alone.
//	***************************************************************
//	RESOURCEAVAILABILITIES:
//	R1   R2
//	1 1 1 1 1 1 1 1 1 1
//	1 1 1 1 1 1 1 1 1 1
//	***************************************************************
//
// Job and resource indices in the file are 1-based; the Instance this
// package produces is 0-based throughout, matching the core.
package instance

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/jpleunes/rcpsptexact/internal/problem"
)

// Parse reads a project file from r and builds the Instance it describes.
func Parse(r io.Reader) (*problem.Instance, error) {
	sc := bufio.NewScanner(r)
	p := &parser{sc: sc}
	if err := p.run(); err != nil {
		return nil, errors.Wrap(err, "parse instance")
	}
	return p.build()
}

type parser struct {
	sc *bufio.Scanner

	njobs, horizon, nresources int
	successors                [][]int // 0-based
	durations                  []int
	requests                  [][][]int // [job][resource][tick]
	capacities                [][]int   // [resource][t]
}

func isSeparator(line string) bool {
	t := strings.TrimSpace(line)
	return len(t) > 0 && strings.Count(t, "*") == len(t)
}

func (p *parser) nextLine() (string, bool) {
	for p.sc.Scan() {
		line := p.sc.Text()
		if strings.TrimSpace(line) == "" || isSeparator(line) {
			continue
		}
		return line, true
	}
	return "", false
}

func (p *parser) run() error {
	if err := p.parseHeader(); err != nil {
		return err
	}
	if err := p.parsePrecedence(); err != nil {
		return err
	}
	if err := p.parseRequestsDurations(); err != nil {
		return err
	}
	if err := p.parseAvailabilities(); err != nil {
		return err
	}
	if err := p.sc.Err(); err != nil {
		return errors.Wrap(err, "scan")
	}
	return nil
}

func (p *parser) parseHeader() error {
	for {
		line, ok := p.nextLine()
		if !ok {
			return errors.New("unexpected end of file in header")
		}
		fields := strings.Fields(line)
		switch {
		case strings.HasPrefix(line, "jobs"):
			n, err := strconv.Atoi(strings.TrimRight(fields[len(fields)-1], ":"))
			if err != nil {
				return errors.Wrapf(err, "parse jobs count %q", line)
			}
			p.njobs = n
		case strings.HasPrefix(line, "horizon"):
			n, err := strconv.Atoi(fields[len(fields)-1])
			if err != nil {
				return errors.Wrapf(err, "parse horizon %q", line)
			}
			p.horizon = n
		case len(fields) >= 2 && fields[len(fields)-1] == "resources":
			n, err := strconv.Atoi(fields[0])
			if err != nil {
				return errors.Wrapf(err, "parse resource count %q", line)
			}
			p.nresources = n
			return nil
		}
	}
}

func (p *parser) parsePrecedence() error {
	line, ok := p.nextLine()
	if !ok || !strings.HasPrefix(line, "PRECEDENCE") {
		return errors.Errorf("expected PRECEDENCE RELATIONS section, got %q", line)
	}
	if _, ok := p.nextLine(); !ok { // column header line
		return errors.New("unexpected end of file in precedence section")
	}
	p.successors = make([][]int, p.njobs)
	for i := 0; i < p.njobs; i++ {
		line, ok := p.nextLine()
		if !ok {
			return errors.New("unexpected end of file reading precedence")
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			return errors.Errorf("malformed precedence line %q", line)
		}
		nsucc, err := strconv.Atoi(fields[1])
		if err != nil {
			return errors.Wrapf(err, "parse successor count %q", line)
		}
		succ := make([]int, nsucc)
		for j := 0; j < nsucc; j++ {
			s, err := strconv.Atoi(fields[2+j])
			if err != nil {
				return errors.Wrapf(err, "parse successor index %q", line)
			}
			succ[j] = s - 1
		}
		jobIdx, err := strconv.Atoi(fields[0])
		if err != nil {
			return errors.Wrapf(err, "parse job index %q", line)
		}
		p.successors[jobIdx-1] = succ
	}
	return nil
}

func (p *parser) parseRequestsDurations() error {
	line, ok := p.nextLine()
	if !ok || !strings.HasPrefix(line, "REQUESTS/DURATIONS") {
		return errors.Errorf("expected REQUESTS/DURATIONS section, got %q", line)
	}
	if _, ok := p.nextLine(); !ok { // column header line
		return errors.New("unexpected end of file in requests section")
	}
	p.durations = make([]int, p.njobs)
	p.requests = make([][][]int, p.njobs)
	for i := range p.requests {
		p.requests[i] = make([][]int, p.nresources)
	}
	for i := 0; i < p.njobs; i++ {
		for k := 0; k < p.nresources; k++ {
			line, ok := p.nextLine()
			if !ok {
				return errors.New("unexpected end of file reading requests")
			}
			fields := strings.Fields(line)
			jobIdx, err := strconv.Atoi(fields[0])
			if err != nil {
				return errors.Wrapf(err, "parse job index %q", line)
			}
			job := jobIdx - 1
			rest := fields[2:] // skip job, resource columns
			var duration int
			var demandFields []string
			if k == 0 {
				duration, err = strconv.Atoi(rest[0])
				if err != nil {
					return errors.Wrapf(err, "parse duration %q", line)
				}
				p.durations[job] = duration
				demandFields = rest[1:]
			} else {
				duration = p.durations[job]
				demandFields = rest
			}
			demands := make([]int, duration)
			for t := 0; t < duration; t++ {
				d, err := strconv.Atoi(demandFields[t])
				if err != nil {
					return errors.Wrapf(err, "parse demand %q", line)
				}
				demands[t] = d
			}
			p.requests[job][k] = demands
		}
	}
	return nil
}

func (p *parser) parseAvailabilities() error {
	line, ok := p.nextLine()
	if !ok || !strings.HasPrefix(line, "RESOURCEAVAILABILITIES") {
		return errors.Errorf("expected RESOURCEAVAILABILITIES section, got %q", line)
	}
	if _, ok := p.nextLine(); !ok { // resource name header line
		return errors.New("unexpected end of file in availabilities section")
	}
	p.capacities = make([][]int, p.nresources)
	for k := 0; k < p.nresources; k++ {
		line, ok := p.nextLine()
		if !ok {
			return errors.New("unexpected end of file reading availabilities")
		}
		fields := strings.Fields(line)
		if len(fields) < p.horizon {
			return errors.Errorf("expected %d capacities, got %d in %q", p.horizon, len(fields), line)
		}
		caps := make([]int, p.horizon)
		for t := 0; t < p.horizon; t++ {
			c, err := strconv.Atoi(fields[t])
			if err != nil {
				return errors.Wrapf(err, "parse capacity %q", line)
			}
			caps[t] = c
		}
		p.capacities[k] = caps
	}
	return nil
}

func (p *parser) build() (*problem.Instance, error) {
	predecessors := make([][]int, p.njobs)
	for i, succ := range p.successors {
		for _, s := range succ {
			predecessors[s] = append(predecessors[s], i)
		}
	}
	inst := &problem.Instance{
		NJobs:        p.njobs,
		Horizon:      p.horizon,
		NResources:   p.nresources,
		Successors:   p.successors,
		Predecessors: predecessors,
		Durations:    p.durations,
		Requests:     p.requests,
		Capacities:   p.capacities,
	}
	if err := inst.Validate(); err != nil {
		return nil, errors.Wrap(err, "validate instance")
	}
	return inst, nil
}
