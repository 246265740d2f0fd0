// Package bdd compiles a pseudo-boolean constraint into an equivalent CNF
// via a Reduced Ordered Binary Decision Diagram (ROBDD), following
// Algorithm 1/2 of Abío et al. (2012).
//
// Unlike a textbook pointer-based BDD, nodes live in a per-constraint
// arena addressed by integer index: the two terminals are the
// fixed indices FalseTerminal and TrueTerminal, and every internal node's
// children are indices into the same arena. This keeps node records
// immutable and makes the auxiliary-Boolean table a simple map keyed
// by node index rather than a pointer-attached field.
package bdd

import "github.com/jpleunes/rcpsptexact/internal/pbconstr"

// Node-index constants: both terminals are pre-allocated at fixed
// positions in every arena.
const (
	FalseTerminal = 0
	TrueTerminal  = 1
)

// Node is either a terminal (Selector is the zero Var, Terminal is true)
// or an internal node with a selector variable and two child indices.
type Node struct {
	Terminal    bool
	Value       bool // meaningful iff Terminal
	Selector    pbconstr.Var
	FalseChild  int
	TrueChild   int
}

// Arena owns every BDD node built while compiling one PB constraint.
// It is discarded (and its nodes become garbage) once that constraint's
// clauses have been emitted, matching a pseudo-boolean constraint's
// ownership of its own BDD.
type Arena struct {
	nodes []Node
}

// NewArena returns an arena pre-populated with the two terminals.
func NewArena() *Arena {
	a := &Arena{nodes: make([]Node, 2, 16)}
	a.nodes[FalseTerminal] = Node{Terminal: true, Value: false}
	a.nodes[TrueTerminal] = Node{Terminal: true, Value: true}
	return a
}

func (a *Arena) newInternal(selector pbconstr.Var, falseChild, trueChild int) int {
	a.nodes = append(a.nodes, Node{Selector: selector, FalseChild: falseChild, TrueChild: trueChild})
	return len(a.nodes) - 1
}

// Node returns the node at index i.
func (a *Arena) Node(i int) Node { return a.nodes[i] }

// Len returns the number of nodes allocated in the arena (including the
// two terminals).
func (a *Arena) Len() int { return len(a.nodes) }

// Compile builds the ROBDD for constraint c and returns the arena
// holding its nodes together with the index of the root node.
func Compile(c *pbconstr.Constraint) (*Arena, int) {
	a := NewArena()
	n := c.NTerms()
	lsets := make([]*lset, n+1)
	for i := 0; i <= n; i++ {
		s := newLSet()
		s.insert(interval{lo: c.SuffixSum(i), hi: maxBound}, TrueTerminal)
		s.insert(interval{lo: minBound, hi: -1}, FalseTerminal)
		lsets[i] = s
	}
	_, root := build(a, c, lsets, c.K)
	return a, root
}

// buildResult is the (interval, node) pair returned by one level of the
// construction, per Algorithm 2 of Abío et al.
type buildResult struct {
	iv   interval
	node int
}

// frame is one level of the (explicitly-stacked) recursion in build. The
// double recursion Abío et al. describe is naturally expressed as an
// iterative DFS over this explicit stack, bounding Go's call-stack depth
// for constraints with many terms.
type frame struct {
	i, kPrime int
	state     int // 0: fresh, 1: waiting on resF, 2: have resF, waiting on resT
	resF      buildResult
}

// build constructs the ROBDD for c with threshold K, memoising on
// (level, remaining threshold) via lsets[level].
func build(a *Arena, c *pbconstr.Constraint, lsets []*lset, k int) (interval, int) {
	var pending buildResult
	stack := []*frame{{i: 0, kPrime: k}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		switch f.state {
		case 0:
			if iv, node, ok := lsets[f.i].search(f.kPrime); ok {
				pending = buildResult{iv, node}
				stack = stack[:len(stack)-1]
				continue
			}
			f.state = 1
			stack = append(stack, &frame{i: f.i + 1, kPrime: f.kPrime})
		case 1:
			f.resF = pending
			f.state = 2
			stack = append(stack, &frame{i: f.i + 1, kPrime: f.kPrime - c.Coeff(f.i)})
		case 2:
			resT := pending
			result := combine(a, c.Var(f.i), f.resF, resT, c.Coeff(f.i))
			lsets[f.i].insert(result.iv, result.node)
			pending = result
			stack = stack[:len(stack)-1]
		}
	}
	return pending.iv, pending.node
}

func combine(a *Arena, selector pbconstr.Var, resF, resT buildResult, coeff int) buildResult {
	if resF.iv == resT.iv {
		// Both branches resolved to the same interval, hence the same node:
		// the selector is irrelevant here, inherit the true branch over the
		// K' values for which both branches land in that interval.
		return buildResult{iv: interval{lo: resT.iv.lo + coeff, hi: resT.iv.hi}, node: resT.node}
	}
	shiftedT := interval{lo: resT.iv.lo + coeff, hi: addSat(resT.iv.hi, coeff)}
	node := a.newInternal(selector, resF.node, resT.node)
	lo := maxInt(resF.iv.lo, shiftedT.lo)
	hi := minInt(resF.iv.hi, shiftedT.hi)
	return buildResult{iv: interval{lo: lo, hi: hi}, node: node}
}

func addSat(a, b int) int {
	if a >= maxBound || a <= minBound {
		return a
	}
	return a + b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Flatten performs an in-order traversal of the reachable nodes from
// root (false branch, self, true branch). It returns the reachable
// nodes in that order and the position of root within them.
func Flatten(a *Arena, root int) (order []int, rootPos int) {
	visited := make(map[int]bool)
	var visit func(idx int)
	visit = func(idx int) {
		if visited[idx] {
			return
		}
		visited[idx] = true
		node := a.Node(idx)
		if node.Terminal {
			order = append(order, idx)
			return
		}
		visit(node.FalseChild)
		order = append(order, idx)
		visit(node.TrueChild)
	}
	visit(root)
	for pos, idx := range order {
		if idx == root {
			rootPos = pos
			break
		}
	}
	return order, rootPos
}
