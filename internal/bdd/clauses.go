package bdd

import "github.com/jpleunes/rcpsptexact/internal/pbconstr"

// EmitClauses encodes the ROBDD rooted at root into CNF, following
// Example 24 (BDD-1) of Abío et al. (2012): every node reachable from
// root — including the two terminals — gets its own auxiliary Boolean,
// and each internal node v with selector x, false-child F and true-child
// T contributes
//
//	(aux(F) ∨ ¬aux(v))
//	(aux(T) ∨ ¬x ∨ ¬aux(v))
//
// plus three unit clauses fixing aux(root) true, aux(falseTerminal)
// false and aux(trueTerminal) true. Only the "v implies its taken
// branch" direction is needed: the constraint is asserted by forcing
// the root true, and soundness follows by induction down the DAG.
//
// selectorLit maps a term's variable to its already-allocated SAT
// literal; newAux allocates a fresh SAT variable for one BDD node. Aux
// variables are attached lazily, in a map keyed by arena node index
// rather than stored on the node itself — only nodes actually
// reachable from root are ever assigned one.
//
// If the constraint can never be falsified (the false terminal is
// unreachable from root), EmitClauses returns no clauses at all: there
// is nothing to assert. If root IS the false terminal the constraint
// can never be satisfied; infeasible is then true and clauses is nil.
func EmitClauses(a *Arena, root int, selectorLit func(pbconstr.Var) int, newAux func() int) (clauses [][]int, auxOf map[int]int, infeasible bool) {
	if root == FalseTerminal {
		return nil, nil, true
	}

	order, _ := Flatten(a, root)
	auxOf = make(map[int]int, len(order))
	sawFalseTerminal := false
	for _, idx := range order {
		auxOf[idx] = newAux()
		if idx == FalseTerminal {
			sawFalseTerminal = true
		}
	}
	if !sawFalseTerminal {
		// The constraint holds unconditionally over the windows already
		// carved out; no clause can ever force it false.
		return nil, auxOf, false
	}

	for _, idx := range order {
		n := a.Node(idx)
		if n.Terminal {
			continue
		}
		x := selectorLit(n.Selector)
		av := auxOf[idx]
		clauses = append(clauses, []int{auxOf[n.FalseChild], -av})
		clauses = append(clauses, []int{auxOf[n.TrueChild], -x, -av})
	}

	clauses = append(clauses, []int{auxOf[root]})
	clauses = append(clauses, []int{-auxOf[FalseTerminal]})
	clauses = append(clauses, []int{auxOf[TrueTerminal]})
	return clauses, auxOf, false
}
