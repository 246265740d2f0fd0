// Package pbconstr defines the pseudo-boolean constraint value type used
// throughout the encoder: a single inequality Σ qᵢ·yᵢ ≤ K over the
// activity-start booleans y[i, s].
package pbconstr

// Var identifies a single Boolean variable as (activity, offset into its
// start-time window). It is the term vocabulary shared by the
// PrecedenceEncoder and the BDD engine.
type Var struct {
	Job    int
	Offset int
}

// Constraint is a PB inequality Σ Coeffs[i]*y[Vars[i]] <= K, with terms in
// insertion order. That order is fixed and defines the BDD variable
// order used to compile the constraint to CNF.
type Constraint struct {
	K       int
	Coeffs  []int
	Vars    []Var
}

// New returns an empty constraint with the given right-hand side.
func New(k int) *Constraint {
	return &Constraint{K: k}
}

// AddTerm appends a term with coefficient q for variable v. Callers are
// expected to filter out zero-coefficient terms before calling AddTerm.
func (c *Constraint) AddTerm(q int, v Var) {
	c.Coeffs = append(c.Coeffs, q)
	c.Vars = append(c.Vars, v)
}

// NTerms returns the number of terms currently in the constraint.
func (c *Constraint) NTerms() int { return len(c.Coeffs) }

// Coeff returns the coefficient of the i-th term.
func (c *Constraint) Coeff(i int) int { return c.Coeffs[i] }

// Var returns the variable of the i-th term.
func (c *Constraint) Var(i int) Var { return c.Vars[i] }

// SuffixSum returns the sum of coefficients from term i (inclusive) to
// the end. It is used to seed the BDD engine's L-sets.
func (c *Constraint) SuffixSum(i int) int {
	sum := 0
	for j := i; j < len(c.Coeffs); j++ {
		sum += c.Coeffs[j]
	}
	return sum
}
