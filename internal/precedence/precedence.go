// Package precedence builds the "activity start and run consistently,
// in an order respecting the precedence graph" half of the encoding,
// as two independent variants sharing one vocabulary of per-activity
// start-indicator variables y[job,offset]. Rather than a base encoder
// class with SAT/SMT subclasses overriding a handful of methods, the
// two variants are plain functions returning their own result type:
// there is no shared behavior to inherit, only a
// shared variable-allocation contract.
package precedence

// VarAlloc allocates fresh, 1-based SAT-level Boolean variable ids.
type VarAlloc interface {
	NewVar() int
}

// YTable holds, for job i, the variable id of y[i,offset] where offset
// counts start times from ES[i]: YTable[i][offset] is the indicator for
// job i starting at ES[i]+offset.
type YTable [][]int
