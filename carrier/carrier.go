// Package carrier names the decision-diagram valuation seam. The core
// treats a join tree's leaves and internal nodes as opaque semiring
// elements produced and combined by some external collaborator (a BDD/ADD
// package, say); Carrier is the interface such a collaborator implements.
// No concrete implementation lives here — see jointree.Evaluate for the
// driver that walks a join tree dispatching to an injected Carrier.
package carrier

import (
	"github.com/crillab/jtcore/cnf"
	"github.com/crillab/jtcore/number"
)

// Carrier is the set of operations a decision-diagram valuation backend
// must provide over its opaque node type T.
type Carrier[T any] interface {
	// Top is the identity for And: the diagram representing "true".
	Top() T
	// Bottom is the identity for Or/Xor: the diagram representing "false".
	Bottom() T
	// Literal returns the diagram for a single signed literal.
	Literal(lit int) T
	And(a, b T) T
	Or(a, b T) T
	Xor(a, b T) T
	// PseudoBoolean builds the diagram for a canonicalized PB constraint.
	PseudoBoolean(coeffs map[int]int, cmp cnf.Comparator, rhs int) T
	// ExistentialSum projects vars out of t, weighting each branch by
	// weight(lit).
	ExistentialSum(t T, vars []int, weight func(lit int) number.Number) T
	// Maximize projects vars out of t by taking the max over both branches,
	// for MaxSAT-style optimization rather than weighted summation.
	Maximize(t T, vars []int) T
	// EvaluateAt reduces t to a single Number under a full assignment.
	EvaluateAt(t T, a cnf.Assignment) number.Number
}
