package jointree

import (
	"sort"

	"github.com/crillab/jtcore/carrier"
	"github.com/crillab/jtcore/cnf"
	"github.com/crillab/jtcore/number"
)

// Evaluate walks the join tree rooted at root, building each terminal's
// constraint diagram via car and combining them bottom-up: conjoining a
// nonterminal's children, then eliminating its projection variables. It is
// a thin driver exercising the carrier.Carrier seam, not a model-counting
// algorithm in its own right — a real backend may choose a different
// evaluation order for performance.
func Evaluate[T any](root *Node, c *cnf.Cnf, car carrier.Carrier[T]) T {
	return evaluateNode(root, c, car)
}

func evaluateNode[T any](n *Node, c *cnf.Cnf, car carrier.Carrier[T]) T {
	if n.IsTerminal() {
		return constraintDiagram(c.Clauses[n.ConstraintIndex], car)
	}

	result := car.Top()
	for _, child := range n.Children {
		result = car.And(result, evaluateNode(child, c, car))
	}

	vars := make([]int, 0, len(n.ProjectionVars))
	for v := range n.ProjectionVars {
		vars = append(vars, v)
	}
	sort.Ints(vars)

	return car.ExistentialSum(result, vars, func(lit int) number.Number {
		return c.LiteralWeights[lit]
	})
}

func constraintDiagram[T any](constr cnf.Constraint, car carrier.Carrier[T]) T {
	switch constr.Kind {
	case cnf.PBKind:
		return car.PseudoBoolean(constr.Coeffs, constr.Comparator, constr.RHS)
	case cnf.XORKind:
		result := car.Bottom()
		for _, lit := range constr.Lits {
			result = car.Xor(result, car.Literal(lit))
		}
		return result
	default:
		result := car.Bottom()
		for _, lit := range constr.Lits {
			result = car.Or(result, car.Literal(lit))
		}
		return result
	}
}
