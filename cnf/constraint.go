package cnf

import (
	"fmt"

	"github.com/crillab/jtcore/number"
)

// Kind distinguishes the three constraint families a Cnf can hold.
type Kind int

const (
	// ClauseKind is a CNF clause: a disjunction of literals.
	ClauseKind Kind = iota
	// XORKind is a parity constraint over a literal list.
	XORKind
	// PBKind is a pseudo-Boolean linear (in)equality.
	PBKind
)

func (k Kind) String() string {
	switch k {
	case ClauseKind:
		return "clause"
	case XORKind:
		return "xor"
	case PBKind:
		return "pb"
	default:
		return "unknown"
	}
}

// Comparator is the relational operator of a pseudo-Boolean constraint.
// LtEq only ever appears transiently, before Canonicalize rewrites it away.
type Comparator int

const (
	GtEq Comparator = iota
	Eq
	LtEq
)

func (c Comparator) String() string {
	switch c {
	case GtEq:
		return ">="
	case Eq:
		return "="
	case LtEq:
		return "<="
	default:
		return "?"
	}
}

// Constraint is one clause/XOR/PB entry of a Cnf. For ClauseKind and
// XORKind, Lits holds the ordered literal list as read. For PBKind, Vars
// holds the ordered (signed) variable-literal list and Coeffs the
// coefficient for each entry of Vars, keyed the same way.
//
// Weight is the constraint's soft weight (MaxSAT); hard constraints carry
// a weight of TrivialBound+1 so they dominate any combination of soft
// weights.
type Constraint struct {
	Kind       Kind
	Lits       []int
	Vars       []int
	Coeffs     map[int]int
	Comparator Comparator
	RHS        int
	Weight     number.Number
}

// ClauseVars returns the set of variables (absolute values of literals)
// this constraint touches, deduplicated, in first-occurrence order.
func (c *Constraint) ClauseVars() []int {
	seen := make(map[int]bool)
	var vars []int
	add := func(lit int) {
		v := lit
		if v < 0 {
			v = -v
		}
		if !seen[v] {
			seen[v] = true
			vars = append(vars, v)
		}
	}
	switch c.Kind {
	case ClauseKind, XORKind:
		for _, l := range c.Lits {
			add(l)
		}
	case PBKind:
		for _, v := range c.Vars {
			add(v)
		}
	}
	return vars
}

// Canonicalize returns a copy of c with pseudo-Boolean constraints put in
// normal form: LtEq is rewritten to GtEq by negating coefficients and the
// right-hand side, and every negative coefficient is absorbed by flipping
// its variable to its negation (coef*x = coef*(1-not_x) = coef - coef*not_x).
//
// This builds a fresh map and var list rather than mutating c.Coeffs while
// iterating over c.Vars, which would risk skipping or double-visiting an
// entry. Only meaningful for PBKind; other kinds are returned unchanged.
func (c Constraint) Canonicalize() Constraint {
	if c.Kind != PBKind {
		return c
	}

	out := c
	out.Coeffs = make(map[int]int, len(c.Coeffs))
	for k, v := range c.Coeffs {
		out.Coeffs[k] = v
	}
	out.Vars = append([]int(nil), c.Vars...)

	if out.Comparator == LtEq {
		out.Comparator = GtEq
		out.RHS = -out.RHS
		for v := range out.Coeffs {
			out.Coeffs[v] = -out.Coeffs[v]
		}
	}

	newVars := make([]int, 0, len(out.Vars))
	newCoeffs := make(map[int]int, len(out.Coeffs))
	for _, v := range out.Vars {
		coef := out.Coeffs[v]
		if coef < 0 {
			out.RHS -= coef
			newVars = append(newVars, -v)
			newCoeffs[-v] = -coef
		} else {
			newVars = append(newVars, v)
			newCoeffs[v] = coef
		}
	}
	out.Vars = newVars
	out.Coeffs = newCoeffs
	return out
}

// String renders the constraint in a DIMACS-ish diagnostic form.
func (c *Constraint) String() string {
	switch c.Kind {
	case PBKind:
		s := ""
		for _, v := range c.Vars {
			s += fmt.Sprintf("%d x%d ", c.Coeffs[v], v)
		}
		return fmt.Sprintf("%s%s %d", s, c.Comparator, c.RHS)
	case XORKind:
		s := "x"
		for _, l := range c.Lits {
			s += fmt.Sprintf(" %d", l)
		}
		return s + " 0"
	default:
		s := ""
		for _, l := range c.Lits {
			s += fmt.Sprintf("%d ", l)
		}
		return s + "0"
	}
}
