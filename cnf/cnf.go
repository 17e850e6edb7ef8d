// Package cnf implements the constraint / formula model: CNF clauses, XOR
// parity constraints, pseudo-Boolean constraints, the parsed extended-DIMACS
// formula (Cnf), the additive/disjunctive variable partition, the primal
// graph, and the family of variable-ordering heuristics.
package cnf

import (
	"sort"

	"github.com/crillab/jtcore/number"
)

// Cnf is a parsed extended-DIMACS formula: declared variable count, ordered
// constraints, literal weights, and the additive/disjunctive variable
// partition.
type Cnf struct {
	DeclaredVarCount int
	Clauses          []Constraint

	// LiteralWeights maps every literal in {-n..n}\{0} to a weight; total
	// once parsing completes.
	LiteralWeights map[int]number.Number

	// AdditiveVars is the set of variables to project (sum, or max under
	// MaxSAT) over; its complement within ApparentVars is the
	// multiplication (disjunctive) set.
	AdditiveVars map[int]struct{}

	// MinAdditiveVars holds variables named by a "vm" line: those to be
	// minimized rather than summed, under MaxSAT. Cnf records this
	// classification but does not resolve the min/sum interaction; that is
	// left to the downstream carrier.
	MinAdditiveVars map[int]struct{}

	// VarToClauses maps each variable to the ids (indices into Clauses) of
	// every constraint it appears in, in the order those constraints were
	// added.
	VarToClauses map[int][]int

	// ApparentVars is exactly the domain of VarToClauses — variables
	// occurring in at least one constraint — kept in ascending order
	// throughout so iteration order stays reproducible.
	ApparentVars []int

	// TrivialBoundPartialMaxSAT ("top") bounds the worst possible sum of
	// soft-clause violations; hard constraints get weight top+1 so they
	// dominate any combination of soft weights.
	TrivialBoundPartialMaxSAT int

	// MinMaxsatSolving is set once a "vm" line is seen under MaxSAT
	// solving.
	MinMaxsatSolving bool

	// Mode is the Number universe every weight in this Cnf was built in.
	Mode number.Mode

	// RandomSeed seeds the Random heuristic's shuffle.
	RandomSeed int64
}

// DisjunctiveVars returns the complement of AdditiveVars within
// ApparentVars, i.e. the multiplication set, in ascending order.
func (c *Cnf) DisjunctiveVars() []int {
	var vars []int
	for _, v := range c.ApparentVars {
		if _, ok := c.AdditiveVars[v]; !ok {
			vars = append(vars, v)
		}
	}
	return vars
}

// IsApparent reports whether v occurs in some constraint.
func (c *Cnf) IsApparent(v int) bool {
	_, ok := c.VarToClauses[v]
	return ok
}

func newCnf(mode number.Mode) *Cnf {
	return &Cnf{
		LiteralWeights:  make(map[int]number.Number),
		AdditiveVars:    make(map[int]struct{}),
		MinAdditiveVars: make(map[int]struct{}),
		VarToClauses:    make(map[int][]int),
		Mode:            mode,
	}
}

// addClause appends constr to Clauses and indexes its variables into
// VarToClauses, mirroring Cnf::addClause.
func (c *Cnf) addClause(constr Constraint) int {
	idx := len(c.Clauses)
	c.Clauses = append(c.Clauses, constr)
	for _, v := range constr.ClauseVars() {
		c.VarToClauses[v] = append(c.VarToClauses[v], idx)
	}
	return idx
}

// setApparentVars recomputes ApparentVars from VarToClauses, in ascending
// order.
func (c *Cnf) setApparentVars() {
	vars := make([]int, 0, len(c.VarToClauses))
	for v := range c.VarToClauses {
		vars = append(vars, v)
	}
	sort.Ints(vars)
	c.ApparentVars = vars
}
