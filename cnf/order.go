package cnf

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/crillab/jtcore/graph"
)

// Heuristic selects a variable-ordering strategy. CNF-level heuristics are
// the positive values 1..7; negative values request the reverse order.
// Join-tree-level heuristics (BiggestNode, HighestNode, defined in package
// jointree) share this numeric space so that a single heuristic code can be
// dispatched either to Cnf.VarOrder or to the join tree.
type Heuristic int

const (
	Random Heuristic = 1 + iota
	Declared
	MostClauses
	Minfill
	Mcs
	Lexp
	Lexm
)

// IsCnfHeuristic reports whether h (after taking abs) names one of the
// seven Cnf-level heuristics, as opposed to a join-tree-level one.
func IsCnfHeuristic(h Heuristic) bool {
	a := h
	if a < 0 {
		a = -a
	}
	return a >= Random && a <= Lexm
}

func abs(h Heuristic) Heuristic {
	if h < 0 {
		return -h
	}
	return h
}

// VarOrder computes the variable order for the given CNF-level heuristic. A
// negative heuristic code reverses the result produced by its absolute
// value.
func (c *Cnf) VarOrder(h Heuristic) ([]int, error) {
	var order []int
	switch abs(h) {
	case Random:
		order = c.randomVarOrder()
	case Declared:
		order = c.declaredVarOrder()
	case MostClauses:
		order = c.mostClausesVarOrder()
	case Minfill:
		order = c.minfillVarOrder()
	case Mcs:
		order = c.mcsVarOrder()
	case Lexp:
		order = c.lexpVarOrder()
	case Lexm:
		order = c.lexmVarOrder()
	default:
		return nil, fmt.Errorf("cnf: unknown heuristic %d", h)
	}
	if h < 0 {
		reverse(order)
	}
	return order, nil
}

func reverse(xs []int) {
	for i, j := 0, len(xs)-1; i < j; i, j = i+1, j-1 {
		xs[i], xs[j] = xs[j], xs[i]
	}
}

func (c *Cnf) randomVarOrder() []int {
	order := append([]int(nil), c.ApparentVars...)
	rng := rand.New(rand.NewSource(c.RandomSeed))
	rng.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })
	return order
}

// declaredVarOrder is ascending-by-declared-index filtered to apparent
// variables; since ApparentVars is already maintained in ascending order,
// this is its identity, kept as its own method for symmetry with the other
// six heuristics.
func (c *Cnf) declaredVarOrder() []int {
	return append([]int(nil), c.ApparentVars...)
}

func (c *Cnf) mostClausesVarOrder() []int {
	type entry struct {
		v     int
		count int
	}
	entries := make([]entry, 0, len(c.ApparentVars))
	for _, v := range c.ApparentVars { // ascending var id, matching an ordered-map traversal
		entries = append(entries, entry{v: v, count: len(c.VarToClauses[v])})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].count > entries[j].count
	})
	order := make([]int, len(entries))
	for i, e := range entries {
		order[i] = e.v
	}
	return order
}

// PrimalGraph returns the graph on ApparentVars with an edge between every
// pair of variables that co-occur in some constraint.
func (c *Cnf) PrimalGraph() *graph.Graph {
	g := graph.New(c.ApparentVars)
	for _, constr := range c.Clauses {
		vars := constr.ClauseVars()
		for i := 0; i < len(vars); i++ {
			for j := i + 1; j < len(vars); j++ {
				g.AddEdge(vars[i], vars[j])
			}
		}
	}
	return g
}

func (c *Cnf) minfillVarOrder() []int {
	g := c.PrimalGraph()
	var order []int
	for len(g.Vertices()) > 0 {
		v, err := g.MinfillVertex()
		if err != nil {
			break
		}
		g.FillInEdges(v)
		g.RemoveVertex(v)
		order = append(order, v)
	}
	return order
}

func (c *Cnf) mcsVarOrder() []int {
	g := c.PrimalGraph()
	vertices := g.Vertices()
	if len(vertices) == 0 {
		return nil
	}

	best := vertices[0]
	ranked := make(map[int]int, len(vertices)-1)
	for _, v := range vertices[1:] {
		ranked[v] = 0
	}

	var order []int
	for {
		order = append(order, best)
		delete(ranked, best)
		for _, n := range g.Neighbors(best) {
			if _, ok := ranked[n]; ok {
				ranked[n]++
			}
		}

		bestCount := minInt
		nextBest := 0
		for _, v := range vertices { // ascending order: ties favor smaller id
			count, ok := ranked[v]
			if !ok {
				continue
			}
			if count > bestCount {
				bestCount = count
				nextBest = v
			}
		}
		if bestCount == minInt {
			break
		}
		best = nextBest
	}
	return order
}

const minInt = -int(^uint(0)>>1) - 1

// label is a sorted-descending sequence of elimination ranks assigned to a
// not-yet-numbered vertex during LEXP/LEXM. Comparison is lexicographic.
type label []int

func (l label) less(o label) bool {
	for i := 0; i < len(l) && i < len(o); i++ {
		if l[i] != o[i] {
			return l[i] < o[i]
		}
	}
	return len(l) < len(o)
}

func (l *label) addNumber(n int) {
	*l = append(*l, n)
	sort.Sort(sort.Reverse(sort.IntSlice(*l)))
}

func (c *Cnf) lexpVarOrder() []int {
	g := c.PrimalGraph()
	unnumbered := make(map[int]label, len(c.ApparentVars))
	for _, v := range c.ApparentVars {
		unnumbered[v] = label{}
	}

	var numbered []int
	for number := len(c.ApparentVars); number > 0; number-- {
		v := argmaxLabel(c.ApparentVars, unnumbered)
		numbered = append(numbered, v)
		delete(unnumbered, v)
		for _, n := range g.Neighbors(v) {
			if l, ok := unnumbered[n]; ok {
				l.addNumber(number)
				unnumbered[n] = l
			}
		}
	}
	return numbered
}

// argmaxLabel returns the vertex (among those still present in unnumbered)
// with the lexicographically largest label, breaking ties by scanning
// candidates in ascending order and keeping the first (smallest-id) max.
func argmaxLabel(candidates []int, unnumbered map[int]label) int {
	var best int
	var bestLabel label
	first := true
	for _, v := range candidates {
		l, ok := unnumbered[v]
		if !ok {
			continue
		}
		if first || bestLabel.less(l) {
			best = v
			bestLabel = l
			first = false
		}
	}
	return best
}

func (c *Cnf) lexmVarOrder() []int {
	unnumbered := make(map[int]label, len(c.ApparentVars))
	for _, v := range c.ApparentVars {
		unnumbered[v] = label{}
	}

	var numbered []int
	for i := len(c.ApparentVars); i > 0; i-- {
		v := argmaxLabel(c.ApparentVars, unnumbered)
		numbered = append(numbered, v)
		delete(unnumbered, v)

		for _, w := range c.ApparentVars {
			wLabel, ok := unnumbered[w]
			if !ok {
				continue
			}

			sub := c.PrimalGraph()
			for _, numberedVertex := range numbered {
				if numberedVertex != v {
					sub.RemoveVertex(numberedVertex)
				}
			}
			for other, otherLabel := range unnumbered {
				if other != w && !otherLabel.less(wLabel) {
					sub.RemoveVertex(other)
				}
			}

			if sub.HasPath(v, w) {
				wLabel.addNumber(i)
				unnumbered[w] = wLabel
			}
		}
	}
	return numbered
}
