package jointree

import (
	"fmt"
	"sort"

	"github.com/crillab/jtcore/cnf"
)

// Join-tree-level heuristic codes, sharing Heuristic's numeric space with
// the seven Cnf-level codes (cnf.Random .. cnf.Lexm).
const (
	BiggestNode cnf.Heuristic = 8
	HighestNode cnf.Heuristic = 9
)

// BiggestNodeVarOrder orders apparentVars by the size of the largest join
// tree node (by pre-projection variable count) each appears in, largest
// first; ties break by ascending variable id.
func BiggestNodeVarOrder(root *Node, apparentVars []int) []int {
	sizes := make(map[int]int, len(apparentVars))
	for _, v := range apparentVars {
		sizes[v] = 0
	}
	root.UpdateVarSizes(sizes)

	type sizedVar struct {
		size int
		v    int
	}
	entries := make([]sizedVar, 0, len(sizes))
	for v, s := range sizes {
		entries = append(entries, sizedVar{size: s, v: v})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].size != entries[j].size {
			return entries[i].size > entries[j].size
		}
		return entries[i].v < entries[j].v
	})

	order := make([]int, len(entries))
	for i, e := range entries {
		order[i] = e.v
	}
	return order
}

// HighestNodeVarOrder orders variables by breadth-first depth from root:
// root's own projection vars first, then its nonterminal children's, and
// so on. Terminal children are not descended into (they have no
// projection vars).
func HighestNodeVarOrder(root *Node) []int {
	var order []int
	queue := []*Node{root}
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]

		vars := make([]int, 0, len(n.ProjectionVars))
		for v := range n.ProjectionVars {
			vars = append(vars, v)
		}
		sort.Ints(vars)
		order = append(order, vars...)

		for _, child := range n.Children {
			if !child.IsTerminal() {
				queue = append(queue, child)
			}
		}
	}
	return order
}

// GetVarOrder dispatches h to either a Cnf-level heuristic (delegating to
// c.VarOrder) or a join-tree-level one (BiggestNode/HighestNode), reversing
// the result for a negative heuristic code as cnf.VarOrder does.
func GetVarOrder(root *Node, h cnf.Heuristic, c *cnf.Cnf) ([]int, error) {
	if cnf.IsCnfHeuristic(h) {
		return c.VarOrder(h)
	}

	a := h
	if a < 0 {
		a = -a
	}

	var order []int
	switch a {
	case BiggestNode:
		order = BiggestNodeVarOrder(root, c.ApparentVars)
	case HighestNode:
		order = HighestNodeVarOrder(root)
	default:
		return nil, fmt.Errorf("jointree: unknown heuristic %d", h)
	}
	if h < 0 {
		reverseInts(order)
	}
	return order, nil
}

func reverseInts(xs []int) {
	for i, j := 0, len(xs)-1; i < j; i, j = i+1, j-1 {
		xs[i], xs[j] = xs[j], xs[i]
	}
}

// GetAdditiveAssignments enumerates every Boolean assignment to the first
// sliceVarCount additive variables of the var order chosen by h, in that
// order. A non-positive sliceVarCount produces the single empty
// assignment (no slicing).
func GetAdditiveAssignments(root *Node, h cnf.Heuristic, c *cnf.Cnf, sliceVarCount int) ([]cnf.Assignment, error) {
	if sliceVarCount <= 0 {
		return []cnf.Assignment{{}}, nil
	}

	order, err := GetVarOrder(root, h, c)
	if err != nil {
		return nil, err
	}

	assignments := []cnf.Assignment{{}}
	assignedVars := 0
	for i := 0; i < len(order) && assignedVars < sliceVarCount; i++ {
		v := order[i]
		if _, ok := c.AdditiveVars[v]; ok {
			assignments = cnf.ExtendAssignments(assignments, v)
			assignedVars++
		}
	}
	return assignments, nil
}
