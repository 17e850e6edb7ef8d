// Package jointree builds and queries join trees: the elimination-order
// scaffolding that drives a weighted/projected model count. A join tree's
// terminals are bound to constraint indices of a cnf.Cnf; its nonterminals
// group children under a set of variables to project out.
package jointree

import (
	"fmt"

	"github.com/crillab/jtcore/cnf"
)

// Node is a join tree node. Children == nil marks a terminal (bound to
// ConstraintIndex); a non-nil Children marks a nonterminal, whose
// ProjectionVars are the variables eliminated at this node.
type Node struct {
	Index             int
	Children          []*Node
	ConstraintIndex   int
	ProjectionVars    map[int]struct{}
	PreProjectionVars map[int]struct{}
}

// IsTerminal reports whether n is a leaf bound to a single constraint.
func (n *Node) IsTerminal() bool {
	return n.Children == nil
}

// PostProjectionVars is PreProjectionVars minus ProjectionVars: the
// variables this node still carries after its own elimination step.
func (n *Node) PostProjectionVars() map[int]struct{} {
	out := make(map[int]struct{}, len(n.PreProjectionVars))
	for v := range n.PreProjectionVars {
		if _, projected := n.ProjectionVars[v]; !projected {
			out[v] = struct{}{}
		}
	}
	return out
}

// Width is the largest number, over n and each of its descendants, of
// pre-projection variables not already bound by a.
func (n *Node) Width(a cnf.Assignment) int {
	width := diffSize(n.PreProjectionVars, a)
	for _, child := range n.Children {
		if w := child.Width(a); w > width {
			width = w
		}
	}
	return width
}

func diffSize(vars map[int]struct{}, a cnf.Assignment) int {
	count := 0
	for v := range vars {
		if _, bound := a[v]; !bound {
			count++
		}
	}
	return count
}

// UpdateVarSizes records, for every variable in n's (and its descendants')
// PreProjectionVars, the size of the largest node it appears in.
func (n *Node) UpdateVarSizes(sizes map[int]int) {
	size := len(n.PreProjectionVars)
	for v := range n.PreProjectionVars {
		if size > sizes[v] {
			sizes[v] = size
		}
	}
	for _, child := range n.Children {
		child.UpdateVarSizes(sizes)
	}
}

// ClusteringHeuristic selects how terminals are grouped into clusters
// before a join tree is assembled from them.
type ClusteringHeuristic int

const (
	BucketList ClusteringHeuristic = iota
	BucketTree
	BouquetList
	BouquetTree
)

// ChooseClusterIndex returns the index, within projectableVarSets, of the
// next cluster n belongs to, starting the search just after clusterIndex.
// It returns len(projectableVarSets) (the "leftover" cluster) when n's
// post-projection variables are disjoint from every projectable set, or
// when no later cluster shares a variable with n under BucketTree/
// BouquetTree heuristics.
func (n *Node) ChooseClusterIndex(clusterIndex int, projectableVarSets []map[int]struct{}, heuristic ClusteringHeuristic) (int, error) {
	if clusterIndex < 0 || clusterIndex >= len(projectableVarSets) {
		return 0, fmt.Errorf("jointree: clusterIndex %d out of range [0,%d)", clusterIndex, len(projectableVarSets))
	}

	projectableVars := unionVars(projectableVarSets...)
	postProjectionVars := n.PostProjectionVars()
	if disjointVars(projectableVars, postProjectionVars) {
		return len(projectableVarSets), nil
	}

	if heuristic == BucketList || heuristic == BouquetList {
		return clusterIndex + 1, nil
	}
	for target := clusterIndex + 1; target < len(projectableVarSets); target++ {
		if !disjointVars(postProjectionVars, projectableVarSets[target]) {
			return target, nil
		}
	}
	return len(projectableVarSets), nil
}

// NodeRank returns n's position in restrictedVarOrder: under BucketList/
// BucketTree, the smallest rank among n's post-projection variables
// (earliest elimination wins); otherwise the largest. A node whose
// post-projection variables are all absent from restrictedVarOrder ranks
// last, at len(restrictedVarOrder).
func (n *Node) NodeRank(restrictedVarOrder []int, heuristic ClusteringHeuristic) int {
	postProjectionVars := n.PostProjectionVars()

	if heuristic == BucketList || heuristic == BucketTree {
		rank := len(restrictedVarOrder)
		for varRank, v := range restrictedVarOrder {
			if _, ok := postProjectionVars[v]; ok && varRank < rank {
				rank = varRank
			}
		}
		return rank
	}

	rank := -1
	for varRank, v := range restrictedVarOrder {
		if _, ok := postProjectionVars[v]; ok && varRank > rank {
			rank = varRank
		}
	}
	if rank == -1 {
		return len(restrictedVarOrder)
	}
	return rank
}

func unionVars(sets ...map[int]struct{}) map[int]struct{} {
	out := make(map[int]struct{})
	for _, s := range sets {
		for v := range s {
			out[v] = struct{}{}
		}
	}
	return out
}

func disjointVars(a, b map[int]struct{}) bool {
	small, big := a, b
	if len(b) < len(a) {
		small, big = b, a
	}
	for v := range small {
		if _, ok := big[v]; ok {
			return false
		}
	}
	return true
}
