package jointree

import (
	"fmt"

	"github.com/crillab/jtcore/cnf"
)

// BuildBucketList builds a join tree by classic bucket elimination along
// varOrder: each terminal is filed into the bucket of the earliest
// not-yet-eliminated variable it mentions; each bucket, processed in
// varOrder, folds its nodes into one nonterminal projecting that
// variable, which is then forwarded to the immediately following bucket
// (the BucketList clustering rule — see Node.ChooseClusterIndex) or, once
// varOrder is exhausted, into the root alongside whatever else is left
// over.
func BuildBucketList(c *cnf.Cnf, varOrder []int) (*Node, error) {
	b := NewBuilder(c)

	indexOf := make(map[int]int, len(varOrder))
	for i, v := range varOrder {
		indexOf[v] = i
	}
	leftoverIndex := len(varOrder)

	buckets := make([][]*Node, leftoverIndex+1)
	for range c.Clauses {
		n, err := b.NewTerminal()
		if err != nil {
			return nil, err
		}
		idx := bucketOf(n, indexOf, leftoverIndex)
		buckets[idx] = append(buckets[idx], n)
	}

	projectableVarSets := make([]map[int]struct{}, len(varOrder))
	for i, v := range varOrder {
		projectableVarSets[i] = map[int]struct{}{v: {}}
	}

	for i, v := range varOrder {
		if len(buckets[i]) == 0 {
			continue
		}
		nt, err := b.NewNonterminal(buckets[i], map[int]struct{}{v: {}}, AutoIndex)
		if err != nil {
			return nil, err
		}
		target, err := nt.ChooseClusterIndex(i, projectableVarSets, BucketList)
		if err != nil {
			return nil, err
		}
		buckets[target] = append(buckets[target], nt)
	}

	leftover := buckets[leftoverIndex]
	if len(leftover) == 0 {
		return nil, fmt.Errorf("jointree: empty cnf produces no join tree")
	}
	if len(leftover) == 1 && leftover[0].IsTerminal() {
		// A lone leftover terminal still needs a nonterminal root so
		// callers always get a tree whose root carries a (possibly empty)
		// elimination line.
		return b.NewNonterminal(leftover, map[int]struct{}{}, AutoIndex)
	}
	if len(leftover) == 1 {
		return leftover[0], nil
	}
	return b.NewNonterminal(leftover, map[int]struct{}{}, AutoIndex)
}

func bucketOf(n *Node, indexOf map[int]int, leftoverIndex int) int {
	best := leftoverIndex
	for v := range n.PreProjectionVars {
		if idx, ok := indexOf[v]; ok && idx < best {
			best = idx
		}
	}
	return best
}
