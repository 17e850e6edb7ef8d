package jointree

import (
	"strings"
	"testing"

	"github.com/crillab/jtcore/cnf"
	"github.com/crillab/jtcore/number"
)

func parseCnf(t *testing.T, src string, opts cnf.ParseOptions) *cnf.Cnf {
	t.Helper()
	c, errs := cnf.Parse(strings.NewReader(src), opts)
	if c == nil {
		t.Fatalf("parse failed: %v", errs)
	}
	return c
}

// buildChain builds a terminal per clause, then folds them pairwise into a
// left-leaning nonterminal chain; the fold that adds terminal i projects
// out the variables listed in projectPerStep[i-1].
func buildChain(t *testing.T, b *Builder, c *cnf.Cnf, projectPerStep [][]int) *Node {
	t.Helper()
	var nodes []*Node
	for range c.Clauses {
		n, err := b.NewTerminal()
		if err != nil {
			t.Fatalf("NewTerminal: %v", err)
		}
		nodes = append(nodes, n)
	}

	cur := nodes[0]
	for i := 1; i < len(nodes); i++ {
		vars := make(map[int]struct{})
		for _, v := range projectPerStep[i-1] {
			vars[v] = struct{}{}
		}
		nt, err := b.NewNonterminal([]*Node{cur, nodes[i]}, vars, AutoIndex)
		if err != nil {
			t.Fatalf("NewNonterminal: %v", err)
		}
		cur = nt
	}
	return cur
}

func TestBuilderTerminalIndices(t *testing.T) {
	src := "p cnf 3 2\n1 2 0\n2 3 0\n"
	c := parseCnf(t, src, cnf.ParseOptions{Mode: number.Rational})
	b := NewBuilder(c)

	t0, err := b.NewTerminal()
	if err != nil {
		t.Fatal(err)
	}
	t1, err := b.NewTerminal()
	if err != nil {
		t.Fatal(err)
	}
	if !t0.IsTerminal() || !t1.IsTerminal() {
		t.Fatal("expected terminals")
	}
	if t0.Index != 0 || t1.Index != 1 {
		t.Fatalf("indices = %d, %d; want 0, 1", t0.Index, t1.Index)
	}
	if _, err := b.NewTerminal(); err == nil {
		t.Fatal("expected error building a terminal past the clause count")
	}
}

func TestBuilderNonterminalRejectsLowIndex(t *testing.T) {
	src := "p cnf 2 1\n1 2 0\n"
	c := parseCnf(t, src, cnf.ParseOptions{Mode: number.Rational})
	b := NewBuilder(c)
	leaf, err := b.NewTerminal()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := b.NewNonterminal([]*Node{leaf}, map[int]struct{}{}, 0); err == nil {
		t.Fatal("expected error: requested index below terminalCount")
	}
}

func TestSnapshotRestore(t *testing.T) {
	src := "p cnf 2 2\n1 0\n2 0\n"
	c := parseCnf(t, src, cnf.ParseOptions{Mode: number.Rational})
	b := NewBuilder(c)

	snap := b.Snapshot()
	if _, err := b.NewTerminal(); err != nil {
		t.Fatal(err)
	}
	if _, err := b.NewTerminal(); err != nil {
		t.Fatal(err)
	}
	b.Restore(snap)

	// After restoring, building from index 0 again should succeed cleanly.
	n, err := b.NewTerminal()
	if err != nil {
		t.Fatalf("NewTerminal after restore: %v", err)
	}
	if n.Index != 0 {
		t.Fatalf("Index = %d after restore, want 0", n.Index)
	}
}

func TestPostProjectionVars(t *testing.T) {
	n := &Node{
		PreProjectionVars: map[int]struct{}{1: {}, 2: {}, 3: {}},
		ProjectionVars:    map[int]struct{}{2: {}},
	}
	post := n.PostProjectionVars()
	if _, ok := post[2]; ok {
		t.Error("var 2 should have been projected out")
	}
	if _, ok := post[1]; !ok {
		t.Error("var 1 should remain")
	}
	if _, ok := post[3]; !ok {
		t.Error("var 3 should remain")
	}
}

func TestWidthCountsUnboundVars(t *testing.T) {
	leaf := &Node{PreProjectionVars: map[int]struct{}{1: {}, 2: {}}}
	if w := leaf.Width(cnf.Assignment{}); w != 2 {
		t.Errorf("Width(empty) = %d, want 2", w)
	}
	if w := leaf.Width(cnf.Assignment{1: true}); w != 1 {
		t.Errorf("Width(bound 1) = %d, want 1", w)
	}
}

func TestChooseClusterIndexDisjointGoesToLeftover(t *testing.T) {
	n := &Node{PreProjectionVars: map[int]struct{}{1: {}}, ProjectionVars: map[int]struct{}{}}
	sets := []map[int]struct{}{{2: {}}, {3: {}}}
	idx, err := n.ChooseClusterIndex(0, sets, BucketTree)
	if err != nil {
		t.Fatal(err)
	}
	if idx != len(sets) {
		t.Errorf("idx = %d, want leftover index %d", idx, len(sets))
	}
}

func TestChooseClusterIndexBucketListAdvancesByOne(t *testing.T) {
	n := &Node{PreProjectionVars: map[int]struct{}{1: {}}, ProjectionVars: map[int]struct{}{}}
	sets := []map[int]struct{}{{1: {}}, {1: {}}}
	idx, err := n.ChooseClusterIndex(0, sets, BucketList)
	if err != nil {
		t.Fatal(err)
	}
	if idx != 1 {
		t.Errorf("idx = %d, want 1", idx)
	}
}

func TestChooseClusterIndexOutOfRange(t *testing.T) {
	n := &Node{}
	if _, err := n.ChooseClusterIndex(5, nil, BucketTree); err == nil {
		t.Fatal("expected error for out-of-range clusterIndex")
	}
}

func TestNodeRankBucketPicksMin(t *testing.T) {
	n := &Node{PreProjectionVars: map[int]struct{}{5: {}, 9: {}}, ProjectionVars: map[int]struct{}{}}
	order := []int{9, 5, 1}
	if rank := n.NodeRank(order, BucketTree); rank != 0 {
		t.Errorf("NodeRank = %d, want 0 (earliest of {5,9} in order)", rank)
	}
}

func TestNodeRankBouquetPicksMax(t *testing.T) {
	n := &Node{PreProjectionVars: map[int]struct{}{5: {}, 9: {}}, ProjectionVars: map[int]struct{}{}}
	order := []int{9, 5, 1}
	if rank := n.NodeRank(order, BouquetTree); rank != 1 {
		t.Errorf("NodeRank = %d, want 1 (latest of {5,9} in order)", rank)
	}
}

func TestNodeRankAbsentVarsRankLast(t *testing.T) {
	n := &Node{PreProjectionVars: map[int]struct{}{7: {}}, ProjectionVars: map[int]struct{}{}}
	order := []int{1, 2, 3}
	if rank := n.NodeRank(order, BucketTree); rank != len(order) {
		t.Errorf("NodeRank = %d, want %d", rank, len(order))
	}
}

func TestHighestNodeVarOrderBFS(t *testing.T) {
	src := "p cnf 4 4\n1 0\n2 0\n3 0\n4 0\n"
	c := parseCnf(t, src, cnf.ParseOptions{Mode: number.Rational})
	b := NewBuilder(c)
	root := buildChain(t, b, c, [][]int{{1}, {2}, {3}})

	order := HighestNodeVarOrder(root)
	if len(order) != 3 {
		t.Fatalf("HighestNodeVarOrder = %v, want 3 entries", order)
	}
	// root's own projection var (3, the last fold) must come first.
	if order[0] != 3 {
		t.Errorf("order[0] = %d, want 3 (root's projection var)", order[0])
	}
}

func TestGetVarOrderDelegatesToCnfHeuristic(t *testing.T) {
	src := "p cnf 2 2\n1 0\n2 0\n"
	c := parseCnf(t, src, cnf.ParseOptions{Mode: number.Rational})
	b := NewBuilder(c)
	root := buildChain(t, b, c, [][]int{{1}})

	order, err := GetVarOrder(root, cnf.Declared, c)
	if err != nil {
		t.Fatal(err)
	}
	if len(order) != 2 || order[0] != 1 || order[1] != 2 {
		t.Errorf("GetVarOrder(Declared) = %v, want [1 2]", order)
	}
}

func TestGetAdditiveAssignmentsZeroSliceCount(t *testing.T) {
	src := "p cnf 1 1\n1 0\n"
	c := parseCnf(t, src, cnf.ParseOptions{Mode: number.Rational})
	b := NewBuilder(c)
	root, err := b.NewTerminal()
	if err != nil {
		t.Fatal(err)
	}
	as, err := GetAdditiveAssignments(root, cnf.Declared, c, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(as) != 1 || len(as[0]) != 0 {
		t.Errorf("GetAdditiveAssignments(0) = %v, want one empty assignment", as)
	}
}

func TestGetAdditiveAssignmentsSlicesOneVar(t *testing.T) {
	src := "p cnf 2 2\n1 0\n2 0\n"
	c := parseCnf(t, src, cnf.ParseOptions{Mode: number.Rational})
	b := NewBuilder(c)
	root := buildChain(t, b, c, [][]int{{1, 2}})

	as, err := GetAdditiveAssignments(root, cnf.Declared, c, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(as) != 2 {
		t.Fatalf("GetAdditiveAssignments(1) = %v, want 2 assignments", as)
	}
	for _, a := range as {
		if len(a) != 1 {
			t.Errorf("assignment %v should bind exactly 1 var", a)
		}
	}
}

func TestPrintFormat(t *testing.T) {
	src := "p cnf 2 2\n1 0\n2 0\n"
	c := parseCnf(t, src, cnf.ParseOptions{Mode: number.Rational})
	b := NewBuilder(c)
	root := buildChain(t, b, c, [][]int{{1, 2}})

	var sb strings.Builder
	root.PrintSubtree(&sb, "nt")

	out := sb.String()
	if !strings.Contains(out, "nt3 1 2 e 1 2\n") {
		t.Errorf("PrintSubtree output = %q, want a line like \"nt3 1 2 e 1 2\"", out)
	}
}
