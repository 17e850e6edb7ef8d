package jointree

import (
	"testing"

	"github.com/crillab/jtcore/cnf"
	"github.com/crillab/jtcore/number"
)

func TestBuildBucketListCoversAllConstraints(t *testing.T) {
	src := "p cnf 4 4\n1 2 0\n2 3 0\n3 4 0\n1 4 0\n"
	c := parseCnf(t, src, cnf.ParseOptions{Mode: number.Rational})

	order, err := c.VarOrder(cnf.Declared)
	if err != nil {
		t.Fatal(err)
	}
	root, err := BuildBucketList(c, order)
	if err != nil {
		t.Fatalf("BuildBucketList: %v", err)
	}

	seen := make(map[int]bool)
	collectTerminals(root, seen)
	for i := range c.Clauses {
		if !seen[i] {
			t.Errorf("constraint %d never appears as a terminal in the built tree", i)
		}
	}
}

func collectTerminals(n *Node, seen map[int]bool) {
	if n.IsTerminal() {
		seen[n.ConstraintIndex] = true
		return
	}
	for _, child := range n.Children {
		collectTerminals(child, seen)
	}
}

func TestBuildBucketListSingleClause(t *testing.T) {
	src := "p cnf 1 1\n1 0\n"
	c := parseCnf(t, src, cnf.ParseOptions{Mode: number.Rational})
	order, err := c.VarOrder(cnf.Declared)
	if err != nil {
		t.Fatal(err)
	}
	root, err := BuildBucketList(c, order)
	if err != nil {
		t.Fatalf("BuildBucketList: %v", err)
	}
	if root.IsTerminal() {
		t.Fatal("expected a nonterminal root even for a single-clause cnf")
	}
}

func TestBuildBucketListRoundTripsThroughEvaluate(t *testing.T) {
	src := "p cnf 3 3\n1 2 0\n2 3 0\n-1 -3 0\n"
	c := parseCnf(t, src, cnf.ParseOptions{Mode: number.Rational})
	order, err := c.VarOrder(cnf.Declared)
	if err != nil {
		t.Fatal(err)
	}
	root, err := BuildBucketList(c, order)
	if err != nil {
		t.Fatalf("BuildBucketList: %v", err)
	}

	// (1∨2)∧(2∨3)∧(¬1∨¬3): {1:false, 2:true, 3:false} satisfies all three.
	sat := boolCarrier{assignment: cnf.Assignment{1: false, 2: true, 3: false}}
	if !Evaluate[bool](root, c, sat) {
		t.Fatal("expected {1:false, 2:true, 3:false} to satisfy the formula")
	}

	// {1:false, 2:false, 3:false} fails the first clause (1∨2).
	unsat := boolCarrier{assignment: cnf.Assignment{1: false, 2: false, 3: false}}
	if Evaluate[bool](root, c, unsat) {
		t.Fatal("expected {1:false, 2:false, 3:false} to fail (1∨2)")
	}
}
