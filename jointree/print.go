package jointree

import (
	"fmt"
	"io"
	"sort"
)

// VarElimWord prefixes the eliminated-variable list in a printed
// nonterminal line.
const VarElimWord = "e"

// Print writes one line for n: "<startWord><id+1> <child+1>... e <var>...",
// 1-indexing node ids for the DIMACS-adjacent join tree text format;
// variables, already 1-based, print unchanged in ascending order.
func (n *Node) Print(w io.Writer, startWord string) {
	fmt.Fprintf(w, "%s%d ", startWord, n.Index+1)
	for _, child := range n.Children {
		fmt.Fprintf(w, "%d ", child.Index+1)
	}
	fmt.Fprint(w, VarElimWord)

	vars := make([]int, 0, len(n.ProjectionVars))
	for v := range n.ProjectionVars {
		vars = append(vars, v)
	}
	sort.Ints(vars)
	for _, v := range vars {
		fmt.Fprintf(w, " %d", v)
	}
	fmt.Fprint(w, "\n")
}

// PrintSubtree prints every nonterminal node rooted at n in post-order:
// every nonterminal child's subtree, then n itself. Terminal children are
// not printed (their text form is the original clause line).
func (n *Node) PrintSubtree(w io.Writer, startWord string) {
	for _, child := range n.Children {
		if !child.IsTerminal() {
			child.PrintSubtree(w, startWord)
		}
	}
	n.Print(w, startWord)
}
