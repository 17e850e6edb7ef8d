package jointree

import (
	"fmt"

	"github.com/crillab/jtcore/cnf"
)

// AutoIndex requests that NewNonterminal assign the next available node
// index itself, rather than the caller reserving a specific one.
const AutoIndex = -1

// Builder assigns node indices while constructing a join tree over a
// fixed cnf.Cnf. Its counters (nodeCount, terminalCount,
// nonterminalIndices) are explicit fields rather than process globals, so
// Snapshot/Restore let multiple independent build attempts share one Cnf
// without one clobbering another's progress.
type Builder struct {
	cnf                *cnf.Cnf
	nodeCount          int
	terminalCount      int
	nonterminalIndices map[int]struct{}
}

// NewBuilder returns a Builder that builds terminals from c's clauses, in
// order.
func NewBuilder(c *cnf.Cnf) *Builder {
	return &Builder{cnf: c, nonterminalIndices: make(map[int]struct{})}
}

// Snapshot is an opaque, restorable copy of a Builder's counters.
type Snapshot struct {
	nodeCount          int
	terminalCount      int
	nonterminalIndices map[int]struct{}
}

// Snapshot captures b's current counters.
func (b *Builder) Snapshot() Snapshot {
	cp := make(map[int]struct{}, len(b.nonterminalIndices))
	for k := range b.nonterminalIndices {
		cp[k] = struct{}{}
	}
	return Snapshot{nodeCount: b.nodeCount, terminalCount: b.terminalCount, nonterminalIndices: cp}
}

// Restore resets b's counters to a previously captured Snapshot,
// discarding any building done since.
func (b *Builder) Restore(s Snapshot) {
	b.nodeCount = s.nodeCount
	b.terminalCount = s.terminalCount
	b.nonterminalIndices = make(map[int]struct{}, len(s.nonterminalIndices))
	for k := range s.nonterminalIndices {
		b.nonterminalIndices[k] = struct{}{}
	}
}

// NewTerminal builds the next terminal node, bound to the clause at
// b.terminalCount. Terminals must be built in clause order, one per
// clause, so a terminal's node index always equals its constraint index.
func (b *Builder) NewTerminal() (*Node, error) {
	idx := b.terminalCount
	if idx >= len(b.cnf.Clauses) {
		return nil, fmt.Errorf("jointree: no clause at index %d to build a terminal for", idx)
	}

	vars := make(map[int]struct{})
	for _, v := range b.cnf.Clauses[idx].ClauseVars() {
		vars[v] = struct{}{}
	}

	n := &Node{
		Index:             idx,
		ConstraintIndex:   idx,
		PreProjectionVars: vars,
	}
	b.terminalCount++
	b.nodeCount++
	return n, nil
}

// NewNonterminal builds a nonterminal over children, eliminating
// projectionVars. requestedIndex is either AutoIndex (assign the next
// node index) or a specific index not already taken and not below the
// terminal count.
func (b *Builder) NewNonterminal(children []*Node, projectionVars map[int]struct{}, requestedIndex int) (*Node, error) {
	idx := requestedIndex
	switch {
	case idx == AutoIndex:
		idx = b.nodeCount
	case idx < b.terminalCount:
		return nil, fmt.Errorf("jointree: requested node index %d < terminalCount %d", idx, b.terminalCount)
	default:
		if _, taken := b.nonterminalIndices[idx]; taken {
			return nil, fmt.Errorf("jointree: requested node index %d already taken", idx)
		}
	}

	pre := make(map[int]struct{})
	for _, child := range children {
		for v := range child.PostProjectionVars() {
			pre[v] = struct{}{}
		}
	}

	b.nonterminalIndices[idx] = struct{}{}
	b.nodeCount++

	return &Node{
		Index:             idx,
		Children:          children,
		ProjectionVars:    projectionVars,
		PreProjectionVars: pre,
	}, nil
}
