package validations

import "cmp"

// node is one vertex of the trie: a span of consecutive ledger sequences
// along one lineage, plus the two support counters and the handles linking
// it to its parent and children.
//
// Invariants, maintained by every public LedgerTrie operation:
//   - every non-root node appears exactly once in its parent's children
//   - a non-root node's span starts exactly where its parent's span ends
//   - branchSupport == tipSupport + sum of children's branchSupport
//   - no two children of the same parent share span.startID()
//   - a non-root node with tipSupport == 0 never has exactly one child at rest
type node[ID cmp.Ordered, L LedgerRef[ID]] struct {
	span          span[ID, L]
	tipSupport    uint64
	branchSupport uint64
	parent        Handle
	children      []Handle
}

// removeChild drops h from the node's children, preserving order.
func (n *node[ID, L]) removeChild(h Handle) {
	for i, c := range n.children {
		if c == h {
			n.children = append(n.children[:i], n.children[i+1:]...)
			return
		}
	}
}
