package validations

import (
	"cmp"
	"sort"
)

// LedgerTrie tracks, for every ledger history that peers are currently
// endorsing, how much validator support a prefix or tip has, and computes
// the ledger that consensus should build on next under the "preferred by
// branch" rule.
//
// LedgerTrie is not safe for concurrent use: callers that need shared
// access must serialize around it (e.g. one RWMutex per trie), since reads
// (TipSupport, BranchSupport, GetPreferred) only need a shared lock but
// Insert and Remove need exclusive access.
type LedgerTrie[ID cmp.Ordered, L LedgerRef[ID]] struct {
	root       Handle
	arena      *arena[node[ID, L]]
	seqSupport *uncommittedMap
}

// New returns an empty LedgerTrie.
func New[ID cmp.Ordered, L LedgerRef[ID]]() *LedgerTrie[ID, L] {
	a := newArena[node[ID, L]]()
	root := a.alloc(node[ID, L]{})
	return &LedgerTrie[ID, L]{root: root, arena: a, seqSupport: newUncommittedMap()}
}

// Empty reports whether the trie currently carries any support at all.
func (t *LedgerTrie[ID, L]) Empty() bool {
	return t.arena.get(t.root).branchSupport == 0
}

// find locates the deepest node whose span shares the longest common
// prefix with ledger's ancestor chain, and the sequence of the first
// disagreement.
func (t *LedgerTrie[ID, L]) find(ledger LedgerRef[ID]) (Handle, uint32) {
	curr := t.root
	pos := t.arena.get(curr).span.diff(ledger)

	for pos == t.arena.get(curr).span.end {
		advanced := false
		for _, childH := range t.arena.get(curr).children {
			childPos := t.arena.get(childH).span.diff(ledger)
			if childPos > pos {
				curr, pos = childH, childPos
				advanced = true
				break
			}
		}
		if !advanced {
			break
		}
	}
	return curr, pos
}

// findByID recursively descends from the root looking for the node whose
// span tip identity matches id.
func (t *LedgerTrie[ID, L]) findByID(id ID) (Handle, bool) {
	return t.findByIDFrom(t.root, id)
}

func (t *LedgerTrie[ID, L]) findByIDFrom(h Handle, id ID) (Handle, bool) {
	n := t.arena.get(h)
	if n.span.start < n.span.end && n.span.tip().ID == id {
		return h, true
	}
	for _, c := range n.children {
		if found, ok := t.findByIDFrom(c, id); ok {
			return found, true
		}
	}
	return Handle{}, false
}

// Insert records a vote for ledger. count, if given, is the weight applied
// to branch support at ledger's tip and every ancestor; the tip support
// counter always advances by exactly one vote per call regardless of
// count, matching the reference implementation's asymmetry (see
// DESIGN.md). count defaults to 1; a count of 0 is a no-op.
func (t *LedgerTrie[ID, L]) Insert(ledger L, count ...uint64) {
	c := uint64(1)
	if len(count) > 0 {
		c = count[0]
	}
	if c == 0 {
		return
	}

	locH, diffSeq := t.find(ledger)
	loc := t.arena.get(locH)

	oldSuffix, hasOldSuffix := loc.span.after(diffSeq)
	newSuffix, hasNewSuffix := spanOf[ID, L](ledger).after(diffSeq)

	incTarget := locH

	if hasOldSuffix {
		// loc->span        a b c | d e f
		//                  prefix  oldSuffix
		// Split: a fresh node M takes over the tail of loc's span along
		// with loc's old tip/branch support and children; loc truncates
		// to the shared prefix and becomes a pure split point.
		prefix, _ := loc.span.before(diffSeq)

		mH := t.arena.alloc(node[ID, L]{
			span:          oldSuffix,
			tipSupport:    loc.tipSupport,
			branchSupport: loc.branchSupport,
			parent:        locH,
		})
		loc, m := t.arena.getTwo(locH, mH)

		oldChildren := loc.children
		loc.children = nil
		m.children = append(m.children, oldChildren...)
		for _, ch := range oldChildren {
			t.arena.get(ch).parent = mH
		}

		loc.span = prefix
		loc.tipSupport = 0
		loc.children = append(loc.children, mH)

		incTarget = locH
	}

	if hasNewSuffix {
		// Span{ledger}      a b c | g h i
		//                   prefix  newSuffix
		nH := t.arena.alloc(node[ID, L]{span: newSuffix, parent: locH})
		loc := t.arena.get(locH)
		loc.children = append(loc.children, nH)
		incTarget = nH
	}

	t.arena.get(incTarget).tipSupport++
	for h := incTarget; !h.IsZero(); {
		n := t.arena.get(h)
		n.branchSupport += c
		h = n.parent
	}

	t.seqSupport.add(ledger.Seq(), c)
}

// TipSupport returns the number of votes landing exactly at ledger's tip.
func (t *LedgerTrie[ID, L]) TipSupport(ledger L) uint64 {
	h, ok := t.findByID(ledger.ID())
	if !ok {
		return 0
	}
	return t.arena.get(h).tipSupport
}

// BranchSupport returns ledger's tip support plus the support of every
// descendant branch. If ledger has no node of its own, BranchSupport falls
// back to the branch support of the node whose span ledger's tip falls
// strictly inside (the inferred semantics of an ambiguous upstream
// condition; see DESIGN.md), or 0 if ledger shares no lineage with the
// trie at all.
func (t *LedgerTrie[ID, L]) BranchSupport(ledger L) uint64 {
	if h, ok := t.findByID(ledger.ID()); ok {
		return t.arena.get(h).branchSupport
	}

	locH, diffSeq := t.find(ledger)
	loc := t.arena.get(locH)
	if diffSeq == ledger.Seq()+1 && ledger.Seq() < loc.span.end {
		return loc.branchSupport
	}
	return 0
}

// Remove reverses one Insert(ledger, count) call: it decrements tip and
// branch support, drops nodes whose branch support falls to zero (except
// the root, which always persists), and merges a parent with its sole
// surviving child once the parent carries no tip support of its own. It
// reports whether ledger actually had tip support to remove.
func (t *LedgerTrie[ID, L]) Remove(ledger L, count ...uint64) bool {
	c := uint64(1)
	if len(count) > 0 {
		c = count[0]
	}
	if c == 0 {
		return false
	}

	h, ok := t.findByID(ledger.ID())
	if !ok {
		return false
	}
	n := t.arena.get(h)
	if n.tipSupport == 0 {
		return false
	}
	n.tipSupport--

	for cur := h; !cur.IsZero(); {
		cn := t.arena.get(cur)
		if cn.branchSupport < c {
			cn.branchSupport = 0
		} else {
			cn.branchSupport -= c
		}
		cur = cn.parent
	}

	t.seqSupport.subtract(ledger.Seq(), c)
	t.collapse(h)
	return true
}

// collapse walks from h up to the root, pruning zero-support nodes and
// merging tip-support-free nodes with their sole surviving child so the
// trie never rests with a disallowed sole-child split point.
func (t *LedgerTrie[ID, L]) collapse(h Handle) {
	for !h.IsZero() {
		n := t.arena.get(h)
		parentH := n.parent

		if h != t.root && n.branchSupport == 0 {
			if !parentH.IsZero() {
				t.arena.get(parentH).removeChild(h)
			}
			t.arena.free(h)
			h = parentH
			continue
		}

		if h != t.root && n.tipSupport == 0 && len(n.children) == 1 {
			t.mergeWithOnlyChild(h)
		}
		h = parentH
	}
}

// mergeWithOnlyChild absorbs h's single child into h, combining their
// spans, the inverse of the split performed by Insert.
func (t *LedgerTrie[ID, L]) mergeWithOnlyChild(h Handle) {
	n := t.arena.get(h)
	childH := n.children[0]
	child := t.arena.get(childH)

	n.span = span[ID, L]{start: n.span.start, end: child.span.end, tipLedger: child.span.tipLedger}
	n.tipSupport = child.tipSupport
	n.children = child.children
	for _, gc := range n.children {
		t.arena.get(gc).parent = h
	}
	t.arena.free(childH)
}

// GetPreferred descends from the root along the branch that consensus
// should extend next: the child whose branch-support lead over its
// runner-up exceeds the uncommitted support reported at intervening
// sequences. largestIssued is the largest sequence any observed validator
// has proposed so far, and bounds how far back stale uncommitted votes are
// still considered informative. GetPreferred reports false if the trie is
// empty.
func (t *LedgerTrie[ID, L]) GetPreferred(largestIssued uint32) (SpanTip[ID], bool) {
	if t.Empty() {
		return SpanTip[ID]{}, false
	}

	curr := t.root
	var uncommitted uint64
	cursor := t.seqSupport.cursor()

	for {
		n := t.arena.get(curr)
		nextSeq := n.span.start + 1

		floor := nextSeq
		if largestIssued > floor {
			floor = largestIssued
		}
		for {
			e, ok := cursor.peek()
			if !ok || e.seq >= floor {
				break
			}
			uncommitted += e.support
			cursor.next()
		}

		for nextSeq < n.span.end && n.branchSupport > uncommitted {
			e, ok := cursor.next()
			if !ok {
				nextSeq = n.span.end
				break
			}
			if e.seq < n.span.end {
				nextSeq = e.seq + 1
				uncommitted += e.support
			} else {
				nextSeq = n.span.end
				break
			}
		}

		if nextSeq < n.span.end {
			before, _ := n.span.before(nextSeq)
			return before.tip(), true
		}

		children := n.children
		if len(children) == 0 {
			return n.span.tip(), true
		}

		var best Handle
		var margin uint64
		if len(children) == 1 {
			best = children[0]
			margin = t.arena.get(best).branchSupport
		} else {
			sorted := append([]Handle(nil), children...)
			sort.Slice(sorted, func(i, j int) bool {
				ni, nj := t.arena.get(sorted[i]), t.arena.get(sorted[j])
				if ni.branchSupport != nj.branchSupport {
					return ni.branchSupport > nj.branchSupport
				}
				return ni.span.startID() < nj.span.startID()
			})
			best = sorted[0]
			runner := sorted[1]
			bn, rn := t.arena.get(best), t.arena.get(runner)
			margin = bn.branchSupport - rn.branchSupport
			if bn.span.startID() > rn.span.startID() {
				margin++
			}
		}

		if margin > uncommitted || uncommitted == 0 {
			curr = best
			continue
		}
		return n.span.tip(), true
	}
}
