package validations

import (
	"cmp"
	"testing"

	"github.com/stretchr/testify/require"
)

// testID is the identity type used by the label-based synthetic ledgers
// below: labels encode an ancestor chain as a string, where label[i] is
// the ID of the ancestor at sequence i+1 ("abc" is the ledger whose
// ancestors at sequences 1, 2, 3 are 'a', 'b', 'c', and whose own seq is
// 3). Sequence 0 is the shared genesis ancestor of every label.
type testID = byte

const genesisTestID testID = 0

type testLedger struct {
	label string
}

func mkLedger(label string) testLedger {
	return testLedger{label: label}
}

func (l testLedger) ID() testID  { return l.Ancestor(l.Seq()) }
func (l testLedger) Seq() uint32 { return uint32(len(l.label)) }

func (l testLedger) Ancestor(seq uint32) testID {
	if seq == 0 {
		return genesisTestID
	}
	return l.label[seq-1]
}

func newTestTrie() *LedgerTrie[testID, testLedger] {
	return New[testID, testLedger]()
}

func TestInsertSingleEntry(t *testing.T) {
	trie := newTestTrie()
	abc := mkLedger("abc")

	trie.Insert(abc)
	require.EqualValues(t, 1, trie.TipSupport(abc))
	require.EqualValues(t, 1, trie.BranchSupport(abc))

	trie.Insert(abc)
	require.EqualValues(t, 2, trie.TipSupport(abc))
	require.EqualValues(t, 2, trie.BranchSupport(abc))
}

func TestInsertSuffixOfExisting(t *testing.T) {
	trie := newTestTrie()
	abc, abcd, abce := mkLedger("abc"), mkLedger("abcd"), mkLedger("abce")

	trie.Insert(abc)

	trie.Insert(abcd)
	require.EqualValues(t, 1, trie.TipSupport(abc))
	require.EqualValues(t, 2, trie.BranchSupport(abc))
	require.EqualValues(t, 1, trie.TipSupport(abcd))
	require.EqualValues(t, 1, trie.BranchSupport(abcd))

	trie.Insert(abce)
	require.EqualValues(t, 1, trie.TipSupport(abc))
	require.EqualValues(t, 3, trie.BranchSupport(abc))
	require.EqualValues(t, 1, trie.TipSupport(abcd))
	require.EqualValues(t, 1, trie.BranchSupport(abcd))
	require.EqualValues(t, 1, trie.TipSupport(abce))
	require.EqualValues(t, 1, trie.BranchSupport(abce))
}

func TestInsertUncommittedOfExistingNode(t *testing.T) {
	trie := newTestTrie()
	abcd, abcdf, abc := mkLedger("abcd"), mkLedger("abcdf"), mkLedger("abc")

	trie.Insert(abcd)

	trie.Insert(abcdf)
	require.EqualValues(t, 1, trie.TipSupport(abcd))
	require.EqualValues(t, 2, trie.BranchSupport(abcd))
	require.EqualValues(t, 1, trie.TipSupport(abcdf))
	require.EqualValues(t, 1, trie.BranchSupport(abcdf))

	trie.Insert(abc)
	require.EqualValues(t, 1, trie.TipSupport(abc))
	require.EqualValues(t, 3, trie.BranchSupport(abc))
	require.EqualValues(t, 1, trie.TipSupport(abcd))
	require.EqualValues(t, 2, trie.BranchSupport(abcd))
	require.EqualValues(t, 1, trie.TipSupport(abcdf))
	require.EqualValues(t, 1, trie.BranchSupport(abcdf))
}

func TestInsertSplitCreatesInternalNode(t *testing.T) {
	trie := newTestTrie()
	abcd, abce, abc := mkLedger("abcd"), mkLedger("abce"), mkLedger("abc")

	trie.Insert(abcd)
	trie.Insert(abce)

	// "abc" was never inserted directly; it's a pure split point.
	require.EqualValues(t, 0, trie.TipSupport(abc))
	require.EqualValues(t, 2, trie.BranchSupport(abc))
	require.EqualValues(t, 1, trie.TipSupport(abcd))
	require.EqualValues(t, 1, trie.BranchSupport(abcd))
	require.EqualValues(t, 1, trie.TipSupport(abce))
	require.EqualValues(t, 1, trie.BranchSupport(abce))
}

func TestTipSupportUninserted(t *testing.T) {
	trie := newTestTrie()
	trie.Insert(mkLedger("abc"))
	require.EqualValues(t, 0, trie.TipSupport(mkLedger("xyz")))
}

func TestBranchSupportOfStrictAncestor(t *testing.T) {
	trie := newTestTrie()
	abc := mkLedger("abc")
	trie.Insert(abc)

	require.EqualValues(t, 1, trie.BranchSupport(mkLedger("ab")))
	require.EqualValues(t, 0, trie.TipSupport(mkLedger("ab")))
}

func TestGetPreferredTieBreak(t *testing.T) {
	trie := newTestTrie()
	abcd, abce := mkLedger("abcd"), mkLedger("abce")

	trie.Insert(abcd)
	trie.Insert(abce)

	tip, ok := trie.GetPreferred(0)
	require.True(t, ok)
	// 'd' < 'e', so the numerically smaller start ID wins the tie.
	require.Equal(t, abcd.ID(), tip.ID)
	require.EqualValues(t, abcd.Seq(), tip.Seq)
}

func TestGetPreferredUncommittedDominance(t *testing.T) {
	trie := newTestTrie()
	abcdef := mkLedger("abcdef")
	trie.Insert(abcdef)

	// 5 votes land at sequence 3 without resolving to a known lineage;
	// that's enough to outweigh "abcdef"'s lone branch vote, so the
	// preferred tip backs off to the last sequence still clearly ours.
	trie.seqSupport.add(3, 5)

	tip, ok := trie.GetPreferred(0)
	require.True(t, ok)
	require.Equal(t, mkLedger("abc").ID(), tip.ID)
	require.EqualValues(t, 3, tip.Seq)
}

func TestGetPreferredEmptyTrie(t *testing.T) {
	trie := newTestTrie()
	_, ok := trie.GetPreferred(0)
	require.False(t, ok)
}

func TestEmpty(t *testing.T) {
	trie := newTestTrie()
	require.True(t, trie.Empty())
	trie.Insert(mkLedger("a"))
	require.False(t, trie.Empty())
}

func TestInsertMonotonicTipSupport(t *testing.T) {
	trie := newTestTrie()
	abc := mkLedger("abc")

	var last uint64
	for i := 0; i < 5; i++ {
		trie.Insert(abc)
		cur := trie.TipSupport(abc)
		require.GreaterOrEqual(t, cur, last)
		last = cur
	}
	require.EqualValues(t, 5, last)
}

func TestRemoveReversesInsert(t *testing.T) {
	trie := newTestTrie()
	abcd, abce := mkLedger("abcd"), mkLedger("abce")

	trie.Insert(abcd)
	trie.Insert(abce)
	require.EqualValues(t, 2, trie.BranchSupport(mkLedger("abc")))

	ok := trie.Remove(abcd)
	require.True(t, ok)
	require.EqualValues(t, 0, trie.TipSupport(abcd))
	require.EqualValues(t, 0, trie.BranchSupport(abcd))
	require.EqualValues(t, 1, trie.BranchSupport(mkLedger("abc")))
	require.EqualValues(t, 1, trie.TipSupport(abce))

	ok = trie.Remove(abce)
	require.True(t, ok)
	require.True(t, trie.Empty())
}

func TestRemoveUnknownLedger(t *testing.T) {
	trie := newTestTrie()
	trie.Insert(mkLedger("abc"))
	require.False(t, trie.Remove(mkLedger("xyz")))
}

func TestInsertCountWeightsBranchNotTip(t *testing.T) {
	trie := newTestTrie()
	abc := mkLedger("abc")

	trie.Insert(abc, 5)
	require.EqualValues(t, 1, trie.TipSupport(abc))
	require.EqualValues(t, 5, trie.BranchSupport(abc))
}

func TestInsertZeroCountIsNoOp(t *testing.T) {
	trie := newTestTrie()
	abc := mkLedger("abc")

	trie.Insert(abc, 0)
	require.True(t, trie.Empty())
	require.EqualValues(t, 0, trie.TipSupport(abc))
}

// checkInvariants walks the whole trie checking that every child's parent
// handle points back at its parent and that each node's branch support
// equals its tip support plus its children's branch support. The other
// node invariants (span chaining, distinct child start IDs, no sole child
// under a zero-tip non-root node) are not checked here.
func checkInvariants[ID cmp.Ordered, L LedgerRef[ID]](t *testing.T, trie *LedgerTrie[ID, L]) {
	t.Helper()
	var walk func(h Handle)
	walk = func(h Handle) {
		n := trie.arena.get(h)
		expectedBranch := n.tipSupport
		for _, c := range n.children {
			cn := trie.arena.get(c)
			require.Equal(t, h, cn.parent, "child's parent must point back")
			expectedBranch += cn.branchSupport
			walk(c)
		}
		require.Equal(t, expectedBranch, n.branchSupport, "branch support must equal tip + children's branch")
	}
	walk(trie.root)
}

func TestInvariantsHoldAcrossInserts(t *testing.T) {
	trie := newTestTrie()
	for _, label := range []string{"abc", "abcd", "abce", "abcdf", "ab", "abcdx", "xyz"} {
		trie.Insert(mkLedger(label))
		checkInvariants[testID, testLedger](t, trie)
	}
}

func TestInvariantsHoldAcrossRemovals(t *testing.T) {
	trie := newTestTrie()
	labels := []string{"abc", "abcd", "abce", "abcdf"}
	for _, label := range labels {
		trie.Insert(mkLedger(label))
	}
	for _, label := range labels {
		trie.Remove(mkLedger(label))
		checkInvariants[testID, testLedger](t, trie)
	}
	require.True(t, trie.Empty())
}
