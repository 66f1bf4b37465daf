package rcl

import "github.com/LeJamon/goXRPLd/internal/core/consensus"

// toTrieID and fromTrieID convert between consensus.LedgerID ([32]byte,
// which has no < operator and so can't satisfy cmp.Ordered) and the
// string view the ledger trie is instantiated over.
func toTrieID(id consensus.LedgerID) string {
	return string(id[:])
}

func fromTrieID(id string) consensus.LedgerID {
	var out consensus.LedgerID
	copy(out[:], id)
	return out
}

// trieLedger adapts consensus.Ledger to validations.LedgerRef by walking
// parent links through a LedgerFetcher; consensus.Ledger alone only knows
// its own parent, not its full ancestry.
type trieLedger struct {
	ledger consensus.Ledger
	fetch  LedgerFetcher
}

func (t trieLedger) ID() string  { return toTrieID(t.ledger.ID()) }
func (t trieLedger) Seq() uint32 { return t.ledger.Seq() }

func (t trieLedger) Ancestor(seq uint32) string {
	cur := t.ledger
	for cur.Seq() > seq {
		parent, err := t.fetch(cur.ParentID())
		if err != nil || parent == nil {
			return ""
		}
		cur = parent
	}
	if cur.Seq() != seq {
		return ""
	}
	return toTrieID(cur.ID())
}
