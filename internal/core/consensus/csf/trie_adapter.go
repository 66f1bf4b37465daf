package csf

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/LeJamon/goXRPLd/internal/core/consensus/validations"
)

// trieID is the identity type the ledger trie is instantiated over.
// consensus.LedgerID is a [32]byte array, and arrays don't satisfy Go's
// cmp.Ordered constraint (no < operator), so the trie works over the
// byte string view of a ledger ID instead.
type trieID = string

func toTrieID(id LedgerID) trieID {
	return string(id[:])
}

func fromTrieID(id trieID) LedgerID {
	var out LedgerID
	copy(out[:], id)
	return out
}

// ancestorKey identifies one (ledger, sequence) ancestor query.
type ancestorKey struct {
	ledger LedgerID
	seq    uint32
}

// trieLedger adapts *Ledger to validations.LedgerRef by walking parent
// links through the oracle to answer ancestor queries; *Ledger alone only
// knows its own parent, not its full lineage. Every Insert and find walk
// re-derives the same handful of ancestor identities each round, so
// results are memoized in a small LRU shared across a Validations
// instance.
type trieLedger struct {
	ledger *Ledger
	oracle *LedgerOracle
	cache  *lru.Cache[ancestorKey, trieID]
}

func (t trieLedger) ID() trieID  { return toTrieID(t.ledger.ID()) }
func (t trieLedger) Seq() uint32 { return t.ledger.Seq() }

func (t trieLedger) Ancestor(seq uint32) trieID {
	key := ancestorKey{ledger: t.ledger.ID(), seq: seq}
	if t.cache != nil {
		if id, ok := t.cache.Get(key); ok {
			return id
		}
	}

	cur := t.ledger
	for cur.Seq() > seq {
		parent := t.oracle.Get(cur.ParentID())
		if parent == nil {
			return ""
		}
		cur = parent
	}

	var id trieID
	if cur.Seq() == seq {
		id = toTrieID(cur.ID())
	}
	if t.cache != nil {
		t.cache.Add(key, id)
	}
	return id
}

func newLedgerTrie() *validations.LedgerTrie[trieID, trieLedger] {
	return validations.New[trieID, trieLedger]()
}

func newAncestorCache() *lru.Cache[ancestorKey, trieID] {
	cache, _ := lru.New[ancestorKey, trieID](512)
	return cache
}
