// Package validations implements the ledger trie used by the RCL consensus
// engine to track, for every ledger history that peers are currently
// endorsing, how much validator support a prefix or tip has, and to compute
// the ledger that consensus should prefer to build on next.
//
// The trie is a compressed radix trie keyed by ledger ancestry: edges carry
// runs of consecutive ledger sequences (spans), nodes carry tip and branch
// support counters, and a separate map records support observed at
// sequences whose exact lineage hasn't reached the trie yet. None of this
// package talks to the network or to storage - it is purely an in-memory
// accounting structure fed by validation messages and queried by the
// preferred-branch calculation.
package validations

import "cmp"

// GenesisSeq is the sequence number of the first ledger in a history.
const GenesisSeq uint32 = 0

// LedgerRef is the external ledger contract the trie is built against. It is
// deliberately minimal: the trie never inspects a ledger's contents, only
// its identity, its position, and its ancestry.
//
// ID is the ledger's identifier type; it must support equality and a total
// order so span tie-breaks (by starting ancestor ID) are deterministic.
//
// Ancestor must be deterministic and stable for the ledger's lifetime:
// Ancestor(Seq()) must equal ID(), and for any two ledgers that share an
// ancestor at a sequence s, Ancestor(s) must return equal identifiers.
type LedgerRef[ID cmp.Ordered] interface {
	ID() ID
	Seq() uint32
	Ancestor(seq uint32) ID
}

// SpanTip identifies the last ledger in a span: its sequence and identity.
type SpanTip[ID cmp.Ordered] struct {
	Seq uint32
	ID  ID
}
