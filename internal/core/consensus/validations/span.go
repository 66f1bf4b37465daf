package validations

import "cmp"

// span is a half-open interval [start, end) of sequence numbers along one
// ledger lineage. A span keeps one reference ledger - "tipLedger" - which is
// sufficient to answer ancestor queries for every sequence in [start, end),
// since tipLedger.Ancestor(s) is defined for every s up to tipLedger.Seq()
// and end-1 <= tipLedger.Seq() always holds.
//
// The root's span is the empty span anchored at GenesisSeq; every other
// span stored in the trie is non-empty (start < end).
type span[ID cmp.Ordered, L LedgerRef[ID]] struct {
	start     uint32
	end       uint32
	tipLedger L
}

// spanOf builds the canonical full-lineage span for a ledger: [GenesisSeq,
// ledger.Seq()+1).
func spanOf[ID cmp.Ordered, L LedgerRef[ID]](ledger L) span[ID, L] {
	return span[ID, L]{start: GenesisSeq, end: ledger.Seq() + 1, tipLedger: ledger}
}

func (s span[ID, L]) idAt(seq uint32) ID {
	return s.tipLedger.Ancestor(seq)
}

// startID returns the identity at the span's first sequence. Only valid for
// non-empty spans.
func (s span[ID, L]) startID() ID {
	return s.idAt(s.start)
}

// tip returns the SpanTip for the span's last sequence.
func (s span[ID, L]) tip() SpanTip[ID] {
	return SpanTip[ID]{Seq: s.end - 1, ID: s.idAt(s.end - 1)}
}

// before returns the sub-span [start, seq), if start < seq <= end.
func (s span[ID, L]) before(seq uint32) (span[ID, L], bool) {
	if s.start < seq && seq <= s.end {
		return span[ID, L]{start: s.start, end: seq, tipLedger: s.tipLedger}, true
	}
	return span[ID, L]{}, false
}

// after returns the sub-span [seq, end), if start <= seq < end.
func (s span[ID, L]) after(seq uint32) (span[ID, L], bool) {
	if s.start <= seq && seq < s.end {
		return span[ID, L]{start: seq, end: s.end, tipLedger: s.tipLedger}, true
	}
	return span[ID, L]{}, false
}

// diff finds the first sequence at which the span and other disagree. It
// returns a value p with start <= p <= end and p <= other.Seq()+1; for every
// sequence s in [start, p), the span and other share the same ancestor.
func (s span[ID, L]) diff(other LedgerRef[ID]) uint32 {
	bound := s.end
	if lim := other.Seq() + 1; lim < bound {
		bound = lim
	}

	seq := s.start
	for seq < bound && s.idAt(seq) == other.Ancestor(seq) {
		seq++
	}
	return seq
}
