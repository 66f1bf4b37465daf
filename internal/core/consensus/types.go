// Package consensus defines the Ledger interface and the shared consensus
// types: modes, phases, identifiers and validations.
package consensus

import (
	"time"
)

// Mode represents the current consensus operating mode.
// A node can transition between modes during consensus rounds.
type Mode int

const (
	// ModeProposing means the node is actively participating in consensus,
	// proposing transactions and voting on proposals. Only validators in sync.
	ModeProposing Mode = iota

	// ModeObserving means the node is watching consensus but not proposing.
	// Non-validators always operate in this mode.
	ModeObserving

	// ModeWrongLedger means the node detected it's on a different ledger
	// than the network and is acquiring the correct one.
	ModeWrongLedger

	// ModeSwitchedLedger means the node recovered from wrong ledger
	// and is now observing until fully synced.
	ModeSwitchedLedger
)

// String returns the string representation of the mode.
func (m Mode) String() string {
	switch m {
	case ModeProposing:
		return "proposing"
	case ModeObserving:
		return "observing"
	case ModeWrongLedger:
		return "wrongLedger"
	case ModeSwitchedLedger:
		return "switchedLedger"
	default:
		return "unknown"
	}
}

// Phase represents the current phase within a consensus round.
type Phase int

const (
	// PhaseOpen is the initial phase where transactions are being accumulated.
	// The ledger is "open" for new transactions.
	PhaseOpen Phase = iota

	// PhaseEstablish is the negotiation phase where validators exchange
	// proposals and work toward agreement on the transaction set.
	PhaseEstablish

	// PhaseAccepted means consensus has been reached and the new ledger
	// is accepted. Waiting for the next round to begin.
	PhaseAccepted
)

// String returns the string representation of the phase.
func (p Phase) String() string {
	switch p {
	case PhaseOpen:
		return "open"
	case PhaseEstablish:
		return "establish"
	case PhaseAccepted:
		return "accepted"
	default:
		return "unknown"
	}
}

// RoundID uniquely identifies a consensus round.
type RoundID struct {
	// Seq is the ledger sequence number being built.
	Seq uint32

	// ParentHash is the hash of the parent ledger.
	ParentHash [32]byte
}

// NodeID uniquely identifies a node in the network.
type NodeID [33]byte // Compressed public key

// TxID uniquely identifies a transaction.
type TxID [32]byte

// TxSetID uniquely identifies a transaction set.
type TxSetID [32]byte

// LedgerID uniquely identifies a ledger.
type LedgerID [32]byte

// Validation represents a validation message from a validator.
type Validation struct {
	// LedgerID is the hash of the validated ledger.
	LedgerID LedgerID

	// LedgerSeq is the sequence number of the validated ledger.
	LedgerSeq uint32

	// NodeID is the validating node's public key.
	NodeID NodeID

	// SignTime is when the validation was signed.
	SignTime time.Time

	// SeenTime is when we received this validation.
	SeenTime time.Time

	// Signature is the validator's signature.
	Signature []byte

	// Full indicates if this is a full validation (vs partial).
	Full bool

	// Cookie is a unique identifier for this validation session.
	Cookie uint64

	// LoadFee is the validator's current load-based fee.
	LoadFee uint32
}
