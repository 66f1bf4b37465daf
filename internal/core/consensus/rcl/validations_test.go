package rcl

import (
	"testing"
	"time"

	"github.com/LeJamon/goXRPLd/internal/core/consensus"
)

// fakeLedger is a minimal consensus.Ledger for tests that don't care about
// ancestor resolution, only about the bookkeeping NewValidationTracker does
// around Add/GetStats/etc.
type fakeLedger struct {
	id consensus.LedgerID
}

func (f fakeLedger) ID() consensus.LedgerID       { return f.id }
func (f fakeLedger) Seq() uint32                  { return 0 }
func (f fakeLedger) ParentID() consensus.LedgerID { return consensus.LedgerID{} }
func (f fakeLedger) CloseTime() time.Time         { return time.Time{} }
func (f fakeLedger) TxSetID() consensus.TxSetID   { return consensus.TxSetID{} }
func (f fakeLedger) Bytes() []byte                { return nil }

// fetchFake resolves any ID to a fakeLedger carrying that same ID, enough
// to exercise the trie's Insert path without a real ancestor chain.
func fetchFake(id consensus.LedgerID) (consensus.Ledger, error) {
	return fakeLedger{id: id}, nil
}

func TestValidationTracker_Add(t *testing.T) {
	vt := NewValidationTracker(3, 5*time.Minute, fetchFake)

	node1 := consensus.NodeID{1}
	node2 := consensus.NodeID{2}
	ledger1 := consensus.LedgerID{1}

	v1 := &consensus.Validation{
		LedgerID:  ledger1,
		LedgerSeq: 100,
		NodeID:    node1,
		SignTime:  time.Now(),
	}

	v2 := &consensus.Validation{
		LedgerID:  ledger1,
		LedgerSeq: 100,
		NodeID:    node2,
		SignTime:  time.Now(),
	}

	// Add first validation
	if !vt.Add(v1) {
		t.Error("First validation should be added")
	}

	// Add second validation
	if !vt.Add(v2) {
		t.Error("Second validation should be added")
	}

	// Count should be 2
	if vt.GetValidationCount(ledger1) != 2 {
		t.Errorf("Expected 2 validations, got %d", vt.GetValidationCount(ledger1))
	}

	// Adding same validation should return false
	if vt.Add(v1) {
		t.Error("Duplicate validation should not be added")
	}
}

func TestValidationTracker_TrustedValidations(t *testing.T) {
	vt := NewValidationTracker(2, 5*time.Minute, fetchFake)

	node1 := consensus.NodeID{1}
	node2 := consensus.NodeID{2}
	node3 := consensus.NodeID{3}
	ledger1 := consensus.LedgerID{1}

	// Set trusted nodes
	vt.SetTrusted([]consensus.NodeID{node1, node2})

	// Add validations
	vt.Add(&consensus.Validation{LedgerID: ledger1, LedgerSeq: 100, NodeID: node1, SignTime: time.Now()})
	vt.Add(&consensus.Validation{LedgerID: ledger1, LedgerSeq: 100, NodeID: node2, SignTime: time.Now()})
	vt.Add(&consensus.Validation{LedgerID: ledger1, LedgerSeq: 100, NodeID: node3, SignTime: time.Now()})

	// Total should be 3
	if vt.GetValidationCount(ledger1) != 3 {
		t.Errorf("Expected 3 total validations, got %d", vt.GetValidationCount(ledger1))
	}

	// Trusted should be 2
	if vt.GetTrustedValidationCount(ledger1) != 2 {
		t.Errorf("Expected 2 trusted validations, got %d", vt.GetTrustedValidationCount(ledger1))
	}
}

func TestValidationTracker_FullyValidated(t *testing.T) {
	quorum := 3
	vt := NewValidationTracker(quorum, 5*time.Minute, fetchFake)

	nodes := []consensus.NodeID{{1}, {2}, {3}, {4}}
	vt.SetTrusted(nodes)

	ledger1 := consensus.LedgerID{1}
	var fullyValidatedLedger consensus.LedgerID

	vt.SetFullyValidatedCallback(func(id consensus.LedgerID) {
		fullyValidatedLedger = id
	})

	// Add validations one by one
	for i := 0; i < quorum-1; i++ {
		vt.Add(&consensus.Validation{
			LedgerID:  ledger1,
			LedgerSeq: 100,
			NodeID:    nodes[i],
			SignTime:  time.Now(),
		})
	}

	// Should not be fully validated yet
	if vt.IsFullyValidated(ledger1) {
		t.Error("Should not be fully validated with less than quorum")
	}

	// Add one more to reach quorum
	vt.Add(&consensus.Validation{
		LedgerID:  ledger1,
		LedgerSeq: 100,
		NodeID:    nodes[quorum-1],
		SignTime:  time.Now(),
	})

	// Should be fully validated now
	if !vt.IsFullyValidated(ledger1) {
		t.Error("Should be fully validated with quorum")
	}

	// Callback should have been called
	if fullyValidatedLedger != ledger1 {
		t.Error("Fully validated callback should have been called")
	}
}

func TestValidationTracker_NewerValidation(t *testing.T) {
	vt := NewValidationTracker(2, 5*time.Minute, fetchFake)

	node1 := consensus.NodeID{1}
	ledger1 := consensus.LedgerID{1}
	ledger2 := consensus.LedgerID{2}

	// Add validation for ledger 1
	vt.Add(&consensus.Validation{
		LedgerID:  ledger1,
		LedgerSeq: 100,
		NodeID:    node1,
		SignTime:  time.Now(),
	})

	// Add newer validation for ledger 2
	if !vt.Add(&consensus.Validation{
		LedgerID:  ledger2,
		LedgerSeq: 101,
		NodeID:    node1,
		SignTime:  time.Now(),
	}) {
		t.Error("Newer validation should be added")
	}

	// Latest validation should be for ledger 2
	latest := vt.GetLatestValidation(node1)
	if latest.LedgerID != ledger2 {
		t.Error("Latest validation should be for ledger 2")
	}

	// Old validation should not be added
	if vt.Add(&consensus.Validation{
		LedgerID:  ledger1,
		LedgerSeq: 100,
		NodeID:    node1,
		SignTime:  time.Now(),
	}) {
		t.Error("Older validation should not be added")
	}
}

func TestValidationTracker_Stats(t *testing.T) {
	vt := NewValidationTracker(2, 5*time.Minute, fetchFake)

	nodes := []consensus.NodeID{{1}, {2}, {3}}
	vt.SetTrusted(nodes[:2])

	ledger1 := consensus.LedgerID{1}
	ledger2 := consensus.LedgerID{2}

	// Add validations
	vt.Add(&consensus.Validation{LedgerID: ledger1, LedgerSeq: 100, NodeID: nodes[0], SignTime: time.Now()})
	vt.Add(&consensus.Validation{LedgerID: ledger1, LedgerSeq: 100, NodeID: nodes[1], SignTime: time.Now()})
	vt.Add(&consensus.Validation{LedgerID: ledger2, LedgerSeq: 101, NodeID: nodes[2], SignTime: time.Now()})

	stats := vt.GetStats()

	if stats.TotalValidations != 3 {
		t.Errorf("Expected 3 total validations, got %d", stats.TotalValidations)
	}

	if stats.TrustedValidations != 2 {
		t.Errorf("Expected 2 trusted validations, got %d", stats.TrustedValidations)
	}

	if stats.ValidatorsActive != 3 {
		t.Errorf("Expected 3 active validators, got %d", stats.ValidatorsActive)
	}

	if stats.LedgersTracked != 2 {
		t.Errorf("Expected 2 ledgers tracked, got %d", stats.LedgersTracked)
	}
}
