package cli

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/LeJamon/goXRPLd/internal/core/consensus"
	"github.com/LeJamon/goXRPLd/internal/core/consensus/rcl"
)

// demoLedger is the minimal consensus.Ledger the rcl adaptor needs to walk
// ancestor chains; it carries no payload, only chain-shape.
type demoLedger struct {
	id       consensus.LedgerID
	seq      uint32
	parentID consensus.LedgerID
}

func (l demoLedger) ID() consensus.LedgerID       { return l.id }
func (l demoLedger) Seq() uint32                  { return l.seq }
func (l demoLedger) ParentID() consensus.LedgerID { return l.parentID }
func (l demoLedger) CloseTime() time.Time         { return time.Time{} }
func (l demoLedger) TxSetID() consensus.TxSetID   { return consensus.TxSetID{} }
func (l demoLedger) Bytes() []byte                { return nil }

// demoChainStore builds deterministic demoLedger chains and answers
// rcl.LedgerFetcher lookups against them.
type demoChainStore struct {
	ledgers map[consensus.LedgerID]demoLedger
}

func newDemoChainStore() *demoChainStore {
	return &demoChainStore{ledgers: make(map[consensus.LedgerID]demoLedger)}
}

// extend appends one ledger to parent on the given branch label and
// returns its ID. Distinct branch labels at the same seq/parent combo
// still collide unless the label is folded into the hash, so it is.
func (s *demoChainStore) extend(parent consensus.LedgerID, seq uint32, branch byte) consensus.LedgerID {
	h := sha256.New()
	h.Write(parent[:])
	var seqBuf [4]byte
	binary.BigEndian.PutUint32(seqBuf[:], seq)
	h.Write(seqBuf[:])
	h.Write([]byte{branch})

	var id consensus.LedgerID
	copy(id[:], h.Sum(nil))

	s.ledgers[id] = demoLedger{id: id, seq: seq, parentID: parent}
	return id
}

func (s *demoChainStore) fetch(id consensus.LedgerID) (consensus.Ledger, error) {
	l, ok := s.ledgers[id]
	if !ok {
		return nil, fmt.Errorf("rcl demo: unknown ledger %x", id)
	}
	return l, nil
}

// runRCLAdaptor drives rcl.ValidationTracker directly instead of the full
// csf discrete-event simulation: it builds one (or, under --topology
// partitioned with --byzantine above zero, two diverging) demoLedger
// chains, submits one validation
// per simulated validator, and reports the tracker's preferred ledger.
// This exercises the same GetPreferred/Insert/Remove path
// internal/core/consensus/rcl/validations.go wires into the ledger trie,
// without needing a full consensus.Adaptor (persistence, transport,
// signing) behind it.
func runRCLAdaptor(cmd *cobra.Command) {
	store := newDemoChainStore()
	var genesis consensus.LedgerID

	mainChain := []consensus.LedgerID{genesis}
	parent := genesis
	for seq := uint32(1); seq <= uint32(runRounds); seq++ {
		parent = store.extend(parent, seq, 0)
		mainChain = append(mainChain, parent)
	}
	mainTip := mainChain[len(mainChain)-1]

	forkTip := mainTip
	if runTopology == "partitioned" && runByzantine > 0 {
		forkPoint := runRounds / 2
		forkParent := mainChain[forkPoint]
		fp := forkParent
		for seq := uint32(forkPoint) + 1; seq <= uint32(runRounds); seq++ {
			fp = store.extend(fp, seq, 1)
		}
		forkTip = fp
	}

	trustedCount := runValidators - runByzantine
	quorum := trustedCount/2 + 1
	tracker := rcl.NewValidationTracker(quorum, 5*time.Minute, store.fetch)

	nodeID := func(i int) consensus.NodeID {
		var id consensus.NodeID
		binary.BigEndian.PutUint32(id[:4], uint32(i))
		return id
	}

	trustedNodes := make([]consensus.NodeID, 0, trustedCount)
	for i := runByzantine; i < runValidators; i++ {
		trustedNodes = append(trustedNodes, nodeID(i))
	}
	tracker.SetTrusted(trustedNodes)

	now := time.Time{}
	for i := runByzantine; i < runValidators; i++ {
		tracker.Add(&consensus.Validation{
			LedgerID:  mainTip,
			LedgerSeq: uint32(runRounds),
			NodeID:    nodeID(i),
			SignTime:  now,
			SeenTime:  now,
			Full:      true,
		})
	}
	for i := 0; i < runByzantine; i++ {
		tracker.Add(&consensus.Validation{
			LedgerID:  forkTip,
			LedgerSeq: uint32(runRounds),
			NodeID:    nodeID(i),
			SignTime:  now,
			SeenTime:  now,
			Full:      true,
		})
	}

	if !quiet {
		fmt.Printf("Running rcl adaptor: %d validators (%d byzantine), %d ledgers, topology=%s\n",
			runValidators, runByzantine, runRounds, runTopology)
	}

	preferred, ok := tracker.GetPreferred(uint32(runRounds))
	if !ok {
		fmt.Fprintln(cmd.ErrOrStderr(), "no preferred ledger: no trusted validations reached the trie")
		return
	}

	fmt.Printf("preferred ledger: %s\n", hex.EncodeToString(preferred[:8]))
}
