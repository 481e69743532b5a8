package txqueue

import (
	"github.com/Th-ium/ThiumCore/pkg/core/transaction"
	"github.com/Th-ium/ThiumCore/pkg/util"
)

// TxSet is a candidate transaction set for the next ledger.
type TxSet struct {
	// PreviousLedgerHash is the hash of the ledger the set builds on.
	PreviousLedgerHash util.Uint256
	// Txs holds the candidate transactions, per-account order follows the
	// queue order.
	Txs []*transaction.Transaction
}

// NewTxSet returns an empty candidate set on top of the given ledger hash.
func NewTxSet(previousLedgerHash util.Uint256) *TxSet {
	return &TxSet{PreviousLedgerHash: previousLedgerHash}
}

// Add appends a transaction to the set.
func (s *TxSet) Add(tx *transaction.Transaction) {
	s.Txs = append(s.Txs, tx)
}

// SizeOps returns the total number of operations in the set.
func (s *TxSet) SizeOps() int64 {
	var ops int64
	for _, tx := range s.Txs {
		ops += int64(tx.NumOps)
	}
	return ops
}

// ToTxSet builds a candidate set for the ledger following the given last
// closed one. An account created in the next ledger starts above the
// starting sequence boundary, so per account the set is cut (inclusively)
// at startingSeq-1: all queued transactions of a source account must lie on
// exactly one side of the boundary.
func (q *Queue) ToTxSet(lcl Header) *TxSet {
	result := NewTxSet(lcl.Hash)

	startingSeq := StartingSequenceNumber(lcl.LedgerSeq + 1)
	for _, state := range q.accountStates {
		for _, tx := range state.txs {
			result.Add(tx)
			if tx.SeqNum == startingSeq-1 {
				break
			}
		}
	}

	return result
}
