package txqueue

import (
	"math/big"

	"github.com/Th-ium/ThiumCore/pkg/core/transaction"
	"github.com/Th-ium/ThiumCore/pkg/util"
)

// Header carries the last-closed-ledger attributes the queue depends on.
type Header struct {
	// Hash is the ledger header hash.
	Hash util.Uint256
	// LedgerSeq is the sequence number of the closed ledger.
	LedgerSeq uint32
	// LedgerVersion is the ledger protocol version.
	LedgerVersion uint32
	// MaxTxSetSizeOps is the per-ledger operation cap.
	MaxTxSetSizeOps uint32
}

// Ledger is an interface that abstracts the chain state the queue validates
// against. All calls are synchronous.
type Ledger interface {
	// CheckValid validates signatures, the sequence number relative to
	// priorSeq (the account's current one when priorSeq is zero) and
	// semantic preconditions. It writes a failure code into tx.Result
	// when returning false.
	CheckValid(tx *transaction.Transaction, priorSeq int64) bool
	// SpendableBalance returns the balance of the given account available
	// for paying fees.
	SpendableBalance(acc util.Uint160) *big.Int
	// LastClosedHeader returns the last closed ledger header.
	LastClosedHeader() Header
}

// StartingSequenceNumber returns the lowest sequence number an account
// created in the given ledger can use. Every queued transaction of a source
// account must lie on exactly one side of this boundary.
func StartingSequenceNumber(ledgerSeq uint32) int64 {
	return int64(ledgerSeq) << 32
}
