package txqueue

import (
	"math/big"

	"github.com/Th-ium/ThiumCore/pkg/core/transaction"
	"github.com/holiman/uint256"
)

// FeeMultiplier is the per-operation fee ratio a transaction has to offer
// over the queued one it wants to replace.
const FeeMultiplier = 10

// feeOps returns the operation count used for fee ratios, zero-op frames
// count as one.
func feeOps(tx *transaction.Transaction) uint64 {
	if tx.NumOps == 0 {
		return 1
	}
	return uint64(tx.NumOps)
}

// canReplaceByFee reports whether tx offers enough fee per operation to
// replace the queued oldTx:
//
//	newFee / newNumOps >= FeeMultiplier * oldFee / oldNumOps
//
// which is equivalent to
//
//	newFee * oldNumOps >= FeeMultiplier * oldFee * newNumOps
//
// The cross-multiplication is done in 256-bit width, fee bids are bounded
// by MaxInt64 while operation counts and FeeMultiplier are small, so it
// cannot overflow.
func canReplaceByFee(tx, oldTx *transaction.Transaction) bool {
	var v1, v2, m uint256.Int
	v1.SetUint64(uint64(tx.FeeBid))
	v1.Mul(&v1, m.SetUint64(feeOps(oldTx)))
	v2.SetUint64(uint64(oldTx.FeeBid))
	v2.Mul(&v2, m.SetUint64(feeOps(tx)))
	v2.Mul(&v2, m.SetUint64(FeeMultiplier))
	return v1.Cmp(&v2) >= 0
}

// coversReservations reports whether the available balance minus the
// marginal fee still covers the fees already reserved against the account:
//
//	available - netFee >= totalFees
//
// netFee may be negative when a replacement releases a bigger bid than it
// posts, but never below -totalFees (the released bid is a summand of
// totalFees), so the right-hand side stays non-negative.
func coversReservations(available *big.Int, netFee, totalFees int64) bool {
	if available.Sign() < 0 {
		return false
	}
	var avail, need uint256.Int
	if overflow := avail.SetFromBig(available); overflow {
		return true
	}
	need.SetUint64(uint64(totalFees))
	if netFee >= 0 {
		need.AddUint64(&need, uint64(netFee))
	} else {
		need.SubUint64(&need, uint64(-netFee))
	}
	return avail.Cmp(&need) >= 0
}
