package txqueue

import (
	"math"
	"math/big"
	"testing"

	"github.com/Th-ium/ThiumCore/internal/random"
	"github.com/Th-ium/ThiumCore/pkg/core/transaction"
	"github.com/stretchr/testify/assert"
)

func feeTx(feeBid int64, numOps uint32) *transaction.Transaction {
	return transaction.New(random.Uint160(), 1, numOps, feeBid)
}

func TestCanReplaceByFee(t *testing.T) {
	cases := []struct {
		name           string
		newFee, oldFee int64
		newOps, oldOps uint32
		want           bool
	}{
		{"exactly ten times", 1000, 100, 1, 1, true},
		{"one below the bar", 999, 100, 1, 1, false},
		{"way above", 100000, 100, 1, 1, true},
		{"per-op ratio counts", 1000, 100, 2, 1, false},
		{"old ops scale the bar down", 500, 100, 1, 2, true},
		{"zero ops count as one", 1000, 100, 0, 0, true},
		{"zero old fee", 0, 0, 1, 1, true},
		{"max fee bids", math.MaxInt64, math.MaxInt64, 1, 1, false},
		{"max fee beats a tenth of max", math.MaxInt64, math.MaxInt64 / 10, 1, 1, true},
		{"overflow-prone cross multiply", math.MaxInt64, math.MaxInt64 / 2, 1, 100, true},
		{"overflow-prone reverse", math.MaxInt64 / 2, math.MaxInt64, 100, 1, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := canReplaceByFee(feeTx(tc.newFee, tc.newOps), feeTx(tc.oldFee, tc.oldOps))
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestCanReplaceByFeeMatchesBigInt(t *testing.T) {
	// Cross-check the widening comparison against big.Int on values around
	// the int64 boundary.
	fees := []int64{0, 1, 9, 10, math.MaxInt64 / 10, math.MaxInt64/10 + 1, math.MaxInt64 - 1, math.MaxInt64}
	opss := []uint32{0, 1, 2, 100}
	for _, newFee := range fees {
		for _, oldFee := range fees {
			for _, newOps := range opss {
				for _, oldOps := range opss {
					newTx := feeTx(newFee, newOps)
					oldTx := feeTx(oldFee, oldOps)

					v1 := new(big.Int).Mul(big.NewInt(newFee), big.NewInt(int64(feeOps(oldTx))))
					v2 := new(big.Int).Mul(big.NewInt(oldFee), big.NewInt(int64(feeOps(newTx))))
					v2.Mul(v2, big.NewInt(FeeMultiplier))
					want := v1.Cmp(v2) >= 0

					assert.Equal(t, want, canReplaceByFee(newTx, oldTx),
						"newFee=%d newOps=%d oldFee=%d oldOps=%d", newFee, newOps, oldFee, oldOps)
				}
			}
		}
	}
}

func TestCoversReservations(t *testing.T) {
	assert.True(t, coversReservations(big.NewInt(1000), 100, 600))
	assert.True(t, coversReservations(big.NewInt(1000), 400, 600))
	assert.False(t, coversReservations(big.NewInt(1000), 500, 600))
	assert.False(t, coversReservations(big.NewInt(-1), 0, 0))

	// A replacement releasing a bigger bid than it posts.
	assert.True(t, coversReservations(big.NewInt(100), -50, 100))

	// Balances beyond 2^256 trivially cover any int64 reservation.
	huge := new(big.Int).Lsh(big.NewInt(1), 300)
	assert.True(t, coversReservations(huge, math.MaxInt64, math.MaxInt64))
}

func TestStartingSequenceNumber(t *testing.T) {
	assert.Equal(t, int64(0), StartingSequenceNumber(0))
	assert.Equal(t, int64(1)<<32, StartingSequenceNumber(1))
	assert.Equal(t, int64(11)<<32, StartingSequenceNumber(11))
}
