package transaction

import (
	"testing"

	"github.com/Th-ium/ThiumCore/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashStability(t *testing.T) {
	acc := util.Uint160{1, 2, 3}
	tx := New(acc, 5, 1, 100)
	h := tx.FullHash()
	require.Equal(t, h, tx.FullHash())

	// Same fields produce the same digest.
	tx2 := New(acc, 5, 1, 100)
	require.Equal(t, h, tx2.FullHash())

	// Nonce differentiates otherwise identical frames.
	tx3 := New(acc, 5, 1, 100)
	tx3.Nonce = 1
	require.NotEqual(t, h, tx3.FullHash())
}

func TestPlainDefaults(t *testing.T) {
	acc := util.Uint160{1, 2, 3}
	tx := New(acc, 7, 3, 500)
	assert.Equal(t, EnvelopePlain, tx.Type)
	assert.Equal(t, acc, tx.Source)
	assert.Equal(t, acc, tx.FeeSource)
	assert.Equal(t, int64(7), tx.SeqNum)
	assert.Equal(t, tx.FullHash(), tx.InnerFullHash())
}

func TestFeeBump(t *testing.T) {
	src := util.Uint160{1, 2, 3}
	payer := util.Uint160{4, 5, 6}
	inner := New(src, 5, 1, 100)
	bump := NewFeeBump(payer, 1000, inner)

	assert.Equal(t, EnvelopeFeeBump, bump.Type)
	assert.Equal(t, src, bump.Source)
	assert.Equal(t, payer, bump.FeeSource)
	assert.Equal(t, inner.SeqNum, bump.SeqNum)
	assert.Equal(t, inner.FullHash(), bump.InnerFullHash())
	assert.NotEqual(t, inner.FullHash(), bump.FullHash())
}

func TestConvertForV13(t *testing.T) {
	src := util.Uint160{1, 2, 3}
	inner := New(src, 5, 1, 100)
	bump := NewFeeBump(util.Uint160{4, 5, 6}, 1000, inner)
	bump.Result = ResultBadSeq

	conv := ConvertForV13(bump)
	assert.Equal(t, V13Version, conv.Version)
	assert.Equal(t, V13Version, conv.Inner.Version)
	assert.Equal(t, ResultSuccess, conv.Result)
	assert.NotEqual(t, bump.FullHash(), conv.FullHash())
	assert.NotEqual(t, inner.FullHash(), conv.InnerFullHash())

	// Attributes consumed by the queue are preserved.
	assert.Equal(t, bump.Source, conv.Source)
	assert.Equal(t, bump.FeeSource, conv.FeeSource)
	assert.Equal(t, bump.SeqNum, conv.SeqNum)
	assert.Equal(t, bump.FeeBid, conv.FeeBid)
	assert.Equal(t, bump.NumOps, conv.NumOps)

	// The original frame is untouched.
	assert.Equal(t, uint8(0), bump.Version)
	assert.Equal(t, ResultBadSeq, bump.Result)
}

func TestResultCodeStringer(t *testing.T) {
	assert.Equal(t, "success", ResultSuccess.String())
	assert.Equal(t, "bad sequence number", ResultBadSeq.String())
	assert.Equal(t, "insufficient fee", ResultInsufficientFee.String())
	assert.Equal(t, "insufficient balance", ResultInsufficientBalance.String())
	assert.Equal(t, "unknown", ResultCode(42).String())
}

func TestEnvelopeTypeStringer(t *testing.T) {
	assert.Equal(t, "plain", EnvelopePlain.String())
	assert.Equal(t, "fee-bump", EnvelopeFeeBump.String())
	assert.Equal(t, "unknown", EnvelopeType(0xff).String())
}
