// Package transaction contains the transaction frame consumed by the
// pending queue. The frame is opaque to the queue except for the envelope
// tag, hashes, sequence/fee attributes and the mutable result code.
package transaction

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"

	"github.com/Th-ium/ThiumCore/pkg/util"
)

// EnvelopeType is the tag of the transaction envelope.
type EnvelopeType byte

// Envelope types.
const (
	// EnvelopePlain is an ordinary single-fee-payer envelope.
	EnvelopePlain EnvelopeType = 0x00
	// EnvelopeFeeBump wraps an inner transaction unchanged and substitutes
	// a different fee payer and fee amount.
	EnvelopeFeeBump EnvelopeType = 0x05
)

// String implements the Stringer interface.
func (e EnvelopeType) String() string {
	switch e {
	case EnvelopePlain:
		return "plain"
	case EnvelopeFeeBump:
		return "fee-bump"
	default:
		return "unknown"
	}
}

// V13Version is the envelope version queued frames are rewritten to once the
// ledger protocol crosses version 13.
const V13Version uint8 = 1

// Transaction is a signed transaction frame as seen by the pending queue.
type Transaction struct {
	// Version is the envelope version (0 for legacy, V13Version after the
	// protocol 13 rewrite).
	Version uint8
	// Type is the envelope tag.
	Type EnvelopeType
	// Source is the sequence-number source account.
	Source util.Uint160
	// FeeSource is the account paying FeeBid. It equals Source for plain
	// envelopes and may differ for fee-bump ones.
	FeeSource util.Uint160
	// SeqNum is the sequence number consumed from Source.
	SeqNum int64
	// FeeBid is the total fee offered, non-negative.
	FeeBid int64
	// NumOps is the number of operations carried by the frame.
	NumOps uint32
	// Nonce differentiates otherwise identical frames.
	Nonce uint32
	// Inner is the wrapped transaction for fee-bump envelopes, nil otherwise.
	Inner *Transaction
	// Result is written by validation and admission on rejection.
	Result ResultCode

	hash   util.Uint256
	hashed bool
}

// New returns a new plain transaction frame paying its own fee.
func New(source util.Uint160, seqNum int64, numOps uint32, feeBid int64) *Transaction {
	return &Transaction{
		Type:      EnvelopePlain,
		Source:    source,
		FeeSource: source,
		SeqNum:    seqNum,
		NumOps:    numOps,
		FeeBid:    feeBid,
	}
}

// NewFeeBump returns a fee-bump frame wrapping inner with a new fee source
// and fee bid. The wrapped transaction keeps its source and sequence number.
func NewFeeBump(feeSource util.Uint160, feeBid int64, inner *Transaction) *Transaction {
	return &Transaction{
		Type:      EnvelopeFeeBump,
		Source:    inner.Source,
		FeeSource: feeSource,
		SeqNum:    inner.SeqNum,
		NumOps:    inner.NumOps,
		FeeBid:    feeBid,
		Inner:     inner,
	}
}

// FullHash returns the content+signature digest of the frame. It is
// computed lazily and cached, the frame must not be mutated afterwards.
func (t *Transaction) FullHash() util.Uint256 {
	if !t.hashed {
		t.hash = sha256.Sum256(t.encodeHashableFields())
		t.hashed = true
	}
	return t.hash
}

// InnerFullHash returns the digest of the wrapped transaction for fee-bump
// envelopes and the frame's own digest otherwise.
func (t *Transaction) InnerFullHash() util.Uint256 {
	if t.Type == EnvelopeFeeBump && t.Inner != nil {
		return t.Inner.FullHash()
	}
	return t.FullHash()
}

func (t *Transaction) encodeHashableFields() []byte {
	w := new(bytes.Buffer)
	w.WriteByte(t.Version)
	w.WriteByte(byte(t.Type))
	w.Write(t.Source.BytesBE())
	w.Write(t.FeeSource.BytesBE())
	_ = binary.Write(w, binary.LittleEndian, t.SeqNum)
	_ = binary.Write(w, binary.LittleEndian, t.FeeBid)
	_ = binary.Write(w, binary.LittleEndian, t.NumOps)
	_ = binary.Write(w, binary.LittleEndian, t.Nonce)
	if t.Type == EnvelopeFeeBump && t.Inner != nil {
		h := t.Inner.FullHash()
		w.Write(h.BytesBE())
	}
	return w.Bytes()
}

// ConvertForV13 returns a copy of t rewritten to the protocol 13 envelope
// form. The copy hashes differently from the original, result state is not
// carried over.
func ConvertForV13(t *Transaction) *Transaction {
	c := *t
	c.Version = V13Version
	c.Result = ResultSuccess
	c.hashed = false
	if t.Inner != nil {
		c.Inner = ConvertForV13(t.Inner)
	}
	return &c
}
