package transaction

// ResultCode is the transaction-level result written into a frame when it is
// checked or applied. Negative values are failures.
type ResultCode int32

// Transaction-level result codes.
const (
	ResultSuccess             ResultCode = 0
	ResultFailed              ResultCode = -1
	ResultTooEarly            ResultCode = -2
	ResultTooLate             ResultCode = -3
	ResultBadSeq              ResultCode = -5
	ResultBadAuth             ResultCode = -6
	ResultInsufficientBalance ResultCode = -7
	ResultNoAccount           ResultCode = -8
	ResultInsufficientFee     ResultCode = -9
)

// String implements the Stringer interface.
func (r ResultCode) String() string {
	switch r {
	case ResultSuccess:
		return "success"
	case ResultFailed:
		return "failed"
	case ResultTooEarly:
		return "too early"
	case ResultTooLate:
		return "too late"
	case ResultBadSeq:
		return "bad sequence number"
	case ResultBadAuth:
		return "bad auth"
	case ResultInsufficientBalance:
		return "insufficient balance"
	case ResultNoAccount:
		return "no account"
	case ResultInsufficientFee:
		return "insufficient fee"
	default:
		return "unknown"
	}
}
