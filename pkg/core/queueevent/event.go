// Package queueevent contains the declaration of the event type used by the
// pending queue notification subsystem.
package queueevent

import (
	"encoding/json"
	"errors"

	"github.com/Th-ium/ThiumCore/pkg/core/transaction"
)

// Type represents a queue event type.
type Type byte

const (
	// TransactionAdded marks transaction admission into the queue.
	TransactionAdded Type = 0x01
	// TransactionRemoved marks transaction removal after being applied.
	TransactionRemoved Type = 0x02
	// TransactionBanned marks transaction eviction with its hash banned.
	TransactionBanned Type = 0x03
	// TransactionReplaced marks in-place substitution of a queued
	// transaction (replace-by-fee or protocol upgrade rewrite); Data holds
	// the replaced frame.
	TransactionReplaced Type = 0x04
)

// Event represents one queue event, Data is event-specific.
type Event struct {
	Type Type
	Tx   *transaction.Transaction
	Data any
}

// String is a Stringer implementation.
func (e Type) String() string {
	switch e {
	case TransactionAdded:
		return "added"
	case TransactionRemoved:
		return "removed"
	case TransactionBanned:
		return "banned"
	case TransactionReplaced:
		return "replaced"
	default:
		return "unknown"
	}
}

// GetEventTypeFromString converts the input string into the Type if it's possible.
func GetEventTypeFromString(s string) (Type, error) {
	switch s {
	case "added":
		return TransactionAdded, nil
	case "removed":
		return TransactionRemoved, nil
	case "banned":
		return TransactionBanned, nil
	case "replaced":
		return TransactionReplaced, nil
	default:
		return 0, errors.New("invalid event type name")
	}
}

// MarshalJSON implements the json.Marshaler interface.
func (e Type) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.String())
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (e *Type) UnmarshalJSON(b []byte) error {
	var s string

	err := json.Unmarshal(b, &s)
	if err != nil {
		return err
	}
	id, err := GetEventTypeFromString(s)
	if err != nil {
		return err
	}
	*e = id
	return nil
}
