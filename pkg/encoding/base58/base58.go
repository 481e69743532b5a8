// Package base58 wraps generic base58 encoder with the checksummed variants
// used for rendering account identifiers as addresses.
package base58

import (
	"bytes"
	"crypto/sha256"
	"errors"
	"fmt"

	"github.com/mr-tron/base58"
)

// Encode encodes a byte slice to be presented as base58.
func Encode(bytes []byte) string {
	return base58.Encode(bytes)
}

// Decode decodes a base58 string to a byte slice.
func Decode(s string) ([]byte, error) {
	return base58.Decode(s)
}

// CheckEncode encodes given bytes into base58 string with a 4-byte checksum
// appended to the input.
func CheckEncode(b []byte) string {
	b = append(b, checksum(b)...)
	return base58.Encode(b)
}

// CheckDecode decodes the given string, verifies and strips the trailing
// 4-byte checksum.
func CheckDecode(s string) (b []byte, err error) {
	b, err = base58.Decode(s)
	if err != nil {
		return nil, fmt.Errorf("invalid base-58 digit: %w", err)
	}

	if len(b) < 5 {
		return nil, errors.New("invalid base-58 check string: missing checksum")
	}

	if !bytes.Equal(checksum(b[:len(b)-4]), b[len(b)-4:]) {
		return nil, errors.New("invalid base-58 check string: invalid checksum")
	}

	// Strip the 4 byte long hash.
	b = b[:len(b)-4]

	return b, nil
}

// checksum returns the first 4 bytes of sha256(sha256(b)).
func checksum(b []byte) []byte {
	h := sha256.Sum256(b)
	h = sha256.Sum256(h[:])
	return h[:4]
}
