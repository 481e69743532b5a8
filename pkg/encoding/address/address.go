// Package address renders account identifiers in their human-readable
// base58check form.
package address

import (
	"errors"

	"github.com/Th-ium/ThiumCore/pkg/encoding/base58"
	"github.com/Th-ium/ThiumCore/pkg/util"
)

// Prefix is the byte used to prepend to addresses when encoding them, it's
// fixed for the whole network.
const Prefix = 0x35

// Uint160ToString returns the address for the given account identifier.
func Uint160ToString(u util.Uint160) string {
	// Dont forget to prepend the address version.
	b := append([]byte{Prefix}, u.BytesBE()...)
	return base58.CheckEncode(b)
}

// StringToUint160 attempts to decode the given address string into an
// account identifier.
func StringToUint160(s string) (u util.Uint160, err error) {
	b, err := base58.CheckDecode(s)
	if err != nil {
		return u, err
	}
	if len(b) != util.Uint160Size+1 {
		return u, errors.New("wrong address length")
	}
	if b[0] != Prefix {
		return u, errors.New("wrong address prefix")
	}
	return util.Uint160DecodeBytesBE(b[1:21])
}
