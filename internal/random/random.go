// Package random contains randomization utilities for tests.
package random

import (
	"math/rand"

	"github.com/Th-ium/ThiumCore/pkg/util"
)

// String returns a random string with the n as its length.
func String(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte(Int(65, 90))
	}

	return string(b)
}

// Int returns a random integer in [min,max).
func Int(min, max int) int {
	return min + rand.Intn(max-min)
}

// Bytes returns a random byte slice of specified length.
func Bytes(n int) []byte {
	b := make([]byte, n)
	rand.Read(b)
	return b
}

// Uint160 returns a random Uint160.
func Uint160() util.Uint160 {
	b := Bytes(util.Uint160Size)
	u, _ := util.Uint160DecodeBytesBE(b)
	return u
}

// Uint256 returns a random Uint256.
func Uint256() util.Uint256 {
	b := Bytes(util.Uint256Size)
	u, _ := util.Uint256DecodeBytesBE(b)
	return u
}
