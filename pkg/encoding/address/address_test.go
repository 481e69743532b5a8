package address

import (
	"testing"

	"github.com/Th-ium/ThiumCore/pkg/encoding/base58"
	"github.com/Th-ium/ThiumCore/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUint160RoundTrip(t *testing.T) {
	u, err := util.Uint160FromKey([]byte("some account key"))
	require.NoError(t, err)

	s := Uint160ToString(u)
	back, err := StringToUint160(s)
	require.NoError(t, err)
	assert.Equal(t, u, back)
}

func TestDecodeFailures(t *testing.T) {
	// Not a base58 string at all.
	_, err := StringToUint160("0O0O0O")
	assert.Error(t, err)

	// Valid base58, but no checksum.
	_, err = StringToUint160("ab")
	assert.Error(t, err)

	// Wrong prefix byte.
	wrong := base58.CheckEncode(append([]byte{0x17}, make([]byte, util.Uint160Size)...))
	_, err = StringToUint160(wrong)
	assert.Error(t, err)
}
