package util

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUint256DecodeString(t *testing.T) {
	hexStr := "f037308fa0ab18155bccfc08485468c112409ea5064595699e98c545f245f32d"
	val, err := Uint256DecodeStringLE(hexStr)
	require.NoError(t, err)
	assert.Equal(t, hexStr, val.StringLE())

	_, err = Uint256DecodeStringLE(hexStr[1:])
	assert.Error(t, err)

	_, err = Uint256DecodeStringLE(hexStr[:len(hexStr)-2] + "zz")
	assert.Error(t, err)
}

func TestUint256DecodeBytes(t *testing.T) {
	b := make([]byte, Uint256Size)
	for i := range b {
		b[i] = byte(i)
	}
	val, err := Uint256DecodeBytesBE(b)
	require.NoError(t, err)
	assert.Equal(t, b, val.BytesBE())
	assert.Equal(t, ArrayReverse(b), val.BytesLE())

	_, err = Uint256DecodeBytesBE(b[1:])
	assert.Error(t, err)
}

func TestUint256Equals(t *testing.T) {
	a := "f037308fa0ab18155bccfc08485468c112409ea5064595699e98c545f245f32d"
	b := "e13f4c52cd61e1d6fd6a2fec0f0b94701829ffaa6f28d8dc0d826e10bfdb6a85"

	ua, err := Uint256DecodeStringLE(a)
	require.NoError(t, err)
	ub, err := Uint256DecodeStringLE(b)
	require.NoError(t, err)
	assert.False(t, ua.Equals(ub), "%s and %s cannot be equal", ua, ub)
	assert.True(t, ua.Equals(ua), "%s and %s must be equal", ua, ua)
	assert.Zero(t, ua.CompareTo(ua))
}

func TestUint256MarshalJSON(t *testing.T) {
	str := "f037308fa0ab18155bccfc08485468c112409ea5064595699e98c545f245f32d"
	expected, err := Uint256DecodeStringLE(str)
	require.NoError(t, err)

	// UnmarshalJSON decodes hex-strings
	var u1, u2 Uint256
	require.NoError(t, u1.UnmarshalJSON([]byte(`"`+str+`"`)))
	assert.True(t, expected.Equals(u1))

	s, err := expected.MarshalJSON()
	require.NoError(t, err)

	// UnmarshalJSON decodes hex-strings prefixed by 0x
	require.NoError(t, u2.UnmarshalJSON(s))
	assert.True(t, expected.Equals(u1))

	// Unmarshalling should fail on incorrect input
	require.Error(t, u2.UnmarshalJSON([]byte(`123`)))
	require.Error(t, u2.UnmarshalJSON([]byte(`"not-a-hash"`)))
}

func TestUint160DecodeKnownString(t *testing.T) {
	hexStr := "b28427088a3729b2536d10122960394e8be6721f"
	val, err := Uint160DecodeStringBE(hexStr)
	require.NoError(t, err)
	assert.Equal(t, hexStr, val.StringBE())

	_, err = Uint160DecodeStringBE(hexStr[1:])
	assert.Error(t, err)
}

func TestUint160FromKey(t *testing.T) {
	key := []byte{1, 2, 3, 4}
	u, err := Uint160FromKey(key)
	require.NoError(t, err)

	// Same key material, same account.
	u2, err := Uint160FromKey(key)
	require.NoError(t, err)
	assert.True(t, u.Equals(u2))

	u3, err := Uint160FromKey([]byte{4, 3, 2, 1})
	require.NoError(t, err)
	assert.False(t, u.Equals(u3))
}

func TestUint160Less(t *testing.T) {
	a := Uint160{1, 2, 3}
	b := Uint160{1, 2, 4}
	assert.True(t, a.Less(b))
	assert.False(t, b.Less(a))
	assert.False(t, a.Less(a))
}

func TestUint160MarshalJSON(t *testing.T) {
	u := Uint160{1, 2, 3}
	data, err := json.Marshal(u)
	require.NoError(t, err)

	var v Uint160
	require.NoError(t, json.Unmarshal(data, &v))
	assert.Equal(t, u, v)
}

func TestArrayReverse(t *testing.T) {
	arr := []byte{0x01, 0x02, 0x03, 0x04, 0x05}
	have := ArrayReverse(arr)
	want := []byte{0x05, 0x04, 0x03, 0x02, 0x01}
	assert.Equal(t, want, have)

	// Test zero length.
	assert.Equal(t, []byte{}, ArrayReverse([]byte{}))
}
