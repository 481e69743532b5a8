package util

// ArrayReverse returns a reversed version of the given byte slice.
func ArrayReverse(b []byte) []byte {
	dest := make([]byte, len(b))
	for i, j := 0, len(b)-1; i < len(b); i, j = i+1, j-1 {
		dest[i] = b[j]
	}
	return dest
}
