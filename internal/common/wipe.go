package common

// WipeByteArray zeroes the slice in place. Used to clear passwords from
// memory once they have been handed to the transport. A nil slice is a no-op.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
