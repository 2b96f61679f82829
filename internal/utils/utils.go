package utils

import (
	"bytes"
	"encoding/hex"
	"math/bits"
)

// IsEqual - Returns true if a and b are equal both in size and contents.
// It is the default key comparison strategy of the index.
func IsEqual(a, b []byte) bool {
	return bytes.Equal(a, b)
}

// BucketMask - Returns the mask that maps a hash value to a bucket index given the hash bit width
func BucketMask(hashBits uint8) uint32 {
	if hashBits >= 32 {
		return ^uint32(0)
	}
	return uint32(1)<<hashBits - 1
}

// TableSlots - Returns the number of slots in one table, i.e. 2^hashBits * bucketSize.
// ok is false if the product doesn't fit in 64 bits.
func TableSlots(hashBits uint8, bucketSize int) (slots uint64, ok bool) {
	if hashBits >= 64 || bucketSize < 0 {
		return
	}
	hi, lo := bits.Mul64(uint64(1)<<hashBits, uint64(bucketSize))
	if hi != 0 {
		return
	}
	slots = lo
	ok = true
	return
}

// HexKey - Returns the key as hex, truncated to maxBytes bytes followed by ".." if longer
func HexKey(key []byte, maxBytes int) string {
	if maxBytes > 0 && len(key) > maxBytes {
		return hex.EncodeToString(key[:maxBytes]) + ".."
	}
	return hex.EncodeToString(key)
}
