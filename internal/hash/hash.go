package hash

import (
	"hash/crc32"

	"github.com/cespare/xxhash/v2"
)

// castagnoliTable is pre-computed once, the IEEE table is built into the crc32 package.
var castagnoliTable = crc32.MakeTable(crc32.Castagnoli)

// koopmanTable is pre-computed once and only used by the CRC32HashAlgorithm signature.
var koopmanTable = crc32.MakeTable(crc32.Koopman)

// XXHashAlgorithm - The internally used hash algorithm. It computes one 64-bit xxhash over the key and
// splits it into the two table hashes, the lower 32 bits address table 1 and the upper 32 bits table 2.
// The signature is a CRC32-Castagnoli checksum, which keeps it independent of the two table hashes.
type XXHashAlgorithm struct{}

// NewXXHashAlgorithm - Returns a pointer to a new XXHashAlgorithm instance
func NewXXHashAlgorithm() *XXHashAlgorithm {
	return &XXHashAlgorithm{}
}

// HashFunc1 - Given key it generates the table 1 hash value
func (X *XXHashAlgorithm) HashFunc1(key []byte) uint32 {
	return uint32(xxhash.Sum64(key))
}

// HashFunc2 - Given key it generates the table 2 hash value
func (X *XXHashAlgorithm) HashFunc2(key []byte) uint32 {
	return uint32(xxhash.Sum64(key) >> 32)
}

// Signature - Given key it generates the auxiliary signature
func (X *XXHashAlgorithm) Signature(key []byte) uint32 {
	return crc32.Checksum(key, castagnoliTable)
}

// Hashes - Returns all three values computing the xxhash sum only once
func (X *XXHashAlgorithm) Hashes(key []byte) (h1, h2, sig uint32) {
	h := xxhash.Sum64(key)
	h1 = uint32(h)
	h2 = uint32(h >> 32)
	sig = crc32.Checksum(key, castagnoliTable)
	return
}

// CRC32HashAlgorithm - An alternative algorithm built only on crc32 checksums using three different
// polynomials, IEEE for table 1, Castagnoli for table 2 and Koopman for the signature.
type CRC32HashAlgorithm struct{}

// NewCRC32HashAlgorithm - Returns a pointer to a new CRC32HashAlgorithm instance
func NewCRC32HashAlgorithm() *CRC32HashAlgorithm {
	return &CRC32HashAlgorithm{}
}

// HashFunc1 - Given key it generates the table 1 hash value
func (C *CRC32HashAlgorithm) HashFunc1(key []byte) uint32 {
	return crc32.ChecksumIEEE(key)
}

// HashFunc2 - Given key it generates the table 2 hash value
func (C *CRC32HashAlgorithm) HashFunc2(key []byte) uint32 {
	return crc32.Checksum(key, castagnoliTable)
}

// Signature - Given key it generates the auxiliary signature
func (C *CRC32HashAlgorithm) Signature(key []byte) uint32 {
	return crc32.Checksum(key, koopmanTable)
}
