package hashfunc

// HashAlgorithm - Interface that permits an implementation using the cuckoo index to supply custom hash
// functions suited for its particular distribution of keys. It is only consulted when the index is created
// with internal hash computation enabled, otherwise the caller supplies hash values along with each item.
type HashAlgorithm interface {
	// HashFunc1 - Given key it generates the hash value used to address a bucket in table 1.
	// Only the lower hash-bit-width bits of the value are used, so the full 32 bits should be well mixed.
	HashFunc1(key []byte) uint32

	// HashFunc2 - Given key it generates the hash value used to address a bucket in table 2.
	// It must be independent of HashFunc1, two keys colliding in both tables will compete for the same
	// pair of buckets and relocation can't separate them.
	HashFunc2(key []byte) uint32

	// Signature - Given key it generates an auxiliary hash value stored with the item. Lookups compare
	// signatures before comparing keys, so a cheap but well distributed value saves key comparisons.
	Signature(key []byte) uint32
}
