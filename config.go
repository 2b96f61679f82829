package cuckooindex

import (
	"fmt"

	"github.com/gostonefire/cuckooindex/crt"
	"github.com/gostonefire/cuckooindex/hashfunc"
	"github.com/gostonefire/cuckooindex/internal/conf"
	"github.com/gostonefire/cuckooindex/internal/hash"
)

// Config - Is a struct passed in the call to New and holds everything that shapes an index. It is copied
// by New and can't be changed afterwards.
//   - Name is a label used in logs and diagnostic dumps
//   - HashBits is the hash bit width, each table gets 2^HashBits buckets (1 to 32)
//   - BucketSize is the number of slots in each bucket (1 to 254)
//   - MaxRelocationDepth is the maximum number of items displaced by one insert, 0 disables relocation
//   - HistogramSize is the number of bins in the relocation histogram, 0 disables it
//   - LockEnabled makes every operation hold an internal mutex for its full duration
//   - InternalHash makes the index compute H1, H2 and Signature from the key, otherwise the caller supplies them
//   - LookupBeforeInsert makes Insert fail with crt.AlreadyExists if the key is already stored
//   - StatsEnabled turns on the statistics collector, StatsGet returns crt.Unsupported otherwise
//   - VictimPolicy selects which slot of a full bucket is displaced, crt.FirstOccupied or crt.LastOccupied
//   - FlushNotification selects how Flush notifies, crt.FlushPerItem or crt.FlushBulk
//   - KeyCompare is the key comparison strategy, nil means byte wise equality. Keys it considers equal must
//     get equal signatures, signatures are compared first.
//   - HashAlgorithm is used with InternalHash, nil means the built-in xxhash based algorithm
//   - MaxMemory is the most memory in bytes both tables may take together, 0 means 4 GiB. New fails with
//     crt.OutOfMemory rather than attempting a larger allocation.
//   - Logger receives lifecycle and failure logs, nil means no logging
type Config struct {
	Name               string
	HashBits           uint8
	BucketSize         int
	MaxRelocationDepth int
	HistogramSize      int
	LockEnabled        bool
	InternalHash       bool
	LookupBeforeInsert bool
	StatsEnabled       bool
	VictimPolicy       int
	FlushNotification  int
	KeyCompare         func(a, b []byte) bool
	HashAlgorithm      hashfunc.HashAlgorithm
	MaxMemory          uint64
	Logger             *Logger
}

// DefaultConfig - Returns a configuration for a general purpose, thread safe index of 2 * 1024 buckets with
// four slots each, computing hashes internally and refusing duplicate keys.
func DefaultConfig() Config {
	return Config{
		Name:               "cuckooindex",
		HashBits:           conf.DefaultHashBits,
		BucketSize:         conf.DefaultBucketSize,
		MaxRelocationDepth: conf.DefaultMaxRelocationDepth,
		HistogramSize:      conf.DefaultHistogramSize,
		LockEnabled:        true,
		InternalHash:       true,
		LookupBeforeInsert: true,
		StatsEnabled:       true,
		VictimPolicy:       crt.FirstOccupied,
		FlushNotification:  crt.FlushPerItem,
		MaxMemory:          conf.DefaultMaxMemory,
	}
}

// NewXXHashAlgorithm - Returns the built-in algorithm used when Config.HashAlgorithm is nil. Both table hashes
// come from one 64-bit xxhash sum and the signature is a CRC32-Castagnoli checksum.
func NewXXHashAlgorithm() hashfunc.HashAlgorithm {
	return hash.NewXXHashAlgorithm()
}

// NewCRC32HashAlgorithm - Returns an alternative built-in algorithm using three CRC32 polynomials, one for
// each table hash and one for the signature
func NewCRC32HashAlgorithm() hashfunc.HashAlgorithm {
	return hash.NewCRC32HashAlgorithm()
}

// validate - Checks every bounded field, returns an error of type crt.InvalidConfig naming the first offending one
func (C Config) validate() (err error) {
	// Check hash bit width
	if C.HashBits < conf.MinHashBits || C.HashBits > conf.MaxHashBits {
		err = crt.InvalidConfig{Msg: fmt.Sprintf("hash bits must be between %d and %d, got %d", conf.MinHashBits, conf.MaxHashBits, C.HashBits)}
		return
	}

	// Check bucket size
	if C.BucketSize < conf.MinBucketSize || C.BucketSize > conf.MaxBucketSize {
		err = crt.InvalidConfig{Msg: fmt.Sprintf("bucket size must be between %d and %d, got %d", conf.MinBucketSize, conf.MaxBucketSize, C.BucketSize)}
		return
	}

	// Check relocation depth
	if C.MaxRelocationDepth < 0 {
		err = crt.InvalidConfig{Msg: fmt.Sprintf("max relocation depth can not be negative, got %d", C.MaxRelocationDepth)}
		return
	}

	// Check histogram size
	if C.HistogramSize < 0 || C.HistogramSize > conf.MaxHistogramSize {
		err = crt.InvalidConfig{Msg: fmt.Sprintf("histogram size must be between 0 and %d, got %d", conf.MaxHistogramSize, C.HistogramSize)}
		return
	}

	// Check policies
	if C.VictimPolicy != crt.FirstOccupied && C.VictimPolicy != crt.LastOccupied {
		err = crt.InvalidConfig{Msg: fmt.Sprintf("unknown victim policy %d", C.VictimPolicy)}
		return
	}
	if C.FlushNotification != crt.FlushPerItem && C.FlushNotification != crt.FlushBulk {
		err = crt.InvalidConfig{Msg: fmt.Sprintf("unknown flush notification policy %d", C.FlushNotification)}
		return
	}

	return
}
