// Package cuckooindex provides an embeddable two-table cuckoo hash index.
//
// An Index associates byte keys with values of any type. Each key has one candidate bucket in each of two
// tables, given by its two hash values. Lookups inspect at most those two buckets. Inserts that find both
// buckets full displace stored items to their alternate table, at most Config.MaxRelocationDepth of them,
// and fail with crt.TableFull without any change if that budget is not enough.
//
// The index never copies keys or values. Key slices passed in items are kept as they are and must not be
// modified by the caller while stored, values are stored by assignment so a pointer type V gives reference
// semantics. Every structural change is reported synchronously to an optional Notifier.
package cuckooindex

import (
	"fmt"
	"sync"

	"github.com/gostonefire/cuckooindex/crt"
	"github.com/gostonefire/cuckooindex/hashfunc"
	"github.com/gostonefire/cuckooindex/internal/conf"
	"github.com/gostonefire/cuckooindex/internal/hash"
	"github.com/gostonefire/cuckooindex/internal/model"
	"github.com/gostonefire/cuckooindex/internal/storage"
	"github.com/gostonefire/cuckooindex/internal/utils"
)

// Location - Identifies a slot by table (Table1 or Table2), bucket index and slot within the bucket
type Location = model.Location

// Table1 - Identity of the table addressed by H1
const Table1 = conf.Table1

// Table2 - Identity of the table addressed by H2
const Table2 = conf.Table2

// Item - One key/value association together with its hash values.
//   - Key is referenced, never copied
//   - Value is filled in by Lookup and Remove
//   - H1 and H2 address the bucket in table 1 and table 2, only their lower Config.HashBits bits are used
//   - Signature is compared before the key when searching a bucket
//
// With Config.InternalHash the index computes H1, H2 and Signature itself and overwrites what was given.
type Item[V any] struct {
	Key       []byte
	Value     V
	H1        uint32
	H2        uint32
	Signature uint32
}

// TableHash - Returns the hash addressing the item in the given table
func (I Item[V]) TableHash(table int) uint32 {
	if table == conf.Table2 {
		return I.H2
	}
	return I.H1
}

// noLock - Stands in for the mutex when the index is created without locking
type noLock struct{}

func (noLock) Lock()   {}
func (noLock) Unlock() {}

// Index - The hash context, owning both tables, the configuration, an optional lock and optional statistics
type Index[V any] struct {
	conf          Config
	pair          *storage.Pair[Item[V]]
	lock          sync.Locker
	stats         *Stats
	hashAlgorithm hashfunc.HashAlgorithm
	keyCompare    func(a, b []byte) bool
	notifier      Notifier[V]
	logger        *Logger
	destroyed     bool
}

// New - Returns a new and empty index.
//   - config holds sizes and behaviour, see Config
//   - notifier receives an event for every item added, moved or removed, it can be nil
//
// It returns:
//   - index is a pointer to the created Index
//   - err is of type crt.InvalidConfig for out of range configuration or crt.OutOfMemory if the tables would
//     exceed Config.MaxMemory
func New[V any](config Config, notifier Notifier[V]) (index *Index[V], err error) {
	if err = config.validate(); err != nil {
		return
	}

	// Fill in defaults for optional collaborators
	keyCompare := config.KeyCompare
	if keyCompare == nil {
		keyCompare = utils.IsEqual
	}
	hashAlgorithm := config.HashAlgorithm
	if hashAlgorithm == nil && config.InternalHash {
		hashAlgorithm = NewXXHashAlgorithm()
	}
	logger := config.Logger
	if logger == nil {
		logger = NoopLogger()
	}
	logger = logger.WithName(config.Name)

	maxMemory := config.MaxMemory
	if maxMemory == 0 {
		maxMemory = conf.DefaultMaxMemory
	}

	pair, err := storage.NewPair[Item[V]](config.HashBits, config.BucketSize, config.VictimPolicy, maxMemory)
	if err != nil {
		logger.LogCreateFailed(config, err)
		return
	}

	index = &Index[V]{
		conf:          config,
		pair:          pair,
		lock:          noLock{},
		hashAlgorithm: hashAlgorithm,
		keyCompare:    keyCompare,
		notifier:      notifier,
		logger:        logger,
	}
	if config.LockEnabled {
		index.lock = &sync.Mutex{}
	}
	if config.StatsEnabled {
		index.stats = newStats(pair.Capacity(), config.HistogramSize)
	}

	logger.LogCreate(config, pair.Capacity())

	return
}

// Destroy - Releases both tables. The index doesn't need to be empty and no events are raised, use Flush
// first if stored items need to be released one by one. Any later call, including a second Destroy, fails
// with crt.InvalidState.
func (X *Index[V]) Destroy() (err error) {
	X.lock.Lock()
	defer X.lock.Unlock()

	if err = X.checkState(); err != nil {
		return
	}

	items := X.pair.Count()
	X.pair = nil
	X.stats = nil
	X.destroyed = true

	X.logger.LogDestroy(items)

	return
}

// Config - Returns a copy of the configuration the index was created with
func (X *Index[V]) Config() Config {
	return X.conf
}

// Count - Returns the number of stored items, zero once destroyed
func (X *Index[V]) Count() int {
	X.lock.Lock()
	defer X.lock.Unlock()

	if X.destroyed {
		return 0
	}
	return X.pair.Count()
}

// Capacity - Returns the number of slots in both tables, zero once destroyed
func (X *Index[V]) Capacity() int {
	X.lock.Lock()
	defer X.lock.Unlock()

	if X.destroyed {
		return 0
	}
	return X.pair.Capacity()
}

// checkState - Returns crt.InvalidState if the index has been destroyed, must be called with the lock held
func (X *Index[V]) checkState() (err error) {
	if X.destroyed {
		err = crt.InvalidState{Msg: fmt.Sprintf("index %q has been destroyed", X.conf.Name)}
	}
	return
}

// hashItem - Computes the item hashes if the index is configured to do so
func (X *Index[V]) hashItem(item *Item[V]) {
	if !X.conf.InternalHash {
		return
	}
	if xx, ok := X.hashAlgorithm.(*hash.XXHashAlgorithm); ok {
		item.H1, item.H2, item.Signature = xx.Hashes(item.Key)
		return
	}
	item.H1 = X.hashAlgorithm.HashFunc1(item.Key)
	item.H2 = X.hashAlgorithm.HashFunc2(item.Key)
	item.Signature = X.hashAlgorithm.Signature(item.Key)
}

// find - Searches both candidate buckets for the item key
func (X *Index[V]) find(item *Item[V]) (location Location, stored Item[V], ok bool) {
	return X.pair.Find(item.H1, item.H2, func(candidate Item[V]) bool {
		return candidate.Signature == item.Signature && X.keyCompare(candidate.Key, item.Key)
	})
}
