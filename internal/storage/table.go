package storage

import (
	"fmt"
	"math/bits"
	"unsafe"

	"github.com/bits-and-blooms/bitset"
	"github.com/gostonefire/cuckooindex/crt"
	"github.com/gostonefire/cuckooindex/internal/conf"
	"github.com/gostonefire/cuckooindex/internal/model"
	"github.com/gostonefire/cuckooindex/internal/utils"
)

// Table - Represents one of the two cuckoo tables. It holds 2^hashBits buckets of bucketSize slots each,
// laid out bucket by bucket in one flat slice. Which slots are in use is tracked in a bitset rather than
// in the slots themselves, so the stored item type needs no empty marker.
type Table[I model.Hashed] struct {
	id         int
	bucketSize int
	mask       uint32
	buckets    uint64
	slots      []I
	occupied   *bitset.BitSet
	count      int
}

// NewTable - Returns a pointer to a new and empty table
//   - id is the table identity, conf.Table1 or conf.Table2
//   - hashBits is the hash bit width, the table gets 2^hashBits buckets
//   - bucketSize is the number of slots in each bucket
//   - maxBytes is the most memory the slots and the occupied bitmap may take together
//
// It returns:
//   - table which is a pointer to the created instance
//   - err which is of type crt.OutOfMemory if the table would exceed conf.MaxTableSlots slots or maxBytes bytes
func NewTable[I model.Hashed](id int, hashBits uint8, bucketSize int, maxBytes uint64) (table *Table[I], err error) {
	nSlots, ok := utils.TableSlots(hashBits, bucketSize)
	if !ok || nSlots > conf.MaxTableSlots {
		err = crt.OutOfMemory{Msg: fmt.Sprintf("table %d needs %d buckets of %d slots, limit is %d slots", id, uint64(1)<<hashBits, bucketSize, conf.MaxTableSlots)}
		return
	}

	size, ok := TableBytes[I](hashBits, bucketSize)
	if !ok || size > maxBytes {
		err = crt.OutOfMemory{Msg: fmt.Sprintf("table %d needs %d bytes for %d slots, limit is %d bytes", id, size, nSlots, maxBytes)}
		return
	}

	table = &Table[I]{
		id:         id,
		bucketSize: bucketSize,
		mask:       utils.BucketMask(hashBits),
		buckets:    uint64(1) << hashBits,
		slots:      make([]I, nSlots),
		occupied:   bitset.New(uint(nSlots)),
	}

	return
}

// TableBytes - Returns the memory one table of items of type I takes, slots plus occupied bitmap.
// ok is false if the size doesn't fit in 64 bits.
func TableBytes[I any](hashBits uint8, bucketSize int) (size uint64, ok bool) {
	nSlots, ok := utils.TableSlots(hashBits, bucketSize)
	if !ok {
		return
	}

	var item I
	hi, slotBytes := bits.Mul64(nSlots, uint64(unsafe.Sizeof(item)))
	if hi != 0 {
		ok = false
		return
	}
	bitmapBytes := (nSlots + 63) / 64 * 8

	size, carry := bits.Add64(slotBytes, bitmapBytes, 0)
	ok = carry == 0

	return
}

// ID - Returns the table identity
func (T *Table[I]) ID() int {
	return T.id
}

// BucketIndex - Maps a hash value to a bucket index in this table
func (T *Table[I]) BucketIndex(hashValue uint32) uint32 {
	return hashValue & T.mask
}

// Buckets - Returns the number of buckets in the table
func (T *Table[I]) Buckets() uint64 {
	return T.buckets
}

// BucketSize - Returns the number of slots per bucket
func (T *Table[I]) BucketSize() int {
	return T.bucketSize
}

// Capacity - Returns the total number of slots in the table
func (T *Table[I]) Capacity() int {
	return len(T.slots)
}

// Count - Returns the number of occupied slots
func (T *Table[I]) Count() int {
	return T.count
}

// Occupied - Returns true if the slot holds an item
func (T *Table[I]) Occupied(bucket uint32, slot int) bool {
	return T.occupied.Test(T.pos(bucket, slot))
}

// Item - Returns the item stored in the slot, it is the zero value if the slot is free
func (T *Table[I]) Item(bucket uint32, slot int) I {
	return T.slots[T.pos(bucket, slot)]
}

// FreeSlot - Returns the first free slot of the bucket, ok is false if the bucket is full
func (T *Table[I]) FreeSlot(bucket uint32) (slot int, ok bool) {
	base := T.pos(bucket, 0)
	for slot = 0; slot < T.bucketSize; slot++ {
		if !T.occupied.Test(base + uint(slot)) {
			ok = true
			return
		}
	}

	return
}

// Victim - Selects the slot to displace from a bucket according to policy. Slots for which skip returns
// true are passed over. ok is false if there is no eligible occupied slot.
func (T *Table[I]) Victim(bucket uint32, policy int, skip func(slot int) bool) (slot int, ok bool) {
	base := T.pos(bucket, 0)
	eligible := func(s int) bool {
		return T.occupied.Test(base+uint(s)) && (skip == nil || !skip(s))
	}

	if policy == crt.LastOccupied {
		for slot = T.bucketSize - 1; slot >= 0; slot-- {
			if eligible(slot) {
				ok = true
				return
			}
		}
		return
	}

	for slot = 0; slot < T.bucketSize; slot++ {
		if eligible(slot) {
			ok = true
			return
		}
	}

	return
}

// Set - Stores item in a slot and marks it occupied
func (T *Table[I]) Set(bucket uint32, slot int, item I) {
	p := T.pos(bucket, slot)
	if !T.occupied.Test(p) {
		T.occupied.Set(p)
		T.count++
	}
	T.slots[p] = item
}

// Clear - Releases a slot and returns the item it held
func (T *Table[I]) Clear(bucket uint32, slot int) (item I) {
	p := T.pos(bucket, slot)
	item = T.slots[p]
	if T.occupied.Test(p) {
		T.occupied.Clear(p)
		T.count--
	}

	var zero I
	T.slots[p] = zero

	return
}

// NextOccupied - Returns the location of the first occupied slot at or after position from, where
// positions count slots bucket by bucket from zero. next is the position to continue from.
func (T *Table[I]) NextOccupied(from uint) (location model.Location, next uint, ok bool) {
	p, found := T.occupied.NextSet(from)
	if !found || p >= uint(len(T.slots)) {
		return
	}

	location = model.Location{
		Table:  T.id,
		Bucket: uint32(p / uint(T.bucketSize)),
		Slot:   int(p % uint(T.bucketSize)),
	}
	next = p + 1
	ok = true

	return
}

// Reset - Releases every slot without notification
func (T *Table[I]) Reset() {
	var zero I
	for p, ok := T.occupied.NextSet(0); ok; p, ok = T.occupied.NextSet(p + 1) {
		T.slots[p] = zero
	}
	T.occupied.ClearAll()
	T.count = 0
}

// pos - Returns the flat slice position of a slot
func (T *Table[I]) pos(bucket uint32, slot int) uint {
	return uint(bucket)*uint(T.bucketSize) + uint(slot)
}
