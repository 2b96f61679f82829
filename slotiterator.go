package cuckooindex

import (
	"github.com/gostonefire/cuckooindex/crt"
	"github.com/gostonefire/cuckooindex/internal/storage"
)

// occupiedSlots - Is used to iterate over the occupied slots of one table one by one, bucket by bucket.
// The slot just returned by next may be cleared while iterating.
type occupiedSlots[V any] struct {
	table    *storage.Table[Item[V]]
	location Location
	position uint
	found    bool
}

// newOccupiedSlots - Returns a pointer to a new occupiedSlots positioned at the first occupied slot
func newOccupiedSlots[V any](table *storage.Table[Item[V]]) *occupiedSlots[V] {
	iter := &occupiedSlots[V]{table: table}
	iter.advance()

	return iter
}

// hasNext - Returns true if there are more items to be fetched from a call to next.
func (O *occupiedSlots[V]) hasNext() bool {
	return O.found
}

// next - Returns the next occupied slot.
// It returns:
//   - location is where the item is stored
//   - item is the stored item
//   - err is of type crt.NotFound if there are no more occupied slots when calling this function
func (O *occupiedSlots[V]) next() (location Location, item Item[V], err error) {
	if !O.found {
		err = crt.NotFound{Msg: "no more occupied slots"}
		return
	}

	location = O.location
	item = O.table.Item(location.Bucket, location.Slot)
	O.advance()

	return
}

// advance - Moves to the next occupied slot
func (O *occupiedSlots[V]) advance() {
	O.location, O.position, O.found = O.table.NextOccupied(O.position)
}
