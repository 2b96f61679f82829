package cuckooindex

import (
	"fmt"

	"github.com/gostonefire/cuckooindex/crt"
	"github.com/gostonefire/cuckooindex/internal/model"
)

// Lookup - Searches for the item key, first in table 1 at bucket H1 and then in table 2 at bucket H2.
//   - item holds the key and, unless the index computes them, the hash values and signature
//
// It returns:
//   - err is nil if found, item.Value is then set to the stored value. Otherwise an error of type crt.NotFound,
//     or crt.InvalidState if the index has been destroyed.
func (X *Index[V]) Lookup(item *Item[V]) (err error) {
	_, err = X.LookupVerbose(item)
	return
}

// LookupVerbose - Works as Lookup and also tells where the item is stored.
//
// It returns:
//   - location is the table, bucket and slot holding the item
//   - err is either of type crt.NotFound or crt.InvalidState if something went wrong
func (X *Index[V]) LookupVerbose(item *Item[V]) (location Location, err error) {
	X.lock.Lock()
	defer X.lock.Unlock()

	if err = X.checkState(); err != nil {
		return
	}

	location, err = X.lookup(item)

	return
}

// Get - Returns the value stored for key. It is a shorthand for Lookup on indexes computing hashes internally.
//
// It returns:
//   - value is the stored value if found
//   - err is of type crt.NotFound if missing. crt.InvalidState if the index has been destroyed takes precedence
//     over crt.Unsupported if the index doesn't compute hashes itself.
func (X *Index[V]) Get(key []byte) (value V, err error) {
	X.lock.Lock()
	defer X.lock.Unlock()

	if err = X.checkState(); err != nil {
		return
	}
	if !X.conf.InternalHash {
		err = crt.Unsupported{Msg: "Get requires internal hash computation, use Lookup with hash values"}
		return
	}

	item := Item[V]{Key: key}
	if _, err = X.lookup(&item); err != nil {
		return
	}
	value = item.Value

	return
}

// lookup - Searches for the item and fills in its value, must be called with the lock held
func (X *Index[V]) lookup(item *Item[V]) (location Location, err error) {
	X.hashItem(item)
	if X.stats != nil {
		X.stats.LookupRequests++
	}

	location, stored, ok := X.find(item)
	if !ok {
		location = Location{}
		err = crt.NotFound{}
		return
	}

	item.Value = stored.Value
	if X.stats != nil {
		X.stats.LookupSuccess++
	}

	return
}

// Insert - Stores the item. The first free slot in table 1 at bucket H1 is preferred over the first free slot
// in table 2 at bucket H2. If both buckets are full, stored items are displaced to their alternate table,
// raising one ItemMoved event each, up to Config.MaxRelocationDepth of them. ItemMoved events come in the
// order the moves are executed: the item moving into the free slot at the end of the chain first, and the
// item leaving the new item's bucket in table 1 last. Every event therefore describes a move into a slot
// that is free at that moment. ItemAdded is raised last.
//   - item is the key/value association to store, its key is referenced and not copied
//
// It returns:
//   - err is nil on success. crt.AlreadyExists if Config.LookupBeforeInsert is set and the key is stored,
//     crt.TableFull if no displacement chain within budget was found, nothing is changed in either case.
func (X *Index[V]) Insert(item Item[V]) (err error) {
	X.lock.Lock()
	defer X.lock.Unlock()

	if err = X.checkState(); err != nil {
		return
	}

	X.hashItem(&item)
	if X.stats != nil {
		X.stats.InsertRequests++
	}

	// Refuse duplicates if asked to
	if X.conf.LookupBeforeInsert {
		if location, _, ok := X.find(&item); ok {
			err = crt.AlreadyExists{Msg: fmt.Sprintf("item already exists in table %d, bucket %d, slot %d", location.Table, location.Bucket, location.Slot)}
			return
		}
	}

	// Direct placement
	if location, ok := X.pair.Place(item, item.H1, item.H2); ok {
		X.added(location, item, 0)
		return
	}

	// Relocation
	if path, ok := X.pair.FindPath(item.H1, X.conf.MaxRelocationDepth); ok {
		moves := len(path)
		location := X.pair.Commit(path, item, X.moved)
		X.added(location, item, moves)
		return
	}

	if X.stats != nil {
		X.stats.TableFull++
	}
	X.logger.LogTableFull(item.H1, item.H2, X.conf.MaxRelocationDepth, X.pair.Count())
	err = crt.TableFull{Msg: fmt.Sprintf("no free slot within %d relocations for h1 %#x, h2 %#x", X.conf.MaxRelocationDepth, item.H1, item.H2)}

	return
}

// Remove - Releases the item with the same key and raises ItemRemoved. Tables are not rebalanced.
//   - item holds the key and, unless the index computes them, the hash values and signature
//
// It returns:
//   - err is nil if removed, item.Value is then set to the removed value. Otherwise an error of type crt.NotFound,
//     or crt.InvalidState if the index has been destroyed.
func (X *Index[V]) Remove(item *Item[V]) (err error) {
	X.lock.Lock()
	defer X.lock.Unlock()

	if err = X.checkState(); err != nil {
		return
	}

	X.hashItem(item)
	if X.stats != nil {
		X.stats.RemoveRequests++
	}

	location, _, ok := X.find(item)
	if !ok {
		err = crt.NotFound{}
		return
	}

	removed := X.pair.Table(location.Table).Clear(location.Bucket, location.Slot)
	item.Value = removed.Value
	if X.stats != nil {
		X.stats.RemoveSuccess++
	}
	syncStats(X.stats, X.pair)

	X.notify(Event[V]{Type: ItemRemoved, From: location, Key: removed.Key, Value: removed.Value})

	return
}

// Flush - Releases every stored item. With crt.FlushPerItem an ItemRemoved event is raised for each occupied
// slot before it is cleared, table 1 first and bucket by bucket, with crt.FlushBulk a single Flushed event
// tells how many items were released. All statistics counters are reset to zero.
func (X *Index[V]) Flush() (err error) {
	X.lock.Lock()
	defer X.lock.Unlock()

	if err = X.checkState(); err != nil {
		return
	}

	removed := X.pair.Count()

	if X.conf.FlushNotification == crt.FlushBulk {
		X.pair.Reset()
		X.notify(Event[V]{Type: Flushed, Count: removed})
	} else {
		for _, table := range []int{Table1, Table2} {
			iter := newOccupiedSlots[V](X.pair.Table(table))
			for iter.hasNext() {
				location, item, _ := iter.next()
				X.notify(Event[V]{Type: ItemRemoved, From: location, Key: item.Key, Value: item.Value})
				X.pair.Table(table).Clear(location.Bucket, location.Slot)
			}
		}
	}

	if X.stats != nil {
		X.stats.reset()
	}

	X.logger.LogFlush(removed, X.conf.FlushNotification)

	return
}

// added - Updates statistics and raises ItemAdded for a successful insert that needed the given number of moves
func (X *Index[V]) added(location Location, item Item[V], moves int) {
	if X.stats != nil {
		X.stats.InsertSuccess++
		X.stats.recordRelocation(moves)
	}
	syncStats(X.stats, X.pair)

	X.notify(Event[V]{Type: ItemAdded, To: location, Key: item.Key, Value: item.Value})
}

// moved - Raises ItemMoved for one displacement, called by the relocation engine while committing a path
func (X *Index[V]) moved(move model.Move, item Item[V]) {
	X.notify(Event[V]{Type: ItemMoved, From: move.From, To: move.To, Key: item.Key, Value: item.Value})
}
