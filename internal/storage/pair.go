package storage

import (
	"github.com/gostonefire/cuckooindex/internal/conf"
	"github.com/gostonefire/cuckooindex/internal/model"
)

// Pair - The two tables of a cuckoo index together with the relocation engine operating on them.
// Every item lives in exactly one of the tables, in table 1 at bucket h1 or in table 2 at bucket h2.
type Pair[I model.Hashed] struct {
	t1     *Table[I]
	t2     *Table[I]
	policy int
	moves  []model.Move
}

// NewPair - Returns a pointer to a new pair of empty tables
//   - hashBits is the hash bit width of both tables
//   - bucketSize is the number of slots per bucket
//   - policy is the victim selection policy, crt.FirstOccupied or crt.LastOccupied
//   - maxBytes is the most memory both tables may take together, split evenly between them
func NewPair[I model.Hashed](hashBits uint8, bucketSize int, policy int, maxBytes uint64) (pair *Pair[I], err error) {
	t1, err := NewTable[I](conf.Table1, hashBits, bucketSize, maxBytes/2)
	if err != nil {
		return
	}
	t2, err := NewTable[I](conf.Table2, hashBits, bucketSize, maxBytes/2)
	if err != nil {
		return
	}

	pair = &Pair[I]{t1: t1, t2: t2, policy: policy}

	return
}

// Table - Returns table 1 or table 2
func (P *Pair[I]) Table(id int) *Table[I] {
	if id == conf.Table2 {
		return P.t2
	}
	return P.t1
}

// Count - Returns the number of items stored in both tables
func (P *Pair[I]) Count() int {
	return P.t1.Count() + P.t2.Count()
}

// Capacity - Returns the number of slots in both tables
func (P *Pair[I]) Capacity() int {
	return P.t1.Capacity() + P.t2.Capacity()
}

// Find - Searches bucket h1 of table 1 and then bucket h2 of table 2 for an item accepted by match
//
// It returns:
//   - location is where the item is stored
//   - item is the stored item
//   - ok is false if no item was accepted
func (P *Pair[I]) Find(h1, h2 uint32, match func(item I) bool) (location model.Location, item I, ok bool) {
	for _, t := range [2]*Table[I]{P.t1, P.t2} {
		h := h1
		if t.id == conf.Table2 {
			h = h2
		}
		bucket := t.BucketIndex(h)
		for slot := 0; slot < t.bucketSize; slot++ {
			if !t.Occupied(bucket, slot) {
				continue
			}
			candidate := t.Item(bucket, slot)
			if match(candidate) {
				location = model.Location{Table: t.id, Bucket: bucket, Slot: slot}
				item = candidate
				ok = true
				return
			}
		}
	}

	return
}

// Place - Stores item directly in the first free slot of bucket h1 in table 1, or if full, bucket h2 in table 2.
// ok is false if both buckets are full, nothing is changed then.
func (P *Pair[I]) Place(item I, h1, h2 uint32) (location model.Location, ok bool) {
	for _, t := range [2]*Table[I]{P.t1, P.t2} {
		h := h1
		if t.id == conf.Table2 {
			h = h2
		}
		bucket := t.BucketIndex(h)
		if slot, free := t.FreeSlot(bucket); free {
			t.Set(bucket, slot, item)
			location = model.Location{Table: t.id, Bucket: bucket, Slot: slot}
			ok = true
			return
		}
	}

	return
}

// FindPath - Searches for a displacement chain that frees a slot in bucket h1 of table 1. It starts by
// picking a victim in that bucket and follows each victim to its bucket in the other table, picking the next
// victim there, until a bucket with a free slot is reached or maxDepth victims have been visited.
// Slots already on the chain are never picked twice. The search doesn't change any table.
//
// It returns:
//   - path is the chain of moves ordered from the bucket at h1 outwards, path[i].To is path[i+1].From and the
//     last move ends in a free slot. The slice is reused by the next call.
//   - ok is false if no chain within maxDepth exists
func (P *Pair[I]) FindPath(h1 uint32, maxDepth int) (path []model.Move, ok bool) {
	P.moves = P.moves[:0]
	cur := P.t1
	bucket := cur.BucketIndex(h1)

	for depth := 0; depth < maxDepth; depth++ {
		slot, found := cur.Victim(bucket, P.policy, func(s int) bool {
			return P.onPath(cur.id, bucket, s)
		})
		if !found {
			return
		}

		alt := P.other(cur)
		altBucket := alt.BucketIndex(cur.Item(bucket, slot).TableHash(alt.id))
		from := model.Location{Table: cur.id, Bucket: bucket, Slot: slot}

		if free, hasFree := alt.FreeSlot(altBucket); hasFree {
			P.moves = append(P.moves, model.Move{From: from, To: model.Location{Table: alt.id, Bucket: altBucket, Slot: free}})
			for i := len(P.moves) - 2; i >= 0; i-- {
				P.moves[i].To = P.moves[i+1].From
			}
			path = P.moves
			ok = true
			return
		}

		P.moves = append(P.moves, model.Move{From: from})
		cur = alt
		bucket = altBucket
	}

	return
}

// Commit - Executes a path returned by FindPath and stores item in the slot freed at its start.
// Moves are carried out from the free end of the path backwards, moved is called once per move in that
// order, before the new item is stored.
func (P *Pair[I]) Commit(path []model.Move, item I, moved func(move model.Move, item I)) (location model.Location) {
	for i := len(path) - 1; i >= 0; i-- {
		m := path[i]
		victim := P.Table(m.From.Table).Clear(m.From.Bucket, m.From.Slot)
		P.Table(m.To.Table).Set(m.To.Bucket, m.To.Slot, victim)
		if moved != nil {
			moved(m, victim)
		}
	}

	location = path[0].From
	P.Table(location.Table).Set(location.Bucket, location.Slot, item)

	return
}

// Reset - Releases every slot in both tables without notification
func (P *Pair[I]) Reset() {
	P.t1.Reset()
	P.t2.Reset()
}

// other - Returns the table that isn't t
func (P *Pair[I]) other(t *Table[I]) *Table[I] {
	if t.id == conf.Table1 {
		return P.t2
	}
	return P.t1
}

// onPath - Returns true if the slot is already the source of a move in the current search
func (P *Pair[I]) onPath(table int, bucket uint32, slot int) bool {
	for _, m := range P.moves {
		if m.From.Table == table && m.From.Bucket == bucket && m.From.Slot == slot {
			return true
		}
	}
	return false
}
