package model

// Location - Identifies one slot in the index
//   - Table is either 1 or 2
//   - Bucket is the bucket index within the table, i.e. the masked table hash
//   - Slot is the position within the bucket
type Location struct {
	Table  int
	Bucket uint32
	Slot   int
}

// Move - One displacement of a relocation path, the item at From is moved to To
type Move struct {
	From Location
	To   Location
}

// Hashed - Constraint on items stored in the tables. An item carries one hash value per table and must
// return the one belonging to the given table so the relocation engine can find its alternate bucket.
type Hashed interface {
	TableHash(table int) uint32
}
