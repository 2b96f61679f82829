package crt

// Victim selection policies used by the relocation engine when both candidate buckets are full.

// FirstOccupied - Displace the lowest numbered occupied slot of a full bucket (default)
const FirstOccupied int = 0

// LastOccupied - Displace the highest numbered occupied slot of a full bucket
const LastOccupied int = 1

// Flush notification policies.

// FlushPerItem - Flush raises one ItemRemoved event per occupied slot (default)
const FlushPerItem int = 0

// FlushBulk - Flush raises a single Flushed event carrying the number of removed items
const FlushBulk int = 1

// PolicyName - Returns a printable name for a victim selection policy
func PolicyName(policy int) string {
	switch policy {
	case FirstOccupied:
		return "FirstOccupied"
	case LastOccupied:
		return "LastOccupied"
	default:
		return "Unknown"
	}
}

// FlushName - Returns a printable name for a flush notification policy
func FlushName(policy int) string {
	switch policy {
	case FlushPerItem:
		return "FlushPerItem"
	case FlushBulk:
		return "FlushBulk"
	default:
		return "Unknown"
	}
}
