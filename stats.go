package cuckooindex

import (
	"github.com/gostonefire/cuckooindex/crt"
	"github.com/gostonefire/cuckooindex/internal/storage"
)

// Stats - Statistics on usage of an index, all counters start at zero and are reset by Flush
//   - Occupancy is the number of items currently in table 1 and table 2
//   - HighWater is the highest occupancy each table has had
//   - Capacity is the number of slots in both tables together
//   - InsertRequests, RemoveRequests and LookupRequests count calls, the Success counters those that succeeded
//   - TableFull counts inserts that failed for lack of a displacement chain
//   - Relocations is the total number of items displaced by inserts
//   - RelocationHighWater is the largest number of items displaced by a single insert
//   - RelocationHistogram counts successful inserts by number of displacements, bin i holds inserts that
//     displaced i items and the last bin also holds anything deeper. It is nil when Config.HistogramSize is 0.
type Stats struct {
	Occupancy           [2]int   `json:"occupancy"`
	HighWater           [2]int   `json:"high_water"`
	Capacity            int      `json:"capacity"`
	InsertRequests      uint64   `json:"insert_requests"`
	InsertSuccess       uint64   `json:"insert_success"`
	RemoveRequests      uint64   `json:"remove_requests"`
	RemoveSuccess       uint64   `json:"remove_success"`
	LookupRequests      uint64   `json:"lookup_requests"`
	LookupSuccess       uint64   `json:"lookup_success"`
	TableFull           uint64   `json:"table_full"`
	Relocations         uint64   `json:"relocations"`
	RelocationHighWater int      `json:"relocation_high_water"`
	RelocationHistogram []uint64 `json:"relocation_histogram,omitempty"`
}

// Items - Returns the number of items in both tables
func (S Stats) Items() int {
	return S.Occupancy[0] + S.Occupancy[1]
}

// Utilization - Returns the share of slots in use, between 0 and 1
func (S Stats) Utilization() float64 {
	if S.Capacity == 0 {
		return 0
	}
	return float64(S.Items()) / float64(S.Capacity)
}

// StatsGet - Returns a copy of the current statistics.
//
// It returns:
//   - stats is the copy
//   - err is of type crt.Unsupported if the index was created without Config.StatsEnabled, or crt.InvalidState
//     if it has been destroyed
func (X *Index[V]) StatsGet() (stats Stats, err error) {
	X.lock.Lock()
	defer X.lock.Unlock()

	if err = X.checkState(); err != nil {
		return
	}
	if X.stats == nil {
		err = crt.Unsupported{Msg: "statistics are not enabled for this index"}
		return
	}

	stats = X.stats.clone()

	return
}

// newStats - Returns zeroed statistics for tables with the given total capacity
func newStats(capacity int, histogramSize int) *Stats {
	s := &Stats{Capacity: capacity}
	if histogramSize > 0 {
		s.RelocationHistogram = make([]uint64, histogramSize)
	}
	return s
}

// clone - Returns a deep copy
func (S *Stats) clone() (c Stats) {
	c = *S
	if S.RelocationHistogram != nil {
		c.RelocationHistogram = make([]uint64, len(S.RelocationHistogram))
		copy(c.RelocationHistogram, S.RelocationHistogram)
	}
	return
}

// reset - Sets every counter back to zero, keeping capacity and histogram size
func (S *Stats) reset() {
	histogram := S.RelocationHistogram
	*S = Stats{Capacity: S.Capacity, RelocationHistogram: histogram}
	for i := range histogram {
		histogram[i] = 0
	}
}

// recordRelocation - Accounts for a successful insert that displaced the given number of items
func (S *Stats) recordRelocation(moves int) {
	S.Relocations += uint64(moves)
	if moves > S.RelocationHighWater {
		S.RelocationHighWater = moves
	}
	if n := len(S.RelocationHistogram); n > 0 {
		S.RelocationHistogram[min(moves, n-1)]++
	}
}

// syncOccupancy - Sets the current per table occupancy and raises high water marks where exceeded
func (S *Stats) syncOccupancy(table1, table2 int) {
	S.Occupancy = [2]int{table1, table2}
	for i, n := range S.Occupancy {
		if n > S.HighWater[i] {
			S.HighWater[i] = n
		}
	}
}

// syncStats - Copies table occupancy into the statistics, if enabled
func syncStats[V any](stats *Stats, pair *storage.Pair[Item[V]]) {
	if stats == nil {
		return
	}
	stats.syncOccupancy(pair.Table(Table1).Count(), pair.Table(Table2).Count())
}
