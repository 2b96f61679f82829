package cuckooindex

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/gostonefire/cuckooindex/crt"
	"github.com/gostonefire/cuckooindex/internal/conf"
	"github.com/gostonefire/cuckooindex/internal/utils"
	"github.com/sugawarayuuta/sonnet"
)

// configDump - The JSON shape of a configuration, collaborators are reduced to whether they are set
type configDump struct {
	Name               string `json:"name"`
	HashBits           uint8  `json:"hash_bits"`
	BucketSize         int    `json:"bucket_size"`
	MaxRelocationDepth int    `json:"max_relocation_depth"`
	HistogramSize      int    `json:"histogram_size"`
	LockEnabled        bool   `json:"lock_enabled"`
	InternalHash       bool   `json:"internal_hash"`
	LookupBeforeInsert bool   `json:"lookup_before_insert"`
	StatsEnabled       bool   `json:"stats_enabled"`
	VictimPolicy       string `json:"victim_policy"`
	FlushNotification  string `json:"flush_notification"`
	CustomKeyCompare   bool   `json:"custom_key_compare"`
	CustomHash         bool   `json:"custom_hash"`
	MaxMemory          uint64 `json:"max_memory"`
}

// indexDump - The JSON document written by DumpJSON
type indexDump struct {
	Config   configDump `json:"config"`
	Items    int        `json:"items"`
	Capacity int        `json:"capacity"`
	Stats    *Stats     `json:"stats,omitempty"`
}

// DumpConfig - Writes the configuration as aligned text
func (X *Index[V]) DumpConfig(w io.Writer) (err error) {
	X.lock.Lock()
	defer X.lock.Unlock()

	if err = X.checkState(); err != nil {
		return
	}

	c := X.configDump()
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	rows := [][2]any{
		{"name", c.Name},
		{"hash bits", c.HashBits},
		{"buckets per table", X.pair.Table(Table1).Buckets()},
		{"bucket size", c.BucketSize},
		{"max relocation depth", c.MaxRelocationDepth},
		{"histogram size", c.HistogramSize},
		{"lock enabled", c.LockEnabled},
		{"internal hash", c.InternalHash},
		{"lookup before insert", c.LookupBeforeInsert},
		{"stats enabled", c.StatsEnabled},
		{"victim policy", c.VictimPolicy},
		{"flush notification", c.FlushNotification},
		{"custom key compare", c.CustomKeyCompare},
		{"custom hash", c.CustomHash},
		{"max memory", c.MaxMemory},
	}
	for _, row := range rows {
		if _, err = fmt.Fprintf(tw, "%s:\t%v\n", row[0], row[1]); err != nil {
			return
		}
	}

	err = tw.Flush()

	return
}

// DumpTables - Writes every occupied slot of both tables, one line each with location, key, hash values and
// signature. Keys longer than 16 bytes are truncated.
func (X *Index[V]) DumpTables(w io.Writer) (err error) {
	X.lock.Lock()
	defer X.lock.Unlock()

	if err = X.checkState(); err != nil {
		return
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, id := range []int{Table1, Table2} {
		table := X.pair.Table(id)
		if _, err = fmt.Fprintf(tw, "table %d: %d/%d slots in use\n", id, table.Count(), table.Capacity()); err != nil {
			return
		}
		if table.Count() == 0 {
			continue
		}
		if _, err = fmt.Fprintln(tw, "  bucket\tslot\tkey\th1\th2\tsignature"); err != nil {
			return
		}

		iter := newOccupiedSlots[V](table)
		for iter.hasNext() {
			location, item, _ := iter.next()
			_, err = fmt.Fprintf(tw, "  %d\t%d\t%s\t%08x\t%08x\t%08x\n",
				location.Bucket, location.Slot, utils.HexKey(item.Key, conf.DumpKeyBytes), item.H1, item.H2, item.Signature)
			if err != nil {
				return
			}
		}
	}

	err = tw.Flush()

	return
}

// DumpStats - Writes the statistics as aligned text, fails with crt.Unsupported if statistics are disabled
func (X *Index[V]) DumpStats(w io.Writer) (err error) {
	X.lock.Lock()
	defer X.lock.Unlock()

	if err = X.checkState(); err != nil {
		return
	}
	if X.stats == nil {
		err = crt.Unsupported{Msg: "statistics are not enabled for this index"}
		return
	}

	s := X.stats
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	rows := [][2]any{
		{"items", fmt.Sprintf("%d/%d (%.2f%%)", s.Items(), s.Capacity, 100*s.Utilization())},
		{"table 1 occupancy", fmt.Sprintf("%d (high water %d)", s.Occupancy[0], s.HighWater[0])},
		{"table 2 occupancy", fmt.Sprintf("%d (high water %d)", s.Occupancy[1], s.HighWater[1])},
		{"inserts", fmt.Sprintf("%d/%d", s.InsertSuccess, s.InsertRequests)},
		{"removes", fmt.Sprintf("%d/%d", s.RemoveSuccess, s.RemoveRequests)},
		{"lookups", fmt.Sprintf("%d/%d", s.LookupSuccess, s.LookupRequests)},
		{"table full", s.TableFull},
		{"relocations", fmt.Sprintf("%d (high water %d)", s.Relocations, s.RelocationHighWater)},
	}
	for _, row := range rows {
		if _, err = fmt.Fprintf(tw, "%s:\t%v\n", row[0], row[1]); err != nil {
			return
		}
	}
	for i, n := range s.RelocationHistogram {
		label := fmt.Sprintf("%d", i)
		if i == len(s.RelocationHistogram)-1 {
			label += "+"
		}
		if _, err = fmt.Fprintf(tw, "relocations %s:\t%d\n", label, n); err != nil {
			return
		}
	}

	err = tw.Flush()

	return
}

// DumpJSON - Writes configuration, item count and, if enabled, statistics as one JSON document
func (X *Index[V]) DumpJSON(w io.Writer) (err error) {
	X.lock.Lock()
	defer X.lock.Unlock()

	if err = X.checkState(); err != nil {
		return
	}

	doc := indexDump{
		Config:   X.configDump(),
		Items:    X.pair.Count(),
		Capacity: X.pair.Capacity(),
	}
	if X.stats != nil {
		s := X.stats.clone()
		doc.Stats = &s
	}

	buf, err := sonnet.Marshal(doc)
	if err != nil {
		err = fmt.Errorf("error while encoding index dump: %w", err)
		return
	}
	_, err = w.Write(append(buf, '\n'))

	return
}

// configDump - Returns the printable form of the configuration
func (X *Index[V]) configDump() configDump {
	return configDump{
		Name:               X.conf.Name,
		HashBits:           X.conf.HashBits,
		BucketSize:         X.conf.BucketSize,
		MaxRelocationDepth: X.conf.MaxRelocationDepth,
		HistogramSize:      X.conf.HistogramSize,
		LockEnabled:        X.conf.LockEnabled,
		InternalHash:       X.conf.InternalHash,
		LookupBeforeInsert: X.conf.LookupBeforeInsert,
		StatsEnabled:       X.conf.StatsEnabled,
		VictimPolicy:       crt.PolicyName(X.conf.VictimPolicy),
		FlushNotification:  crt.FlushName(X.conf.FlushNotification),
		CustomKeyCompare:   X.conf.KeyCompare != nil,
		CustomHash:         X.conf.HashAlgorithm != nil,
		MaxMemory:          X.maxMemory(),
	}
}

// maxMemory - Returns the effective memory limit
func (X *Index[V]) maxMemory() uint64 {
	if X.conf.MaxMemory == 0 {
		return conf.DefaultMaxMemory
	}
	return X.conf.MaxMemory
}
