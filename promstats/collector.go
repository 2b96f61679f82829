// Package promstats exposes index statistics as Prometheus metrics.
package promstats

import (
	"strconv"

	"github.com/gostonefire/cuckooindex"
	"github.com/prometheus/client_golang/prometheus"
)

// StatsSource - Anything that can report index statistics, *cuckooindex.Index satisfies it for any value type
type StatsSource interface {
	StatsGet() (cuckooindex.Stats, error)
}

// Collector - A prometheus.Collector reading a fresh statistics copy from its source on every scrape
type Collector struct {
	source StatsSource

	items               *prometheus.Desc
	highWater           *prometheus.Desc
	capacity            *prometheus.Desc
	requests            *prometheus.Desc
	success             *prometheus.Desc
	tableFull           *prometheus.Desc
	relocations         *prometheus.Desc
	relocationHighWater *prometheus.Desc
}

// NewCollector - Returns a collector for one index
//   - name is set as the constant "index" label on every metric
//   - source is usually the index itself
func NewCollector(name string, source StatsSource) *Collector {
	labels := prometheus.Labels{"index": name}
	desc := func(metric, help string, variable ...string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName("cuckooindex", "", metric), help, variable, labels)
	}

	return &Collector{
		source:              source,
		items:               desc("items", "Number of items stored per table", "table"),
		highWater:           desc("high_water", "Highest number of items stored per table since the last flush", "table"),
		capacity:            desc("capacity", "Number of slots in both tables"),
		requests:            desc("requests_total", "Requests per operation", "op"),
		success:             desc("success_total", "Successful requests per operation", "op"),
		tableFull:           desc("table_full_total", "Inserts that failed for lack of a relocation chain"),
		relocations:         desc("relocations_total", "Items displaced by inserts"),
		relocationHighWater: desc("relocation_high_water", "Most items displaced by a single insert"),
	}
}

// Describe - Implements prometheus.Collector
func (C *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- C.items
	ch <- C.highWater
	ch <- C.capacity
	ch <- C.requests
	ch <- C.success
	ch <- C.tableFull
	ch <- C.relocations
	ch <- C.relocationHighWater
}

// Collect - Implements prometheus.Collector. A failing source, e.g. a destroyed index or one without
// statistics, is reported as an invalid metric.
func (C *Collector) Collect(ch chan<- prometheus.Metric) {
	s, err := C.source.StatsGet()
	if err != nil {
		ch <- prometheus.NewInvalidMetric(C.items, err)
		return
	}

	for i := range s.Occupancy {
		table := strconv.Itoa(i + 1)
		ch <- prometheus.MustNewConstMetric(C.items, prometheus.GaugeValue, float64(s.Occupancy[i]), table)
		ch <- prometheus.MustNewConstMetric(C.highWater, prometheus.GaugeValue, float64(s.HighWater[i]), table)
	}
	ch <- prometheus.MustNewConstMetric(C.capacity, prometheus.GaugeValue, float64(s.Capacity))

	ops := []struct {
		name              string
		requests, success uint64
	}{
		{"insert", s.InsertRequests, s.InsertSuccess},
		{"remove", s.RemoveRequests, s.RemoveSuccess},
		{"lookup", s.LookupRequests, s.LookupSuccess},
	}
	for _, op := range ops {
		ch <- prometheus.MustNewConstMetric(C.requests, prometheus.CounterValue, float64(op.requests), op.name)
		ch <- prometheus.MustNewConstMetric(C.success, prometheus.CounterValue, float64(op.success), op.name)
	}

	ch <- prometheus.MustNewConstMetric(C.tableFull, prometheus.CounterValue, float64(s.TableFull))
	ch <- prometheus.MustNewConstMetric(C.relocations, prometheus.CounterValue, float64(s.Relocations))
	ch <- prometheus.MustNewConstMetric(C.relocationHighWater, prometheus.GaugeValue, float64(s.RelocationHighWater))
}
