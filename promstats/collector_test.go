package promstats

import (
	"errors"
	"strings"
	"testing"

	"github.com/gostonefire/cuckooindex"
	"github.com/gostonefire/cuckooindex/crt"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

type fixedSource struct {
	stats cuckooindex.Stats
	err   error
}

func (F fixedSource) StatsGet() (cuckooindex.Stats, error) {
	return F.stats, F.err
}

func TestCollector_Collect(t *testing.T) {
	t.Run("reports every metric", func(t *testing.T) {
		// Prepare
		c := NewCollector("test", fixedSource{})

		// Execute
		n := testutil.CollectAndCount(c)

		// Check
		assert.Equal(t, 14, n, "metric count")
	})

	t.Run("reports values from the source", func(t *testing.T) {
		// Prepare
		c := NewCollector("fixed", fixedSource{stats: cuckooindex.Stats{
			Occupancy:           [2]int{5, 2},
			HighWater:           [2]int{6, 3},
			Capacity:            32,
			InsertRequests:      9,
			InsertSuccess:       8,
			TableFull:           1,
			Relocations:         4,
			RelocationHighWater: 2,
		}})

		expected := `
# HELP cuckooindex_items Number of items stored per table
# TYPE cuckooindex_items gauge
cuckooindex_items{index="fixed",table="1"} 5
cuckooindex_items{index="fixed",table="2"} 2
# HELP cuckooindex_table_full_total Inserts that failed for lack of a relocation chain
# TYPE cuckooindex_table_full_total counter
cuckooindex_table_full_total{index="fixed"} 1
# HELP cuckooindex_relocations_total Items displaced by inserts
# TYPE cuckooindex_relocations_total counter
cuckooindex_relocations_total{index="fixed"} 4
`

		// Execute
		err := testutil.CollectAndCompare(c, strings.NewReader(expected),
			"cuckooindex_items", "cuckooindex_table_full_total", "cuckooindex_relocations_total")

		// Check
		assert.NoError(t, err, "compare metrics")
	})

	t.Run("reports a live index", func(t *testing.T) {
		// Prepare
		config := cuckooindex.DefaultConfig()
		config.HashBits = 3
		config.LockEnabled = false
		index, err := cuckooindex.New[int](config, nil)
		assert.NoError(t, err, "create index")

		for i, key := range []string{"one", "two", "three"} {
			err = index.Insert(cuckooindex.Item[int]{Key: []byte(key), Value: i})
			assert.NoError(t, err, "insert item")
		}
		_, err = index.Get([]byte("two"))
		assert.NoError(t, err, "get stored item")
		_, err = index.Get([]byte("four"))
		assert.True(t, errors.Is(err, crt.NotFound{}), "get missing item")

		c := NewCollector("live", index)

		expected := `
# HELP cuckooindex_capacity Number of slots in both tables
# TYPE cuckooindex_capacity gauge
cuckooindex_capacity{index="live"} 64
# HELP cuckooindex_requests_total Requests per operation
# TYPE cuckooindex_requests_total counter
cuckooindex_requests_total{index="live",op="insert"} 3
cuckooindex_requests_total{index="live",op="lookup"} 2
cuckooindex_requests_total{index="live",op="remove"} 0
# HELP cuckooindex_success_total Successful requests per operation
# TYPE cuckooindex_success_total counter
cuckooindex_success_total{index="live",op="insert"} 3
cuckooindex_success_total{index="live",op="lookup"} 1
cuckooindex_success_total{index="live",op="remove"} 0
`

		// Execute
		err = testutil.CollectAndCompare(c, strings.NewReader(expected),
			"cuckooindex_capacity", "cuckooindex_requests_total", "cuckooindex_success_total")

		// Check
		assert.NoError(t, err, "compare metrics")
	})

	t.Run("fails the scrape when the source fails", func(t *testing.T) {
		// Prepare
		reg := prometheus.NewPedanticRegistry()
		reg.MustRegister(NewCollector("broken", fixedSource{err: crt.InvalidState{}}))

		// Execute
		_, err := reg.Gather()

		// Check
		assert.Error(t, err, "gather from failing source")
	})
}
