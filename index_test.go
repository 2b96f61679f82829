package cuckooindex

import (
	"bytes"
	"errors"
	"hash/crc32"
	"log/slog"
	"testing"

	"github.com/gostonefire/cuckooindex/crt"
	"github.com/stretchr/testify/assert"
)

// eventRecorder - Collects every event it is notified of
type eventRecorder[V any] struct {
	events []Event[V]
}

func (R *eventRecorder[V]) Notify(event Event[V]) {
	R.events = append(R.events, event)
}

func (R *eventRecorder[V]) count(eventType EventType) (n int) {
	for _, e := range R.events {
		if e.Type == eventType {
			n++
		}
	}
	return
}

func (R *eventRecorder[V]) of(eventType EventType) (events []Event[V]) {
	for _, e := range R.events {
		if e.Type == eventType {
			events = append(events, e)
		}
	}
	return
}

// externalConfig - Returns a configuration where the caller supplies hash values
func externalConfig(hashBits uint8, bucketSize, depth int) Config {
	return Config{
		Name:               "external",
		HashBits:           hashBits,
		BucketSize:         bucketSize,
		MaxRelocationDepth: depth,
		HistogramSize:      8,
		LookupBeforeInsert: true,
		StatsEnabled:       true,
		VictimPolicy:       crt.FirstOccupied,
		FlushNotification:  crt.FlushPerItem,
	}
}

type TestCaseConfig struct {
	name   string
	modify func(c *Config)
}

func TestNew(t *testing.T) {
	t.Run("creates an index with default configuration", func(t *testing.T) {
		// Execute
		index, err := New[string](DefaultConfig(), nil)

		// Check
		assert.NoError(t, err, "create index")
		assert.Equal(t, 0, index.Count(), "empty index")
		assert.Equal(t, 2*1024*4, index.Capacity(), "capacity of both tables")
		assert.Equal(t, DefaultConfig().Name, index.Config().Name, "config is kept")
	})

	t.Run("refuses out of range configuration", func(t *testing.T) {
		// Prepare
		tests := []TestCaseConfig{
			{name: "zero hash bits", modify: func(c *Config) { c.HashBits = 0 }},
			{name: "too many hash bits", modify: func(c *Config) { c.HashBits = 33 }},
			{name: "zero bucket size", modify: func(c *Config) { c.BucketSize = 0 }},
			{name: "too large bucket size", modify: func(c *Config) { c.BucketSize = 255 }},
			{name: "negative relocation depth", modify: func(c *Config) { c.MaxRelocationDepth = -1 }},
			{name: "negative histogram size", modify: func(c *Config) { c.HistogramSize = -1 }},
			{name: "too large histogram size", modify: func(c *Config) { c.HistogramSize = 1025 }},
			{name: "unknown victim policy", modify: func(c *Config) { c.VictimPolicy = 7 }},
			{name: "unknown flush policy", modify: func(c *Config) { c.FlushNotification = 7 }},
		}

		for _, test := range tests {
			t.Run(test.name, func(t *testing.T) {
				config := DefaultConfig()
				test.modify(&config)

				// Execute
				index, err := New[string](config, nil)

				// Check
				assert.Nil(t, index, "no index returned")
				assert.True(t, errors.Is(err, crt.InvalidConfig{}), "invalid config error")
				assert.NotEmpty(t, err.Error(), "error message")
			})
		}
	})

	t.Run("refuses tables that can not be addressed", func(t *testing.T) {
		// Prepare
		config := DefaultConfig()
		config.HashBits = 32
		config.BucketSize = 254

		// Execute
		index, err := New[string](config, nil)

		// Check
		assert.Nil(t, index, "no index returned")
		assert.True(t, errors.Is(err, crt.OutOfMemory{}), "out of memory error")
	})

	t.Run("refuses the widest hash without allocating", func(t *testing.T) {
		// Prepare
		config := DefaultConfig()
		config.HashBits = 32
		config.BucketSize = 1

		// Execute
		index, err := New[int](config, nil)

		// Check
		assert.Nil(t, index, "no index returned")
		assert.True(t, errors.Is(err, crt.OutOfMemory{}), "out of memory error")
	})

	t.Run("honours the memory limit", func(t *testing.T) {
		// Prepare
		config := DefaultConfig()
		config.MaxMemory = 1 << 20

		// Execute
		small, errSmall := New[int](config, nil)
		config.HashBits = 16
		large, errLarge := New[int](config, nil)

		// Check
		assert.NoError(t, errSmall, "1024 buckets of 4 fit in 1 MiB")
		assert.NotNil(t, small, "small index")
		assert.Nil(t, large, "no large index")
		assert.True(t, errors.Is(errLarge, crt.OutOfMemory{}), "65536 buckets of 4 don't fit in 1 MiB")
	})

	t.Run("accepts the smallest configuration", func(t *testing.T) {
		// Execute
		index, err := New[int](externalConfig(1, 1, 0), nil)

		// Check
		assert.NoError(t, err, "create index")
		assert.Equal(t, 4, index.Capacity(), "two tables of two buckets with one slot")
	})

	t.Run("logs creation through the given logger", func(t *testing.T) {
		// Prepare
		buf := &bytes.Buffer{}
		config := DefaultConfig()
		config.Name = "logged"
		config.Logger = NewLogger(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelInfo}))

		// Execute
		_, err := New[int](config, nil)

		// Check
		assert.NoError(t, err, "create index")
		assert.Contains(t, buf.String(), "index created", "creation logged")
		assert.Contains(t, buf.String(), "index=logged", "index name attached")
	})
}

func TestIndex_Destroy(t *testing.T) {
	t.Run("destroys a populated index once", func(t *testing.T) {
		// Prepare
		index, err := New[int](DefaultConfig(), nil)
		assert.NoError(t, err, "create index")
		err = index.Insert(Item[int]{Key: []byte("key"), Value: 1})
		assert.NoError(t, err, "insert item")

		// Execute
		err = index.Destroy()

		// Check
		assert.NoError(t, err, "destroy index")
		assert.Equal(t, 0, index.Count(), "destroyed index has no items")
		assert.Equal(t, 0, index.Capacity(), "destroyed index has no capacity")

		err = index.Destroy()
		assert.True(t, errors.Is(err, crt.InvalidState{}), "second destroy")
	})

	t.Run("refuses every operation after destroy", func(t *testing.T) {
		// Prepare
		index, err := New[int](DefaultConfig(), nil)
		assert.NoError(t, err, "create index")
		err = index.Destroy()
		assert.NoError(t, err, "destroy index")
		item := Item[int]{Key: []byte("key")}
		buf := &bytes.Buffer{}

		// Execute and check
		assert.True(t, errors.Is(index.Insert(item), crt.InvalidState{}), "insert")
		assert.True(t, errors.Is(index.Lookup(&item), crt.InvalidState{}), "lookup")
		assert.True(t, errors.Is(index.Remove(&item), crt.InvalidState{}), "remove")
		assert.True(t, errors.Is(index.Flush(), crt.InvalidState{}), "flush")
		_, err = index.StatsGet()
		assert.True(t, errors.Is(err, crt.InvalidState{}), "stats")
		assert.True(t, errors.Is(index.DumpConfig(buf), crt.InvalidState{}), "dump config")
		assert.True(t, errors.Is(index.DumpTables(buf), crt.InvalidState{}), "dump tables")
		assert.True(t, errors.Is(index.DumpJSON(buf), crt.InvalidState{}), "dump json")
		assert.Empty(t, buf.String(), "nothing dumped")
	})

	t.Run("reports destroyed before unsupported get", func(t *testing.T) {
		// Prepare
		index, err := New[int](externalConfig(4, 1, 0), nil)
		assert.NoError(t, err, "create index")
		_, err = index.Get([]byte("key"))
		assert.True(t, errors.Is(err, crt.Unsupported{}), "get without internal hash")
		err = index.Destroy()
		assert.NoError(t, err, "destroy index")

		// Execute
		_, err = index.Get([]byte("key"))

		// Check
		assert.True(t, errors.Is(err, crt.InvalidState{}), "destroyed state wins")
		assert.False(t, errors.Is(err, crt.Unsupported{}), "not reported as unsupported")
	})
}

// caselessHashAlgorithm - Hashes keys ignoring ASCII case, to go with caselessCompare
type caselessHashAlgorithm struct{}

func (caselessHashAlgorithm) HashFunc1(key []byte) uint32 {
	return crc32.ChecksumIEEE(bytes.ToLower(key))
}

func (caselessHashAlgorithm) HashFunc2(key []byte) uint32 {
	return crc32.Checksum(bytes.ToLower(key), crc32.MakeTable(crc32.Koopman))
}

func (caselessHashAlgorithm) Signature(key []byte) uint32 {
	return crc32.Checksum(bytes.ToLower(key), crc32.MakeTable(crc32.Castagnoli))
}

func caselessCompare(a, b []byte) bool {
	return bytes.EqualFold(a, b)
}

func TestIndex_Collaborators(t *testing.T) {
	t.Run("uses custom hash algorithm and key comparison", func(t *testing.T) {
		// Prepare
		config := DefaultConfig()
		config.HashAlgorithm = caselessHashAlgorithm{}
		config.KeyCompare = caselessCompare
		index, err := New[int](config, nil)
		assert.NoError(t, err, "create index")

		err = index.Insert(Item[int]{Key: []byte("Hello"), Value: 42})
		assert.NoError(t, err, "insert item")

		// Execute
		value, err := index.Get([]byte("HELLO"))

		// Check
		assert.NoError(t, err, "get with other case")
		assert.Equal(t, 42, value, "stored value")

		err = index.Insert(Item[int]{Key: []byte("hello"), Value: 43})
		assert.True(t, errors.Is(err, crt.AlreadyExists{}), "same key in other case")
		assert.Equal(t, 1, index.Count(), "one item stored")
	})

	t.Run("uses the built-in crc32 algorithm", func(t *testing.T) {
		// Prepare
		config := DefaultConfig()
		config.HashAlgorithm = NewCRC32HashAlgorithm()
		index, err := New[int](config, nil)
		assert.NoError(t, err, "create index")

		// Execute
		for i := 0; i < 500; i++ {
			err = index.Insert(Item[int]{Key: []byte{byte(i), byte(i >> 8)}, Value: i})
			assert.NoError(t, err, "insert item")
		}

		// Check
		item := Item[int]{Key: []byte{0x2a, 0x01}}
		err = index.Lookup(&item)
		assert.NoError(t, err, "lookup item")
		assert.Equal(t, 0x12a, item.Value, "stored value")
		assert.Equal(t, crc32.ChecksumIEEE(item.Key), item.H1, "h1 is the IEEE checksum")
	})

	t.Run("computes hashes into the item", func(t *testing.T) {
		// Prepare
		config := DefaultConfig()
		config.HashAlgorithm = caselessHashAlgorithm{}
		index, err := New[int](config, nil)
		assert.NoError(t, err, "create index")
		item := Item[int]{Key: []byte("abc"), H1: 1, H2: 2, Signature: 3}

		// Execute
		err = index.Insert(item)
		assert.NoError(t, err, "insert item")
		lookup := Item[int]{Key: []byte("abc")}
		err = index.Lookup(&lookup)

		// Check
		assert.NoError(t, err, "lookup item")
		assert.Equal(t, caselessHashAlgorithm{}.HashFunc1([]byte("abc")), lookup.H1, "h1 computed")
		assert.Equal(t, caselessHashAlgorithm{}.HashFunc2([]byte("abc")), lookup.H2, "h2 computed")
		assert.Equal(t, caselessHashAlgorithm{}.Signature([]byte("abc")), lookup.Signature, "signature computed")
	})

	t.Run("compares signatures before keys", func(t *testing.T) {
		// Prepare
		index, err := New[int](externalConfig(4, 2, 2), nil)
		assert.NoError(t, err, "create index")
		err = index.Insert(Item[int]{Key: []byte("k"), Value: 1, H1: 3, H2: 3, Signature: 10})
		assert.NoError(t, err, "insert item")

		// Execute
		item := Item[int]{Key: []byte("k"), H1: 3, H2: 3, Signature: 11}
		err = index.Lookup(&item)

		// Check
		assert.True(t, errors.Is(err, crt.NotFound{}), "signature mismatch hides the key")
	})
}
