package conf

// MinHashBits - Smallest permitted hash bit width, giving two buckets per table
const MinHashBits uint8 = 1

// MaxHashBits - Largest permitted hash bit width
const MaxHashBits uint8 = 32

// MinBucketSize - Smallest permitted number of slots per bucket
const MinBucketSize int = 1

// MaxBucketSize - Largest permitted number of slots per bucket
const MaxBucketSize int = 254

// MaxTableSlots - Upper limit on slots allocated for one table, anything above is reported as out of memory
const MaxTableSlots uint64 = 1 << 32

// DefaultMaxMemory - Memory limit in bytes for both tables together, used when Config.MaxMemory is 0
const DefaultMaxMemory uint64 = 4 << 30

// DefaultHashBits - Hash bit width used by DefaultConfig
const DefaultHashBits uint8 = 10

// DefaultBucketSize - Bucket size used by DefaultConfig
const DefaultBucketSize int = 4

// DefaultMaxRelocationDepth - Relocation depth used by DefaultConfig
const DefaultMaxRelocationDepth int = 8

// DefaultHistogramSize - Relocation histogram bins used by DefaultConfig
const DefaultHistogramSize int = 16

// Table1 - Identifies the first table, addressed by h1
const Table1 int = 1

// Table2 - Identifies the second table, addressed by h2
const Table2 int = 2

// MaxHistogramSize - Largest permitted number of relocation histogram bins
const MaxHistogramSize int = 1024

// DumpKeyBytes - Number of key bytes shown per item in table dumps
const DumpKeyBytes int = 16
