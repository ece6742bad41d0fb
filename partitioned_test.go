package bloom

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPartitionedBasic(t *testing.T) {
	bf, err := NewPartitioned(10, 0.01)
	assert.Nil(t, err)

	bf.Insert(be32(1))
	bf.Insert(be32(10))
	bf.Insert(be32(30))

	assert.True(t, bf.Lookup(be32(1)), "stored value is not found")
	assert.True(t, bf.Lookup(be32(10)), "stored value is not found")
	assert.True(t, bf.Lookup(be32(30)), "stored value is not found")
	assert.False(t, bf.Lookup(be32(45)), "not stored value is found")
}

func TestPartitionedDerivedParams(t *testing.T) {
	bf, err := NewPartitioned(10, 0.01)
	assert.Nil(t, err)

	// Size reports the partition count, not the bit capacity.
	assert.Equal(t, uint64(7), bf.Size())
	assert.Equal(t, uint64(96/7), bf.PartitionSize())
	assert.Equal(t, uint64(96), bf.m)
}

func TestPartitionedConstructionErrors(t *testing.T) {
	_, err := NewPartitioned(0, 0.01)
	assert.ErrorIs(t, err, ErrZeroExpectedElements)

	for _, f := range []float64{0, 1, -0.5, 1.5} {
		_, err := NewPartitioned(10, f)
		assert.ErrorIs(t, err, ErrInvalidFalsePositiveRate, "f=%v", f)
	}
}

func TestPartitionedRejectsDegenerateRate(t *testing.T) {
	// n=10, f=0.9 derives k=0, which would divide by zero when sizing the
	// partitions. Construction must fail, not panic.
	bf, err := NewPartitioned(10, 0.9)
	assert.ErrorIs(t, err, ErrDegenerateParameters)
	assert.Nil(t, bf)
}

func TestPartitionedProbeIndependence(t *testing.T) {
	bf, err := NewPartitioned(10, 0.01)
	assert.Nil(t, err)

	// One insert sets exactly one bit in every partition: hash function i
	// only ever touches partition i.
	bf.Insert([]byte("value"))
	for i, part := range bf.partitions {
		assert.Equal(t, uint(1), part.Count(), "partition %d", i)
	}
}

func TestPartitionedSinglePartition(t *testing.T) {
	// n=10, f=0.5 derives m=15, k=1: the structure degenerates to one
	// partition spanning the whole capacity.
	bf, err := NewPartitioned(10, 0.5)
	assert.Nil(t, err)
	assert.Equal(t, uint64(1), bf.Size())
	assert.Equal(t, uint64(15), bf.PartitionSize())

	bf.Insert([]byte("a"))
	assert.True(t, bf.Lookup([]byte("a")))
}

func TestPartitionedNoFalseNegatives(t *testing.T) {
	const (
		N    = 10_000
		seed = 0x2c0ffee
	)

	bf, err := NewPartitioned(N, 0.01)
	assert.Nil(t, err)

	rnd := rand.New(rand.NewSource(seed))
	values := make([][]byte, N)
	for i := range values {
		values[i] = be64(rnd.Uint64())
		bf.Insert(values[i])
	}

	for _, v := range values {
		assert.True(t, bf.Lookup(v))
	}
}

func TestPartitionedInsertIdempotent(t *testing.T) {
	bf, err := NewPartitioned(100, 0.01)
	assert.Nil(t, err)

	bf.Insert([]byte("hello"))
	set := make([]uint, len(bf.partitions))
	for i, part := range bf.partitions {
		set[i] = part.Count()
	}

	bf.Insert([]byte("hello"))
	for i, part := range bf.partitions {
		assert.Equal(t, set[i], part.Count(), "partition %d", i)
	}
}

func TestPartitionedDeterministicConstruction(t *testing.T) {
	// Same insert sequence must yield byte-identical storage; the hash
	// seeds are protocol constants, never per-instance.
	build := func() *Partitioned {
		bf, err := NewPartitioned(1000, 0.01)
		assert.Nil(t, err)
		for i := uint32(0); i < 500; i++ {
			bf.Insert(be32(i))
		}
		return bf
	}

	a, err := build().MarshalBinary()
	assert.Nil(t, err)
	b, err := build().MarshalBinary()
	assert.Nil(t, err)
	assert.Equal(t, a, b)
}

func TestPartitionedFalsePositiveRate(t *testing.T) {
	if testing.Short() {
		t.Skip("statistical fixture, skipped in short mode")
	}

	const (
		N       = 10_000_000
		queries = 1_000_000
		seed    = 0xa30378d2
	)

	bf, err := NewPartitioned(N, 0.02)
	assert.Nil(t, err)

	rnd := rand.New(rand.NewSource(seed))
	inserted := make(map[uint64]struct{}, N)
	for i := 0; i < N; i++ {
		v := uint64(rnd.Int63n(1_000_000_000_001))
		bf.Insert(be64(v))
		inserted[v] = struct{}{}
	}

	falsePositive := 0
	for i := 0; i < queries; i++ {
		v := uint64(rnd.Int63n(1_000_000_000_001))
		if _, ok := inserted[v]; !ok && bf.Lookup(be64(v)) {
			falsePositive++
		}
	}

	// ~2% of the disjoint probes.
	assert.Greater(t, falsePositive, 19900)
	assert.Less(t, falsePositive, 21000)
}

func BenchmarkPartitionedInsert(b *testing.B) {
	const N = 1_000_000
	bf, err := NewPartitioned(N, 0.001)
	if err != nil {
		b.Fatal(err)
	}
	data := make([][]byte, N)
	for i := range data {
		data[i] = be64(rand.Uint64())
	}

	idx := 0
	for i := 0; i < b.N; i++ {
		bf.Insert(data[idx])
		idx++
		if idx == N {
			idx = 0
		}
	}
}

func BenchmarkPartitionedLookup(b *testing.B) {
	const N = 1_000_000
	bf, err := NewPartitioned(N, 0.001)
	if err != nil {
		b.Fatal(err)
	}
	data := make([][]byte, N)
	for i := range data {
		data[i] = be64(rand.Uint64())
		bf.Insert(data[i])
	}

	idx := 0
	for i := 0; i < b.N; i++ {
		if !bf.Lookup(data[idx]) {
			b.Fail()
		}
		idx++
		if idx == N {
			idx = 0
		}
	}
}
