package bloom

import (
	"github.com/bits-and-blooms/bitset"
	"github.com/sirupsen/logrus"

	"github.com/tnxbutno/b-f/internal/probe"
)

// Partitioned splits the bit capacity into k disjoint partitions of
// floor(m/k) bits. Hash function i is permanently bound to partition i,
// so probes from different hash functions can never land on the same
// physical bit, which the classical layout does not guarantee.
type Partitioned struct {
	m uint64
	k uint64

	partitionSize uint64
	partitions    []*bitset.BitSet
}

// NewPartitioned constructs a partitioned filter sized for n expected
// elements at target false positive rate f.
func NewPartitioned(n uint64, f float64) (*Partitioned, error) {
	if n == 0 {
		return nil, ErrZeroExpectedElements
	}
	if f <= 0 || f >= 1 {
		return nil, ErrInvalidFalsePositiveRate
	}

	m := CalculateM(f, n)
	k := CalculateK(m, n)
	if k == 0 {
		return nil, ErrDegenerateParameters
	}
	partitionSize := m / k
	logrus.Debugf("partitioned filter: n=%d f=%g -> m=%d k=%d partitionSize=%d", n, f, m, k, partitionSize)

	partitions := make([]*bitset.BitSet, k)
	for i := range partitions {
		partitions[i] = bitset.New(uint(partitionSize))
	}

	return &Partitioned{
		m:             m,
		k:             k,
		partitionSize: partitionSize,
		partitions:    partitions,
	}, nil
}

// Insert sets one bit in each partition for value. The base hashes are
// reduced modulo the partition size, not m.
func (p *Partitioned) Insert(value []byte) {
	h1, h2 := probe.Pair(value, p.partitionSize)
	for i := uint64(0); i < p.k; i++ {
		p.partitions[i].Set(uint(probe.Index(h1, h2, i, p.partitionSize)))
	}
}

// Lookup checks one bit per partition for value, returning false on the
// first clear bit.
func (p *Partitioned) Lookup(value []byte) bool {
	h1, h2 := probe.Pair(value, p.partitionSize)
	for i := uint64(0); i < p.k; i++ {
		if !p.partitions[i].Test(uint(probe.Index(h1, h2, i, p.partitionSize))) {
			return false
		}
	}
	return true
}

// Size returns the partition count k. This deliberately differs from
// Classical.Size, which returns the bit capacity; downstream callers may
// depend on either behavior. Use Size() * PartitionSize() for the total
// bit capacity.
func (p *Partitioned) Size() uint64 {
	return uint64(len(p.partitions))
}

// PartitionSize returns the bit capacity of a single partition,
// floor(m/k).
func (p *Partitioned) PartitionSize() uint64 {
	return p.partitionSize
}
