package bloom

import (
	"github.com/bits-and-blooms/bitset"
	"github.com/sirupsen/logrus"

	"github.com/tnxbutno/b-f/internal/probe"
)

// Classical is the textbook filter layout: a single bit array of m bits,
// with every hash function free to probe any bit.
type Classical struct {
	m uint64
	k uint64

	bits *bitset.BitSet
}

// New constructs a classical filter sized for n expected elements at
// target false positive rate f.
func New(n uint64, f float64) (*Classical, error) {
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
	logrus.Debugf("classical filter: n=%d f=%g -> m=%d k=%d", n, f, m, k)

	return &Classical{
		m:    m,
		k:    k,
		bits: bitset.New(uint(m)),
	}, nil
}

// Insert sets the k probe bits for value.
func (c *Classical) Insert(value []byte) {
	h1, h2 := probe.Pair(value, c.m)
	for i := uint64(0); i < c.k; i++ {
		c.bits.Set(uint(probe.Index(h1, h2, i, c.m)))
	}
}

// Lookup checks the k probe bits for value, returning false on the first
// clear bit.
func (c *Classical) Lookup(value []byte) bool {
	h1, h2 := probe.Pair(value, c.m)
	for i := uint64(0); i < c.k; i++ {
		if !c.bits.Test(uint(probe.Index(h1, h2, i, c.m))) {
			return false
		}
	}
	return true
}

// Size returns the bit capacity m, not the inserted element count.
func (c *Classical) Size() uint64 {
	return c.m
}
