package bloom

import "math"

// CalculateM returns the bit capacity for n expected elements at target
// false positive rate f:
//
//	m = ceil(-(n * ln f) / (ln 2)^2)
//
// The ceiling guarantees m is never under-provisioned relative to f.
// Results are undefined for f outside (0, 1); constructors validate
// before calling.
func CalculateM(f float64, n uint64) uint64 {
	return uint64(math.Ceil(-(float64(n) * math.Log(f)) / (math.Ln2 * math.Ln2)))
}

// CalculateK returns the hash function count for m bits and n expected
// elements:
//
//	k = ceil((m / n) * ln 2)
//
// m / n truncates as unsigned integer division before the product is
// taken. The truncation is part of the derivation contract, not a
// rounding accident; switching to floating point division changes k for
// some inputs and breaks compatibility with existing filter state.
func CalculateK(m, n uint64) uint64 {
	return uint64(math.Ceil(float64(m/n) * math.Ln2))
}
