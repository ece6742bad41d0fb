// Package bloom implements probabilistic set-membership filters.
//
// A filter answers "possibly present" or "definitely absent" for a query
// value using sub-linear memory, at the cost of a tunable false positive
// rate. False negatives are impossible: once a value is inserted, Lookup
// reports it present forever.
//
// Two variants are provided. Classical keeps one shared bit array probed
// at k derived indices per element. Partitioned splits the bit array into
// k disjoint equal-size partitions, one per hash function, so different
// hash functions can never collide on the same physical bit.
package bloom

import "errors"

var (
	// ErrZeroExpectedElements is returned when a filter is constructed with
	// an expected element count of zero.
	ErrZeroExpectedElements = errors.New("bloom: expected element count must be at least 1")

	// ErrInvalidFalsePositiveRate is returned when the target false positive
	// rate lies outside the open interval (0, 1). The rate is never clamped:
	// a clamped filter would silently diverge from the requested guarantee.
	ErrInvalidFalsePositiveRate = errors.New("bloom: false positive rate must be in (0, 1)")

	// ErrDegenerateParameters is returned when the derived hash count
	// collapses to zero, which happens when f is so lax that fewer bits
	// than elements are provisioned. A zero-hash filter would answer true
	// for every value, so construction is rejected instead.
	ErrDegenerateParameters = errors.New("bloom: derived hash count is zero, false positive rate too high for expected element count")
)

// Filter is the capability set shared by both variants.
//
// Insert and Lookup are total over arbitrary byte content, including the
// empty slice; neither can fail. A filter instance is not safe for
// concurrent use while an Insert is in flight: concurrent Lookups are
// fine on their own, but Insert mutates the bit storage across k separate
// probe writes and must exclude all other calls.
type Filter interface {
	// Insert adds the value to the set. Idempotent.
	Insert(value []byte)

	// Lookup reports whether the value is possibly in the set. A false
	// result is authoritative; a true result may be a false positive.
	Lookup(value []byte) bool

	// Size reports storage capacity. The unit differs by variant, see the
	// concrete types.
	Size() uint64
}

var (
	_ Filter = (*Classical)(nil)
	_ Filter = (*Partitioned)(nil)
)
