// Package probe derives the per-element probe index sequence shared by
// both filter variants (Kirsch-Mitzenmacher double hashing).
package probe

import "github.com/spaolacci/murmur3"

// The two seeds are protocol constants shared by every filter instance.
// Repeated construction with the same insert sequence must yield
// byte-identical storage, so they are never randomized per instance.
const (
	seed1 uint32 = 0
	seed2 uint32 = 64
)

// Pair returns the two base hashes of value, each reduced modulo mod.
// Pure: same bytes and modulus always give the same pair. Never allocates.
func Pair(value []byte, mod uint64) (h1, h2 uint64) {
	h1 = murmur3.Sum64WithSeed(value, seed1) % mod
	h2 = murmur3.Sum64WithSeed(value, seed2) % mod
	return h1, h2
}

// Index returns the i-th probe index for a reduced base hash pair:
// (h1 + i*h2) mod mod. Two hash evaluations serve any number of probes.
func Index(h1, h2, i, mod uint64) uint64 {
	return (h1 + i*h2) % mod
}
