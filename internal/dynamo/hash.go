package dynamo

import "hash/fnv"

// HashString derives a particle's 64-bit hash identity from a short
// label using FNV-1a. This function is part of the persisted-state
// contract: any process that round-trips a checkpoint written by another
// process must use the same algorithm to resolve string-named particles,
// so it is not swapped for a different hash without bumping the
// checkpoint format version.
func HashString(s string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s))
	return h.Sum64()
}

// autoHash derives a hash for particles added without an explicit hash
// or name, from a monotonically increasing sequence number private to
// the Store. It is deliberately run through the same FNV-1a construction
// as HashString so that collisions between auto- and string-derived
// hashes are exactly as likely as between two string hashes, rather than
// structurally impossible or structurally likely.
func autoHash(seq uint64) uint64 {
	h := fnv.New64a()
	b := [8]byte{
		byte(seq), byte(seq >> 8), byte(seq >> 16), byte(seq >> 24),
		byte(seq >> 32), byte(seq >> 40), byte(seq >> 48), byte(seq >> 56),
	}
	_, _ = h.Write([]byte("dynamo:autohash:"))
	_, _ = h.Write(b[:])
	return h.Sum64()
}
