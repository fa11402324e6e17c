// Package blobcache adapts a whole-blob container to a per-key cache contract.
// The backing container stores an entire namespace as one opaque entry and has
// no native per-key operations, so every operation here reads the namespace
// blob, applies the key-level change in memory, and writes the blob back.
//
// Components:
//   - Container: byte store keyed by namespace (memory, Redis, BigCache, Ristretto).
//   - Codec[Blob]: (de)serializes the namespace blob <-> []byte.
//   - Capabilities: cached self-description (no TTL, unbounded keys, dynamic values).
//
// A namespace entry is never left empty by a removal path: when the last key
// is removed the entry is deleted, and an absent entry reads as an empty
// mapping. Flush is the one exception; it overwrites the entry with an empty
// blob and leaves it present.
//
// The read-modify-write sequence has no atomicity guard. Two goroutines or
// processes mutating the same namespace race, last write wins. The backing
// container is assumed single-consumer; do not share one namespace across
// concurrent writers.
package blobcache
