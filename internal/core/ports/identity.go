package ports

// IdentityHasher derives a storage-safe identifier from a raw national ID.
// The digest must be deterministic and fixed-length; every write and every
// read of a record keyed by national ID goes through the same hasher.
type IdentityHasher interface {
	Hash(rawID string) string
}
