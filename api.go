package blobcache

import (
	"context"

	c "github.com/unkn0wn-root/blobcache/codec"
	ct "github.com/unkn0wn-root/blobcache/container"
)

// Value is what callers store under a key: any shape the configured codec can
// round-trip (nil, bool, integers, floats, strings, nested lists and maps
// treated as opaque).
type Value = any

// Blob is the whole mapping persisted as one container entry per namespace.
type Blob = map[string]Value

// Metadata describes a single entry. The backing container records nothing
// per entry, so the structure is empty; presence is the only information.
type Metadata struct{}

// Cache is the per-key cache contract over a whole-blob container.
//
// Misses are reported through bool results and skipped-key lists, never as
// errors. Every operation may return ErrNoContainer when no container was
// configured, or whatever fault the container itself raised, unwrapped.
type Cache interface {
	// Namespace returns the configured namespace string.
	Namespace() string

	// Get returns the stored value. The returned value doubles as the
	// comparison token for SetWithToken.
	Get(ctx context.Context, key string) (Value, bool, error)
	// GetMany returns a mapping holding only the keys that are present.
	GetMany(ctx context.Context, keys []string) (map[string]Value, error)
	Has(ctx context.Context, key string) (bool, error)
	// HasMany returns the subset of keys that are present.
	HasMany(ctx context.Context, keys []string) ([]string, error)
	// Metadata reports presence; the metadata itself is always empty.
	Metadata(ctx context.Context, key string) (Metadata, bool, error)

	// Set upserts unconditionally.
	Set(ctx context.Context, key string, v Value) error
	// SetMany merges items into the blob. The returned slice lists keys that
	// failed to apply; an unconditional merge cannot fail per key, so it is
	// always empty.
	SetMany(ctx context.Context, items map[string]Value) ([]string, error)
	// SetWithToken writes only while the stored value still equals the token
	// previously observed via Get (deep equality). On miss or mismatch it
	// reports false without mutating.
	SetWithToken(ctx context.Context, key string, v, token Value) (bool, error)
	// Add inserts only when the key is absent.
	Add(ctx context.Context, key string, v Value) (bool, error)
	// AddMany applies Add per key against one blob snapshot and returns the
	// keys that already existed and were skipped.
	AddMany(ctx context.Context, items map[string]Value) ([]string, error)
	// Replace updates only when the key is present.
	Replace(ctx context.Context, key string, v Value) (bool, error)
	// ReplaceMany applies Replace per key and returns the keys that were
	// absent and skipped.
	ReplaceMany(ctx context.Context, items map[string]Value) ([]string, error)

	Remove(ctx context.Context, key string) (bool, error)
	// RemoveMany deletes the given keys and returns the ones that were not
	// present.
	RemoveMany(ctx context.Context, keys []string) ([]string, error)

	// Increment adds delta to the stored value and returns the new value.
	// An absent key is initialized to delta itself, not zero-then-delta.
	// A present non-numeric value yields ErrNotNumeric.
	Increment(ctx context.Context, key string, delta int64) (int64, error)
	// IncrementMany applies Increment per key against one blob snapshot.
	// Keys holding non-numeric values are skipped and absent from the result.
	IncrementMany(ctx context.Context, deltas map[string]int64) (map[string]int64, error)
	// Decrement subtracts delta; an absent key is initialized to -delta.
	Decrement(ctx context.Context, key string, delta int64) (int64, error)
	DecrementMany(ctx context.Context, deltas map[string]int64) (map[string]int64, error)

	// ClearByPrefix removes every key starting with prefix. The empty prefix
	// is rejected with ErrEmptyPrefix. Clearing an absent namespace is a
	// successful no-op.
	ClearByPrefix(ctx context.Context, prefix string) error
	// Flush overwrites the namespace entry with an empty blob. Unlike the
	// removal paths it leaves the entry present.
	Flush(ctx context.Context) error
	// Keys returns a sorted snapshot of the keys at call time. Recreate the
	// snapshot to restart iteration; an absent namespace yields no keys.
	Keys(ctx context.Context) ([]string, error)

	// Capabilities returns the cached capability descriptor, building it on
	// first call. The same pointer is returned for the cache's lifetime.
	Capabilities() *Capabilities
}

// Options tune a Cache. Only Codec is required at construction. A nil
// Container is tolerated here so configuration layers can wire the handle
// late; every operation fails with ErrNoContainer while it is missing.
type Options struct {
	Namespace string        // logical partition; the empty string is a valid namespace
	Container ct.Container  // whole-blob store the adapter delegates to
	Codec     c.Codec[Blob] // required

	Logger Logger // if nil, NopLogger is used
	Hooks  Hooks  // if nil, NopHooks is used
}

func New(opts Options) (Cache, error) {
	return newCache(opts)
}
