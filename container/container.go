// Package container defines the whole-blob storage abstraction blobcache
// adapts. A container stores one opaque entry per namespace and offers no
// per-key operations; blobcache owns the entries it writes and performs every
// key-level change as a read-modify-write over the whole entry.
//
// Implementations MUST be byte-for-byte transparent: Read must return exactly
// the same []byte previously passed to Write for a namespace (no prepended or
// appended metadata, no re-encoding, no mutation). If a store performs
// internal transforms (e.g., compression), they MUST be fully reversed.
// Foreign writes under a namespace blobcache manages may be treated as
// corruption by wire-format validation and deleted.
//
// Lifecycle stays with the caller: blobcache borrows the handle for the
// duration of each call and never opens or closes it. Backends that hold
// client resources expose Close on the concrete type, not here.
package container

import (
	"context"
	"errors"
)

// ErrNotExists is returned by Read when the namespace entry is absent.
// Callers are expected to check Exists first; the error covers the window
// where the entry vanishes in between.
var ErrNotExists = errors.New("container: namespace entry does not exist")

type Container interface {
	// Exists reports whether a namespace entry is present.
	Exists(ctx context.Context, namespace string) (bool, error)

	// Read returns the stored blob. Absent namespace => ErrNotExists.
	Read(ctx context.Context, namespace string) ([]byte, error)

	// Write stores blob under namespace, overwriting any previous entry.
	Write(ctx context.Context, namespace string, blob []byte) error

	// Delete removes the namespace entry. Deleting an absent entry is a
	// no-op, not an error.
	Delete(ctx context.Context, namespace string) error

	// ReplaceAll overwrites the namespace entry unconditionally, creating it
	// when absent. Most backends implement it as Write; blobcache.Flush uses
	// it to force an empty-but-present blob.
	ReplaceAll(ctx context.Context, namespace string, blob []byte) error
}
