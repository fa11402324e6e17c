package blobcache

import "errors"

var (
	// ErrNoContainer is returned by every operation when no backing
	// container was configured. A configuration fault: fix the Options,
	// do not retry.
	ErrNoContainer = errors.New("blobcache: no backing container configured")

	// ErrEmptyPrefix rejects ClearByPrefix("") before any container I/O.
	ErrEmptyPrefix = errors.New("blobcache: empty prefix")

	// ErrNotNumeric is returned by Increment and Decrement when the stored
	// value cannot be coerced to an integer.
	ErrNotNumeric = errors.New("blobcache: stored value is not numeric")
)
