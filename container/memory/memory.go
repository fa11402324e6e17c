// Package memory provides the in-process container blobcache is built
// around: session-scoped state living in the host application's memory.
package memory

import (
	"context"
	"sync"

	ct "github.com/unkn0wn-root/blobcache/container"
)

// Container is a map-backed whole-blob store. The container itself is safe
// for concurrent use; the adapter's read-modify-write cycle on top of it
// still is not.
type Container struct {
	mu sync.RWMutex
	m  map[string][]byte
}

var _ ct.Container = (*Container)(nil)

func New() *Container {
	return &Container{m: make(map[string][]byte)}
}

func (c *Container) Exists(_ context.Context, namespace string) (bool, error) {
	c.mu.RLock()
	_, ok := c.m[namespace]
	c.mu.RUnlock()
	return ok, nil
}

func (c *Container) Read(_ context.Context, namespace string) ([]byte, error) {
	c.mu.RLock()
	b, ok := c.m[namespace]
	c.mu.RUnlock()
	if !ok {
		return nil, ct.ErrNotExists
	}
	// copy both ways so callers can't alias stored bytes
	out := make([]byte, len(b))
	copy(out, b)
	return out, nil
}

func (c *Container) Write(_ context.Context, namespace string, blob []byte) error {
	stored := make([]byte, len(blob))
	copy(stored, blob)
	c.mu.Lock()
	c.m[namespace] = stored
	c.mu.Unlock()
	return nil
}

func (c *Container) Delete(_ context.Context, namespace string) error {
	c.mu.Lock()
	delete(c.m, namespace)
	c.mu.Unlock()
	return nil
}

func (c *Container) ReplaceAll(ctx context.Context, namespace string, blob []byte) error {
	return c.Write(ctx, namespace, blob)
}

// Len reports the number of namespace entries currently stored.
func (c *Container) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.m)
}
