package ristretto

import (
	"context"
	"errors"

	rc "github.com/dgraph-io/ristretto"

	ct "github.com/unkn0wn-root/blobcache/container"
)

// Container keeps namespace blobs in a Ristretto cache. Ristretto applies
// writes asynchronously, so every mutation calls Wait before returning: the
// adapter's next read of the same namespace must observe its own write.
type Container struct {
	c *rc.Cache
}

var _ ct.Container = (*Container)(nil)

type Config struct {
	NumCounters int64
	MaxCost     int64
	BufferItems int64
	Metrics     bool
}

func New(cfg Config) (*Container, error) {
	if cfg.NumCounters <= 0 || cfg.MaxCost <= 0 || cfg.BufferItems <= 0 {
		return nil, errors.New("ristretto: invalid config")
	}
	c, err := rc.NewCache(&rc.Config{
		NumCounters: cfg.NumCounters,
		MaxCost:     cfg.MaxCost,
		BufferItems: cfg.BufferItems,
		Metrics:     cfg.Metrics,
	})
	if err != nil {
		return nil, err
	}
	return &Container{c: c}, nil
}

func (c *Container) Exists(_ context.Context, namespace string) (bool, error) {
	_, ok := c.c.Get(namespace)
	return ok, nil
}

func (c *Container) Read(_ context.Context, namespace string) ([]byte, error) {
	v, ok := c.c.Get(namespace)
	if !ok {
		return nil, ct.ErrNotExists
	}
	b, ok := v.([]byte)
	if !ok {
		// drop unexpected entry shape
		c.c.Del(namespace)
		return nil, ct.ErrNotExists
	}
	return b, nil
}

func (c *Container) Write(_ context.Context, namespace string, blob []byte) error {
	c.c.Set(namespace, blob, int64(len(blob)))
	c.c.Wait()
	return nil
}

func (c *Container) Delete(_ context.Context, namespace string) error {
	c.c.Del(namespace)
	c.c.Wait()
	return nil
}

func (c *Container) ReplaceAll(ctx context.Context, namespace string, blob []byte) error {
	return c.Write(ctx, namespace, blob)
}

func (c *Container) Close() error {
	c.c.Wait()
	c.c.Close()
	return nil
}

// Metrics exposes Ristretto's metrics for the application (not part of the
// container contract).
func (c *Container) Metrics() *rc.Metrics { return c.c.Metrics }
