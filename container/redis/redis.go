package redis

import (
	"context"
	"errors"

	goredis "github.com/redis/go-redis/v9"

	ct "github.com/unkn0wn-root/blobcache/container"
)

var ErrNilClient = errors.New("redis container: nil client")

// Container stores each namespace blob under one Redis key. No TTL is ever
// set: this layer has no expiration semantics.
type Container struct {
	rdb         goredis.UniversalClient
	prefix      string
	closeClient bool
}

var _ ct.Container = (*Container)(nil)

type Config struct {
	Client goredis.UniversalClient
	// KeyPrefix is prepended to namespace strings, keeping the blobcache
	// keyspace apart from other users of the same database.
	KeyPrefix string
	// CloseClient - set true only if this container exclusively owns the client.
	CloseClient bool
}

func New(cfg Config) (*Container, error) {
	if cfg.Client == nil {
		return nil, ErrNilClient
	}
	return &Container{rdb: cfg.Client, prefix: cfg.KeyPrefix, closeClient: cfg.CloseClient}, nil
}

func (c *Container) key(namespace string) string { return c.prefix + namespace }

func (c *Container) Exists(ctx context.Context, namespace string) (bool, error) {
	n, err := c.rdb.Exists(ctx, c.key(namespace)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (c *Container) Read(ctx context.Context, namespace string) ([]byte, error) {
	b, err := c.rdb.Get(ctx, c.key(namespace)).Bytes()
	if err == goredis.Nil {
		return nil, ct.ErrNotExists
	}
	if err != nil {
		return nil, err // transport/server error
	}
	return b, nil
}

func (c *Container) Write(ctx context.Context, namespace string, blob []byte) error {
	return c.rdb.Set(ctx, c.key(namespace), blob, 0).Err()
}

func (c *Container) Delete(ctx context.Context, namespace string) error {
	return c.rdb.Del(ctx, c.key(namespace)).Err()
}

func (c *Container) ReplaceAll(ctx context.Context, namespace string, blob []byte) error {
	return c.Write(ctx, namespace, blob)
}

// Close releases the underlying redis client only when this container owns
// it. Safe to call multiple times; repeated calls become no-ops.
func (c *Container) Close() error {
	if c.closeClient {
		if err := c.rdb.Close(); err != nil && !errors.Is(err, goredis.ErrClosed) {
			return err
		}
	}
	return nil
}
