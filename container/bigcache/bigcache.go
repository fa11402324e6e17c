package bigcache

import (
	"context"
	"time"

	bc "github.com/allegro/bigcache/v3"

	ct "github.com/unkn0wn-root/blobcache/container"
)

// Container keeps namespace blobs in a BigCache instance. BigCache evicts by
// its global life window, so size the window to outlive the longest session
// this container backs.
type Container struct {
	c *bc.BigCache
}

var _ ct.Container = (*Container)(nil)

type Config struct {
	LifeWindow         time.Duration // 0 => 24h
	CleanWindow        time.Duration
	MaxEntriesInWindow int
	MaxEntrySize       int
	HardMaxCacheSizeMB int // ~ memory limit; 0 = unlimited
}

func New(cfg Config) (*Container, error) {
	life := cfg.LifeWindow
	if life <= 0 {
		life = 24 * time.Hour
	}
	conf := bc.DefaultConfig(life)
	if cfg.CleanWindow > 0 {
		conf.CleanWindow = cfg.CleanWindow
	}
	if cfg.MaxEntriesInWindow > 0 {
		conf.MaxEntriesInWindow = cfg.MaxEntriesInWindow
	}
	if cfg.MaxEntrySize > 0 {
		conf.MaxEntrySize = cfg.MaxEntrySize
	}
	if cfg.HardMaxCacheSizeMB > 0 {
		conf.HardMaxCacheSize = cfg.HardMaxCacheSizeMB
	}
	c, err := bc.NewBigCache(conf)
	if err != nil {
		return nil, err
	}
	return &Container{c: c}, nil
}

func (c *Container) Exists(_ context.Context, namespace string) (bool, error) {
	// BigCache has no membership probe; Get is the check.
	_, err := c.c.Get(namespace)
	if err == bc.ErrEntryNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (c *Container) Read(_ context.Context, namespace string) ([]byte, error) {
	b, err := c.c.Get(namespace)
	if err == bc.ErrEntryNotFound {
		return nil, ct.ErrNotExists
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (c *Container) Write(_ context.Context, namespace string, blob []byte) error {
	return c.c.Set(namespace, blob)
}

func (c *Container) Delete(_ context.Context, namespace string) error {
	err := c.c.Delete(namespace)
	if err == bc.ErrEntryNotFound {
		return nil
	}
	return err
}

func (c *Container) ReplaceAll(ctx context.Context, namespace string, blob []byte) error {
	return c.Write(ctx, namespace, blob)
}

func (c *Container) Close() error {
	return c.c.Close()
}
