package blobcache

import (
	"context"
	"errors"
	"fmt"
	"math"
	"reflect"

	c "github.com/unkn0wn-root/blobcache/codec"
	ct "github.com/unkn0wn-root/blobcache/container"
	"github.com/unkn0wn-root/blobcache/internal/util"
	"github.com/unkn0wn-root/blobcache/internal/wire"
)

type cache struct {
	ns        string
	container ct.Container
	codec     c.Codec[Blob]
	log       Logger
	hooks     Hooks

	caps *Capabilities // memoized; see Capabilities
}

func newCache(opts Options) (*cache, error) {
	if opts.Codec == nil {
		return nil, fmt.Errorf("blobcache: codec is required")
	}

	ca := &cache{
		ns:        opts.Namespace,
		container: opts.Container,
		codec:     opts.Codec,
	}

	// defaults
	ca.log = coalesce[Logger](opts.Logger, NopLogger{})
	ca.hooks = coalesce[Hooks](opts.Hooks, NopHooks{})

	return ca, nil
}

func (c *cache) Namespace() string { return c.ns }

// resolve is the namespace resolver: every operation goes through it before
// any container I/O, and fails here when configuration never supplied a
// container handle.
func (c *cache) resolve() (string, ct.Container, error) {
	if c.container == nil {
		return "", nil, ErrNoContainer
	}
	return c.ns, c.container, nil
}

// readBlob loads the namespace entry, treating an absent entry as an empty
// mapping. Entries that fail frame or codec validation are deleted
// (self-heal) and read as empty.
func (c *cache) readBlob(ctx context.Context, ns string, cont ct.Container) (Blob, error) {
	ok, err := cont.Exists(ctx, ns)
	if err != nil {
		c.hooks.ContainerFault("exists", ns, err)
		return nil, err
	}
	if !ok {
		return Blob{}, nil
	}
	raw, err := cont.Read(ctx, ns)
	if err != nil {
		if errors.Is(err, ct.ErrNotExists) {
			// entry vanished between Exists and Read
			return Blob{}, nil
		}
		c.hooks.ContainerFault("read", ns, err)
		return nil, err
	}
	payload, err := wire.Decode(raw)
	if err != nil {
		c.dropCorrupt(ctx, ns, cont, "frame")
		return Blob{}, nil
	}
	blob, err := c.codec.Decode(payload)
	if err != nil {
		c.dropCorrupt(ctx, ns, cont, "decode")
		return Blob{}, nil
	}
	if blob == nil {
		blob = Blob{}
	}
	return blob, nil
}

func (c *cache) dropCorrupt(ctx context.Context, ns string, cont ct.Container, reason string) {
	_ = cont.Delete(ctx, ns) // self-heal corrupt entry
	c.hooks.CorruptBlob(ns, reason)
	c.log.Warn("dropped corrupt namespace entry", Fields{"namespace": ns, "reason": reason})
}

// writeBlob persists the mutated mapping. A mapping that went empty deletes
// the namespace entry instead: removal paths never leave an empty blob behind.
func (c *cache) writeBlob(ctx context.Context, ns string, cont ct.Container, blob Blob) error {
	if len(blob) == 0 {
		if err := cont.Delete(ctx, ns); err != nil {
			c.hooks.ContainerFault("delete", ns, err)
			return err
		}
		c.hooks.NamespaceDropped(ns)
		c.log.Debug("namespace emptied, entry deleted", Fields{"namespace": ns})
		return nil
	}
	payload, err := c.codec.Encode(blob)
	if err != nil {
		return err
	}
	if err := cont.Write(ctx, ns, wire.Encode(payload)); err != nil {
		c.hooks.ContainerFault("write", ns, err)
		return err
	}
	return nil
}

// mutate runs one read-modify-write cycle: resolve, one read, one in-memory
// transform, at most one write. transform mutates the blob in place and
// reports whether anything changed; unchanged blobs skip the write.
func (c *cache) mutate(ctx context.Context, transform func(Blob) bool) error {
	ns, cont, err := c.resolve()
	if err != nil {
		return err
	}
	blob, err := c.readBlob(ctx, ns, cont)
	if err != nil {
		return err
	}
	if !transform(blob) {
		return nil
	}
	return c.writeBlob(ctx, ns, cont, blob)
}

// view runs the read half of the cycle only.
func (c *cache) view(ctx context.Context, read func(Blob)) error {
	ns, cont, err := c.resolve()
	if err != nil {
		return err
	}
	blob, err := c.readBlob(ctx, ns, cont)
	if err != nil {
		return err
	}
	read(blob)
	return nil
}

func (c *cache) Get(ctx context.Context, key string) (Value, bool, error) {
	var (
		v  Value
		ok bool
	)
	if err := c.view(ctx, func(b Blob) { v, ok = b[key] }); err != nil {
		return nil, false, err
	}
	return v, ok, nil
}

func (c *cache) GetMany(ctx context.Context, keys []string) (map[string]Value, error) {
	out := make(map[string]Value, len(keys))
	if err := c.view(ctx, func(b Blob) {
		for _, k := range keys {
			if v, ok := b[k]; ok {
				out[k] = v
			}
		}
	}); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *cache) Has(ctx context.Context, key string) (bool, error) {
	var ok bool
	if err := c.view(ctx, func(b Blob) { _, ok = b[key] }); err != nil {
		return false, err
	}
	return ok, nil
}

func (c *cache) HasMany(ctx context.Context, keys []string) ([]string, error) {
	var present []string
	if err := c.view(ctx, func(b Blob) {
		for _, k := range keys {
			if _, ok := b[k]; ok {
				present = append(present, k)
			}
		}
	}); err != nil {
		return nil, err
	}
	return present, nil
}

func (c *cache) Metadata(ctx context.Context, key string) (Metadata, bool, error) {
	// the container records no per-entry metadata; presence is the answer
	ok, err := c.Has(ctx, key)
	return Metadata{}, ok, err
}

func (c *cache) Set(ctx context.Context, key string, v Value) error {
	return c.mutate(ctx, func(b Blob) bool {
		b[key] = v
		return true
	})
}

func (c *cache) SetMany(ctx context.Context, items map[string]Value) ([]string, error) {
	if len(items) == 0 {
		return nil, nil
	}
	if err := c.mutate(ctx, func(b Blob) bool {
		for k, v := range items {
			b[k] = v
		}
		return true
	}); err != nil {
		return nil, err
	}
	// unconditional merge cannot fail per key
	return nil, nil
}

func (c *cache) SetWithToken(ctx context.Context, key string, v, token Value) (bool, error) {
	applied := false
	err := c.mutate(ctx, func(b Blob) bool {
		cur, ok := b[key]
		if !ok || !reflect.DeepEqual(cur, token) {
			c.log.Debug("conditional set skipped (token mismatch)", Fields{"key": key})
			return false
		}
		b[key] = v
		applied = true
		return true
	})
	return applied, err
}

func (c *cache) Add(ctx context.Context, key string, v Value) (bool, error) {
	added := false
	err := c.mutate(ctx, func(b Blob) bool {
		if _, ok := b[key]; ok {
			return false
		}
		b[key] = v
		added = true
		return true
	})
	return added, err
}

func (c *cache) AddMany(ctx context.Context, items map[string]Value) ([]string, error) {
	var existing []string
	if err := c.mutate(ctx, func(b Blob) bool {
		changed := false
		for k, v := range items {
			if _, ok := b[k]; ok {
				existing = append(existing, k)
				continue
			}
			b[k] = v
			changed = true
		}
		return changed
	}); err != nil {
		return nil, err
	}
	return existing, nil
}

func (c *cache) Replace(ctx context.Context, key string, v Value) (bool, error) {
	replaced := false
	err := c.mutate(ctx, func(b Blob) bool {
		if _, ok := b[key]; !ok {
			return false
		}
		b[key] = v
		replaced = true
		return true
	})
	return replaced, err
}

func (c *cache) ReplaceMany(ctx context.Context, items map[string]Value) ([]string, error) {
	var missing []string
	if err := c.mutate(ctx, func(b Blob) bool {
		changed := false
		for k, v := range items {
			if _, ok := b[k]; !ok {
				missing = append(missing, k)
				continue
			}
			b[k] = v
			changed = true
		}
		return changed
	}); err != nil {
		return nil, err
	}
	return missing, nil
}

func (c *cache) Remove(ctx context.Context, key string) (bool, error) {
	removed := false
	err := c.mutate(ctx, func(b Blob) bool {
		if _, ok := b[key]; !ok {
			return false
		}
		delete(b, key)
		removed = true
		return true
	})
	return removed, err
}

func (c *cache) RemoveMany(ctx context.Context, keys []string) ([]string, error) {
	var missing []string
	if err := c.mutate(ctx, func(b Blob) bool {
		changed := false
		for _, k := range keys {
			if _, ok := b[k]; !ok {
				missing = append(missing, k)
				continue
			}
			delete(b, k)
			changed = true
		}
		return changed
	}); err != nil {
		return nil, err
	}
	return missing, nil
}

func (c *cache) Increment(ctx context.Context, key string, delta int64) (int64, error) {
	return c.addDelta(ctx, key, delta)
}

func (c *cache) Decrement(ctx context.Context, key string, delta int64) (int64, error) {
	return c.addDelta(ctx, key, -delta)
}

// addDelta applies one signed counter step. The first write stores the step
// itself as the initial value.
func (c *cache) addDelta(ctx context.Context, key string, delta int64) (int64, error) {
	var (
		out    int64
		numErr error
	)
	err := c.mutate(ctx, func(b Blob) bool {
		cur, ok := b[key]
		if !ok {
			out = delta
			b[key] = out
			return true
		}
		old, ok := asInt64(cur)
		if !ok {
			numErr = fmt.Errorf("%w: key %q", ErrNotNumeric, key)
			return false
		}
		out = old + delta
		b[key] = out
		return true
	})
	if err != nil {
		return 0, err
	}
	if numErr != nil {
		return 0, numErr
	}
	return out, nil
}

func (c *cache) IncrementMany(ctx context.Context, deltas map[string]int64) (map[string]int64, error) {
	return c.addDeltas(ctx, deltas, 1)
}

func (c *cache) DecrementMany(ctx context.Context, deltas map[string]int64) (map[string]int64, error) {
	return c.addDeltas(ctx, deltas, -1)
}

// addDeltas applies counter steps per key against one shared blob snapshot.
// Keys holding non-numeric values are skipped and left out of the result.
func (c *cache) addDeltas(ctx context.Context, deltas map[string]int64, sign int64) (map[string]int64, error) {
	out := make(map[string]int64, len(deltas))
	if err := c.mutate(ctx, func(b Blob) bool {
		changed := false
		for k, d := range deltas {
			d *= sign
			cur, ok := b[k]
			if !ok {
				out[k] = d
				b[k] = d
				changed = true
				continue
			}
			old, ok := asInt64(cur)
			if !ok {
				c.log.Debug("counter step skipped (non-numeric value)", Fields{"key": k})
				continue
			}
			out[k] = old + d
			b[k] = out[k]
			changed = true
		}
		return changed
	}); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *cache) ClearByPrefix(ctx context.Context, prefix string) error {
	if prefix == "" {
		return ErrEmptyPrefix
	}
	return c.mutate(ctx, func(b Blob) bool {
		// snapshot the matches before deleting so the scan never walks a
		// mapping being mutated
		matched := util.WithPrefix(b, prefix)
		for _, k := range matched {
			delete(b, k)
		}
		return len(matched) > 0
	})
}

func (c *cache) Flush(ctx context.Context) error {
	ns, cont, err := c.resolve()
	if err != nil {
		return err
	}
	payload, err := c.codec.Encode(Blob{})
	if err != nil {
		return err
	}
	// overwrite, not delete: Flush leaves an empty-but-present entry
	if err := cont.ReplaceAll(ctx, ns, wire.Encode(payload)); err != nil {
		c.hooks.ContainerFault("replace_all", ns, err)
		return err
	}
	return nil
}

func (c *cache) Keys(ctx context.Context) ([]string, error) {
	var keys []string
	if err := c.view(ctx, func(b Blob) { keys = util.SortedKeys(b) }); err != nil {
		return nil, err
	}
	return keys, nil
}

// Capabilities memoizes the descriptor on first call. No lock is taken; the
// cache is documented single-consumer.
func (c *cache) Capabilities() *Capabilities {
	if c.caps == nil {
		c.caps = newCapabilities()
	}
	return c.caps
}

// resetCapabilities drops the memoized descriptor so the next Capabilities
// call rebuilds it.
func (c *cache) resetCapabilities() { c.caps = nil }

// asInt64 coerces the numeric kinds the codecs hand back after a round trip.
func asInt64(v Value) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint:
		if uint64(n) > math.MaxInt64 {
			return 0, false
		}
		return int64(n), true
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint64:
		if n > math.MaxInt64 {
			return 0, false
		}
		return int64(n), true
	case float32:
		return int64(n), true
	case float64:
		return int64(n), true
	}
	return 0, false
}
