// usage:
//
// import (
//
//	"log/slog"
//
//	"github.com/unkn0wn-root/blobcache"
//	"github.com/unkn0wn-root/blobcache/codec"
//	"github.com/unkn0wn-root/blobcache/container/memory"
//	asynchook "github.com/unkn0wn-root/blobcache/hooks/async"
//	"github.com/unkn0wn-root/blobcache/sloghooks"
//
// )
//
//	raw := sloghooks.New(slog.Default(), sloghooks.Options{
//	    CorruptEvery: 10, // sample logs: ~every 10th corrupt-blob drop
//	})
//
// hooks := asynchook.New(raw, 1, 1000) // 1 worker; queue 1000 events
// defer hooks.Close()
//
//	cache, _ := blobcache.New(blobcache.Options{
//	    Namespace: "session:user",
//	    Container: memory.New(),
//	    Codec:     codec.Msgpack[blobcache.Blob]{},
//	    Hooks:     hooks, // or `raw` if you don’t want async
//	})
package asynchook

import (
	"sync"

	"github.com/unkn0wn-root/blobcache"
)

type Hooks struct {
	inner blobcache.Hooks
	q     chan func()
	wg    sync.WaitGroup
	once  sync.Once
}

var _ blobcache.Hooks = (*Hooks)(nil)

func New(inner blobcache.Hooks, workers, qlen int) *Hooks {
	if workers <= 0 {
		workers = 1
	}
	if qlen <= 0 {
		qlen = 1024
	}

	h := &Hooks{inner: inner, q: make(chan func(), qlen)}
	h.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer h.wg.Done()
			for f := range h.q {
				f()
			}
		}()
	}
	return h
}

func (h *Hooks) Close() {
	h.once.Do(func() {
		close(h.q)
		h.wg.Wait()
	})
}

func (h *Hooks) try(f func()) {
	select {
	case h.q <- f:
	default: // drop
	}
}

func (h *Hooks) CorruptBlob(namespace, reason string) {
	h.try(func() { h.inner.CorruptBlob(namespace, reason) })
}

func (h *Hooks) NamespaceDropped(namespace string) {
	h.try(func() { h.inner.NamespaceDropped(namespace) })
}

func (h *Hooks) ContainerFault(op, namespace string, err error) {
	h.try(func() { h.inner.ContainerFault(op, namespace, err) })
}
