// Package sloghooks logs blobcache hook events through log/slog with
// optional sampling and namespace redaction.
package sloghooks

import (
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"sync/atomic"

	"github.com/unkn0wn-root/blobcache"
)

type Options struct {
	// Sampling to avoid floods; 0/1 = log all.
	CorruptEvery uint64
	// Optional namespace redactor. Defaults to SHA-256 prefix.
	Redact func(string) string
}

type Hooks struct {
	l    *slog.Logger
	opts Options

	corruptCtr atomic.Uint64
}

var _ blobcache.Hooks = (*Hooks)(nil)

func New(l *slog.Logger, opts Options) *Hooks {
	return &Hooks{l: l, opts: opts}
}

func (h *Hooks) redact(ns string) string {
	if h.opts.Redact != nil {
		return h.opts.Redact(ns)
	}
	sum := sha256.Sum256([]byte(ns))
	return hex.EncodeToString(sum[:8])
}

func sample(n uint64, ctr *atomic.Uint64) bool {
	if n == 0 || n == 1 {
		return true
	}
	return ctr.Add(1)%n == 0
}

func (h *Hooks) CorruptBlob(namespace, reason string) {
	if h.l == nil || !sample(h.opts.CorruptEvery, &h.corruptCtr) {
		return
	}
	h.l.Debug("blobcache.corrupt_blob",
		"namespace", h.redact(namespace),
		"reason", reason)
}

func (h *Hooks) NamespaceDropped(namespace string) {
	if h.l == nil {
		return
	}
	h.l.Debug("blobcache.namespace_dropped",
		"namespace", h.redact(namespace))
}

func (h *Hooks) ContainerFault(op, namespace string, err error) {
	if h.l == nil {
		return
	}
	h.l.Warn("blobcache.container_fault",
		"op", op,
		"namespace", h.redact(namespace),
		"err", err)
}
