package blobcache

// Hooks lightweight callbacks for high-signal events.
// Implementations MUST be cheap and non-blocking.
// The cache calls them on hot paths.
type Hooks interface {
	// A namespace entry failed frame or codec validation on read and was
	// deleted (self-heal). reason ∈ {"frame", "decode"}.
	CorruptBlob(namespace, reason string)

	// A removal path emptied the blob and the namespace entry was deleted
	// instead of an empty mapping being written back.
	NamespaceDropped(namespace string)

	// The container returned an error that is being propagated to the
	// caller. op names the container method ("exists", "read", "write",
	// "delete", "replace_all").
	ContainerFault(op, namespace string, err error)
}

// NopHooks is the default no-op
type NopHooks struct{}

func (NopHooks) CorruptBlob(string, string)           {}
func (NopHooks) NamespaceDropped(string)              {}
func (NopHooks) ContainerFault(string, string, error) {}
