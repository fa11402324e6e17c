package blobcache

import "time"

// DataType enumerates the value shapes a caller can ask the cache to store.
type DataType string

const (
	DataTypeNull     DataType = "null"
	DataTypeBool     DataType = "bool"
	DataTypeInt      DataType = "int"
	DataTypeFloat    DataType = "float"
	DataTypeString   DataType = "string"
	DataTypeArray    DataType = "array"
	DataTypeObject   DataType = "object"
	DataTypeBinary   DataType = "binary"
	DataTypeResource DataType = "resource"
)

// Support describes how a data type survives a round trip through the
// container.
type Support int

const (
	// SupportNone - the type cannot be stored.
	SupportNone Support = iota
	// SupportNative - stored and returned as-is.
	SupportNative
	// SupportMarked - storable, but the container cannot tell the shape
	// apart from native types; the codec has to carry a marker.
	SupportMarked
)

// Capabilities is the static self-description of the adapter. One instance is
// built lazily per cache and reused for its lifetime; see Cache.Capabilities.
type Capabilities struct {
	// DataTypes maps each value shape to its level of support.
	DataTypes map[DataType]Support

	// MinTTL is 0: the backing container has no expiration semantics and
	// this layer adds none.
	MinTTL time.Duration

	// MaxKeyLength is 0: key length is unbounded.
	MaxKeyLength int

	// NamespaceIsPrefix is false: the namespace selects a container entry,
	// it is never prepended to keys.
	NamespaceIsPrefix bool

	// NamespaceSeparator is empty; it is meaningless while
	// NamespaceIsPrefix is false.
	NamespaceSeparator string
}

func newCapabilities() *Capabilities {
	return &Capabilities{
		DataTypes: map[DataType]Support{
			DataTypeNull:     SupportNative,
			DataTypeBool:     SupportNative,
			DataTypeInt:      SupportNative,
			DataTypeFloat:    SupportNative,
			DataTypeString:   SupportNative,
			DataTypeArray:    SupportMarked,
			DataTypeObject:   SupportMarked,
			DataTypeBinary:   SupportNone,
			DataTypeResource: SupportNone,
		},
		MinTTL:       0,
		MaxKeyLength: 0,
	}
}
