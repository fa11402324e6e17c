// Package wire frames codec payloads before they reach a container. The
// envelope lets the adapter tell its own entries apart from foreign or
// truncated bytes under a namespace and self-heal by dropping them, instead
// of failing every read-modify-write cycle that follows.
package wire

import (
	"bytes"
	"encoding/binary"
	"errors"
)

const version byte = 1

var (
	ErrCorrupt = errors.New("blobcache: corrupt namespace entry")
	magic4     = [...]byte{'N', 'S', 'B', 'C'}
)

func hasMagic(b []byte) bool {
	return len(b) >= 4 && bytes.Equal(b[:4], magic4[:])
}

// Envelope: magic(4) | ver(1) | plen(u32 be) | payload(plen)
func Encode(payload []byte) []byte {
	var buf bytes.Buffer
	buf.Grow(4 + 1 + 4 + len(payload))

	buf.Write(magic4[:])
	buf.WriteByte(version)

	var u4 [4]byte
	binary.BigEndian.PutUint32(u4[:], uint32(len(payload)))
	buf.Write(u4[:])

	buf.Write(payload)
	return buf.Bytes()
}

func Decode(b []byte) ([]byte, error) {
	const hdr = 4 + 1 + 4
	if len(b) < hdr || !hasMagic(b) || b[4] != version {
		return nil, ErrCorrupt
	}
	plen := int(binary.BigEndian.Uint32(b[5:9]))
	// exact length required; trailing bytes are corruption too
	if plen != len(b)-hdr {
		return nil, ErrCorrupt
	}
	return b[hdr:], nil
}
