// Package wire implements the fixed-layout codecs exchanged between the
// two sides of a sync: strong-hash records, the handshake header, and
// stream adapters that carry a hasher stream over an io.Writer.
package wire

import (
	"encoding/binary"

	"github.com/quayside/xdelta"
)

var ENDIANNESS = binary.LittleEndian

// Version is the current protocol version. It bumps by one on every
// incompatible change; peers announce it in the handshake.
const Version int16 = 1

// Handshake error codes. A peer that cannot proceed answers with the
// appropriate code in ErrorNo.
const (
	ErrDiscompatVersion   int32 = -1
	ErrUnknownVersion     int32 = -2
	ErrIncorrectBlockType int32 = -3
)

// StrongHashSize is the encoded size of a strong-hash record:
// u32 block index, u64 round offset, then the digest bytes.
const StrongHashSize = 4 + 8 + xdelta.DigestBytes

// HandshakeSize is the encoded size of a handshake header:
// i16 version, i32 error code, 32 reserved bytes.
const HandshakeSize = 2 + 4 + 32

// Handshake opens every session.
type Handshake struct {
	Version  int16
	ErrorNo  int32
	Reserved [32]byte
}

// NewHandshake returns a handshake announcing the current version.
func NewHandshake() *Handshake {
	return &Handshake{Version: Version}
}

// CheckHandshake returns the error code a peer should answer h with: zero
// when the handshake is acceptable, ErrDiscompatVersion for an older peer,
// ErrUnknownVersion for a version from the future.
func CheckHandshake(h *Handshake) int32 {
	switch {
	case h.Version < Version:
		return ErrDiscompatVersion
	case h.Version > Version:
		return ErrUnknownVersion
	}
	return 0
}
