package wire

import (
	"io"

	"github.com/pkg/errors"

	"github.com/quayside/xdelta"
)

// ReadContext deserializes records from a reader.
type ReadContext struct {
	reader io.Reader
	buf    [HandshakeSize]byte
}

func NewReadContext(reader io.Reader) *ReadContext {
	return &ReadContext{reader: reader}
}

// ReadStrongHash reads one fixed-layout strong-hash record.
func (r *ReadContext) ReadStrongHash() (xdelta.StrongHash, error) {
	var sh xdelta.StrongHash

	buf := r.buf[:StrongHashSize]
	_, err := io.ReadFull(r.reader, buf)
	if err != nil {
		return sh, errors.WithStack(err)
	}

	sh.Pos.Index = ENDIANNESS.Uint32(buf[0:4])
	sh.Pos.TOffset = ENDIANNESS.Uint64(buf[4:12])
	copy(sh.Digest[:], buf[12:])
	return sh, nil
}

// ReadHandshake reads one fixed-layout handshake header.
func (r *ReadContext) ReadHandshake() (*Handshake, error) {
	buf := r.buf[:HandshakeSize]
	_, err := io.ReadFull(r.reader, buf)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	h := &Handshake{
		Version: int16(ENDIANNESS.Uint16(buf[0:2])),
		ErrorNo: int32(ENDIANNESS.Uint32(buf[2:6])),
	}
	copy(h.Reserved[:], buf[6:])
	return h, nil
}
