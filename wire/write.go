package wire

import (
	"io"

	"github.com/pkg/errors"

	"github.com/quayside/xdelta"
)

// WriteContext serializes records to a writer.
type WriteContext struct {
	writer io.Writer
	buf    [HandshakeSize]byte
}

func NewWriteContext(writer io.Writer) *WriteContext {
	return &WriteContext{writer: writer}
}

// WriteStrongHash writes the fixed StrongHashSize-byte layout of sh.
func (w *WriteContext) WriteStrongHash(sh xdelta.StrongHash) error {
	buf := w.buf[:StrongHashSize]
	ENDIANNESS.PutUint32(buf[0:4], sh.Pos.Index)
	ENDIANNESS.PutUint64(buf[4:12], sh.Pos.TOffset)
	copy(buf[12:], sh.Digest[:])

	_, err := w.writer.Write(buf)
	return errors.WithStack(err)
}

// WriteHandshake writes the fixed HandshakeSize-byte layout of h.
func (w *WriteContext) WriteHandshake(h *Handshake) error {
	buf := w.buf[:HandshakeSize]
	ENDIANNESS.PutUint16(buf[0:2], uint16(h.Version))
	ENDIANNESS.PutUint32(buf[2:6], uint32(h.ErrorNo))
	copy(buf[6:], h.Reserved[:])

	_, err := w.writer.Write(buf)
	return errors.WithStack(err)
}
