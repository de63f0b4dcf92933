package wire

import (
	"io"

	"github.com/pkg/errors"

	"github.com/quayside/xdelta"
)

// HashWriter is a xdelta.HasherSink that serializes each pair as a u32
// fast hash followed by the fixed strong-hash record, for transport to the
// peer that runs the delta side.
type HashWriter struct {
	wc *WriteContext
}

var _ xdelta.HasherSink = (*HashWriter)(nil)

func NewHashWriter(writer io.Writer) *HashWriter {
	return &HashWriter{wc: NewWriteContext(writer)}
}

func (hw *HashWriter) AddBlock(fhash uint32, sh xdelta.StrongHash) error {
	var fbuf [4]byte
	ENDIANNESS.PutUint32(fbuf[:], fhash)
	_, err := hw.wc.writer.Write(fbuf[:])
	if err != nil {
		return errors.WithStack(err)
	}
	return hw.wc.WriteStrongHash(sh)
}

// ReadHashes rebuilds a hash table from a stream produced by HashWriter,
// consuming records until EOF.
func ReadHashes(reader io.Reader, table *xdelta.HashTable) error {
	rc := NewReadContext(reader)
	for {
		var fbuf [4]byte
		_, err := io.ReadFull(reader, fbuf[:])
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return errors.WithStack(err)
		}

		sh, err := rc.ReadStrongHash()
		if err != nil {
			return err
		}

		err = table.AddBlock(ENDIANNESS.Uint32(fbuf[:]), sh)
		if err != nil {
			return err
		}
	}
}
