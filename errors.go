package xdelta

import (
	"io"

	"github.com/pkg/errors"
)

// errShortRead normalizes the error for a read that made no progress while
// bytes were still owed. A clean EOF here means the caller's bookkeeping
// and the file disagree, which is just as fatal as a read error.
func errShortRead(err error) error {
	if err == nil || err == io.EOF {
		return errors.New("short read")
	}
	return err
}

// seekTo positions reader at the absolute offset, treating a seek that
// lands anywhere else as fatal.
func seekTo(reader FileReader, offset uint64) error {
	pos, err := reader.Seek(int64(offset), io.SeekStart)
	if err != nil {
		return errors.Wrapf(err, "seeking %s to %d", reader.Name(), offset)
	}
	if uint64(pos) != offset {
		return errors.Errorf("seeking %s to %d landed at %d", reader.Name(), offset, pos)
	}
	return nil
}

// readFull reads exactly len(p) bytes from reader.
func readFull(reader FileReader, p []byte) error {
	for len(p) > 0 {
		n, err := reader.Read(p)
		if n <= 0 {
			return errors.Wrapf(errShortRead(err), "reading %s", reader.Name())
		}
		p = p[n:]
	}
	return nil
}
