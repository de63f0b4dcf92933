package xdelta

import (
	"io"
	"os"

	"github.com/pkg/errors"
)

// FileReader is the file access the pipelines need. Seek semantics are
// those of io.Seeker: the returned offset is the resulting absolute offset.
type FileReader interface {
	io.ReadSeeker

	// Exists reports whether the file is present, without opening it.
	Exists() bool
	Open() error
	Close() error
	// Size returns the file's length in bytes. The file must be open.
	Size() (uint64, error)
	// Name identifies the file in error messages.
	Name() string
}

type osFile struct {
	path string
	f    *os.File
}

// NewFileReader returns a FileReader over a file on disk.
func NewFileReader(path string) FileReader {
	return &osFile{path: path}
}

func (of *osFile) Exists() bool {
	_, err := os.Stat(of.path)
	return err == nil
}

func (of *osFile) Open() error {
	f, err := os.Open(of.path)
	if err != nil {
		return errors.Wrapf(err, "opening %s", of.path)
	}
	of.f = f
	return nil
}

func (of *osFile) Close() error {
	if of.f == nil {
		return nil
	}
	err := of.f.Close()
	of.f = nil
	if err != nil {
		return errors.Wrapf(err, "closing %s", of.path)
	}
	return nil
}

func (of *osFile) Size() (uint64, error) {
	stats, err := of.f.Stat()
	if err != nil {
		return 0, errors.Wrapf(err, "stat %s", of.path)
	}
	return uint64(stats.Size()), nil
}

func (of *osFile) Name() string {
	return of.path
}

func (of *osFile) Read(p []byte) (int, error) {
	return of.f.Read(p)
}

func (of *osFile) Seek(offset int64, whence int) (int64, error) {
	return of.f.Seek(offset, whence)
}
