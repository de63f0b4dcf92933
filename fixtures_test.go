package xdelta

import (
	"bytes"

	"github.com/pkg/errors"
)

// memFile is an in-memory FileReader for tests.
type memFile struct {
	name    string
	data    []byte
	missing bool
	reader  *bytes.Reader
}

func newMemFile(name string, data []byte) *memFile {
	return &memFile{name: name, data: data}
}

func missingMemFile(name string) *memFile {
	return &memFile{name: name, missing: true}
}

func (mf *memFile) Exists() bool {
	return !mf.missing
}

func (mf *memFile) Open() error {
	if mf.missing {
		return errors.Errorf("opening %s: no such file", mf.name)
	}
	mf.reader = bytes.NewReader(mf.data)
	return nil
}

func (mf *memFile) Close() error {
	mf.reader = nil
	return nil
}

func (mf *memFile) Size() (uint64, error) {
	return uint64(len(mf.data)), nil
}

func (mf *memFile) Name() string {
	return mf.name
}

func (mf *memFile) Read(p []byte) (int, error) {
	return mf.reader.Read(p)
}

func (mf *memFile) Seek(offset int64, whence int) (int64, error) {
	return mf.reader.Seek(offset, whence)
}

// memWriterAt collects reconstructed output in memory, growing on demand.
type memWriterAt struct {
	data []byte
}

func (m *memWriterAt) WriteAt(p []byte, off int64) (int, error) {
	end := int(off) + len(p)
	if end > len(m.data) {
		grown := make([]byte, end)
		copy(grown, m.data)
		m.data = grown
	}
	copy(m.data[off:], p)
	return len(p), nil
}

// hashTarget builds a hash table over data with the given block length, the
// way the first round of a diff would.
func hashTarget(t *memFile, blockLen uint32) (*HashTable, error) {
	table := NewHashTable()
	if !t.Exists() {
		return table, nil
	}
	err := t.Open()
	if err != nil {
		return nil, err
	}
	defer t.Close()

	size, err := t.Size()
	if err != nil {
		return nil, err
	}
	if size == 0 {
		return table, nil
	}
	err = ReadAndHash(t, table, size, blockLen, 0, nil)
	if err != nil {
		return nil, err
	}
	return table, nil
}

// countOps tallies a recorded delta stream: copies, literals, literal bytes.
func countOps(ops []Op) (copies int, literals int, literalBytes uint64) {
	for _, op := range ops {
		switch op.Type {
		case OpCopy:
			copies++
		case OpData:
			literals++
			literalBytes += uint64(len(op.Data))
		}
	}
	return
}
