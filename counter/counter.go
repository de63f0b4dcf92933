// Package counter wraps readers and writers to keep a running byte count,
// with an optional callback per operation. The pipelines use it to report
// progress and to account for delta stream sizes.
package counter

import "io"

// CountCallback is called with the running total after each operation.
type CountCallback func(count int64)

// Reader counts the bytes read through it. A nil underlying reader counts
// without reading anything.
type Reader struct {
	count  int64
	reader io.Reader
	onRead CountCallback
}

func NewReader(reader io.Reader) *Reader {
	return &Reader{reader: reader}
}

func NewReaderCallback(onRead CountCallback, reader io.Reader) *Reader {
	return &Reader{reader: reader, onRead: onRead}
}

func (r *Reader) Count() int64 {
	return r.count
}

func (r *Reader) Read(buffer []byte) (n int, err error) {
	if r.reader == nil {
		n = len(buffer)
	} else {
		n, err = r.reader.Read(buffer)
	}

	r.count += int64(n)
	if r.onRead != nil {
		r.onRead(r.count)
	}
	return
}

func (r *Reader) Close() error {
	return nil
}

// Writer counts the bytes written through it. A nil underlying writer
// swallows the bytes and just counts.
type Writer struct {
	count   int64
	writer  io.Writer
	onWrite CountCallback
}

func NewWriter(writer io.Writer) *Writer {
	return &Writer{writer: writer}
}

func NewWriterCallback(onWrite CountCallback, writer io.Writer) *Writer {
	return &Writer{writer: writer, onWrite: onWrite}
}

func (w *Writer) Count() int64 {
	return w.count
}

func (w *Writer) Write(buffer []byte) (n int, err error) {
	if w.writer == nil {
		n = len(buffer)
	} else {
		n, err = w.writer.Write(buffer)
	}

	w.count += int64(n)
	if w.onWrite != nil {
		w.onWrite(w.count)
	}
	return
}

func (w *Writer) Close() error {
	return nil
}
