package xdelta

import (
	"hash"
	"io"

	"github.com/pkg/errors"
	"golang.org/x/crypto/md4"

	"github.com/quayside/xdelta/counter"
	"github.com/quayside/xdelta/rollsum"
)

// ReadAndHash streams toRead bytes from reader through consecutive
// non-overlapping blocks of blockLen, feeding one (fast hash, strong hash)
// pair per full block to sink. Block positions carry tOffset as their round
// offset and index from zero. The trailing partial block yields no pair.
// When whole is non-nil, every byte read (trailing partial included) is
// written to it as well, so a whole-file digest comes out of the same pass.
//
// The reader must already be positioned at the start of the region. A read
// returning no progress while bytes remain is a fatal I/O failure.
func ReadAndHash(reader FileReader, sink HasherSink, toRead uint64, blockLen uint32, tOffset uint64, whole hash.Hash) error {
	buf := make([]byte, BufferLen)
	index := uint32(0)
	remain := 0

	for toRead > 0 {
		want := uint64(BufferLen - remain)
		if toRead < want {
			want = toRead
		}

		end := remain
		for want > 0 {
			n, err := reader.Read(buf[end : end+int(want)])
			if n <= 0 {
				return errors.Wrapf(errShortRead(err), "reading %s", reader.Name())
			}
			if whole != nil {
				whole.Write(buf[end : end+n])
			}
			toRead -= uint64(n)
			want -= uint64(n)
			end += n
		}

		rd := 0
		for end-rd >= int(blockLen) {
			block := buf[rd : rd+int(blockLen)]
			sh := StrongHash{
				Digest: strongDigest(block),
				Pos:    TargetPos{TOffset: tOffset, Index: index},
			}
			err := sink.AddBlock(rollsum.Hash(block), sh)
			if err != nil {
				return err
			}
			index++
			rd += int(blockLen)
		}

		remain = end - rd
		copy(buf, buf[rd:end])
	}

	return nil
}

// HashFile hashes an entire target file into sink with the block length
// BlockSize picks for its size, returning that block length and the
// whole-file strong digest. A missing target is not an error: it simply
// contributes no blocks (the whole source stays a hole) and the returned
// block length is zero.
func HashFile(reader FileReader, sink HasherSink) (fileDigest [DigestBytes]byte, blockLen uint32, err error) {
	if !reader.Exists() {
		return fileDigest, 0, nil
	}

	err = reader.Open()
	if err != nil {
		return fileDigest, 0, err
	}
	defer reader.Close()

	size, err := reader.Size()
	if err != nil {
		return fileDigest, 0, err
	}

	whole := md4.New()
	blockLen = BlockSize(size)
	err = ReadAndHash(reader, sink, size, blockLen, 0, whole)
	if err != nil {
		return fileDigest, 0, err
	}

	copy(fileDigest[:], whole.Sum(nil))
	return fileDigest, blockLen, nil
}

// FileDigest computes the strong digest of an entire file, returning the
// digest and the number of bytes read.
func FileDigest(reader FileReader) (digest [DigestBytes]byte, n int64, err error) {
	err = reader.Open()
	if err != nil {
		return digest, 0, err
	}
	defer reader.Close()

	whole := md4.New()
	cr := counter.NewReaderCallback(nil, reader)
	_, err = io.Copy(whole, cr)
	if err != nil {
		return digest, 0, errors.Wrapf(err, "digesting %s", reader.Name())
	}

	copy(digest[:], whole.Sum(nil))
	return digest, cr.Count(), nil
}
