package xdelta

import (
	"github.com/pkg/errors"

	"github.com/quayside/xdelta/rollsum"
)

// ReadAndDelta slides a byte-granular window over every hole of the source,
// matching windows of blockLen bytes against the target's hash table and
// emitting a copy record for each hit. On the final round the bytes between
// matches are emitted as literals; on intermediate rounds they stay in
// place and every match instead shrinks the hole set, so the next round
// only re-examines what remains.
//
// Within one hole, records come out in strictly ascending source-offset
// order and, on the final round, cover the hole exactly. This loop
// dominates end-to-end throughput: every source byte passes through it.
func ReadAndDelta(reader FileReader, sink DeltaSink, table *HashTable, holes *HoleSet, blockLen uint32, kind RoundKind) error {
	emitLiterals := kind == FinalRound
	buf := make([]byte, BufferLen)
	var splits []Hole

	for _, hole := range holes.Holes() {
		if hole.Length < uint64(blockLen) {
			// Too short for a single window: the whole hole is one literal
			// on the final round, untouched otherwise.
			if !emitLiterals {
				continue
			}
			err := literalHole(reader, sink, hole, buf)
			if err != nil {
				return err
			}
			continue
		}

		err := seekTo(reader, hole.Offset)
		if err != nil {
			return err
		}

		toRead := hole.Length
		offset := hole.Offset

		// Three cursors into buf: sentry marks the start of the pending
		// literal run, rd the current candidate window, end the first
		// unread position.
		sentry, rd, end := 0, 0, 0

		var sum rollsum.Rollsum
		reseed := true
		var outByte byte

		for {
			remain := end - rd
			if remain < int(blockLen) {
				if toRead == 0 {
					if end > sentry && emitLiterals {
						err := sink.DataBlock(buf[sentry:end], offset)
						if err != nil {
							return err
						}
					}
					break
				}

				// Flush the pending literal, compact the window to the
				// buffer start, refill.
				if rd > sentry {
					if emitLiterals {
						err := sink.DataBlock(buf[sentry:rd], offset)
						if err != nil {
							return err
						}
					}
					offset += uint64(rd - sentry)
				}

				copy(buf, buf[rd:end])
				sentry, rd, end = 0, 0, remain

				want := uint64(BufferLen - remain)
				if toRead < want {
					want = toRead
				}
				for want > 0 {
					n, err := reader.Read(buf[end : end+int(want)])
					if n <= 0 {
						return errors.Wrapf(errShortRead(err), "reading %s", reader.Name())
					}
					toRead -= uint64(n)
					want -= uint64(n)
					end += n
				}
				continue
			}

			if reseed {
				sum.Eat(buf[rd : rd+int(blockLen)])
				reseed = false
			} else {
				sum.Rotate(outByte, buf[rd+int(blockLen)-1])
			}

			sh := table.FindBlock(sum.Digest(), buf[rd:rd+int(blockLen)])
			if sh != nil {
				if rd > sentry {
					if emitLiterals {
						err := sink.DataBlock(buf[sentry:rd], offset)
						if err != nil {
							return err
						}
					}
					offset += uint64(rd - sentry)
				}

				err := sink.CopyBlock(sh.Pos, blockLen, offset)
				if err != nil {
					return err
				}
				if kind == IntermediateRound {
					splits = append(splits, Hole{Offset: offset, Length: uint64(blockLen)})
				}

				rd += int(blockLen)
				offset += uint64(blockLen)
				sentry = rd
				reseed = true
			} else {
				// slip the window by one byte
				outByte = buf[rd]
				rd++
			}
		}
	}

	for _, c := range splits {
		err := holes.Split(c)
		if err != nil {
			return err
		}
	}
	return nil
}

// literalHole emits a hole shorter than the block length as a single
// literal. Such holes fit the staging buffer: the block length never
// exceeds MaxBlockSize, which is well under BufferLen.
func literalHole(reader FileReader, sink DeltaSink, hole Hole, buf []byte) error {
	err := seekTo(reader, hole.Offset)
	if err != nil {
		return err
	}
	err = readFull(reader, buf[:hole.Length])
	if err != nil {
		return err
	}
	return sink.DataBlock(buf[:hole.Length], hole.Offset)
}
