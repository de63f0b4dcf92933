package xdelta

import (
	"io"

	lru "github.com/hashicorp/golang-lru"
	"github.com/pkg/errors"
)

// OpType distinguishes retained delta records.
type OpType byte

const (
	OpCopy OpType = iota
	OpData
)

// Op is one retained delta record.
type Op struct {
	Type OpType

	// OpCopy
	Pos      TargetPos
	BlockLen uint32

	// OpData
	Data []byte

	SourceOffset uint64
}

// OpRecorder is a DeltaSink that retains every record. Literal bytes are
// copied out of the pipeline's reused buffer, so recorded ops stay valid
// after the pipeline returns.
type OpRecorder struct {
	Ops []Op
}

var _ DeltaSink = (*OpRecorder)(nil)

func (r *OpRecorder) CopyBlock(pos TargetPos, blockLen uint32, srcOffset uint64) error {
	r.Ops = append(r.Ops, Op{
		Type:         OpCopy,
		Pos:          pos,
		BlockLen:     blockLen,
		SourceOffset: srcOffset,
	})
	return nil
}

func (r *OpRecorder) DataBlock(data []byte, srcOffset uint64) error {
	d := make([]byte, len(data))
	copy(d, data)
	r.Ops = append(r.Ops, Op{
		Type:         OpData,
		Data:         d,
		SourceOffset: srcOffset,
	})
	return nil
}

// applyCacheSize bounds how many target blocks Apply keeps around between
// copy ops. Multi-round deltas revisit target positions often enough for a
// small cache to pay off.
const applyCacheSize = 64

type blockKey struct {
	pos      TargetPos
	blockLen uint32
}

// Apply reconstructs the source from the target plus a delta stream,
// writing every record at its source offset. Records may come from several
// rounds and need not arrive in source order, hence the io.WriterAt.
func Apply(ops []Op, target FileReader, output io.WriterAt) error {
	cache, err := lru.New(applyCacheSize)
	if err != nil {
		return errors.WithStack(err)
	}

	opened := false
	defer func() {
		if opened {
			target.Close()
		}
	}()

	readBlock := func(op Op) ([]byte, error) {
		key := blockKey{pos: op.Pos, blockLen: op.BlockLen}
		if cached, ok := cache.Get(key); ok {
			return cached.([]byte), nil
		}

		if !opened {
			err := target.Open()
			if err != nil {
				return nil, err
			}
			opened = true
		}

		tOffset := op.Pos.TOffset + uint64(op.Pos.Index)*uint64(op.BlockLen)
		err := seekTo(target, tOffset)
		if err != nil {
			return nil, err
		}

		block := make([]byte, op.BlockLen)
		err = readFull(target, block)
		if err != nil {
			return nil, err
		}
		cache.Add(key, block)
		return block, nil
	}

	for _, op := range ops {
		switch op.Type {
		case OpCopy:
			block, err := readBlock(op)
			if err != nil {
				return err
			}
			_, err = output.WriteAt(block, int64(op.SourceOffset))
			if err != nil {
				return errors.WithStack(err)
			}

		case OpData:
			_, err := output.WriteAt(op.Data, int64(op.SourceOffset))
			if err != nil {
				return errors.WithStack(err)
			}

		default:
			return errors.Errorf("unknown delta op type: %d", op.Type)
		}
	}

	return nil
}
