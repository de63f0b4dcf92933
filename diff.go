package xdelta

import (
	"fmt"
	"hash"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/itchio/headway/state"
	"github.com/itchio/headway/united"
	"golang.org/x/crypto/md4"
)

// DiffParams configures a diff of a source file (the content the peer
// should end up with) against a target file (the content the peer already
// holds).
type DiffParams struct {
	Source FileReader
	Target FileReader
	Sink   DeltaSink

	// MultiRound runs successive rounds with shrinking block sizes instead
	// of a single pass.
	MultiRound bool

	// optional
	Consumer *state.Consumer
}

// DiffStats reports what a Diff run did.
type DiffStats struct {
	Rounds     int
	SourceSize uint64
	TargetSize uint64

	// TargetDigest is the whole-target strong digest, computed during the
	// first hashing pass. Zero when the target is missing.
	TargetDigest [DigestBytes]byte
}

// Diff runs the full hash-target / delta-source cycle, writing the delta
// stream to params.Sink. A missing target is fine: everything becomes
// literals. In multi-round mode the early rounds use large blocks and only
// shrink the set of unresolved source ranges; the last round emits literals
// for whatever is still unmatched.
func Diff(params DiffParams) (*DiffStats, error) {
	err := validation.ValidateStruct(&params,
		validation.Field(&params.Source, validation.Required),
		validation.Field(&params.Target, validation.Required),
		validation.Field(&params.Sink, validation.Required),
	)
	if err != nil {
		return nil, err
	}

	consumer := params.Consumer
	if consumer == nil {
		consumer = &state.Consumer{}
	}

	source, target := params.Source, params.Target

	err = source.Open()
	if err != nil {
		return nil, err
	}
	defer source.Close()

	sourceSize, err := source.Size()
	if err != nil {
		return nil, err
	}

	var targetSize uint64
	targetExists := target.Exists()
	if targetExists {
		err = target.Open()
		if err != nil {
			return nil, err
		}
		defer target.Close()

		targetSize, err = target.Size()
		if err != nil {
			return nil, err
		}
	}

	stats := &DiffStats{
		SourceSize: sourceSize,
		TargetSize: targetSize,
	}

	blockSizes := []uint32{BlockSize(targetSize)}
	if params.MultiRound {
		blockSizes = RoundBlockSizes(targetSize)
	}

	holes := NewHoleSet(sourceSize)
	table := NewHashTable()
	whole := md4.New()

	// Regions of the target to hash this round. The first round scans the
	// whole file; later rounds re-scan only the ranges mirroring the
	// source's remaining holes.
	regions := []Hole{{Offset: 0, Length: targetSize}}

	for round, blockLen := range blockSizes {
		final := round == len(blockSizes)-1
		kind := IntermediateRound
		if final {
			kind = FinalRound
		}

		table.Clear()
		if targetExists {
			for _, region := range regions {
				if region.Length == 0 {
					continue
				}
				err = seekTo(target, region.Offset)
				if err != nil {
					return nil, err
				}

				var fileHash hash.Hash
				if round == 0 {
					fileHash = whole
				}
				err = ReadAndHash(target, table, region.Length, blockLen, region.Offset, fileHash)
				if err != nil {
					return nil, err
				}
			}
		}

		consumer.ProgressLabel(fmt.Sprintf("round %d", round+1))
		err = ReadAndDelta(source, params.Sink, table, holes, blockLen, kind)
		if err != nil {
			return nil, err
		}

		consumer.Progress(float64(round+1) / float64(len(blockSizes)))
		consumer.Debugf("round %d: %s blocks, %s unresolved",
			round+1, united.FormatBytes(int64(blockLen)), united.FormatBytes(int64(holes.Size())))
		stats.Rounds++

		if !final {
			regions = targetRegions(holes, targetSize)
		}
	}

	if targetExists {
		copy(stats.TargetDigest[:], whole.Sum(nil))
	}
	return stats, nil
}

// targetRegions mirrors the source's remaining holes onto the target,
// clamped to the target's size. The peer hashes exactly these ranges on the
// next round, with each range's start as the round offset.
func targetRegions(holes *HoleSet, targetSize uint64) []Hole {
	var regions []Hole
	for _, h := range holes.Holes() {
		if h.Offset >= targetSize {
			continue
		}
		length := h.Length
		if h.Offset+length > targetSize {
			length = targetSize - h.Offset
		}
		regions = append(regions, Hole{Offset: h.Offset, Length: length})
	}
	return regions
}
