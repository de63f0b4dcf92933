// Original algorithm: http://www.samba.org/~tridge/phd_thesis.pdf
// Multi-round extension: one application of (hash target, delta source) per
// round; successive rounds use smaller block sizes over the ranges that are
// still unresolved.
//
// Definitions
//   Source: the content to be reconstructed on the peer.
//   Target: the content the peer already holds.
//   Hole: a range of the source not matched yet.
package xdelta

// DigestBytes is the width of a strong hash digest.
const DigestBytes = 16

// TargetPos locates a hashed block inside the target file. TOffset is the
// byte offset at which the block's round began scanning (zero in
// single-round operation and in the first round); Index is the ordinal of
// the block within that scan. The absolute target offset is
// TOffset + Index*blockLen of the round that produced the block; only the
// producer of a hash table knows that block length, consumers treat Index
// as opaque.
type TargetPos struct {
	TOffset uint64
	Index   uint32
}

// StrongHash pairs a block's strong digest with its position in the target.
// Identity is defined on Digest alone: two records with equal digests are
// duplicates no matter where they point.
type StrongHash struct {
	Digest [DigestBytes]byte
	Pos    TargetPos
}

// Hole is a half-open byte range [Offset, Offset+Length) of the source file
// that has not been matched against the target yet.
type Hole struct {
	Offset uint64
	Length uint64
}

// End returns the first offset past the hole.
func (h Hole) End() uint64 {
	return h.Offset + h.Length
}

// HasherSink receives one (fast hash, strong hash) pair per target block
// from the hashing pipeline.
type HasherSink interface {
	AddBlock(fhash uint32, sh StrongHash) error
}

// DeltaSink receives the delta stream from the delta pipeline.
//
// Literal data passed to DataBlock aliases an internal buffer which is
// reused; implementations must copy the bytes out before returning.
type DeltaSink interface {
	// CopyBlock records that blockLen bytes at source offset srcOffset can
	// be copied from the target block at pos.
	CopyBlock(pos TargetPos, blockLen uint32, srcOffset uint64) error
	// DataBlock records bytes of the source that must travel verbatim.
	DataBlock(data []byte, srcOffset uint64) error
}

// RoundKind tells the delta pipeline whether this is the last round.
//
// Intermediate rounds defer literals (a later, smaller-block round may still
// match some of those bytes) and shrink the hole set instead; the final
// round emits literals for everything left and leaves the hole set alone.
type RoundKind int

const (
	IntermediateRound RoundKind = iota
	FinalRound
)
