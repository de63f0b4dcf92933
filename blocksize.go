package xdelta

const (
	// MinBlockSize is the smallest block length used for hashing.
	MinBlockSize = 400

	// MaxBlockSize caps the block length for very large files.
	MaxBlockSize = 1 << 20

	// BufferLen is the size of the staging buffer the pipelines read into.
	BufferLen = 1 << 23

	// MultiroundBase divides the block length between successive rounds.
	MultiroundBase = 3
)

// BlockSize maps a file size to the block length used to hash it: roughly
// the square root of the size, rounded down to a multiple of 8 and clamped
// to [MinBlockSize, MaxBlockSize]. This is rsync's sum-sizes-sqroot policy.
func BlockSize(fileSize uint64) uint32 {
	if fileSize <= MinBlockSize*MinBlockSize {
		return MinBlockSize
	}

	// largest power of two whose square does not exceed fileSize
	c := uint64(1)
	for l := fileSize; ; {
		l >>= 2
		if l == 0 {
			break
		}
		c <<= 1
	}
	if c >= MaxBlockSize {
		return MaxBlockSize
	}

	var blength uint64
	for ; c >= 8; c >>= 1 {
		blength |= c
		if fileSize < blength*blength {
			blength &^= c
		}
	}
	if blength < MinBlockSize {
		blength = MinBlockSize
	}
	return uint32(blength)
}

// RoundBlockSizes returns the block length of each round in multi-round
// operation: the policy size for fileSize, then divided by MultiroundBase
// until it would fall below MinBlockSize. The last entry belongs to the
// final round.
func RoundBlockSizes(fileSize uint64) []uint32 {
	var sizes []uint32
	for b := BlockSize(fileSize); b >= MinBlockSize; b /= MultiroundBase {
		sizes = append(sizes, b)
	}
	return sizes
}
