package xdelta

import (
	"bytes"
	"sort"

	"golang.org/x/crypto/md4"
)

// HashTable is the index the delta pipeline searches: fast hash to the set
// of strong-hash records sharing it. Several digests may share one fast
// hash (collisions are expected and correct); within a bucket records are
// kept sorted by digest, at most one record per digest.
type HashTable struct {
	blocks map[uint32][]StrongHash
}

var _ HasherSink = (*HashTable)(nil)

func NewHashTable() *HashTable {
	return &HashTable{blocks: make(map[uint32][]StrongHash)}
}

// AddBlock inserts sh under fhash. Inserting a digest already present in
// its bucket is a no-op. HashTable implements HasherSink so it can be fed
// directly by the hashing pipeline.
func (t *HashTable) AddBlock(fhash uint32, sh StrongHash) error {
	bucket := t.blocks[fhash]
	i := sort.Search(len(bucket), func(i int) bool {
		return bytes.Compare(bucket[i].Digest[:], sh.Digest[:]) >= 0
	})
	if i < len(bucket) && bucket[i].Digest == sh.Digest {
		return nil
	}

	bucket = append(bucket, StrongHash{})
	copy(bucket[i+1:], bucket[i:])
	bucket[i] = sh
	t.blocks[fhash] = bucket
	return nil
}

// FindBlock looks up fhash and, on a hit, compares the strong digest of
// window against the bucket. Returns nil when either hash misses. The
// strong digest is only computed when the fast hash matched.
func (t *HashTable) FindBlock(fhash uint32, window []byte) *StrongHash {
	bucket, ok := t.blocks[fhash]
	if !ok {
		return nil
	}

	digest := strongDigest(window)
	i := sort.Search(len(bucket), func(i int) bool {
		return bytes.Compare(bucket[i].Digest[:], digest[:]) >= 0
	})
	if i < len(bucket) && bucket[i].Digest == digest {
		return &bucket[i]
	}
	return nil
}

// Empty reports whether the table holds no records.
func (t *HashTable) Empty() bool {
	return len(t.blocks) == 0
}

// Clear drops all records.
func (t *HashTable) Clear() {
	t.blocks = make(map[uint32][]StrongHash)
}

// strongDigest computes the 16-byte strong hash of buf in one shot.
func strongDigest(buf []byte) (digest [DigestBytes]byte) {
	h := md4.New()
	h.Write(buf)
	copy(digest[:], h.Sum(nil))
	return digest
}
